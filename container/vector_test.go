// Copyright © 2024 Galvanized Logic Inc.

package container

import (
	"testing"

	"github.com/gazed/corevu/mem"
)

func newTestAllocator() *mem.Allocator { return mem.New(1<<20, 1<<16) }

func TestVectorPushAndAt(t *testing.T) {
	v := NewVector[int](newTestAllocator(), mem.TagDataStruct)
	for i := 0; i < 20; i++ {
		v.Push(i)
	}
	if v.Len() != 20 {
		t.Fatalf("expected length 20, got %d", v.Len())
	}
	for i := 0; i < 20; i++ {
		if v.At(i) != i {
			t.Errorf("expected v.At(%d) == %d, got %d", i, i, v.At(i))
		}
	}
}

func TestVectorInsertAndRemove(t *testing.T) {
	v := NewVector[string](newTestAllocator(), mem.TagDataStruct)
	v.Push("a")
	v.Push("c")
	v.Insert(1, "b")
	if v.At(0) != "a" || v.At(1) != "b" || v.At(2) != "c" {
		t.Fatalf("unexpected order after insert: %v %v %v", v.At(0), v.At(1), v.At(2))
	}
	removed := v.Remove(1)
	if removed != "b" || v.Len() != 2 {
		t.Fatalf("expected to remove b, got %v (len %d)", removed, v.Len())
	}
}

func TestVectorFind(t *testing.T) {
	v := NewVector[int](newTestAllocator(), mem.TagDataStruct)
	v.Push(10)
	v.Push(20)
	v.Push(30)
	eq := func(a, b int) bool { return a == b }
	if idx := v.Find(20, eq); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := v.Find(99, eq); idx != -1 {
		t.Errorf("expected -1 for missing value, got %d", idx)
	}
}
