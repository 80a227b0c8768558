// Copyright © 2024 Galvanized Logic Inc.

package container

import "testing"

func TestListPushAndPop(t *testing.T) {
	l := NewList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushFront(0)

	if l.Len() != 3 {
		t.Fatalf("expected length 3, got %d", l.Len())
	}
	front, ok := l.PopFront()
	if !ok || front != 0 {
		t.Fatalf("expected front 0, got %v (ok=%v)", front, ok)
	}
	back, ok := l.PopBack()
	if !ok || back != 2 {
		t.Fatalf("expected back 2, got %v (ok=%v)", back, ok)
	}
}

func TestListPopEmpty(t *testing.T) {
	l := NewList[int]()
	if _, ok := l.PopBack(); ok {
		t.Errorf("expected PopBack on empty list to report ok=false")
	}
	if _, ok := l.PopFront(); ok {
		t.Errorf("expected PopFront on empty list to report ok=false")
	}
}

func TestListRemoveFirst(t *testing.T) {
	l := NewList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	eq := func(a, b int) bool { return a == b }
	if !l.RemoveFirst(2, eq) {
		t.Fatalf("expected to remove 2")
	}
	var seen []int
	l.Each(func(v int) bool { seen = append(seen, v); return true })
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 3 {
		t.Errorf("unexpected remaining elements: %v", seen)
	}
}

func TestListEachStopsEarly(t *testing.T) {
	l := NewList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	var seen []int
	l.Each(func(v int) bool {
		seen = append(seen, v)
		return v != 2
	})
	if len(seen) != 2 {
		t.Errorf("expected iteration to stop after 2 elements, got %v", seen)
	}
}
