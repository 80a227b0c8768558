// Copyright © 2024 Galvanized Logic Inc.

package container

import "testing"

func stringKeyer(s string) []byte { return []byte(s) }

func TestHashMapPutGet(t *testing.T) {
	m := NewHashMap[string, int](16, stringKeyer, -1)
	m.Put("health", 100)
	m.Put("mana", 50)
	if m.Get("health") != 100 {
		t.Errorf("expected health == 100, got %d", m.Get("health"))
	}
	if m.Get("missing") != -1 {
		t.Errorf("expected invalid value -1 for missing key, got %d", m.Get("missing"))
	}
}

func TestHashMapOverwrite(t *testing.T) {
	m := NewHashMap[string, int](16, stringKeyer, -1)
	m.Put("k", 1)
	m.Put("k", 2)
	if m.Get("k") != 2 || m.Len() != 1 {
		t.Errorf("expected overwrite to keep length 1 with value 2, got len=%d value=%d", m.Len(), m.Get("k"))
	}
}

func TestHashMapRemove(t *testing.T) {
	m := NewHashMap[string, int](16, stringKeyer, -1)
	m.Put("k", 1)
	if !m.Remove("k") {
		t.Fatalf("expected Remove to report true for an existing key")
	}
	if m.Has("k") {
		t.Errorf("expected key to be gone after Remove")
	}
	if m.Remove("k") {
		t.Errorf("expected second Remove to report false")
	}
}

func TestHashMapCollisionChaining(t *testing.T) {
	// A single bucket forces every key into the same chain.
	m := NewHashMap[string, int](1, stringKeyer, -1)
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)
	if m.Get("a") != 1 || m.Get("b") != 2 || m.Get("c") != 3 {
		t.Errorf("expected all chained keys to retain their values")
	}
}
