// Copyright © 2024 Galvanized Logic Inc.

package container

import "testing"

func TestStringSmallValue(t *testing.T) {
	s := NewString("hello")
	if s.String() != "hello" || s.Len() != 5 {
		t.Errorf("expected \"hello\" (len 5), got %q (len %d)", s.String(), s.Len())
	}
}

func TestStringSpillsToHeap(t *testing.T) {
	long := "this string is deliberately longer than the small buffer capacity"
	s := NewString(long)
	if s.String() != long {
		t.Errorf("expected long string to round-trip, got %q", s.String())
	}
}

func TestStringAppendSpills(t *testing.T) {
	s := NewString("short")
	for i := 0; i < 10; i++ {
		s.Append("-more")
	}
	want := "short-more-more-more-more-more-more-more-more-more-more"
	if s.String() != want {
		t.Errorf("expected %q, got %q", want, s.String())
	}
}

func TestStringBlank(t *testing.T) {
	s := NewString("something")
	s.Blank()
	if s.Len() != 0 || s.String() != "" {
		t.Errorf("expected empty string after Blank, got %q", s.String())
	}
}
