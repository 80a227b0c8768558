// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"math"
	"testing"

	"github.com/gazed/corevu/mathx"
)

func TestCircleArea(t *testing.T) {
	c := NewCircle(2)
	if got := c.Area(); math.Abs(got-math.Pi*4) > 1e-9 {
		t.Errorf("expected area ~%.6f, got %.6f", math.Pi*4, got)
	}
}

func TestCircleSupport(t *testing.T) {
	c := NewCircle(3)
	p := c.Support(mathx.V2{X: 1, Y: 0})
	if math.Abs(p.X-3) > 1e-9 || math.Abs(p.Y) > 1e-9 {
		t.Errorf("expected support point (3,0), got (%v,%v)", p.X, p.Y)
	}
}

func TestBoxAreaAndAabb(t *testing.T) {
	p := NewBox(2, 1)
	if got := p.Area(); math.Abs(got-8) > 1e-9 {
		t.Errorf("expected box area 8, got %.6f", got)
	}
	box := p.Aabb()
	if box.MinX != -2 || box.MaxX != 2 || box.MinY != -1 || box.MaxY != 1 {
		t.Errorf("unexpected aabb %+v", box)
	}
}

func TestPolygonSupport(t *testing.T) {
	p := NewBox(1, 1)
	s := p.Support(mathx.V2{X: 1, Y: 1})
	if s.X != 1 || s.Y != 1 {
		t.Errorf("expected support (1,1), got (%v,%v)", s.X, s.Y)
	}
}
