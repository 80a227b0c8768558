// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"math"
	"testing"

	"github.com/gazed/corevu/mathx"
)

func TestColliderSupportTranslated(t *testing.T) {
	c := Collider{Shape: NewCircle(1), Position: mathx.V2{X: 5, Y: 0}}
	p := c.Support(mathx.V2{X: 1, Y: 0})
	if math.Abs(p.X-6) > 1e-9 {
		t.Errorf("expected translated support x=6, got %v", p.X)
	}
}

func TestColliderSupportRotated(t *testing.T) {
	c := Collider{Shape: NewBox(1, 1), Angle: math.Pi / 2}
	p := c.Support(mathx.V2{X: 1, Y: -0.5})
	// A 90 degree CCW rotation turns corner (-1,-1) into (1,-1), the unique
	// furthest point along (1,-0.5); along +X alone the whole right edge
	// would tie.
	if math.Abs(p.X-1) > 1e-9 || math.Abs(p.Y+1) > 1e-9 {
		t.Errorf("expected rotated support point (1,-1), got %+v", p)
	}
}

func TestColliderAabbCoversRotation(t *testing.T) {
	c := Collider{Shape: NewBox(1, 2), Position: mathx.V2{X: 0, Y: 0}, Angle: math.Pi / 4}
	box := c.Aabb()
	if box.MaxX < 1 || box.MaxY < 2 {
		t.Errorf("expected aabb to conservatively cover rotated box, got %+v", box)
	}
}
