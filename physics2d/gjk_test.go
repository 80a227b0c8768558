// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"testing"

	"github.com/gazed/corevu/mathx"
)

func TestIntersectsOverlappingCircles(t *testing.T) {
	a := &Collider{Shape: NewCircle(1), Position: mathx.V2{X: 0, Y: 0}}
	b := &Collider{Shape: NewCircle(1), Position: mathx.V2{X: 1, Y: 0}}
	hit, _ := intersects(a, b)
	if !hit {
		t.Errorf("expected overlapping circles to intersect")
	}
}

func TestIntersectsSeparatedCircles(t *testing.T) {
	a := &Collider{Shape: NewCircle(1), Position: mathx.V2{X: 0, Y: 0}}
	b := &Collider{Shape: NewCircle(1), Position: mathx.V2{X: 5, Y: 0}}
	hit, _ := intersects(a, b)
	if hit {
		t.Errorf("expected distant circles not to intersect")
	}
}

func TestIntersectsOverlappingBoxes(t *testing.T) {
	a := &Collider{Shape: NewBox(1, 1), Position: mathx.V2{X: 0, Y: 0}}
	b := &Collider{Shape: NewBox(1, 1), Position: mathx.V2{X: 1.5, Y: 0}}
	hit, _ := intersects(a, b)
	if !hit {
		t.Errorf("expected overlapping boxes to intersect")
	}
}

func TestEpaPenetrationReportsDepth(t *testing.T) {
	a := &Collider{Shape: NewBox(1, 1), Position: mathx.V2{X: 0, Y: 0}}
	b := &Collider{Shape: NewBox(1, 1), Position: mathx.V2{X: 1.5, Y: 0}}
	hit, s := intersects(a, b)
	if !hit {
		t.Fatalf("expected boxes to intersect")
	}
	c := epaPenetration(a, b, s)
	if c.Depth <= 0 || c.Depth > 1 {
		t.Errorf("expected a small positive penetration depth, got %v", c.Depth)
	}
	if c.Normal.X <= 0 {
		t.Errorf("expected normal to point roughly toward +X, got %+v", c.Normal)
	}
}
