// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"testing"

	"github.com/gazed/corevu/mathx"
)

func TestRayCastMissesWhenNothingInPath(t *testing.T) {
	w := NewWorld()
	b := NewBody(Collider{Shape: NewCircle(1), Position: mathx.V2{X: 5, Y: 5}})
	w.Add(b)

	_, ok := w.RayCast(mathx.V2{X: 0, Y: 0}, mathx.V2{X: 10, Y: 0})
	if ok {
		t.Errorf("expected ray to miss a body well off its path")
	}
}

func TestCastRayPolygonHitsFace(t *testing.T) {
	b := NewBody(Collider{Shape: NewBox(1, 1), Position: mathx.V2{X: 5, Y: 0}})
	point, fraction, hit := castRayPolygon(mathx.V2{X: 0, Y: 0}, mathx.V2{X: 10, Y: 0}, b)
	if !hit {
		t.Fatalf("expected ray to hit the box")
	}
	if point.X < 3.9 || point.X > 4.1 {
		t.Errorf("expected hit near x=4 (box left face), got %v", point.X)
	}
	if fraction <= 0 || fraction >= 1 {
		t.Errorf("expected fraction in (0,1), got %v", fraction)
	}
}
