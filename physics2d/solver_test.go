// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"testing"

	"github.com/gazed/corevu/mathx"
)

func TestResolveSeparatesApproachingBodies(t *testing.T) {
	a := newDynamicBody(NewCircle(1), 1)
	b := newDynamicBody(NewCircle(1), 1)
	b.Collider.Position = mathx.V2{X: 1.5, Y: 0}
	a.LinearVelocity = mathx.V2{X: 1, Y: 0}
	b.LinearVelocity = mathx.V2{X: -1, Y: 0}

	p := pair{a: a, b: b, contact: Contact{Normal: mathx.V2{X: 1, Y: 0}, Depth: 0.5, Point: mathx.V2{X: 0.75, Y: 0}}}
	solve([]pair{p}, 1.0/60.0)

	if a.LinearVelocity.X >= 1 {
		t.Errorf("expected body a to be pushed back by the impulse, got vx=%v", a.LinearVelocity.X)
	}
	if b.LinearVelocity.X <= -1 {
		t.Errorf("expected body b to be pushed back by the impulse, got vx=%v", b.LinearVelocity.X)
	}
}

func TestResolveIgnoresFixedPair(t *testing.T) {
	a := NewBody(Collider{Shape: NewCircle(1)})
	b := NewBody(Collider{Shape: NewCircle(1)})
	p := pair{a: a, b: b, contact: Contact{Normal: mathx.V2{X: 1, Y: 0}, Depth: 0.1}}
	solve([]pair{p}, 1.0/60.0)
	if a.LinearVelocity != (mathx.V2{}) || b.LinearVelocity != (mathx.V2{}) {
		t.Errorf("expected two fixed bodies to remain unaffected")
	}
}

func TestResolveDoesNotAffectSeparatingContact(t *testing.T) {
	a := newDynamicBody(NewCircle(1), 1)
	b := newDynamicBody(NewCircle(1), 1)
	b.Collider.Position = mathx.V2{X: 1.5, Y: 0}
	a.LinearVelocity = mathx.V2{X: -1, Y: 0} // already moving apart
	b.LinearVelocity = mathx.V2{X: 1, Y: 0}

	p := pair{a: a, b: b, contact: Contact{Normal: mathx.V2{X: 1, Y: 0}, Depth: 0.1, Point: mathx.V2{X: 0.75, Y: 0}}}
	solve([]pair{p}, 0) // zero dt disables positional bias

	if a.LinearVelocity.X != -1 || b.LinearVelocity.X != 1 {
		t.Errorf("expected velocities unchanged for an already-separating contact")
	}
}
