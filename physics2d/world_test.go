// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"math"
	"testing"

	"github.com/gazed/corevu/mathx"
)

func TestWorldStepSettlesFallingCircleOnGround(t *testing.T) {
	w := NewWorld()

	ground := NewBody(Collider{Shape: NewBox(10, 1), Position: mathx.V2{X: 0, Y: -1}})
	w.Add(ground)

	ball := NewBody(Collider{Shape: NewCircle(0.5), Position: mathx.V2{X: 0, Y: 2}})
	ball.SetMass(1)
	ball.Collider.Restitution = 0
	ball.Collider.StaticFriction = 0.3
	w.Add(ball)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60.0)
	}

	// The ground's top surface sits at y=0 and the ball has radius 0.5,
	// so a correctly resolved contact keeps its center at or above that,
	// never tunneling through the floor.
	if ball.Collider.Position.Y < -0.1 {
		t.Errorf("expected the ball to be stopped by the ground, got y=%v", ball.Collider.Position.Y)
	}
}

// TestWorldStepGravityMatchesKinematics checks the exact displacement named
// by the invariant: a unit-mass circle dropped from rest with GravityScale=1
// moves by -½·g·dt² from its start after a single step, well clear of any
// ground contact.
func TestWorldStepGravityMatchesKinematics(t *testing.T) {
	w := NewWorld()
	ball := NewBody(Collider{Shape: NewCircle(0.5), Position: mathx.V2{X: 0, Y: 100}})
	ball.SetMass(1)
	w.Add(ball)

	const dt = 1.0 / 60.0
	w.Step(dt)

	want := -0.5 * 9.81 * dt * dt
	if got := ball.Collider.Position.Y - 100; math.Abs(got-want) > 1e-6 {
		t.Errorf("expected displacement %v from y=100, got %v", want, got)
	}
}

// TestWorldStepGravityScaleZeroHoldsBodyStill confirms GravityScale=0
// exempts a body from gravity entirely.
func TestWorldStepGravityScaleZeroHoldsBodyStill(t *testing.T) {
	w := NewWorld()
	ball := NewBody(Collider{Shape: NewCircle(0.5), Position: mathx.V2{X: 0, Y: 100}})
	ball.SetMass(1)
	ball.GravityScale = 0
	w.Add(ball)

	w.Step(1.0 / 60.0)

	if ball.Collider.Position.Y != 100 {
		t.Errorf("expected gravity-exempt body to stay at y=100, got %v", ball.Collider.Position.Y)
	}
}

func TestWorldAddAssignsProxyID(t *testing.T) {
	w := NewWorld()
	b := NewBody(Collider{Shape: NewCircle(1)})
	w.Add(b)
	if b.ProxyID < 0 {
		t.Errorf("expected a valid proxy id after Add")
	}
	if _, ok := w.bodies[b.ProxyID]; !ok {
		t.Errorf("expected body registered under its proxy id")
	}
}

func TestWorldQueryFindsOverlappingBody(t *testing.T) {
	w := NewWorld()
	b := NewBody(Collider{Shape: NewCircle(1), Position: mathx.V2{X: 5, Y: 5}})
	w.Add(b)

	found := w.Query(mathx.NewBox(4, 4, 6, 6))
	if len(found) != 1 || found[0] != b {
		t.Errorf("expected to find the registered body, got %v", found)
	}
}

func TestWorldRayCastHitsCircle(t *testing.T) {
	w := NewWorld()
	b := NewBody(Collider{Shape: NewCircle(1), Position: mathx.V2{X: 5, Y: 0}})
	w.Add(b)

	hit, ok := w.RayCast(mathx.V2{X: 0, Y: 0}, mathx.V2{X: 10, Y: 0})
	if !ok || hit.Body != b {
		t.Fatalf("expected ray to hit the circle body")
	}
	if hit.Point.X < 3.9 || hit.Point.X > 4.1 {
		t.Errorf("expected hit point near x=4, got %v", hit.Point.X)
	}
}
