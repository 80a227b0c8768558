// Copyright © 2024 Galvanized Logic Inc.

package physics2d

import (
	"math"
	"testing"

	"github.com/gazed/corevu/mathx"
)

func newDynamicBody(shape Shape, mass float64) *Body {
	b := NewBody(Collider{Shape: shape})
	b.SetMass(mass)
	return b
}

func TestSetMassMakesBodyMovable(t *testing.T) {
	b := newDynamicBody(NewCircle(1), 2)
	if b.Fixed {
		t.Errorf("expected a positive mass to make the body movable")
	}
	if math.Abs(b.invMass-0.5) > 1e-9 {
		t.Errorf("expected invMass 0.5, got %v", b.invMass)
	}
}

func TestSetMassZeroIsFixed(t *testing.T) {
	b := newDynamicBody(NewCircle(1), 0)
	if !b.Fixed {
		t.Errorf("expected zero mass body to be fixed")
	}
}

func TestIntegrateForcesAppliesGravityLikeForce(t *testing.T) {
	b := newDynamicBody(NewCircle(1), 1)
	b.ApplyForce(mathx.V2{X: 0, Y: -10})
	b.integrateForces(1.0)
	if b.LinearVelocity.Y >= 0 {
		t.Errorf("expected downward velocity after a downward force, got %v", b.LinearVelocity.Y)
	}
}

func TestFixedBodyIgnoresForces(t *testing.T) {
	b := newDynamicBody(NewCircle(1), 0)
	b.ApplyForce(mathx.V2{X: 10, Y: 10})
	b.integrateForces(1.0)
	if b.LinearVelocity.X != 0 || b.LinearVelocity.Y != 0 {
		t.Errorf("expected fixed body velocity to stay zero")
	}
}

func TestIntegrateVelocitiesMovesPosition(t *testing.T) {
	b := newDynamicBody(NewCircle(1), 1)
	b.prevVelocity = mathx.V2{X: 2, Y: 0}
	b.LinearVelocity = mathx.V2{X: 2, Y: 0}
	b.integrateVelocities(0.5)
	if math.Abs(b.Collider.Position.X-1) > 1e-9 {
		t.Errorf("expected position.X == 1, got %v", b.Collider.Position.X)
	}
}

// TestIntegrateVelocitiesDropFromRestMatchesKinematics exercises the trapezoidal
// position update against constant-acceleration kinematics: a unit-mass body
// dropped from rest under gravity alone should land at -½·g·dt² after one
// solver step, not at -g·dt² (which integrating only the post-step velocity
// would give).
func TestIntegrateVelocitiesDropFromRestMatchesKinematics(t *testing.T) {
	b := newDynamicBody(NewCircle(1), 1)
	const dt = 0.01
	b.ApplyForce(mathx.V2{X: 0, Y: Gravity * b.GravityScale / b.invMass})
	b.integrateForces(dt)
	b.integrateVelocities(dt)
	want := -0.5 * 9.81 * dt * dt
	if math.Abs(b.Collider.Position.Y-want) > 1e-6 {
		t.Errorf("expected position.Y == %v, got %v", want, b.Collider.Position.Y)
	}
}
