// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"math"

	"github.com/gazed/corevu/mathx"
)

const maxFriction = 10.0

// Body is a single rigid body taking part in a 2D physics simulation.
// Bodies with zero mass are treated as fixed: they collide and generate
// contacts but are never moved by the solver.
type Body struct {
	id uint32

	Collider Collider

	LinearVelocity  mathx.V2
	AngularVelocity float64

	force  mathx.V2
	torque float64

	invMass    float64
	invInertia float64

	LinearDamping  float64
	AngularDamping float64

	// GravityScale multiplies the world's gravity constant for this body
	// alone, so a body can fall faster, slower, or not at all (0)
	// relative to the rest of the simulation.
	GravityScale float64

	Fixed   bool
	ProxyID int32 // assigned by World when the body is registered

	predicted    mathx.V2 // scratch: predicted position for broadphase margin
	prevVelocity mathx.V2 // velocity at the start of the current step, for trapezoidal integration
}

var bodyUUID uint32

// NewBody creates a body for the given collider shape with zero mass,
// making it fixed until SetMass is called.
func NewBody(collider Collider) *Body {
	bodyUUID++
	return &Body{
		id:           bodyUUID,
		Collider:     collider,
		Fixed:        true,
		GravityScale: 1,
	}
}

// SetMass assigns the body's mass and derives its rotational inertia from
// its shape. A mass of zero makes the body fixed.
func (b *Body) SetMass(mass float64) {
	if mass <= 0 {
		b.invMass = 0
		b.invInertia = 0
		b.Fixed = true
		return
	}
	b.invMass = 1.0 / mass
	inertia := b.Collider.Shape.Inertia(mass)
	if inertia > mathx.Epsilon {
		b.invInertia = 1.0 / inertia
	}
	b.Fixed = false
}

// Eq reports whether two bodies are the same instance.
func (b *Body) Eq(o *Body) bool { return b.id == o.id }

// ApplyForce accumulates a force acting at the body's center of mass,
// cleared at the end of every World.Step.
func (b *Body) ApplyForce(f mathx.V2) {
	if b.Fixed {
		return
	}
	b.force.X += f.X
	b.force.Y += f.Y
}

// ApplyTorque accumulates torque about the body's center of mass.
func (b *Body) ApplyTorque(t float64) {
	if b.Fixed {
		return
	}
	b.torque += t
}

// ApplyImpulse applies an instantaneous impulse at a world-space point,
// changing linear and angular velocity directly. Used by the solver to
// resolve contacts.
func (b *Body) ApplyImpulse(impulse, contactVector mathx.V2) {
	if b.Fixed {
		return
	}
	b.LinearVelocity.X += b.invMass * impulse.X
	b.LinearVelocity.Y += b.invMass * impulse.Y
	b.AngularVelocity += b.invInertia * contactVector.Cross(&impulse)
}

// velocityAtPoint returns the body's linear and angular velocity combined
// at a world-space point, relative to the body's center.
func (b *Body) velocityAtPoint(contactVector mathx.V2) mathx.V2 {
	return mathx.V2{
		X: b.LinearVelocity.X - b.AngularVelocity*contactVector.Y,
		Y: b.LinearVelocity.Y + b.AngularVelocity*contactVector.X,
	}
}

// integrateForces advances linear and angular velocity by the
// accumulated forces and torque over the timestep. Fixed bodies never
// move.
func (b *Body) integrateForces(dt float64) {
	if b.Fixed {
		return
	}
	b.prevVelocity = b.LinearVelocity
	b.LinearVelocity.X += b.force.X * b.invMass * dt
	b.LinearVelocity.Y += b.force.Y * b.invMass * dt
	b.AngularVelocity += b.torque * b.invInertia * dt

	damp := math.Pow(1.0-b.LinearDamping, dt)
	b.LinearVelocity.X *= damp
	b.LinearVelocity.Y *= damp
	b.AngularVelocity *= math.Pow(1.0-b.AngularDamping, dt)
}

// integrateVelocities advances the body's position using the trapezoidal
// average of its velocity at the start of the step and its velocity now
// (after force integration and any solver impulses), so a body accelerating
// uniformly from rest covers exactly the distance constant-acceleration
// kinematics predicts rather than overshooting by integrating the
// already-updated velocity over the whole step. Angle still advances by
// the current angular velocity alone.
func (b *Body) integrateVelocities(dt float64) {
	if b.Fixed {
		return
	}
	b.Collider.Position.X += 0.5 * (b.prevVelocity.X + b.LinearVelocity.X) * dt
	b.Collider.Position.Y += 0.5 * (b.prevVelocity.Y + b.LinearVelocity.Y) * dt
	b.Collider.Angle += b.AngularVelocity * dt
}

// clearForces resets accumulated force and torque, called once per step
// after integration.
func (b *Body) clearForces() {
	b.force = mathx.V2{}
	b.torque = 0
}

// predictAabb returns the Aabb the body is expected to occupy after
// advancing dt at its current velocity, used to fatten the broadphase
// proxy so it can absorb a step of motion without a tree update.
func (b *Body) predictAabb(dt float64) mathx.Box {
	current := b.Collider.Aabb()
	displacement := mathx.V2{X: b.LinearVelocity.X * dt, Y: b.LinearVelocity.Y * dt}
	return current.Displaced(displacement)
}
