// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"math"

	"github.com/gazed/corevu/mathx"
)

// solverIterations is the number of sequential impulse passes run over
// the active contact set each step. More iterations converge closer to
// the exact LCP solution at higher cost.
const solverIterations = 8

// baumgarte is the position correction bias factor applied to penetrating
// contacts, trading energy for resolving overlap over a few steps instead
// of instantaneously.
const baumgarte = 0.2

// slop is the penetration allowance below which no positional bias is
// applied, preventing contacts from jittering at rest.
const slop = 0.01

// pair identifies the two bodies of an active contact along with the
// narrowphase result used to build the solver's constraints.
type pair struct {
	a, b    *Body
	contact Contact
}

// solve runs sequential impulse resolution over the given contacts,
// adjusting each body's velocity in place. dt is the step's timestep,
// used to scale the Baumgarte position bias.
func solve(pairs []pair, dt float64) {
	for iter := 0; iter < solverIterations; iter++ {
		for i := range pairs {
			resolve(&pairs[i], dt)
		}
	}
}

// relativeVector returns the vector from a body's center to a world-space
// point, the lever arm the solver uses to turn a point impulse into
// angular velocity change.
func relativeVector(b *Body, point mathx.V2) mathx.V2 {
	return mathx.V2{X: point.X - b.Collider.Position.X, Y: point.Y - b.Collider.Position.Y}
}

func scaled(v mathx.V2, s float64) mathx.V2   { return mathx.V2{X: v.X * s, Y: v.Y * s} }
func negated(v mathx.V2) mathx.V2             { return mathx.V2{X: -v.X, Y: -v.Y} }
func relVelocity(a, b *Body, ra, rb mathx.V2) mathx.V2 {
	va, vb := a.velocityAtPoint(ra), b.velocityAtPoint(rb)
	return mathx.V2{X: vb.X - va.X, Y: vb.Y - va.Y}
}

// resolve applies one sequential-impulse pass for a single contact,
// first the normal impulse, then Coulomb-clamped tangential friction.
func resolve(p *pair, dt float64) {
	a, b := p.a, p.b
	if a.Fixed && b.Fixed {
		return
	}
	ra := relativeVector(a, p.contact.Point)
	rb := relativeVector(b, p.contact.Point)

	normal := p.contact.Normal
	relVel := relVelocity(a, b, ra, rb)
	velAlongNormal := relVel.Dot(&normal)
	if velAlongNormal > 0 {
		return // already separating
	}

	invMassSum := a.invMass + b.invMass
	raCrossN := ra.Cross(&normal)
	rbCrossN := rb.Cross(&normal)
	invMassSum += raCrossN*raCrossN*a.invInertia + rbCrossN*rbCrossN*b.invInertia
	if invMassSum == 0 {
		return
	}

	restitution := combinedRestitution(a, b)
	bias := 0.0
	if dt > 0 {
		bias = baumgarte / dt * math.Max(0, p.contact.Depth-slop)
	}

	j := -(1+restitution)*velAlongNormal/invMassSum + bias/invMassSum

	impulse := scaled(normal, j)
	a.ApplyImpulse(negated(impulse), ra)
	b.ApplyImpulse(impulse, rb)

	applyFriction(p, ra, rb, j)
}

// applyFriction resolves the tangential component of the contact,
// clamping the friction impulse to the Coulomb cone scaled by this
// pass's normal impulse magnitude, capped at maxFriction.
func applyFriction(p *pair, ra, rb mathx.V2, normalImpulse float64) {
	a, b := p.a, p.b
	relVel := relVelocity(a, b, ra, rb)

	normal := p.contact.Normal
	along := relVel.Dot(&normal)
	tangent := mathx.V2{X: relVel.X - normal.X*along, Y: relVel.Y - normal.Y*along}
	length := tangent.Len()
	if length < 1e-9 {
		return
	}
	tangent = scaled(tangent, 1.0/length)

	invMassSum := a.invMass + b.invMass
	raCrossT := ra.Cross(&tangent)
	rbCrossT := rb.Cross(&tangent)
	invMassSum += raCrossT*raCrossT*a.invInertia + rbCrossT*rbCrossT*b.invInertia
	if invMassSum == 0 {
		return
	}

	jt := -tangent.Dot(&relVel) / invMassSum
	friction := combinedFriction(a, b)
	maxFrictionImpulse := math.Min(friction*math.Abs(normalImpulse), maxFriction)
	jt = math.Max(-maxFrictionImpulse, math.Min(maxFrictionImpulse, jt))

	impulse := scaled(tangent, jt)
	a.ApplyImpulse(negated(impulse), ra)
	b.ApplyImpulse(impulse, rb)
}

func combinedFriction(a, b *Body) float64 {
	return math.Sqrt(a.Collider.StaticFriction * b.Collider.StaticFriction)
}

func combinedRestitution(a, b *Body) float64 {
	return math.Max(a.Collider.Restitution, b.Collider.Restitution)
}
