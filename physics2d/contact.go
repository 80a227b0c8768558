// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"math"

	"github.com/gazed/corevu/mathx"
)

// generateContact tests two bodies for overlap, preferring the analytic
// circle-circle case and falling back to GJK/EPA for anything involving a
// polygon. The returned normal always points from a toward b.
func generateContact(a, b *Body) (Contact, bool) {
	ca, okA := a.Collider.Shape.(*Circle)
	cb, okB := b.Collider.Shape.(*Circle)
	if okA && okB {
		return contactCircleCircle(a, ca, b, cb)
	}
	return contactGJK(a, b)
}

// contactCircleCircle is the fast analytic path for two circle colliders,
// avoiding GJK/EPA entirely.
func contactCircleCircle(a *Body, ca *Circle, b *Body, cb *Circle) (Contact, bool) {
	delta := mathx.V2{X: b.Collider.Position.X - a.Collider.Position.X, Y: b.Collider.Position.Y - a.Collider.Position.Y}
	dist := delta.Len()
	radiusSum := ca.Radius + cb.Radius
	if dist >= radiusSum {
		return Contact{}, false
	}
	var normal mathx.V2
	if dist > mathx.Epsilon {
		normal = delta
		normal.Unit()
	} else {
		normal = mathx.V2{X: 1, Y: 0}
	}
	point := mathx.V2{
		X: a.Collider.Position.X + normal.X*ca.Radius,
		Y: a.Collider.Position.Y + normal.Y*ca.Radius,
	}
	return Contact{Normal: normal, Depth: radiusSum - dist, Point: point}, true
}

// contactGJK resolves the general case (at least one polygon collider) via
// GJK to detect overlap and EPA to recover the separating normal and
// penetration depth, then estimates a single contact point by walking each
// shape's support point along the normal.
func contactGJK(a, b *Body) (Contact, bool) {
	hit, s := intersects(&a.Collider, &b.Collider)
	if !hit {
		return Contact{}, false
	}
	c := epaPenetration(&a.Collider, &b.Collider, s)

	neg := mathx.V2{X: -c.Normal.X, Y: -c.Normal.Y}
	supportA := a.Collider.Support(c.Normal)
	supportB := b.Collider.Support(neg)
	c.Point = mathx.V2{X: (supportA.X + supportB.X) * 0.5, Y: (supportA.Y + supportB.Y) * 0.5}
	return c, true
}

// closestPointOnSegment returns the point on segment [a,b] closest to p.
// contactGJK does not call it; its contact point is the midpoint of the
// two support points.
func closestPointOnSegment(p, a, b mathx.V2) mathx.V2 {
	ab := mathx.V2{X: b.X - a.X, Y: b.Y - a.Y}
	length := ab.LenSqr()
	if length < mathx.Epsilon {
		return a
	}
	ap := mathx.V2{X: p.X - a.X, Y: p.Y - a.Y}
	t := ap.Dot(&ab) / length
	t = math.Max(0, math.Min(1, t))
	return mathx.V2{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
}
