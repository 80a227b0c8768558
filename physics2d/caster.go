// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"math"

	"github.com/gazed/corevu/broadphase"
	"github.com/gazed/corevu/mathx"
)

// RayHit is the closest point of contact found by World.RayCast.
type RayHit struct {
	Body     *Body
	Point    mathx.V2
	Fraction float64
}

// RayCast finds the closest body along the segment from p1 to p2,
// querying the broadphase tree for fattened-box candidates and then
// testing each one's exact shape.
func (w *World) RayCast(p1, p2 mathx.V2) (RayHit, bool) {
	var best RayHit
	found := false

	input := broadphase.RayCastInput{P1: p1, P2: p2, MaxFraction: 1.0}
	w.tree.RayCast(input, func(in broadphase.RayCastInput, proxyID int32) float64 {
		b, ok := w.bodies[proxyID]
		if !ok {
			return in.MaxFraction
		}
		point, fraction, hit := castRayShape(in.P1, in.P2, b)
		if !hit {
			return in.MaxFraction
		}
		best = RayHit{Body: b, Point: point, Fraction: fraction}
		found = true
		return fraction
	})
	return best, found
}

// castRayShape dispatches a segment test against the exact shape of b,
// using the analytic circle test for circles and an edge-by-edge segment
// test (castRayPolygon) for polygons.
func castRayShape(p1, p2 mathx.V2, b *Body) (point mathx.V2, fraction float64, hit bool) {
	switch s := b.Collider.Shape.(type) {
	case *Circle:
		return castRayCircle(p1, p2, b.Collider.Position, s.Radius)
	case *Polygon:
		return castRayPolygon(p1, p2, b)
	}
	return mathx.V2{}, 0, false
}

// castRayCircle solves the quadratic for the segment/circle intersection
// nearest p1.
func castRayCircle(p1, p2, center mathx.V2, radius float64) (mathx.V2, float64, bool) {
	d := mathx.V2{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	f := mathx.V2{X: p1.X - center.X, Y: p1.Y - center.Y}

	a := d.Dot(&d)
	bq := 2 * f.Dot(&d)
	c := f.Dot(&f) - radius*radius
	disc := bq*bq - 4*a*c
	if disc < 0 || a == 0 {
		return mathx.V2{}, 0, false
	}
	disc = math.Sqrt(disc)
	t := (-bq - disc) / (2 * a)
	if t < 0 || t > 1 {
		t = (-bq + disc) / (2 * a)
		if t < 0 || t > 1 {
			return mathx.V2{}, 0, false
		}
	}
	return mathx.V2{X: p1.X + d.X*t, Y: p1.Y + d.Y*t}, t, true
}

// castRayPolygon walks each edge of the polygon's world-space vertices and
// returns the nearest crossing of the segment, if any.
func castRayPolygon(p1, p2 mathx.V2, b *Body) (mathx.V2, float64, bool) {
	poly := b.Collider.Shape.(*Polygon)
	n := len(poly.Vertices)
	best := math.Inf(1)
	found := false
	var bestPoint mathx.V2

	for i := 0; i < n; i++ {
		va := b.Collider.toWorld(poly.Vertices[i])
		vb := b.Collider.toWorld(poly.Vertices[(i+1)%n])
		if t, point, ok := segmentIntersect(p1, p2, va, vb); ok && t < best {
			best, bestPoint, found = t, point, true
		}
	}
	return bestPoint, best, found
}

// segmentIntersect finds the intersection fraction t (along p1->p2) of two
// segments, using the standard 2D line-segment intersection formula.
func segmentIntersect(p1, p2, q1, q2 mathx.V2) (t float64, point mathx.V2, hit bool) {
	r := mathx.V2{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	s := mathx.V2{X: q2.X - q1.X, Y: q2.Y - q1.Y}
	denom := r.Cross(&s)
	if denom == 0 {
		return 0, mathx.V2{}, false
	}
	qp := mathx.V2{X: q1.X - p1.X, Y: q1.Y - p1.Y}
	tt := qp.Cross(&s) / denom
	uu := qp.Cross(&r) / denom
	if tt < 0 || tt > 1 || uu < 0 || uu > 1 {
		return 0, mathx.V2{}, false
	}
	return tt, mathx.V2{X: p1.X + r.X*tt, Y: p1.Y + r.Y*tt}, true
}
