// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics2d implements the engine's 2D rigid body simulation:
// circle and convex polygon colliders, GJK/EPA narrowphase, an impulse
// solver with Baumgarte stabilization and Coulomb friction, and a world
// driver that pulls candidate pairs from the broadphase tree.
package physics2d

import "github.com/gazed/corevu/mathx"

// Shape is a 2D collision primitive, always defined in local space
// centered at the origin. Combine a Shape with a body's transform to
// place it in world space.
type Shape interface {
	Type() int
	Area() float64

	// Aabb returns the local-space axis aligned bounding box, before any
	// transform or fattening is applied.
	Aabb() mathx.Box

	// Inertia returns the moment of inertia about the shape's own
	// center for a body of the given mass.
	Inertia(mass float64) float64

	// Support returns the local-space point of the shape furthest in
	// direction dir. Used by GJK/EPA.
	Support(dir mathx.V2) mathx.V2
}

// Shape type identifiers returned by Shape.Type().
const (
	CircleShape = iota
	PolygonShape
	NumShapes
)

// Circle is a collision shape primitive centered at the origin.
type Circle struct {
	Radius float64
}

// NewCircle creates a Circle shape of the given radius.
func NewCircle(radius float64) *Circle { return &Circle{Radius: radius} }

func (c *Circle) Type() int { return CircleShape }
func (c *Circle) Area() float64 {
	return mathx.PI * c.Radius * c.Radius
}

func (c *Circle) Aabb() mathx.Box {
	return mathx.NewBox(-c.Radius, -c.Radius, c.Radius, c.Radius)
}

func (c *Circle) Inertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) Support(dir mathx.V2) mathx.V2 {
	u := dir
	u.Unit()
	return mathx.V2{X: u.X * c.Radius, Y: u.Y * c.Radius}
}

// Polygon is a convex collision shape primitive described by its vertices
// in counter-clockwise winding order, centered so that the origin lies
// within the hull.
type Polygon struct {
	Vertices []mathx.V2
}

// NewPolygon creates a Polygon shape from vertices already in
// counter-clockwise order around the local origin.
func NewPolygon(vertices []mathx.V2) *Polygon {
	return &Polygon{Vertices: vertices}
}

// NewBox creates a Polygon shape for an axis-aligned box of the given
// half-widths, a convenience matching the common case of a rectangular
// collider.
func NewBox(halfWidth, halfHeight float64) *Polygon {
	return NewPolygon([]mathx.V2{
		{X: -halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: halfHeight},
		{X: -halfWidth, Y: halfHeight},
	})
}

func (p *Polygon) Type() int { return PolygonShape }

// Area computes the polygon's area via the shoelace formula.
func (p *Polygon) Area() float64 {
	var area float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		area += a.X*b.Y - b.X*a.Y
	}
	return area * 0.5
}

func (p *Polygon) Aabb() mathx.Box {
	box := mathx.NewBox(p.Vertices[0].X, p.Vertices[0].Y, p.Vertices[0].X, p.Vertices[0].Y)
	for _, v := range p.Vertices[1:] {
		box = box.Combine(mathx.NewBox(v.X, v.Y, v.X, v.Y))
	}
	return box
}

// Inertia approximates the polygon as uniform density and sums the
// contribution of each triangle formed with the local origin.
func (p *Polygon) Inertia(mass float64) float64 {
	var numerator, denominator float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		cross := a.Cross(&b)
		numerator += cross * (a.Dot(&a) + a.Dot(&b) + b.Dot(&b))
		denominator += cross
	}
	if denominator == 0 {
		return 0
	}
	return (mass / 6.0) * (numerator / denominator)
}

func (p *Polygon) Support(dir mathx.V2) mathx.V2 {
	best := p.Vertices[0]
	bestDot := best.Dot(&dir)
	for _, v := range p.Vertices[1:] {
		d := v.Dot(&dir)
		if d > bestDot {
			best = v
			bestDot = d
		}
	}
	return best
}
