// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"math"

	"github.com/gazed/corevu/mathx"
)

// Collider pairs a Shape with the position/rotation it currently occupies
// in world space. Bodies own one Collider each.
type Collider struct {
	Shape      Shape
	Position   mathx.V2
	Angle      float64
	Restitution float64
	StaticFriction  float64
	DynamicFriction float64
}

// toWorld transforms a local-space point by the collider's position and
// rotation.
func (c *Collider) toWorld(p mathx.V2) mathx.V2 {
	s, cs := math.Sin(c.Angle), math.Cos(c.Angle)
	return mathx.V2{
		X: c.Position.X + p.X*cs - p.Y*s,
		Y: c.Position.Y + p.X*s + p.Y*cs,
	}
}

// toLocalDir rotates a world-space direction into the collider's local
// space, the inverse of the rotation applied by toWorld.
func (c *Collider) toLocalDir(d mathx.V2) mathx.V2 {
	s, cs := math.Sin(-c.Angle), math.Cos(-c.Angle)
	return mathx.V2{X: d.X*cs - d.Y*s, Y: d.X*s + d.Y*cs}
}

// Support returns the world-space point of the collider furthest in
// direction dir, used by GJK/EPA on the Minkowski difference of two
// colliders.
func (c *Collider) Support(dir mathx.V2) mathx.V2 {
	local := c.toLocalDir(dir)
	return c.toWorld(c.Shape.Support(local))
}

// Aabb returns the collider's current world-space axis aligned bounding
// box, conservatively covering the shape at any rotation by inscribing its
// local Aabb in a circle of the same radius.
func (c *Collider) Aabb() mathx.Box {
	local := c.Shape.Aabb()
	center := local.Center()
	extents := local.Extents()
	radius := math.Hypot(extents.X, extents.Y) + math.Hypot(center.X, center.Y)
	return mathx.NewBox(
		c.Position.X-radius, c.Position.Y-radius,
		c.Position.X+radius, c.Position.Y+radius,
	)
}

// supportOfMinkowskiDifference returns the point of (a - b) furthest in
// dir, the building block GJK walks toward the origin.
func supportOfMinkowskiDifference(a, b *Collider, dir mathx.V2) mathx.V2 {
	sa := a.Support(dir)
	neg := mathx.V2{X: -dir.X, Y: -dir.Y}
	sb := b.Support(neg)
	return mathx.V2{X: sa.X - sb.X, Y: sa.Y - sb.Y}
}
