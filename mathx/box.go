// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package mathx

import "math"

// Box is an axis-aligned bounding box in 2D, used by the broadphase tree
// and the narrowphase colliders. Min and Max are opposite corners, with
// Min expected to be componentwise less than or equal to Max.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBox creates a box from opposing corners, fixing up the order of
// min/max per axis so the caller doesn't need to.
func NewBox(x0, y0, x1, y1 float64) Box {
	return Box{
		MinX: math.Min(x0, x1), MaxX: math.Max(x0, x1),
		MinY: math.Min(y0, y1), MaxY: math.Max(y0, y1),
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() V2 {
	return V2{X: (b.MinX + b.MaxX) * 0.5, Y: (b.MinY + b.MaxY) * 0.5}
}

// Extents returns the half-widths of the box along each axis.
func (b Box) Extents() V2 {
	return V2{X: (b.MaxX - b.MinX) * 0.5, Y: (b.MaxY - b.MinY) * 0.5}
}

// Contains returns true if box o lies entirely within b.
func (b Box) Contains(o Box) bool {
	return b.MinX <= o.MinX && o.MaxX <= b.MaxX && b.MinY <= o.MinY && o.MaxY <= b.MaxY
}

// Overlaps returns true if b and o share any area.
func (b Box) Overlaps(o Box) bool {
	if b.MaxX < o.MinX || o.MaxX < b.MinX {
		return false
	}
	if b.MaxY < o.MinY || o.MaxY < b.MinY {
		return false
	}
	return true
}

// Perimeter returns the perimeter of the box. This is the cost metric used
// by the broadphase tree's SAH insertion heuristic, rather than area, since
// it is cheaper to compute and the original engine's Tree uses it as its
// node cost.
func (b Box) Perimeter() float64 {
	wx := b.MaxX - b.MinX
	wy := b.MaxY - b.MinY
	return 2.0 * (wx + wy)
}

// Combine returns the smallest box containing both b and o.
func (b Box) Combine(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX), MaxX: math.Max(b.MaxX, o.MaxX),
		MinY: math.Min(b.MinY, o.MinY), MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// CombineBoxes returns the smallest box containing both a and b. It exists
// as a free function for call sites building a combined box from two other
// boxes without an existing receiver.
func CombineBoxes(a, b Box) Box {
	return a.Combine(b)
}

// Fattened returns a copy of b expanded by margin on every side.
func (b Box) Fattened(margin float64) Box {
	return Box{
		MinX: b.MinX - margin, MaxX: b.MaxX + margin,
		MinY: b.MinY - margin, MaxY: b.MaxY + margin,
	}
}

// Displaced returns a copy of b translated by d.
func (b Box) Displaced(d V2) Box {
	return Box{
		MinX: b.MinX + d.X, MaxX: b.MaxX + d.X,
		MinY: b.MinY + d.Y, MaxY: b.MaxY + d.Y,
	}
}
