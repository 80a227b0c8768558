// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"math"

	"github.com/gazed/corevu/mathx"
)

const epaTolerance = 0.0001
const epaMaxIterations = 32

// edgeInfo identifies the closest edge of the expanding polytope to the
// origin: its distance, outward normal, and the index to insert a new
// vertex at.
type edgeInfo struct {
	distance float64
	normal   mathx.V2
	index    int
}

// closestEdge scans the polytope's edges and returns the one nearest the
// origin along with its outward-facing normal.
func closestEdge(polytope []mathx.V2) edgeInfo {
	best := edgeInfo{distance: math.MaxFloat64}
	for i := 0; i < len(polytope); i++ {
		j := (i + 1) % len(polytope)
		a, b := polytope[i], polytope[j]
		edge := mathx.V2{X: b.X - a.X, Y: b.Y - a.Y}
		if edge.X == 0 && edge.Y == 0 {
			continue // duplicate vertex: a zero-length edge has no normal
		}

		normal := mathx.V2{X: edge.Y, Y: -edge.X}
		normal.Unit()
		dist := normal.Dot(&a)
		if dist < 0 {
			normal = mathx.V2{X: -normal.X, Y: -normal.Y}
			dist = -dist
		}
		if dist < best.distance {
			best = edgeInfo{distance: dist, normal: normal, index: j}
		}
	}
	return best
}

// Contact describes the result of a narrowphase test: the separation
// normal (pointing from a toward b) and how far the shapes interpenetrate.
type Contact struct {
	Normal mathx.V2
	Depth  float64
	Point  mathx.V2
}

// epaPenetration expands the GJK termination simplex into the full
// Minkowski-difference polytope until it finds the edge closest to the
// origin, which gives the minimum translation vector separating a and b.
func epaPenetration(a, b *Collider, s simplex) Contact {
	polytope := []mathx.V2{s.a, s.b, s.c}

	for i := 0; i < epaMaxIterations; i++ {
		edge := closestEdge(polytope)
		support := supportOfMinkowskiDifference(a, b, edge.normal)
		dist := edge.normal.Dot(&support)

		if dist-edge.distance < epaTolerance {
			return Contact{Normal: edge.normal, Depth: dist}
		}

		polytope = append(polytope, mathx.V2{})
		copy(polytope[edge.index+1:], polytope[edge.index:len(polytope)-1])
		polytope[edge.index] = support
	}

	edge := closestEdge(polytope)
	return Contact{Normal: edge.normal, Depth: edge.distance}
}
