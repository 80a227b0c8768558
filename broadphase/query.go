// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package broadphase

import (
	"math"

	"github.com/gazed/corevu/mathx"
)

// QueryCallback is invoked for every leaf whose fat box overlaps the query
// box. Returning false stops the query early.
type QueryCallback func(proxyID int32) bool

// Query performs a stack-based descent of the tree, invoking callback for
// every leaf whose fat box overlaps box.
func (t *Tree) Query(box mathx.Box, callback QueryCallback) {
	if t.root == nullNode {
		return
	}
	stack := []int32{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}
		n := &t.nodes[id]
		if !n.box.Overlaps(box) {
			continue
		}
		if n.isLeaf() {
			if !callback(id) {
				return
			}
		} else {
			stack = append(stack, n.left, n.right)
		}
	}
}

// RayCastInput describes a segment cast from P1 to P2, limited to the
// fraction of the segment in [0, MaxFraction].
type RayCastInput struct {
	P1, P2      mathx.V2
	MaxFraction float64
}

// RayCastCallback is invoked for every leaf whose fat box the segment
// passes through. Returning 0 stops the cast immediately. Returning a
// positive value shortens the remaining search to that fraction of the
// original segment (the caller has found a closer hit). Returning a
// negative value leaves the current maxFraction unchanged, to skip the
// leaf without terminating the cast.
type RayCastCallback func(input RayCastInput, proxyID int32) float64

// RayCast walks the tree with a segment-vs-fat-box separating axis test,
// narrowing the search as the callback reports closer hits.
func (t *Tree) RayCast(input RayCastInput, callback RayCastCallback) {
	if t.root == nullNode {
		return
	}

	p1, p2 := input.P1, input.P2
	r := mathx.V2{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	r.Unit()

	// v is the perpendicular of the segment direction, used as the
	// separating axis; abs_v is its component-wise absolute value.
	v := mathx.V2{X: -r.Y, Y: r.X}
	absV := mathx.V2{X: math.Abs(v.X), Y: math.Abs(v.Y)}

	maxFraction := input.MaxFraction

	segmentBox := func() mathx.Box {
		t := mathx.V2{X: p1.X + (p2.X-p1.X)*maxFraction, Y: p1.Y + (p2.Y-p1.Y)*maxFraction}
		return mathx.NewBox(p1.X, p1.Y, t.X, t.Y)
	}()

	stack := []int32{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nullNode {
			continue
		}
		n := &t.nodes[id]
		if !n.box.Overlaps(segmentBox) {
			continue
		}

		c := n.box.Center()
		h := n.box.Extents()
		px := p1.X - c.X
		py := p1.Y - c.Y
		separation := math.Abs(v.X*px+v.Y*py) - (absV.X*h.X + absV.Y*h.Y)
		if separation > 0 {
			continue
		}

		if n.isLeaf() {
			sub := RayCastInput{P1: input.P1, P2: input.P2, MaxFraction: maxFraction}
			value := callback(sub, id)
			if value == 0 {
				return
			}
			if value > 0 {
				maxFraction = value
				nt := mathx.V2{X: p1.X + (p2.X-p1.X)*maxFraction, Y: p1.Y + (p2.Y-p1.Y)*maxFraction}
				segmentBox = mathx.NewBox(p1.X, p1.Y, nt.X, nt.Y)
			}
		} else {
			stack = append(stack, n.left, n.right)
		}
	}
}
