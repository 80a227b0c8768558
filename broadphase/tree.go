// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package broadphase implements a dynamic, balanced AABB tree used to cull
// candidate object pairs before narrowphase collision testing. Proxies carry
// a fattened copy of the object's true bounding box so that small motions
// don't force a tree re-insertion on every step.
package broadphase

import "github.com/gazed/corevu/mathx"

// boxExtension fattens a newly inserted proxy's box on every side.
const boxExtension = 0.1

// boxMultiplier scales the per-axis displacement used to predictively
// fatten a moving proxy's box in the direction of travel.
const boxMultiplier = 4.0

// nullNode is the sentinel used for absent parent/child/free-list links.
const nullNode = -1

// node is one entry of the tree's node pool. Leaves carry an object and
// have left == nullNode; internal nodes carry the union box of their
// children and no object.
type node struct {
	box    mathx.Box
	parent int32
	left   int32
	right  int32
	height int32
	moved  bool
	object any
}

func (n *node) isLeaf() bool { return n.left == nullNode }

// Tree is a dynamic AABB tree, following the shape and algorithms of a
// box2d-style broadphase: nodes are pooled in a flat slice, a free list
// threads unused nodes through their parent field, and insertion chooses
// the sibling that minimizes the surface-area heuristic cost.
type Tree struct {
	nodes          []node
	root           int32
	nodeCount      int32
	freeList       int32
	insertionCount uint32
}

// NewTree creates an empty tree with an initial node pool of 16 entries.
func NewTree() *Tree {
	t := &Tree{root: nullNode}
	t.growTo(16)
	return t
}

// growTo replaces the node pool with one of the given capacity, threading
// the newly added entries onto the free list. capacity must be >= the
// current length of t.nodes.
func (t *Tree) growTo(capacity int32) {
	start := int32(len(t.nodes))
	grown := make([]node, capacity)
	copy(grown, t.nodes)
	for i := start; i < capacity-1; i++ {
		grown[i].parent = i + 1
		grown[i].height = -1
	}
	grown[capacity-1].parent = nullNode
	grown[capacity-1].height = -1
	t.nodes = grown
	t.freeList = start
}

// allocateNode pops a node off the free list, doubling the pool first if
// it is empty.
func (t *Tree) allocateNode() int32 {
	if t.freeList == nullNode {
		t.growTo(int32(len(t.nodes)) * 2)
	}

	id := t.freeList
	t.freeList = t.nodes[id].parent
	n := &t.nodes[id]
	n.parent = nullNode
	n.left = nullNode
	n.right = nullNode
	n.height = 0
	n.moved = false
	n.object = nil
	t.nodeCount++
	return id
}

// freeNode returns a node to the free list.
func (t *Tree) freeNode(id int32) {
	t.nodes[id].parent = t.freeList
	t.nodes[id].height = -1
	t.freeList = id
	t.nodeCount--
}

// CreateProxy inserts object with its true bounding box box, fattened by
// boxExtension on every side, and returns a stable proxy id.
func (t *Tree) CreateProxy(box mathx.Box, object any) int32 {
	id := t.allocateNode()
	n := &t.nodes[id]
	n.box = box.Fattened(boxExtension)
	n.height = 0
	n.moved = true
	n.object = object

	t.insertLeaf(id)
	return id
}

// DestroyProxy removes proxyID from the tree and returns its node to the
// free list.
func (t *Tree) DestroyProxy(proxyID int32) {
	t.removeLeaf(proxyID)
	t.freeNode(proxyID)
}

// FatBox returns the current fattened box of a proxy.
func (t *Tree) FatBox(proxyID int32) mathx.Box { return t.nodes[proxyID].box }

// Object returns the object associated with a proxy.
func (t *Tree) Object(proxyID int32) any { return t.nodes[proxyID].object }

// WasMoved reports whether a proxy moved since its last ClearMoved call.
func (t *Tree) WasMoved(proxyID int32) bool { return t.nodes[proxyID].moved }

// ClearMoved resets a proxy's moved flag.
func (t *Tree) ClearMoved(proxyID int32) { t.nodes[proxyID].moved = false }

// MoveProxy updates proxyID's true box to newBox. If the proxy's existing
// fat box already contains newBox and a generously fattened "huge box"
// also contains it, the move is absorbed and false is returned without
// touching the tree. Otherwise the proxy is removed, its box is re-fattened
// (inflated further in the direction of displacement so fast-moving
// objects don't immediately re-trigger a move), reinserted, and true is
// returned.
func (t *Tree) MoveProxy(proxyID int32, newBox mathx.Box, displacement mathx.V2) bool {
	box := t.nodes[proxyID].box
	if box.Contains(newBox) {
		huge := newBox.Fattened(boxExtension * 4)
		if huge.Contains(box) {
			return false
		}
	}

	fatBox := newBox.Fattened(boxExtension)
	d := mathx.V2{X: displacement.X * boxMultiplier, Y: displacement.Y * boxMultiplier}
	if d.X < 0 {
		fatBox.MinX += d.X
	} else {
		fatBox.MaxX += d.X
	}
	if d.Y < 0 {
		fatBox.MinY += d.Y
	} else {
		fatBox.MaxY += d.Y
	}

	t.removeLeaf(proxyID)
	t.nodes[proxyID].box = fatBox
	t.insertLeaf(proxyID)
	t.nodes[proxyID].moved = true
	return true
}

// insertLeaf inserts an already-allocated leaf node into the tree,
// choosing the sibling that minimizes the surface-area heuristic cost and
// rebalancing every ancestor on the way back up to the root.
func (t *Tree) insertLeaf(leaf int32) {
	t.insertionCount++

	if t.root == nullNode {
		t.root = leaf
		t.nodes[t.root].parent = nullNode
		return
	}

	leafBox := t.nodes[leaf].box
	index := t.root
	for !t.nodes[index].isLeaf() {
		left := t.nodes[index].left
		right := t.nodes[index].right

		area := t.nodes[index].box.Perimeter()
		combined := t.nodes[index].box.Combine(leafBox)
		combinedArea := combined.Perimeter()

		cost := 2.0 * combinedArea
		inheritanceCost := 2.0 * (combinedArea - area)

		var leftCost float64
		if t.nodes[left].isLeaf() {
			leftCost = leafBox.Combine(t.nodes[left].box).Perimeter() + inheritanceCost
		} else {
			oldArea := t.nodes[left].box.Perimeter()
			newArea := leafBox.Combine(t.nodes[left].box).Perimeter()
			leftCost = (newArea - oldArea) + inheritanceCost
		}

		var rightCost float64
		if t.nodes[right].isLeaf() {
			rightCost = leafBox.Combine(t.nodes[right].box).Perimeter() + inheritanceCost
		} else {
			oldArea := t.nodes[right].box.Perimeter()
			newArea := leafBox.Combine(t.nodes[right].box).Perimeter()
			rightCost = (newArea - oldArea) + inheritanceCost
		}

		if cost < leftCost && cost < rightCost {
			break
		}
		if leftCost < rightCost {
			index = left
		} else {
			index = right
		}
	}

	sibling := index
	oldParent := t.nodes[sibling].parent
	newParent := t.allocateNode()
	np := &t.nodes[newParent]
	np.parent = oldParent
	np.box = leafBox.Combine(t.nodes[sibling].box)
	np.height = t.nodes[sibling].height + 1

	if oldParent != nullNode {
		if t.nodes[oldParent].left == sibling {
			t.nodes[oldParent].left = newParent
		} else {
			t.nodes[oldParent].right = newParent
		}
	} else {
		t.root = newParent
	}
	t.nodes[newParent].left = sibling
	t.nodes[newParent].right = leaf
	t.nodes[sibling].parent = newParent
	t.nodes[leaf].parent = newParent

	index = t.nodes[leaf].parent
	for index != nullNode {
		index = t.balance(index)

		left := t.nodes[index].left
		right := t.nodes[index].right
		t.nodes[index].height = 1 + max32(t.nodes[left].height, t.nodes[right].height)
		t.nodes[index].box = t.nodes[left].box.Combine(t.nodes[right].box)

		index = t.nodes[index].parent
	}
}

// removeLeaf removes a leaf node from the tree, promoting its sibling into
// its grandparent's slot and rebalancing the remaining ancestors.
func (t *Tree) removeLeaf(leaf int32) {
	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.nodes[leaf].parent
	grandParent := t.nodes[parent].parent
	var sibling int32
	if t.nodes[parent].left == leaf {
		sibling = t.nodes[parent].right
	} else {
		sibling = t.nodes[parent].left
	}

	if grandParent != nullNode {
		if t.nodes[grandParent].left == parent {
			t.nodes[grandParent].left = sibling
		} else {
			t.nodes[grandParent].right = sibling
		}
		t.nodes[sibling].parent = grandParent
		t.freeNode(parent)

		index := grandParent
		for index != nullNode {
			index = t.balance(index)

			left := t.nodes[index].left
			right := t.nodes[index].right
			t.nodes[index].box = t.nodes[left].box.Combine(t.nodes[right].box)
			t.nodes[index].height = 1 + max32(t.nodes[left].height, t.nodes[right].height)

			index = t.nodes[index].parent
		}
	} else {
		t.root = sibling
		t.nodes[sibling].parent = nullNode
		t.freeNode(parent)
	}
}

// balance performs a single AVL-style rotation rooted at iA if its two
// children differ in height by more than one, promoting the taller
// grandchild. It returns the id of the node now occupying iA's old slot.
func (t *Tree) balance(iA int32) int32 {
	a := &t.nodes[iA]
	if a.isLeaf() || a.height < 2 {
		return iA
	}

	iB := a.left
	iC := a.right
	b := &t.nodes[iB]
	c := &t.nodes[iC]

	balance := c.height - b.height

	if balance > 1 {
		iF := c.left
		iG := c.right
		f := &t.nodes[iF]
		g := &t.nodes[iG]

		c.left = iA
		c.parent = a.parent
		a.parent = iC

		if c.parent != nullNode {
			if t.nodes[c.parent].left == iA {
				t.nodes[c.parent].left = iC
			} else {
				t.nodes[c.parent].right = iC
			}
		} else {
			t.root = iC
		}

		if f.height > g.height {
			c.right = iF
			a.right = iG
			g.parent = iA
			a.box = b.box.Combine(g.box)
			c.box = a.box.Combine(f.box)
			a.height = 1 + max32(b.height, g.height)
			c.height = 1 + max32(a.height, f.height)
		} else {
			c.right = iG
			a.right = iF
			f.parent = iA
			a.box = b.box.Combine(f.box)
			c.box = a.box.Combine(g.box)
			a.height = 1 + max32(b.height, f.height)
			c.height = 1 + max32(a.height, g.height)
		}

		return iC
	}

	if balance < -1 {
		iD := b.left
		iE := b.right
		d := &t.nodes[iD]
		e := &t.nodes[iE]

		b.left = iA
		b.parent = a.parent
		a.parent = iB

		if b.parent != nullNode {
			if t.nodes[b.parent].left == iA {
				t.nodes[b.parent].left = iB
			} else {
				t.nodes[b.parent].right = iB
			}
		} else {
			t.root = iB
		}

		if d.height > e.height {
			b.right = iD
			a.left = iE
			e.parent = iA
			a.box = c.box.Combine(e.box)
			b.box = a.box.Combine(d.box)
			a.height = 1 + max32(c.height, e.height)
			b.height = 1 + max32(a.height, d.height)
		} else {
			b.right = iE
			a.left = iD
			d.parent = iA
			a.box = c.box.Combine(d.box)
			b.box = a.box.Combine(e.box)
			a.height = 1 + max32(c.height, d.height)
			b.height = 1 + max32(a.height, e.height)
		}

		return iB
	}

	return iA
}

// Height returns the height of the whole tree, or 0 if it is empty.
func (t *Tree) Height() int32 {
	if t.root == nullNode {
		return 0
	}
	return t.nodes[t.root].height
}

// MaxBalance returns the largest height difference between sibling
// subtrees anywhere in the tree, a diagnostic for how well-balanced the
// tree currently is.
func (t *Tree) MaxBalance() int32 {
	var maxBalance int32
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.height <= 1 {
			continue
		}
		balance := t.nodes[n.right].height - t.nodes[n.left].height
		if balance < 0 {
			balance = -balance
		}
		if balance > maxBalance {
			maxBalance = balance
		}
	}
	return maxBalance
}

// AreaRatio returns the ratio of the summed perimeter of every node's box
// to the perimeter of the root's box, a diagnostic for how much excess fat
// the tree is carrying relative to its tightest possible bound.
func (t *Tree) AreaRatio() float64 {
	if t.root == nullNode {
		return 0
	}
	rootArea := t.nodes[t.root].box.Perimeter()

	var totalArea float64
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.height < 0 {
			continue
		}
		totalArea += n.box.Perimeter()
	}
	return totalArea / rootArea
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
