// Copyright © 2024 Galvanized Logic Inc.

package broadphase

import "sort"

// Pair is an unordered pair of broadphase proxies whose fat boxes
// overlap, and therefore a candidate for narrowphase testing. A and B are
// always stored with A < B so that duplicate pairs compare equal.
type Pair struct {
	A, B int32
}

func newPair(a, b int32) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// MoveQueue defers repeated MoveProxy notifications so that pair
// generation only has to re-query the tree around proxies that actually
// moved since the last UpdatePairs call, instead of rescanning everything.
type MoveQueue struct {
	moved []int32
}

// Queue records that proxyID moved and should be considered for new pairs
// the next time UpdatePairs runs.
func (q *MoveQueue) Queue(proxyID int32) {
	q.moved = append(q.moved, proxyID)
}

// UpdatePairs queries the tree around every queued proxy and returns the
// deduplicated set of overlapping pairs, dropping any pair excluded by the
// skip predicate (used by the caller to reject same-body or
// kinematic-kinematic pairs). It clears the queue and the moved flags of
// every proxy it visits.
func (t *Tree) UpdatePairs(q *MoveQueue, skip func(a, b int32) bool) []Pair {
	seen := map[Pair]bool{}
	var pairs []Pair

	for _, proxyID := range q.moved {
		if !t.nodes[proxyID].moved {
			continue
		}
		fat := t.FatBox(proxyID)
		t.Query(fat, func(other int32) bool {
			if other == proxyID {
				return true
			}
			if skip != nil && skip(proxyID, other) {
				return true
			}
			p := newPair(proxyID, other)
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
			return true
		})
		t.ClearMoved(proxyID)
	}

	q.moved = q.moved[:0]
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// unionFind is a disjoint-set over int32 ids, used to group overlapping,
// non-fixed bodies into simulation islands for constraint-solver batching.
type unionFind struct {
	parent map[int32]int32
}

func newUnionFind(ids []int32) *unionFind {
	parent := make(map[int32]int32, len(ids))
	for _, id := range ids {
		parent[id] = id
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int32) int32 {
	p, ok := u.parent[x]
	if !ok || p == x {
		return x
	}
	return u.find(p)
}

func (u *unionFind) union(x, y int32) {
	rx, ry := u.find(x), u.find(y)
	u.parent[ry] = rx
}

// SimulationIslands partitions ids into groups connected by pairs or
// extraLinks (additional constraint-based connections, e.g. joints, that
// must keep their endpoints in the same island even without a broadphase
// overlap). fixed bodies never link two islands together: a fixed body
// may appear in the pair/link list, but its presence doesn't union the
// two sides. Bodies for which isFixed reports true are excluded from the
// returned islands entirely.
func SimulationIslands(ids []int32, pairs []Pair, extraLinks []Pair, isFixed func(id int32) bool) [][]int32 {
	uf := newUnionFind(ids)

	union := func(a, b int32) {
		if !isFixed(a) && !isFixed(b) {
			uf.union(a, b)
		}
	}
	for _, p := range pairs {
		union(p.A, p.B)
	}
	for _, p := range extraLinks {
		union(p.A, p.B)
	}

	islandIndex := map[int32]int{}
	var islands [][]int32
	for _, id := range ids {
		if isFixed(id) {
			continue
		}
		root := uf.find(id)
		idx, ok := islandIndex[root]
		if !ok {
			idx = len(islands)
			islands = append(islands, nil)
			islandIndex[root] = idx
		}
		islands[idx] = append(islands[idx], id)
	}
	return islands
}
