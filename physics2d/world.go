// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import (
	"github.com/gazed/corevu/broadphase"
	"github.com/gazed/corevu/mathx"
)

// Gravity is the default downward acceleration applied to every movable
// body each step, in meters per second squared.
const Gravity = -9.81

// World owns a set of bodies, the broadphase tree tracking their proxies,
// and the solver state. Step advances the whole simulation by one fixed
// timestep: integrate forces, move proxies, collect candidate pairs,
// narrowphase them into contacts, then resolve and integrate positions.
type World struct {
	tree    *broadphase.Tree
	bodies  map[int32]*Body
	moved   *broadphase.MoveQueue
	Gravity float64
}

// NewWorld creates an empty simulation world using the default gravity.
func NewWorld() *World {
	return &World{
		tree:    broadphase.NewTree(),
		bodies:  make(map[int32]*Body),
		moved:   &broadphase.MoveQueue{},
		Gravity: Gravity,
	}
}

// Add registers a body with the world, creating its broadphase proxy from
// its current Aabb and assigning its ProxyID.
func (w *World) Add(b *Body) {
	box := b.Collider.Aabb()
	id := w.tree.CreateProxy(box, b)
	b.ProxyID = id
	w.bodies[id] = b
}

// Remove unregisters a body, destroying its broadphase proxy.
func (w *World) Remove(b *Body) {
	w.tree.DestroyProxy(b.ProxyID)
	delete(w.bodies, b.ProxyID)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if !b.Fixed {
			b.ApplyForce(mathx.V2{X: 0, Y: w.Gravity * b.GravityScale / b.invMass})
		}
	}
	for _, b := range w.bodies {
		b.integrateForces(dt)
	}

	for id, b := range w.bodies {
		newBox := b.predictAabb(dt)
		displacement := mathx.V2{X: b.LinearVelocity.X * dt, Y: b.LinearVelocity.Y * dt}
		if w.tree.MoveProxy(id, newBox, displacement) {
			w.moved.Queue(id)
		}
	}

	candidates := w.tree.UpdatePairs(w.moved, w.skipPair)

	var pairs []pair
	for _, c := range candidates {
		a, b := w.bodies[c.A], w.bodies[c.B]
		if a == nil || b == nil {
			continue
		}
		if contact, hit := generateContact(a, b); hit {
			pairs = append(pairs, pair{a: a, b: b, contact: contact})
		}
	}

	solve(pairs, dt)

	for _, b := range w.bodies {
		b.integrateVelocities(dt)
		b.clearForces()
	}
}

// skipPair drops candidate pairs the solver should never see: a body
// paired with itself, and two fixed bodies (neither can move, so no
// contact resolution would do anything).
func (w *World) skipPair(a, b int32) bool {
	if a == b {
		return true
	}
	ba, bb := w.bodies[a], w.bodies[b]
	if ba == nil || bb == nil {
		return true
	}
	return ba.Fixed && bb.Fixed
}

// Query reports every body whose fattened broadphase box overlaps box.
func (w *World) Query(box mathx.Box) []*Body {
	var found []*Body
	w.tree.Query(box, func(proxyID int32) bool {
		if b, ok := w.bodies[proxyID]; ok {
			found = append(found, b)
		}
		return true
	})
	return found
}
