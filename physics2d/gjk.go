// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics2d

import "github.com/gazed/corevu/mathx"

// simplex is the up-to-3-point working set GJK evolves toward the origin.
// Point a is always the most recently added.
type simplex struct {
	a, b, c mathx.V2
	num     int
}

func (s *simplex) push(p mathx.V2) {
	switch s.num {
	case 1:
		s.b = s.a
	case 2:
		s.c = s.b
		s.b = s.a
	}
	s.a = p
	s.num++
}

// tripleProduct computes (a x b) x c restricted to the 2D plane, the
// vector used to step a direction perpendicular to an edge while leaning
// toward a third point.
func tripleProduct(a, b, c mathx.V2) mathx.V2 {
	ac := a.Dot(&c)
	bc := b.Dot(&c)
	return mathx.V2{X: b.X*ac - a.X*bc, Y: b.Y*ac - a.Y*bc}
}

// evolveLine handles the 2-point simplex case, returning the new search
// direction. The simplex never encloses the origin with only 2 points, so
// this never reports a collision.
func evolveLine(s *simplex, direction *mathx.V2) {
	a, b := s.a, s.b
	ao := mathx.V2{X: -a.X, Y: -a.Y}
	ab := mathx.V2{X: b.X - a.X, Y: b.Y - a.Y}
	if ab.Dot(&ao) >= 0 {
		s.a, s.b, s.num = a, b, 2
		*direction = tripleProduct(ab, ao, ab)
	} else {
		s.a, s.num = a, 1
		*direction = ao
	}
}

// evolveTriangle handles the 3-point simplex case. It returns true when
// the triangle encloses the origin, meaning the two shapes overlap.
func evolveTriangle(s *simplex, direction *mathx.V2) bool {
	a, b, c := s.a, s.b, s.c
	ao := mathx.V2{X: -a.X, Y: -a.Y}
	ab := mathx.V2{X: b.X - a.X, Y: b.Y - a.Y}
	ac := mathx.V2{X: c.X - a.X, Y: c.Y - a.Y}

	abPerp := tripleProduct(ac, ab, ab)
	acPerp := tripleProduct(ab, ac, ac)

	if abPerp.Dot(&ao) > 0 {
		s.a, s.b, s.num = a, b, 2
		*direction = abPerp
		return false
	}
	if acPerp.Dot(&ao) > 0 {
		s.a, s.b, s.num = a, c, 2
		*direction = acPerp
		return false
	}
	s.a, s.b, s.c, s.num = a, b, c, 3
	return true
}

func evolveSimplex(s *simplex, direction *mathx.V2) bool {
	switch s.num {
	case 2:
		evolveLine(s, direction)
		return false
	case 3:
		return evolveTriangle(s, direction)
	}
	return false
}

// intersects runs GJK on the Minkowski difference of a and b, returning
// true on overlap and, when it converges on a collision, the final
// simplex enclosing the origin (used by epaPenetration to find the
// contact normal and depth).
func intersects(a, b *Collider) (bool, simplex) {
	var s simplex
	s.a = supportOfMinkowskiDifference(a, b, mathx.V2{X: 1, Y: 0})
	s.num = 1
	direction := mathx.V2{X: -s.a.X, Y: -s.a.Y}

	for i := 0; i < 32; i++ {
		if direction.X == 0 && direction.Y == 0 {
			direction = mathx.V2{X: 1, Y: 0}
		}
		next := supportOfMinkowskiDifference(a, b, direction)
		if next.Dot(&direction) < 0 {
			return false, s
		}
		s.push(next)
		if evolveSimplex(&s, &direction) {
			return true, s
		}
	}
	return false, s
}
