// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package worldmap

import (
	"math"

	"github.com/golang/geo/r2"
)

// area returns the signed shoelace area of r and the sum used for its
// centroid (the centroid is sum / (3 * 2 * area)).
func (r Ring) area() (a float64, sum r2.Point) {
	n := len(r)
	if n < 3 {
		return 0, r2.Point{}
	}
	for i := 0; i < n; i++ {
		p, q := r[i], r[(i+1)%n]
		cross := p.Cross(q)
		a += cross
		sum = sum.Add(p.Add(q).Mul(cross))
	}
	return a / 2, sum
}

// Area returns the planar area enclosed by p, in square degrees.
func (p Polygon) Area() float64 {
	a, _ := p.moments()
	return a
}

// moments returns the area of p, holes subtracted, and its first
// moment. Ring orientation is ignored: the first ring always adds
// and every later ring always subtracts.
func (p Polygon) moments() (a float64, m r2.Point) {
	for i, ring := range p {
		ra, sum := ring.area()
		if ra == 0 {
			continue
		}
		// sum/(6*ra) is the ring centroid, so sum/6 scaled by the
		// sign of ra is its centroid weighted by |ra|.
		w := sum.Mul(1 / 6.0)
		if ra < 0 {
			ra, w = -ra, w.Mul(-1)
		}
		if i > 0 {
			ra, w = -ra, w.Mul(-1)
		}
		a += ra
		m = m.Add(w)
	}
	return a, m
}

// Centroid returns the area-weighted planar centroid of c. If c has
// no area, it returns the mean of its vertices. ok is false if c has
// no vertices at all.
func (c *Country) Centroid() (p r2.Point, ok bool) {
	var a float64
	var m r2.Point
	for _, poly := range c.Polygons {
		pa, pm := poly.moments()
		a += pa
		m = m.Add(pm)
	}
	if a > 0 && !math.IsInf(a, 0) {
		return m.Mul(1 / a), true
	}

	var n int
	for _, poly := range c.Polygons {
		for _, ring := range poly {
			for _, q := range ring {
				p = p.Add(q)
				n++
			}
		}
	}
	if n == 0 {
		return r2.Point{}, false
	}
	return p.Mul(1 / float64(n)), true
}
