// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package worldmap provides country boundaries keyed by ISO 3166-1
// alpha-2 code.
//
// Coordinates are planar (longitude, latitude) pairs in degrees, as
// given by the source. A Dataset is never modified after it is
// loaded, so one Dataset may be shared by concurrent renders.
package worldmap

import (
	"strings"

	"github.com/golang/geo/r2"
)

// A Ring is a closed sequence of (longitude, latitude) points. The
// closing point may or may not repeat the first point.
type Ring []r2.Point

// A Polygon is an exterior ring followed by zero or more holes.
type Polygon []Ring

// A Country is one feature of the geometry source.
type Country struct {
	Name string

	// Code is the upper-case ISO alpha-2 code, or "" if the
	// source has no usable code for this feature.
	Code string

	Polygons []Polygon
}

// A Dataset is a set of countries.
type Dataset struct {
	Countries []Country
}

// Codes returns the non-empty country codes of d, in dataset order.
func (d *Dataset) Codes() []string {
	var codes []string
	for _, c := range d.Countries {
		if c.Code != "" {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// Lookup returns the first country with the given code.
func (d *Dataset) Lookup(code string) (*Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, false
	}
	for i := range d.Countries {
		if d.Countries[i].Code == code {
			return &d.Countries[i], true
		}
	}
	return nil, false
}

// Bounds returns the bounding rectangle of every point in d.
func (d *Dataset) Bounds() r2.Rect {
	b := r2.EmptyRect()
	for _, c := range d.Countries {
		b = b.Union(c.Bounds())
	}
	return b
}

// Bounds returns the bounding rectangle of c.
func (c *Country) Bounds() r2.Rect {
	b := r2.EmptyRect()
	for _, poly := range c.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				b = b.AddPoint(p)
			}
		}
	}
	return b
}
