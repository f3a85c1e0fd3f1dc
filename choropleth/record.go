// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package choropleth turns per-country citation counts into the
// visual encoding of a choropleth map.
//
// The pipeline runs in four pure stages:
//
//	codes → Aggregate → Scale.Apply → Normalize → Style.Attributes
//
// Each stage returns fresh slices and never modifies its input, so
// one set of counts may be encoded under several scales and styles
// without copying.
package choropleth

import (
	"log"
	"os"
)

// Warning is a logger for reporting configuration problems that
// don't prevent a map from being produced, such as an unknown scale
// name that was replaced by its default.
var Warning = log.New(os.Stderr, "[choropleth] ", log.Lshortfile)

// A CountryRecord is the number of citations attributed to one
// country.
type CountryRecord struct {
	// Code is the ISO 3166-1 alpha-2 code of the country, as
	// given by the geometry source.
	Code string

	// Count is the number of citation records whose citing
	// country is Code. It is never negative.
	Count int
}

// Cited reports whether at least one citation is attributed to r.
func (r CountryRecord) Cited() bool {
	return r.Count > 0
}

// A ScaledRecord is a CountryRecord with its count mapped through a
// Scale.
type ScaledRecord struct {
	CountryRecord

	// Scaled is a non-decreasing function of Count. It is 0
	// whenever Count is 0, regardless of scale.
	Scaled float64
}

// An EncodedRecord is a ScaledRecord placed on the unit interval
// relative to the other cited countries.
type EncodedRecord struct {
	ScaledRecord

	// Normalized is in [0, 1]. It is 0 for uncited countries.
	Normalized float64
}
