// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import "github.com/aclements/go-moremath/stats"

// citedBounds returns the minimum and maximum scaled values over the
// cited records of recs. ok is false if no record is cited.
func citedBounds(recs []ScaledRecord) (min, max float64, ok bool) {
	var xs []float64
	for _, r := range recs {
		if r.Cited() {
			xs = append(xs, r.Scaled)
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	min, max = stats.Bounds(xs)
	return min, max, true
}

// Normalize places the scaled value of every cited record on [0, 1]
// using the minimum and maximum over the cited records only.
//
// Uncited records are always 0 and never affect the bounds. If every
// cited record has the same scaled value, each of them is 1, marking
// it as maximal rather than absent.
func Normalize(recs []ScaledRecord) []EncodedRecord {
	out := make([]EncodedRecord, len(recs))
	for i, r := range recs {
		out[i].ScaledRecord = r
	}

	min, max, ok := citedBounds(recs)
	if !ok {
		return out
	}
	unit := unitScale(min, max)
	for i := range out {
		if !out[i].Cited() {
			continue
		}
		if max == min {
			out[i].Normalized = 1
			continue
		}
		out[i].Normalized = unit.Map(out[i].Scaled)
	}
	return out
}
