// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import "sort"

// An Encoding is the result of scaling and normalizing the counts of
// one map.
type Encoding struct {
	// Scale is the scale the counts were mapped through.
	Scale Scale

	// Records has one entry per input CountryRecord, in input
	// order.
	Records []EncodedRecord

	// Min and Max are the bounds of the scaled values of the cited
	// records. Both are 0 if no record is cited.
	Min, Max float64
}

// Encode runs counts through the scale and normalization stages.
func Encode(counts []CountryRecord, s Scale) *Encoding {
	scaled := s.Apply(counts)
	e := &Encoding{Scale: s, Records: Normalize(scaled)}
	e.Min, e.Max, _ = citedBounds(scaled)
	return e
}

// Cited returns the cited records of e, in input order.
func (e *Encoding) Cited() []EncodedRecord {
	var out []EncodedRecord
	for _, r := range e.Records {
		if r.Cited() {
			out = append(out, r)
		}
	}
	return out
}

// Lookup returns the record for country code, if any.
func (e *Encoding) Lookup(code string) (EncodedRecord, bool) {
	code = NormalizeCode(code)
	for _, r := range e.Records {
		if r.Code == code {
			return r, true
		}
	}
	return EncodedRecord{}, false
}

// MarkerOrder returns the cited records in the order their markers
// must be drawn: by decreasing normalized value, with ties broken by
// increasing country code. A record with a larger normalized value is
// always drawn strictly before one with a smaller value.
func (e *Encoding) MarkerOrder() []EncodedRecord {
	out := e.Cited()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Normalized != out[j].Normalized {
			return out[i].Normalized > out[j].Normalized
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// HeatLevel returns the position of r on the heatmap palette: its
// scaled value mapped linearly from [e.Min, e.Max] to [0, 1]. If the
// cited records span no range, every level is 0.
func (e *Encoding) HeatLevel(r EncodedRecord) float64 {
	if e.Max == e.Min {
		return 0
	}
	return unitScale(e.Min, e.Max).Map(r.Scaled)
}
