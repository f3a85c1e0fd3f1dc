// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import "strings"

// NormalizeCode returns the canonical form of a country code for
// matching against the geometry source: surrounding space removed
// and upper-cased. Null markers such as "" and "N/A" map to "".
//
// "NA" is Namibia, not a null marker.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch code {
	case "N/A", "#N/A", "NULL", "NAN", "NONE", "-99":
		return ""
	}
	return code
}

// Aggregate counts citation records per country.
//
// codes holds the citing-country code of each citation record. known
// is the set of country codes of the geometry source. Aggregate
// returns exactly one record per distinct known code, in the order
// codes first appear in known, whose Count is the number of entries
// of codes that match it. Codes that are null or not in known are
// ignored.
//
// The result depends only on the multiset of codes.
func Aggregate(codes []string, known []string) []CountryRecord {
	index := make(map[string]int, len(known))
	out := make([]CountryRecord, 0, len(known))
	for _, k := range known {
		k = NormalizeCode(k)
		if k == "" {
			continue
		}
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = len(out)
		out = append(out, CountryRecord{Code: k})
	}

	for _, c := range codes {
		c = NormalizeCode(c)
		if c == "" {
			continue
		}
		if i, ok := index[c]; ok {
			out[i].Count++
		}
	}
	return out
}
