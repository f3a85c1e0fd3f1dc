// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// A Scale maps raw citation counts to scaled values.
//
// Every scale maps a count of 0 to 0 and is non-decreasing in the
// count.
type Scale int

const (
	// Linear uses the raw count.
	Linear Scale = iota

	// Log uses ln(1 + count).
	Log

	// Rank uses the dense rank of the count among all nonzero
	// counts, starting at 1 for the smallest nonzero count.
	Rank

	// LogRank uses ln(1 + rank), where rank is as for Rank.
	LogRank
)

// ErrUnknownScale is returned by ParseScale for an unrecognized
// scale name.
var ErrUnknownScale = errors.New("unknown scale")

var scaleNames = []string{
	Linear:  "linear",
	Log:     "log",
	Rank:    "rank",
	LogRank: "log_rank",
}

func (s Scale) String() string {
	if s < 0 || int(s) >= len(scaleNames) {
		return fmt.Sprintf("Scale(%d)", int(s))
	}
	return scaleNames[s]
}

// ParseScale returns the Scale named by name, which is one of
// "linear", "log", "rank", or "log_rank". Matching is
// case-insensitive and also accepts "-" in place of "_".
//
// If name is not recognized, ParseScale returns Linear and an error
// wrapping ErrUnknownScale.
func ParseScale(name string) (Scale, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for s, n := range scaleNames {
		if key == n {
			return Scale(s), nil
		}
	}
	return Linear, fmt.Errorf("%w %q (want linear, log, rank, or log_rank)", ErrUnknownScale, name)
}

// Apply maps every record in recs through s. Scaling is defined over
// the whole population of recs: the rank scales need every count to
// place each one.
func (s Scale) Apply(recs []CountryRecord) []ScaledRecord {
	out := make([]ScaledRecord, len(recs))
	for i, r := range recs {
		out[i].CountryRecord = r
	}

	switch s {
	default:
		Warning.Printf("unknown scale %v; using %v", s, Linear)
		fallthrough
	case Linear:
		for i := range out {
			out[i].Scaled = float64(out[i].Count)
		}

	case Log:
		for i := range out {
			out[i].Scaled = math.Log1p(float64(out[i].Count))
		}

	case Rank, LogRank:
		ranks := denseRanks(recs)
		for i := range out {
			out[i].Scaled = float64(ranks[out[i].Count])
			if s == LogRank {
				out[i].Scaled = math.Log1p(out[i].Scaled)
			}
		}
	}

	// Uncited countries are always 0, whatever the formula says.
	for i := range out {
		if !out[i].Cited() {
			out[i].Scaled = 0
		}
	}
	return out
}

// denseRanks returns a map from each nonzero count in recs to its
// dense rank among the distinct nonzero counts. The smallest nonzero
// count has rank 1 and ties share a rank. A count of 0 has rank 0.
func denseRanks(recs []CountryRecord) map[int]int {
	var distinct []int
	seen := make(map[int]bool)
	for _, r := range recs {
		if r.Cited() && !seen[r.Count] {
			seen[r.Count] = true
			distinct = append(distinct, r.Count)
		}
	}
	sort.Ints(distinct)

	ranks := make(map[int]int, len(distinct)+1)
	ranks[0] = 0
	for i, c := range distinct {
		ranks[c] = i + 1
	}
	return ranks
}
