// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestAggregate(t *testing.T) {
	for _, test := range []struct {
		name  string
		codes []string
		known []string
		want  []CountryRecord
	}{
		{"no citations", nil, []string{"US", "FR", "DE"},
			[]CountryRecord{{"US", 0}, {"FR", 0}, {"DE", 0}}},
		{"basic", []string{"US", "US", "FR"}, []string{"US", "FR", "DE"},
			[]CountryRecord{{"US", 2}, {"FR", 1}, {"DE", 0}}},
		{"case and space", []string{" us", "Us", "fr "}, []string{"US", "FR"},
			[]CountryRecord{{"US", 2}, {"FR", 1}}},
		{"unknown and null ignored", []string{"XX", "", "N/A", "US", "null"}, []string{"US"},
			[]CountryRecord{{"US", 1}}},
		{"namibia is not null", []string{"NA", "NA"}, []string{"NA", "ZA"},
			[]CountryRecord{{"NA", 2}, {"ZA", 0}}},
		{"duplicate known codes", []string{"US"}, []string{"US", "FR", "us"},
			[]CountryRecord{{"US", 1}, {"FR", 0}}},
		{"unusable known codes", []string{"US"}, []string{"-99", "", "US"},
			[]CountryRecord{{"US", 1}}},
	} {
		got := Aggregate(test.codes, test.known)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: Aggregate(%q, %q) = %v; want %v", test.name, test.codes, test.known, got, test.want)
		}
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	known := []string{"US", "FR", "DE", "JP", "BR"}
	codes := []string{"US", "US", "FR", "JP", "JP", "JP", "XX", "", "BR"}
	want := Aggregate(codes, known)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]string(nil), codes...)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if got := Aggregate(shuffled, known); !reflect.DeepEqual(got, want) {
			t.Fatalf("Aggregate(%q) = %v; want %v", shuffled, got, want)
		}
	}
}

func TestAggregateDoesNotModifyInput(t *testing.T) {
	codes := []string{" us", "fr"}
	known := []string{"us", "FR"}
	Aggregate(codes, known)
	if !reflect.DeepEqual(codes, []string{" us", "fr"}) || !reflect.DeepEqual(known, []string{"us", "FR"}) {
		t.Errorf("Aggregate modified its input: %q, %q", codes, known)
	}
}
