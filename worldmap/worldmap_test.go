// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package worldmap

import (
	"compress/gzip"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
)

const testCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "properties": {"NAME": "Squareland", "ISO_A2": "SQ"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]}},
    {"type": "Feature",
     "properties": {"name": "France", "iso_a2": "-99", "iso_a2_eh": "fr"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[10,10],[11,10],[11,11],[10,11],[10,10]]],
        [[[20,10],[23,10],[23,11],[20,11],[20,10]]]]}},
    {"type": "Feature",
     "properties": {"NAME": "Antarctica", "ISO_A2": "AQ"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,-80],[10,-80],[10,-90],[0,-80]]]}},
    {"type": "Feature",
     "properties": {"NAME": "Nowhere", "ISO_A2": "-99"},
     "geometry": {"type": "Polygon", "coordinates": [[[-5,-5],[-4,-5],[-4,-4],[-5,-5]]]}},
    {"type": "Feature",
     "properties": {"NAME": "Point", "ISO_A2": "PT"},
     "geometry": {"type": "Point", "coordinates": [1, 1]}}
  ]
}`

func decodeTest(t *testing.T) *Dataset {
	t.Helper()
	d, err := Decode(strings.NewReader(testCollection))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDecode(t *testing.T) {
	d := decodeTest(t)
	var names []string
	for _, c := range d.Countries {
		names = append(names, c.Name)
	}
	if want := []string{"Squareland", "France", "Nowhere"}; !reflect.DeepEqual(names, want) {
		t.Errorf("countries = %v; want %v", names, want)
	}
	if want := []string{"SQ", "FR"}; !reflect.DeepEqual(d.Codes(), want) {
		t.Errorf("Codes() = %v; want %v", d.Codes(), want)
	}
	fr, ok := d.Lookup("fr")
	if !ok || fr.Name != "France" || len(fr.Polygons) != 2 {
		t.Errorf("Lookup(fr) = %+v, %v", fr, ok)
	}
	if _, ok := d.Lookup(""); ok {
		t.Errorf("Lookup(\"\") succeeded")
	}
}

func TestDecodeBad(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"type": "FeatureCollection", "features": [`)); err == nil {
		t.Errorf("Decode of truncated input succeeded")
	}
}

func TestBounds(t *testing.T) {
	b := decodeTest(t).Bounds()
	if b.Lo() != (r2.Point{X: -5, Y: -5}) || b.Hi() != (r2.Point{X: 23, Y: 11}) {
		t.Errorf("Bounds = %v", b)
	}
}

func near(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestCentroid(t *testing.T) {
	square := Ring{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	hole := Ring{{X: 2, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 2, Y: 4}}
	for _, test := range []struct {
		name string
		c    Country
		want r2.Point
		ok   bool
	}{
		{"square", Country{Polygons: []Polygon{{square}}}, r2.Point{X: 2, Y: 2}, true},
		{"clockwise square", Country{Polygons: []Polygon{{reverse(square)}}}, r2.Point{X: 2, Y: 2}, true},
		{"square with hole", Country{Polygons: []Polygon{{square, hole}}}, r2.Point{X: 1, Y: 2}, true},
		{"weighted parts", Country{Polygons: []Polygon{
			{Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
			{Ring{{X: 10, Y: 0}, {X: 13, Y: 0}, {X: 13, Y: 1}, {X: 10, Y: 1}}},
		}}, r2.Point{X: (0.5*1 + 11.5*3) / 4, Y: 0.5}, true},
		{"degenerate", Country{Polygons: []Polygon{{Ring{{X: 1, Y: 1}, {X: 3, Y: 3}}}}}, r2.Point{X: 2, Y: 2}, true},
		{"empty", Country{}, r2.Point{}, false},
	} {
		got, ok := test.c.Centroid()
		if ok != test.ok || !near(got, test.want) {
			t.Errorf("%s: Centroid = %v, %v; want %v, %v", test.name, got, ok, test.want, test.ok)
		}
	}
}

func reverse(r Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "world.geojson")
	if err := os.WriteFile(plain, []byte(testCollection), 0666); err != nil {
		t.Fatal(err)
	}
	gzPath := filepath.Join(dir, "world.geojson.gz")
	f, err := os.Create(gzPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	zw.Write([]byte(testCollection))
	zw.Close()
	f.Close()

	for _, path := range []string{plain, gzPath} {
		d, err := Load(context.Background(), path)
		if err != nil {
			t.Errorf("Load(%s): %v", path, err)
			continue
		}
		if len(d.Countries) != 3 {
			t.Errorf("Load(%s): %d countries; want 3", path, len(d.Countries))
		}
	}

	if _, err := Load(context.Background(), filepath.Join(dir, "missing.geojson")); err == nil {
		t.Errorf("Load of missing file succeeded")
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/world.geojson" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(testCollection))
	}))
	defer srv.Close()

	d, err := Load(context.Background(), srv.URL+"/world.geojson")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Countries) != 3 {
		t.Errorf("got %d countries; want 3", len(d.Countries))
	}

	if _, err := Load(context.Background(), srv.URL+"/other"); err == nil {
		t.Errorf("Load of 404 succeeded")
	}
}

func TestExcluded(t *testing.T) {
	for _, test := range []struct {
		name string
		want bool
	}{
		{"Antarctica", true},
		{" antarctica", true},
		{"Argentina", false},
		{"", false},
	} {
		if got := excluded(test.name); got != test.want {
			t.Errorf("excluded(%q) = %v; want %v", test.name, got, test.want)
		}
	}
}
