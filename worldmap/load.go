// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package worldmap

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
)

// DefaultSource is the Natural Earth 1:110m admin-0 country
// boundaries in GeoJSON form.
const DefaultSource = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_countries.geojson"

// excludedName is the feature Decode drops.
const excludedName = "Antarctica"

// Load reads a GeoJSON FeatureCollection from src, which is either an
// http or https URL or a file path. If src ends in ".gz", it is
// gunzipped. An empty src means DefaultSource.
func Load(ctx context.Context, src string) (*Dataset, error) {
	if src == "" {
		src = DefaultSource
	}

	var r io.ReadCloser
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching world map: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching world map %s: %s", src, resp.Status)
		}
		r = resp.Body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("loading world map: %w", err)
		}
		r = f
	}
	defer r.Close()

	var in io.Reader = r
	if strings.HasSuffix(src, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("loading world map %s: %w", src, err)
		}
		defer gz.Close()
		in = gz
	}

	d, err := Decode(in)
	if err != nil {
		return nil, fmt.Errorf("loading world map %s: %w", src, err)
	}
	return d, nil
}

// Decode reads a GeoJSON FeatureCollection of country polygons.
//
// Each feature's name comes from its NAME property and its code from
// ISO_A2, falling back to ISO_A2_EH where ISO_A2 is "-99" (Natural
// Earth's marker for a disputed code, used for France and Norway).
// Property names are matched case-insensitively. Features that are
// neither polygons nor multipolygons, and the Antarctica feature,
// are dropped.
func Decode(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	d := new(Dataset)
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		props := lowerKeys(f.Properties)
		c := Country{
			Name: firstProp(props, "name", "admin", "name_long"),
			Code: cleanCode(firstProp(props, "iso_a2")),
		}
		if c.Code == "" {
			c.Code = cleanCode(firstProp(props, "iso_a2_eh"))
		}
		if excluded(c.Name) {
			continue
		}

		switch {
		case f.Geometry.IsPolygon():
			c.Polygons = []Polygon{toPolygon(f.Geometry.Polygon)}
		case f.Geometry.IsMultiPolygon():
			for _, poly := range f.Geometry.MultiPolygon {
				c.Polygons = append(c.Polygons, toPolygon(poly))
			}
		default:
			continue
		}
		d.Countries = append(d.Countries, c)
	}
	return d, nil
}

func toPolygon(rings [][][]float64) Polygon {
	poly := make(Polygon, 0, len(rings))
	for _, ring := range rings {
		r := make(Ring, 0, len(ring))
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			r = append(r, r2.Point{X: pt[0], Y: pt[1]})
		}
		poly = append(poly, r)
	}
	return poly
}

func lowerKeys(props map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[strings.ToLower(k)] = v
	}
	return out
}

// firstProp returns the first of keys that is present and non-empty
// in props, formatted as a string.
func firstProp(props map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := props[k]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
			return s
		}
	}
	return ""
}

func cleanCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "-99" || code == "-1" {
		return ""
	}
	return code
}

func excluded(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), excludedName)
}
