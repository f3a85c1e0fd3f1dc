// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws choropleth maps of citation counts and writes
// them as PNG, JPEG, SVG, or PDF images.
//
// A map is drawn in layers, each covering the last: every country in
// the base color, the fill of cited countries, the title, the legend,
// the markers, and finally the labels.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/linjunhe/citation-map/choropleth"
	"github.com/linjunhe/citation-map/citation"
	"github.com/linjunhe/citation-map/worldmap"
)

// ErrNoWorld is returned when a map is drawn without country
// geometry.
var ErrNoWorld = errors.New("no world geometry")

// DefaultTitle is the title of a map with no configured title.
const DefaultTitle = "Global Distribution of Citations"

// Config configures one map.
type Config struct {
	Style choropleth.Style

	// Output is the image file to write. Its extension selects the
	// format.
	Output string

	// Column is the CSV column holding citing-country codes. It is
	// used only by FromCSV.
	Column string

	Title string

	// Width is the image width in pixels. The height is always
	// 9/16 of the width.
	Width int
}

// DefaultWidth is the width of a map whose Config has none.
const DefaultWidth = 1600

// DefaultConfig returns the configuration used when nothing is
// configured.
func DefaultConfig() Config {
	return Config{
		Style:  choropleth.DefaultStyle(),
		Output: DefaultOutput,
		Column: citation.ColCountry,
		Title:  DefaultTitle,
		Width:  DefaultWidth,
	}
}

// FromCSV reads the citation records in csvPath, counts them per
// country of world, and draws the map described by cfg. Nothing is
// written if the file can't be read or lacks cfg.Column.
func FromCSV(cfg Config, csvPath string, world *worldmap.Dataset) error {
	if world == nil {
		return ErrNoWorld
	}
	t, err := citation.ReadFile(csvPath)
	if err != nil {
		return err
	}
	col := cfg.Column
	if col == "" {
		col = citation.ColCountry
	}
	codes, err := citation.Countries(t, col)
	if err != nil {
		return fmt.Errorf("%s: %w", csvPath, err)
	}
	return Map(cfg, choropleth.Aggregate(codes, world.Codes()), world)
}

// Map draws counts over world and writes the image to cfg.Output.
func Map(cfg Config, counts []choropleth.CountryRecord, world *worldmap.Dataset) error {
	_, err := Render(cfg, counts, world)
	return err
}

// Render is like Map, but also returns the encoding the map was drawn
// from.
//
// If cfg.Output has no recognized extension, Render warns and writes
// DefaultOutput in the same directory instead. If writing fails, the
// output path is left as it was.
func Render(cfg Config, counts []choropleth.CountryRecord, world *worldmap.Dataset) (*choropleth.Encoding, error) {
	if world == nil {
		return nil, ErrNoWorld
	}
	out, format := resolveOutput(cfg.Output)
	e := choropleth.Encode(counts, cfg.Style.Scale)

	l := newLayout(cfg.Width, world)
	c := newCanvas(format, l.width, l.height)
	drawMap(c, l, &cfg, e, world)

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return e, fmt.Errorf("encoding %s: %w", out, err)
	}
	if err := writeFile(out, buf.Bytes()); err != nil {
		return e, fmt.Errorf("writing map: %w", err)
	}
	return e, nil
}

// writeFile replaces the file at path with data. data goes to a
// temporary file beside path first, so a failed write leaves
// whatever was at path untouched.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}

// resolveOutput returns the file to write for the configured output
// path and its format.
func resolveOutput(path string) (string, Format) {
	if path == "" {
		return DefaultOutput, PNG
	}
	f, err := FormatOf(path)
	if err != nil {
		out := filepath.Join(filepath.Dir(path), DefaultOutput)
		choropleth.Warning.Printf("%v; writing %s", err, out)
		return out, PNG
	}
	return path, f
}

// A layout is the placement of the map on the image.
type layout struct {
	width, height int

	// k is the number of pixels per point. Sizes in the style are
	// in points, as for a 16 inch wide figure.
	k float64

	margin float64
	title  r2.Point // center of the title

	// Longitude x and latitude y are drawn at
	// (origin.X + (x-lo.X)*s, origin.Y + (hi.Y-y)*s).
	lo, hi r2.Point
	origin r2.Point
	s      float64
}

const (
	titlePt  = 20
	labelPt  = 8
	legendPt = 10
	borderPt = 0.5
)

func newLayout(width int, world *worldmap.Dataset) *layout {
	if width <= 0 {
		width = DefaultWidth
	}
	l := &layout{width: width, height: width * 9 / 16}
	W, H := float64(l.width), float64(l.height)
	l.k = W / (16 * 72)
	l.margin = 0.02 * W

	band := 2 * titlePt * l.k
	l.title = r2.Point{X: W / 2, Y: l.margin + band/2}

	// Fit the world into the area below the title, with equal
	// scales on both axes, centered.
	area := r2.RectFromPoints(r2.Point{X: l.margin, Y: l.margin + band}, r2.Point{X: W - l.margin, Y: H - l.margin})
	b := world.Bounds()
	if b.IsEmpty() || b.X.Length() == 0 || b.Y.Length() == 0 {
		b = r2.RectFromPoints(r2.Point{X: -180, Y: -90}, r2.Point{X: 180, Y: 90})
	}
	l.lo, l.hi = b.Lo(), b.Hi()
	l.s = math.Min(area.X.Length()/b.X.Length(), area.Y.Length()/b.Y.Length())
	l.origin = r2.Point{
		X: area.X.Lo + (area.X.Length()-b.X.Length()*l.s)/2,
		Y: area.Y.Lo + (area.Y.Length()-b.Y.Length()*l.s)/2,
	}
	return l
}

// project returns the image position of longitude/latitude p.
func (l *layout) project(p r2.Point) r2.Point {
	return r2.Point{
		X: l.origin.X + (p.X-l.lo.X)*l.s,
		Y: l.origin.Y + (l.hi.Y-p.Y)*l.s,
	}
}

func (l *layout) rings(p worldmap.Polygon) [][]r2.Point {
	out := make([][]r2.Point, len(p))
	for i, ring := range p {
		pr := make([]r2.Point, len(ring))
		for j, pt := range ring {
			pr[j] = l.project(pt)
		}
		out[i] = pr
	}
	return out
}

var black, white = color.Gray{0}, color.Gray{255}

// drawMap draws every layer of the map on c.
func drawMap(c Canvas, l *layout, cfg *Config, e *choropleth.Encoding, world *worldmap.Dataset) {
	st := &cfg.Style
	border := Paint{Stroke: st.BorderColor, StrokeWidth: borderPt * l.k}

	byCode := make(map[string]choropleth.EncodedRecord)
	for _, r := range e.Records {
		byCode[r.Code] = r
	}

	// Base map.
	for i := range world.Countries {
		p := border
		p.Fill, p.Alpha = st.BaseColor, 1
		for _, poly := range world.Countries[i].Polygons {
			c.Polygon(l.rings(poly), p)
		}
	}

	// Cited fill.
	for i := range world.Countries {
		country := &world.Countries[i]
		r, ok := byCode[country.Code]
		if !ok || !r.Cited() {
			continue
		}
		a := st.Attributes(e, r)
		p := border
		p.Fill, p.Alpha = a.Fill, a.FillAlpha
		for _, poly := range country.Polygons {
			c.Polygon(l.rings(poly), p)
		}
	}

	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}
	c.Text(l.title, []string{title}, TextStyle{Size: titlePt * l.k, Color: black, Bold: true})

	if st.Fill == choropleth.Simple && st.ShowLegend {
		drawLegend(c, l, st)
	}

	// Markers, then labels above all of them.
	type placed struct {
		at    r2.Point
		label string
	}
	var labels []placed
	for _, r := range e.MarkerOrder() {
		country, ok := world.Lookup(r.Code)
		if !ok {
			continue
		}
		centroid, ok := country.Centroid()
		if !ok {
			continue
		}
		at := l.project(centroid)
		if a := st.Attributes(e, r); a.Marker {
			radius := math.Sqrt(a.MarkerSize) / 2 * l.k
			c.Circle(at, radius, Paint{
				Fill:        a.MarkerColor,
				Stroke:      black,
				StrokeWidth: borderPt * l.k,
				Alpha:       a.MarkerAlpha,
			})
		}
		if text := st.Label(country.Name, r); text != "" {
			labels = append(labels, placed{at, text})
		}
	}
	for _, p := range labels {
		c.Text(p.at, strings.Split(p.label, "\n"), TextStyle{Size: labelPt * l.k, Color: black, Halo: white})
	}
}

// drawLegend draws the two-entry cited/not-cited legend in the lower
// left corner of the map.
func drawLegend(c Canvas, l *layout, st *choropleth.Style) {
	size := legendPt * l.k
	pad := size / 2
	box := size
	lh := 1.5 * size

	entries := []struct {
		label string
		fill  color.Color
		alpha float64
	}{
		{"Citing Country", st.FillColor, st.FillAlpha},
		{"Not a Citing Country", st.BaseColor, 1},
	}

	// The frame is sized for the longer label at roughly 0.55em
	// per character.
	textW := 0.55 * size * float64(len("Not a Citing Country"))
	frameW := pad + box + pad + textW + pad
	frameH := pad + lh*float64(len(entries)) + pad - (lh - box)
	x0 := l.margin + pad
	y0 := float64(l.height) - l.margin - pad - frameH
	c.Polygon([][]r2.Point{rect(x0, y0, frameW, frameH)}, Paint{
		Fill: white, Stroke: color.Gray{0xcc}, StrokeWidth: borderPt * l.k, Alpha: 0.8,
	})

	y := y0 + pad
	for _, ent := range entries {
		c.Polygon([][]r2.Point{rect(x0+pad, y, box, box)}, Paint{
			Fill: ent.fill, Stroke: black, StrokeWidth: borderPt * l.k, Alpha: ent.alpha,
		})
		c.Text(r2.Point{X: x0 + pad + box + pad, Y: y + box/2}, []string{ent.label},
			TextStyle{Size: size, Color: black, Align: AlignLeft})
		y += lh
	}
}

func rect(x, y, w, h float64) []r2.Point {
	return []r2.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}
