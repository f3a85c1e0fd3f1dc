// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/linjunhe/citation-map/choropleth"
	"github.com/linjunhe/citation-map/citation"
	"github.com/linjunhe/citation-map/worldmap"
)

// recorder is a Canvas that records a one-line summary of each
// drawing operation.
type recorder struct {
	ops []string
}

func (r *recorder) Polygon(rings [][]r2.Point, p Paint) {
	r.ops = append(r.ops, "polygon "+choropleth.Hex(p.Fill))
}

func (r *recorder) Circle(center r2.Point, radius float64, p Paint) {
	r.ops = append(r.ops, fmt.Sprintf("circle %.0f,%.0f", center.X, center.Y))
}

func (r *recorder) Text(at r2.Point, lines []string, s TextStyle) {
	r.ops = append(r.ops, "text "+strings.Join(lines, "|"))
}

func (r *recorder) Encode(w io.Writer) error { return nil }

func square(x, y float64) worldmap.Polygon {
	return worldmap.Polygon{{{X: x, Y: y}, {X: x + 10, Y: y}, {X: x + 10, Y: y + 10}, {X: x, Y: y + 10}}}
}

// testWorld has three square countries in a row.
func testWorld() *worldmap.Dataset {
	return &worldmap.Dataset{Countries: []worldmap.Country{
		{Name: "Aland", Code: "AA", Polygons: []worldmap.Polygon{square(0, 0)}},
		{Name: "Beland", Code: "BB", Polygons: []worldmap.Polygon{square(20, 0)}},
		{Name: "Celand", Code: "CC", Polygons: []worldmap.Polygon{square(40, 0)}},
	}}
}

func testCounts(aa, bb, cc int) []choropleth.CountryRecord {
	return []choropleth.CountryRecord{{Code: "AA", Count: aa}, {Code: "BB", Count: bb}, {Code: "CC", Count: cc}}
}

func drawOps(cfg Config, counts []choropleth.CountryRecord) []string {
	world := testWorld()
	var rec recorder
	e := choropleth.Encode(counts, cfg.Style.Scale)
	drawMap(&rec, newLayout(cfg.Width, world), &cfg, e, world)
	return rec.ops
}

func TestDrawLayers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 1152 // one pixel per point
	cfg.Style.Fill = choropleth.Simple
	cfg.Style.Pins.Show = true
	cfg.Style.ShowCounts = true

	got := drawOps(cfg, testCounts(1, 5, 0))
	if len(got) != 10 {
		t.Fatalf("draw ops = %q; want 10 ops", got)
	}
	base, fill := "polygon #eeeeee", "polygon #e63946"
	// Centroids are 30 degrees apart. BB has the most citations,
	// so its marker is drawn first.
	want := []string{
		base, base, base,
		fill, fill,
		"text " + DefaultTitle,
		got[6], got[7],
		"text 5", "text 1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("draw ops = %q; want %q", got, want)
	}
	if !strings.HasPrefix(got[6], "circle") || !strings.HasPrefix(got[7], "circle") {
		t.Fatalf("ops 6 and 7 = %q, %q; want circles", got[6], got[7])
	}
	var bx, ax float64
	fmt.Sscanf(got[6], "circle %g,", &bx)
	fmt.Sscanf(got[7], "circle %g,", &ax)
	if bx <= ax {
		t.Errorf("first marker at x=%g, second at x=%g; want BB (right) before AA (left)", bx, ax)
	}
}

func TestDrawLegend(t *testing.T) {
	for _, test := range []struct {
		fill   choropleth.FillMode
		legend bool
		want   bool
	}{
		{choropleth.Simple, true, true},
		{choropleth.Simple, false, false},
		{choropleth.Heatmap, true, false},
		{choropleth.Alpha, true, false},
	} {
		cfg := DefaultConfig()
		cfg.Style.Fill = test.fill
		cfg.Style.ShowLegend = test.legend
		ops := drawOps(cfg, testCounts(1, 2, 0))
		got := false
		for _, op := range ops {
			if op == "text Citing Country" {
				got = true
			}
		}
		if got != test.want {
			t.Errorf("fill %v, legend %v: legend drawn = %v; want %v", test.fill, test.legend, got, test.want)
		}
	}
}

func TestDrawNoCitations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Style.Pins.Show = true
	cfg.Style.ShowLabels = true
	got := drawOps(cfg, testCounts(0, 0, 0))
	base := "polygon #eeeeee"
	want := []string{base, base, base, "text " + DefaultTitle}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("draw ops = %q; want %q", got, want)
	}
}

func TestLayout(t *testing.T) {
	l := newLayout(1600, testWorld())
	if l.height != 900 {
		t.Errorf("height = %d; want 900", l.height)
	}
	lo, hi := l.project(r2.Point{X: 0, Y: 10}), l.project(r2.Point{X: 50, Y: 0})
	if lo.X < l.margin || hi.X > float64(l.width)-l.margin+1e-9 {
		t.Errorf("map x range [%g, %g] outside margins", lo.X, hi.X)
	}
	if lo.Y >= hi.Y {
		t.Errorf("north edge at y=%g, south edge at y=%g; want north above south", lo.Y, hi.Y)
	}
	if w, h := hi.X-lo.X, hi.Y-lo.Y; !approx(w/h, 5) {
		t.Errorf("map aspect = %g; want 5", w/h)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return -1e-9 < d && d < 1e-9
}

func TestRenderFormats(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name  string
		magic string
	}{
		{"map.png", "\x89PNG"},
		{"map.JPG", "\xff\xd8"},
		{"map.jpeg", "\xff\xd8"},
		{"map.svg", "<?xml"},
		{"map.pdf", "%PDF"},
	} {
		cfg := DefaultConfig()
		cfg.Width = 320
		cfg.Output = filepath.Join(dir, test.name)
		cfg.Style.Pins.Show = true
		cfg.Style.ShowLabels = true
		cfg.Style.ShowCounts = true
		if err := Map(cfg, testCounts(3, 1, 0), testWorld()); err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		data, err := os.ReadFile(cfg.Output)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte(test.magic)) {
			t.Errorf("%s starts with %q; want %q", test.name, data[:min(len(data), 8)], test.magic)
		}
	}
}

func TestRenderUnknownExtension(t *testing.T) {
	var log bytes.Buffer
	choropleth.Warning.SetOutput(&log)
	t.Cleanup(func() { choropleth.Warning.SetOutput(os.Stderr) })

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Width = 160
	cfg.Output = filepath.Join(dir, "map.bmp")
	if err := Map(cfg, testCounts(1, 0, 0), testWorld()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, DefaultOutput)); err != nil {
		t.Errorf("fallback output: %v", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("stat %s: %v; want not exist", cfg.Output, err)
	}
	if !strings.Contains(log.String(), "map.bmp") {
		t.Errorf("warning = %q; want mention of map.bmp", log.String())
	}
}

func TestRenderUnwritable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 160
	cfg.Output = filepath.Join(t.TempDir(), "no", "such", "dir", "map.png")
	err := Map(cfg, testCounts(1, 0, 0), testWorld())
	if err == nil {
		t.Fatal("want error writing into a missing directory")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("stat %s: %v; want not exist", cfg.Output, err)
	}
}

func TestRenderExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Width = 160
	cfg.Output = filepath.Join(dir, "maps.png")
	if err := os.Mkdir(cfg.Output, 0777); err != nil {
		t.Fatal(err)
	}
	if err := Map(cfg, testCounts(1, 0, 0), testWorld()); err == nil {
		t.Fatal("want error writing over a directory")
	}
	if fi, err := os.Stat(cfg.Output); err != nil || !fi.IsDir() {
		t.Errorf("stat %s after failed write: %v; want the directory kept", cfg.Output, err)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 1 {
		var names []string
		for _, ent := range ents {
			names = append(names, ent.Name())
		}
		t.Errorf("directory holds %q; want only maps.png", names)
	}
}

func TestRenderReplacesFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 160
	cfg.Output = filepath.Join(t.TempDir(), "map.svg")
	if err := os.WriteFile(cfg.Output, []byte("old"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := Map(cfg, testCounts(1, 0, 0), testWorld()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Errorf("%s starts with %q; want an SVG document", cfg.Output, data[:min(len(data), 8)])
	}
}

func TestRenderNilWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = filepath.Join(t.TempDir(), "map.png")
	if err := Map(cfg, testCounts(1, 0, 0), nil); !errors.Is(err, ErrNoWorld) {
		t.Errorf("Map with nil world: err = %v; want ErrNoWorld", err)
	}
	if err := FromCSV(cfg, "unused.csv", nil); !errors.Is(err, ErrNoWorld) {
		t.Errorf("FromCSV with nil world: err = %v; want ErrNoWorld", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("stat %s: %v; want not exist", cfg.Output, err)
	}
}

func TestFromCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "citations.csv")
	recs := []citation.Record{
		{Country: "AA"}, {Country: "aa"}, {Country: "BB"}, {Country: "ZZ"}, {},
	}
	var buf bytes.Buffer
	if err := citation.WriteCSV(&buf, recs); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csvPath, buf.Bytes(), 0666); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Width = 160
	cfg.Output = filepath.Join(dir, "map.svg")
	if err := FromCSV(cfg, csvPath, testWorld()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.Output); err != nil {
		t.Error(err)
	}

	cfg.Column = "no_such_column"
	cfg.Output = filepath.Join(dir, "missing.png")
	err := FromCSV(cfg, csvPath, testWorld())
	if !errors.Is(err, citation.ErrMissingColumn) {
		t.Errorf("missing column: err = %v; want ErrMissingColumn", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("stat %s: %v; want not exist", cfg.Output, err)
	}
}

func TestFormatOf(t *testing.T) {
	for _, test := range []struct {
		path string
		want Format
		err  bool
	}{
		{"a.png", PNG, false},
		{"dir.v2/a.JPEG", JPEG, false},
		{"a.jpg", JPEG, false},
		{"a.Svg", SVG, false},
		{"a.pdf", PDF, false},
		{"a.gif", PNG, true},
		{"noext", PNG, true},
	} {
		got, err := FormatOf(test.path)
		if got != test.want || (err != nil) != test.err {
			t.Errorf("FormatOf(%q) = %v, %v; want %v, error %v", test.path, got, err, test.want, test.err)
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatOf(%q) error %v does not wrap ErrUnknownFormat", test.path, err)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	got := withAlpha(color.RGBA{0xe6, 0x39, 0x46, 0xff}, 0.5)
	want := color.NRGBA{0xe6, 0x39, 0x46, 0x80}
	if got != want {
		t.Errorf("withAlpha = %v; want %v", got, want)
	}
	for _, test := range []struct {
		alpha float64
		want  uint8
	}{{1.5, 0xff}, {-1, 0}, {0, 0}} {
		if got := withAlpha(color.White, test.alpha).A; got != test.want {
			t.Errorf("withAlpha(white, %g).A = %#x; want %#x", test.alpha, got, test.want)
		}
	}
}
