// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
)

// A FillMode selects how cited countries are filled.
type FillMode int

const (
	// Heatmap colors each cited country by its scaled value on a
	// continuous palette.
	Heatmap FillMode = iota

	// Alpha fills every cited country with one color whose
	// opacity grows with the normalized value.
	Alpha

	// Simple fills every cited country with one color and one
	// opacity.
	Simple
)

// ErrUnknownFillMode is returned by ParseFillMode for an unrecognized
// fill mode name.
var ErrUnknownFillMode = errors.New("unknown fill mode")

var fillModeNames = []string{
	Heatmap: "heatmap",
	Alpha:   "alpha",
	Simple:  "simple",
}

func (m FillMode) String() string {
	if m < 0 || int(m) >= len(fillModeNames) {
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
	return fillModeNames[m]
}

// ParseFillMode returns the FillMode named by name, which is one of
// "heatmap", "alpha", or "simple". If name is not recognized, it
// returns Heatmap and an error wrapping ErrUnknownFillMode.
func ParseFillMode(name string) (FillMode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m, n := range fillModeNames {
		if key == n {
			return FillMode(m), nil
		}
	}
	return Heatmap, fmt.Errorf("%w %q (want heatmap, alpha, or simple)", ErrUnknownFillMode, name)
}

// A Range is a closed interval that normalized values are
// interpolated into.
type Range struct {
	Lo, Hi float64
}

// At returns the point x of the way from r.Lo to r.Hi.
func (r Range) At(x float64) float64 {
	return r.Lo + x*(r.Hi-r.Lo)
}

func (r Range) String() string {
	return fmt.Sprintf("%g,%g", r.Lo, r.Hi)
}

// PinStyle controls the markers drawn at the centroid of each cited
// country.
type PinStyle struct {
	Show bool

	// Color is the marker color unless ScaleColor is set, in
	// which case markers are colored by Palette.
	Color      color.RGBA
	Palette    palette.Continuous
	ScaleColor bool

	// Sizes are marker areas in square points. If ScaleSize is
	// set, a marker's size is interpolated into SizeRange,
	// otherwise it is StaticSize.
	SizeRange  Range
	StaticSize float64
	ScaleSize  bool

	AlphaRange  Range
	StaticAlpha float64
	ScaleAlpha  bool
}

// Style is the complete visual configuration of a map.
type Style struct {
	Scale Scale
	Fill  FillMode

	// FillColor is the color of cited countries in Simple and
	// Alpha modes. FillAlpha is their opacity in Simple mode, and
	// FillAlphaRange their opacity range in Alpha mode.
	FillColor      color.RGBA
	FillAlpha      float64
	FillAlphaRange Range

	// FillPalette colors cited countries in Heatmap mode.
	FillPalette palette.Continuous

	// BaseColor fills uncited countries. BorderColor outlines
	// every country.
	BaseColor   color.RGBA
	BorderColor color.RGBA

	Pins PinStyle

	ShowLabels bool
	ShowCounts bool

	// ShowLegend adds a cited/not-cited legend. It only has an
	// effect in Simple mode.
	ShowLegend bool
}

// DefaultStyle returns the style used when nothing is configured.
func DefaultStyle() Style {
	return DefaultOptions().Style()
}

// Attributes are the visual attributes of one country.
type Attributes struct {
	Fill      color.Color
	FillAlpha float64

	// Marker reports whether the country gets a marker. The other
	// Marker fields are meaningful only if it is set.
	Marker      bool
	MarkerSize  float64
	MarkerColor color.Color
	MarkerAlpha float64
}

// Attributes computes the visual attributes of r, which must be one
// of e.Records.
func (s *Style) Attributes(e *Encoding, r EncodedRecord) Attributes {
	if !r.Cited() {
		return Attributes{Fill: s.BaseColor, FillAlpha: 1}
	}

	var a Attributes
	switch s.Fill {
	case Simple:
		a.Fill, a.FillAlpha = s.FillColor, s.FillAlpha
	case Alpha:
		a.Fill, a.FillAlpha = s.FillColor, s.FillAlphaRange.At(r.Normalized)
	default:
		a.Fill, a.FillAlpha = s.fillPalette().Map(e.HeatLevel(r)), 1
	}

	p := &s.Pins
	if !p.Show {
		return a
	}
	a.Marker = true
	if p.ScaleColor {
		a.MarkerColor = p.colors().Map(r.Normalized)
	} else {
		a.MarkerColor = p.Color
	}
	if p.ScaleSize {
		a.MarkerSize = p.SizeRange.At(r.Normalized)
	} else {
		a.MarkerSize = p.StaticSize
	}
	if p.ScaleAlpha {
		a.MarkerAlpha = p.AlphaRange.At(r.Normalized)
	} else {
		a.MarkerAlpha = p.StaticAlpha
	}
	return a
}

// Label returns the annotation text for a cited country named name,
// or "" if s shows neither labels nor counts.
func (s *Style) Label(name string, r EncodedRecord) string {
	var lines []string
	if s.ShowLabels && name != "" {
		lines = append(lines, name)
	}
	if s.ShowCounts {
		lines = append(lines, fmt.Sprint(r.Count))
	}
	return strings.Join(lines, "\n")
}

func (s *Style) fillPalette() palette.Continuous {
	if s.FillPalette == nil {
		return defaultFillPalette
	}
	return s.FillPalette
}

func (p *PinStyle) colors() palette.Continuous {
	if p.Palette == nil {
		return palette.Viridis
	}
	return p.Palette
}

// unitScale maps [min, max] onto [0, 1], clamping values outside it.
func unitScale(min, max float64) scale.Linear {
	return scale.Linear{Min: min, Max: max, Clamp: true}
}
