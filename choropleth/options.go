// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// Options is the user-facing configuration of a map, with selectors
// and colors still in their textual form.
type Options struct {
	Scale string // linear, log, rank, or log_rank

	FillMode  string // heatmap, alpha, or simple
	FillColor string
	FillAlpha float64
	FillCmap  string

	ShowPins      bool
	PinColor      string
	PinCmap       string
	PinScaleColor bool
	PinScaleSize  bool
	PinScaleAlpha bool
	PinSizeRange  Range
	PinSizeStatic float64

	ShowLabels bool
	ShowCounts bool
	ShowLegend bool

	BaseColor   string
	BorderColor string
}

// DefaultOptions returns the default map configuration.
func DefaultOptions() Options {
	return Options{
		Scale:         "linear",
		FillMode:      "heatmap",
		FillColor:     "#E63946",
		FillAlpha:     1.0,
		FillCmap:      "YlOrRd",
		PinColor:      "#E63946",
		PinCmap:       "viridis",
		PinScaleSize:  true,
		PinScaleAlpha: true,
		PinSizeRange:  Range{20, 200},
		PinSizeStatic: 50,
		BaseColor:     "#EEEEEE",
		BorderColor:   "#FFFFFF",
	}
}

// Style resolves o into a Style.
//
// Invalid settings are configuration errors, not failures: each one
// is reported to Warning and replaced by its default, so Style always
// returns a usable style.
func (o Options) Style() Style {
	def := DefaultOptions()
	warn := func(err error, fallback interface{}) {
		Warning.Printf("%v; using %v", err, fallback)
	}

	var s Style
	var err error
	if s.Scale, err = ParseScale(o.Scale); err != nil {
		warn(err, s.Scale)
	}
	if s.Fill, err = ParseFillMode(o.FillMode); err != nil {
		warn(err, s.Fill)
	}

	parseColor := func(what, val, defVal string) color.RGBA {
		c, err := ParseColor(val)
		if err != nil {
			warn(fmt.Errorf("%s: %w", what, err), defVal)
			c, _ = ParseColor(defVal)
		}
		return c
	}
	s.FillColor = parseColor("fill color", o.FillColor, def.FillColor)
	s.BaseColor = parseColor("base color", o.BaseColor, def.BaseColor)
	s.BorderColor = parseColor("border color", o.BorderColor, def.BorderColor)
	s.Pins.Color = parseColor("pin color", o.PinColor, def.PinColor)

	parseCmap := func(what, val, defVal string) palette.Continuous {
		p, err := Colormap(val)
		if err != nil {
			warn(fmt.Errorf("%s: %w", what, err), defVal)
			p, _ = Colormap(defVal)
		}
		return p
	}
	s.FillPalette = parseCmap("fill colormap", o.FillCmap, def.FillCmap)
	s.Pins.Palette = parseCmap("pin colormap", o.PinCmap, def.PinCmap)

	s.FillAlpha = o.FillAlpha
	if s.FillAlpha < 0 || s.FillAlpha > 1 {
		warn(fmt.Errorf("fill alpha %g out of range [0, 1]", o.FillAlpha), def.FillAlpha)
		s.FillAlpha = def.FillAlpha
	}
	s.FillAlphaRange = Range{0.1, 0.9}

	s.Pins.Show = o.ShowPins
	s.Pins.ScaleColor = o.PinScaleColor
	s.Pins.ScaleSize = o.PinScaleSize
	s.Pins.ScaleAlpha = o.PinScaleAlpha
	s.Pins.SizeRange = o.PinSizeRange
	if s.Pins.SizeRange.Lo < 0 || s.Pins.SizeRange.Hi < 0 {
		warn(fmt.Errorf("pin size range %v has a negative size", o.PinSizeRange), def.PinSizeRange)
		s.Pins.SizeRange = def.PinSizeRange
	}
	s.Pins.StaticSize = o.PinSizeStatic
	if s.Pins.StaticSize < 0 {
		warn(fmt.Errorf("negative pin size %g", o.PinSizeStatic), def.PinSizeStatic)
		s.Pins.StaticSize = def.PinSizeStatic
	}
	s.Pins.AlphaRange = Range{0.3, 0.8}
	s.Pins.StaticAlpha = 0.7

	s.ShowLabels = o.ShowLabels
	s.ShowCounts = o.ShowCounts
	s.ShowLegend = o.ShowLegend
	return s
}
