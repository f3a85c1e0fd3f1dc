// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/linjunhe/citation-map/choropleth"
	"github.com/linjunhe/citation-map/render"
)

// rangeValue is a flag.Value for a choropleth.Range spelled "lo,hi".
type rangeValue choropleth.Range

func (r *rangeValue) String() string {
	return choropleth.Range(*r).String()
}

func (r *rangeValue) Set(s string) error {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("want lo,hi")
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return err
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return err
	}
	*r = rangeValue{l, h}
	return nil
}

// mapFlags are the flags that configure one map.
type mapFlags struct {
	opts   choropleth.Options
	out    string
	column string
	title  string
	width  int
	world  string
}

// registerMapFlags defines the map flags in f and returns their
// destination.
func registerMapFlags(f *flag.FlagSet) *mapFlags {
	m := &mapFlags{opts: choropleth.DefaultOptions()}
	def := render.DefaultConfig()
	o := &m.opts

	f.StringVar(&m.out, "o", def.Output, "write map to `file` (.png, .jpg, .jpeg, .svg, or .pdf)")
	f.StringVar(&m.column, "column", def.Column, "read citing countries from CSV column `name`")
	f.StringVar(&m.title, "title", def.Title, "map `title`")
	f.IntVar(&m.width, "width", def.Width, "image width in `pixels`")
	f.StringVar(&m.world, "world", "", "load country geometry from GeoJSON `file or URL` (default $CITEMAP_WORLD or Natural Earth)")

	f.StringVar(&o.Scale, "scale", o.Scale, "count `scale`: linear, log, rank, or log_rank")
	f.StringVar(&o.FillMode, "fill", o.FillMode, "fill `mode`: heatmap, alpha, or simple")
	f.StringVar(&o.FillColor, "fill-color", o.FillColor, "cited country `color` in alpha and simple modes")
	f.Float64Var(&o.FillAlpha, "fill-alpha", o.FillAlpha, "cited country `opacity` in simple mode")
	f.StringVar(&o.FillCmap, "fill-cmap", o.FillCmap, "heatmap `colormap`: viridis or a ColorBrewer scheme, with optional _r")
	f.StringVar(&o.BaseColor, "base-color", o.BaseColor, "uncited country `color`")
	f.StringVar(&o.BorderColor, "border-color", o.BorderColor, "country border `color`")

	f.BoolVar(&o.ShowPins, "pins", o.ShowPins, "draw a marker on each cited country")
	f.StringVar(&o.PinColor, "pin-color", o.PinColor, "marker `color`")
	f.StringVar(&o.PinCmap, "pin-cmap", o.PinCmap, "marker `colormap` for -pin-scale-color")
	f.BoolVar(&o.PinScaleColor, "pin-scale-color", o.PinScaleColor, "color markers by citation count")
	f.BoolVar(&o.PinScaleSize, "pin-scale-size", o.PinScaleSize, "size markers by citation count")
	f.BoolVar(&o.PinScaleAlpha, "pin-scale-alpha", o.PinScaleAlpha, "fade markers by citation count")
	f.Var((*rangeValue)(&o.PinSizeRange), "pin-size-range", "marker area `lo,hi` in square points for -pin-scale-size")
	f.Float64Var(&o.PinSizeStatic, "pin-size", o.PinSizeStatic, "marker area in square `points`")

	f.BoolVar(&o.ShowLabels, "labels", o.ShowLabels, "label cited countries with their names")
	f.BoolVar(&o.ShowCounts, "counts", o.ShowCounts, "label cited countries with their citation counts")
	f.BoolVar(&o.ShowLegend, "legend", o.ShowLegend, "draw a legend (simple mode only)")
	return m
}

// config returns the render configuration selected by m.
func (m *mapFlags) config() render.Config {
	return render.Config{
		Style:  m.opts.Style(),
		Output: m.out,
		Column: m.column,
		Title:  m.title,
		Width:  m.width,
	}
}
