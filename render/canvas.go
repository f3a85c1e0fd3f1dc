// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"
	"io"

	"github.com/aclements/go-moremath/mathx"
	"github.com/golang/geo/r2"
)

// A Canvas is a drawing surface in pixel coordinates, with the origin
// at the top left. Later drawing operations cover earlier ones.
type Canvas interface {
	// Polygon fills and strokes the shape bounded by rings using
	// the non-zero winding rule.
	Polygon(rings [][]r2.Point, p Paint)

	// Circle fills and strokes a circle of radius r.
	Circle(center r2.Point, r float64, p Paint)

	// Text draws lines of text. at.Y is the vertical middle of the
	// block of lines; at.X is its middle or left edge, depending
	// on s.Align.
	Text(at r2.Point, lines []string, s TextStyle)

	// Encode writes the finished image to w.
	Encode(w io.Writer) error
}

// Paint describes how a shape is drawn.
type Paint struct {
	Fill   color.Color // nil means no fill
	Stroke color.Color // nil means no outline

	StrokeWidth float64

	// Alpha is the opacity of the whole shape, fill and outline.
	Alpha float64
}

// Align is the horizontal alignment of text.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
)

// TextStyle describes how text is drawn.
type TextStyle struct {
	Size  float64 // pixel height of a line
	Color color.Color
	Halo  color.Color // outline color, or nil for none
	Bold  bool
	Align Align
}

// nrgba returns c as non-premultiplied 8-bit components.
func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// withAlpha returns c with its opacity multiplied by alpha.
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := nrgba(c)
	n.A = uint8(float64(n.A)*opacity(alpha) + 0.5)
	return n
}

// opacity returns alpha limited to [0, 1].
func opacity(alpha float64) float64 {
	return mathx.Clamp(alpha, 0, 1)
}

// lineHeight is the distance between baselines, as a multiple of the
// text size.
const lineHeight = 1.2
