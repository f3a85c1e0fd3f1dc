// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
	"github.com/linjunhe/citation-map/choropleth"
)

// svgCanvas draws through svgo into a buffer. svgo writes elements as
// they are drawn, so the document is complete only after Encode ends
// it.
type svgCanvas struct {
	buf    bytes.Buffer
	canvas *svg.SVG
}

func newSVGCanvas(width, height int) *svgCanvas {
	c := new(svgCanvas)
	c.canvas = svg.New(&c.buf)
	c.canvas.Start(width, height)
	c.canvas.Rect(0, 0, width, height, "fill:white")
	return c
}

func (c *svgCanvas) Polygon(rings [][]r2.Point, p Paint) {
	var path []byte
	for _, ring := range rings {
		if len(ring) < 2 {
			continue
		}
		for i, pt := range ring {
			if i == 0 {
				path = append(path, 'M')
			} else {
				path = append(path, 'L')
			}
			path = appendPoint(path, pt)
		}
		path = append(path, 'Z')
	}
	if len(path) == 0 {
		return
	}
	c.canvas.Path(string(path), cssPaint(p))
}

func (c *svgCanvas) Circle(center r2.Point, r float64, p Paint) {
	// Two half-circle arcs, so the radius isn't rounded to an
	// integer as svg.Circle would.
	d := fmt.Sprintf("M%.6g %.6ga%.6g %.6g 0 1 0 %.6g 0a%.6g %.6g 0 1 0 %.6g 0Z",
		center.X-r, center.Y, r, r, 2*r, r, r, -2*r)
	c.canvas.Path(d, cssPaint(p))
}

func (c *svgCanvas) Text(at r2.Point, lines []string, s TextStyle) {
	style := fmt.Sprintf("font-family:sans-serif;font-size:%.3gpx;fill:%s", s.Size, choropleth.Hex(s.Color))
	if s.Bold {
		style += ";font-weight:bold"
	}
	if s.Align == AlignCenter {
		style += ";text-anchor:middle"
	}
	if s.Halo != nil {
		style += fmt.Sprintf(";stroke:%s;stroke-width:2;paint-order:stroke;stroke-linejoin:round", choropleth.Hex(s.Halo))
	}

	lh := lineHeight * s.Size
	// 0.35em drops a baseline so the glyphs are vertically centered
	// on it.
	y := at.Y - lh*float64(len(lines)-1)/2 + 0.35*s.Size
	c.canvas.Gstyle(style)
	for _, line := range lines {
		c.canvas.Text(round(at.X), round(y), line)
		y += lh
	}
	c.canvas.Gend()
}

func (c *svgCanvas) Encode(w io.Writer) error {
	c.canvas.End()
	_, err := w.Write(c.buf.Bytes())
	return err
}

func appendPoint(b []byte, p r2.Point) []byte {
	b = strconv.AppendFloat(b, p.X, 'f', 2, 64)
	b = append(b, ' ')
	return strconv.AppendFloat(b, p.Y, 'f', 2, 64)
}

// cssPaint returns the CSS style for drawing with p.
func cssPaint(p Paint) string {
	style := "fill:none"
	if p.Fill != nil {
		style = "fill:" + choropleth.Hex(p.Fill) + fmt.Sprintf(";fill-opacity:%.3g", float64(nrgba(p.Fill).A)/255)
	}
	if p.Stroke != nil && p.StrokeWidth > 0 {
		style += ";stroke:" + choropleth.Hex(p.Stroke) + fmt.Sprintf(";stroke-width:%.3g;stroke-linejoin:round", p.StrokeWidth)
	}
	if p.Alpha < 1 {
		style += fmt.Sprintf(";opacity:%.3g", opacity(p.Alpha))
	}
	return style
}

func round(x float64) int {
	if x < 0 {
		return int(x - 0.5)
	}
	return int(x + 0.5)
}
