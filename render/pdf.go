// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"
	"io"

	"github.com/golang/geo/r2"
	"github.com/jung-kurt/gofpdf"
)

// pxToPt converts canvas pixels to PDF points at 96 pixels per inch.
const pxToPt = 0.75

// pdfCanvas draws a single page whose size matches the pixel canvas.
type pdfCanvas struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFCanvas(width, height int) *pdfCanvas {
	// "L" would swap a custom size, so the page is always "P".
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width) * pxToPt, Ht: float64(height) * pxToPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &pdfCanvas{pdf, pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *pdfCanvas) setPaint(p Paint) string {
	c.pdf.SetAlpha(opacity(p.Alpha), "Normal")
	style := ""
	if p.Fill != nil {
		n := nrgba(p.Fill)
		c.pdf.SetFillColor(int(n.R), int(n.G), int(n.B))
		style += "F"
	}
	if p.Stroke != nil && p.StrokeWidth > 0 {
		n := nrgba(p.Stroke)
		c.pdf.SetDrawColor(int(n.R), int(n.G), int(n.B))
		c.pdf.SetLineWidth(p.StrokeWidth * pxToPt)
		style += "D"
	}
	return style
}

func (c *pdfCanvas) Polygon(rings [][]r2.Point, p Paint) {
	style := c.setPaint(p)
	if style == "" {
		return
	}
	n := 0
	for _, ring := range rings {
		if len(ring) < 2 {
			continue
		}
		c.pdf.MoveTo(ring[0].X*pxToPt, ring[0].Y*pxToPt)
		for _, pt := range ring[1:] {
			c.pdf.LineTo(pt.X*pxToPt, pt.Y*pxToPt)
		}
		c.pdf.ClosePath()
		n++
	}
	if n > 0 {
		c.pdf.DrawPath(style)
	}
}

func (c *pdfCanvas) Circle(center r2.Point, r float64, p Paint) {
	style := c.setPaint(p)
	if style == "" {
		return
	}
	c.pdf.Circle(center.X*pxToPt, center.Y*pxToPt, r*pxToPt, style)
}

func (c *pdfCanvas) Text(at r2.Point, lines []string, s TextStyle) {
	fontStyle := ""
	if s.Bold {
		fontStyle = "B"
	}
	size := s.Size * pxToPt
	c.pdf.SetFont("Helvetica", fontStyle, size)
	c.pdf.SetAlpha(1, "Normal")

	lh := lineHeight * size
	x0, y := at.X*pxToPt, at.Y*pxToPt-lh*float64(len(lines)-1)/2+0.35*size
	for _, line := range lines {
		line = c.tr(line)
		x := x0
		if s.Align == AlignCenter {
			x -= c.pdf.GetStringWidth(line) / 2
		}
		if s.Halo != nil {
			// No text stroke in the core fonts, so the halo is
			// the text repeated at small offsets.
			c.textColor(s.Halo)
			d := 0.08 * size
			for _, off := range [][2]float64{{-d, 0}, {d, 0}, {0, -d}, {0, d}, {-d, -d}, {d, d}, {-d, d}, {d, -d}} {
				c.pdf.Text(x+off[0], y+off[1], line)
			}
		}
		c.textColor(s.Color)
		c.pdf.Text(x, y, line)
		y += lh
	}
}

func (c *pdfCanvas) textColor(col color.Color) {
	n := nrgba(col)
	c.pdf.SetTextColor(int(n.R), int(n.G), int(n.B))
}

func (c *pdfCanvas) Encode(w io.Writer) error {
	return c.pdf.Output(w)
}
