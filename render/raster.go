// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/golang/geo/r2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// rasterCanvas draws into an RGBA image with anti-aliased coverage
// from x/image/vector.
type rasterCanvas struct {
	img    *image.RGBA
	encode func(io.Writer, image.Image) error
}

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func newRasterCanvas(width, height int, encode func(io.Writer, image.Image) error) *rasterCanvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &rasterCanvas{img, encode}
}

func (c *rasterCanvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

func (c *rasterCanvas) paint(z *vector.Rasterizer, col color.Color, alpha float64) {
	src := image.NewUniform(withAlpha(col, alpha))
	z.Draw(c.img, c.img.Bounds(), src, image.Point{})
}

func (c *rasterCanvas) Polygon(rings [][]r2.Point, p Paint) {
	if p.Fill != nil {
		z := c.rasterizer()
		for _, ring := range rings {
			if len(ring) < 3 {
				continue
			}
			z.MoveTo(float32(ring[0].X), float32(ring[0].Y))
			for _, pt := range ring[1:] {
				z.LineTo(float32(pt.X), float32(pt.Y))
			}
			z.ClosePath()
		}
		c.paint(z, p.Fill, p.Alpha)
	}
	if p.Stroke != nil && p.StrokeWidth > 0 {
		z := c.rasterizer()
		for _, ring := range rings {
			strokeRing(z, ring, p.StrokeWidth)
		}
		c.paint(z, p.Stroke, p.Alpha)
	}
}

func (c *rasterCanvas) Circle(center r2.Point, r float64, p Paint) {
	c.Polygon([][]r2.Point{circleRing(center, r)}, p)
}

// circleRing approximates a circle by a polygon.
func circleRing(center r2.Point, r float64) []r2.Point {
	const n = 48
	ring := make([]r2.Point, n)
	for i := range ring {
		theta := 2 * math.Pi * float64(i) / n
		ring[i] = r2.Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)}
	}
	return ring
}

// strokeRing adds the outline of the closed ring to z as one quad per
// edge. Every quad winds the same way, so overlapping quads never
// cancel under the non-zero rule.
func strokeRing(z *vector.Rasterizer, ring []r2.Point, width float64) {
	n := len(ring)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		d := b.Sub(a)
		l := d.Norm()
		if l == 0 {
			continue
		}
		// Extend each quad by half a width along the edge so
		// neighboring quads meet at corners.
		d = d.Mul(1 / l)
		off := d.Ortho().Mul(width / 2)
		ext := d.Mul(width / 2)
		a, b = a.Sub(ext), b.Add(ext)
		pts := [4]r2.Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}
		z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		for _, p := range pts[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}
}

// face is the only raster font. Its lines are 13 pixels high; larger
// text is drawn at this size and scaled up.
var face = basicfont.Face7x13

func (c *rasterCanvas) Text(at r2.Point, lines []string, s TextStyle) {
	if len(lines) == 0 {
		return
	}
	const native = 13
	scale := s.Size / native
	if scale < 1.25 {
		scale = 1
	}

	// Lay the block out at the native size in a scratch image with
	// a margin for the halo.
	const margin = 2
	lh := int(math.Ceil(lineHeight * native))
	widths := make([]int, len(lines))
	blockW := 0
	for i, line := range lines {
		widths[i] = font.MeasureString(face, line).Ceil()
		if s.Bold {
			widths[i]++
		}
		if widths[i] > blockW {
			blockW = widths[i]
		}
	}
	scratch := image.NewRGBA(image.Rect(0, 0, blockW+2*margin, lh*len(lines)+2*margin))

	drawLines := func(col color.Color, dx, dy int) {
		d := &font.Drawer{Dst: scratch, Src: image.NewUniform(col), Face: face}
		for i, line := range lines {
			x := margin + dx
			if s.Align == AlignCenter {
				x += (blockW - widths[i]) / 2
			}
			y := margin + dy + i*lh + face.Ascent
			for bold := 0; bold <= boolInt(s.Bold); bold++ {
				d.Dot = fixed.P(x+bold, y)
				d.DrawString(line)
			}
		}
	}
	if s.Halo != nil {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					drawLines(s.Halo, dx, dy)
				}
			}
		}
	}
	drawLines(s.Color, 0, 0)

	// Place the scratch block on the canvas.
	sb := scratch.Bounds()
	w := float64(sb.Dx()) * scale
	h := float64(sb.Dy()) * scale
	x0 := at.X - margin*scale
	if s.Align == AlignCenter {
		x0 = at.X - w/2
	}
	y0 := at.Y - h/2
	dr := image.Rect(round(x0), round(y0), round(x0+w), round(y0+h))
	if scale == 1 {
		draw.Draw(c.img, dr, scratch, sb.Min, draw.Over)
		return
	}
	draw.BiLinear.Scale(c.img, dr, scratch, sb, draw.Over, nil)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c *rasterCanvas) Encode(w io.Writer) error {
	return c.encode(w, c.img)
}
