// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// A Format is an output image format.
type Format int

const (
	PNG Format = iota
	JPEG
	SVG
	PDF
)

// DefaultOutput is written instead of an output path whose extension
// names no known format.
const DefaultOutput = "citation_map.png"

// ErrUnknownFormat is returned by FormatOf for an unrecognized file
// extension.
var ErrUnknownFormat = errors.New("not a recognized image format")

var extFormats = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".svg":  SVG,
	".pdf":  PDF,
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case SVG:
		return "svg"
	case PDF:
		return "pdf"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf returns the format selected by the extension of path, which
// is one of .png, .jpg, .jpeg, .svg, or .pdf in any case.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return PNG, fmt.Errorf("output file %q: %w (want .png, .jpg, .jpeg, .pdf, or .svg)", path, ErrUnknownFormat)
}

// newCanvas returns an empty canvas of format f.
func newCanvas(f Format, width, height int) Canvas {
	switch f {
	case SVG:
		return newSVGCanvas(width, height)
	case PDF:
		return newPDFCanvas(width, height)
	case JPEG:
		return newRasterCanvas(width, height, encodeJPEG)
	}
	return newRasterCanvas(width, height, encodePNG)
}
