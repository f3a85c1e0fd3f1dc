// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package choropleth

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
)

// ErrUnknownColormap is returned by Colormap for an unrecognized
// colormap name.
var ErrUnknownColormap = errors.New("unknown colormap")

// brewerNames maps lower-cased ColorBrewer scheme names to their
// names in brewer.ByName.
var brewerNames = func() map[string]string {
	m := make(map[string]string, len(brewer.ByName))
	for name := range brewer.ByName {
		m[strings.ToLower(name)] = name
	}
	return m
}()

var defaultFillPalette, _ = brewerGradient("YlOrRd")

// brewerGradient blends the variant of the named scheme with the
// most classes. It returns false if there is no such scheme.
func brewerGradient(name string) (palette.RGBGradient, bool) {
	var colors []color.Color
	for n, variant := range brewer.ByName[name] {
		if n > len(colors) {
			colors = variant
		}
	}
	if len(colors) == 0 {
		return palette.RGBGradient{}, false
	}
	g := palette.RGBGradient{Colors: make([]color.RGBA, len(colors))}
	for i, c := range colors {
		g.Colors[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return g, true
}

// reversed is a Continuous palette running p backwards.
type reversed struct {
	p palette.Continuous
}

func (r reversed) Map(x float64) color.Color {
	return r.p.Map(1 - x)
}

// Colormap returns the continuous palette with the given name. Names
// follow matplotlib: "viridis" or a ColorBrewer scheme such as
// "YlOrRd", "PuBu", or "Spectral", matched case-insensitively. A "_r"
// suffix reverses the palette.
func Colormap(name string) (palette.Continuous, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	rev := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")

	var p palette.Continuous
	if key == "viridis" {
		p = palette.Viridis
	} else if g, ok := brewerGradient(brewerNames[key]); ok {
		p = g
	} else {
		return nil, fmt.Errorf("%w %q (want viridis or a ColorBrewer scheme such as YlOrRd)", ErrUnknownColormap, name)
	}
	if rev {
		p = reversed{p}
	}
	return p, nil
}

// ColormapNames returns the names accepted by Colormap, without the
// "_r" variants.
func ColormapNames() []string {
	names := []string{"viridis"}
	for name := range brewerNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
