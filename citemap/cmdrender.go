// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/linjunhe/citation-map/render"
)

var cmdRenderFlags = flag.NewFlagSet(os.Args[0]+" render", flag.ExitOnError)

var renderFlags *mapFlags

func init() {
	f := cmdRenderFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s render [flags] <file.csv>\n", os.Args[0])
		f.PrintDefaults()
	}
	renderFlags = registerMapFlags(f)
	registerSubcommand("render", "[flags] <file.csv> - draw a citation map", cmdRender, f)
}

func cmdRender() {
	if cmdRenderFlags.NArg() != 1 {
		cmdRenderFlags.Usage()
		os.Exit(2)
	}
	world := loadWorld(renderFlags.world)
	if err := render.FromCSV(renderFlags.config(), cmdRenderFlags.Arg(0), world); err != nil {
		log.Fatal(err)
	}
}
