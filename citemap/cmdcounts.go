// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/linjunhe/citation-map/choropleth"
	"github.com/linjunhe/citation-map/citation"
	"github.com/linjunhe/citation-map/worldmap"
)

var cmdCountsFlags = flag.NewFlagSet(os.Args[0]+" counts", flag.ExitOnError)

var counts struct {
	scale  string
	column string
	world  string
	all    bool
}

func init() {
	f := cmdCountsFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s counts [flags] <file.csv>\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&counts.scale, "scale", "linear", "count `scale`: linear, log, rank, or log_rank")
	f.StringVar(&counts.column, "column", citation.ColCountry, "read citing countries from CSV column `name`")
	f.StringVar(&counts.world, "world", "", "load country geometry from GeoJSON `file or URL` (default $CITEMAP_WORLD or Natural Earth)")
	f.BoolVar(&counts.all, "a", false, "include countries with no citations")
	registerSubcommand("counts", "[flags] <file.csv> - print citations per country", cmdCounts, f)
}

func cmdCounts() {
	if cmdCountsFlags.NArg() != 1 {
		cmdCountsFlags.Usage()
		os.Exit(2)
	}
	s, err := choropleth.ParseScale(counts.scale)
	if err != nil {
		choropleth.Warning.Printf("%v; using %v", err, s)
	}

	t, err := citation.ReadFile(cmdCountsFlags.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	codes, err := citation.Countries(t, counts.column)
	if err != nil {
		log.Fatal(err)
	}
	world := loadWorld(counts.world)

	e := choropleth.Encode(choropleth.Aggregate(codes, world.Codes()), s)
	table.Fprint(os.Stdout, countsTable(e, world, counts.all), "%s", "%s", "%d", "%.4g", "%.4f")
}

// countsTable returns the records of e, most cited first, as a table
// with columns code, name, count, scaled, and normalized. Uncited
// countries are included only if all is set.
func countsTable(e *choropleth.Encoding, world *worldmap.Dataset, all bool) *table.Table {
	recs := e.MarkerOrder()
	if all {
		for _, r := range e.Records {
			if !r.Cited() {
				recs = append(recs, r)
			}
		}
	}
	var (
		codes  []string
		names  []string
		cnts   []int
		scaled []float64
		norm   []float64
	)
	for _, r := range recs {
		codes = append(codes, r.Code)
		name := ""
		if c, ok := world.Lookup(r.Code); ok {
			name = c.Name
		}
		names = append(names, name)
		cnts = append(cnts, r.Count)
		scaled = append(scaled, r.Scaled)
		norm = append(norm, r.Normalized)
	}
	return new(table.Builder).
		Add("code", codes).
		Add("name", names).
		Add("count", cnts).
		Add("scaled", scaled).
		Add("normalized", norm).
		Done()
}
