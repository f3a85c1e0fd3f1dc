// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Citemap draws world maps of where an author's citations come from.
//
// Usage:
//
//	citemap fetch [-mailto addr] [-o file.csv] <author-id>
//	citemap render [style flags] [-world src] [-o out] <file.csv>
//	citemap batch [-j n] [-world src] <file>
//	citemap counts [-scale s] [-world src] <file.csv>
//
// fetch harvests every work citing a publication of the author from
// OpenAlex and writes one CSV row per citing work, author, and
// institution. The author is an OpenAlex author ID (A...) or an ORCID.
//
// render counts the rows of a CSV per citing country and draws a
// choropleth map. The output format is chosen by the extension of
// -o: .png, .jpg, .jpeg, .svg, or .pdf.
//
// batch reads render command lines from a file, one per line, and
// runs them in parallel sharing one copy of the world geometry. Blank
// lines and lines starting with # are ignored. Arguments are split as
// by a POSIX shell.
//
// counts prints the per-country counts of a CSV with their scaled and
// normalized values.
//
// Default values for -mailto and -world are read from the environment
// variables OPENALEX_MAILTO and CITEMAP_WORLD, which may also be set
// in a .env file in the current directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/linjunhe/citation-map/worldmap"
)

type subcommand struct {
	name, desc string
	cmd        func()
	flags      *flag.FlagSet
}

var subcommands = map[string]*subcommand{}

// registerSubcommand adds a subcommand. cmd is called with flags
// already parsed from the remaining arguments.
func registerSubcommand(name, desc string, cmd func(), flags *flag.FlagSet) {
	subcommands[name] = &subcommand{name, desc, cmd, flags}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <subcommand> [flags] [args...]\n\nSubcommands:\n", os.Args[0])
	var names []string
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, subcommands[name].desc)
	}
	fmt.Fprintf(os.Stderr, "\nRun %s <subcommand> -h for subcommand flags.\n", os.Args[0])
}

func main() {
	log.SetPrefix("citemap: ")
	log.SetFlags(0)

	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("reading .env: %v", err)
	}

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	sub, ok := subcommands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}
	sub.flags.Parse(flag.Args()[1:])
	sub.cmd()
}

// loadWorld loads the world geometry from src, or from the default
// source if src is empty. The environment is consulted only here,
// after .env has been loaded.
func loadWorld(src string) *worldmap.Dataset {
	if src == "" {
		src = os.Getenv("CITEMAP_WORLD")
	}
	if src == "" {
		src = worldmap.DefaultSource
	}
	world, err := worldmap.Load(context.Background(), src)
	if err != nil {
		log.Fatal(err)
	}
	return world
}
