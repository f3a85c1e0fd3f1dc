// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/linjunhe/citation-map/citation"
	"github.com/linjunhe/citation-map/openalex"
)

var cmdFetchFlags = flag.NewFlagSet(os.Args[0]+" fetch", flag.ExitOnError)

var fetch struct {
	mailto  string
	out     string
	verbose bool
}

func init() {
	f := cmdFetchFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s fetch [flags] <author-id>\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&fetch.mailto, "mailto", "", "identify requests with e-mail `address` (default $OPENALEX_MAILTO)")
	f.StringVar(&fetch.out, "o", "citations.csv", "write citation records to `file`")
	f.BoolVar(&fetch.verbose, "v", false, "print progress")
	registerSubcommand("fetch", "[flags] <author-id> - fetch citing works from OpenAlex", cmdFetch, f)
}

func cmdFetch() {
	if cmdFetchFlags.NArg() != 1 {
		cmdFetchFlags.Usage()
		os.Exit(2)
	}
	c := &openalex.Client{Mailto: fetch.mailto}
	if c.Mailto == "" {
		c.Mailto = os.Getenv("OPENALEX_MAILTO")
	}
	if fetch.verbose {
		c.Log = log.New(os.Stderr, "", 0)
	}

	recs, err := c.Fetch(context.Background(), cmdFetchFlags.Arg(0))
	if err != nil {
		if len(recs) == 0 {
			log.Fatal(err)
		}
		log.Printf("%v; writing the %d records fetched", err, len(recs))
	}
	if len(recs) == 0 {
		log.Fatalf("no citations found for %s", cmdFetchFlags.Arg(0))
	}

	var buf bytes.Buffer
	if err := citation.WriteCSV(&buf, recs); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(fetch.out, buf.Bytes(), 0666); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d records to %s", len(recs), fetch.out)
}
