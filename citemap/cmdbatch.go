// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/linjunhe/citation-map/render"
	"golang.org/x/sync/errgroup"
)

var cmdBatchFlags = flag.NewFlagSet(os.Args[0]+" batch", flag.ExitOnError)

var batch struct {
	jobs  int
	world string
}

func init() {
	f := cmdBatchFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s batch [flags] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Each line of <file> is the arguments of a render command.\n\n")
		f.PrintDefaults()
	}
	f.IntVar(&batch.jobs, "j", runtime.GOMAXPROCS(0), "render up to `n` maps at once")
	f.StringVar(&batch.world, "world", "", "load country geometry from GeoJSON `file or URL` (default $CITEMAP_WORLD or Natural Earth)")
	registerSubcommand("batch", "[flags] <file> - draw many citation maps", cmdBatch, f)
}

// A batchJob is one render command from a batch file.
type batchJob struct {
	line int
	cfg  render.Config
	csv  string
}

// parseBatch parses a batch file. Each non-blank line not starting
// with # holds the flags and CSV file of one render command, quoted
// as for a shell. An optional leading "render" word is ignored.
func parseBatch(r io.Reader) ([]batchJob, error) {
	var jobs []batchJob
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if len(args) > 0 && args[0] == "render" {
			args = args[1:]
		}

		f := flag.NewFlagSet("render", flag.ContinueOnError)
		f.SetOutput(io.Discard)
		m := registerMapFlags(f)
		if err := f.Parse(args); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if m.world != "" {
			return nil, fmt.Errorf("line %d: -world must be given to batch, not per map", lineno)
		}
		if f.NArg() != 1 {
			return nil, fmt.Errorf("line %d: want one CSV file, have %d", lineno, f.NArg())
		}
		jobs = append(jobs, batchJob{lineno, m.config(), f.Arg(0)})
	}
	return jobs, scanner.Err()
}

func cmdBatch() {
	if cmdBatchFlags.NArg() != 1 {
		cmdBatchFlags.Usage()
		os.Exit(2)
	}
	path := cmdBatchFlags.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	jobs, err := parseBatch(f)
	f.Close()
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}

	world := loadWorld(batch.world)

	// The dataset is only read, so every render shares it.
	var g errgroup.Group
	if batch.jobs > 0 {
		g.SetLimit(batch.jobs)
	}
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := render.FromCSV(job.cfg, job.csv, world); err != nil {
				err = fmt.Errorf("%s:%d: %w", path, job.line, err)
				log.Print(err)
				return err
			}
			return nil
		})
	}
	if g.Wait() != nil {
		os.Exit(1)
	}
}
