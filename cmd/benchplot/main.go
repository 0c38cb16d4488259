// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot renders the steroidslog benchmark suite's throughput
// figure from a Google Benchmark JSON report.
//
// Usage:
//
//	benchplot -json bench.json -out fig5.png [-threads N] [-csv summary.csv]
//
// The input is the file the suite's benchmark binary writes via
// --benchmark_out. Benchplot keeps the mean aggregates for the chosen
// thread count (1 by default, 4 with -threads 4), groups them by
// workload bucket, and draws a grouped bar chart of throughput in
// millions of messages per second, one bar per logging backend. With
// -csv it also writes the underlying table as a comma-separated
// summary.
//
// Exit status is 0 on success, 2 when the report holds no matching
// records (the report's aggregate names are printed to standard error
// to show what is actually in the file), and 1 on any other failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/steroidslog/benchviz/benchchart"
	"github.com/steroidslog/benchviz/benchjson"
	"github.com/steroidslog/benchviz/benchtab"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

// run is main, structured for testing: the success line goes to w,
// diagnostics go to wErr, and the exit code is returned rather than
// passed to os.Exit.
func run(w, wErr io.Writer, args []string) int {
	fs := flag.NewFlagSet("benchplot", flag.ContinueOnError)
	fs.SetOutput(wErr)
	var (
		jsonPath = fs.String("json", "", "`path` of the benchmark JSON report (required)")
		threads  = fs.Int("threads", 1, "which threads `value` to plot: 1 or 4")
		outPath  = fs.String("out", "", "output PNG `path` (required)")
		csvPath  = fs.String("csv", "", "optional CSV summary `path`")
	)
	fs.Usage = func() {
		fmt.Fprintf(wErr, "usage: benchplot -json bench.json -out fig5.png [-threads N] [-csv summary.csv]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *jsonPath == "" || *outPath == "" || fs.NArg() > 0 {
		fs.Usage()
		return 2
	}
	if *threads != 1 && *threads != 4 {
		fmt.Fprintf(wErr, "benchplot: -threads must be 1 or 4\n")
		fs.Usage()
		return 2
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0777); err != nil {
		fmt.Fprintf(wErr, "benchplot: %v\n", err)
		return 1
	}

	report, err := benchjson.ReadFile(*jsonPath)
	if err != nil {
		fmt.Fprintf(wErr, "benchplot: %v\n", err)
		return 1
	}

	tab := benchtab.Build(report, *threads)
	if tab.Empty() {
		fmt.Fprintf(wErr, "[warn] No data found for threads=%d in %s\n", *threads, *jsonPath)
		fmt.Fprintf(wErr, "[hint] Aggregate names in file:\n")
		names := benchtab.AggregateNames(report)
		if len(names) > 10 {
			names = names[:10]
		}
		for _, name := range names {
			fmt.Fprintf(wErr, "  %s\n", name)
		}
		return 2
	}

	if err := benchchart.Render(tab, *outPath); err != nil {
		fmt.Fprintf(wErr, "benchplot: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "[ok] Wrote %s\n", *outPath)

	if *csvPath != "" {
		if err := writeCSV(tab, *csvPath); err != nil {
			fmt.Fprintf(wErr, "benchplot: %v\n", err)
			return 1
		}
	}
	return 0
}

func writeCSV(t *benchtab.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := benchtab.WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
