// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchjson reads the JSON reports written by Google Benchmark
// (the --benchmark_out=... format).
//
// A report is a single document: a context header describing the
// machine, followed by a flat "benchmarks" array holding one entry per
// run, repetition, and aggregate. This package decodes the document
// into typed records and leaves interpretation (which entries matter,
// what their names mean) to its callers.
//
// User counters need care: Google Benchmark splices them directly into
// each entry object as extra keys, while some post-processing tools
// regroup them under a nested "counters" object. Result keeps both
// forms and Counter looks them up in one step.
package benchjson

import "encoding/json"

// A Run is one benchmark invocation's JSON document.
type Run struct {
	Context    *Context `json:"context"`
	Benchmarks []Result `json:"benchmarks"`
}

// A Context describes the machine and build that produced a Run.
type Context struct {
	Date              string  `json:"date"`
	HostName          string  `json:"host_name"`
	Executable        string  `json:"executable"`
	NumCPUs           int     `json:"num_cpus"`
	MHzPerCPU         float64 `json:"mhz_per_cpu"`
	CPUScalingEnabled bool    `json:"cpu_scaling_enabled"`
	LibraryBuildType  string  `json:"library_build_type"`
}

// A Result is a single entry of the "benchmarks" array: one run of one
// benchmark, or one aggregate over its repetitions.
type Result struct {
	// Name is the full benchmark name, including sub-benchmark
	// arguments and, for aggregates, the aggregate suffix
	// (e.g. "BM_staticString<Backend::Spdlog>/threads:1_mean").
	Name string `json:"name"`

	// RunName is Name without the aggregate suffix.
	RunName string `json:"run_name"`

	// RunType is "iteration" for plain runs and "aggregate" for
	// entries summarizing repeated runs.
	RunType string `json:"run_type"`

	// AggregateName is the statistic an aggregate entry reports
	// ("mean", "median", "stddev", "cv"). Empty for iterations.
	AggregateName string `json:"aggregate_name"`

	// Threads is the benchmark's thread count. Entries that omit
	// the field decode as 1, the runner's default.
	Threads int `json:"threads"`

	Repetitions int     `json:"repetitions"`
	Iterations  int64   `json:"iterations"`
	RealTime    float64 `json:"real_time"`
	CPUTime     float64 `json:"cpu_time"`
	TimeUnit    string  `json:"time_unit"`

	// Counters holds the entry's nested "counters" object, if the
	// producing tool wrote one.
	Counters map[string]float64 `json:"counters"`

	// Extra holds the remaining numeric fields of the entry. This
	// is where counters land in reports straight from the runner.
	Extra map[string]float64 `json:"-"`
}

// standardFields are the entry keys defined by the report format
// itself. Anything else numeric is a user counter.
var standardFields = map[string]bool{
	"name":                      true,
	"run_name":                  true,
	"run_type":                  true,
	"family_index":              true,
	"per_family_instance_index": true,
	"repetitions":               true,
	"repetition_index":          true,
	"aggregate_name":            true,
	"aggregate_unit":            true,
	"threads":                   true,
	"iterations":                true,
	"real_time":                 true,
	"cpu_time":                  true,
	"time_unit":                 true,
	"counters":                  true,
	"error_occurred":            true,
	"error_message":             true,
	"big_o":                     true,
	"rms":                       true,
}

// UnmarshalJSON decodes an entry, collecting numeric non-standard
// fields into Extra and defaulting Threads to 1 when absent.
func (r *Result) UnmarshalJSON(data []byte) error {
	type result Result // no methods, avoids recursing into this one
	aux := result{Threads: 1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		if standardFields[key] {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			// Non-numeric extras ("label", ...) are not counters.
			continue
		}
		if aux.Extra == nil {
			aux.Extra = make(map[string]float64)
		}
		aux.Extra[key] = v
	}

	*r = Result(aux)
	return nil
}

// Counter returns the value of the named user counter, consulting the
// nested counters object first and then the entry's own fields. The
// second result reports whether the counter was present at all.
func (r *Result) Counter(name string) (float64, bool) {
	if v, ok := r.Counters[name]; ok {
		return v, true
	}
	if v, ok := r.Extra[name]; ok {
		return v, true
	}
	return 0, false
}
