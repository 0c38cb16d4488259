// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab turns a benchmark report into the throughput table
// behind the suite's figure: for each workload bucket, the mean
// throughput of every logging backend at a given thread count.
//
// The suite's benchmarks are named
//
//	BM_<bucket><Backend::<backend>>[/threads:N]
//
// and report their rate in a "msgs/s" counter. Only the runner's mean
// aggregates feed the table; individual repetitions and the other
// aggregates (median, stddev, cv) are ignored.
package benchtab

import (
	"regexp"
	"sort"

	"github.com/steroidslog/benchviz/benchjson"
)

// BucketOrder lists the workload buckets in display order. CSV rows
// and chart groups follow this order exactly.
var BucketOrder = []string{
	"staticString",
	"stringConcat",
	"singleInteger",
	"twoIntegers",
	"singleDouble",
	"complexFormat",
}

// throughputCounter is the counter the suite reports its rate in.
const throughputCounter = "msgs/s"

var nameRE = regexp.MustCompile(`^BM_([^<]+)<Backend::([^>]+)>(?:/threads:\d+)?_mean$`)

// parseName splits a mean-aggregate benchmark name into its workload
// bucket and backend.
func parseName(name string) (bucket, backend string, ok bool) {
	m := nameRE.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// A Table holds per-bucket, per-backend throughput in millions of
// messages per second. It is built once and not mutated afterwards.
type Table struct {
	// Threads is the thread count the input was filtered to.
	Threads int

	// Values maps bucket → backend → millions of messages per
	// second. Every bucket in BucketOrder has an entry, even when
	// no backend reported it.
	Values map[string]map[string]float64

	// Backends lists the backends discovered in the input, sorted
	// lexically. Empty when nothing matched the filter.
	Backends []string
}

// Empty reports whether no input record survived the filter. Callers
// must check this before rendering: an empty table means the requested
// thread count has no data.
func (t *Table) Empty() bool { return len(t.Backends) == 0 }

// Build collects mean-aggregate throughput for the given thread count.
//
// An entry contributes iff its run type is "aggregate", its aggregate
// name is "mean", its thread count equals threads, its name matches
// the suite's pattern with a known bucket, and it carries a msgs/s
// counter. An entry without the counter is skipped, never treated as
// zero. When the same bucket/backend pair appears more than once the
// later entry wins.
func Build(run *benchjson.Run, threads int) *Table {
	t := &Table{
		Threads: threads,
		Values:  make(map[string]map[string]float64, len(BucketOrder)),
	}
	for _, b := range BucketOrder {
		t.Values[b] = make(map[string]float64)
	}

	seen := make(map[string]bool)
	for i := range run.Benchmarks {
		r := &run.Benchmarks[i]
		if r.RunType != "aggregate" || r.AggregateName != "mean" {
			continue
		}
		if r.Threads != threads {
			continue
		}
		bucket, backend, ok := parseName(r.Name)
		if !ok {
			continue
		}
		vals, ok := t.Values[bucket]
		if !ok {
			// Matched the pattern but not one of the six buckets.
			continue
		}
		msgs, ok := r.Counter(throughputCounter)
		if !ok {
			continue
		}
		vals[backend] = msgs / 1e6
		if !seen[backend] {
			seen[backend] = true
			t.Backends = append(t.Backends, backend)
		}
	}
	sort.Strings(t.Backends)
	return t
}

// AggregateNames returns the names of all aggregate entries in run, in
// input order, whatever their aggregate statistic. The command lists
// these when nothing matched, to show what the file actually holds.
func AggregateNames(run *benchjson.Run) []string {
	var names []string
	for i := range run.Benchmarks {
		if run.Benchmarks[i].RunType == "aggregate" {
			names = append(names, run.Benchmarks[i].Name)
		}
	}
	return names
}
