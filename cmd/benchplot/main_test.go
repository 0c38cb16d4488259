// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const pngMagic = "\x89PNG\r\n\x1a\n"

// testdataDir is resolved before any test changes the working
// directory.
var testdataDir, testdataErr = filepath.Abs("testdata")

func TestRender(t *testing.T) {
	dir := golden(t, "render", 0, "-json", "figure5.json", "-out", "out/fig5.png")

	data, err := os.ReadFile(filepath.Join(dir, "out", "fig5.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte(pngMagic)) {
		t.Errorf("out/fig5.png does not start with the PNG signature")
	}
}

func TestCSV(t *testing.T) {
	dir := golden(t, "summary", 0, "-json", "figure5.json", "-out", "out/fig5.png", "-csv", "out/summary.csv")

	data, err := os.ReadFile(filepath.Join(dir, "out", "summary.csv"))
	if err != nil {
		t.Fatal(err)
	}
	compare(t, "summary", "csv", data)
}

func TestNoMatch(t *testing.T) {
	// The fixture only has threads:1 runs, so asking for 4 matches
	// nothing and the command lists what the file actually holds.
	dir := golden(t, "noMatch", 2, "-json", "figure5.json", "-threads", "4", "-out", "out/fig5.png")

	if _, err := os.Stat(filepath.Join(dir, "out", "fig5.png")); !os.IsNotExist(err) {
		t.Errorf("out/fig5.png written despite empty table (stat error: %v)", err)
	}
}

func TestThreads4(t *testing.T) {
	chdir(t, t.TempDir())

	report := `{"benchmarks": [
		{"name": "BM_complexFormat<Backend::Quill>/threads:4_mean",
		 "run_name": "BM_complexFormat<Backend::Quill>/threads:4",
		 "run_type": "aggregate", "aggregate_name": "mean",
		 "threads": 4, "iterations": 3,
		 "real_time": 500.0, "cpu_time": 499.0, "time_unit": "ns",
		 "msgs/s": 8000000.0}
	]}`
	if err := os.WriteFile("bench.json", []byte(report), 0666); err != nil {
		t.Fatal(err)
	}

	var got, gotErr bytes.Buffer
	code := run(&got, &gotErr, []string{"-json", "bench.json", "-threads", "4", "-out", "fig5.png", "-csv", "summary.csv"})
	if code != 0 {
		t.Fatalf("exit status = %d, want 0\nstderr:\n%s", code, gotErr.String())
	}
	if want := "[ok] Wrote fig5.png\n"; got.String() != want {
		t.Errorf("stdout = %q, want %q", got.String(), want)
	}

	data, err := os.ReadFile("summary.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := "bucket,Quill\n" +
		"staticString,0.000000\n" +
		"stringConcat,0.000000\n" +
		"singleInteger,0.000000\n" +
		"twoIntegers,0.000000\n" +
		"singleDouble,0.000000\n" +
		"complexFormat,8.000000\n"
	if string(data) != want {
		t.Errorf("summary.csv = %q, want %q", data, want)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"noArgs", nil},
		{"missingOut", []string{"-json", "figure5.json"}},
		{"missingJSON", []string{"-out", "fig5.png"}},
		{"positionalArg", []string{"-json", "figure5.json", "-out", "fig5.png", "extra"}},
		{"unknownFlag", []string{"-nope"}},
		{"badThreads", []string{"-json", "figure5.json", "-out", "fig5.png", "-threads", "2"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got, gotErr bytes.Buffer
			if code := run(&got, &gotErr, test.args); code != 2 {
				t.Errorf("exit status = %d, want 2", code)
			}
			if got.Len() > 0 {
				t.Errorf("stdout = %q, want empty", got.Bytes())
			}
			if !strings.Contains(gotErr.String(), "usage: benchplot") {
				t.Errorf("stderr does not show usage:\n%s", gotErr.String())
			}
		})
	}

	var got, gotErr bytes.Buffer
	run(&got, &gotErr, []string{"-json", "figure5.json", "-out", "fig5.png", "-threads", "2"})
	if !strings.Contains(gotErr.String(), "-threads must be 1 or 4") {
		t.Errorf("bad -threads stderr = %q", gotErr.String())
	}
}

func TestBadInput(t *testing.T) {
	chdir(t, t.TempDir())

	var got, gotErr bytes.Buffer
	if code := run(&got, &gotErr, []string{"-json", "missing.json", "-out", "out/fig5.png"}); code != 1 {
		t.Errorf("missing input: exit status = %d, want 1", code)
	}
	if !strings.HasPrefix(gotErr.String(), "benchplot: ") {
		t.Errorf("missing input: stderr = %q", gotErr.String())
	}

	if err := os.WriteFile("bench.json", []byte("{"), 0666); err != nil {
		t.Fatal(err)
	}
	got.Reset()
	gotErr.Reset()
	if code := run(&got, &gotErr, []string{"-json", "bench.json", "-out", "out/fig5.png"}); code != 1 {
		t.Errorf("malformed input: exit status = %d, want 1", code)
	}
	if !strings.Contains(gotErr.String(), "bench.json") {
		t.Errorf("malformed input: stderr = %q", gotErr.String())
	}
}

// golden runs the command against the figure5.json fixture in a
// scratch directory, checks the exit status, and compares stdout and
// stderr against testdata/<name>.stdout and testdata/<name>.stderr.
// It returns the scratch directory so callers can inspect output
// files.
func golden(t *testing.T, name string, wantCode int, args ...string) string {
	t.Helper()
	if testdataErr != nil {
		t.Fatal(testdataErr)
	}
	dir := t.TempDir()
	copyFile(t, filepath.Join(dir, "figure5.json"), filepath.Join(testdataDir, "figure5.json"))
	chdir(t, dir)

	var got, gotErr bytes.Buffer
	t.Logf("benchplot %s", strings.Join(args, " "))
	if code := run(&got, &gotErr, args); code != wantCode {
		t.Errorf("exit status = %d, want %d", code, wantCode)
	}

	compare(t, name, "stdout", got.Bytes())
	compare(t, name, "stderr", gotErr.Bytes())
	return dir
}

func compare(t *testing.T, name, sub string, got []byte) {
	t.Helper()

	wantPath := filepath.Join(testdataDir, name+"."+sub)
	want, err := os.ReadFile(wantPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Treat a missing file as empty.
			want = nil
		} else {
			t.Fatal(err)
		}
	}

	if !diff(t, want, got) {
		return
	}
	// diff printed the error.

	// Write a "got" file for reference.
	gotPath := filepath.Join(testdataDir, name+".got-"+sub)
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}

func diff(t *testing.T, want, got []byte) bool {
	t.Helper()
	if bytes.Equal(want, got) {
		return false
	}

	d := t.TempDir()
	wantPath, gotPath := filepath.Join(d, "want"), filepath.Join(d, "got")
	if err := os.WriteFile(wantPath, want, 0666); err != nil {
		t.Fatalf("error writing %s: %s", wantPath, err)
	}
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = d
	data, _ := cmd.CombinedOutput()
	if len(data) > 0 {
		t.Errorf("\n%s", data)
	} else {
		// Most likely, "diff not found" so print the bad
		// output so there is something.
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
	return true
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func copyFile(t *testing.T, dst, src string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, data, 0666); err != nil {
		t.Fatal(err)
	}
}
