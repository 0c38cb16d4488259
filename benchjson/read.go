// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read parses one benchmark JSON document from r. fileName is used
// only to qualify errors.
func Read(r io.Reader, fileName string) (*Run, error) {
	var run Run
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return &run, nil
}

// ReadFile parses the benchmark JSON document at path.
func ReadFile(path string) (*Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}
