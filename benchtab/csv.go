// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes t as a delimited summary: a header row naming the
// backend columns, then one row per bucket in BucketOrder. Backends
// missing from a bucket are written as 0.000000.
func WriteCSV(w io.Writer, t *Table) error {
	tab := make([][]string, 0, len(BucketOrder)+1)
	tab = append(tab, append([]string{"bucket"}, t.Backends...))
	for _, b := range BucketOrder {
		row := make([]string, 1, len(t.Backends)+1)
		row[0] = b
		for _, backend := range t.Backends {
			row = append(row, strof(t.Values[b][backend]))
		}
		tab = append(tab, row)
	}
	return csv.NewWriter(w).WriteAll(tab)
}

func strof(x float64) string {
	return fmt.Sprintf("%f", x)
}
