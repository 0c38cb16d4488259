// Copyright 2025 The Steroidslog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders a throughput table as the suite's
// grouped-bar figure: one bar group per workload bucket, one bar per
// backend, throughput in millions of messages per second on the Y
// axis.
package benchchart

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/steroidslog/benchviz/benchtab"
)

// Canvas geometry of the rendered figure.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
	chartDPI    = 180
)

// prettyBucket maps raw bucket labels to their axis captions. Buckets
// without an entry keep their raw label.
var prettyBucket = map[string]string{
	"staticString":  "Static string",
	"stringConcat":  "Concat string",
	"singleInteger": "1×int",
	"twoIntegers":   "2×int",
	"singleDouble":  "1×double",
	"complexFormat": "Complex",
}

func bucketLabel(bucket string) string {
	if s, ok := prettyBucket[bucket]; ok {
		return s
	}
	return bucket
}

func title(threads int) string {
	suffix := ""
	if threads > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("Figure 5 style (%d thread%s)", threads, suffix)
}

// Render draws t as a grouped bar chart and writes a PNG to path.
// Bars for one bucket sit side by side, centered on the bucket's
// slot; a bucket a backend never reported draws as a zero-height bar.
func Render(t *benchtab.Table, path string) error {
	pl := plot.New()
	pl.Title.Text = title(t.Threads)
	pl.Y.Label.Text = "Throughput (Millions of logs/second)"

	nb := len(t.Backends)
	if nb < 1 {
		nb = 1
	}
	// Each bucket gets an equal slot along the X axis; its bars
	// together cover roughly 80% of it.
	slot := (chartWidth - vg.Inch) / vg.Length(len(benchtab.BucketOrder))
	barWidth := slot * 8 / 10 / vg.Length(nb)
	groupWidth := barWidth * vg.Length(nb-1)

	colors, err := seriesColors(len(t.Backends))
	if err != nil {
		return err
	}

	for i, backend := range t.Backends {
		values := make(plotter.Values, len(benchtab.BucketOrder))
		for j, bucket := range benchtab.BucketOrder {
			values[j] = t.Values[bucket][backend]
		}
		bc, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bc.Offset = barWidth*vg.Length(i) - groupWidth/2
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		pl.Add(bc)
		pl.Legend.Add(backend, bc)
	}
	pl.Legend.Top = true

	labels := make([]string, len(benchtab.BucketOrder))
	for i, bucket := range benchtab.BucketOrder {
		labels[i] = bucketLabel(bucket)
	}
	pl.NominalX(labels...)
	pl.X.Tick.Label.Rotation = -math.Pi / 12 // 15°
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	return writePNG(pl, path)
}

// seriesColors picks n qualitative colors. The palette serves 3 to 12
// at a time, so short requests are padded and long ones cycle.
func seriesColors(n int) ([]color.Color, error) {
	req := n
	if req < 3 {
		req = 3
	} else if req > 12 {
		req = 12
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", req)
	if err != nil {
		return nil, err
	}
	pc := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = pc[i%len(pc)]
	}
	return out, nil
}

func writePNG(pl *plot.Plot, path string) error {
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(chartWidth, chartHeight),
		vgimg.UseDPI(chartDPI),
		vgimg.UseBackgroundColor(color.White),
	)}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	pl.Draw(draw.New(can))
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
