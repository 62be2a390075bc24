// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/smtools/ppe/internal/phrase"
)

// CurvePoint is one sample of the coverage-vs-max_concat response curve.
type CurvePoint struct {
	MaxConcat int
	Coverage  float64
}

// Curve evaluates coverage at every max_concat value in maxConcats, in the
// manner of the response-threshold sweep this codebase's lineage already
// writes as a TSV curve file.
func (e *Evaluator) Curve(heldOut []phrase.Pair, maxConcats []int) []CurvePoint {
	points := make([]CurvePoint, len(maxConcats))
	for i, mc := range maxConcats {
		_, cov := e.Evaluate(heldOut, mc)
		points[i] = CurvePoint{MaxConcat: mc, Coverage: cov}
	}
	return points
}

// WriteCurveTSV writes points as a "max_concat\tcoverage" TSV stream.
func WriteCurveTSV(w io.Writer, points []CurvePoint) error {
	if _, err := fmt.Fprintln(w, "max_concat\tcoverage"); err != nil {
		return err
	}
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%d\t%f\n", p.MaxConcat, p.Coverage); err != nil {
			return err
		}
	}
	return nil
}

// PlotCurve renders points as a line-and-point plot and saves it to path at
// the given physical size in centimetres.
func PlotCurve(points []CurvePoint, path string, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = "coverage vs. max_concat"
	p.X.Label.Text = "max_concat"
	p.Y.Label.Text = "coverage"

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.MaxConcat)
		xys[i].Y = pt.Coverage
	}
	line, pts, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	p.Add(line, pts)
	return p.Save(width, height, path)
}
