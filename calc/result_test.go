/*
 * result_test.go, part of fepele.
 *
 *
 * Copyright 2024 The fepele authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package calc

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fep "github.com/rmera/fepele"
)

func sampleResult() *Result {
	R := NewResult(UnboundLambdaSimulationName)
	for i, l := range []float64{0, 0.5, 1} {
		for _, D := range fep.DoubleWideSampling() {
			shifted := -98.0
			if D == fep.Backward {
				shifted = -101.5
			}
			ref := -100.0 + float64(i)
			R.Samples = append(R.Samples, Sample{Lambda: l, Direction: D, Reference: ref, Energy: shifted + float64(i), DeltaE: D.Factor() * (shifted - -100.0)})
		}
	}
	return R
}

func TestResultAggregation(Te *testing.T) {
	R := sampleResult()
	if !near(R.Total(), 10.5) || R.Prediction() != "10.50 kcal/mol" {
		Te.Errorf("total %g, prediction %s", R.Total(), R.Prediction())
	}
	c := R.Contributions()
	if len(c) != 3 || !near(c[1].DeltaE, 3.5) || c[1].Lambda != 0.5 {
		Te.Errorf("unexpected contributions %v", c)
	}
	mean, std := R.Stats()
	if !near(mean, 3.5) || !near(std, 0) {
		Te.Errorf("mean %g std %g", mean, std)
	}
	if NewResult("x").Total() != 0 {
		Te.Errorf("empty result has a non-zero total")
	}
	if NewResult("x").RunID == R.RunID {
		Te.Errorf("two results share a run ID")
	}
	R.Failures = append(R.Failures, Failure{Lambda: 0.75, Stage: MinimizationStage, Reason: "no energy line"})
	var b bytes.Buffer
	if err := R.WriteSummary(&b); err != nil {
		Te.Fatal(err)
	}
	s := b.String()
	for _, want := range []string{R.RunID.String(), "backward", "1 failures", "lambda 0.75 minimization: no energy line", "total 10.50 kcal/mol"} {
		if !strings.Contains(s, want) {
			Te.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
	if strings.Count(s, "\n") != 2+6+2+2 {
		Te.Errorf("unexpected number of lines in summary:\n%s", s)
	}
}

func TestPlotProfile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), fep.ProfilePlotName)
	if err := PlotProfile(sampleResult(), name); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("no plot written: %v", err)
	}
	if err := PlotProfile(NewResult("x"), name); err == nil {
		Te.Errorf("plotting an empty result gave no error")
	}
	_, std := (&Result{Samples: sampleResult().Samples[:2]}).Stats()
	if !math.IsNaN(std) {
		Te.Errorf("std. dev. of a single contribution should be NaN, got %g", std)
	}
}
