/*
 * result.go, part of fepele.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	fep "github.com/rmera/fepele"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MinimizationStage is the stage reported in failures of the minimization
// of the reference structure. Other failures report the direction.
const MinimizationStage = "minimization"

// Sample is one successful shifted evaluation.
type Sample struct {
	Sweep     int
	Lambda    float64
	Shifted   float64
	Direction fep.Direction
	Reference float64 //energy of the minimized structure at Lambda
	Energy    float64 //energy of the same structure at Shifted
	DeltaE    float64 //Direction.Factor()*(Energy-Reference)
}

// Failure is a step where no energy could be obtained. It contributes nothing
// to the total.
type Failure struct {
	Sweep  int
	Lambda float64
	Stage  string
	Reason string
	Report string //the output of the evaluator, if any
}

func (F Failure) String() string {
	return fmt.Sprintf("sweep %d lambda %s %s: %s", F.Sweep, fep.FormatValue(F.Lambda), F.Stage, F.Reason)
}

// Result is the outcome of running a Command.
type Result struct {
	RunID    uuid.UUID
	Command  string
	Samples  []Sample
	Failures []Failure
}

// NewResult returns an empty result with a new run ID.
func NewResult(command string) *Result {
	return &Result{RunID: uuid.New(), Command: command}
}

// DeltaEnergies returns the energy differences of all the samples, in the
// order they were obtained.
func (R *Result) DeltaEnergies() []float64 {
	ret := make([]float64, len(R.Samples))
	for i, v := range R.Samples {
		ret[i] = v.DeltaE
	}
	return ret
}

// Total returns the sum of all the energy differences, the free energy prediction.
func (R *Result) Total() float64 {
	if len(R.Samples) == 0 {
		return 0
	}
	return floats.Sum(R.DeltaEnergies())
}

// Failed returns true if any step failed.
func (R *Result) Failed() bool { return len(R.Failures) > 0 }

// Contribution is the sum of the energy differences of one lambda.
type Contribution struct {
	Sweep  int
	Lambda float64
	DeltaE float64
}

// Contributions returns the energy difference contributed by each lambda,
// sorted by sweep and lambda.
func (R *Result) Contributions() []Contribution {
	type key struct {
		sweep  int
		lambda float64
	}
	sums := make(map[key]float64)
	for _, s := range R.Samples {
		sums[key{s.Sweep, s.Lambda}] += s.DeltaE
	}
	ret := make([]Contribution, 0, len(sums))
	for k, v := range sums {
		ret = append(ret, Contribution{Sweep: k.sweep, Lambda: k.lambda, DeltaE: v})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Sweep != ret[j].Sweep {
			return ret[i].Sweep < ret[j].Sweep
		}
		return ret[i].Lambda < ret[j].Lambda
	})
	return ret
}

// Stats returns the mean and the standard deviation of the per-lambda
// contributions. The deviation is NaN with fewer than 2 contributions.
func (R *Result) Stats() (mean, std float64) {
	c := R.Contributions()
	if len(c) == 0 {
		return 0, 0
	}
	x := make([]float64, len(c))
	for i, v := range c {
		x[i] = v.DeltaE
	}
	return stat.MeanStdDev(x, nil)
}

// Prediction returns the free energy prediction as it is reported to the user.
func (R *Result) Prediction() string {
	return fmt.Sprintf("%.2f kcal/mol", R.Total())
}

// WriteSummary writes a plain text summary of the result to w.
func (R *Result) WriteSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s run %s\n", R.Command, R.RunID)
	fmt.Fprintf(bw, "# %5s %7s %9s %7s %14s %14s %10s\n", "sweep", "lambda", "direction", "shifted", "E_reference", "E_shifted", "dE")
	for _, s := range R.Samples {
		fmt.Fprintf(bw, "  %5d %7.3f %9s %7.3f %14.4f %14.4f %10.4f\n", s.Sweep, s.Lambda, s.Direction, s.Shifted, s.Reference, s.Energy, s.DeltaE)
	}
	if R.Failed() {
		fmt.Fprintf(bw, "# %d failures\n", len(R.Failures))
		for _, f := range R.Failures {
			fmt.Fprintf(bw, "# %s\n", f)
		}
	}
	mean, std := R.Stats()
	fmt.Fprintf(bw, "# per-lambda dE mean %.4f std. dev. %.4f\n", mean, std)
	fmt.Fprintf(bw, "# total %s\n", R.Prediction())
	if err := bw.Flush(); err != nil {
		return Error{ErrCantWrite + ": " + err.Error(), []string{"bufio.Flush", "WriteSummary"}, true}
	}
	return nil
}

// WriteSummaryFile writes the summary to the file fname.
func (R *Result) WriteSummaryFile(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return Error{ErrCantWrite + ": " + err.Error(), []string{"os.Create", "WriteSummaryFile"}, true}
	}
	defer f.Close()
	if err := R.WriteSummary(f); err != nil {
		return errDecorate(err, "WriteSummaryFile")
	}
	return nil
}
