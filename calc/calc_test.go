/*
 * calc_test.go, part of fepele.
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
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	fep "github.com/rmera/fepele"
	"github.com/rmera/fepele/inout"
	"github.com/rmera/fepele/top"
)

// fakePELE reads the control files it gets, writes the trajectory they ask
// for, and returns a report made by the report function.
type fakePELE struct {
	sync.Mutex
	template     string //alchemical template read at each call
	controls     []string
	trajectories []string
	h5charges    []float64
	report       func(control string) (string, error)
}

func (F *fakePELE) Run(ctx context.Context, control string) (string, error) {
	F.Lock()
	defer F.Unlock()
	b, err := os.ReadFile(control)
	if err != nil {
		return "", err
	}
	F.controls = append(F.controls, filepath.Base(control))
	for _, line := range strings.Split(string(b), "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || strings.Trim(k, `" `) != "trajectory" {
			continue
		}
		traj := strings.Trim(v, `", `)
		F.trajectories = append(F.trajectories, filepath.Base(traj))
		pdb := fmt.Sprintf("MODEL        1\nREMARK %s\nENDMDL\nEND\n", filepath.Base(traj))
		if err := os.WriteFile(traj, []byte(pdb), 0644); err != nil {
			return "", err
		}
	}
	T, err := top.ReadFile(F.template)
	if err != nil {
		return "", err
	}
	F.h5charges = append(F.h5charges, T.Atom(6).Charge)
	return F.report(control)
}

func energyReport(e float64) string {
	return fmt.Sprintf("PELE-1.5\nstep 0\nENERGY: total  %.4f\n", e)
}

func testSettings(Te *testing.T) *Settings {
	dir := Te.TempDir()
	S := DefaultSettings()
	S.SerialPELE = "/bin/false"
	S.InitialTemplate = "testdata/methane.tmpl"
	S.FinalTemplate = "testdata/methanol.tmpl"
	S.AlchemicalTemplate = filepath.Join(dir, "ligz")
	S.AtomLinks = []string{"_C1_:_C1_", "_H1_:_H1_", "_H2_:_H2_", "_H3_:_H3_", "_H4_:_O1_"}
	S.Lambdas = []float64{0, 0.5, 1}
	S.CalculationPath = filepath.Join(dir, "calc")
	S.MinimizationPath = filepath.Join(dir, "min")
	S.MinControlFile = "testdata/min.conf"
	S.PPControlFile = "testdata/pp.conf"
	S.InitialLigandPDB = "methane.pdb"
	S.FinalLigandPDB = "methanol.pdb"
	if err := S.Validate(); err != nil {
		Te.Fatal(err)
	}
	return S
}

func fakes(S *Settings, min, eval func(string) (string, error)) (*fakePELE, *fakePELE) {
	return &fakePELE{template: S.AlchemicalTemplate, report: min}, &fakePELE{template: S.AlchemicalTemplate, report: eval}
}

func minReport(string) (string, error) { return energyReport(-100), nil }

func dirReport(control string) (string, error) {
	if strings.HasSuffix(control, "f.conf") {
		return energyReport(-98), nil
	}
	return energyReport(-101.5), nil
}

func TestUnboundLambdaSimulation(Te *testing.T) {
	S := testSettings(Te)
	S.PlotProfile = true
	min, eval := fakes(S, minReport, dirReport)
	out := new(bytes.Buffer)
	U := NewUnboundLambdaSimulation(S, Env{Minimizer: min, Evaluator: eval, Out: out})
	R, err := U.Run(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	if len(min.controls) != 3 || len(eval.controls) != 6 {
		Te.Errorf("expected 3 minimizations and 6 evaluations, got %d and %d", len(min.controls), len(eval.controls))
	}
	seen := make(map[string]bool)
	for _, t := range append(min.trajectories, eval.trajectories...) {
		if seen[t] {
			Te.Errorf("trajectory %s written twice", t)
		}
		seen[t] = true
	}
	wantEval := []string{"pp_0f.conf", "pp_0b.conf", "pp_0.5f.conf", "pp_0.5b.conf", "pp_1f.conf", "pp_1b.conf"}
	if d := cmp.Diff(wantEval, eval.controls); d != "" {
		Te.Errorf("evaluation control files (-want +got):\n%s", d)
	}
	//each lambda contributes (+1)(-98+100) + (-1)(-101.5+100)
	if !near(R.Total(), 3*3.5) || R.Prediction() != "10.50 kcal/mol" || R.Failed() {
		Te.Errorf("unexpected result %s, failures %v", R.Prediction(), R.Failures)
	}
	if !strings.Contains(out.String(), "Relative Unbound Free Energy prediction 10.50 kcal/mol") {
		Te.Errorf("prediction not reported:\n%s", out.String())
	}
	//the shifted lambdas are clamped
	if R.Samples[1].Shifted != 0 || R.Samples[4].Shifted != 1 || R.Samples[0].Shifted != 0.25 {
		Te.Errorf("unexpected shifted lambdas %v", R.Samples)
	}
	entries, err := os.ReadDir(U.Path())
	if err != nil {
		Te.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{fep.ProfilePlotName, fep.SummaryName, "trajectory_b.pdb", "trajectory_c.pdb", "trajectory_f.pdb"}
	if d := cmp.Diff(want, names); d != "" {
		Te.Errorf("calculation directory (-want +got):\n%s", d)
	}
	b, err := inout.ReadMaybeCompressed(filepath.Join(U.Path(), "trajectory_c.pdb"))
	if err != nil {
		Te.Fatal(err)
	}
	if strings.Count(string(b), "MODEL") != 3 {
		Te.Errorf("the reference trajectory doesn't have 3 models:\n%s", b)
	}
	summary, _ := os.ReadFile(filepath.Join(U.Path(), fep.SummaryName))
	if !strings.Contains(string(summary), R.RunID.String()) || !strings.Contains(string(summary), "10.50 kcal/mol") {
		Te.Errorf("bad summary:\n%s", summary)
	}
}

func TestExtractionFailures(Te *testing.T) {
	S := testSettings(Te)
	nmin := 0
	min, eval := fakes(S,
		func(control string) (string, error) {
			nmin++
			if nmin == 3 {
				return "PELE-1.5\nno energy today\n", nil
			}
			return minReport(control)
		},
		func(control string) (string, error) {
			if strings.HasSuffix(control, "pp_0.5f.conf") {
				return "PELE-1.5\nENERGY: nan-ish\n", nil
			}
			return dirReport(control)
		})
	out := new(bytes.Buffer)
	R, err := NewUnboundLambdaSimulation(S, Env{Minimizer: min, Evaluator: eval, Out: out}).Run(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	//the failed minimization skips both directions of lambda 1.
	if len(eval.controls) != 4 {
		Te.Errorf("expected 4 evaluations, got %d", len(eval.controls))
	}
	if len(R.Failures) != 2 || R.Failures[0].Stage != "forward" || R.Failures[1].Stage != MinimizationStage {
		Te.Fatalf("unexpected failures %v", R.Failures)
	}
	if R.Failures[0].Lambda != 0.5 || R.Failures[1].Lambda != 1 || !strings.Contains(R.Failures[1].Report, "no energy today") {
		Te.Errorf("unexpected failures %v", R.Failures)
	}
	if !near(R.Total(), 3.5+1.5) || len(R.Samples) != 3 {
		Te.Errorf("total %g from %d samples", R.Total(), len(R.Samples))
	}
	if !strings.Contains(out.String(), "no energy today") || !strings.Contains(out.String(), "ENERGY: nan-ish") {
		Te.Errorf("raw reports not in the narration:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "2 steps failed") {
		Te.Errorf("failures not reported:\n%s", out.String())
	}
}

func TestEvaluatorError(Te *testing.T) {
	S := testSettings(Te)
	boom := errors.New("PELE crashed")
	min, eval := fakes(S, minReport, func(string) (string, error) { return "", boom })
	R, err := NewUnboundLambdaSimulation(S, Env{Minimizer: min, Evaluator: eval, Out: new(bytes.Buffer)}).Run(context.Background())
	if !errors.Is(err, boom) {
		Te.Fatalf("expected the evaluator error, got %v", err)
	}
	if R == nil || len(min.controls) != 1 || len(eval.controls) != 1 {
		Te.Errorf("the run didn't stop at the first error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	min, eval = fakes(S, minReport, dirReport)
	if _, err := NewUnboundLambdaSimulation(S, Env{Minimizer: min, Evaluator: eval, Out: new(bytes.Buffer)}).Run(ctx); err == nil {
		Te.Errorf("cancelled run gave no error")
	}
	if len(min.controls) != 0 {
		Te.Errorf("cancelled run called the minimizer")
	}
}

func TestSplittedLambdas(Te *testing.T) {
	S := testSettings(Te)
	S.SplittedLambdas = true
	S.StericLambdas = []float64{0, 1}
	S.CoulombicLambdas = []float64{0.5}
	S.CompressTrajectories = true
	min, eval := fakes(S, minReport, dirReport)
	U := NewUnboundLambdaSimulation(S, Env{Minimizer: min, Evaluator: eval, Out: new(bytes.Buffer)})
	R, err := U.Run(context.Background())
	if err != nil {
		Te.Fatal(err)
	}
	wantTraj := []string{"trajectory_1_0c.pdb", "trajectory_1_1c.pdb", "trajectory_2_0.5c.pdb"}
	if d := cmp.Diff(wantTraj, min.trajectories); d != "" {
		Te.Errorf("minimization trajectories (-want +got):\n%s", d)
	}
	//charges are off during the steric sweep, and at 0.5 in the coulombic one.
	for i, q := range min.h5charges {
		want := 0.0
		if i == 2 {
			want = 0.418 * 0.5
		}
		if !near(q, want) {
			Te.Errorf("minimization %d: H5 charge %g, want %g", i, q, want)
		}
	}
	if len(eval.controls) != 6 || len(R.Samples) != 6 {
		Te.Errorf("expected 6 evaluations, got %d", len(eval.controls))
	}
	for _, name := range []string{"trajectory_1_c.pdb.zst", "trajectory_1_f.pdb.zst", "trajectory_2_b.pdb.zst"} {
		if _, err := os.Stat(filepath.Join(U.Path(), name)); err != nil {
			Te.Errorf("joined trajectory missing: %v", err)
		}
	}
	c := R.Contributions()
	if len(c) != 3 || c[0].Sweep != 1 || c[2].Sweep != 2 || !near(c[2].DeltaE, 3.5) {
		Te.Errorf("unexpected contributions %v", c)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
