/*
 * unbound.go, part of fepele.
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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	fep "github.com/rmera/fepele"
	"github.com/rmera/fepele/combine"
	"github.com/rmera/fepele/inout"
	"github.com/rmera/fepele/pele"
	"github.com/rmera/fepele/top"
)

// UnboundLambdaSimulationName is the name of the unbound lambda simulation command.
const UnboundLambdaSimulationName = "unbound_lambda_simulation"

// UnboundDir is the subdirectory of the calculation path used by the
// unbound lambda simulation.
const UnboundDir = "unbound"

// UnboundLambdaSimulation computes the relative free energy of the ligands
// in solvent. For each lambda it minimizes the ligand with the alchemical
// template for that lambda, and then evaluates the minimized structure
// with the templates for the shifted lambdas.
type UnboundLambdaSimulation struct {
	settings   *Settings
	env        Env
	path       string
	directions []fep.Direction

	creator *combine.Creator
	atoms   string //quoted list of the atoms to minimize
	result  *Result
}

// NewUnboundLambdaSimulation returns the command for the given settings.
func NewUnboundLambdaSimulation(S *Settings, env Env) *UnboundLambdaSimulation {
	return &UnboundLambdaSimulation{
		settings:   S,
		env:        env.withDefaults(S),
		path:       filepath.Join(S.CalculationPath, UnboundDir),
		directions: fep.DoubleWideSampling(),
	}
}

// Name returns the name of the command.
func (U *UnboundLambdaSimulation) Name() string { return UnboundLambdaSimulationName }

// Path returns the directory where the command writes its results.
func (U *UnboundLambdaSimulation) Path() string { return U.path }

func (U *UnboundLambdaSimulation) printf(format string, a ...any) {
	fmt.Fprintf(U.env.Out, format, a...)
}

// Run runs the simulation. Steps where no energy could be extracted are
// recorded as failures in the result and don't stop the run. Any other
// problem, including the evaluator failing to run, is returned as an
// error, together with the partial result.
func (U *UnboundLambdaSimulation) Run(ctx context.Context) (*Result, error) {
	U.result = NewResult(U.Name())
	U.printf("###########################\n")
	U.printf(" Unbound Lambda Simulation\n")
	U.printf("###########################\n")
	U.printf(" run %s\n", U.result.RunID)
	U.printf(" - Calculating energy differences for each delta lambda\n")
	if err := U.setup(); err != nil {
		return U.result, errDecorate(err, "Run")
	}
	if err := inout.ClearDirectory(U.path); err != nil {
		return U.result, errDecorate(err, "Run")
	}
	sweeps, err := U.settings.Sweeps()
	if err != nil {
		return U.result, errDecorate(err, "Run")
	}
	for _, sw := range sweeps {
		if err := U.sweep(ctx, sw); err != nil {
			return U.result, errDecorate(err, "Run")
		}
	}
	U.printf("   Done\n")
	if err := U.cleanup(); err != nil {
		return U.result, errDecorate(err, "Run")
	}
	if err := U.report(); err != nil {
		return U.result, errDecorate(err, "Run")
	}
	return U.result, nil
}

func (U *UnboundLambdaSimulation) setup() error {
	S := U.settings
	initial, err := top.ReadFile(S.InitialTemplate)
	if err != nil {
		return errDecorate(err, "setup")
	}
	final, err := top.ReadFile(S.FinalTemplate)
	if err != nil {
		return errDecorate(err, "setup")
	}
	links, err := S.Links()
	if err != nil {
		return errDecorate(err, "setup")
	}
	U.creator, err = combine.NewCreator(initial, final, links)
	if err != nil {
		return errDecorate(err, "setup")
	}
	U.atoms = pele.QuotedList(U.creator.AtomsToMinimize(S.LigandChain, S.LigandResnum))
	return nil
}

func (U *UnboundLambdaSimulation) explicitIsFinal() bool {
	if U.settings.ExplicitIsFinal != nil {
		return *U.settings.ExplicitIsFinal
	}
	return U.creator.ExplicitIsFinal()
}

func (U *UnboundLambdaSimulation) constants(sw Sweep) []fep.Lambda {
	if sw.Constant == nil {
		return nil
	}
	return []fep.Lambda{*sw.Constant}
}

func (U *UnboundLambdaSimulation) sweep(ctx context.Context, sw Sweep) error {
	if sw.Number > 0 {
		U.printf("   Sweep %d: %s\n", sw.Number, sw.Schedule)
	}
	sw.Schedule.Reset()
	for L, ok := sw.Schedule.Next(); ok; L, ok = sw.Schedule.Next() {
		if err := ctx.Err(); err != nil {
			return Error{err.Error(), []string{"sweep"}, true}
		}
		U.printf("   - %s\n", L)
		if err := U.creator.WriteTemplate(U.settings.AlchemicalTemplate, L, U.constants(sw)...); err != nil {
			return errDecorate(err, "sweep")
		}
		ref, minimized, err := U.minimize(ctx, sw, L)
		if err != nil {
			return errDecorate(err, "sweep")
		}
		if !minimized {
			continue
		}
		for _, D := range U.directions {
			if err := U.evaluate(ctx, sw, L, D, ref); err != nil {
				return errDecorate(err, "sweep")
			}
		}
	}
	return nil
}

// minimize returns the energy of the minimized structure for L. If the
// energy can't be extracted, a failure is recorded and ok is false.
func (U *UnboundLambdaSimulation) minimize(ctx context.Context, sw Sweep, L fep.Lambda) (energy float64, ok bool, err error) {
	S := U.settings
	if err := inout.ClearDirectory(S.MinimizationPath); err != nil {
		return 0, false, errDecorate(err, "minimize")
	}
	cf, err := pele.ReadControlFile(S.MinControlFile)
	if err != nil {
		return 0, false, errDecorate(err, "minimize")
	}
	input := S.InitialLigandPDB
	if U.explicitIsFinal() {
		input = S.FinalLigandPDB
	}
	cf.ReplaceFlag(pele.InputPDBFlag, input)
	cf.ReplaceFlag(pele.SolventTypeFlag, S.SolventType)
	cf.ReplaceFlag(pele.LogPathFlag, filepath.Join(S.MinimizationPath, fep.SingleLogfileName))
	cf.ReplaceFlag(pele.TrajectoryPathFlag, filepath.Join(U.path, fep.TrajectoryName(fep.Tag(sw.Number, L))))
	cfName := filepath.Join(S.MinimizationPath, fep.MinimizationCFName)
	if err := cf.Write(cfName); err != nil {
		return 0, false, errDecorate(err, "minimize")
	}
	report, err := U.env.Minimizer.Run(ctx, cfName)
	if err != nil {
		return 0, false, errDecorate(err, "minimize")
	}
	energy, err = pele.EnergyFromReport(report)
	if err != nil {
		U.fail(sw, L, MinimizationStage, err, report)
		return 0, false, nil
	}
	return energy, true, nil
}

// evaluate computes the energy of the structure minimized at L with the
// template of L shifted in the direction D, and records the sample.
func (U *UnboundLambdaSimulation) evaluate(ctx context.Context, sw Sweep, L fep.Lambda, D fep.Direction, reference float64) error {
	S := U.settings
	shifted := L.Shift(D)
	if err := U.creator.WriteTemplate(S.AlchemicalTemplate, shifted, U.constants(sw)...); err != nil {
		return errDecorate(err, "evaluate")
	}
	tag := fep.Tag(sw.Number, L, D)
	cf, err := pele.ReadControlFile(S.PPControlFile)
	if err != nil {
		return errDecorate(err, "evaluate")
	}
	cf.ReplaceFlag(pele.InputPDBFlag, filepath.Join(U.path, fep.TrajectoryName(fep.Tag(sw.Number, L))))
	cf.ReplaceFlag(pele.SolventTypeFlag, S.SolventType)
	cf.ReplaceFlag(pele.LogPathFlag, filepath.Join(U.path, fep.LogfileName(tag)))
	cf.ReplaceFlag(pele.TrajectoryPathFlag, filepath.Join(U.path, fep.TrajectoryName(tag)))
	cf.ReplaceFlag(pele.AtomsToMinimizeFlag, U.atoms)
	cfName := filepath.Join(U.path, fep.SinglePointCFName(tag))
	if err := cf.Write(cfName); err != nil {
		return errDecorate(err, "evaluate")
	}
	report, err := U.env.Evaluator.Run(ctx, cfName)
	if err != nil {
		return errDecorate(err, "evaluate")
	}
	energy, err := pele.EnergyFromReport(report)
	if err != nil {
		U.fail(sw, L, D.String(), err, report)
		return nil
	}
	U.result.Samples = append(U.result.Samples, Sample{
		Sweep:     sw.Number,
		Lambda:    L.Value(),
		Shifted:   shifted.Value(),
		Direction: D,
		Reference: reference,
		Energy:    energy,
		DeltaE:    D.Factor() * (energy - reference),
	})
	return nil
}

func (U *UnboundLambdaSimulation) fail(sw Sweep, L fep.Lambda, stage string, err error, report string) {
	F := Failure{Sweep: sw.Number, Lambda: L.Value(), Stage: stage, Reason: err.Error(), Report: report}
	U.result.Failures = append(U.result.Failures, F)
	U.printf("     Error: energy calculation failed (%s)\n", F)
	for _, line := range strings.Split(strings.TrimRight(report, "\n"), "\n") {
		U.printf("       %s\n", line)
	}
}

// cleanup joins the trajectories and removes the files no longer needed.
func (U *UnboundLambdaSimulation) cleanup() error {
	if _, err := inout.JoinSplitModels(U.path, U.settings.CompressTrajectories); err != nil {
		return errDecorate(err, "cleanup")
	}
	if _, err := inout.RemoveSplitModels(U.path); err != nil {
		return errDecorate(err, "cleanup")
	}
	for _, ext := range []string{"conf", "txt"} {
		if _, err := inout.DeleteAllFilesWithExtension(U.path, ext); err != nil {
			return errDecorate(err, "cleanup")
		}
	}
	return nil
}

func (U *UnboundLambdaSimulation) report() error {
	if err := U.result.WriteSummaryFile(filepath.Join(U.path, fep.SummaryName)); err != nil {
		return errDecorate(err, "report")
	}
	if U.settings.PlotProfile && len(U.result.Samples) > 0 {
		if err := PlotProfile(U.result, filepath.Join(U.path, fep.ProfilePlotName)); err != nil {
			return errDecorate(err, "report")
		}
	}
	if U.result.Failed() {
		U.printf(" - %d steps failed, they are not included in the prediction\n", len(U.result.Failures))
	}
	U.printf(" - Relative Unbound Free Energy prediction %s\n", U.result.Prediction())
	return nil
}
