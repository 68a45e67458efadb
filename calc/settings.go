/*
 * settings.go, part of fepele.
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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fep "github.com/rmera/fepele"
	"github.com/rmera/fepele/combine"
	"gopkg.in/yaml.v3"
)

// Settings holds everything a calculation needs. It is read from a YAML file.
type Settings struct {
	CommandNames []string `yaml:"command_names"`

	SerialPELE         string `yaml:"serial_pele"`
	PELELicense        string `yaml:"pele_license"`
	PELEData           string `yaml:"pele_data"`
	PELEDocuments      string `yaml:"pele_documents"`
	NumberOfProcessors int    `yaml:"number_of_processors"`

	InitialTemplate    string   `yaml:"initial_template"`
	FinalTemplate      string   `yaml:"final_template"`
	AlchemicalTemplate string   `yaml:"alchemical_template"`
	AtomLinks          []string `yaml:"atom_links"` //"initial_name:final_name"

	Lambdas          []float64 `yaml:"lambdas"`
	LambdaCount      int       `yaml:"lambda_count"`
	LambdaMin        float64   `yaml:"lambda_min"`
	LambdaMax        float64   `yaml:"lambda_max"`
	DeltaLambda      float64   `yaml:"delta_lambda"`
	SplittedLambdas  bool      `yaml:"splitted_lambdas"`
	StericLambdas    []float64 `yaml:"steric_lambdas"`
	CoulombicLambdas []float64 `yaml:"coulombic_lambdas"`

	CalculationPath  string `yaml:"calculation_path"`
	MinimizationPath string `yaml:"minimization_path"`
	MinControlFile   string `yaml:"min_control_file"`
	PPControlFile    string `yaml:"pp_control_file"`
	InitialLigandPDB string `yaml:"initial_ligand_pdb"`
	FinalLigandPDB   string `yaml:"final_ligand_pdb"`
	SolventType      string `yaml:"solvent_type"`
	ExplicitIsFinal  *bool  `yaml:"explicit_is_final"` //nil: decided from the templates
	LigandChain      string `yaml:"ligand_chain"`
	LigandResnum     int    `yaml:"ligand_resnum"`

	CompressTrajectories bool `yaml:"compress_trajectories"`
	PlotProfile          bool `yaml:"plot_profile"`
}

// DefaultSettings returns settings with the default values for the optional fields.
func DefaultSettings() *Settings {
	return &Settings{
		CommandNames:       []string{UnboundLambdaSimulationName},
		NumberOfProcessors: 1,
		LambdaMax:          1,
		SolventType:        "VDGBNP",
		LigandChain:        "L",
		LigandResnum:       1,
	}
}

// LoadSettings reads the YAML settings file fname on top of the defaults,
// and validates the result.
func LoadSettings(fname string) (*Settings, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, Error{fmt.Sprintf("%s %s: %s", ErrCantLoad, fname, err), []string{"os.ReadFile", "LoadSettings"}, true}
	}
	S := DefaultSettings()
	if err := yaml.Unmarshal(b, S); err != nil {
		return nil, Error{fmt.Sprintf("%s %s: %s", ErrCantLoad, fname, err), []string{"yaml.Unmarshal", "LoadSettings"}, true}
	}
	if err := S.Validate(); err != nil {
		return nil, errDecorate(err, "LoadSettings")
	}
	return S, nil
}

func invalid(format string, a ...any) error {
	return Error{ErrSettings + ": " + fmt.Sprintf(format, a...), []string{"Validate"}, true}
}

func inRange(name string, values ...float64) error {
	for _, v := range values {
		if v < 0 || v > 1 {
			return invalid("%s: %g is outside [0,1]", name, v)
		}
	}
	return nil
}

// Validate checks that the required fields are set and that the lambdas
// make sense. It cleans the paths.
func (S *Settings) Validate() error {
	if len(S.CommandNames) == 0 {
		return invalid("no command_names")
	}
	required := []struct{ name, value string }{
		{"serial_pele", S.SerialPELE},
		{"initial_template", S.InitialTemplate},
		{"final_template", S.FinalTemplate},
		{"alchemical_template", S.AlchemicalTemplate},
		{"calculation_path", S.CalculationPath},
		{"minimization_path", S.MinimizationPath},
		{"min_control_file", S.MinControlFile},
		{"pp_control_file", S.PPControlFile},
		{"initial_ligand_pdb", S.InitialLigandPDB},
		{"final_ligand_pdb", S.FinalLigandPDB},
	}
	for _, v := range required {
		if strings.TrimSpace(v.value) == "" {
			return invalid("%s is required", v.name)
		}
	}
	if S.NumberOfProcessors < 1 {
		return invalid("number_of_processors must be at least 1, not %d", S.NumberOfProcessors)
	}
	if S.DeltaLambda < 0 || S.DeltaLambda >= 1 {
		return invalid("delta_lambda must be in [0,1), not %g", S.DeltaLambda)
	}
	if S.SplittedLambdas {
		if len(S.StericLambdas) == 0 || len(S.CoulombicLambdas) == 0 {
			return invalid("splitted_lambdas requires steric_lambdas and coulombic_lambdas")
		}
		if err := inRange("steric_lambdas", S.StericLambdas...); err != nil {
			return err
		}
		if err := inRange("coulombic_lambdas", S.CoulombicLambdas...); err != nil {
			return err
		}
	} else {
		if len(S.Lambdas) == 0 && S.LambdaCount < 1 {
			return invalid("either lambdas or lambda_count is required")
		}
		if err := inRange("lambdas", S.Lambdas...); err != nil {
			return err
		}
		if err := inRange("lambda_min/lambda_max", S.LambdaMin, S.LambdaMax); err != nil {
			return err
		}
	}
	for _, l := range S.AtomLinks {
		if _, err := combine.ParseLink(l); err != nil {
			return invalid("%s", err)
		}
	}
	if _, err := S.Sweeps(); err != nil {
		return invalid("%s", err)
	}
	for _, p := range []*string{&S.CalculationPath, &S.MinimizationPath, &S.AlchemicalTemplate} {
		*p = filepath.Clean(*p)
	}
	return nil
}

// Links returns the parsed atom links.
func (S *Settings) Links() ([]combine.Link, error) {
	ret := make([]combine.Link, 0, len(S.AtomLinks))
	for _, l := range S.AtomLinks {
		link, err := combine.ParseLink(l)
		if err != nil {
			return nil, errDecorate(err, "Links")
		}
		ret = append(ret, link)
	}
	return ret, nil
}

// Sweep is one pass over a lambda schedule. Number is 0 when there is a
// single sweep. Constant, if not nil, sets the quantities the schedule's
// lambdas don't control.
type Sweep struct {
	Number   int
	Schedule *fep.Schedule
	Constant *fep.Lambda
}

// Sweeps returns the lambda sweeps requested by the settings: a single dual
// sweep, or, with splitted lambdas, a steric sweep with the charges switched
// off followed by a coulombic sweep with the sterics fully on.
func (S *Settings) Sweeps() ([]Sweep, error) {
	if !S.SplittedLambdas {
		var sch *fep.Schedule
		var err error
		if len(S.Lambdas) > 0 {
			sch, err = fep.NewSchedule(S.Lambdas, fep.DualLambda, S.DeltaLambda)
		} else {
			sch, err = fep.SpanSchedule(S.LambdaCount, S.LambdaMin, S.LambdaMax, fep.DualLambda, S.DeltaLambda)
		}
		if err != nil {
			return nil, errDecorate(err, "Sweeps")
		}
		return []Sweep{{Number: 0, Schedule: sch}}, nil
	}
	steric, err := fep.NewSchedule(S.StericLambdas, fep.StericLambda, S.DeltaLambda)
	if err != nil {
		return nil, errDecorate(err, "Sweeps")
	}
	coulombic, err := fep.NewSchedule(S.CoulombicLambdas, fep.CoulombicLambda, S.DeltaLambda)
	if err != nil {
		return nil, errDecorate(err, "Sweeps")
	}
	off, _ := fep.NewLambda(0, fep.CoulombicLambda)
	on, _ := fep.NewLambda(1, fep.StericLambda)
	return []Sweep{
		{Number: 1, Schedule: steric, Constant: &off},
		{Number: 2, Schedule: coulombic, Constant: &on},
	}, nil
}
