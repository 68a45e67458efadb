/*
 * pele_test.go, part of fepele.
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

package pele

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnergyFromReport(Te *testing.T) {
	report := "PELE starting\n  ENERGY: ignored indented line 1.0\nENERGY: someotherstuff  -123.456\nENERGY VACUUM + SGB: -1.0\n"
	e, err := EnergyFromReport(report)
	if err != nil {
		Te.Fatal(err)
	}
	if e != -123.456 {
		Te.Errorf("got energy %g, want -123.456", e)
	}
	for _, bad := range []string{"", "no energy here\n", "ENERGY: not-a-number\n", "ENERGY: x NaN\n", "ENERGY: total -Inf\n"} {
		_, err := EnergyFromReport(bad)
		if err == nil {
			Te.Errorf("report %q gave no error", bad)
			continue
		}
		var perr Error
		if !errors.As(err, &perr) || perr.Critical() || !strings.HasPrefix(perr.Message(), ErrNoEnergy) {
			Te.Errorf("report %q: unexpected error %v", bad, err)
		}
	}
}

func TestControlFile(Te *testing.T) {
	tmpl := `{"PELE_Output": {"trajectoryPath": "$TRAJECTORY_PATH", "reportPath": "$LOG_PATH"},
"Complex": {"files": [{"path": "$INPUT_PDB_NAME"}]}, "solvent": "$SOLVENT_TYPE",
"atoms": [$ATOMS_TO_MINIMIZE], "other": "$UNSET"}`
	C := NewControlFile(tmpl)
	C.ReplaceFlag(TrajectoryPathFlag, "/calc/trajectory_0.5f.pdb")
	C.ReplaceFlag(LogPathFlag, "/calc/logfile_0.5f.txt")
	C.ReplaceFlag(InputPDBFlag, "/calc/trajectory_0.5c.pdb")
	C.ReplaceFlag(SolventTypeFlag, "OBC")
	C.ReplaceFlag(AtomsToMinimizeFlag, QuotedList([]string{"L:1:_O1_", "L:1:_H5_"}))
	want := `{"PELE_Output": {"trajectoryPath": "/calc/trajectory_0.5f.pdb", "reportPath": "/calc/logfile_0.5f.txt"},
"Complex": {"files": [{"path": "/calc/trajectory_0.5c.pdb"}]}, "solvent": "OBC",
"atoms": ["L:1:_O1_", "L:1:_H5_"], "other": "$UNSET"}`
	if d := cmp.Diff(want, C.String()); d != "" {
		Te.Errorf("control file (-want +got):\n%s", d)
	}
	dir := Te.TempDir()
	tpath := filepath.Join(dir, "template.conf")
	if err := os.WriteFile(tpath, []byte(tmpl), 0644); err != nil {
		Te.Fatal(err)
	}
	R, err := ReadControlFile(tpath)
	if err != nil {
		Te.Fatal(err)
	}
	R.ReplaceFlag(SolventTypeFlag, "VDGBNP")
	out := filepath.Join(dir, "out.conf")
	if err := R.Write(out); err != nil {
		Te.Fatal(err)
	}
	b, _ := os.ReadFile(out)
	if !strings.Contains(string(b), `"solvent": "VDGBNP"`) || !strings.Contains(string(b), "$LOG_PATH") {
		Te.Errorf("unexpected written control file:\n%s", b)
	}
	if d := cmp.Diff([]string{SolventTypeFlag}, R.Flags()); d != "" {
		Te.Errorf("flags (-want +got):\n%s", d)
	}
	if _, err := ReadControlFile(filepath.Join(dir, "missing.conf")); err == nil {
		Te.Errorf("missing template gave no error")
	}
}

func fakePELE(Te *testing.T, body string) string {
	if _, err := exec.LookPath("sh"); err != nil {
		Te.Skip("no shell available")
	}
	path := filepath.Join(Te.TempDir(), "fake_pele.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		Te.Fatal(err)
	}
	return path
}

func TestRunner(Te *testing.T) {
	exe := fakePELE(Te, `echo "control file: $1"
echo "license: $PELE_LICENSE"
echo "ENERGY: total  -42.5"
`)
	R := NewRunner(exe)
	R.SetLicense("/opt/pele/licenses")
	out, err := R.Run(context.Background(), "run.conf")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(out, "control file: run.conf") || !strings.Contains(out, "license: /opt/pele/licenses") {
		Te.Errorf("unexpected output:\n%s", out)
	}
	e, err := EnergyFromReport(out)
	if err != nil || e != -42.5 {
		Te.Errorf("energy %g, error %v", e, err)
	}
	R.SetnCPU(4)
	if got := R.commandLine("a.conf"); got != "mpirun -np 4 "+exe+" a.conf" {
		Te.Errorf("unexpected command line %q", got)
	}
}

func TestRunnerFailure(Te *testing.T) {
	exe := fakePELE(Te, "echo 'licence not found' >&2\nexit 3\n")
	_, err := NewRunner(exe).Run(context.Background(), "run.conf")
	if err == nil {
		Te.Fatal("failing run gave no error")
	}
	var perr Error
	if !errors.As(err, &perr) || !perr.Critical() || !strings.Contains(perr.Details(), "licence not found") {
		Te.Errorf("unexpected error %v", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		Te.Errorf("underlying exit error not available: %v", err)
	}
	if _, err := NewRunner("").Run(context.Background(), "run.conf"); err == nil {
		Te.Errorf("empty command gave no error")
	}
}
