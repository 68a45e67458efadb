/*
 * runner.go, part of fepele.
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
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Evaluator runs an energy calculation given by a control file, and returns
// the textual report of the program. It blocks until the calculation ends.
type Evaluator interface {
	Run(ctx context.Context, controlFile string) (string, error)
}

// Runner runs the PELE executable. It implements Evaluator.
type Runner struct {
	command    string
	mpiCommand string
	nCPU       int
	license    string
	data       string
	documents  string
}

// NewRunner returns a Runner for the given executable, set to run serially.
func NewRunner(command string) *Runner {
	R := new(Runner)
	R.SetDefaults()
	R.command = command
	return R
}

// SetDefaults sets the runner to use one processor and mpirun for parallel runs.
func (R *Runner) SetDefaults() {
	R.mpiCommand = "mpirun"
	R.nCPU = 1
}

// SetnCPU sets the number of processors. With more than one, PELE is run
// through the MPI launcher.
func (R *Runner) SetnCPU(cpu int) {
	if cpu < 1 {
		cpu = 1
	}
	R.nCPU = cpu
}

// NCPU returns the number of processors used.
func (R *Runner) NCPU() int { return R.nCPU }

// Command returns the PELE executable.
func (R *Runner) Command() string { return R.command }

// SetCommand sets the PELE executable.
func (R *Runner) SetCommand(name string) { R.command = name }

// SetMPICommand sets the MPI launcher.
func (R *Runner) SetMPICommand(name string) { R.mpiCommand = name }

// SetLicense sets the directory with the PELE license, passed to PELE as PELE_LICENSE.
func (R *Runner) SetLicense(path string) { R.license = path }

// SetData sets the PELE Data directory, passed to PELE as PELE_DATA.
func (R *Runner) SetData(path string) { R.data = path }

// SetDocuments sets the PELE Documents directory, passed to PELE as PELE_DOCUMENTS.
func (R *Runner) SetDocuments(path string) { R.documents = path }

func (R *Runner) commandLine(controlFile string) string {
	com := fmt.Sprintf("%s %s", R.command, controlFile)
	if R.nCPU > 1 {
		com = fmt.Sprintf("%s -np %d %s", R.mpiCommand, R.nCPU, com)
	}
	return com
}

func (R *Runner) env() []string {
	env := os.Environ()
	for k, v := range map[string]string{"PELE_LICENSE": R.license, "PELE_DATA": R.data, "PELE_DOCUMENTS": R.documents} {
		if v != "" {
			env = append(env, k+"="+v)
		}
	}
	return env
}

// Run runs PELE on the control file and returns its standard output. It waits
// for PELE to finish. A failure to run, or a non-zero exit status, is a critical error.
func (R *Runner) Run(ctx context.Context, controlFile string) (string, error) {
	if strings.TrimSpace(R.command) == "" {
		return "", Error{message: ErrNoCommand, file: controlFile, deco: []string{"Run"}, critical: true}
	}
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "sh", "-c", R.commandLine(controlFile))
	command.Env = R.env()
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return stdout.String(), Error{message: ErrNotRunning, file: controlFile, details: stderr.String(), deco: []string{"exec.Run", "Run"}, critical: true, err: err}
	}
	return stdout.String(), nil
}
