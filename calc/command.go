/*
 * command.go, part of fepele.
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
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rmera/fepele/pele"
)

// Command is a calculation that can be requested by name in the settings.
type Command interface {
	Name() string
	Run(ctx context.Context) (*Result, error)
}

// Env holds what a command needs from outside the settings. Nil fields
// get defaults: PELE runners built from the settings, and os.Stdout.
type Env struct {
	Minimizer pele.Evaluator //runs the minimizations
	Evaluator pele.Evaluator //runs the single point recalculations
	Out       io.Writer      //narration
}

func (E Env) withDefaults(S *Settings) Env {
	runner := func(cpu int) *pele.Runner {
		R := pele.NewRunner(S.SerialPELE)
		R.SetnCPU(cpu)
		R.SetLicense(S.PELELicense)
		R.SetData(S.PELEData)
		R.SetDocuments(S.PELEDocuments)
		return R
	}
	if E.Minimizer == nil {
		E.Minimizer = runner(S.NumberOfProcessors)
	}
	if E.Evaluator == nil {
		E.Evaluator = runner(1)
	}
	if E.Out == nil {
		E.Out = os.Stdout
	}
	return E
}

type constructor func(S *Settings, env Env) Command

var commands = map[string]constructor{
	UnboundLambdaSimulationName: func(S *Settings, env Env) Command { return NewUnboundLambdaSimulation(S, env) },
}

// CommandNames returns the names of all the available commands, sorted.
func CommandNames() []string {
	ret := make([]string, 0, len(commands))
	for k := range commands {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// NewCommand returns the command with the given name. Names are matched
// against the table ignoring case and surrounding spaces.
func NewCommand(name string, S *Settings, env Env) (Command, error) {
	c, ok := commands[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, Error{fmt.Sprintf("%s %q, available: %s", ErrUnknownCommand, name, strings.Join(CommandNames(), ", ")), []string{"NewCommand"}, true}
	}
	return c(S, env), nil
}

// BuildCommands returns the commands named in the settings, in order. Any
// unknown name is an error, and no command is returned in that case.
func BuildCommands(S *Settings, env Env) ([]Command, error) {
	ret := make([]Command, 0, len(S.CommandNames))
	for _, name := range S.CommandNames {
		c, err := NewCommand(name, S, env)
		if err != nil {
			return nil, errDecorate(err, "BuildCommands")
		}
		ret = append(ret, c)
	}
	return ret, nil
}
