/*
 * main.go, part of fepele.
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

//fepele runs alchemical free energy calculations with PELE. It takes a YAML
//settings file and runs the commands named in it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rmera/fepele/calc"
)

//Global variables... Sometimes, you gotta use'em
var verb int

//If v is at least vref, prints the d arguments to stderr
//otherwise, does nothing.
func LogV(v int, vref int, d ...interface{}) {
	if v >= vref {
		fmt.Fprintln(os.Stderr, d...)
	}
}

func CErr(err error, info string) {
	if err != nil {
		log.Fatal(err, info)
	}
}

// confirmWipe asks the user before the results in dir are overwritten.
// It returns true if there is nothing to overwrite.
func confirmWipe(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return true
	}
	ok := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s contains %d files from a previous run. Delete them?", dir, len(entries)),
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		LogV(verb, 1, "Couldn't ask for confirmation:", err)
		return false
	}
	return ok
}

func main() {
	verbose := flag.Int("v", 0, "Level of verbosity, the higher, the more verbose.")
	yes := flag.Bool("y", false, "Never ask before deleting the results of previous runs.")
	ask := flag.Bool("ask", false, "Ask before deleting the results of previous runs.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] settings.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose
	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	settings, err := calc.LoadSettings(args[0])
	CErr(err, " (loading settings)")
	LogV(verb, 1, "Settings read from", args[0])
	LogV(verb, 2, fmt.Sprintf("%+v", settings))
	commands, err := calc.BuildCommands(settings, calc.Env{})
	CErr(err, " (building commands)")
	if *ask && !*yes {
		if !confirmWipe(filepath.Join(settings.CalculationPath, calc.UnboundDir)) {
			fmt.Println("Nothing done")
			return
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	failed := false
	for _, c := range commands {
		LogV(verb, 1, "Running", c.Name())
		res, err := c.Run(ctx)
		if err != nil {
			stop()
			CErr(err, " (running "+c.Name()+")")
		}
		LogV(verb, 1, c.Name(), "done, run", res.RunID)
		for _, f := range res.Failures {
			LogV(verb, 2, "Failed:", f)
			LogV(verb, 3, f.Report)
		}
		if res.Failed() {
			failed = true
		}
	}
	if failed {
		stop()
		os.Exit(2)
	}
}
