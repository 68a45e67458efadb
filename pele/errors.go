/*
 * errors.go, part of fepele.
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

import "fmt"

// Error is the error type for the pele package.
type Error struct {
	message  string
	file     string //the control file involved, if any
	details  string //extra information, such as the program's output
	deco     []string
	critical bool
	err      error //underlying error, if any
}

func (err Error) Error() string {
	s := fmt.Sprintf("PELE error: %s", err.message)
	if err.file != "" {
		s = fmt.Sprintf("PELE error in %s: %s", err.file, err.message)
	}
	if err.err != nil {
		s = s + ": " + err.err.Error()
	}
	return s
}

// Decorate Adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns true if the error is critical. A missing energy
// is not critical: the calculation can go on without that point.
func (err Error) Critical() bool { return err.critical }

// File returns the control file related to the error, if any.
func (err Error) File() string { return err.file }

// Details returns the additional information attached to the error, usually
// the output of the program.
func (err Error) Details() string { return err.details }

// Message returns the sentinel message of the error.
func (err Error) Message() string { return err.message }

// Unwrap returns the underlying error, if any.
func (err Error) Unwrap() error { return err.err }

const (
	ErrNoEnergy      = "no energy line in the PELE report"
	ErrNotRunning    = "PELE failed to run"
	ErrCantInput     = "can't write the control file"
	ErrNoControlFile = "can't read the control file template"
	ErrNoCommand     = "no PELE executable given"
)
