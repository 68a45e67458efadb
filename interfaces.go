/*
 * interfaces.go, part of fepele.
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

package fep

//Errors

// Error is the interface for errors that all packages in this module implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the caller (and, optionally, extra info in the form "FunctionName: Extra info") to the
	//decoration slice and returns the slice. If passed an empty string, it just returns the current value.
	Decorate(string) []string
	//Critical returns true if the error should stop the calculation that produced it.
	Critical() bool
}

// errDecorate is a helper function that asserts that the error
// implements Error and decorates the error with the caller's name before returning it.
// if used with a non-Error error, it will just return the error.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

// LambdaError is the error type for the lambda-related functions of this package.
type LambdaError struct {
	message string
	deco    []string
}

func (err LambdaError) Error() string { return "fep: " + err.message }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err LambdaError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical always returns true, a wrong lambda can't be used for anything.
func (err LambdaError) Critical() bool { return true }

const (
	ErrOutOfRange    = "lambda value out of range"
	ErrEmptySchedule = "no lambda values given"
	ErrLambdaType    = "unknown lambda type"

	ErrDuplicatedLambda = "lambda values give the same file names"
)
