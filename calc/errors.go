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

package calc

import "fmt"

// Error is the error type for the calc package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return fmt.Sprintf("calc error: %s", err.message) }

// Decorate Adds new information to the error
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

type decorable interface {
	error
	Decorate(string) []string
}

// errDecorate decorates err with the caller's name if err supports it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(decorable); ok {
		e.Decorate(caller)
		return e
	}
	return err
}

const (
	ErrUnknownCommand = "unknown command"
	ErrSettings       = "invalid settings"
	ErrCantLoad       = "can't load the settings file"
	ErrCantWrite      = "can't write the summary"
	ErrNoSamples      = "no samples to plot"
)
