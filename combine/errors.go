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

package combine

// Error is the error type for this package. It fullfills fep.Error
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return "combine: " + err.message }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical always returns true.
func (err Error) Critical() bool { return true }

type decorable interface {
	error
	Decorate(string) []string
}

// errDecorate is a helper function that asserts that the error
// can be decorated, and decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(decorable)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

const (
	ErrNilInput    = "nil template or combination rule"
	ErrBadPair     = "pair refers to entities not in the templates"
	ErrMissingLink = "linked atom not found"
)
