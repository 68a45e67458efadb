/*
 * helpers.go, part of fepele.
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

package top

import (
	"fmt"
	"strconv"
	"strings"
)

// Utility functions

var fi func(string) []string = strings.Fields
var sf func(string, ...any) string = fmt.Sprintf

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		i, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

// Returns a string without trailing and leading spaces, tabs, carriage returns and newlines
func cleanString(s string) string {
	return strings.Trim(s, "\r\n\t ")
}

// Error is the error type for the template readers and writers. It fullfills fep.Error
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return sf("template error: %s", err.message)
	}
	return sf("template %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file to which the failing template was associated
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	ErrDuplicated    = "duplicated entry"
	ErrMissingAtom   = "term refers to an atom not in the template"
	ErrWrongFormat   = "wrong format in template line"
	ErrNoHeader      = "template header not found"
	ErrCount         = "number of entries doesn't match the header"
	ErrUnknownSect   = "unknown section"
	ErrUnableToOpen  = "unable to open file"
	ErrUnableToWrite = "unable to write file"
)
