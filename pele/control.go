/*
 * control.go, part of fepele.
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
	"os"
	"sort"
	"strings"
)

// Flags replaced in the PELE control file templates.
const (
	InputPDBFlag        = "INPUT_PDB_NAME"
	SolventTypeFlag     = "SOLVENT_TYPE"
	LogPathFlag         = "LOG_PATH"
	TrajectoryPathFlag  = "TRAJECTORY_PATH"
	AtomsToMinimizeFlag = "ATOMS_TO_MINIMIZE"
)

// ControlFile is a PELE control file built from a template where the
// values to fill are written as $FLAG.
type ControlFile struct {
	template string
	values   map[string]string
}

// NewControlFile returns a ControlFile from the template text.
func NewControlFile(template string) *ControlFile {
	return &ControlFile{template: template, values: make(map[string]string)}
}

// ReadControlFile returns a ControlFile with the template in the given file.
func ReadControlFile(path string) (*ControlFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, Error{message: ErrNoControlFile, file: path, deco: []string{"os.ReadFile", "ReadControlFile"}, critical: true, err: err}
	}
	return NewControlFile(string(b)), nil
}

// ReplaceFlag sets the value to put in place of $flag.
func (C *ControlFile) ReplaceFlag(flag, value string) {
	C.values[flag] = value
}

// Flags returns the names of the flags that have been given a value, sorted.
func (C *ControlFile) Flags() []string {
	ret := make([]string, 0, len(C.values))
	for k := range C.values {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// String returns the control file with the flags replaced. Flags without
// a value are left as they are.
func (C *ControlFile) String() string {
	return os.Expand(C.template, func(name string) string {
		if v, ok := C.values[name]; ok {
			return v
		}
		return "$" + name
	})
}

// Write writes the control file, with the flags replaced, to path.
func (C *ControlFile) Write(path string) error {
	if err := os.WriteFile(path, []byte(C.String()), 0644); err != nil {
		return Error{message: ErrCantInput, file: path, deco: []string{"os.WriteFile", "Write"}, critical: true, err: err}
	}
	return nil
}

// QuotedList joins the items as a comma-separated list of quoted strings,
// the way PELE control files take lists of atoms.
func QuotedList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return `"` + strings.Join(items, `", "`) + `"`
}
