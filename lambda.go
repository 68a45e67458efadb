/*
 * lambda.go, part of fepele.
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

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LambdaType indicates which physical quantities a Lambda controls.
type LambdaType int

const (
	//DualLambda couples all the parameters of both endpoints to one value.
	DualLambda LambdaType = iota
	//StericLambda controls the Lennard-Jones, implicit solvent and bond terms.
	StericLambda
	//CoulombicLambda controls the partial charges.
	CoulombicLambda
)

var lambdaTypeNames = [...]string{
	DualLambda:      "dual",
	StericLambda:    "steric",
	CoulombicLambda: "coulombic",
}

func (T LambdaType) String() string {
	if T < 0 || int(T) >= len(lambdaTypeNames) {
		return "unknown"
	}
	return lambdaTypeNames[T]
}

// ParseLambdaType returns the LambdaType named by s (case-insensitive).
func ParseLambdaType(s string) (LambdaType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range lambdaTypeNames {
		if v == s {
			return LambdaType(i), nil
		}
	}
	return DualLambda, LambdaError{fmt.Sprintf("%s: %q", ErrLambdaType, s), []string{"ParseLambdaType"}}
}

// Controls returns true if a lambda of type T should be used to interpolate
// the quantities controlled by a lambda of type other.
func (T LambdaType) Controls(other LambdaType) bool {
	return T == DualLambda || T == other
}

// Lambda is one value of the coupling parameter. It is immutable.
type Lambda struct {
	value float64
	delta float64
	typ   LambdaType
	index int
}

// NewLambda returns a Lambda with the given value and type. The optional
// delta is the step used to build the shifted lambdas for double-wide sampling.
// Values outside [0,1] are an error.
func NewLambda(value float64, typ LambdaType, delta ...float64) (Lambda, error) {
	if value < 0 || value > 1 || math.IsNaN(value) {
		return Lambda{}, LambdaError{fmt.Sprintf("%s: %g", ErrOutOfRange, value), []string{"NewLambda"}}
	}
	L := Lambda{value: value, typ: typ}
	if len(delta) > 0 {
		L.delta = delta[0]
	}
	return L, nil
}

// Value returns the value of the lambda.
func (L Lambda) Value() float64 { return L.value }

// Delta returns the step size configured for the lambda.
func (L Lambda) Delta() float64 { return L.delta }

// Type returns the type of the lambda.
func (L Lambda) Type() LambdaType { return L.typ }

// Index returns the position of the lambda in the schedule that produced it.
func (L Lambda) Index() int { return L.index }

// Shift returns the lambda displaced by one step in the direction D. The
// result is clamped to [0,1] and keeps the type and delta of the receiver.
func (L Lambda) Shift(D Direction) Lambda {
	v := L.value + D.Factor()*L.delta
	v = math.Max(0, math.Min(1, v))
	return Lambda{value: v, delta: L.delta, typ: L.typ, index: L.index}
}

// Name returns the tag used to name the files produced for this lambda:
// the value rounded to 3 decimals followed by the suffix of the direction,
// if any, or the reference suffix "c" if none is given.
func (L Lambda) Name(D ...Direction) string {
	suffix := ReferenceSuffix
	if len(D) > 0 {
		suffix = D[0].Suffix()
	}
	return FormatValue(L.value) + string(suffix)
}

func (L Lambda) String() string {
	return fmt.Sprintf("%s lambda %s", L.typ, FormatValue(L.value))
}

// FormatValue rounds v to 3 decimals and formats it with the shortest
// representation. It's the only way lambda values go into file names.
func FormatValue(v float64) string {
	r := math.Round(v*1000) / 1000
	return strconv.FormatFloat(r, 'f', -1, 64)
}
