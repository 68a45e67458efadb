/*
 * direction.go, part of fepele.
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

// Direction is a sense of displacement of a lambda value for
// double-wide sampling.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// ReferenceSuffix marks the files of the minimized (unshifted) structure.
const ReferenceSuffix byte = 'c'

var directionFactors = [...]float64{
	Forward:  1,
	Backward: -1,
}

var directionSuffixes = [...]byte{
	Forward:  'f',
	Backward: 'b',
}

var directionNames = [...]string{
	Forward:  "forward",
	Backward: "backward",
}

// Factor returns the sign of the displacement (+1 or -1).
// It panics for an invalid direction.
func (D Direction) Factor() float64 { return directionFactors[D] }

// Suffix returns the single character used to tag the files of a sample in
// this direction. It panics for an invalid direction.
func (D Direction) Suffix() byte { return directionSuffixes[D] }

func (D Direction) String() string {
	if D < 0 || int(D) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[D]
}

// DoubleWideSampling returns the directions sampled around each lambda, in the
// order they are evaluated. A new slice is returned in each call.
func DoubleWideSampling() []Direction {
	return []Direction{Forward, Backward}
}
