/*
 * energy.go, part of fepele.
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
	"bufio"
	"math"
	"strconv"
	"strings"
)

// EnergyMarker starts the line of a PELE report that carries the energy.
const EnergyMarker = "ENERGY"

// EnergyFromReport returns the energy in the first line of the report that
// starts with EnergyMarker. The energy is the last field of that line. A
// report without such line, or with a field that is not a number, gives a
// non-critical ErrNoEnergy error.
func EnergyFromReport(report string) (float64, error) {
	scan := bufio.NewScanner(strings.NewReader(report))
	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scan.Scan() {
		line := scan.Text()
		if !strings.HasPrefix(line, EnergyMarker) {
			continue
		}
		fields := strings.Fields(line)
		e, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return 0, Error{message: ErrNoEnergy, details: report, deco: []string{"strconv.ParseFloat", "EnergyFromReport"}, err: err}
		}
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return 0, Error{message: ErrNoEnergy + ": non-finite value", details: report, deco: []string{"EnergyFromReport"}}
		}
		return e, nil
	}
	if err := scan.Err(); err != nil {
		return 0, Error{message: ErrNoEnergy, details: report, deco: []string{"bufio.Scanner", "EnergyFromReport"}, err: err}
	}
	return 0, Error{message: ErrNoEnergy, details: report, deco: []string{"EnergyFromReport"}}
}
