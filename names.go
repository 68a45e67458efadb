/*
 * names.go, part of fepele.
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
	"strconv"
	"strings"
)

// File names used in the calculation and minimization directories.
const (
	MinimizationCFName = "minimization.conf"
	SingleLogfileName  = "logfile.txt"
	SummaryName        = "summary.txt"
	ProfilePlotName    = "profile.png"

	TrajectoryPrefix = "trajectory_"
	TrajectoryExt    = ".pdb"
	logfilePrefix    = "logfile_"
	singlePointCF    = "pp_"
)

// TrajectoryName returns the name of the trajectory for the sample tagged tag.
func TrajectoryName(tag string) string { return TrajectoryPrefix + tag + TrajectoryExt }

// LogfileName returns the name of the PELE log for the sample tagged tag.
func LogfileName(tag string) string { return logfilePrefix + tag + ".txt" }

// SinglePointCFName returns the name of the recalculation control file for the sample tagged tag.
func SinglePointCFName(tag string) string { return singlePointCF + tag + ".conf" }

// Tag returns the tag that identifies a sample in file names. sweep is 0 for
// a single sweep, or the 1-based number of the sweep when lambdas are split,
// in which case it is used as a prefix so different sweeps never collide.
// Without a direction the tag refers to the minimized reference structure.
func Tag(sweep int, L Lambda, D ...Direction) string {
	name := L.Name(D...)
	if sweep > 0 {
		return strconv.Itoa(sweep) + "_" + name
	}
	return name
}

// ParseTag is the inverse of Tag. It returns the sweep number, the lambda
// value (rounded as in the tag) and the suffix character.
func ParseTag(tag string) (sweep int, value float64, suffix byte, err error) {
	if len(tag) < 2 {
		return 0, 0, 0, LambdaError{fmt.Sprintf("invalid tag %q", tag), []string{"ParseTag"}}
	}
	if s, rest, ok := strings.Cut(tag, "_"); ok {
		sweep, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, 0, LambdaError{fmt.Sprintf("invalid sweep in tag %q", tag), []string{"ParseTag"}}
		}
		tag = rest
	}
	if len(tag) < 2 {
		return 0, 0, 0, LambdaError{fmt.Sprintf("invalid tag %q", tag), []string{"ParseTag"}}
	}
	suffix = tag[len(tag)-1]
	value, err = strconv.ParseFloat(tag[:len(tag)-1], 64)
	if err != nil {
		return 0, 0, 0, LambdaError{fmt.Sprintf("invalid lambda in tag %q", tag), []string{"ParseTag"}}
	}
	return sweep, value, suffix, nil
}
