/*
 * doc.go, part of fepele.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package fep is the main package of fepele. It provides the coupling parameter
(Lambda), the lambda schedules and the double-wide sampling directions used to
estimate relative free energies between two parameterizations of a ligand with
the PELE program.

	**fepele Capabilities**

	Reads and writes PELE (OPLS2005) impact templates (package top).

	Interpolates two endpoint templates atom-by-atom and bond-by-bond for a
	given lambda, under a pluggable combination rule (package combine).

	Writes PELE control files from templates, runs PELE and recovers the
	energies from its report (package pele).

	Sequences minimizations, alchemical template generation and single-point
	recalculations over a lambda schedule, and aggregates the energy
	differences into a free energy prediction (package calc).

All the lambda-related tables (direction factors, direction suffixes, file
name templates) are fixed at compile time and exposed only through functions,
so they can't be altered at run time.
*/
package fep
