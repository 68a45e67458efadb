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

/*
Top is a package for reading, building and writing force-field templates (not to be
confused with molecular topologies) in the PELE impact (OPLS2005) format. A Template
holds the atoms, bonds, angles and proper/improper dihedrals of one state of a ligand,
with the atoms keyed by their ID and the bonds by their pair of atom IDs, both in the
order they were added.
*/
package top
