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

//Package calc contains the free energy calculations that can be requested in
//a settings file, and the machinery they share: the settings themselves, the
//table that maps command names to calculations, and the result of a run.
//
//A calculation is a Command. The only one so far is the unbound lambda
//simulation, which computes the relative free energy of two ligands in
//solvent by double-wide sampling of a lambda schedule with PELE.
package calc
