/*
 * builder.go, part of fepele.
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

import "github.com/rmera/fepele/top"

// build constructs a new template with the structure and parameters of
// ref, term by term, so nothing in it is shared with ref.
func build(ref *top.Template) (*top.Template, error) {
	N := top.NewTemplate(ref.Name)
	N.Comment = append([]string(nil), ref.Comment...)
	for _, a := range ref.Atoms() {
		if err := N.AddAtom(a.Copy()); err != nil {
			return nil, errDecorate(err, "build")
		}
	}
	for _, b := range ref.Bonds() {
		if err := N.AddBond(b.Copy()); err != nil {
			return nil, errDecorate(err, "build")
		}
	}
	for _, t := range ref.Thetas() {
		nt := *t
		if err := N.AddTheta(&nt); err != nil {
			return nil, errDecorate(err, "build")
		}
	}
	//propers first, then impropers, as they are written.
	for _, p := range append(ref.Phis(), ref.IPhis()...) {
		np := *p
		if err := N.AddPhi(&np); err != nil {
			return nil, errDecorate(err, "build")
		}
	}
	return N, nil
}
