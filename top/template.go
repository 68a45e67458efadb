/*
 * template.go, part of fepele.
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
	"strings"
)

// Atom contains the data for one atom in a template: the topology (ID, parent,
// location, type, names and the z-matrix placement) and the nonbonded parameters.
type Atom struct {
	ID         int
	ParentID   int
	Location   string //M (main chain), S (side chain) or B (branch)
	Type       string
	PDBName    string //as in the template, with underscores instead of spaces
	Unknown    int
	X          float64 //z-matrix coordinates
	Y          float64
	Z          float64
	Sigma      float64
	Epsilon    float64
	Charge     float64
	RadnpSGB   float64
	RadnpType  float64
	SGBNPGamma float64
	SGBNPType  float64
	IsFragment bool //part of the perturbed region
	IsLinker   bool //core atom bonded to the perturbed region
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	N := *A
	return &N
}

// Name returns the PDB name of the atom with the underscores replaced by spaces.
func (A *Atom) Name() string {
	return strings.ReplaceAll(A.PDBName, "_", " ")
}

// BondKey is the ordered pair of atom IDs that identifies a bond in a template.
type BondKey struct {
	A1, A2 int
}

// Reverse returns the key with the atoms swapped.
func (K BondKey) Reverse() BondKey { return BondKey{K.A2, K.A1} }

// Bond is a harmonic bond between the atoms Atom1 and Atom2.
type Bond struct {
	Atom1      int
	Atom2      int
	Spring     float64
	EqDist     float64
	IsFragment bool
	IsLinker   bool
}

// Key returns the key of the bond in a template.
func (B *Bond) Key() BondKey { return BondKey{B.Atom1, B.Atom2} }

// Copy returns a copy of the bond.
func (B *Bond) Copy() *Bond {
	N := *B
	return &N
}

// Theta is a harmonic angle term.
type Theta struct {
	Atom1      int
	Atom2      int
	Atom3      int
	Spring     float64
	EqAngle    float64
	IsFragment bool
}

func (T *Theta) atoms() []int { return []int{T.Atom1, T.Atom2, T.Atom3} }

// Phi is a dihedral term, either proper or improper, never both.
type Phi struct {
	Atom1      int
	Atom2      int
	Atom3      int
	Atom4      int
	Constant   float64
	Prefactor  float64
	NTerm      float64
	Improper   bool
	IsFragment bool
}

func (P *Phi) atoms() []int { return []int{P.Atom1, P.Atom2, P.Atom3, P.Atom4} }

/*****Template type***/

// Template is the force-field parameterization of one state of a molecule.
// Atoms are kept in a mapping from atom ID, and bonds in a mapping from their
// BondKey, both remembering the insertion order. Every term in the template refers
// only to atoms present in it.
type Template struct {
	Name    string   //residue name
	Comment []string //comment lines at the top of the file, without the leading '*'
	atoms   map[int]*Atom
	order   []int
	bonds   map[BondKey]*Bond
	border  []BondKey
	thetas  []*Theta
	phis    []*Phi
}

// NewTemplate returns an empty template for the residue name.
func NewTemplate(name string) *Template {
	T := new(Template)
	T.Name = name
	T.atoms = make(map[int]*Atom)
	T.bonds = make(map[BondKey]*Bond)
	return T
}

// Len returns the number of atoms in the template.
func (T *Template) Len() int { return len(T.order) }

// AddAtom appends an atom to the template. It fails if
// there is already an atom with the same ID.
func (T *Template) AddAtom(A *Atom) error {
	if _, ok := T.atoms[A.ID]; ok {
		return Error{sf("%s: atom %d", ErrDuplicated, A.ID), "", []string{"AddAtom"}, true}
	}
	T.atoms[A.ID] = A
	T.order = append(T.order, A.ID)
	return nil
}

func (T *Template) checkAtoms(caller string, ids ...int) error {
	for _, v := range ids {
		if _, ok := T.atoms[v]; !ok {
			return Error{sf("%s: %d", ErrMissingAtom, v), "", []string{caller}, true}
		}
	}
	return nil
}

// AddBond appends a bond to the template. Both atoms must be already in the template,
// and the bond can't be already present in either order.
func (T *Template) AddBond(B *Bond) error {
	if err := T.checkAtoms("AddBond", B.Atom1, B.Atom2); err != nil {
		return err
	}
	k := B.Key()
	_, ok := T.bonds[k]
	_, rok := T.bonds[k.Reverse()]
	if ok || rok {
		return Error{sf("%s: bond %d-%d", ErrDuplicated, B.Atom1, B.Atom2), "", []string{"AddBond"}, true}
	}
	T.bonds[k] = B
	T.border = append(T.border, k)
	return nil
}

// AddTheta appends an angle term to the template.
func (T *Template) AddTheta(A *Theta) error {
	if err := T.checkAtoms("AddTheta", A.atoms()...); err != nil {
		return err
	}
	T.thetas = append(T.thetas, A)
	return nil
}

// AddPhi appends a dihedral, proper or improper, to the template.
func (T *Template) AddPhi(P *Phi) error {
	if err := T.checkAtoms("AddPhi", P.atoms()...); err != nil {
		return err
	}
	T.phis = append(T.phis, P)
	return nil
}

// Atom returns the atom with the given ID, or nil if not present.
func (T *Template) Atom(id int) *Atom { return T.atoms[id] }

// AtomByPDBName returns the first atom with the given PDB name, or nil.
// Spaces and underscores are considered equivalent, and leading/trailing ones ignored.
func (T *Template) AtomByPDBName(name string) *Atom {
	name = normName(name)
	for _, id := range T.order {
		if normName(T.atoms[id].PDBName) == name {
			return T.atoms[id]
		}
	}
	return nil
}

func normName(s string) string {
	return strings.Trim(strings.ReplaceAll(s, " ", "_"), "_")
}

// Bond returns the bond between the two atoms, in either order, or nil.
func (T *Template) Bond(a1, a2 int) *Bond {
	if b, ok := T.bonds[BondKey{a1, a2}]; ok {
		return b
	}
	return T.bonds[BondKey{a2, a1}]
}

// Atoms returns the atoms of the template in order.
func (T *Template) Atoms() []*Atom {
	ret := make([]*Atom, 0, len(T.order))
	for _, id := range T.order {
		ret = append(ret, T.atoms[id])
	}
	return ret
}

// Bonds returns the bonds of the template in order.
func (T *Template) Bonds() []*Bond {
	ret := make([]*Bond, 0, len(T.border))
	for _, k := range T.border {
		ret = append(ret, T.bonds[k])
	}
	return ret
}

// Thetas returns the angle terms of the template.
func (T *Template) Thetas() []*Theta { return T.thetas }

// Phis returns the proper dihedrals of the template.
func (T *Template) Phis() []*Phi { return T.dihedrals(false) }

// IPhis returns the improper dihedrals of the template.
func (T *Template) IPhis() []*Phi { return T.dihedrals(true) }

func (T *Template) dihedrals(improper bool) []*Phi {
	ret := make([]*Phi, 0, len(T.phis))
	for _, v := range T.phis {
		if v.Improper == improper {
			ret = append(ret, v)
		}
	}
	return ret
}

// FragmentAtoms returns the atoms tagged as part of the perturbed region, in order.
func (T *Template) FragmentAtoms() []*Atom {
	ret := make([]*Atom, 0)
	for _, id := range T.order {
		if T.atoms[id].IsFragment {
			ret = append(ret, T.atoms[id])
		}
	}
	return ret
}

// FragmentBonds returns the bonds tagged as part of the perturbed region, in order.
func (T *Template) FragmentBonds() []*Bond {
	ret := make([]*Bond, 0)
	for _, k := range T.border {
		if T.bonds[k].IsFragment {
			ret = append(ret, T.bonds[k])
		}
	}
	return ret
}

// Copy returns a deep copy of the template, with the same order of atoms and terms.
func (T *Template) Copy() *Template {
	N := NewTemplate(T.Name)
	N.Comment = append([]string(nil), T.Comment...)
	N.order = append(make([]int, 0, len(T.order)), T.order...)
	for id, a := range T.atoms {
		N.atoms[id] = a.Copy()
	}
	N.border = append(make([]BondKey, 0, len(T.border)), T.border...)
	for k, b := range T.bonds {
		N.bonds[k] = b.Copy()
	}
	N.thetas = make([]*Theta, 0, len(T.thetas))
	for _, v := range T.thetas {
		t := *v
		N.thetas = append(N.thetas, &t)
	}
	N.phis = make([]*Phi, 0, len(T.phis))
	for _, v := range T.phis {
		p := *v
		N.phis = append(N.phis, &p)
	}
	return N
}
