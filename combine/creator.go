/*
 * creator.go, part of fepele.
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

import (
	"fmt"
	"strings"

	fep "github.com/rmera/fepele"
	"github.com/rmera/fepele/top"
)

// Link maps an atom of the initial template to an atom of the final one,
// both given by PDB name.
type Link struct {
	Initial string
	Final   string
}

// ParseLink parses a link in the "initial:final" form.
func ParseLink(s string) (Link, error) {
	f := strings.Split(s, ":")
	if len(f) != 2 || strings.TrimSpace(f[0]) == "" || strings.TrimSpace(f[1]) == "" {
		return Link{}, Error{fmt.Sprintf("%s: malformed link %q", ErrMissingLink, s), []string{"ParseLink"}}
	}
	return Link{Initial: strings.TrimSpace(f[0]), Final: strings.TrimSpace(f[1])}, nil
}

// Creator builds alchemical templates between an initial and a final template.
// The atoms of the final template whose PDB names are absent from the initial
// one form the fragment, the perturbed region. Linked atoms are paired, and
// so are the bonds whose two atoms are linked.
type Creator struct {
	initial   *top.Template
	final     *top.Template
	atomPairs []AtomPair
	bondPairs []BondPair
}

// NewCreator returns a Creator. final is copied before tagging, so neither
// template is modified.
func NewCreator(initial, final *top.Template, links []Link) (*Creator, error) {
	if initial == nil || final == nil {
		return nil, Error{ErrNilInput, []string{"NewCreator"}}
	}
	C := &Creator{initial: initial, final: final.Copy()}
	C.tagFragment()
	linked := make(map[int]int, len(links)) //final id -> initial id
	for _, l := range links {
		ia := C.initial.AtomByPDBName(l.Initial)
		fa := C.final.AtomByPDBName(l.Final)
		if ia == nil || fa == nil {
			return nil, Error{fmt.Sprintf("%s: %s -> %s", ErrMissingLink, l.Initial, l.Final), []string{"NewCreator"}}
		}
		C.atomPairs = append(C.atomPairs, AtomPair{Initial: ia, Final: fa})
		linked[fa.ID] = ia.ID
	}
	for _, b := range C.final.Bonds() {
		i1, ok1 := linked[b.Atom1]
		i2, ok2 := linked[b.Atom2]
		if !ok1 || !ok2 {
			continue
		}
		if ib := C.initial.Bond(i1, i2); ib != nil {
			C.bondPairs = append(C.bondPairs, BondPair{Initial: ib, Final: b})
		}
	}
	return C, nil
}

func (C *Creator) tagFragment() {
	for _, a := range C.final.Atoms() {
		a.IsFragment = C.initial.AtomByPDBName(a.PDBName) == nil
	}
	frag := func(ids ...int) bool {
		for _, id := range ids {
			if C.final.Atom(id).IsFragment {
				return true
			}
		}
		return false
	}
	for _, b := range C.final.Bonds() {
		a1, a2 := C.final.Atom(b.Atom1), C.final.Atom(b.Atom2)
		b.IsFragment = a1.IsFragment || a2.IsFragment
		if a1.IsFragment != a2.IsFragment {
			b.IsLinker = true
			if a1.IsFragment {
				a2.IsLinker = true
			} else {
				a1.IsLinker = true
			}
		}
	}
	for _, t := range C.final.Thetas() {
		t.IsFragment = frag(t.Atom1, t.Atom2, t.Atom3)
	}
	for _, p := range append(C.final.Phis(), C.final.IPhis()...) {
		p.IsFragment = frag(p.Atom1, p.Atom2, p.Atom3, p.Atom4)
	}
}

// Final returns the tagged copy of the final template.
func (C *Creator) Final() *top.Template { return C.final }

// Initial returns the initial template.
func (C *Creator) Initial() *top.Template { return C.initial }

// AtomPairs returns the atom pairs obtained from the links.
func (C *Creator) AtomPairs() []AtomPair { return C.atomPairs }

// BondPairs returns the bond pairs derived from the links.
func (C *Creator) BondPairs() []BondPair { return C.bondPairs }

// ExplicitIsFinal returns true if the final template is the one with all
// the atoms, i.e. it has at least as many atoms as the initial one.
func (C *Creator) ExplicitIsFinal() bool { return C.final.Len() >= C.initial.Len() }

// values returns the steric and coulombic values to use for L and the optional constant lambda.
func values(L fep.Lambda, constant ...fep.Lambda) (steric, coulombic float64) {
	pick := func(typ fep.LambdaType) float64 {
		if L.Type().Controls(typ) {
			return L.Value()
		}
		for _, c := range constant {
			if c.Type().Controls(typ) {
				return c.Value()
			}
		}
		return L.Value()
	}
	return pick(fep.StericLambda), pick(fep.CoulombicLambda)
}

// Template returns the alchemical template for L. Quantities not controlled by
// L take the value of the constant lambda, if one is given.
func (C *Creator) Template(L fep.Lambda, constant ...fep.Lambda) (*top.Template, error) {
	steric, coulombic := values(L, constant...)
	S, err := NewLinear(C.initial, C.final, steric, C.atomPairs, C.bondPairs)
	if err != nil {
		return nil, errDecorate(err, "Template")
	}
	S.CombineSigmas()
	S.CombineEpsilons()
	S.CombineRadnpSGB()
	S.CombineRadnpType()
	S.CombineBondEqDist()
	if steric == coulombic {
		S.CombineCharges()
		return S.Result(), nil
	}
	Q, err := NewLinear(C.initial, C.final, coulombic, C.atomPairs, C.bondPairs)
	if err != nil {
		return nil, errDecorate(err, "Template")
	}
	Q.CombineCharges()
	res := S.Result()
	for _, a := range Q.Result().Atoms() {
		res.Atom(a.ID).Charge = a.Charge
	}
	return res, nil
}

// WriteTemplate builds the alchemical template for L and writes it to path.
func (C *Creator) WriteTemplate(path string, L fep.Lambda, constant ...fep.Lambda) error {
	T, err := C.Template(L, constant...)
	if err != nil {
		return errDecorate(err, "WriteTemplate")
	}
	if err := T.WriteFile(path); err != nil {
		return errDecorate(err, "WriteTemplate")
	}
	return nil
}

// AtomsToMinimize returns the PELE ids (chain:resnum:name) of the fragment
// atoms, with underscores in place of spaces.
func (C *Creator) AtomsToMinimize(chain string, resnum int) []string {
	ret := make([]string, 0)
	for _, a := range C.final.FragmentAtoms() {
		ret = append(ret, fmt.Sprintf("%s:%d:%s", chain, resnum, strings.ReplaceAll(a.PDBName, " ", "_")))
	}
	return ret
}
