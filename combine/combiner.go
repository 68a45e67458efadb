/*
 * combiner.go, part of fepele.
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

	"github.com/rmera/fepele/top"
)

// Func is a combination rule. It takes the value of a parameter in the
// initial state and in the final state and returns the combined value.
type Func func(initial, final float64) float64

// Linear returns the linear interpolation rule initial*(1-lambda) + final*lambda.
func Linear(lambda float64) Func {
	return func(initial, final float64) float64 {
		return initial*(1-lambda) + final*lambda
	}
}

// AtomPair maps an atom of the initial template to one of the final template.
type AtomPair struct {
	Initial *top.Atom
	Final   *top.Atom
}

// BondPair maps a bond of the initial template to one of the final template.
type BondPair struct {
	Initial *top.Bond
	Final   *top.Bond
}

// Combiner produces a new template from an initial and a final one. The new
// template has the structure of the final template, and each Combine* method
// overwrites one parameter in it: paired atoms (bonds) get the rule applied to
// the initial and final values, while fragment atoms (bonds) of the final
// template without a pair get the rule applied to 0 and their final value.
// Parameters not combined keep their final-state values. The endpoint
// templates are never modified.
type Combiner struct {
	initial   *top.Template
	final     *top.Template
	lambda    float64
	f         Func
	atomPairs []AtomPair
	bondPairs []BondPair
	result    *top.Template
}

// New returns a Combiner for the given templates and rule. lambda is only kept
// for reference, the rule f must already include it, if needed. The pairs can be nil.
func New(initial, final *top.Template, lambda float64, f Func, atomPairs []AtomPair, bondPairs []BondPair) (*Combiner, error) {
	if initial == nil || final == nil || f == nil {
		return nil, Error{ErrNilInput, []string{"New"}}
	}
	C := &Combiner{initial: initial, final: final, lambda: lambda, f: f}
	for _, v := range atomPairs {
		if err := C.AddAtomPair(v); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	for _, v := range bondPairs {
		if err := C.AddBondPair(v); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	var err error
	C.result, err = build(final)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	return C, nil
}

// NewLinear returns a Combiner that interpolates linearly with the given lambda.
func NewLinear(initial, final *top.Template, lambda float64, atomPairs []AtomPair, bondPairs []BondPair) (*Combiner, error) {
	return New(initial, final, lambda, Linear(lambda), atomPairs, bondPairs)
}

// Lambda returns the lambda the combiner was built with.
func (C *Combiner) Lambda() float64 { return C.lambda }

// AddAtomPair adds an atom pairing. Both atoms must belong to their templates.
func (C *Combiner) AddAtomPair(p AtomPair) error {
	if p.Initial == nil || p.Final == nil || C.initial.Atom(p.Initial.ID) == nil || C.final.Atom(p.Final.ID) == nil {
		return Error{fmt.Sprintf("%s: atoms %v", ErrBadPair, p), []string{"AddAtomPair"}}
	}
	C.atomPairs = append(C.atomPairs, p)
	return nil
}

// AddBondPair adds a bond pairing. Both bonds must belong to their templates.
func (C *Combiner) AddBondPair(p BondPair) error {
	if p.Initial == nil || p.Final == nil || C.initial.Bond(p.Initial.Atom1, p.Initial.Atom2) == nil ||
		C.final.Bond(p.Final.Atom1, p.Final.Atom2) == nil {
		return Error{fmt.Sprintf("%s: bonds %v", ErrBadPair, p), []string{"AddBondPair"}}
	}
	C.bondPairs = append(C.bondPairs, p)
	return nil
}

// AtomPairs returns the atom pairs currently held by the combiner.
func (C *Combiner) AtomPairs() []AtomPair { return C.atomPairs }

// BondPairs returns the bond pairs currently held by the combiner.
func (C *Combiner) BondPairs() []BondPair { return C.bondPairs }

// Result returns the template being built.
func (C *Combiner) Result() *top.Template { return C.result }

type atomField struct {
	get func(*top.Atom) float64
	set func(*top.Atom, float64)
}

var (
	epsilonField   = atomField{func(a *top.Atom) float64 { return a.Epsilon }, func(a *top.Atom, v float64) { a.Epsilon = v }}
	sigmaField     = atomField{func(a *top.Atom) float64 { return a.Sigma }, func(a *top.Atom, v float64) { a.Sigma = v }}
	chargeField    = atomField{func(a *top.Atom) float64 { return a.Charge }, func(a *top.Atom, v float64) { a.Charge = v }}
	radnpSGBField  = atomField{func(a *top.Atom) float64 { return a.RadnpSGB }, func(a *top.Atom, v float64) { a.RadnpSGB = v }}
	radnpTypeField = atomField{func(a *top.Atom) float64 { return a.RadnpType }, func(a *top.Atom, v float64) { a.RadnpType = v }}
)

func (C *Combiner) combineAtoms(field atomField) {
	paired := make(map[int]bool, len(C.atomPairs))
	for _, p := range C.atomPairs {
		field.set(C.result.Atom(p.Final.ID), C.f(field.get(p.Initial), field.get(p.Final)))
		paired[p.Final.ID] = true
	}
	for _, a := range C.final.FragmentAtoms() {
		if paired[a.ID] {
			continue
		}
		field.set(C.result.Atom(a.ID), C.f(0, field.get(a)))
	}
}

// CombineEpsilons combines the Lennard-Jones epsilons.
func (C *Combiner) CombineEpsilons() { C.combineAtoms(epsilonField) }

// CombineSigmas combines the Lennard-Jones sigmas.
func (C *Combiner) CombineSigmas() { C.combineAtoms(sigmaField) }

// CombineCharges combines the partial charges.
func (C *Combiner) CombineCharges() { C.combineAtoms(chargeField) }

// CombineRadnpSGB combines the SGB nonpolar radii.
func (C *Combiner) CombineRadnpSGB() { C.combineAtoms(radnpSGBField) }

// CombineRadnpType combines the nonpolar radius types.
func (C *Combiner) CombineRadnpType() { C.combineAtoms(radnpTypeField) }

// CombineBondEqDist combines the equilibrium distances of the bonds.
// Paired bonds are found in the result by the key of the final-state bond.
func (C *Combiner) CombineBondEqDist() {
	paired := make(map[top.BondKey]bool, len(C.bondPairs))
	for _, p := range C.bondPairs {
		k := p.Final.Key()
		C.result.Bond(k.A1, k.A2).EqDist = C.f(p.Initial.EqDist, p.Final.EqDist)
		paired[k] = true
	}
	for _, b := range C.final.FragmentBonds() {
		if paired[b.Key()] || paired[b.Key().Reverse()] {
			continue
		}
		C.result.Bond(b.Atom1, b.Atom2).EqDist = C.f(0, b.EqDist)
	}
}

// CombineAll applies every Combine* method.
func (C *Combiner) CombineAll() {
	C.CombineEpsilons()
	C.CombineSigmas()
	C.CombineCharges()
	C.CombineRadnpSGB()
	C.CombineRadnpType()
	C.CombineBondEqDist()
}
