/*
 * impact.go, part of fepele.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Fixed-column formats of the OPLS2005 impact templates read by PELE.
const (
	headerFormat = "%-5s %5d %5d %5d %5d %5d\n"
	resxFormat   = "%5d %5d %1s   %-4s %-4s %5d %11.5f %11.5f %11.5f\n"
	nbonFormat   = "%5d %8.4f %8.4f %10.6f %8.4f %8.4f %13.9f %13.9f\n"
	bondFormat   = "%5d %5d %9.3f %6.3f\n"
	thetaFormat  = "%5d %5d %5d %11.5f %11.5f\n"
	phiFormat    = "%5d %5d %5d %5d %9.5f %4.1f %3.1f\n"
)

// Section headers
const (
	nbonSection  = "NBON"
	bondSection  = "BOND"
	thetaSection = "THET"
	phiSection   = "PHI"
	iphiSection  = "IPHI"
	endSection   = "END"
)

// WriteResx returns the topology line for the atom.
func (A *Atom) WriteResx() string {
	return sf(resxFormat, A.ID, A.ParentID, A.Location, A.Type, A.PDBName, A.Unknown, A.X, A.Y, A.Z)
}

// WriteNbon returns the nonbonded line for the atom.
func (A *Atom) WriteNbon() string {
	return sf(nbonFormat, A.ID, A.Sigma, A.Epsilon, A.Charge, A.RadnpSGB, A.RadnpType, A.SGBNPGamma, A.SGBNPType)
}

// WriteBond returns the template line for the bond.
func (B *Bond) WriteBond() string {
	return sf(bondFormat, B.Atom1, B.Atom2, B.Spring, B.EqDist)
}

// WriteTheta returns the template line for the angle.
func (T *Theta) WriteTheta() string {
	return sf(thetaFormat, T.Atom1, T.Atom2, T.Atom3, T.Spring, T.EqAngle)
}

// WritePhi returns the template line for a proper dihedral, or
// an empty string if the receiver is an improper one.
func (P *Phi) WritePhi() string {
	if P.Improper {
		return ""
	}
	return P.line()
}

// WriteIPhi returns the template line for an improper dihedral, or
// an empty string if the receiver is a proper one.
func (P *Phi) WriteIPhi() string {
	if !P.Improper {
		return ""
	}
	return P.line()
}

func (P *Phi) line() string {
	return sf(phiFormat, P.Atom1, P.Atom2, P.Atom3, P.Atom4, P.Constant, P.Prefactor, P.NTerm)
}

// AtomFromResx returns an atom with the topology information in the
// template line s. The nonbonded parameters are left at zero.
func AtomFromResx(s string) (A *Atom, err error) {
	defer func() {
		if r := recover(); r != nil {
			A = nil
			err = Error{sf("%s: %s (%s)", ErrWrongFormat, cleanString(s), r), "", []string{"AtomFromResx"}, true}
		}
	}()
	l := fi(s)
	if len(l) != 9 {
		panic(sf("expected 9 fields, got %d", len(l)))
	}
	A = new(Atom)
	ints, err := parseints(l[0], l[1], l[5])
	qerr(err)
	A.ID, A.ParentID, A.Unknown = ints[0], ints[1], ints[2]
	A.Location = l[2]
	A.Type = l[3]
	A.PDBName = l[4]
	xyz, err := parsefloats(l[6:9]...)
	qerr(err)
	A.X, A.Y, A.Z = xyz[0], xyz[1], xyz[2]
	return A, nil
}

// NbonFromLine fills the nonbonded parameters of the atom with the data in the
// template line s. The line must refer to the atom's ID.
func (A *Atom) NbonFromLine(s string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Error{sf("%s: %s (%s)", ErrWrongFormat, cleanString(s), r), "", []string{"NbonFromLine"}, true}
		}
	}()
	l := fi(s)
	if len(l) != 8 {
		panic(sf("expected 8 fields, got %d", len(l)))
	}
	ids, err := parseints(l[0])
	qerr(err)
	if ids[0] != A.ID {
		panic(sf("line is for atom %d, not %d", ids[0], A.ID))
	}
	p, err := parsefloats(l[1:]...)
	qerr(err)
	A.Sigma, A.Epsilon, A.Charge = p[0], p[1], p[2]
	A.RadnpSGB, A.RadnpType, A.SGBNPGamma, A.SGBNPType = p[3], p[4], p[5], p[6]
	return nil
}

// BondFromLine returns the bond in the template line s.
func BondFromLine(s string) (B *Bond, err error) {
	defer func() {
		if r := recover(); r != nil {
			B = nil
			err = Error{sf("%s: %s (%s)", ErrWrongFormat, cleanString(s), r), "", []string{"BondFromLine"}, true}
		}
	}()
	l := fi(s)
	if len(l) != 4 {
		panic(sf("expected 4 fields, got %d", len(l)))
	}
	ids, err := parseints(l[:2]...)
	qerr(err)
	p, err := parsefloats(l[2:]...)
	qerr(err)
	return &Bond{Atom1: ids[0], Atom2: ids[1], Spring: p[0], EqDist: p[1]}, nil
}

// ThetaFromLine returns the angle in the template line s.
func ThetaFromLine(s string) (T *Theta, err error) {
	defer func() {
		if r := recover(); r != nil {
			T = nil
			err = Error{sf("%s: %s (%s)", ErrWrongFormat, cleanString(s), r), "", []string{"ThetaFromLine"}, true}
		}
	}()
	l := fi(s)
	if len(l) != 5 {
		panic(sf("expected 5 fields, got %d", len(l)))
	}
	ids, err := parseints(l[:3]...)
	qerr(err)
	p, err := parsefloats(l[3:]...)
	qerr(err)
	return &Theta{Atom1: ids[0], Atom2: ids[1], Atom3: ids[2], Spring: p[0], EqAngle: p[1]}, nil
}

// PhiFromLine returns the dihedral in the template line s. improper
// tells whether the line was read from the IPHI section.
func PhiFromLine(s string, improper bool) (P *Phi, err error) {
	defer func() {
		if r := recover(); r != nil {
			P = nil
			err = Error{sf("%s: %s (%s)", ErrWrongFormat, cleanString(s), r), "", []string{"PhiFromLine"}, true}
		}
	}()
	l := fi(s)
	if len(l) != 7 {
		panic(sf("expected 7 fields, got %d", len(l)))
	}
	ids, err := parseints(l[:4]...)
	qerr(err)
	p, err := parsefloats(l[4:]...)
	qerr(err)
	return &Phi{Atom1: ids[0], Atom2: ids[1], Atom3: ids[2], Atom4: ids[3], Constant: p[0], Prefactor: p[1], NTerm: p[2], Improper: improper}, nil
}

//The high-level functions

// StringReader is satisfied by *bufio.Reader, among others.
type StringReader interface {
	ReadString(delim byte) (string, error)
}

// Read reads a complete impact template from r.
func Read(r StringReader) (T *Template, err error) {
	var s string
	var nheader []int
	var comments []string
	section := ""
	for s, err = r.ReadString('\n'); err == nil || (err == io.EOF && s != ""); s, err = r.ReadString('\n') {
		s = cleanString(s)
		if s == "" {
			if err == io.EOF {
				break
			}
			continue
		}
		if T == nil {
			if strings.HasPrefix(s, "*") {
				comments = append(comments, strings.TrimPrefix(s, "*"))
				continue
			}
			l := fi(s)
			if len(l) != 6 {
				return nil, Error{sf("%s: %s", ErrNoHeader, s), "", []string{"Read"}, true}
			}
			nheader, err = parseints(l[1:]...)
			if err != nil {
				return nil, Error{sf("%s: %s", ErrNoHeader, s), "", []string{"Read"}, true}
			}
			T = NewTemplate(l[0])
			T.Comment = comments
			continue
		}
		switch s {
		case nbonSection, bondSection, thetaSection, phiSection, iphiSection:
			section = s
			continue
		case endSection:
			section = s
		}
		if section == endSection {
			break
		}
		if perr := T.readLine(section, s); perr != nil {
			return nil, errDecorate(perr, "Read")
		}
		if err == io.EOF {
			break
		}
	}
	if err != nil && err != io.EOF {
		return nil, Error{err.Error(), "", []string{"Read"}, true}
	}
	if T == nil {
		return nil, Error{ErrNoHeader, "", []string{"Read"}, true}
	}
	if err := T.checkCounts(nheader); err != nil {
		return nil, errDecorate(err, "Read")
	}
	return T, nil
}

func (T *Template) readLine(section, s string) error {
	switch section {
	case "":
		A, err := AtomFromResx(s)
		if err != nil {
			return err
		}
		return T.AddAtom(A)
	case nbonSection:
		l := fi(s)
		ids, err := parseints(l[0])
		if err != nil || T.Atom(ids[0]) == nil {
			return Error{sf("%s: %s", ErrMissingAtom, s), "", []string{"readLine"}, true}
		}
		return T.Atom(ids[0]).NbonFromLine(s)
	case bondSection:
		B, err := BondFromLine(s)
		if err != nil {
			return err
		}
		return T.AddBond(B)
	case thetaSection:
		A, err := ThetaFromLine(s)
		if err != nil {
			return err
		}
		return T.AddTheta(A)
	case phiSection, iphiSection:
		P, err := PhiFromLine(s, section == iphiSection)
		if err != nil {
			return err
		}
		return T.AddPhi(P)
	}
	return Error{sf("%s: %s", ErrUnknownSect, section), "", []string{"readLine"}, true}
}

// the header counts atoms, bonds, angles, proper and improper dihedrals.
func (T *Template) checkCounts(n []int) error {
	got := []int{T.Len(), len(T.border), len(T.thetas), len(T.Phis()), len(T.IPhis())}
	for i, v := range got {
		if n[i] != v {
			return Error{sf("%s: %v vs %v", ErrCount, n, got), "", []string{"checkCounts"}, true}
		}
	}
	return nil
}

// ReadFile reads the impact template in the file fname.
func ReadFile(fname string) (*Template, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, Error{sf("%s: %s", ErrUnableToOpen, err.Error()), fname, []string{"os.Open", "ReadFile"}, true}
	}
	defer f.Close()
	T, err := Read(bufio.NewReader(f))
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = fname
			e.Decorate("ReadFile")
			return nil, e
		}
		return nil, err
	}
	return T, nil
}

// Write writes the template, in impact format, to w.
func (T *Template) Write(w io.StringWriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Error{sf("%s: %s", ErrUnableToWrite, r), "", []string{"Write"}, true}
		}
	}()
	ws := func(s string) {
		_, err := w.WriteString(s)
		qerr(err)
	}
	for _, c := range T.Comment {
		ws("*" + c + "\n")
	}
	phis, iphis := T.Phis(), T.IPhis()
	ws(sf(headerFormat, T.Name, T.Len(), len(T.border), len(T.thetas), len(phis), len(iphis)))
	atoms := T.Atoms()
	for _, v := range atoms {
		ws(v.WriteResx())
	}
	ws(nbonSection + "\n")
	for _, v := range atoms {
		ws(v.WriteNbon())
	}
	ws(bondSection + "\n")
	for _, v := range T.Bonds() {
		ws(v.WriteBond())
	}
	ws(thetaSection + "\n")
	for _, v := range T.thetas {
		ws(v.WriteTheta())
	}
	ws(phiSection + "\n")
	for _, v := range phis {
		ws(v.WritePhi())
	}
	ws(iphiSection + "\n")
	for _, v := range iphis {
		ws(v.WriteIPhi())
	}
	ws(endSection + "\n")
	return nil
}

// WriteFile writes the template to the file fname, replacing it if it exists.
func (T *Template) WriteFile(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return Error{sf("%s: %s", ErrUnableToWrite, err.Error()), fname, []string{"os.Create", "WriteFile"}, true}
	}
	w := bufio.NewWriter(f)
	if err = T.Write(w); err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Error{fmt.Sprintf("%s: %s", ErrUnableToWrite, err.Error()), fname, []string{"WriteFile"}, true}
	}
	return nil
}

// errDecorate decorates the error with the caller's name if it is a template Error.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
