/*
 * entities.go, part of crimm.
 *
 * Copyright 2024 The crimm developers
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
 */

package crimm

import (
	"fmt"
	"strings"
)

// AtomDef is an atom as declared in a residue topology definition. Only
// topological information is kept; coordinates belong elsewhere.
type AtomDef struct {
	Name   string
	Type   string //the force-field atom type, i.e. the matching key for parameters
	Charge float64
	Mass   float64
}

// Names for the entries of an internal-coordinate table. The I-K variants
// apply to improper internal coordinates, where the third atom of the
// tuple, not the second, is bonded to the first.
const (
	ICBondIJ   = "R(I-J)"
	ICAngleIJK = "T(I-J-K)"
	ICPhi      = "Phi"
	ICAngleJKL = "T(J-K-L)"
	ICBondKL   = "R(K-L)"
	ICAngleIKJ = "T(I-K-J)"
	ICBondIK   = "R(I-K)"
)

// ICEntry is one line of a residue's internal-coordinate table: the
// bond/angle/torsion values needed to place the fourth atom of the tuple
// given the first three. A nil value means the rtf file did not provide
// one; those are the values that parameter back-filling computes.
type ICEntry struct {
	Improper bool //if true, atoms I and K are bonded, rather than I and J
	Values   map[string]*float64
}

// NewICEntry returns an ICEntry with the value names that correspond to a
// regular or improper internal coordinate, all unset.
func NewICEntry(improper bool) *ICEntry {
	e := &ICEntry{Improper: improper}
	e.Values = make(map[string]*float64, 5)
	if improper {
		e.Values[ICBondIK] = nil
		e.Values[ICAngleIKJ] = nil
	} else {
		e.Values[ICBondIJ] = nil
		e.Values[ICAngleIJK] = nil
	}
	e.Values[ICPhi] = nil
	e.Values[ICAngleJKL] = nil
	e.Values[ICBondKL] = nil
	return e
}

// ResidueDefinition is a residue (RESI) or patch (PRES) block from a
// topology file: its atoms, bonded structure and internal-coordinate
// table.
type ResidueDefinition struct {
	Name      string
	Patch     bool //true for PRES blocks
	Charge    float64
	Atoms     []*AtomDef
	Bonds     [][2]string //atom-name pairs, possibly with +/- locants
	Impropers [][4]string
	CMaps     [][8]string
	IC        map[[4]string]*ICEntry
	byName    map[string]*AtomDef
}

func NewResidueDefinition(name string) *ResidueDefinition {
	return &ResidueDefinition{
		Name:   name,
		IC:     make(map[[4]string]*ICEntry),
		byName: make(map[string]*AtomDef),
	}
}

// AddAtom appends an atom to the definition. A redeclared name replaces
// the previous atom in place, as a patch would.
func (R *ResidueDefinition) AddAtom(at *AtomDef) {
	if at == nil {
		panic("crimm: attempted to add a nil atom to a residue definition")
	}
	if old, ok := R.byName[at.Name]; ok {
		*old = *at
		return
	}
	R.Atoms = append(R.Atoms, at)
	R.byName[at.Name] = at
}

// StripLocant removes the leading "+" or "-" neighbor-residue locant from
// an atom name, if present.
func StripLocant(name string) string {
	return strings.TrimLeft(name, "+-")
}

// Atom returns the atom declared under the given name, or nil if there is
// none. Leading +/- locants are stripped before the lookup, so atoms of
// the neighboring residues resolve to their local namesakes.
func (R *ResidueDefinition) Atom(name string) *AtomDef {
	return R.byName[StripLocant(name)]
}

// AtomType resolves an atom name, locants included, to its declared
// force-field atom type.
func (R *ResidueDefinition) AtomType(name string) (string, error) {
	at := R.Atom(name)
	if at == nil {
		return "", NewError(fmt.Sprintf("residue %s declares no atom named %s", R.Name, name), "AtomType")
	}
	return at.Type, nil
}
