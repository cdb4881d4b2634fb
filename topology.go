/*
 * topology.go, part of crimm.
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

// Category names, in the order Apply processes them.
const (
	CategoryBonds     = "bonds"
	CategoryAngles    = "angles"
	CategoryDihedrals = "dihedrals"
	CategoryImpropers = "impropers"
)

// Bond is a bonded pair of atoms, identified for parameter matching by
// the ordered pair of their atom types. Param is set by prm.Apply and
// holds a *prm.BondParam once matched.
type Bond struct {
	Names [2]string //atom names, for reporting
	Types [2]string
	Param any
}

func (B *Bond) AtomTypes() []string { return B.Types[:] }
func (B *Bond) SetParam(p any)      { B.Param = p }
func (B *Bond) Kind() string        { return CategoryBonds }

// Angle is a bonded triplet; the second atom is the vertex.
type Angle struct {
	Names [3]string
	Types [3]string
	Param any
	UB    any //Urey-Bradley 1-3 term, when the force field defines one
}

func (A *Angle) AtomTypes() []string { return A.Types[:] }
func (A *Angle) SetParam(p any)      { A.Param = p }
func (A *Angle) Kind() string        { return CategoryAngles }

// Dihedral is a proper torsion over four consecutively bonded atoms.
type Dihedral struct {
	Names [4]string
	Types [4]string
	Param any
}

func (D *Dihedral) AtomTypes() []string { return D.Types[:] }
func (D *Dihedral) SetParam(p any)      { D.Param = p }
func (D *Dihedral) Kind() string        { return CategoryDihedrals }

// Improper is an out-of-plane torsion; by CHARMM convention the first
// atom is the central one.
type Improper struct {
	Names [4]string
	Types [4]string
	Param any
}

func (I *Improper) AtomTypes() []string { return I.Types[:] }
func (I *Improper) SetParam(p any)      { I.Param = p }
func (I *Improper) Kind() string        { return CategoryImpropers }

// TopoElements collects the bonded topology elements of one entity (a
// residue, a chain...). A nil category slice means that category was
// never generated for the entity, which Apply treats differently from an
// empty one. Missing is replaced wholesale by each Apply call with the
// elements for which no parameter was found, keyed by category.
type TopoElements struct {
	Entity    string //description of the containing entity, for messages
	Bonds     []*Bond
	Angles    []*Angle
	Dihedrals []*Dihedral
	Impropers []*Improper
	Missing   map[string][]TopoElement
}

// Category is one (name, elements) pair of a TopoElements container.
// Elements is nil when the container never generated that category.
type Category struct {
	Name     string
	Elements []TopoElement
}

// Categories returns the container's categories in fixed order: bonds,
// angles, dihedrals, impropers.
func (T *TopoElements) Categories() []Category {
	cats := make([]Category, 0, 4)
	cats = append(cats, Category{CategoryBonds, asElements(T.Bonds)})
	cats = append(cats, Category{CategoryAngles, asElements(T.Angles)})
	cats = append(cats, Category{CategoryDihedrals, asElements(T.Dihedrals)})
	cats = append(cats, Category{CategoryImpropers, asElements(T.Impropers)})
	return cats
}

// Len returns the total number of elements over all categories.
func (T *TopoElements) Len() int {
	return len(T.Bonds) + len(T.Angles) + len(T.Dihedrals) + len(T.Impropers)
}

func asElements[E TopoElement](els []E) []TopoElement {
	if els == nil {
		return nil
	}
	ret := make([]TopoElement, len(els))
	for i, v := range els {
		ret[i] = v
	}
	return ret
}
