package prm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Wildcard is the atom-type symbol that matches any concrete type in
// dihedral and improper parameter keys.
const Wildcard = "X"

const deg2rad = math.Pi / 180

// BondParam is a harmonic bond term: V = Kb*(r-B0)^2.
type BondParam struct {
	Kb float64 //kcal/mol/A^2
	B0 float64 //equilibrium length, A
}

// Energy returns the bond energy at length r (A), in kcal/mol.
func (B *BondParam) Energy(r float64) float64 {
	d := r - B.B0
	return B.Kb * d * d
}

// AngleParam is a harmonic valence-angle term: V = Ktheta*(theta-Theta0)^2.
type AngleParam struct {
	Ktheta float64 //kcal/mol/rad^2
	Theta0 float64 //equilibrium angle, degrees
}

// Energy returns the angle energy at theta degrees, in kcal/mol.
func (A *AngleParam) Energy(theta float64) float64 {
	d := (theta - A.Theta0) * deg2rad
	return A.Ktheta * d * d
}

// UreyBradleyParam is the harmonic 1-3 term some angle parameters carry:
// V = Kub*(s-S0)^2 over the distance between the two outer atoms.
type UreyBradleyParam struct {
	Kub float64
	S0  float64
}

// DihedralTerm is one periodicity term of a proper torsion:
// V = Kchi*(1+cos(N*phi-Delta)).
type DihedralTerm struct {
	Kchi  float64 //kcal/mol
	N     int     //multiplicity
	Delta float64 //phase, degrees
}

// Energy returns the term's energy at torsion angle phi degrees.
func (T DihedralTerm) Energy(phi float64) float64 {
	return T.Kchi * (1 + math.Cos((float64(T.N)*phi-T.Delta)*deg2rad))
}

// DihedralParam aggregates every periodicity term the force field defines
// for one atom-type key. CHARMM files list them as separate lines sharing
// the key, so a matched record always carries all of them.
type DihedralParam struct {
	Terms []DihedralTerm
}

// Energy returns the summed energy of all terms at phi degrees.
func (D *DihedralParam) Energy(phi float64) float64 {
	var e float64
	for _, t := range D.Terms {
		e += t.Energy(phi)
	}
	return e
}

// ImproperParam is a harmonic out-of-plane term: V = Kpsi*(psi-Psi0)^2.
type ImproperParam struct {
	Kpsi float64
	Psi0 float64 //degrees
}

// CMapParam is a 2D dihedral cross-term correction grid over two
// consecutive torsions (in proteins, phi and psi).
type CMapParam struct {
	Types      [8]string
	Resolution int       //grid points per dimension
	Grid       *mat.Dense //Resolution x Resolution, kcal/mol
}

// NonbondedParam holds the Lennard-Jones well depth and radius of one
// atom type. Epsilon is negative in CHARMM files and kept as read.
type NonbondedParam struct {
	Epsilon float64
	Rmin2   float64 //Rmin/2, A
}

// NBFixParam overrides the combined Lennard-Jones parameters of one
// specific atom-type pair.
type NBFixParam struct {
	Emin float64
	Rmin float64
}

// Table is the category-keyed parameter table built from one or more
// parameter files. It is read-mostly after construction: concurrent
// lookups are safe as long as no goroutine merges into it.
type Table struct {
	Bonds       map[[2]string]*BondParam
	Angles      map[[3]string]*AngleParam
	UreyBradley map[[3]string]*UreyBradleyParam
	Dihedrals   map[[4]string]*DihedralParam
	Impropers   map[[4]string]*ImproperParam
	CMaps       map[[8]string]*CMapParam
	Nonbonded   map[string]*NonbondedParam
	Nonbonded14 map[string]*NonbondedParam
	NBFix       map[[2]string]*NBFixParam
	Masses      map[string]float64
}

func NewTable() *Table {
	return &Table{
		Bonds:       make(map[[2]string]*BondParam),
		Angles:      make(map[[3]string]*AngleParam),
		UreyBradley: make(map[[3]string]*UreyBradleyParam),
		Dihedrals:   make(map[[4]string]*DihedralParam),
		Impropers:   make(map[[4]string]*ImproperParam),
		CMaps:       make(map[[8]string]*CMapParam),
		Nonbonded:   make(map[string]*NonbondedParam),
		Nonbonded14: make(map[string]*NonbondedParam),
		NBFix:       make(map[[2]string]*NBFixParam),
		Masses:      make(map[string]float64),
	}
}

// Merge adds every record of other to the table. Records sharing a key
// overwrite the existing ones, so later files take precedence, as they do
// when CHARMM streams toppar files.
func (t *Table) Merge(other *Table) {
	for k, v := range other.Bonds {
		t.Bonds[k] = v
	}
	for k, v := range other.Angles {
		t.Angles[k] = v
	}
	for k, v := range other.UreyBradley {
		t.UreyBradley[k] = v
	}
	for k, v := range other.Dihedrals {
		t.Dihedrals[k] = v
	}
	for k, v := range other.Impropers {
		t.Impropers[k] = v
	}
	for k, v := range other.CMaps {
		t.CMaps[k] = v
	}
	for k, v := range other.Nonbonded {
		t.Nonbonded[k] = v
	}
	for k, v := range other.Nonbonded14 {
		t.Nonbonded14[k] = v
	}
	for k, v := range other.NBFix {
		t.NBFix[k] = v
	}
	for k, v := range other.Masses {
		t.Masses[k] = v
	}
}

func rev2(k [2]string) [2]string { return [2]string{k[1], k[0]} }
func rev3(k [3]string) [3]string { return [3]string{k[2], k[1], k[0]} }
func rev4(k [4]string) [4]string { return [4]string{k[3], k[2], k[1], k[0]} }

// Bond returns the bond record for the given atom-type pair, trying both
// orientations of the key, or nil if the table has neither.
func (t *Table) Bond(key [2]string) *BondParam {
	if p, ok := t.Bonds[key]; ok {
		return p
	}
	return t.Bonds[rev2(key)]
}

// Angle returns the angle record for the given atom-type triplet, trying
// both orientations, or nil.
func (t *Table) Angle(key [3]string) *AngleParam {
	if p, ok := t.Angles[key]; ok {
		return p
	}
	return t.Angles[rev3(key)]
}

// UB returns the Urey-Bradley record for the given angle key, trying both
// orientations, or nil. Most angle types have none.
func (t *Table) UB(key [3]string) *UreyBradleyParam {
	if p, ok := t.UreyBradley[key]; ok {
		return p
	}
	return t.UreyBradley[rev3(key)]
}

func (t *Table) dihedralExact(key [4]string) *DihedralParam {
	if p, ok := t.Dihedrals[key]; ok {
		return p
	}
	return t.Dihedrals[rev4(key)]
}

// Dihedral returns the proper-torsion record for the given atom-type
// tuple (A,B,C,D). The exact key is tried first; failing that, the
// wildcard key (X,B,C,X) over the central bond, which is the physically
// determining feature of a torsion. Returns nil if neither matches.
func (t *Table) Dihedral(key [4]string) *DihedralParam {
	candidates := [][4]string{
		key,
		{Wildcard, key[1], key[2], Wildcard},
	}
	for _, c := range candidates {
		if p := t.dihedralExact(c); p != nil {
			return p
		}
	}
	return nil
}

func (t *Table) improperExact(key [4]string) *ImproperParam {
	if p, ok := t.Impropers[key]; ok {
		return p
	}
	return t.Impropers[rev4(key)]
}

// Improper returns the improper-torsion record for the given atom-type
// tuple (A,B,C,D), trying progressively more wildcarded keys, most
// specific first:
//
//	(A,B,C,D) (A,X,X,D) (X,B,C,D) (X,B,C,X) (X,X,C,D)
//
// The first candidate with a record wins. Returns nil if none matches.
func (t *Table) Improper(key [4]string) *ImproperParam {
	A, B, C, D := key[0], key[1], key[2], key[3]
	candidates := [][4]string{
		{A, B, C, D},
		{A, Wildcard, Wildcard, D},
		{Wildcard, B, C, D},
		{Wildcard, B, C, Wildcard},
		{Wildcard, Wildcard, C, D},
	}
	for _, c := range candidates {
		if p := t.improperExact(c); p != nil {
			return p
		}
	}
	return nil
}

// CMap returns the cross-term grid declared for the given 8-type key, or
// nil. CMap keys are matched exactly; the format defines no wildcards or
// reversals for them.
func (t *Table) CMap(key [8]string) *CMapParam {
	return t.CMaps[key]
}

// LJ returns the Lennard-Jones record of one atom type, or nil.
func (t *Table) LJ(typ string) *NonbondedParam {
	return t.Nonbonded[typ]
}

// LJ14 returns the 1-4 Lennard-Jones record of one atom type; if the
// force field declares no special 1-4 record, the plain one is returned.
func (t *Table) LJ14(typ string) *NonbondedParam {
	if p, ok := t.Nonbonded14[typ]; ok {
		return p
	}
	return t.Nonbonded[typ]
}

// Fix returns the pair-specific Lennard-Jones override for an atom-type
// pair, trying both orientations, or nil.
func (t *Table) Fix(key [2]string) *NBFixParam {
	if p, ok := t.NBFix[key]; ok {
		return p
	}
	return t.NBFix[rev2(key)]
}
