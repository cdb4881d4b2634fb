package prm

import (
	"fmt"
	"log"

	crimm "github.com/stanislc/crimm"
)

// Parameters is a force-field parameter set: a Table plus the operations
// that resolve and attach records to topology elements and back-fill
// residue internal-coordinate values.
type Parameters struct {
	*Table
}

// New returns a Parameters loaded from the given parameter files, in
// order. With no arguments the set starts empty.
func New(files ...string) (*Parameters, error) {
	P := &Parameters{Table: NewTable()}
	for _, f := range files {
		if err := P.Load(f); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	return P, nil
}

// Load reads one more parameter file and merges its records into the
// set. Records already present are overwritten by the new file's.
func (P *Parameters) Load(path string) error {
	t, err := Read(path)
	if err != nil {
		return errDecorate(err, "Load")
	}
	P.Table.Merge(t)
	return nil
}

func (P *Parameters) String() string {
	t := P.Table
	return fmt.Sprintf(
		"<Parameters Bond: %d, Angle: %d, Urey-Bradley: %d, Dihedral: %d, Improper: %d, CMAP: %d, Nonbond: %d, Nonbond14: %d, NBfix: %d>",
		len(t.Bonds), len(t.Angles), len(t.UreyBradley), len(t.Dihedrals),
		len(t.Impropers), len(t.CMaps), len(t.Nonbonded), len(t.Nonbonded14), len(t.NBFix))
}

// FromElement returns the parameter record matching a topology element,
// dispatching on its concrete kind, or nil if the table has no match.
// An element kind this package doesn't know is an error.
func (P *Parameters) FromElement(e crimm.TopoElement) (any, error) {
	switch el := e.(type) {
	case *crimm.Bond:
		if p := P.Bond(el.Types); p != nil {
			return p, nil
		}
	case *crimm.Angle:
		if p := P.Angle(el.Types); p != nil {
			return p, nil
		}
	case *crimm.Dihedral:
		if p := P.Dihedral(el.Types); p != nil {
			return p, nil
		}
	case *crimm.Improper:
		if p := P.Improper(el.Types); p != nil {
			return p, nil
		}
	default:
		return nil, Error{message: fmt.Sprintf("invalid topology element type %T", e), deco: []string{"FromElement"}}
	}
	return nil, nil
}

//resolves one category's elements, attaching the matched records and
//returning the elements without a match.
func (P *Parameters) applyToElements(category string, elements []crimm.TopoElement) ([]crimm.TopoElement, error) {
	var missing []crimm.TopoElement
	for _, e := range elements {
		var param any
		switch category {
		case crimm.CategoryBonds:
			if p := P.Bond(key2(e)); p != nil {
				param = p
			}
		case crimm.CategoryAngles:
			k := key3(e)
			if p := P.Angle(k); p != nil {
				param = p
				//angles carry their Urey-Bradley term along, when the
				//force field defines one for the key.
				if u := P.UB(k); u != nil {
					if a, ok := e.(*crimm.Angle); ok {
						a.UB = u
					}
				}
			}
		case crimm.CategoryDihedrals:
			if p := P.Dihedral(key4(e)); p != nil {
				param = p
			}
		case crimm.CategoryImpropers:
			if p := P.Improper(key4(e)); p != nil {
				param = p
			}
		default:
			return nil, Error{message: fmt.Sprintf("invalid topology element category %q", category), deco: []string{"applyToElements"}}
		}
		if param == nil {
			missing = append(missing, e)
			continue
		}
		e.SetParam(param)
	}
	return missing, nil
}

// Apply resolves and attaches a parameter record to every element of the
// container, category by category. Categories the container never
// generated (nil slices) are logged and skipped. Elements with no
// matching record are left untouched and collected, per category, into
// the container's Missing map, which this call replaces wholesale; a
// per-category count of misses is logged. Failures to match are not
// errors: the only error case is a category name the dispatch doesn't
// know.
func (P *Parameters) Apply(c *crimm.TopoElements) error {
	missing := make(map[string][]crimm.TopoElement)
	for _, cat := range c.Categories() {
		if cat.Elements == nil {
			log.Printf("prm: no %s found in %s", cat.Name, c.Entity)
			continue
		}
		nofit, err := P.applyToElements(cat.Name, cat.Elements)
		if err != nil {
			return errDecorate(err, "Apply")
		}
		if len(nofit) > 0 {
			log.Printf("prm: %d %s failed to find parameters", len(nofit), cat.Name)
			missing[cat.Name] = nofit
		}
	}
	c.Missing = missing
	return nil
}

func key2(e crimm.TopoElement) [2]string {
	t := e.AtomTypes()
	return [2]string{t[0], t[1]}
}

func key3(e crimm.TopoElement) [3]string {
	t := e.AtomTypes()
	return [3]string{t[0], t[1], t[2]}
}

func key4(e crimm.TopoElement) [4]string {
	t := e.AtomTypes()
	return [4]string{t[0], t[1], t[2], t[3]}
}

//icPositionIndex maps an internal-coordinate value name to the positions,
//within the IC entry's four-atom tuple, of the atoms that define it.
var icPositionIndex = map[string][]int{
	crimm.ICBondIJ:   {0, 1},
	crimm.ICAngleIJK: {0, 1, 2},
	crimm.ICAngleJKL: {1, 2, 3},
	crimm.ICBondKL:   {2, 3},
	crimm.ICAngleIKJ: {0, 2, 1},
	crimm.ICBondIK:   {0, 2},
}

//looks up the equilibrium value for an IC sub-key: bond length b0 for a
//pair, angle theta0 for a triplet. A missing parameter is an error.
func (P *Parameters) icValue(key []string) (float64, error) {
	if len(key) == 2 {
		b := P.Bond([2]string{key[0], key[1]})
		if b == nil {
			return 0, Error{message: fmt.Sprintf("no bond parameters for %v", key), deco: []string{"icValue"}}
		}
		return b.B0, nil
	}
	a := P.Angle([3]string{key[0], key[1], key[2]})
	if a == nil {
		return 0, Error{message: fmt.Sprintf("no angle parameters for %v", key), deco: []string{"icValue"}}
	}
	return a.Theta0, nil
}

// FillIC fills the missing values of a residue definition's
// internal-coordinate table with the equilibrium bond lengths and angles
// of this parameter set. Torsion (Phi) values cannot be derived from
// bond/angle parameters and are never touched. With preserve, values the
// topology file already provides are kept; otherwise every non-torsion
// value is recomputed. A bond or angle type with no parameter record
// aborts the fill with an error.
func (P *Parameters) FillIC(def *crimm.ResidueDefinition, preserve bool) error {
	for key, entry := range def.IC {
		var types [4]string
		for i, name := range key {
			typ, err := def.AtomType(name)
			if err != nil {
				return errDecorate(err, "FillIC")
			}
			types[i] = typ
		}
		for icType, val := range entry.Values {
			if icType == crimm.ICPhi {
				continue
			}
			if val != nil && preserve {
				continue
			}
			ids, ok := icPositionIndex[icType]
			if !ok {
				return Error{message: fmt.Sprintf("unknown internal coordinate type %q", icType), deco: []string{"FillIC"}}
			}
			sub := make([]string, len(ids))
			for i, id := range ids {
				sub[i] = types[id]
			}
			v, err := P.icValue(sub)
			if err != nil {
				return errDecorate(err, fmt.Sprintf("FillIC: residue %s", def.Name))
			}
			entry.Values[icType] = &v
		}
	}
	return nil
}

// FillAllIC runs FillIC over every residue definition of a topology
// library.
func (P *Parameters) FillAllIC(lib crimm.ResidueProvider, preserve bool) error {
	for _, def := range lib.ResidueDefinitions() {
		if err := P.FillIC(def, preserve); err != nil {
			return errDecorate(err, "FillAllIC")
		}
	}
	return nil
}
