package rtf

import (
	"fmt"
	"slices"
	"strings"

	crimm "github.com/stanislc/crimm"
)

//an atom name with a +/- locant belongs to a neighboring residue; the
//bonded structure within one definition stops there.
func local(name string) bool {
	return !strings.ContainsAny(name[:1], "+-")
}

// TopoElements builds the bonded topology elements of the named residue:
// bonds as declared, angles and proper dihedrals generated from the bond
// connectivity (the AUTO ANGLES DIHE convention of CHARMM topology
// files), and impropers as declared. Angles and dihedrals are only
// generated within the residue; bonds reaching the neighboring residues
// (+/- locants) are kept, typed by the local namesake atom.
func (L *Library) TopoElements(resname string) (*crimm.TopoElements, error) {
	def := L.Residue(resname)
	if def == nil {
		return nil, fmt.Errorf("rtf: no residue %s in the library", resname)
	}
	return TopoElementsFor(def)
}

// TopoElementsFor is TopoElements over an explicit residue definition.
func TopoElementsFor(def *crimm.ResidueDefinition) (*crimm.TopoElements, error) {
	c := &crimm.TopoElements{Entity: "residue " + def.Name}
	typeOf := func(name string) (string, error) {
		t, err := def.AtomType(name)
		if err != nil {
			return "", fmt.Errorf("rtf: %w", err)
		}
		return t, nil
	}
	adj := make(map[string][]string)
	for _, b := range def.Bonds {
		t1, err := typeOf(b[0])
		if err != nil {
			return nil, err
		}
		t2, err := typeOf(b[1])
		if err != nil {
			return nil, err
		}
		c.Bonds = append(c.Bonds, &crimm.Bond{Names: b, Types: [2]string{t1, t2}})
		if local(b[0]) && local(b[1]) {
			adj[b[0]] = append(adj[b[0]], b[1])
			adj[b[1]] = append(adj[b[1]], b[0])
		}
	}
	vertices := make([]string, 0, len(adj))
	for v := range adj {
		vertices = append(vertices, v)
	}
	slices.Sort(vertices) //deterministic generation order
	for _, v := range vertices {
		slices.Sort(adj[v])
	}
	//angles: every pair of distinct neighbors around a vertex
	for _, j := range vertices {
		nb := adj[j]
		for x := 0; x < len(nb); x++ {
			for y := x + 1; y < len(nb); y++ {
				names := [3]string{nb[x], j, nb[y]}
				types, err := typesFor3(def, names)
				if err != nil {
					return nil, err
				}
				c.Angles = append(c.Angles, &crimm.Angle{Names: names, Types: types})
			}
		}
	}
	//dihedrals: every path i-j-k-l over a central bond j-k
	for _, b := range def.Bonds {
		j, k := b[0], b[1]
		if !local(j) || !local(k) {
			continue
		}
		for _, i := range adj[j] {
			if i == k {
				continue
			}
			for _, l := range adj[k] {
				if l == j || l == i {
					continue
				}
				names := [4]string{i, j, k, l}
				types, err := typesFor4(def, names)
				if err != nil {
					return nil, err
				}
				c.Dihedrals = append(c.Dihedrals, &crimm.Dihedral{Names: names, Types: types})
			}
		}
	}
	for _, im := range def.Impropers {
		types, err := typesFor4(def, im)
		if err != nil {
			return nil, err
		}
		c.Impropers = append(c.Impropers, &crimm.Improper{Names: im, Types: types})
	}
	return c, nil
}

func typesFor3(def *crimm.ResidueDefinition, names [3]string) ([3]string, error) {
	var types [3]string
	for i, n := range names {
		t, err := def.AtomType(n)
		if err != nil {
			return types, fmt.Errorf("rtf: %w", err)
		}
		types[i] = t
	}
	return types, nil
}

func typesFor4(def *crimm.ResidueDefinition, names [4]string) ([4]string, error) {
	var types [4]string
	for i, n := range names {
		t, err := def.AtomType(n)
		if err != nil {
			return types, fmt.Errorf("rtf: %w", err)
		}
		types[i] = t
	}
	return types, nil
}
