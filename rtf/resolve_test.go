package rtf

import (
	"testing"

	crimm "github.com/stanislc/crimm"
	"github.com/stanislc/crimm/prm"
)

//end to end: read a toppar pair, attach parameters to everything ALA
//generates and back-fill its internal coordinates.
func TestResolveALA(t *testing.T) {
	params, err := prm.New("../prm/testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	L := readTestLibrary(t)
	c, err := L.TopoElements("ALA")
	if err != nil {
		t.Fatal(err)
	}
	if err := params.Apply(c); err != nil {
		t.Fatal(err)
	}
	if len(c.Missing) != 0 {
		t.Fatalf("unresolved elements: %v", c.Missing)
	}
	for _, b := range c.Bonds {
		if b.Param == nil {
			t.Errorf("bond %v has no parameter", b.Names)
		}
	}
	//the methyl angles carry Urey-Bradley terms, the backbone N one
	//doesn't
	for _, a := range c.Angles {
		switch {
		case a.Types == [3]string{"CT1", "CT3", "HA3"}:
			if a.UB == nil {
				t.Errorf("angle %v lost its Urey-Bradley term", a.Names)
			}
		case a.Types == [3]string{"CT1", "NH1", "H"}:
			if a.UB != nil {
				t.Errorf("angle %v got a Urey-Bradley term from nowhere", a.Names)
			}
		}
	}
	//the sidechain torsions resolve through the X CT1 CT3 X wildcard
	for _, d := range c.Dihedrals {
		if d.Types[1] == "CT3" || d.Types[2] == "CT3" {
			p, ok := d.Param.(*prm.DihedralParam)
			if !ok || p.Terms[0].N != 3 {
				t.Errorf("dihedral %v resolved to %+v", d.Names, d.Param)
			}
		}
	}
}

func TestFillICFromFiles(t *testing.T) {
	params, err := prm.New("../prm/testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	L := readTestLibrary(t)
	if err := params.FillAllIC(L, true); err != nil {
		t.Fatal(err)
	}
	ala := L.Residue("ALA")
	//the placeholder zeros of the C CA CB HB1 entry are now the
	//equilibrium values of the C-CT1 bond and C-CT1-CT3 angle
	hole := ala.IC[[4]string{"C", "CA", "CB", "HB1"}]
	if v := hole.Values[crimm.ICBondIJ]; v == nil || *v != 1.49 {
		t.Errorf("R(I-J) filled with %v, want 1.49", v)
	}
	if v := hole.Values[crimm.ICAngleIJK]; v == nil || *v != 108.0 {
		t.Errorf("T(I-J-K) filled with %v, want 108.0", v)
	}
	//values the rtf file provides stay put under preserve
	imp := ala.IC[[4]string{"-C", "CA", "N", "HN"}]
	if v := imp.Values[crimm.ICBondIK]; v == nil || *v != 1.3551 {
		t.Errorf("preserve changed R(I-K) to %v", v)
	}
}
