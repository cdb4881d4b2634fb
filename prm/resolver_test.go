package prm

import (
	"testing"

	crimm "github.com/stanislc/crimm"
)

func testParameters() *Parameters {
	P := &Parameters{Table: NewTable()}
	P.Bonds[[2]string{"C", "N"}] = &BondParam{Kb: 260, B0: 1.33}
	P.Angles[[3]string{"NH1", "CT1", "C"}] = &AngleParam{Ktheta: 50, Theta0: 107}
	P.UreyBradley[[3]string{"NH1", "CT1", "C"}] = &UreyBradleyParam{Kub: 22.53, S0: 2.179}
	return P
}

func TestApply(t *testing.T) {
	P := testParameters()
	good := &crimm.Bond{Names: [2]string{"N", "C"}, Types: [2]string{"N", "C"}} //reversed on purpose
	bad := &crimm.Bond{Names: [2]string{"ZZ", "QQ"}, Types: [2]string{"ZZ", "QQ"}}
	angle := &crimm.Angle{Types: [3]string{"C", "CT1", "NH1"}}
	c := &crimm.TopoElements{
		Entity: "residue TST",
		Bonds:  []*crimm.Bond{good, bad},
		Angles: []*crimm.Angle{angle},
		//dihedrals and impropers never generated: skipped, not missing
	}
	if err := P.Apply(c); err != nil {
		t.Fatal(err)
	}
	bp, ok := good.Param.(*BondParam)
	if !ok || bp.B0 != 1.33 {
		t.Errorf("resolved bond carries %+v", good.Param)
	}
	if bad.Param != nil {
		t.Errorf("unresolvable bond got a parameter: %+v", bad.Param)
	}
	ap, ok := angle.Param.(*AngleParam)
	if !ok || ap.Theta0 != 107 {
		t.Errorf("resolved angle carries %+v", angle.Param)
	}
	//the angle's Urey-Bradley term rides along with the angle record
	if u, ok := angle.UB.(*UreyBradleyParam); !ok || u.S0 != 2.179 {
		t.Errorf("resolved angle carries UB %+v", angle.UB)
	}
	if len(c.Missing) != 1 {
		t.Fatalf("Missing has %d categories, want 1: %v", len(c.Missing), c.Missing)
	}
	missed := c.Missing[crimm.CategoryBonds]
	if len(missed) != 1 || missed[0] != crimm.TopoElement(bad) {
		t.Errorf("Missing[bonds] = %v, want exactly the unresolvable bond", missed)
	}
	//a second Apply replaces the missing map wholesale
	bad.Types = [2]string{"C", "N"}
	if err := P.Apply(c); err != nil {
		t.Fatal(err)
	}
	if len(c.Missing) != 0 {
		t.Errorf("after fixing the types, Missing = %v", c.Missing)
	}
	if bad.Param == nil {
		t.Error("second Apply left the fixed bond without a parameter")
	}
}

type fakeElement struct{}

func (f *fakeElement) AtomTypes() []string { return nil }
func (f *fakeElement) SetParam(p any)      {}
func (f *fakeElement) Kind() string        { return "contacts" }

func TestFromElement(t *testing.T) {
	P := testParameters()
	p, err := P.FromElement(&crimm.Bond{Types: [2]string{"N", "C"}})
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := p.(*BondParam); !ok || b.B0 != 1.33 {
		t.Errorf("FromElement gave %+v", p)
	}
	//no match is not an error, just a nil record
	p, err = P.FromElement(&crimm.Bond{Types: [2]string{"ZZ", "QQ"}})
	if err != nil || p != nil {
		t.Errorf("unmatched element gave (%v, %v)", p, err)
	}
	if _, err = P.FromElement(&fakeElement{}); err == nil {
		t.Error("an unknown element kind gave no error")
	}
}

//a minimal residue whose atom names cover the IC keys used below.
func testResidue() *crimm.ResidueDefinition {
	def := crimm.NewResidueDefinition("TST")
	def.AddAtom(&crimm.AtomDef{Name: "C", Type: "C"})
	def.AddAtom(&crimm.AtomDef{Name: "N", Type: "N"})
	def.AddAtom(&crimm.AtomDef{Name: "CA", Type: "CT1"})
	def.AddAtom(&crimm.AtomDef{Name: "CB", Type: "CT3"})
	return def
}

func TestFillIC(t *testing.T) {
	P := &Parameters{Table: NewTable()}
	P.Bonds[[2]string{"N", "C"}] = &BondParam{Kb: 260, B0: 1.33} //note the orientation
	def := testResidue()
	key := [4]string{"-C", "N", "CA", "CB"}
	entry := &crimm.ICEntry{Values: map[string]*float64{crimm.ICBondIJ: nil}}
	def.IC[key] = entry
	if err := P.FillIC(def, false); err != nil {
		t.Fatal(err)
	}
	v := entry.Values[crimm.ICBondIJ]
	if v == nil || *v != 1.33 {
		t.Fatalf("R(I-J) filled with %v, want 1.33", v)
	}
	//preserve keeps values already there
	stale := 9.99
	entry.Values[crimm.ICBondIJ] = &stale
	if err := P.FillIC(def, true); err != nil {
		t.Fatal(err)
	}
	if v := entry.Values[crimm.ICBondIJ]; *v != 9.99 {
		t.Errorf("preserve overwrote the value with %v", *v)
	}
	//without preserve the equilibrium value wins again
	if err := P.FillIC(def, false); err != nil {
		t.Fatal(err)
	}
	if v := entry.Values[crimm.ICBondIJ]; *v != 1.33 {
		t.Errorf("refill gave %v, want 1.33", *v)
	}
}

func TestFillICImproper(t *testing.T) {
	P := &Parameters{Table: NewTable()}
	P.Bonds[[2]string{"C", "N"}] = &BondParam{Kb: 260, B0: 1.33}
	def := testResidue()
	//in an improper entry the distance is I-K, third atom bonded to the
	//first
	key := [4]string{"C", "CA", "N", "CB"}
	entry := &crimm.ICEntry{Improper: true, Values: map[string]*float64{crimm.ICBondIK: nil}}
	def.IC[key] = entry
	if err := P.FillIC(def, false); err != nil {
		t.Fatal(err)
	}
	v := entry.Values[crimm.ICBondIK]
	if v == nil || *v != 1.33 {
		t.Fatalf("R(I-K) filled with %v, want 1.33", v)
	}
}

func TestFillICSkipsPhi(t *testing.T) {
	P := &Parameters{Table: NewTable()} //no parameters at all
	def := testResidue()
	def.IC[[4]string{"C", "N", "CA", "CB"}] = &crimm.ICEntry{
		Values: map[string]*float64{crimm.ICPhi: nil},
	}
	//Phi can't come from equilibrium values, so nothing is looked up and
	//the empty table is no problem
	if err := P.FillIC(def, false); err != nil {
		t.Fatal(err)
	}
	if v := def.IC[[4]string{"C", "N", "CA", "CB"}].Values[crimm.ICPhi]; v != nil {
		t.Errorf("Phi was filled with %v", *v)
	}
}

func TestFillICMissingParam(t *testing.T) {
	P := &Parameters{Table: NewTable()}
	def := testResidue()
	def.IC[[4]string{"C", "N", "CA", "CB"}] = &crimm.ICEntry{
		Values: map[string]*float64{crimm.ICAngleJKL: nil},
	}
	if err := P.FillIC(def, false); err == nil {
		t.Fatal("filling against an empty table gave no error")
	}
}

func TestFillICUnknownAtom(t *testing.T) {
	P := testParameters()
	def := testResidue()
	def.IC[[4]string{"C", "N", "CA", "ZZ"}] = crimm.NewICEntry(false)
	if err := P.FillIC(def, false); err == nil {
		t.Fatal("an IC entry naming an undeclared atom gave no error")
	}
}
