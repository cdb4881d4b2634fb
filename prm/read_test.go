package prm

import "testing"

func TestRead(t *testing.T) {
	table, err := Read("testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	counts := []struct {
		name string
		got  int
		want int
	}{
		{"bonds", len(table.Bonds), 9},
		{"angles", len(table.Angles), 13},
		{"urey_bradley", len(table.UreyBradley), 2},
		{"dihedrals", len(table.Dihedrals), 5},
		{"impropers", len(table.Impropers), 4},
		{"cmap", len(table.CMaps), 1},
		{"nonbonded", len(table.Nonbonded), 8},
		{"nonbonded14", len(table.Nonbonded14), 4},
		{"nbfix", len(table.NBFix), 1},
		{"masses", len(table.Masses), 9},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s: read %d records, want %d", c.name, c.got, c.want)
		}
	}
	b := table.Bond([2]string{"C", "N"})
	if b == nil || b.Kb != 260.0 || b.B0 != 1.30 {
		t.Errorf("bond C-N read as %+v", b)
	}
	u := table.UB([3]string{"CT1", "CT3", "HA3"})
	if u == nil || u.Kub != 22.53 || u.S0 != 2.179 {
		t.Errorf("Urey-Bradley CT1-CT3-HA3 read as %+v", u)
	}
	if table.UB([3]string{"NH1", "CT1", "C"}) != nil {
		t.Error("got a Urey-Bradley record for an angle without the extra columns")
	}
	if m := table.Masses["NH1"]; m != 14.007 {
		t.Errorf("mass of NH1 read as %v", m)
	}
	f := table.Fix([2]string{"O", "NH1"})
	if f == nil || f.Emin != -0.154919 || f.Rmin != 3.55 {
		t.Errorf("NBFIX NH1-O read as %+v", f)
	}
}

func TestReadDihedralMultiplicity(t *testing.T) {
	table, err := Read("testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	d := table.Dihedral([4]string{"C", "CT1", "NH1", "C"})
	if d == nil {
		t.Fatal("no dihedral record for C-CT1-NH1-C")
	}
	if len(d.Terms) != 2 {
		t.Fatalf("C-CT1-NH1-C has %d terms, want 2", len(d.Terms))
	}
	if d.Terms[0].N != 1 || d.Terms[1].N != 2 {
		t.Errorf("multiplicities %d and %d, want 1 and 2", d.Terms[0].N, d.Terms[1].N)
	}
	if d.Terms[1].Kchi != 2.0 || d.Terms[1].Delta != 180.0 {
		t.Errorf("second term read as %+v", d.Terms[1])
	}
}

func TestReadCMap(t *testing.T) {
	table, err := Read("testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	key := [8]string{"C", "NH1", "CT1", "C", "NH1", "CT1", "C", "NH1"}
	c := table.CMap(key)
	if c == nil {
		t.Fatal("no CMAP record for the backbone key")
	}
	if c.Resolution != 3 {
		t.Errorf("CMAP resolution %d, want 3", c.Resolution)
	}
	r, cols := c.Grid.Dims()
	if r != 3 || cols != 3 {
		t.Fatalf("CMAP grid is %dx%d, want 3x3", r, cols)
	}
	if v := c.Grid.At(2, 2); v != 3.320040 {
		t.Errorf("grid corner is %v, want 3.320040", v)
	}
	if v := c.Grid.At(0, 1); v != 0.768700 {
		t.Errorf("grid (0,1) is %v, want 0.768700", v)
	}
}

func TestReadNonbonded(t *testing.T) {
	table, err := Read("testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	lj := table.LJ("NH1")
	if lj == nil || lj.Epsilon != -0.20 || lj.Rmin2 != 1.85 {
		t.Errorf("LJ record for NH1 read as %+v", lj)
	}
	lj14 := table.LJ14("CT1")
	if lj14 == nil || lj14.Epsilon != -0.010 || lj14.Rmin2 != 1.90 {
		t.Errorf("1-4 LJ record for CT1 read as %+v", lj14)
	}
	//types without explicit 1-4 columns fall back to the plain record
	lj14 = table.LJ14("C")
	if lj14 == nil || lj14.Epsilon != -0.11 {
		t.Errorf("1-4 LJ fallback for C read as %+v", lj14)
	}
	if table.LJ("XX") != nil {
		t.Error("got an LJ record for an unknown type")
	}
}

func TestReadGzip(t *testing.T) {
	plain, err := Read("testdata/par_test.prm")
	if err != nil {
		t.Fatal(err)
	}
	gz, err := Read("testdata/par_test.prm.gz")
	if err != nil {
		t.Fatal(err)
	}
	if len(gz.Bonds) != len(plain.Bonds) || len(gz.Dihedrals) != len(plain.Dihedrals) {
		t.Errorf("gzipped file read %d bonds and %d dihedrals, plain %d and %d",
			len(gz.Bonds), len(gz.Dihedrals), len(plain.Bonds), len(plain.Dihedrals))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read("testdata/no_such_file.prm")
	if err == nil {
		t.Fatal("reading a missing file gave no error")
	}
}
