package prmplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stanislc/crimm/prm"
)

func TestProfiles(t *testing.T) {
	dir := t.TempDir()
	d := &prm.DihedralParam{Terms: []prm.DihedralTerm{
		{Kchi: 0.2, N: 3, Delta: 0},
		{Kchi: 2.0, N: 2, Delta: 180},
	}}
	files := []string{
		filepath.Join(dir, "dihedral.png"),
		filepath.Join(dir, "angle.png"),
		filepath.Join(dir, "bond.png"),
	}
	if err := DihedralProfile(d, "backbone psi", files[0]); err != nil {
		t.Fatal(err)
	}
	a := &prm.AngleParam{Ktheta: 50, Theta0: 107}
	if err := AngleProfile(a, 30, "N-CA-C", files[1]); err != nil {
		t.Fatal(err)
	}
	b := &prm.BondParam{Kb: 260, B0: 1.33}
	if err := BondProfile(b, 0.3, "C-N", files[2]); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		fi, err := os.Stat(f)
		if err != nil {
			t.Errorf("no plot written to %s", f)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("empty plot file %s", f)
		}
	}
}

func TestProfilesRejectEmpty(t *testing.T) {
	if err := DihedralProfile(&prm.DihedralParam{}, "t", "x.png"); err == nil {
		t.Error("an empty dihedral record gave no error")
	}
	if err := BondProfile(nil, 0.3, "t", "x.png"); err == nil {
		t.Error("a nil bond record gave no error")
	}
}
