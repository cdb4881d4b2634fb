package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadManifest(t *testing.T) {
	m, err := ReadManifest("testdata/toppar.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Parameters) != 1 || len(m.Topologies) != 1 {
		t.Fatalf("manifest read as %+v", m)
	}
	if !m.Preserve {
		t.Error("preserve flag not read")
	}
	if len(m.Residues) != 1 || m.Residues[0] != "ALA" {
		t.Errorf("residue filter read as %v", m.Residues)
	}
}

func TestReadManifestRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("topologies: [a.rtf]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadManifest(bad); err == nil {
		t.Error("a manifest without parameter files gave no error")
	}
	if _, err := ReadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("a missing manifest gave no error")
	}
}
