/*
icfill loads CHARMM parameter and residue-topology files listed in a
YAML manifest, attaches parameters to the topology elements of every
residue, back-fills the internal-coordinate tables with equilibrium
values, and reports what couldn't be matched.

	icfill -m toppar.yaml

A manifest looks like:

	parameters:
	  - par_all36_prot.prm
	topologies:
	  - top_all36_prot.rtf
	preserve: true
	residues: [ALA, GLY]   # empty means all
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	crimm "github.com/stanislc/crimm"
	"github.com/stanislc/crimm/prm"
	"github.com/stanislc/crimm/rtf"
)

// Manifest is the YAML description of a toppar set and what to do with it.
type Manifest struct {
	Parameters []string `yaml:"parameters"`
	Topologies []string `yaml:"topologies"`
	Preserve   bool     `yaml:"preserve"`
	Residues   []string `yaml:"residues"`
}

// ReadManifest reads and validates a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := new(Manifest)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if len(m.Parameters) == 0 {
		return nil, fmt.Errorf("manifest %s: no parameter files listed", path)
	}
	if len(m.Topologies) == 0 {
		return nil, fmt.Errorf("manifest %s: no topology files listed", path)
	}
	return m, nil
}

func main() {
	manifest := flag.String("m", "toppar.yaml", "the toppar manifest to process")
	verbose := flag.Bool("v", false, "list every element missing parameters, not just counts")
	flag.Parse()

	m, err := ReadManifest(*manifest)
	if err != nil {
		log.Fatal(err)
	}
	params, err := prm.New(m.Parameters...)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(params)

	wanted := make(map[string]bool, len(m.Residues))
	for _, r := range m.Residues {
		wanted[r] = true
	}
	var totalMissing int
	for _, topfile := range m.Topologies {
		lib, err := rtf.Read(topfile)
		if err != nil {
			log.Fatal(err)
		}
		for _, def := range lib.ResidueDefinitions() {
			if def.Patch || (len(wanted) > 0 && !wanted[def.Name]) {
				continue
			}
			elems, err := rtf.TopoElementsFor(def)
			if err != nil {
				log.Fatal(err)
			}
			if err := params.Apply(elems); err != nil {
				log.Fatal(err)
			}
			totalMissing += report(def.Name, elems, *verbose)
			if err := params.FillIC(def, m.Preserve); err != nil {
				log.Fatal(err)
			}
		}
		fmt.Printf("%s: %d residue definitions, internal coordinates filled\n",
			topfile, len(lib.ResidueDefinitions()))
	}
	if totalMissing > 0 {
		fmt.Printf("%d topology elements without parameters\n", totalMissing)
		os.Exit(1)
	}
}

//prints the missing-parameter summary for one residue and returns the
//number of misses.
func report(resname string, elems *crimm.TopoElements, verbose bool) int {
	var n int
	for category, missed := range elems.Missing {
		n += len(missed)
		fmt.Printf("%s: %d %s without parameters\n", resname, len(missed), category)
		if !verbose {
			continue
		}
		for _, e := range missed {
			fmt.Printf("  %s %v\n", category, e.AtomTypes())
		}
	}
	return n
}
