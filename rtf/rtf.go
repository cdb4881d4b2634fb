/*
Package rtf reads CHARMM residue topology (rtf) files into residue
definitions: the atoms of each residue with their force-field types and
charges, the bonded structure, and the internal-coordinate table used to
build coordinates for atoms the experiment didn't resolve.
*/
package rtf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	crimm "github.com/stanislc/crimm"
	"github.com/stanislc/crimm/prm"
)

// Library is the contents of one or more residue topology files.
type Library struct {
	Version  string
	First    string //default N-terminal patch
	Last     string //default C-terminal patch
	Masses   map[string]float64
	Residues []*crimm.ResidueDefinition
	byName   map[string]*crimm.ResidueDefinition
}

func newLibrary() *Library {
	return &Library{
		Masses: make(map[string]float64),
		byName: make(map[string]*crimm.ResidueDefinition),
	}
}

// ResidueDefinitions returns every residue and patch definition in file
// order. It makes Library a crimm.ResidueProvider.
func (L *Library) ResidueDefinitions() []*crimm.ResidueDefinition {
	return L.Residues
}

// Residue returns the definition with the given name, or nil.
func (L *Library) Residue(name string) *crimm.ResidueDefinition {
	return L.byName[name]
}

func (L *Library) add(def *crimm.ResidueDefinition) {
	L.Residues = append(L.Residues, def)
	L.byName[def.Name] = def
}

// Read parses the named topology file (possibly compressed, the
// extensions prm.OpenFile supports).
func Read(path string) (*Library, error) {
	f, err := prm.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	L, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("rtf: file %s: %w", path, err)
	}
	return L, nil
}

func cleanLine(s string) string {
	f := strings.Split(s, "!")[0]
	return strings.Trim(f, "\n\t ")
}

//the first four characters decide a CHARMM keyword.
func keyword(token string) string {
	t := strings.ToUpper(token)
	if len(t) > 4 {
		t = t[:4]
	}
	return t
}

// ReadFrom parses CHARMM residue topology text. RESI and PRES blocks
// become residue definitions; MASS and DEFA records are kept on the
// library; donor/acceptor and group records carry nothing this library
// uses and are skipped.
func ReadFrom(r io.Reader) (*Library, error) {
	L := newLibrary()
	var def *crimm.ResidueDefinition
	scanner := bufio.NewScanner(r)
	var nline int
	for scanner.Scan() {
		nline++
		raw := scanner.Text()
		if strings.HasPrefix(raw, "*") {
			continue
		}
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		var err error
		switch keyword(fields[0]) {
		case "MASS":
			err = L.parseMass(fields)
		case "DEFA":
			err = L.parseDefault(fields)
		case "RESI", "PRES":
			def, err = L.parseResidue(fields)
		case "ATOM":
			err = parseAtom(def, fields)
		case "BOND", "DOUB", "TRIP":
			err = parseBonds(def, fields)
		case "IMPR":
			err = parseImpropers(def, fields)
		case "CMAP":
			err = parseCMap(def, fields)
		case "IC", "BILD":
			err = parseIC(def, fields)
		case "END":
			def = nil
		case "GROU", "DONO", "ACCE", "DELE", "PATC", "AUTO", "DECL", "ANGL", "DIHE", "LONE":
			//nothing kept
		default:
			if def == nil && len(fields) == 2 && isInt(fields[0]) && isInt(fields[1]) {
				L.Version = line //the version line that opens rtf files
				continue
			}
			err = fmt.Errorf("unrecognized record %q", fields[0])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", nline, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return L, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func (L *Library) parseMass(fields []string) error {
	//MASS index type mass [element]
	if len(fields) < 4 {
		return fmt.Errorf("malformed MASS record: %v", fields)
	}
	m, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return fmt.Errorf("malformed MASS record: %v", fields)
	}
	L.Masses[fields[2]] = m
	return nil
}

func (L *Library) parseDefault(fields []string) error {
	//DEFA FIRS patch LAST patch
	for i := 1; i+1 < len(fields); i += 2 {
		switch keyword(fields[i]) {
		case "FIRS":
			L.First = fields[i+1]
		case "LAST":
			L.Last = fields[i+1]
		}
	}
	return nil
}

func (L *Library) parseResidue(fields []string) (*crimm.ResidueDefinition, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("malformed RESI/PRES record: %v", fields)
	}
	def := crimm.NewResidueDefinition(fields[1])
	def.Patch = keyword(fields[0]) == "PRES"
	if len(fields) > 2 {
		q, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed residue charge: %v", fields)
		}
		def.Charge = q
	}
	L.add(def)
	return def, nil
}

func parseAtom(def *crimm.ResidueDefinition, fields []string) error {
	if def == nil {
		return fmt.Errorf("ATOM record outside a residue block")
	}
	if len(fields) < 3 {
		return fmt.Errorf("malformed ATOM record: %v", fields)
	}
	at := &crimm.AtomDef{Name: fields[1], Type: fields[2]}
	if len(fields) > 3 {
		q, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("malformed atom charge: %v", fields)
		}
		at.Charge = q
	}
	def.AddAtom(at)
	return nil
}

func parseBonds(def *crimm.ResidueDefinition, fields []string) error {
	if def == nil {
		return fmt.Errorf("bond record outside a residue block")
	}
	if (len(fields)-1)%2 != 0 {
		return fmt.Errorf("odd number of atoms in bond record: %v", fields)
	}
	for i := 1; i < len(fields); i += 2 {
		def.Bonds = append(def.Bonds, [2]string{fields[i], fields[i+1]})
	}
	return nil
}

func parseImpropers(def *crimm.ResidueDefinition, fields []string) error {
	if def == nil {
		return fmt.Errorf("IMPR record outside a residue block")
	}
	if (len(fields)-1)%4 != 0 {
		return fmt.Errorf("malformed IMPR record: %v", fields)
	}
	for i := 1; i < len(fields); i += 4 {
		def.Impropers = append(def.Impropers,
			[4]string{fields[i], fields[i+1], fields[i+2], fields[i+3]})
	}
	return nil
}

func parseCMap(def *crimm.ResidueDefinition, fields []string) error {
	if def == nil {
		return fmt.Errorf("CMAP record outside a residue block")
	}
	if len(fields) != 9 {
		return fmt.Errorf("malformed CMAP record: %v", fields)
	}
	var c [8]string
	copy(c[:], fields[1:])
	def.CMaps = append(def.CMaps, c)
	return nil
}

func parseIC(def *crimm.ResidueDefinition, fields []string) error {
	if def == nil {
		return fmt.Errorf("IC record outside a residue block")
	}
	//IC a b c d R(I-J) T(I-J-K) Phi T(J-K-L) R(K-L); a * on the third
	//atom marks an improper entry, where the distance and first angle
	//refer to I-K instead of I-J.
	if len(fields) < 10 {
		return fmt.Errorf("malformed IC record: %v", fields)
	}
	improper := strings.HasPrefix(fields[3], "*")
	var key [4]string
	key[0] = fields[1]
	key[1] = fields[2]
	key[2] = strings.TrimPrefix(fields[3], "*")
	key[3] = fields[4]
	entry := crimm.NewICEntry(improper)
	names := [5]string{crimm.ICBondIJ, crimm.ICAngleIJK, crimm.ICPhi, crimm.ICAngleJKL, crimm.ICBondKL}
	if improper {
		names[0] = crimm.ICBondIK
		names[1] = crimm.ICAngleIKJ
	}
	for i, name := range names {
		v, err := strconv.ParseFloat(fields[5+i], 64)
		if err != nil {
			return fmt.Errorf("malformed IC value: %v", fields)
		}
		if v != 0 { //0.0000 is the rtf placeholder for a value to fill in
			val := v
			entry.Values[name] = &val
		}
	}
	def.IC[key] = entry
	return nil
}
