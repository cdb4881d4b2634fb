package prm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Returns a string without CHARMM comments (sequences starting with '!'),
//trailing and leading spaces, tabs and newlines.
func cleanLine(s string) string {
	f := strings.Split(s, "!")[0]
	return strings.Trim(f, "\n\t ")
}

func parseFloats(fields ...string) ([]float64, error) {
	ret := make([]float64, len(fields))
	for i, v := range fields {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		ret[i] = f
	}
	return ret, nil
}

//section names, internal to the reader.
const (
	secNone = iota
	secAtoms
	secBonds
	secAngles
	secDihedrals
	secImpropers
	secCMap
	secNonbonded
	secNBFix
	secIgnored //HBOND and other sections with nothing we keep
)

//sectionFor matches a line's first token against the CHARMM section
//keywords. CHARMM only considers the first four characters of a keyword,
//so "ANGLE" and "ANGLES" are the same section.
func sectionFor(token string) (int, bool) {
	t := strings.ToUpper(token)
	if len(t) > 4 {
		t = t[:4]
	}
	switch t {
	case "ATOM":
		return secAtoms, true
	case "BOND":
		return secBonds, true
	case "ANGL", "THET":
		return secAngles, true
	case "DIHE", "PHI":
		return secDihedrals, true
	case "IMPR", "IMPH":
		return secImpropers, true
	case "CMAP":
		return secCMap, true
	case "NONB", "NBON":
		return secNonbonded, true
	case "NBFI":
		return secNBFix, true
	case "HBON", "THOL", "CUTN":
		return secIgnored, true
	case "END", "RETU":
		return secNone, true
	}
	return secNone, false
}

//state for an in-progress CMAP grid.
type cmapReader struct {
	param  *CMapParam
	values []float64
}

func (c *cmapReader) want() int {
	return c.param.Resolution*c.param.Resolution - len(c.values)
}

// Read parses the named CHARMM parameter file (prm or str, possibly
// compressed, see OpenFile) into a fresh Table.
func Read(path string) (*Table, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	defer f.Close()
	t, err := ReadFrom(f)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = path
			return nil, errDecorate(e, "Read")
		}
		return nil, err
	}
	return t, nil
}

// ReadFrom parses CHARMM parameter text into a fresh Table. Comments,
// title lines and the sections carrying nothing this library keeps
// (HBOND) are skipped. Angle records with the optional Urey-Bradley
// columns also populate the urey_bradley category, and NONBONDED records
// with the optional 1-4 columns also populate the nonbonded14 category.
func ReadFrom(r io.Reader) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	section := secNone
	continued := false //the previous line ended in '-'
	var cmap *cmapReader
	var nline int
	for scanner.Scan() {
		nline++
		raw := scanner.Text()
		if strings.HasPrefix(raw, "*") {
			continue //title line
		}
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		if continued {
			//still inside a wrapped section header (NONBONDED options)
			continued = strings.HasSuffix(line, "-")
			continue
		}
		fields := strings.Fields(line)
		if sec, ok := sectionFor(fields[0]); ok && !numeric(fields[0]) {
			if cmap != nil && cmap.want() > 0 {
				return nil, Error{message: fmt.Sprintf("incomplete CMAP grid for %v", cmap.param.Types), line: nline}
			}
			cmap = nil
			section = sec
			continued = strings.HasSuffix(line, "-")
			continue
		}
		if strings.EqualFold(fields[0], "MASS") {
			if err := t.parseMass(fields); err != nil {
				return nil, Error{message: err.Error(), line: nline}
			}
			continue
		}
		var err error
		switch section {
		case secBonds:
			err = t.parseBond(fields)
		case secAngles:
			err = t.parseAngle(fields)
		case secDihedrals:
			err = t.parseDihedral(fields)
		case secImpropers:
			err = t.parseImproper(fields)
		case secCMap:
			cmap, err = t.parseCMap(cmap, fields)
		case secNonbonded:
			err = t.parseNonbonded(fields)
		case secNBFix:
			err = t.parseNBFix(fields)
		case secAtoms, secIgnored, secNone:
			//nothing to keep
		}
		if err != nil {
			return nil, Error{message: err.Error(), line: nline}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{message: err.Error(), deco: []string{"ReadFrom"}}
	}
	if cmap != nil && cmap.want() > 0 {
		return nil, Error{message: fmt.Sprintf("incomplete CMAP grid for %v", cmap.param.Types)}
	}
	return t, nil
}

func numeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func (t *Table) parseMass(fields []string) error {
	//MASS index type mass [element]
	if len(fields) < 4 {
		return fmt.Errorf("malformed MASS record: %v", fields)
	}
	m, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return fmt.Errorf("malformed MASS record: %v", fields)
	}
	t.Masses[fields[2]] = m
	return nil
}

func (t *Table) parseBond(fields []string) error {
	//a1 a2 Kb b0
	if len(fields) < 4 {
		return fmt.Errorf("malformed bond record: %v", fields)
	}
	v, err := parseFloats(fields[2], fields[3])
	if err != nil {
		return fmt.Errorf("malformed bond record: %v", fields)
	}
	t.Bonds[[2]string{fields[0], fields[1]}] = &BondParam{Kb: v[0], B0: v[1]}
	return nil
}

func (t *Table) parseAngle(fields []string) error {
	//a1 a2 a3 Ktheta theta0 [Kub S0]
	if len(fields) < 5 {
		return fmt.Errorf("malformed angle record: %v", fields)
	}
	key := [3]string{fields[0], fields[1], fields[2]}
	v, err := parseFloats(fields[3], fields[4])
	if err != nil {
		return fmt.Errorf("malformed angle record: %v", fields)
	}
	t.Angles[key] = &AngleParam{Ktheta: v[0], Theta0: v[1]}
	if len(fields) >= 7 {
		u, err := parseFloats(fields[5], fields[6])
		if err != nil {
			return fmt.Errorf("malformed Urey-Bradley columns: %v", fields)
		}
		t.UreyBradley[key] = &UreyBradleyParam{Kub: u[0], S0: u[1]}
	}
	return nil
}

func (t *Table) parseDihedral(fields []string) error {
	//a1 a2 a3 a4 Kchi n delta
	if len(fields) < 7 {
		return fmt.Errorf("malformed dihedral record: %v", fields)
	}
	key := [4]string{fields[0], fields[1], fields[2], fields[3]}
	kchi, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return fmt.Errorf("malformed dihedral record: %v", fields)
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil {
		return fmt.Errorf("malformed dihedral record: %v", fields)
	}
	delta, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return fmt.Errorf("malformed dihedral record: %v", fields)
	}
	term := DihedralTerm{Kchi: kchi, N: n, Delta: delta}
	//multiplicity terms share a key over consecutive lines; they all go
	//into one record, whichever orientation the file used first.
	if p := t.dihedralExact(key); p != nil {
		p.Terms = append(p.Terms, term)
		return nil
	}
	t.Dihedrals[key] = &DihedralParam{Terms: []DihedralTerm{term}}
	return nil
}

func (t *Table) parseImproper(fields []string) error {
	//a1 a2 a3 a4 Kpsi ignored psi0
	if len(fields) < 7 {
		return fmt.Errorf("malformed improper record: %v", fields)
	}
	v, err := parseFloats(fields[4], fields[6])
	if err != nil {
		return fmt.Errorf("malformed improper record: %v", fields)
	}
	key := [4]string{fields[0], fields[1], fields[2], fields[3]}
	t.Impropers[key] = &ImproperParam{Kpsi: v[0], Psi0: v[1]}
	return nil
}

func (t *Table) parseCMap(cmap *cmapReader, fields []string) (*cmapReader, error) {
	if cmap == nil || cmap.want() == 0 {
		//header: 8 atom types and the grid resolution
		if len(fields) != 9 {
			return nil, fmt.Errorf("malformed CMAP header: %v", fields)
		}
		res, err := strconv.Atoi(fields[8])
		if err != nil || res <= 0 {
			return nil, fmt.Errorf("malformed CMAP resolution: %v", fields)
		}
		p := &CMapParam{Resolution: res}
		copy(p.Types[:], fields[:8])
		t.CMaps[p.Types] = p
		return &cmapReader{param: p, values: make([]float64, 0, res*res)}, nil
	}
	v, err := parseFloats(fields...)
	if err != nil {
		return nil, fmt.Errorf("malformed CMAP grid line: %v", fields)
	}
	if len(v) > cmap.want() {
		return nil, fmt.Errorf("CMAP grid for %v has too many values", cmap.param.Types)
	}
	cmap.values = append(cmap.values, v...)
	if cmap.want() == 0 {
		res := cmap.param.Resolution
		cmap.param.Grid = mat.NewDense(res, res, cmap.values)
	}
	return cmap, nil
}

func (t *Table) parseNonbonded(fields []string) error {
	//type ignored epsilon Rmin/2 [ignored eps(1-4) Rmin/2(1-4)]
	//option lines of the NONBONDED header that wrapped without a
	//continuation dash are skipped by the same test that rejects them as
	//records: a second column that doesn't parse as a number.
	if len(fields) < 4 || !numeric(fields[1]) {
		return nil
	}
	v, err := parseFloats(fields[2], fields[3])
	if err != nil {
		return nil
	}
	t.Nonbonded[fields[0]] = &NonbondedParam{Epsilon: v[0], Rmin2: v[1]}
	if len(fields) >= 7 {
		v14, err := parseFloats(fields[5], fields[6])
		if err != nil {
			return fmt.Errorf("malformed 1-4 columns: %v", fields)
		}
		t.Nonbonded14[fields[0]] = &NonbondedParam{Epsilon: v14[0], Rmin2: v14[1]}
	}
	return nil
}

func (t *Table) parseNBFix(fields []string) error {
	//a1 a2 Emin Rmin
	if len(fields) < 4 {
		return fmt.Errorf("malformed NBFIX record: %v", fields)
	}
	v, err := parseFloats(fields[2], fields[3])
	if err != nil {
		return fmt.Errorf("malformed NBFIX record: %v", fields)
	}
	t.NBFix[[2]string{fields[0], fields[1]}] = &NBFixParam{Emin: v[0], Rmin: v[1]}
	return nil
}
