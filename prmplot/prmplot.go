/*
Package prmplot renders potential-energy profiles for resolved
force-field parameter records, as png files.
*/
package prmplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/stanislc/crimm/prm"
)

func basicPlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "E (kcal/mol)"
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, pts plotter.XYs, filename string) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(l)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}

// DihedralProfile plots the torsion energy of a dihedral record, all
// periodicity terms summed, over the full -180..180 range. The png
// extension must be included in filename.
func DihedralProfile(d *prm.DihedralParam, title, filename string) error {
	if d == nil || len(d.Terms) == 0 {
		return fmt.Errorf("prmplot: given an empty dihedral record")
	}
	p := basicPlot(title, "Phi (degrees)")
	p.X.Min = -180
	p.X.Max = 180
	pts := make(plotter.XYs, 0, 361)
	for phi := -180.0; phi <= 180.0; phi++ {
		pts = append(pts, plotter.XY{X: phi, Y: d.Energy(phi)})
	}
	return save(p, pts, filename)
}

// AngleProfile plots the harmonic well of an angle record over
// theta0 +/- width degrees.
func AngleProfile(a *prm.AngleParam, width float64, title, filename string) error {
	if a == nil {
		return fmt.Errorf("prmplot: given a nil angle record")
	}
	p := basicPlot(title, "Theta (degrees)")
	pts := make(plotter.XYs, 0, 201)
	step := width / 100
	for theta := a.Theta0 - width; theta <= a.Theta0+width; theta += step {
		pts = append(pts, plotter.XY{X: theta, Y: a.Energy(theta)})
	}
	return save(p, pts, filename)
}

// BondProfile plots the harmonic well of a bond record over
// b0 +/- width angstroms.
func BondProfile(b *prm.BondParam, width float64, title, filename string) error {
	if b == nil {
		return fmt.Errorf("prmplot: given a nil bond record")
	}
	p := basicPlot(title, "r (A)")
	pts := make(plotter.XYs, 0, 201)
	step := width / 100
	for r := b.B0 - width; r <= b.B0+width; r += step {
		pts = append(pts, plotter.XY{X: r, Y: b.Energy(r)})
	}
	return save(p, pts, filename)
}
