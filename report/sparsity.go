// Package report renders optional diagnostic plots for a presolve run. It
// is kept separate from the engine package so that the plotting stack never
// sits on the orchestrator's hot path: nothing in presolve.go imports this
// package.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Matrix is the minimal read surface report needs from a presolve matrix,
// satisfied by *presolve.PresolveMatrix without this package importing it
// (which would pull the plotting stack back toward the engine's own
// dependency graph).
type Matrix interface {
	Dims() (rows, cols int)
	Column(j int) (rows []int, vals []float64)
}

// SparsityPlot renders the non-zero pattern of before and after as two
// scatter series overlaid in one plot under a common title, one point per
// stored matrix entry at (column, row). Row 0 is drawn at the top, matching the
// usual sparsity-plot convention.
func SparsityPlot(before, after Matrix) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "presolve sparsity pattern"
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	beforePts := sparsityPoints(before)
	afterPts := sparsityPoints(after)

	beforeScatter, err := plotter.NewScatter(beforePts)
	if err != nil {
		return nil, fmt.Errorf("report: before scatter: %w", err)
	}
	beforeScatter.GlyphStyle.Radius = vg.Length(1.5)
	beforeScatter.GlyphStyle.Color = color.RGBA{R: 140, G: 140, B: 140, A: 255}

	afterScatter, err := plotter.NewScatter(afterPts)
	if err != nil {
		return nil, fmt.Errorf("report: after scatter: %w", err)
	}
	afterScatter.GlyphStyle.Radius = vg.Length(2.5)
	afterScatter.GlyphStyle.Color = color.RGBA{R: 180, G: 30, B: 30, A: 255}

	p.Add(beforeScatter, afterScatter)
	p.Legend.Add("before", beforeScatter)
	p.Legend.Add("after", afterScatter)

	return p, nil
}

// sparsityPoints collects one (column, -row) point per stored entry; row is
// negated so the plot reads top-to-bottom like a printed matrix.
func sparsityPoints(m Matrix) plotter.XYs {
	_, cols := m.Dims()
	var pts plotter.XYs
	for j := 0; j < cols; j++ {
		rows, _ := m.Column(j)
		for _, i := range rows {
			pts = append(pts, plotter.XY{X: float64(j), Y: -float64(i)})
		}
	}
	return pts
}

// Save renders p to path at the given physical size in centimeters.
func Save(p *plot.Plot, widthCM, heightCM float64, path string) error {
	return p.Save(vg.Length(widthCM)*vg.Centimeter, vg.Length(heightCM)*vg.Centimeter, path)
}
