package main

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// EffGrid accumulates a selection efficiency in (eta, pT) cells. It
// satisfies plotter.GridXYZ.
type EffGrid struct {
	hGen, hSel     *hbook.H2D
	nBinsX, nBinsY int
}

func NewEffGrid(nBinsX int, xLow, xHigh float64, nBinsY int, yLow, yHigh float64) *EffGrid {
	return &EffGrid{
		hGen:   hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		hSel:   hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		nBinsX: nBinsX,
		nBinsY: nBinsY,
	}
}

// Fill counts one generated candidate at (x, y).
func (g *EffGrid) Fill(x, y float64, selected bool) {
	g.hGen.Fill(x, y, 1)
	if selected {
		g.hSel.Fill(x, y, 1)
	}
}

func (g *EffGrid) Dims() (int, int) {
	return g.nBinsX, g.nBinsY
}

// Z is the selected fraction of cell (i, j), 0 for an empty cell.
func (g *EffGrid) Z(i, j int) float64 {
	n := g.hGen.GridXYZ().Z(i, j)
	if n == 0 {
		return 0
	}
	return g.hSel.GridXYZ().Z(i, j) / n
}

// Err is the binomial uncertainty of Z(i, j).
func (g *EffGrid) Err(i, j int) float64 {
	n := g.hGen.GridXYZ().Z(i, j)
	if n == 0 {
		return 0
	}
	eff := g.Z(i, j)
	return math.Sqrt(eff * (1 - eff) / n)
}

func (g *EffGrid) X(i int) float64 {
	return g.hGen.GridXYZ().X(i)
}

func (g *EffGrid) Y(j int) float64 {
	return g.hGen.GridXYZ().Y(j)
}

// Map returns the efficiency as a histogram with the grid's binning, the
// form read back by the acceptance correction. Empty cells stay empty.
func (g *EffGrid) Map() *hbook.H2D {
	h := hbook.NewH2D(g.nBinsX, g.hGen.XMin(), g.hGen.XMax(), g.nBinsY, g.hGen.YMin(), g.hGen.YMax())
	for i := 0; i < g.nBinsX; i++ {
		for j := 0; j < g.nBinsY; j++ {
			if z := g.Z(i, j); z > 0 {
				h.Fill(g.X(i), g.Y(j), z)
			}
		}
	}
	return h
}

// Projection returns the efficiency against x, integrated over y, with
// its binomial uncertainty.
func (g *EffGrid) Projection() (x, eff, err []float64) {
	for i := 0; i < g.nBinsX; i++ {
		var gen, sel float64
		for j := 0; j < g.nBinsY; j++ {
			gen += g.hGen.GridXYZ().Z(i, j)
			sel += g.hSel.GridXYZ().Z(i, j)
		}
		x = append(x, g.X(i))
		if gen == 0 {
			eff = append(eff, 0)
			err = append(err, 0)
			continue
		}
		e := sel / gen
		eff = append(eff, e)
		err = append(err, math.Sqrt(e*(1-e)/gen))
	}
	return x, eff, err
}
