// Package lambdapol holds the command-line and plotting helpers shared by
// the polarisation commands.
package lambdapol

import (
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

var lineColors = []color.Color{
	color.RGBA{A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{R: 255, B: 127, G: 127, A: 255},
}

// Overlay draws hists as outlined histograms on one plot, labelled in
// the legend by their "name" annotation. A single histogram gets its
// summary statistics drawn.
func Overlay(title, xLabel string, hists ...*hbook.H1D) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	for i, hist := range hists {
		h := hplot.NewH1D(hist)
		h.FillColor = nil
		h.LineStyle.Color = lineColors[i%len(lineColors)]
		h.Infos.Style = hplot.HInfoNone
		if len(hists) == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}

		p.Add(h)
		if name, ok := hist.Annotation()["name"].(string); ok {
			p.Legend.Add(name, h)
		}
	}
	return p
}

// SavePlot writes p to output, 6x4 inches. The format follows the file
// extension.
func SavePlot(p *hplot.Plot, output string) error {
	return hplot.Save(p, 6*vg.Inch, 4*vg.Inch, output)
}
