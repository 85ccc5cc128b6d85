package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/lambdapol"
	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/calib"
	"github.com/decibelcooper/lambdapol/config"
	"github.com/decibelcooper/lambdapol/selection"
	"github.com/decibelcooper/lambdapol/toymc"
)

var (
	configFile = flag.String("config", "", "YAML configuration file")
	nCands     = flag.Int("n", 200000, "number of generated candidates")
	seed       = flag.Uint64("seed", 1, "random seed")
	pTMin      = flag.Float64("minpt", 0, "minimum transverse momentum")
	pTMax      = flag.Float64("maxpt", 5, "maximum transverse momentum")
	etaLimit   = flag.Float64("etalimit", 0.8, "maximum absolute value of eta")
	nBinsPT    = flag.Int("nbinspt", 10, "number of bins in transverse momentum")
	nBinsEta   = flag.Int("nbinseta", 8, "number of bins in eta")
	validFrom  = flag.Int64("validfrom", 0, "first timestamp the maps are valid for")
	accDir     = flag.String("acc", "", "directory to store the maps in")
	pathL      = flag.String("pathl", "acc/Lambda", "map path of the Lambda acceptance")
	pathAL     = flag.String("pathal", "acc/AntiLambda", "map path of the AntiLambda acceptance")
	title      = flag.String("title", "", "plot title")
	prefix     = flag.String("prefix", "acc", "output plot prefix")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

Estimates the Lambda and AntiLambda selection efficiency in (eta, pT)
from generated decays, plots it and optionally stores it as acceptance
maps.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 || *nCands < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	grids := map[aod.Hypothesis]*EffGrid{
		aod.Lambda:     NewEffGrid(*nBinsEta, -*etaLimit, *etaLimit, *nBinsPT, *pTMin, *pTMax),
		aod.AntiLambda: NewEffGrid(*nBinsEta, -*etaLimit, *etaLimit, *nBinsPT, *pTMin, *pTMax),
	}

	g := toymc.NewGenerator(*seed, 1, 0)
	ev := &aod.Event{}
	for i := 0; i < *nCands; i++ {
		c := g.Candidate(0)
		grid, ok := grids[c.Hypothesis]
		if !ok {
			continue
		}
		v := c.V0(i, 0, ev.Vertex())
		grid.Fill(c.Eta, c.Pt, selected(cfg, ev, &v, c.Hypothesis))
	}

	paths := map[aod.Hypothesis]string{
		aod.Lambda:     *pathL,
		aod.AntiLambda: *pathAL,
	}
	for _, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda} {
		grid := grids[h]
		if err := plotMap(grid, fmt.Sprintf("%s_%s.png", *prefix, h)); err != nil {
			log.Fatal(err)
		}
		if *accDir == "" {
			continue
		}
		store := calib.DirProvider{Root: *accDir}
		if err := store.Store(paths[h], *validFrom, grid.Map()); err != nil {
			log.Fatal(err)
		}
		log.Printf("stored %v map under %s", h, paths[h])
	}

	if err := plotEta(grids, *prefix+"_eta.png"); err != nil {
		log.Fatal(err)
	}
}

// selected applies the candidate selection of the polarisation analysis
// to v generated as h.
func selected(cfg *config.Config, ev *aod.Event, v *aod.V0, h aod.Hypothesis) bool {
	tags := cfg.Daughter.Tag(v)
	if h == aod.Lambda && !tags.Lambda || h == aod.AntiLambda && !tags.AntiLambda {
		return false
	}
	if !cfg.V0.PassesTopology(ev, v) {
		return false
	}
	if selection.ShouldReject(tags.Lambda, tags.AntiLambda, v.MLambda(), v.MAntiLambda()) {
		return false
	}
	return selection.PassesEta(v.Eta())
}

func plotMap(grid *EffGrid, output string) error {
	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "eta"
	p.Y.Label.Text = "p_T"
	p.X.Tick.Marker = lambdapol.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = lambdapol.PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(1)
	heatMap := plotter.NewHeatMap(grid, colorMap.Palette(1000))
	heatMap.Min = 0
	heatMap.Max = 1
	p.Add(heatMap)

	p.Draw(dc0)

	p = plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(output)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// plotEta draws the efficiency against eta, integrated over pT.
func plotEta(grids map[aod.Hypothesis]*EffGrid, output string) error {
	p := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "eta"
	p.Y.Label.Text = "efficiency"
	p.X.Tick.Marker = lambdapol.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = lambdapol.PreciseTicks{NSuggestedTicks: 5}

	binHalfWidth := *etaLimit / float64(*nBinsEta)
	for i, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda} {
		x, eff, effErr := grids[h].Projection()
		points := make(plotter.XYs, len(x))
		xErrors := make(plotter.XErrors, len(x))
		yErrors := make(plotter.YErrors, len(x))
		for j := range points {
			points[j].X, points[j].Y = x[j], eff[j]
			xErrors[j].Low, xErrors[j].High = binHalfWidth, binHalfWidth
			yErrors[j].Low, yErrors[j].High = effErr[j], effErr[j]
		}
		errPoints := plotutil.ErrorPoints{XYs: points, XErrors: xErrors, YErrors: yErrors}
		xerr, err := plotter.NewXErrorBars(errPoints)
		if err != nil {
			return err
		}
		yerr, err := plotter.NewYErrorBars(errPoints)
		if err != nil {
			return err
		}

		pointColor := color.RGBA{A: 255}
		if i == 1 {
			pointColor = color.RGBA{G: 255, A: 255}
		}
		xerr.LineStyle.Color = pointColor
		yerr.LineStyle.Color = pointColor
		p.Add(xerr, yerr)
		p.Legend.Add(h.String(), yerr)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, output)
}
