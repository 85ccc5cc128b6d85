package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/lambdapol"
	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/config"
	"github.com/decibelcooper/lambdapol/selection"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

Plots the invariant mass of the selected V0 candidates, one histogram
per input file.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file")
		hypName    = flag.String("hyp", "Lambda", "mass hypothesis: Lambda, AntiLambda or K0s")
		title      = flag.String("title", "", "plot title")
		output     = flag.String("output", "out.png", "output file")
	)
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	h, err := parseHypothesis(*hypName)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	var hists []*hbook.H1D
	for _, filename := range flag.Args() {
		events, err := aod.ReadFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		hist := makeInvMassHist(cfg, h, events)
		hist.Annotation()["name"] = filename
		hists = append(hists, hist)
	}

	p := lambdapol.Overlay(*title, "Mass (GeV)", hists...)
	if err := lambdapol.SavePlot(p, *output); err != nil {
		log.Fatal(err)
	}
}

func parseHypothesis(s string) (aod.Hypothesis, error) {
	for _, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda, aod.K0Short} {
		if h.String() == s {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown hypothesis %q", s)
}

// makeInvMassHist histograms the mass under h of every candidate of the
// accepted events passing the selection for h.
func makeInvMassHist(cfg *config.Config, h aod.Hypothesis, events []aod.Event) *hbook.H1D {
	spec := cfg.Analysis.Axes.Mass
	if h == aod.K0Short {
		spec = cfg.Analysis.Axes.MassK0s
	}
	ax := spec.MustAxis()
	invMassHist := hbook.NewH1D(50, ax.Min(), ax.Max())

	for i := range events {
		ev := &events[i]
		if !cfg.Event.Accept(ev) {
			continue
		}
		for j := range ev.V0s {
			v := &ev.V0s[j]
			if !selected(cfg, ev, v, h) {
				continue
			}
			invMassHist.Fill(h.Mass(v), 1)
		}
	}
	return invMassHist
}

func selected(cfg *config.Config, ev *aod.Event, v *aod.V0, h aod.Hypothesis) bool {
	if !cfg.V0.PassesTopology(ev, v) || !selection.PassesEta(v.Eta()) {
		return false
	}
	if h == aod.K0Short {
		return cfg.Daughter.CompatibleK0s(v)
	}
	tags := cfg.Daughter.Tag(v)
	if h == aod.Lambda && !tags.Lambda || h == aod.AntiLambda && !tags.AntiLambda {
		return false
	}
	return !selection.ShouldReject(tags.Lambda, tags.AntiLambda, v.MLambda(), v.MAntiLambda())
}
