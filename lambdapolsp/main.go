package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/lambdapol"
	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/calib"
	"github.com/decibelcooper/lambdapol/config"
	"github.com/decibelcooper/lambdapol/mixing"
	"github.com/decibelcooper/lambdapol/sink"
)

var (
	configFile = flag.String("config", "", "YAML configuration file")
	modeName   = flag.String("mode", "same", "processing mode: same, binned, matched or fifo")
	nMix       = flag.Int("nmix", 0, "mixing depth, overrides the configuration")
	accDir     = flag.String("acc", "", "directory of acceptance maps, enables the acceptance correction")
	seed       = flag.Uint64("seed", 0, "seed of the angle randomisation, overrides the configuration")
	output     = flag.String("output", "out.yoda", "output YODA file")
	sparseOut  = flag.String("sparse", "out.root", "output ROOT file of the sparse histogram bins, empty to skip")
	plotOut    = flag.String("plot", "", "output plot of the polarisation projections")
	title      = flag.String("title", "", "plot title")
	doProfile  = flag.Bool("profile", false, "write a CPU profile")

	vtxEdges  lambdapol.FloatArrayFlags
	centEdges lambdapol.FloatArrayFlags
)

func init() {
	flag.Var(&vtxEdges, "vtxedge", "mixing vertex bin edge (repeatable)")
	flag.Var(&centEdges, "centedge", "mixing centrality bin edge (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *doProfile {
		defer profile.Start().Stop()
	}

	mode, err := mixing.ParseMode(*modeName)
	if err != nil {
		log.Fatal(err)
	}
	cfg := loadConfig()

	var opts []mixing.Option
	if cfg.Analysis.UseAccCorr {
		provider := calib.DirProvider{Root: *accDir}
		opts = append(opts, mixing.WithAcceptance(calib.NewCache(provider, cfg.Analysis.AccPathL, cfg.Analysis.AccPathAL)))
	}

	reg := sink.NewRegistry()
	if err := mixing.Book(reg, cfg); err != nil {
		log.Fatal(err)
	}
	engine, err := mixing.NewEngine(cfg, reg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	var events []aod.Event
	for _, filename := range flag.Args() {
		evs, err := aod.ReadFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		events = append(events, evs...)
	}
	log.Printf("read %d events from %d files", len(events), flag.NArg())

	if err := engine.Run(mode, events); err != nil {
		log.Fatal(err)
	}
	log.Printf("%v: %v", mode, engine.Stats)
	for _, line := range reg.Summary() {
		log.Print(line)
	}

	if err := writeYODA(reg, *output); err != nil {
		log.Fatal(err)
	}
	if *sparseOut != "" {
		if err := reg.WriteROOT(*sparseOut); err != nil {
			log.Fatal(err)
		}
	}
	if *plotOut != "" {
		if err := plotPol(reg, *plotOut); err != nil {
			log.Fatal(err)
		}
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *nMix > 0 {
		cfg.Mixing.NMix = *nMix
	}
	if *seed != 0 {
		cfg.Random.Seed = *seed
	}
	if *accDir != "" {
		cfg.Analysis.UseAccCorr = true
	}
	if err := vtxEdges.Override(&cfg.Mixing.Vertex); err != nil {
		log.Fatalf("-vtxedge: %v", err)
	}
	if err := centEdges.Override(&cfg.Mixing.Centrality); err != nil {
		log.Fatalf("-centedge: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.Analysis.UseAccCorr && *accDir == "" {
		log.Fatal("analysis.useAccCorr needs -acc")
	}
	return cfg
}

func writeYODA(reg *sink.Registry, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := reg.WriteYODA(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// plotPol overlays the polarisation projections of the filled species.
func plotPol(reg *sink.Registry, filename string) error {
	var hists []*hbook.H1D
	for _, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda, aod.K0Short} {
		name := mixing.SparseName(h, "Pol")
		if !reg.Booked(name) {
			continue
		}
		proj := reg.Sparse(name).ProjectLabel("value")
		proj.Annotation()["name"] = h.String()
		hists = append(hists, proj)
	}

	p := lambdapol.Overlay(*title, "sin(phi* - psi)", hists...)
	return lambdapol.SavePlot(p, filename)
}
