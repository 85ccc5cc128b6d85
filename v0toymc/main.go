package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/toymc"
)

var (
	nEvents = flag.Int("n", 1000, "number of events")
	nV0s    = flag.Int("v0s", 8, "V0 candidates per event")
	seed    = flag.Uint64("seed", 1, "random seed")
	pol     = flag.Float64("pol", 0, "amplitude of the injected sin(phi* - psi) modulation")
	k0s     = flag.Float64("k0s", 0, "fraction of K0s candidates")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <output.root>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 || *nEvents < 1 || *nV0s < 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *pol < -1 || *pol > 1 || *k0s < 0 || *k0s > 1 {
		log.Fatal("-pol must be in [-1, 1] and -k0s in [0, 1]")
	}

	g := toymc.NewGenerator(*seed, *nV0s, *pol)
	g.K0sFraction = *k0s
	events := g.Events(*nEvents)

	if err := aod.WriteFile(flag.Arg(0), events); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d events to %s", len(events), flag.Arg(0))
}
