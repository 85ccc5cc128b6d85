// Package mixing pairs V0 candidates with event planes, within one
// collision or across similar collisions, and writes the decay-angle
// observables to a sink.
package mixing

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/binning"
	"github.com/decibelcooper/lambdapol/calib"
	"github.com/decibelcooper/lambdapol/config"
	"github.com/decibelcooper/lambdapol/kine"
	"github.com/decibelcooper/lambdapol/selection"
	"github.com/decibelcooper/lambdapol/sink"
)

// Stats counts what an Engine did with its input. Skips are data-driven
// and never errors.
type Stats struct {
	Events       int // events offered
	GateRejected int // events failing the quality gate
	NoBin        int // events outside the mixing bins

	EventPairs    int // event pairs formed
	PairsRejected int // event pairs with a gated event

	Candidates   int // candidates filled
	Ambiguous    int // candidates dropped by the daughter-swap rule
	Unmatched    int // partner candidates without a kinematic match
	DedupSkipped int // candidate pairs already emitted for a partner
	Fills        int // per-candidate observable fills
}

func (s Stats) String() string {
	return fmt.Sprintf("events=%d gated=%d nobin=%d pairs=%d pairs-gated=%d candidates=%d ambiguous=%d unmatched=%d dedup=%d fills=%d",
		s.Events, s.GateRejected, s.NoBin, s.EventPairs, s.PairsRejected,
		s.Candidates, s.Ambiguous, s.Unmatched, s.DedupSkipped, s.Fills)
}

// Engine runs the processing modes over events. It is not safe for
// concurrent use.
type Engine struct {
	cfg   *config.Config
	index binning.Index
	out   sink.Sink
	angle distuv.Uniform
	acc   *calib.Cache

	Stats Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom draws the randomised angles from src instead of a source
// seeded from the configuration.
func WithRandom(src rand.Source) Option {
	return func(e *Engine) { e.angle.Src = src }
}

// WithAcceptance weights the same-event polarisation with the per-run
// acceptance maps of c. It is required when analysis.useAccCorr is set.
func WithAcceptance(c *calib.Cache) Option {
	return func(e *Engine) { e.acc = c }
}

// NewEngine returns an engine writing to out. cfg must be valid.
func NewEngine(cfg *config.Config, out sink.Sink, opts ...Option) (*Engine, error) {
	idx, err := cfg.Index()
	if err != nil {
		return nil, fmt.Errorf("mixing: %w", err)
	}
	seed := cfg.Random.Seed
	e := &Engine{
		cfg:   cfg,
		index: idx,
		out:   out,
		angle: distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: rand.NewPCG(seed, ^seed)},
	}
	for _, opt := range opts {
		opt(e)
	}
	if cfg.Analysis.UseAccCorr && e.acc == nil {
		return nil, fmt.Errorf("mixing: acceptance correction enabled without an acceptance cache")
	}
	return e, nil
}

// binOf returns the mixing bin of ev.
func (e *Engine) binOf(ev *aod.Event) binning.Bin {
	return e.index.BinOf(ev.PosZ, ev.CentFT0C)
}

// accept applies the event gate and counts rejections.
func (e *Engine) accept(ev *aod.Event) bool {
	if !e.cfg.Event.Accept(ev) {
		e.Stats.GateRejected++
		return false
	}
	return true
}

// mixedAngles returns the event plane of ev as used by the mixed modes,
// always from the rebuilt Q-vectors.
func (e *Engine) mixedAngles(ev *aod.Event) kine.Angles {
	return kine.EventPlane(ev, true)
}

// fillEvent writes the event-level observables.
func (e *Engine) fillEvent(cent float64, ang kine.Angles) {
	cos, sin := ang.Resolution()
	e.out.Record(HCentrality, cent)
	e.out.Record(HRes, cent, cos)
	e.out.Record(HResSin, cent, sin)
}

// lambdaTags selects v as a Lambda-family candidate of ev. The
// topology is evaluated against ev's vertex.
func (e *Engine) lambdaTags(ev *aod.Event, v *aod.V0) (selection.Tags, bool) {
	tags := e.cfg.Daughter.Tag(v)
	if !tags.AnyLambda() || !e.cfg.V0.PassesTopology(ev, v) {
		return tags, false
	}
	if selection.ShouldReject(tags.Lambda, tags.AntiLambda, v.MLambda(), v.MAntiLambda()) {
		e.Stats.Ambiguous++
		return tags, false
	}
	return tags, selection.PassesEta(v.Eta())
}

// hypotheses returns the Lambda-family hypotheses tagged in t.
func hypotheses(t selection.Tags) []aod.Hypothesis {
	var hs []aod.Hypothesis
	if t.Lambda {
		hs = append(hs, aod.Lambda)
	}
	if t.AntiLambda {
		hs = append(hs, aod.AntiLambda)
	}
	return hs
}

// kinematics are the coordinates shared by every observable of one fill.
type kinematics struct {
	mass, pt, cent float64
	// Values of the optional last axis, one fill each. Empty when the
	// observables have no last axis.
	last []float64
	acc  float64
}

// fill computes the observables of (parent, daughter) against ang and
// writes them under h.
func (e *Engine) fill(h aod.Hypothesis, parent, daughter fmom.P4, ang kine.Angles, k kinematics) {
	var rnd kine.Source
	if e.cfg.Random.Phi {
		rnd = &e.angle
	}
	obs := kine.Compute(parent, daughter, ang, rnd)
	if k.acc == 0 {
		k.acc = 1
	}

	write := func(last []float64) {
		for _, o := range observables {
			if o.subDet && !e.cfg.Analysis.UseSubDet {
				continue
			}
			coords := append([]float64{k.mass, k.pt, o.value(&obs, ang, k.acc), k.cent}, last...)
			e.out.Record(SparseName(h, o.suffix), coords...)
		}
		e.Stats.Fills++
	}
	if !extraAxis(e.cfg) {
		write(nil)
	} else {
		for _, x := range k.last {
			write([]float64{x})
		}
	}
	e.Stats.Candidates++
}

// lastAxis returns the values of the optional last axis for v: its eta,
// or the satisfied systematic thresholds.
func (e *Engine) lastAxis(ev *aod.Event, v *aod.V0) []float64 {
	if e.cfg.Analysis.DoSystematic {
		return selection.SystematicBins(selection.Variation(e.cfg.Analysis.Sys), ev, v)
	}
	return []float64{v.Eta()}
}
