package toymc

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/kine"
)

// Generator produces synthetic collisions. The measured daughter azimuth
// of every Lambda follows 1 + Pol*sin(phi* - psi), psi being the true
// reaction plane of the event.
type Generator struct {
	V0sPerEvent int
	Pol         float64
	// Fraction of K0s among the generated candidates.
	K0sFraction float64

	vz, cent, angle, pt, eta, cosTheta, unit distuv.Uniform
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64, v0sPerEvent int, pol float64) *Generator {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	u := func(min, max float64) distuv.Uniform {
		return distuv.Uniform{Min: min, Max: max, Src: src}
	}
	return &Generator{
		V0sPerEvent: v0sPerEvent,
		Pol:         pol,
		vz:          u(-10, 10),
		cent:        u(0, 80),
		angle:       u(0, 2*math.Pi),
		pt:          u(0.8, 5),
		eta:         u(-0.6, 0.6),
		cosTheta:    u(-1, 1),
		unit:        u(0, 1),
	}
}

// Event generates the collision with the given index. The ZDC Q-vectors
// point along psi on the C side and opposite on the A side, so the
// combined event plane reproduces psi.
func (g *Generator) Event(index int) aod.Event {
	psi := g.angle.Rand()
	q := 1 + g.unit.Rand()
	ev := aod.Event{
		Index:          index,
		Run:            1,
		Timestamp:      int64(index),
		PosZ:           g.vz.Rand(),
		CentFT0C:       g.cent.Rand(),
		Sel8:           true,
		TriggerEventSP: true,
		RCTGood:        true,
		Selection: aod.NoSameBunchPileup | aod.IsGoodZvtxFT0vsPV |
			aod.NoTimeFrameBorder | aod.NoITSROFrameBorder | aod.IsGoodITSLayersAll,
		Occupancy: 100,
		QxA:       -q * math.Cos(psi),
		QyA:       -q * math.Sin(psi),
		QxC:       q * math.Cos(psi),
		QyC:       q * math.Sin(psi),
		PsiA:      kine.ConstrainAngle(psi + math.Pi),
		PsiC:      psi,
	}

	pv := ev.Vertex()
	ev.V0s = make([]aod.V0, 0, g.V0sPerEvent)
	for i := 0; i < g.V0sPerEvent; i++ {
		c := g.Candidate(psi)
		ev.V0s = append(ev.V0s, c.V0(i, index, pv))
	}
	return ev
}

// Events generates n collisions indexed 0 to n-1.
func (g *Generator) Events(n int) []aod.Event {
	evs := make([]aod.Event, n)
	for i := range evs {
		evs[i] = g.Event(i)
	}
	return evs
}

// Candidate draws one V0 whose measured daughter is modulated around the
// reaction plane psi.
func (g *Generator) Candidate(psi float64) Candidate {
	c := Candidate{
		Hypothesis:   aod.Lambda,
		Pt:           g.pt.Rand(),
		Eta:          g.eta.Rand(),
		Phi:          g.angle.Rand(),
		CosThetaStar: g.cosTheta.Rand(),
	}
	switch r := g.unit.Rand(); {
	case r < g.K0sFraction:
		c.Hypothesis = aod.K0Short
	case r < g.K0sFraction+(1-g.K0sFraction)/2:
		c.Hypothesis = aod.AntiLambda
	}
	c.PhiStar = g.phiStar(psi)
	return c
}

// phiStar draws from 1 + Pol*sin(phi - psi) by rejection.
func (g *Generator) phiStar(psi float64) float64 {
	top := 1 + math.Abs(g.Pol)
	for {
		phi := g.angle.Rand()
		if top*g.unit.Rand() < 1+g.Pol*math.Sin(phi-psi) {
			return phi
		}
	}
}
