package toymc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/kine"
	"github.com/decibelcooper/lambdapol/selection"
)

func TestTwoBody(t *testing.T) {
	parent := kine.P4(0.5, 1.5, -0.7, aod.MassLambda)
	d1, d2 := TwoBody(parent, aod.MassProton, aod.MassPionCharged, 0.3, 1.1)
	assert.InDelta(t, aod.MassProton, d1.M(), 1e-9)
	assert.InDelta(t, aod.MassPionCharged, d2.M(), 1e-9)

	sum := fmom.Add(d1, d2)
	assert.InDelta(t, parent.Px(), sum.Px(), 1e-9)
	assert.InDelta(t, parent.Py(), sum.Py(), 1e-9)
	assert.InDelta(t, parent.Pz(), sum.Pz(), 1e-9)
	assert.InDelta(t, aod.MassLambda, sum.M(), 1e-9)
}

func TestCandidateAnglesRecovered(t *testing.T) {
	for _, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda, aod.K0Short} {
		c := Candidate{Hypothesis: h, Pt: 2, Eta: 0.3, Phi: 4, CosThetaStar: -0.4, PhiStar: 2.5}
		v := c.V0(3, 7, [3]float64{0.01, -0.02, 1.5})
		assert.Equal(t, 3, v.ID)
		assert.Equal(t, 7, v.Collision)

		parent, daughter := kine.Decay(&v, h)
		assert.InDelta(t, h.Mass(&v), parent.M(), 1e-9, "%v", h)
		o := kine.Compute(parent, daughter, kine.Angles{}, nil)
		assert.InDelta(t, 2.5, o.PhiStar, 1e-6, "%v", h)
		assert.InDelta(t, -0.4, o.CosThetaStar, 1e-6, "%v", h)
		assert.InDelta(t, 2, v.Pt(), 1e-9)
		assert.InDelta(t, 0.3, v.Eta(), 1e-9)
		assert.InDelta(t, decayRadius, v.Radius(), 0.05)
	}
}

func TestCandidatePassesSelection(t *testing.T) {
	cuts := selection.DefaultDaughterCuts()
	topo := selection.DefaultV0Cuts()
	ev := &aod.Event{PosZ: 2}

	// proton emitted transverse to the flight direction keeps the pion hard
	c := Candidate{Hypothesis: aod.Lambda, Pt: 2, Eta: 0.1, Phi: 1, CosThetaStar: 0, PhiStar: 1 + math.Pi/2}
	v := c.V0(0, 0, ev.Vertex())
	assert.True(t, cuts.Compatible(&v, aod.Lambda))
	assert.False(t, cuts.Compatible(&v, aod.AntiLambda))
	assert.True(t, topo.PassesTopology(ev, &v))

	c.Hypothesis = aod.AntiLambda
	v = c.V0(0, 0, ev.Vertex())
	assert.False(t, cuts.Compatible(&v, aod.Lambda))
	assert.True(t, cuts.Compatible(&v, aod.AntiLambda))
}

func TestGeneratorEvents(t *testing.T) {
	g := NewGenerator(42, 4, 0)
	evs := g.Events(20)
	require.Len(t, evs, 20)
	for i, ev := range evs {
		assert.Equal(t, i, ev.Index)
		assert.Len(t, ev.V0s, 4)
		assert.GreaterOrEqual(t, ev.PosZ, -10.0)
		assert.Less(t, ev.PosZ, 10.0)
		ang := kine.EventPlane(&ev, false)
		assert.InDelta(t, math.Cos(ev.PsiC), math.Cos(ang.Psi), 1e-9)
		assert.InDelta(t, math.Sin(ev.PsiC), math.Sin(ang.Psi), 1e-9)
		for j := range ev.V0s {
			assert.Equal(t, i, ev.V0s[j].Collision)
		}
	}

	// same seed, same events
	again := NewGenerator(42, 4, 0).Events(20)
	assert.Equal(t, evs, again)
}

func TestGeneratorPolarisation(t *testing.T) {
	const n = 20000
	g := NewGenerator(7, 0, 0.5)
	var sum float64
	for i := 0; i < n; i++ {
		psi := g.angle.Rand()
		sum += math.Sin(g.phiStar(psi) - psi)
	}
	// <sin> = Pol/2 for a 1 + Pol*sin density
	assert.InDelta(t, 0.25, sum/n, 0.02)
}
