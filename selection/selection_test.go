package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/toymc"
)

func TestShouldReject(t *testing.T) {
	for _, tc := range []struct {
		name         string
		lambda, anti bool
		mL, mA       float64
		want         bool
	}{
		{"both tags inside", true, true, 1.115, 1.116, true},
		{"lower edge inclusive", true, true, 1.105, 1.105, true},
		{"upper edge exclusive", true, true, 1.125, 1.115, false},
		{"anti upper edge exclusive", true, true, 1.115, 1.125, false},
		{"below window", true, true, 1.1049, 1.115, false},
		{"lambda tag only", true, false, 1.115, 1.115, false},
		{"anti tag only", false, true, 1.115, 1.115, false},
		{"no tags", false, false, 1.115, 1.115, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldReject(tc.lambda, tc.anti, tc.mL, tc.mA))
		})
	}
}

func TestPassesEta(t *testing.T) {
	assert.True(t, PassesEta(0))
	assert.True(t, PassesEta(0.8))
	assert.True(t, PassesEta(-0.8))
	assert.False(t, PassesEta(0.8000001))
	assert.False(t, PassesEta(-0.8000001))
	assert.False(t, PassesEta(math.NaN()))
}

func sample() []aod.V0 {
	var out []aod.V0
	for i, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda, aod.K0Short} {
		for j, phiStar := range []float64{0, 1, 2.5, 4, 5.5} {
			c := toymc.Candidate{
				Hypothesis:   h,
				Pt:           0.6 + 0.7*float64(j),
				Eta:          -0.5 + 0.25*float64(j),
				Phi:          float64(i + j),
				CosThetaStar: 0.2*float64(j) - 0.4,
				PhiStar:      phiStar,
			}
			out = append(out, c.V0(j, 0, [3]float64{}))
		}
	}
	return out
}

func TestCompatibleChargeConjugation(t *testing.T) {
	cuts := DefaultDaughterCuts()
	vs := sample()

	// loosen one cut at a time so both outcomes occur
	variants := []DaughterCuts{cuts}
	loose := cuts
	loose.MinPionPt = 0
	variants = append(variants, loose)
	tight := cuts
	tight.MaxNSigma = 0
	variants = append(variants, tight)

	for _, c := range variants {
		for i := range vs {
			v := vs[i]
			w := v.Swapped()
			assert.Equal(t, c.Compatible(&v, aod.Lambda), c.Compatible(&w, aod.AntiLambda), "v0 %d", i)
			assert.Equal(t, c.Compatible(&v, aod.AntiLambda), c.Compatible(&w, aod.Lambda), "v0 %d", i)
		}
	}
}

func TestCompatibleRejectsOnEachCut(t *testing.T) {
	c := toymc.Candidate{Hypothesis: aod.Lambda, Pt: 2, Eta: 0.1, Phi: 1, PhiStar: 1 + math.Pi/2}
	good := c.V0(0, 0, [3]float64{})
	cuts := DefaultDaughterCuts()
	assert.True(t, cuts.Compatible(&good, aod.Lambda))
	assert.False(t, cuts.Compatible(&good, aod.K0Short))

	for name, mutate := range map[string]func(v *aod.V0){
		"proton pid":      func(v *aod.V0) { v.Pos.NSigmaPr = 3.5 },
		"pion pid":        func(v *aod.V0) { v.Neg.NSigmaPi = -3.5 },
		"crossed rows":    func(v *aod.V0) { v.Neg.CrossedRows = 60 },
		"found clusters":  func(v *aod.V0) { v.Pos.FoundClusters = 40 },
		"rows / findable": func(v *aod.V0) { v.Pos.CrossedOverFindable = 0.7 },
		"proton dca":      func(v *aod.V0) { v.DCAPosToPV = 0.01 },
		"pion dca":        func(v *aod.V0) { v.DCANegToPV = -0.01 },
		"proton pt":       func(v *aod.V0) { v.PxPos, v.PyPos = 0.1, 0.1 },
		"daughter eta":    func(v *aod.V0) { v.PzNeg = 10 },
	} {
		v := good
		mutate(&v)
		assert.False(t, cuts.Compatible(&v, aod.Lambda), name)
	}
}

func TestCompatibleK0s(t *testing.T) {
	c := toymc.Candidate{Hypothesis: aod.K0Short, Pt: 2, Eta: 0, Phi: 0.3, PhiStar: 0.3 + math.Pi/2}
	v := c.V0(0, 0, [3]float64{})
	cuts := DefaultDaughterCuts()
	assert.True(t, cuts.CompatibleK0s(&v))
	assert.False(t, cuts.Compatible(&v, aod.Lambda))
	assert.False(t, cuts.Compatible(&v, aod.AntiLambda))
	assert.Equal(t, Tags{K0s: true}, cuts.Tag(&v))
	assert.False(t, cuts.Tag(&v).AnyLambda())

	v.Pos.NSigmaPi = 4
	assert.False(t, cuts.CompatibleK0s(&v))
}

func TestPassesTopology(t *testing.T) {
	ev := &aod.Event{PosX: 0.01, PosY: -0.01, PosZ: 3}
	c := toymc.Candidate{Hypothesis: aod.Lambda, Pt: 1.5, Eta: 0.2, Phi: 2, PhiStar: 2 + math.Pi/2}
	good := c.V0(0, 0, ev.Vertex())
	cuts := DefaultV0Cuts()
	assert.True(t, cuts.PassesTopology(ev, &good))

	for name, mutate := range map[string]func(v *aod.V0){
		"dca to pv":       func(v *aod.V0) { v.DCAV0ToPV = -1.3 },
		"dca daughters":   func(v *aod.V0) { v.DCAV0Daughters = 0.3 },
		"cos pa":          func(v *aod.V0) { v.CosPA = 0.999 },
		"radius inside":   func(v *aod.V0) { v.X, v.Y = 0.5, 0.5 },
		"radius outside":  func(v *aod.V0) { v.X, v.Y = 80, 80 },
		"proper lifetime": func(v *aod.V0) { v.Z = 40 },
	} {
		v := good
		mutate(&v)
		assert.False(t, cuts.PassesTopology(ev, &v), name)
	}

	rap := c
	rap.Eta = 1.2
	v := rap.V0(0, 0, ev.Vertex())
	assert.False(t, cuts.PassesTopology(ev, &v))

	cuts.MinPt = 2
	assert.False(t, cuts.PassesTopology(ev, &good))
}

func TestEventAccept(t *testing.T) {
	good := aod.Event{
		Sel8:           true,
		TriggerEventSP: true,
		RCTGood:        true,
		Selection: aod.NoSameBunchPileup | aod.IsGoodZvtxFT0vsPV |
			aod.NoTimeFrameBorder | aod.NoITSROFrameBorder | aod.IsGoodITSLayersAll,
		Occupancy: 500,
	}
	all := DefaultEventCuts()
	all.PileupCut, all.OccupancyCut, all.BorderCut, all.ITSLayersCut = true, true, true, true
	assert.True(t, all.Accept(&good))

	for name, mutate := range map[string]func(ev *aod.Event){
		"sel8":       func(ev *aod.Event) { ev.Sel8 = false },
		"zdc":        func(ev *aod.Event) { ev.TriggerEventSP = false },
		"rct":        func(ev *aod.Event) { ev.RCTGood = false },
		"pileup":     func(ev *aod.Event) { ev.Selection &^= aod.NoSameBunchPileup },
		"zvtx":       func(ev *aod.Event) { ev.Selection &^= aod.IsGoodZvtxFT0vsPV },
		"occupancy":  func(ev *aod.Event) { ev.Occupancy = 1001 },
		"tf border":  func(ev *aod.Event) { ev.Selection &^= aod.NoTimeFrameBorder },
		"its border": func(ev *aod.Event) { ev.Selection &^= aod.NoITSROFrameBorder },
		"its layers": func(ev *aod.Event) { ev.Selection &^= aod.IsGoodITSLayersAll },
	} {
		ev := good
		mutate(&ev)
		assert.False(t, all.Accept(&ev), name)
	}

	// optional groups are off by default
	def := DefaultEventCuts()
	ev := good
	ev.Selection = 0
	ev.Occupancy = 5000
	assert.True(t, def.Accept(&ev))
}

func TestSystematicBins(t *testing.T) {
	ev := &aod.Event{}
	v := &aod.V0{CosPA: 0.99455, DCAV0Daughters: -0.97, DCAPosToPV: 0.16, DCANegToPV: 1}

	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5, 4.5}, SystematicBins(VaryCosPA, ev, v))
	assert.Equal(t, []float64{4.5, 5.5, 6.5, 7.5, 8.5, 9.5}, SystematicBins(VaryDCADaughters, ev, v))
	assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, SystematicBins(VaryDCAPos, ev, v))
	assert.Len(t, SystematicBins(VaryDCANeg, ev, v), 10)
	assert.Nil(t, SystematicBins(NoVariation, ev, v))
	assert.Nil(t, SystematicBins(Variation(9), ev, v))

	// zero flight distance passes every lifetime threshold
	assert.Len(t, SystematicBins(VaryLifetime, ev, v), 10)
}
