package mixing

import (
	"math"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/binning"
	"github.com/decibelcooper/lambdapol/kine"
	"github.com/decibelcooper/lambdapol/selection"
)

// Pair is two events, by position in the input, sharing a mixing bin.
// First precedes Second.
type Pair struct {
	First, Second int
}

// SelfCombinations pairs every event with up to depth of the events that
// follow it in the same bin. Events with binning.NoBin are never paired.
func SelfCombinations(bins []binning.Bin, depth int) []Pair {
	var (
		pairs []Pair
		byBin = make(map[binning.Bin][]int)
		order []binning.Bin
	)
	for i, b := range bins {
		if b == binning.NoBin {
			continue
		}
		if _, ok := byBin[b]; !ok {
			order = append(order, b)
		}
		byBin[b] = append(byBin[b], i)
	}
	for _, b := range order {
		members := byBin[b]
		for i, first := range members {
			for _, second := range members[i+1 : min(len(members), i+1+depth)] {
				pairs = append(pairs, Pair{First: first, Second: second})
			}
		}
	}
	return pairs
}

// pairs bins events and returns their combinations.
func (e *Engine) pairs(events []aod.Event) []Pair {
	bins := make([]binning.Bin, len(events))
	for i := range events {
		e.Stats.Events++
		bins[i] = e.binOf(&events[i])
		if bins[i] == binning.NoBin {
			e.Stats.NoBin++
		}
	}
	return SelfCombinations(bins, e.cfg.Mixing.NMix)
}

// acceptPair gates both events of a pair.
func (e *Engine) acceptPair(ev1, ev2 *aod.Event) bool {
	e.Stats.EventPairs++
	if !e.cfg.Event.Accept(ev1) || !e.cfg.Event.Accept(ev2) {
		e.Stats.PairsRejected++
		return false
	}
	return true
}

// MixBinned fills the candidates of the first event of every pair
// against the event plane of the second.
func (e *Engine) MixBinned(events []aod.Event) {
	for _, p := range e.pairs(events) {
		ev1, ev2 := &events[p.First], &events[p.Second]
		if !e.acceptPair(ev1, ev2) {
			continue
		}

		cent := ev1.CentFT0C
		ang := e.mixedAngles(ev2)
		if e.cfg.Random.Psi {
			ang.Psi = e.angle.Rand()
		}
		if e.cfg.Random.PsiAC {
			ang.PsiA = e.angle.Rand()
			ang.PsiC = e.angle.Rand()
		}
		e.fillEvent(cent, ang)

		for i := range ev1.V0s {
			v := &ev1.V0s[i]
			tags, ok := e.lambdaTags(ev1, v)
			if !ok {
				continue
			}
			for _, h := range hypotheses(tags) {
				e.fillMixed(ev1, v, h, cent, ang)
			}
		}
	}
}

// MixMatched fills each candidate of the second event of a pair against
// the event plane of the first, provided the first event holds a
// kinematically close candidate in the same hemisphere.
func (e *Engine) MixMatched(events []aod.Event) {
	for _, p := range e.pairs(events) {
		ev1, ev2 := &events[p.First], &events[p.Second]
		if !e.acceptPair(ev1, ev2) {
			continue
		}

		cent := ev1.CentFT0C
		ang := e.mixedAngles(ev1)
		e.fillEvent(cent, ang)

		for i := range ev2.V0s {
			v2 := &ev2.V0s[i]
			tags, ok := e.lambdaTags(ev2, v2)
			if !ok {
				continue
			}
			if !e.hasMatch(ev1, v2) {
				e.Stats.Unmatched++
				continue
			}
			for _, h := range hypotheses(tags) {
				e.fillMixed(ev2, v2, h, cent, ang)
			}
		}
	}
}

// hasMatch reports whether ev holds a selected candidate within the
// mixing tolerances of v.
func (e *Engine) hasMatch(ev *aod.Event, v *aod.V0) bool {
	m := e.cfg.Mixing
	eta, pt, phi := v.Eta(), v.Pt(), v.Phi()
	for i := range ev.V0s {
		w := &ev.V0s[i]
		if !e.cfg.Daughter.Tag(w).AnyLambda() || !e.cfg.V0.PassesTopology(ev, w) || !selection.PassesEta(w.Eta()) {
			continue
		}
		if eta*w.Eta() <= 0 {
			continue
		}
		if math.Abs(eta-w.Eta()) < m.EtaMix && math.Abs(pt-w.Pt()) < m.PtMix && DeltaPhi(phi, w.Phi()) < m.PhiMix {
			return true
		}
	}
	return false
}

// DeltaPhi returns the azimuthal distance between a and b, in [0, pi].
func DeltaPhi(a, b float64) float64 {
	d := kine.ConstrainAngle(a - b)
	return math.Min(d, 2*math.Pi-d)
}

func (e *Engine) fillMixed(ev *aod.Event, v *aod.V0, h aod.Hypothesis, cent float64, ang kine.Angles) {
	parent, daughter := kine.Decay(v, h)
	e.fill(h, parent, daughter, ang, kinematics{
		mass: h.Mass(v),
		pt:   v.Pt(),
		cent: cent,
		last: e.lastAxis(ev, v),
		acc:  1,
	})
}
