package mixing

import (
	"fmt"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/kine"
	"github.com/decibelcooper/lambdapol/selection"
)

// ProcessEvent fills the same-event observables of ev: every selected
// candidate against the event's own planes. A failed acceptance lookup is
// the only error.
func (e *Engine) ProcessEvent(ev *aod.Event) error {
	e.Stats.Events++
	if !e.accept(ev) {
		return nil
	}
	if e.cfg.Analysis.UseAccCorr {
		if err := e.acc.ForRun(ev.Run, ev.Timestamp); err != nil {
			return fmt.Errorf("mixing: event %d: %w", ev.Index, err)
		}
	}

	cent := ev.CentFT0C
	ang := kine.EventPlane(ev, e.cfg.Analysis.ShiftedQ)
	e.fillEvent(cent, ang)

	for i := range ev.V0s {
		v := &ev.V0s[i]
		switch {
		case e.cfg.V0.AnalyzeLambda:
			tags, ok := e.lambdaTags(ev, v)
			if !ok {
				continue
			}
			for _, h := range hypotheses(tags) {
				e.fillSame(ev, v, h, cent, ang)
			}
		case e.cfg.V0.AnalyzeK0s:
			if !e.cfg.Daughter.CompatibleK0s(v) || !e.cfg.V0.PassesTopology(ev, v) || !selection.PassesEta(v.Eta()) {
				continue
			}
			e.fillSame(ev, v, aod.K0Short, cent, ang)
		}
	}
	return nil
}

func (e *Engine) fillSame(ev *aod.Event, v *aod.V0, h aod.Hypothesis, cent float64, ang kine.Angles) {
	parent, daughter := kine.Decay(v, h)
	k := kinematics{
		mass: h.Mass(v),
		pt:   v.Pt(),
		cent: cent,
		last: e.lastAxis(ev, v),
		acc:  1,
	}
	if e.cfg.Analysis.UseAccCorr {
		k.acc = e.acc.Value(h, v.Eta(), v.Pt())
	}
	e.fill(h, parent, daughter, ang, k)
}
