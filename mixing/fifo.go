package mixing

import (
	"fmt"
	"slices"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/binning"
	"github.com/decibelcooper/lambdapol/kine"
	"github.com/decibelcooper/lambdapol/pool"
	"github.com/decibelcooper/lambdapol/selection"
)

// FIFOMixer mixes each event with the most recent accepted events of its
// bin. An event joins the pool only after it has been mixed, so it is
// never its own partner.
type FIFOMixer struct {
	e    *Engine
	pool *pool.Pool

	// Events are keyed by their position in the processed stream, not by
	// Event.Index, which repeats across input files.
	seq      int
	retained map[int]aod.Event
}

// candidateKey identifies one (primary, partner) candidate pair.
type candidateKey struct {
	primary, partner int
}

// NewFIFOMixer returns a mixer with one empty pool per bin of e.
func NewFIFOMixer(e *Engine) (*FIFOMixer, error) {
	p, err := pool.New(e.index.NBins(), e.cfg.Mixing.NMix)
	if err != nil {
		return nil, fmt.Errorf("mixing: %w", err)
	}
	return &FIFOMixer{e: e, pool: p, retained: make(map[int]aod.Event)}, nil
}

// Pool returns the event pool of the mixer.
func (m *FIFOMixer) Pool() *pool.Pool { return m.pool }

// Process mixes ev against its pool partners and then admits it. Every
// call takes the next stream position as the event id, accepted or not.
func (m *FIFOMixer) Process(ev *aod.Event) {
	e := m.e
	id := m.seq
	m.seq++
	e.Stats.Events++
	if !e.accept(ev) {
		return
	}
	bin := e.binOf(ev)
	if bin == binning.NoBin {
		e.Stats.NoBin++
		return
	}

	cent := ev.CentFT0C
	ang := e.mixedAngles(ev)
	e.fillEvent(cent, ang)

	var partners []*aod.Event
	var partnerIDs []int
	for _, pid := range m.pool.Partners(int(bin), e.cfg.Mixing.NMix) {
		r, ok := m.retained[pid]
		if !ok {
			continue
		}
		partners = append(partners, &r)
		partnerIDs = append(partnerIDs, pid)
	}
	e.Stats.EventPairs += len(partners)

	// Candidate ids are only unique within an event, so the seen set
	// lives for one primary event.
	seen := make(map[int]map[candidateKey]struct{}, len(partners))
	for i := range ev.V0s {
		v1 := &ev.V0s[i]
		tags, ok := e.lambdaTags(ev, v1)
		if !ok {
			continue
		}
		for j, p := range partners {
			pid := partnerIDs[j]
			if seen[pid] == nil {
				seen[pid] = make(map[candidateKey]struct{})
			}
			for k := range p.V0s {
				v2 := &p.V0s[k]
				if !e.cfg.V0.PassesTopology(p, v2) {
					continue
				}
				t2 := e.cfg.Daughter.Tag(v2)
				if !t2.AnyLambda() {
					continue
				}
				key := candidateKey{primary: v1.ID, partner: v2.ID}
				if _, dup := seen[pid][key]; dup {
					e.Stats.DedupSkipped++
					continue
				}
				seen[pid][key] = struct{}{}
				if selection.ShouldReject(t2.Lambda, t2.AntiLambda, v2.MLambda(), v2.MAntiLambda()) {
					e.Stats.Ambiguous++
					continue
				}
				if !selection.PassesEta(v2.Eta()) {
					continue
				}
				m.fillPair(ev, v1, v2, tags, cent, ang)
			}
		}
	}

	m.admit(int(bin), id, ev)
}

// fillPair fills the primary candidate v1 with the measured daughter
// taken from the partner candidate v2.
func (m *FIFOMixer) fillPair(ev *aod.Event, v1, v2 *aod.V0, tags selection.Tags, cent float64, ang kine.Angles) {
	for _, h := range hypotheses(tags) {
		parent, _ := kine.Decay(v1, h)
		m.e.fill(h, parent, kine.Daughter(v2, h), ang, kinematics{
			mass: h.Mass(v1),
			pt:   v1.Pt(),
			cent: cent,
			last: m.e.lastAxis(ev, v1),
			acc:  1,
		})
	}
}

func (m *FIFOMixer) admit(bin, id int, ev *aod.Event) {
	m.retained[id] = cloneEvent(ev)
	if evicted, ok := m.pool.Admit(bin, id); ok {
		delete(m.retained, evicted)
	}
}

// Retained returns the number of events held for mixing.
func (m *FIFOMixer) Retained() int { return len(m.retained) }

func cloneEvent(ev *aod.Event) aod.Event {
	cp := *ev
	cp.V0s = slices.Clone(ev.V0s)
	return cp
}

// MixFIFO runs a fresh FIFOMixer over events in order.
func (e *Engine) MixFIFO(events []aod.Event) error {
	m, err := NewFIFOMixer(e)
	if err != nil {
		return err
	}
	for i := range events {
		m.Process(&events[i])
	}
	return nil
}
