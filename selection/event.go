package selection

import "github.com/decibelcooper/lambdapol/aod"

// EventCuts is the event quality gate.
type EventCuts struct {
	RequireSel8       bool `yaml:"requireSel8"`
	RequireZDCTrigger bool `yaml:"requireZDCTrigger"`
	RequireRCT        bool `yaml:"requireRCT"`

	// Pileup and vertex-matching bits.
	PileupCut bool `yaml:"pileupCut"`
	// Occupancy window [MinOccupancy, MaxOccupancy].
	OccupancyCut bool `yaml:"occupancyCut"`
	MinOccupancy int  `yaml:"minOccupancy"`
	MaxOccupancy int  `yaml:"maxOccupancy"`
	// Time-frame and ITS readout-frame borders.
	BorderCut bool `yaml:"borderCut"`
	// All ITS layers good.
	ITSLayersCut bool `yaml:"itsLayersCut"`
}

func DefaultEventCuts() EventCuts {
	return EventCuts{
		RequireSel8:       true,
		RequireZDCTrigger: true,
		RequireRCT:        true,
		MinOccupancy:      0,
		MaxOccupancy:      1000,
	}
}

// Accept reports whether ev passes the gate. A rejected event is skipped
// entirely.
func (c *EventCuts) Accept(ev *aod.Event) bool {
	if c.RequireSel8 && !ev.Sel8 {
		return false
	}
	if c.RequireZDCTrigger && !ev.TriggerEventSP {
		return false
	}
	if c.RequireRCT && !ev.RCTGood {
		return false
	}
	if c.PileupCut && !ev.HasBits(aod.NoSameBunchPileup|aod.IsGoodZvtxFT0vsPV) {
		return false
	}
	if c.OccupancyCut && (ev.Occupancy > c.MaxOccupancy || ev.Occupancy < c.MinOccupancy) {
		return false
	}
	if c.BorderCut && !ev.HasBits(aod.NoTimeFrameBorder|aod.NoITSROFrameBorder) {
		return false
	}
	if c.ITSLayersCut && !ev.HasBits(aod.IsGoodITSLayersAll) {
		return false
	}
	return true
}
