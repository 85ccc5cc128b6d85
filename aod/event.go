// Package aod holds the per-collision and per-V0 records consumed by the
// polarisation analysis, together with the kinematic quantities derived
// from them.
package aod

// Particle masses in GeV/c^2.
const (
	MassProton      = 0.93827208816
	MassPionCharged = 0.13957039
	MassLambda      = 1.115683
	MassK0Short     = 0.497611
)

// Selection bits of Event.Selection.
const (
	NoSameBunchPileup uint64 = 1 << iota
	IsGoodZvtxFT0vsPV
	NoTimeFrameBorder
	NoITSROFrameBorder
	IsGoodITSLayersAll
)

// Event is one reconstructed collision together with its V0 candidates.
type Event struct {
	Index     int
	Run       int
	Timestamp int64

	PosX, PosY, PosZ float64
	CentFT0C         float64

	Sel8           bool
	TriggerEventSP bool
	RCTGood        bool
	Selection      uint64
	Occupancy      int

	// ZDC spectator flow vectors and their event-plane angles, A and C side.
	QxA, QyA, QxC, QyC float64
	PsiA, PsiC         float64

	V0s []V0
}

// HasBits reports whether all of bits are set in the selection mask.
func (ev *Event) HasBits(bits uint64) bool {
	return ev.Selection&bits == bits
}

// Vertex returns the primary vertex position.
func (ev *Event) Vertex() [3]float64 {
	return [3]float64{ev.PosX, ev.PosY, ev.PosZ}
}
