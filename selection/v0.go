// Package selection decides whether events and V0 candidates enter the
// polarisation analysis. All predicates are pure.
package selection

import (
	"math"

	"github.com/decibelcooper/lambdapol/aod"
)

// DaughterCuts are the per-daughter kinematic, tracking, PID and DCA cuts
// of the hypothesis compatibility checks.
type DaughterCuts struct {
	MinProtonPt         float64 `yaml:"minProtonPt"`
	MinPionPt           float64 `yaml:"minPionPt"`
	MaxEta              float64 `yaml:"maxEta"`
	MinCrossedRows      int     `yaml:"minCrossedRows"`
	MinFoundClusters    int     `yaml:"minFoundClusters"`
	MinRowsOverFindable float64 `yaml:"minRowsOverFindable"`
	MaxNSigma           float64 `yaml:"maxNSigma"`
	MinDCAProton        float64 `yaml:"minDCAProton"`
	MinDCAPion          float64 `yaml:"minDCAPion"`
	MinQtOverAlphaK0s   float64 `yaml:"minQtOverAlphaK0s"`
}

// DefaultDaughterCuts returns the reference daughter selection.
func DefaultDaughterCuts() DaughterCuts {
	return DaughterCuts{
		MinProtonPt:         0.4,
		MinPionPt:           0.2,
		MaxEta:              0.8,
		MinCrossedRows:      70,
		MinFoundClusters:    50,
		MinRowsOverFindable: 0.8,
		MaxNSigma:           3,
		MinDCAProton:        0.05,
		MinDCAPion:          0.05,
		MinQtOverAlphaK0s:   0.2,
	}
}

func (c *DaughterCuts) trackOK(t *aod.Track) bool {
	return t.CrossedRows >= c.MinCrossedRows &&
		t.FoundClusters >= c.MinFoundClusters &&
		t.CrossedOverFindable >= c.MinRowsOverFindable
}

// Compatible reports whether the daughters of v are consistent with h,
// which must be aod.Lambda or aod.AntiLambda. For Lambda the positive
// daughter is the proton; for AntiLambda the negative one is.
func (c *DaughterCuts) Compatible(v *aod.V0, h aod.Hypothesis) bool {
	var (
		prPt, piPt   float64
		pr, pi       *aod.Track
		prDCA, piDCA float64
	)
	switch h {
	case aod.Lambda:
		prPt, piPt = v.PosPt(), v.NegPt()
		pr, pi = &v.Pos, &v.Neg
		prDCA, piDCA = v.DCAPosToPV, v.DCANegToPV
	case aod.AntiLambda:
		prPt, piPt = v.NegPt(), v.PosPt()
		pr, pi = &v.Neg, &v.Pos
		prDCA, piDCA = v.DCANegToPV, v.DCAPosToPV
	default:
		return false
	}

	if prPt < c.MinProtonPt || piPt < c.MinPionPt {
		return false
	}
	if math.Abs(v.PosEta()) > c.MaxEta || math.Abs(v.NegEta()) > c.MaxEta {
		return false
	}
	if !c.trackOK(&v.Pos) || !c.trackOK(&v.Neg) {
		return false
	}
	if math.Abs(pr.NSigmaPr) > c.MaxNSigma || math.Abs(pi.NSigmaPi) > c.MaxNSigma {
		return false
	}
	if math.Abs(prDCA) < c.MinDCAProton || math.Abs(piDCA) < c.MinDCAPion {
		return false
	}
	return true
}

// CompatibleK0s reports whether v is consistent with a K0s decay into two
// charged pions.
func (c *DaughterCuts) CompatibleK0s(v *aod.V0) bool {
	if v.PosPt() < c.MinProtonPt || v.NegPt() < c.MinPionPt {
		return false
	}
	if math.Abs(v.PosEta()) > c.MaxEta || math.Abs(v.NegEta()) > c.MaxEta {
		return false
	}
	if !c.trackOK(&v.Pos) || !c.trackOK(&v.Neg) {
		return false
	}
	if math.Abs(v.Pos.NSigmaPi) > c.MaxNSigma || math.Abs(v.Neg.NSigmaPi) > c.MaxNSigma {
		return false
	}
	if math.Abs(v.DCAPosToPV) < c.MinDCAPion || math.Abs(v.DCANegToPV) < c.MinDCAPion {
		return false
	}
	if v.QtArm()/math.Abs(v.Alpha()) < c.MinQtOverAlphaK0s {
		return false
	}
	return true
}

// Tags holds the hypothesis tags of one candidate. Both Lambda tags may be
// set for an ambiguous candidate.
type Tags struct {
	Lambda, AntiLambda, K0s bool
}

// Tag evaluates every hypothesis for v.
func (c *DaughterCuts) Tag(v *aod.V0) Tags {
	return Tags{
		Lambda:     c.Compatible(v, aod.Lambda),
		AntiLambda: c.Compatible(v, aod.AntiLambda),
		K0s:        c.CompatibleK0s(v),
	}
}

// AnyLambda reports whether either Lambda hypothesis is tagged.
func (t Tags) AnyLambda() bool { return t.Lambda || t.AntiLambda }

// Ambiguity window for ShouldReject, GeV/c^2.
const (
	RejectMinMass = 1.105
	RejectMaxMass = 1.125
)

// ShouldReject reports whether a candidate tagged under both Lambda
// hypotheses has both invariant masses inside [RejectMinMass,
// RejectMaxMass). Such daughter-swap ambiguous candidates would otherwise
// be counted twice.
func ShouldReject(lambda, antiLambda bool, mLambda, mAntiLambda float64) bool {
	in := func(m float64) bool { return m >= RejectMinMass && m < RejectMaxMass }
	return lambda && antiLambda && in(mLambda) && in(mAntiLambda)
}

// MaxCandidateEta bounds the candidate pseudorapidity in every mode.
const MaxCandidateEta = 0.8

// PassesEta applies the global candidate pseudorapidity cut, inclusive.
func PassesEta(eta float64) bool {
	return math.Abs(eta) <= MaxCandidateEta
}
