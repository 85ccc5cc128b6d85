// Package toymc generates synthetic collisions with exact two-body V0
// decays, so the decay angles of every candidate are known.
package toymc

import (
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/kine"
)

// TwoBody decays parent into daughters of mass m1 and m2. Daughter 1 is
// emitted along (cosTheta, phi) in the parent rest frame, daughter 2
// back to back with it. The returned momenta are in the lab frame.
func TwoBody(parent fmom.P4, m1, m2, cosTheta, phi float64) (d1, d2 fmom.P4) {
	m := parent.M()
	q := math.Sqrt(math.Max(0, (m*m-(m1+m2)*(m1+m2))*(m*m-(m1-m2)*(m1-m2)))) / (2 * m)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	qx := q * sinTheta * math.Cos(phi)
	qy := q * sinTheta * math.Sin(phi)
	qz := q * cosTheta

	beta := fmom.BoostOf(parent)
	d1 = fmom.Boost(kine.P4(qx, qy, qz, m1), beta)
	d2 = fmom.Boost(kine.P4(-qx, -qy, -qz, m2), beta)
	return d1, d2
}

// Candidate describes one synthetic V0: the parent lab kinematics and the
// direction of the measured daughter in the parent rest frame.
type Candidate struct {
	Hypothesis aod.Hypothesis
	Pt, Eta    float64
	Phi        float64

	CosThetaStar float64
	PhiStar      float64
}

// parent returns the lab four-momentum of the candidate's parent.
func (c Candidate) parent() fmom.P4 {
	px := c.Pt * math.Cos(c.Phi)
	py := c.Pt * math.Sin(c.Phi)
	pz := c.Pt * math.Sinh(c.Eta)
	m := aod.MassLambda
	if c.Hypothesis == aod.K0Short {
		m = aod.MassK0Short
	}
	return kine.P4(px, py, pz, m)
}

// Transverse decay radius of generated candidates, cm.
const decayRadius = 3.0

var (
	goodTrack = aod.Track{CrossedRows: 120, FoundClusters: 110, CrossedOverFindable: 1}
	protonPID = aod.Track{NSigmaPr: 0, NSigmaPi: 10}
	pionPID   = aod.Track{NSigmaPr: 10, NSigmaPi: 0}
)

func withPID(t, pid aod.Track) aod.Track {
	t.NSigmaPr, t.NSigmaPi = pid.NSigmaPr, pid.NSigmaPi
	return t
}

// V0 builds the reconstructed candidate of c as seen from a primary
// vertex at pv. The topology and track quality pass the default
// selection comfortably.
func (c Candidate) V0(id, collision int, pv [3]float64) aod.V0 {
	parent := c.parent()

	var pos, neg fmom.P4
	v := aod.V0{
		ID:             id,
		Collision:      collision,
		DCAPosToPV:     0.2,
		DCANegToPV:     0.2,
		DCAV0ToPV:      0.1,
		DCAV0Daughters: 0.05,
		CosPA:          0.99995,
	}
	switch c.Hypothesis {
	case aod.Lambda:
		pos, neg = TwoBody(parent, aod.MassProton, aod.MassPionCharged, c.CosThetaStar, c.PhiStar)
		v.Pos, v.Neg = withPID(goodTrack, protonPID), withPID(goodTrack, pionPID)
	case aod.AntiLambda:
		neg, pos = TwoBody(parent, aod.MassProton, aod.MassPionCharged, c.CosThetaStar, c.PhiStar)
		v.Pos, v.Neg = withPID(goodTrack, pionPID), withPID(goodTrack, protonPID)
	default:
		pos, neg = TwoBody(parent, aod.MassPionCharged, aod.MassPionCharged, c.CosThetaStar, c.PhiStar)
		v.Pos, v.Neg = withPID(goodTrack, pionPID), withPID(goodTrack, pionPID)
	}
	v.PxPos, v.PyPos, v.PzPos = pos.Px(), pos.Py(), pos.Pz()
	v.PxNeg, v.PyNeg, v.PzNeg = neg.Px(), neg.Py(), neg.Pz()

	pt := math.Hypot(parent.Px(), parent.Py())
	l := decayRadius / pt
	v.X = pv[0] + l*parent.Px()
	v.Y = pv[1] + l*parent.Py()
	v.Z = pv[2] + l*parent.Pz()
	return v
}
