// Package kine computes the decay-angle observables of a V0 candidate
// relative to the ZDC event planes.
package kine

import (
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/lambdapol/aod"
)

// P4 returns the four-momentum of a particle of mass m and momentum p.
func P4(px, py, pz, m float64) *fmom.PxPyPzE {
	p := fmom.NewPxPyPzE(px, py, pz, math.Sqrt(px*px+py*py+pz*pz+m*m))
	return &p
}

// Daughter returns the daughter whose decay angle is measured under h:
// the proton for Lambda, the antiproton for AntiLambda and the positive
// pion for K0s.
func Daughter(v *aod.V0, h aod.Hypothesis) fmom.P4 {
	switch h {
	case aod.Lambda:
		return P4(v.PxPos, v.PyPos, v.PzPos, aod.MassProton)
	case aod.AntiLambda:
		return P4(v.PxNeg, v.PyNeg, v.PzNeg, aod.MassProton)
	default:
		return P4(v.PxPos, v.PyPos, v.PzPos, aod.MassPionCharged)
	}
}

// Decay returns the parent four-momentum of v under h together with the
// measured daughter.
func Decay(v *aod.V0, h aod.Hypothesis) (parent, daughter fmom.P4) {
	var pos, neg fmom.P4
	switch h {
	case aod.Lambda:
		pos = P4(v.PxPos, v.PyPos, v.PzPos, aod.MassProton)
		neg = P4(v.PxNeg, v.PyNeg, v.PzNeg, aod.MassPionCharged)
		daughter = pos
	case aod.AntiLambda:
		pos = P4(v.PxPos, v.PyPos, v.PzPos, aod.MassPionCharged)
		neg = P4(v.PxNeg, v.PyNeg, v.PzNeg, aod.MassProton)
		daughter = neg
	default:
		pos = P4(v.PxPos, v.PyPos, v.PzPos, aod.MassPionCharged)
		neg = P4(v.PxNeg, v.PyNeg, v.PzNeg, aod.MassPionCharged)
		daughter = pos
	}
	return fmom.Add(pos, neg), daughter
}

// RestFrame boosts p into the frame where parent is at rest.
func RestFrame(parent, p fmom.P4) fmom.P4 {
	return fmom.Boost(p, r3.Scale(-1, fmom.BoostOf(parent)))
}

// Mag returns the magnitude of the three-momentum of p.
func Mag(p fmom.P4) float64 {
	return math.Sqrt(p.Px()*p.Px() + p.Py()*p.Py() + p.Pz()*p.Pz())
}

// ConstrainAngle wraps phi into [0, 2pi).
func ConstrainAngle(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi >= 2*math.Pi {
		phi = 0
	}
	return phi
}
