package aod

import (
	"math"

	"go-hep.org/x/hep/fmom"
)

// Track carries the TPC quality and PID information of one V0 daughter.
type Track struct {
	CrossedRows         int
	FoundClusters       int
	CrossedOverFindable float64
	NSigmaPr            float64
	NSigmaPi            float64
}

// V0 is a neutral two-prong decay candidate. ID is only unique within the
// owning event.
type V0 struct {
	ID        int
	Collision int

	PxPos, PyPos, PzPos float64
	PxNeg, PyNeg, PzNeg float64

	X, Y, Z float64 // decay vertex

	DCAPosToPV     float64
	DCANegToPV     float64
	DCAV0ToPV      float64
	DCAV0Daughters float64
	CosPA          float64

	Pos, Neg Track
}

func (v *V0) Px() float64 { return v.PxPos + v.PxNeg }
func (v *V0) Py() float64 { return v.PyPos + v.PyNeg }
func (v *V0) Pz() float64 { return v.PzPos + v.PzNeg }

func (v *V0) Pt() float64 { return math.Hypot(v.Px(), v.Py()) }

func (v *V0) P() float64 {
	return math.Sqrt(v.Px()*v.Px() + v.Py()*v.Py() + v.Pz()*v.Pz())
}

func (v *V0) Eta() float64 { return eta(v.Px(), v.Py(), v.Pz()) }

// Phi returns the azimuth of the V0 momentum in [0, 2pi).
func (v *V0) Phi() float64 { return phi(v.Px(), v.Py()) }

func (v *V0) PosPt() float64  { return math.Hypot(v.PxPos, v.PyPos) }
func (v *V0) NegPt() float64  { return math.Hypot(v.PxNeg, v.PyNeg) }
func (v *V0) PosEta() float64 { return eta(v.PxPos, v.PyPos, v.PzPos) }
func (v *V0) NegEta() float64 { return eta(v.PxNeg, v.PyNeg, v.PzNeg) }

// Radius returns the transverse decay radius.
func (v *V0) Radius() float64 { return math.Hypot(v.X, v.Y) }

// MLambda is the invariant mass with a proton on the positive and a pion
// on the negative daughter.
func (v *V0) MLambda() float64 { return v.mass(MassProton, MassPionCharged) }

// MAntiLambda is the invariant mass with a pion on the positive and an
// antiproton on the negative daughter.
func (v *V0) MAntiLambda() float64 { return v.mass(MassPionCharged, MassProton) }

func (v *V0) MK0Short() float64 { return v.mass(MassPionCharged, MassPionCharged) }

func (v *V0) YLambda() float64  { return v.rapidity(MassLambda) }
func (v *V0) YK0Short() float64 { return v.rapidity(MassK0Short) }

// DistOverTotMom returns the flight distance from pv divided by the total
// momentum; multiplied by a mass it gives the proper decay length.
func (v *V0) DistOverTotMom(pv [3]float64) float64 {
	dx := v.X - pv[0]
	dy := v.Y - pv[1]
	dz := v.Z - pv[2]
	return math.Sqrt(dx*dx+dy*dy+dz*dz) / (v.P() + 1e-13)
}

// Alpha returns the Armenteros-Podolanski longitudinal asymmetry.
func (v *V0) Alpha() float64 {
	p := v.P()
	if p == 0 {
		return 0
	}
	lPos := (v.PxPos*v.Px() + v.PyPos*v.Py() + v.PzPos*v.Pz()) / p
	lNeg := (v.PxNeg*v.Px() + v.PyNeg*v.Py() + v.PzNeg*v.Pz()) / p
	if lPos+lNeg == 0 {
		return 0
	}
	return (lPos - lNeg) / (lPos + lNeg)
}

// QtArm returns the Armenteros-Podolanski transverse momentum of the
// daughters relative to the V0 direction.
func (v *V0) QtArm() float64 {
	p2 := v.P() * v.P()
	if p2 == 0 {
		return 0
	}
	dp := v.PxNeg*v.Px() + v.PyNeg*v.Py() + v.PzNeg*v.Pz()
	pNeg2 := v.PxNeg*v.PxNeg + v.PyNeg*v.PyNeg + v.PzNeg*v.PzNeg
	return math.Sqrt(math.Max(0, pNeg2-dp*dp/p2))
}

// Swapped returns the charge-conjugate view of the candidate: positive and
// negative daughters exchanged.
func (v *V0) Swapped() V0 {
	w := *v
	w.PxPos, w.PxNeg = v.PxNeg, v.PxPos
	w.PyPos, w.PyNeg = v.PyNeg, v.PyPos
	w.PzPos, w.PzNeg = v.PzNeg, v.PzPos
	w.DCAPosToPV, w.DCANegToPV = v.DCANegToPV, v.DCAPosToPV
	w.Pos, w.Neg = v.Neg, v.Pos
	return w
}

func (v *V0) mass(mPos, mNeg float64) float64 {
	pos := onShell(v.PxPos, v.PyPos, v.PzPos, mPos)
	neg := onShell(v.PxNeg, v.PyNeg, v.PzNeg, mNeg)
	return fmom.Add(&pos, &neg).M()
}

func (v *V0) rapidity(m float64) float64 {
	p := onShell(v.Px(), v.Py(), v.Pz(), m)
	return p.Rapidity()
}

// onShell returns the four-momentum of mass m with momentum (px, py, pz).
func onShell(px, py, pz, m float64) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(px, py, pz, math.Sqrt(px*px+py*py+pz*pz+m*m))
}

func eta(px, py, pz float64) float64 {
	p := math.Sqrt(px*px + py*py + pz*pz)
	if p == 0 {
		return 0
	}
	return math.Atanh(pz / p)
}

func phi(px, py float64) float64 {
	a := math.Atan2(py, px)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
