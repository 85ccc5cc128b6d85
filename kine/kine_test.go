package kine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/lambdapol/aod"
)

func TestConstrainAngle(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi / 2, 1.5 * math.Pi},
		{2 * math.Pi, 0},
		{5 * math.Pi, math.Pi},
		{-4 * math.Pi, 0},
	} {
		assert.InDelta(t, tc.want, ConstrainAngle(tc.in), 1e-12, "in=%v", tc.in)
	}
	for x := -20.0; x < 20; x += 0.37 {
		got := ConstrainAngle(x)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 2*math.Pi)
	}
}

func TestRestFrameBringsParentToRest(t *testing.T) {
	parent := P4(0.3, -1.2, 2.5, aod.MassLambda)
	cm := RestFrame(parent, parent)
	assert.InDelta(t, 0, cm.Px(), 1e-9)
	assert.InDelta(t, 0, cm.Py(), 1e-9)
	assert.InDelta(t, 0, cm.Pz(), 1e-9)
	assert.InDelta(t, aod.MassLambda, cm.E(), 1e-9)
}

// lambdaAlongY builds a Lambda moving along +y whose proton is emitted
// along +x in the rest frame.
func lambdaAlongY(p float64) *aod.V0 {
	const (
		m  = aod.MassLambda
		m1 = aod.MassProton
		m2 = aod.MassPionCharged
	)
	q := math.Sqrt((m*m-(m1+m2)*(m1+m2))*(m*m-(m1-m2)*(m1-m2))) / (2 * m)
	gb := p / m
	e1 := math.Sqrt(q*q + m1*m1)
	e2 := math.Sqrt(q*q + m2*m2)
	return &aod.V0{
		PxPos: q, PyPos: gb * e1,
		PxNeg: -q, PyNeg: gb * e2,
	}
}

func TestDecayMasses(t *testing.T) {
	v := lambdaAlongY(2)
	parent, daughter := Decay(v, aod.Lambda)
	assert.InDelta(t, aod.MassLambda, parent.M(), 1e-9)
	assert.InDelta(t, aod.MassProton, daughter.M(), 1e-9)
	assert.InDelta(t, v.MLambda(), parent.M(), 1e-9)

	parent, daughter = Decay(v, aod.AntiLambda)
	assert.InDelta(t, v.MAntiLambda(), parent.M(), 1e-9)
	assert.InDelta(t, v.PxNeg, daughter.Px(), 1e-12)

	parent, _ = Decay(v, aod.K0Short)
	assert.InDelta(t, v.MK0Short(), parent.M(), 1e-9)
}

func TestComputeKnownAngle(t *testing.T) {
	v := lambdaAlongY(2)
	parent, daughter := Decay(v, aod.Lambda)

	o := Compute(parent, daughter, Angles{PsiA: 0, PsiC: math.Pi, Psi: math.Pi / 2}, nil)
	assert.InDelta(t, 0, math.Sin(o.PhiStar), 1e-6)
	assert.InDelta(t, -1, o.Pol, 1e-6)
	assert.InDelta(t, 0, o.PolA, 1e-6)
	assert.InDelta(t, 0, o.PolC, 1e-6)
	assert.InDelta(t, 0, o.CosThetaStar, 1e-6)
	assert.InDelta(t, 1, o.SinThetaStar, 1e-6)
	assert.InDelta(t, 1, o.CosPhiStar, 1e-6)
}

type fixed float64

func (f fixed) Rand() float64 { return float64(f) }

func TestComputeRandomisedPhi(t *testing.T) {
	v := lambdaAlongY(2)
	parent, daughter := Decay(v, aod.Lambda)
	o := Compute(parent, daughter, Angles{Psi: 0}, fixed(math.Pi/2))
	assert.InDelta(t, math.Pi/2, o.PhiStar, 1e-12)
	assert.InDelta(t, 1, o.Pol, 1e-12)
}

func TestEventPlane(t *testing.T) {
	ev := &aod.Event{QxA: 1, QyA: 0, QxC: 0, QyC: 1, PsiA: 0, PsiC: math.Pi / 2}
	ang := EventPlane(ev, false)
	assert.InDelta(t, math.Atan2(1, -1), ang.Psi, 1e-12)

	// stored angles disagree with the raw Q-vectors: shifted uses the angles
	ev = &aod.Event{QxA: 2, QyA: 0, QxC: 2, QyC: 0, PsiA: math.Pi, PsiC: 0}
	ang = EventPlane(ev, true)
	assert.InDelta(t, 0, ang.Psi, 1e-12)
	ang = EventPlane(ev, false)
	assert.InDelta(t, 0, ang.Psi, 1e-12)

	cos, sin := Angles{PsiA: math.Pi / 2, PsiC: 0}.Resolution()
	assert.InDelta(t, 0, cos, 1e-12)
	assert.InDelta(t, 1, sin, 1e-12)
}

func TestBoostRoundTrip(t *testing.T) {
	parent := P4(1, 2, 3, aod.MassK0Short)
	d := P4(0.2, -0.1, 0.05, aod.MassPionCharged)
	back := fmom.Boost(RestFrame(parent, d), fmom.BoostOf(parent))
	require.NotNil(t, back)
	assert.InDelta(t, d.Px(), back.Px(), 1e-9)
	assert.InDelta(t, d.Py(), back.Py(), 1e-9)
	assert.InDelta(t, d.Pz(), back.Pz(), 1e-9)
}
