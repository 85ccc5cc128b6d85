package kine

import (
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/decibelcooper/lambdapol/aod"
)

// Angles are the event-plane reference angles of one event: ZDC A side,
// C side and the combined plane.
type Angles struct {
	PsiA, PsiC, Psi float64
}

// EventPlane returns the event-plane angles of ev. The combined plane is
// the direction of Q_C - Q_A. With shifted set the Q-vectors are first
// rebuilt from their magnitude and the stored (shift-corrected) angles.
func EventPlane(ev *aod.Event, shifted bool) Angles {
	qxA, qyA := ev.QxA, ev.QyA
	qxC, qyC := ev.QxC, ev.QyC
	if shifted {
		qA := math.Hypot(qxA, qyA)
		qC := math.Hypot(qxC, qyC)
		qxA, qyA = qA*math.Cos(ev.PsiA), qA*math.Sin(ev.PsiA)
		qxC, qyC = qC*math.Cos(ev.PsiC), qC*math.Sin(ev.PsiC)
	}
	return Angles{
		PsiA: ev.PsiA,
		PsiC: ev.PsiC,
		Psi:  math.Atan2(qyC-qyA, qxC-qxA),
	}
}

// Resolution returns cos and sin of the A/C event-plane difference.
func (a Angles) Resolution() (cos, sin float64) {
	d := ConstrainAngle(a.PsiA - a.PsiC)
	return math.Cos(d), math.Sin(d)
}

// Source draws random numbers. distuv.Uniform satisfies it.
type Source interface {
	Rand() float64
}

// Observables are the decay-angle quantities of one (parent, daughter)
// pair.
type Observables struct {
	PhiStar      float64 // daughter azimuth in the parent rest frame, [0, 2pi)
	CosThetaStar float64
	SinThetaStar float64

	// sin(phi* - psi) for the A side, C side and combined planes.
	PolA, PolC, Pol float64

	SinPhiStar, CosPhiStar float64
}

// Compute boosts daughter into the rest frame of parent and evaluates the
// observables against ang. When rnd is not nil the azimuth is replaced by
// a value drawn from it.
func Compute(parent, daughter fmom.P4, ang Angles, rnd Source) Observables {
	cm := RestFrame(parent, daughter)

	phi := math.Atan2(cm.Py(), cm.Px())
	if rnd != nil {
		phi = rnd.Rand()
	}
	phi = ConstrainAngle(phi)

	var o Observables
	o.PhiStar = phi
	if p := Mag(cm); p > 0 {
		o.CosThetaStar = cm.Pz() / p
	}
	o.SinThetaStar = math.Sqrt(math.Max(0, 1-o.CosThetaStar*o.CosThetaStar))
	o.PolA = math.Sin(ConstrainAngle(phi - ang.PsiA))
	o.PolC = math.Sin(ConstrainAngle(phi - ang.PsiC))
	o.Pol = math.Sin(ConstrainAngle(phi - ang.Psi))
	o.SinPhiStar = math.Sin(phi)
	o.CosPhiStar = math.Cos(phi)
	return o
}
