package aod

// Hypothesis is a parent-particle mass assignment for a V0.
type Hypothesis int

const (
	Lambda Hypothesis = iota
	AntiLambda
	K0Short
)

func (h Hypothesis) String() string {
	switch h {
	case Lambda:
		return "Lambda"
	case AntiLambda:
		return "AntiLambda"
	case K0Short:
		return "K0s"
	}
	return "Unknown"
}

// Mass returns the invariant mass of v under h.
func (h Hypothesis) Mass(v *V0) float64 {
	switch h {
	case Lambda:
		return v.MLambda()
	case AntiLambda:
		return v.MAntiLambda()
	default:
		return v.MK0Short()
	}
}
