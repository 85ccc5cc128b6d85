package selection

import (
	"math"

	"github.com/decibelcooper/lambdapol/aod"
)

// Variation is the topological quantity scanned in a systematic study.
type Variation int

const (
	NoVariation Variation = iota
	VaryLifetime
	VaryCosPA
	VaryDCADaughters
	VaryDCAPos
	VaryDCANeg
)

var variationThresholds = [...][]float64{
	VaryLifetime:     {26, 27, 28, 29, 30, 31, 32, 33, 34, 35},
	VaryCosPA:        {0.992, 0.993, 0.9935, 0.994, 0.9945, 0.995, 0.9955, 0.996, 0.9965, 0.997},
	VaryDCADaughters: {0.8, 0.85, 0.9, 0.95, 1.0, 1.05, 1.1, 1.15, 1.2, 1.25},
	VaryDCAPos:       {0.05, 0.07, 0.1, 0.15, 0.18, 0.2, 0.22, 0.25, 0.28, 0.3},
	VaryDCANeg:       {0.05, 0.07, 0.1, 0.15, 0.18, 0.2, 0.22, 0.25, 0.28, 0.3},
}

// SystematicBins returns the discriminant value i+0.5 of every threshold i
// that v passes under sys. Lifetime and daughter DCA pass below the
// threshold, the others above it.
func SystematicBins(sys Variation, ev *aod.Event, v *aod.V0) []float64 {
	if sys <= NoVariation || int(sys) >= len(variationThresholds) {
		return nil
	}

	var x float64
	switch sys {
	case VaryLifetime:
		x = math.Abs(v.DistOverTotMom(ev.Vertex()) * aod.MassLambda)
	case VaryCosPA:
		x = v.CosPA
	case VaryDCADaughters:
		x = math.Abs(v.DCAV0Daughters)
	case VaryDCAPos:
		x = math.Abs(v.DCAPosToPV)
	case VaryDCANeg:
		x = math.Abs(v.DCANegToPV)
	}
	below := sys == VaryLifetime || sys == VaryDCADaughters

	var out []float64
	for i, cut := range variationThresholds[sys] {
		if (below && x < cut) || (!below && x > cut) {
			out = append(out, float64(i)+0.5)
		}
	}
	return out
}
