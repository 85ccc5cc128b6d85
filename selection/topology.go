package selection

import (
	"math"

	"github.com/decibelcooper/lambdapol/aod"
)

// V0Cuts are the hypothesis-independent topological cuts on a candidate.
type V0Cuts struct {
	MaxDCAV0ToPV    float64 `yaml:"maxDCAV0ToPV"`
	MinPt           float64 `yaml:"minPt"`
	MaxDCADaughters float64 `yaml:"maxDCADaughters"`
	MinCosPA        float64 `yaml:"minCosPA"`
	MinRadius       float64 `yaml:"minRadius"`
	MaxRadius       float64 `yaml:"maxRadius"`
	MaxLifetime     float64 `yaml:"maxLifetime"` // proper decay length, cm
	MaxRapidity     float64 `yaml:"maxRapidity"`

	// Lifetime and rapidity are evaluated with the mass of each enabled
	// species.
	AnalyzeLambda bool `yaml:"analyzeLambda"`
	AnalyzeK0s    bool `yaml:"analyzeK0s"`
}

func DefaultV0Cuts() V0Cuts {
	return V0Cuts{
		MaxDCAV0ToPV:    1.2,
		MinPt:           0,
		MaxDCADaughters: 0.2,
		MinCosPA:        0.9998,
		MinRadius:       1.5,
		MaxRadius:       100,
		MaxLifetime:     20,
		MaxRapidity:     0.8,
		AnalyzeLambda:   true,
	}
}

// PassesTopology reports whether v, reconstructed in ev, passes the
// topological selection.
func (c *V0Cuts) PassesTopology(ev *aod.Event, v *aod.V0) bool {
	if math.Abs(v.DCAV0ToPV) > c.MaxDCAV0ToPV {
		return false
	}
	if v.Pt() < c.MinPt {
		return false
	}
	if math.Abs(v.DCAV0Daughters) > c.MaxDCADaughters {
		return false
	}
	if v.CosPA < c.MinCosPA {
		return false
	}
	r := v.Radius()
	if r < c.MinRadius || r > c.MaxRadius {
		return false
	}

	dist := v.DistOverTotMom(ev.Vertex())
	if c.AnalyzeLambda && math.Abs(dist*aod.MassLambda) > c.MaxLifetime {
		return false
	}
	if c.AnalyzeK0s && math.Abs(dist*aod.MassK0Short) > c.MaxLifetime {
		return false
	}
	if c.AnalyzeLambda && math.Abs(v.YLambda()) > c.MaxRapidity {
		return false
	}
	if c.AnalyzeK0s && math.Abs(v.YK0Short()) > c.MaxRapidity {
		return false
	}
	return true
}
