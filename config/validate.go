package config

import (
	"fmt"

	"github.com/decibelcooper/lambdapol/binning"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the configuration for values no analysis can run with.
func (cfg *Config) Validate() error {
	if cfg.V0.AnalyzeLambda == cfg.V0.AnalyzeK0s {
		return invalid("exactly one of v0.analyzeLambda and v0.analyzeK0s must be set")
	}
	if cfg.V0.MinRadius >= cfg.V0.MaxRadius {
		return invalid("v0.minRadius %v not below v0.maxRadius %v", cfg.V0.MinRadius, cfg.V0.MaxRadius)
	}
	if cfg.Event.OccupancyCut && cfg.Event.MinOccupancy > cfg.Event.MaxOccupancy {
		return invalid("event.minOccupancy %d above event.maxOccupancy %d", cfg.Event.MinOccupancy, cfg.Event.MaxOccupancy)
	}

	m := cfg.Mixing
	if m.NMix < 1 {
		return invalid("mixing.nMix %d, want at least 1", m.NMix)
	}
	if !(m.EtaMix > 0) || !(m.PtMix > 0) || !(m.PhiMix > 0) {
		return invalid("mixing tolerances must be positive")
	}
	if _, err := cfg.Index(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	a := cfg.Analysis
	if a.DoSystematic && (a.Sys < 1 || a.Sys > 5) {
		return invalid("analysis.sys %d, want 1 to 5", a.Sys)
	}
	if a.UseAccCorr && (a.AccPathL == "" || a.AccPathAL == "") {
		return invalid("analysis.useAccCorr needs accPathL and accPathAL")
	}
	for name, spec := range map[string]binning.AxisSpec{
		"mass":       a.Axes.Mass,
		"massK0s":    a.Axes.MassK0s,
		"pt":         a.Axes.Pt,
		"pol":        a.Axes.Pol,
		"centrality": a.Axes.Centrality,
		"bin":        a.Axes.Bin,
	} {
		if _, err := spec.Axis(); err != nil {
			return fmt.Errorf("%w: analysis.axes.%s: %v", ErrInvalid, name, err)
		}
	}
	if a.Axes.ResBins < 1 || !(a.Axes.ResMin < a.Axes.ResMax) {
		return invalid("analysis.axes resolution binning (%d, %v, %v)", a.Axes.ResBins, a.Axes.ResMin, a.Axes.ResMax)
	}
	return nil
}
