package mixing

import (
	"fmt"
	"math"

	"github.com/decibelcooper/lambdapol/aod"
	"github.com/decibelcooper/lambdapol/binning"
	"github.com/decibelcooper/lambdapol/config"
	"github.com/decibelcooper/lambdapol/kine"
	"github.com/decibelcooper/lambdapol/sink"
)

// Event-level observables.
const (
	HCentrality = "hCentrality"
	HRes        = "hpRes"
	HResSin     = "hpResSin"
)

// SparseName returns the name of the per-candidate observable obs for
// hypothesis h, e.g. hSparseLambdaPol.
func SparseName(h aod.Hypothesis, obs string) string {
	return "hSparse" + h.String() + obs
}

// observable is one per-candidate quantity. subDet quantities use the
// single-side planes and are only filled with analysis.useSubDet.
type observable struct {
	suffix string
	subDet bool
	value  func(o *kine.Observables, ang kine.Angles, acc float64) float64
}

var observables = []observable{
	{"CosPsiA", true, func(_ *kine.Observables, a kine.Angles, _ float64) float64 {
		return math.Cos(kine.ConstrainAngle(a.PsiA))
	}},
	{"CosPsiC", true, func(_ *kine.Observables, a kine.Angles, _ float64) float64 {
		return math.Cos(kine.ConstrainAngle(a.PsiC))
	}},
	{"SinPsiA", true, func(_ *kine.Observables, a kine.Angles, _ float64) float64 {
		return math.Sin(kine.ConstrainAngle(a.PsiA))
	}},
	{"SinPsiC", true, func(_ *kine.Observables, a kine.Angles, _ float64) float64 {
		return math.Sin(kine.ConstrainAngle(a.PsiC))
	}},
	{"CosPsi", false, func(_ *kine.Observables, a kine.Angles, _ float64) float64 {
		return math.Cos(kine.ConstrainAngle(a.Psi))
	}},
	{"SinPsi", false, func(_ *kine.Observables, a kine.Angles, _ float64) float64 {
		return math.Sin(kine.ConstrainAngle(a.Psi))
	}},
	{"PolA", true, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.PolA }},
	{"PolC", true, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.PolC }},
	{"Pol", false, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.Pol }},
	{"Polwgt", false, func(o *kine.Observables, _ kine.Angles, acc float64) float64 { return o.Pol / (accNorm * acc) }},
	{"_corr1a", false, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.SinPhiStar }},
	{"_corr1b", false, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.CosPhiStar }},
	{"_corr2a", false, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.SinThetaStar }},
	{"CosThetaStar", false, func(o *kine.Observables, _ kine.Angles, _ float64) float64 { return o.CosThetaStar }},
}

// accNorm scales the acceptance in the weighted polarisation.
const accNorm = 4 / 3.14

// Number of thresholds of a systematic variation.
const sysBins = 10

// species returns the hypotheses filled under cfg.
func species(cfg *config.Config) []aod.Hypothesis {
	var hs []aod.Hypothesis
	if cfg.V0.AnalyzeLambda {
		hs = append(hs, aod.Lambda, aod.AntiLambda)
	}
	if cfg.V0.AnalyzeK0s {
		hs = append(hs, aod.K0Short)
	}
	return hs
}

// extraAxis reports whether the per-candidate observables carry a fifth
// coordinate: the candidate eta, or the systematic threshold bin.
func extraAxis(cfg *config.Config) bool {
	return cfg.Analysis.NeedEtaAxis || cfg.Analysis.DoSystematic
}

// Book registers on reg every name the engine writes under cfg.
func Book(reg *sink.Registry, cfg *config.Config) error {
	ax := cfg.Analysis.Axes
	axis := func(name string, spec binning.AxisSpec) (binning.Axis, error) {
		a, err := spec.Axis()
		if err != nil {
			return binning.Axis{}, fmt.Errorf("mixing: %s axis: %w", name, err)
		}
		return a, nil
	}

	cent, err := axis("centrality", ax.Centrality)
	if err != nil {
		return err
	}
	if err := reg.AddH1D(HCentrality, cent); err != nil {
		return err
	}
	for _, name := range []string{HRes, HResSin} {
		if err := reg.AddProfile(name, ax.ResBins, ax.ResMin, ax.ResMax); err != nil {
			return err
		}
	}

	pt, err := axis("pt", ax.Pt)
	if err != nil {
		return err
	}
	val, err := axis("pol", ax.Pol)
	if err != nil {
		return err
	}
	var last sink.Dim
	switch {
	case cfg.Analysis.DoSystematic:
		last = sink.Dim{Label: "sys", Axis: binning.UniformAxis(sysBins, 0, sysBins)}
	case cfg.Analysis.NeedEtaAxis:
		eta, err := axis("bin", ax.Bin)
		if err != nil {
			return err
		}
		last = sink.Dim{Label: "eta", Axis: eta}
	}

	for _, h := range species(cfg) {
		spec := ax.Mass
		if h == aod.K0Short {
			spec = ax.MassK0s
		}
		mass, err := axis("mass", spec)
		if err != nil {
			return err
		}
		dims := []sink.Dim{
			{Label: "mass", Axis: mass},
			{Label: "pt", Axis: pt},
			{Label: "value", Axis: val, Closed: true},
			{Label: "centrality", Axis: cent},
		}
		if extraAxis(cfg) {
			dims = append(dims, last)
		}
		for _, o := range observables {
			if o.subDet && !cfg.Analysis.UseSubDet {
				continue
			}
			if err := reg.AddSparse(SparseName(h, o.suffix), dims...); err != nil {
				return err
			}
		}
	}
	return nil
}
