// Package config loads and validates the analysis configuration from YAML
// files. Every value left out of the file keeps its default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/lambdapol/binning"
	"github.com/decibelcooper/lambdapol/selection"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the top-level analysis configuration.
type Config struct {
	Event    selection.EventCuts    `yaml:"event"`
	V0       selection.V0Cuts       `yaml:"v0"`
	Daughter selection.DaughterCuts `yaml:"daughter"`
	Mixing   MixingConfig           `yaml:"mixing"`
	Random   RandomConfig           `yaml:"random"`
	Analysis AnalysisConfig         `yaml:"analysis"`
}

// MixingConfig controls event binning and the pairing strategies.
type MixingConfig struct {
	// Pool depth and maximum number of partners per event.
	NMix int `yaml:"nMix"`

	// Kinematic-match tolerances.
	EtaMix float64 `yaml:"etaMix"`
	PtMix  float64 `yaml:"ptMix"`
	PhiMix float64 `yaml:"phiMix"`

	Vertex     binning.AxisSpec `yaml:"vertex"`
	Centrality binning.AxisSpec `yaml:"centrality"`
}

// RandomConfig switches the angle randomisations used to check that a
// signal is not an artefact.
type RandomConfig struct {
	Psi   bool   `yaml:"psi"`
	PsiAC bool   `yaml:"psiAC"`
	Phi   bool   `yaml:"phi"`
	Seed  uint64 `yaml:"seed"`
}

// AnalysisConfig selects the filled observables and their axes.
type AnalysisConfig struct {
	ShiftedQ     bool `yaml:"shiftedQ"`
	UseSubDet    bool `yaml:"useSubDet"`
	NeedEtaAxis  bool `yaml:"needEtaAxis"`
	DoSystematic bool `yaml:"doSystematic"`
	Sys          int  `yaml:"sys"`

	UseAccCorr bool   `yaml:"useAccCorr"`
	AccPathL   string `yaml:"accPathL"`
	AccPathAL  string `yaml:"accPathAL"`

	Axes Axes `yaml:"axes"`
}

// Axes are the histogram axes of the booked observables.
type Axes struct {
	Mass       binning.AxisSpec `yaml:"mass"`
	MassK0s    binning.AxisSpec `yaml:"massK0s"`
	Pt         binning.AxisSpec `yaml:"pt"`
	Pol        binning.AxisSpec `yaml:"pol"`
	Centrality binning.AxisSpec `yaml:"centrality"`
	// Optional last axis: candidate eta.
	Bin binning.AxisSpec `yaml:"bin"`

	// Uniform centrality binning of the resolution profiles.
	ResBins int     `yaml:"resBins"`
	ResMin  float64 `yaml:"resMin"`
	ResMax  float64 `yaml:"resMax"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Event:    selection.DefaultEventCuts(),
		V0:       selection.DefaultV0Cuts(),
		Daughter: selection.DefaultDaughterCuts(),
		Mixing: MixingConfig{
			NMix:       5,
			EtaMix:     0.1,
			PtMix:      0.1,
			PhiMix:     0.1,
			Vertex:     binning.AxisSpec{Bins: 5, Min: -10, Max: 10},
			Centrality: binning.AxisSpec{Bins: 8, Min: 0, Max: 80},
		},
		Random: RandomConfig{Seed: 1},
		Analysis: AnalysisConfig{
			Sys: 1,
			Axes: Axes{
				Mass:       binning.AxisSpec{Bins: 100, Min: 1.0, Max: 1.2},
				MassK0s:    binning.AxisSpec{Bins: 100, Min: 0.4, Max: 0.6},
				Pt:         binning.AxisSpec{Edges: []float64{0.2, 0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 4.0, 5.0, 6.5, 8.0, 10.0, 100.0}},
				Pol:        binning.AxisSpec{Edges: []float64{-1.0, -0.6, -0.2, 0, 0.2, 0.6, 1.0}},
				Centrality: binning.AxisSpec{Edges: []float64{0, 10, 40, 80}},
				Bin:        binning.AxisSpec{Edges: []float64{-0.8, -0.4, -0.2, 0, 0.2, 0.4, 0.8}},
				ResBins:    8,
				ResMin:     0,
				ResMax:     80,
			},
		},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// An empty path gives the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays data on cfg. Unknown keys are an error.
func (cfg *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Index returns the mixing bin index described by the configuration.
func (cfg *Config) Index() (binning.Index, error) {
	vz, err := cfg.Mixing.Vertex.Axis()
	if err != nil {
		return binning.Index{}, fmt.Errorf("mixing vertex axis: %w", err)
	}
	cent, err := cfg.Mixing.Centrality.Axis()
	if err != nil {
		return binning.Index{}, fmt.Errorf("mixing centrality axis: %w", err)
	}
	return binning.NewIndex(vz, cent)
}
