package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/lambdapol/binning"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	idx, err := cfg.Index()
	require.NoError(t, err)
	assert.Equal(t, 40, idx.NBins())

	assert.Equal(t, 5, cfg.Mixing.NMix)
	assert.True(t, cfg.V0.AnalyzeLambda)
	assert.False(t, cfg.Random.Psi || cfg.Random.PsiAC || cfg.Random.Phi)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
mixing:
  nMix: 10
  vertex:
    edges: [-10, -5, 0, 5, 10]
random:
  phi: true
  seed: 7
v0:
  minCosPA: 0.999
analysis:
  useSubDet: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Mixing.NMix)
	assert.Equal(t, 0.1, cfg.Mixing.EtaMix)
	assert.Equal(t, []float64{-10, -5, 0, 5, 10}, cfg.Mixing.Vertex.Edges)
	assert.True(t, cfg.Random.Phi)
	assert.Equal(t, uint64(7), cfg.Random.Seed)
	assert.Equal(t, 0.999, cfg.V0.MinCosPA)
	assert.Equal(t, 1.2, cfg.V0.MaxDCAV0ToPV)
	assert.True(t, cfg.Analysis.UseSubDet)

	idx, err := cfg.Index()
	require.NoError(t, err)
	assert.Equal(t, 32, idx.NBins())
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "mixing: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "mixing:\n  nmixx: 3\n"))
	assert.Error(t, err, "unknown key")

	_, err = Load(writeFile(t, "mixing:\n  nMix: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(c *Config){
		"both species":     func(c *Config) { c.V0.AnalyzeK0s = true },
		"no species":       func(c *Config) { c.V0.AnalyzeLambda = false },
		"radius window":    func(c *Config) { c.V0.MinRadius = 200 },
		"occupancy window": func(c *Config) { c.Event.OccupancyCut, c.Event.MinOccupancy = true, 2000 },
		"eta tolerance":    func(c *Config) { c.Mixing.EtaMix = 0 },
		"vertex axis":      func(c *Config) { c.Mixing.Vertex.Edges = []float64{1, 1} },
		"sys":              func(c *Config) { c.Analysis.DoSystematic, c.Analysis.Sys = true, 6 },
		"acceptance paths": func(c *Config) { c.Analysis.UseAccCorr = true },
		"pol axis":         func(c *Config) { c.Analysis.Axes.Pol = binning.AxisSpec{Edges: []float64{1, 0}} },
		"res binning":      func(c *Config) { c.Analysis.Axes.ResBins = 0 },
	} {
		c := Default()
		mutate(c)
		assert.ErrorIs(t, c.Validate(), ErrInvalid, name)
	}

	c := Default()
	c.V0.AnalyzeLambda, c.V0.AnalyzeK0s = false, true
	assert.NoError(t, c.Validate())
}
