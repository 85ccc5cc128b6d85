package sink

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/lambdapol/binning"
)

func TestRegistryROOTRoundTrip(t *testing.T) {
	book := func() *Registry {
		reg := NewRegistry()
		require.NoError(t, reg.AddH1D("hCentrality", binning.UniformAxis(8, 0, 80)))
		require.NoError(t, reg.AddSparse("hSparseLambdaPol", testDims()...))
		require.NoError(t, reg.AddSparse("hSparseLambdaPolwgt", testDims()...))
		return reg
	}

	fills := []struct {
		w      float64
		coords []float64
	}{
		{1, []float64{1.115, 2, 0.5}},
		{2, []float64{1.116, 2.5, 0.6}},
		{0.5, []float64{1.19, 0.5, -0.9}},
		{1, []float64{1.105, 5, 1}},
	}
	reg := book()
	reg.Record("hCentrality", 30)
	for _, f := range fills {
		reg.RecordWeighted("hSparseLambdaPol", f.w, f.coords...)
	}

	fname := filepath.Join(t.TempDir(), "sparse.root")
	require.NoError(t, reg.WriteROOT(fname))

	got := book()
	require.NoError(t, got.ReadROOT(fname))

	want := reg.Sparse("hSparseLambdaPol")
	s := got.Sparse("hSparseLambdaPol")
	assert.Equal(t, want.FilledBins(), s.FilledBins())
	assert.Equal(t, want.Entries(), s.Entries())
	for _, f := range fills {
		assert.Equal(t, want.Content(f.coords...), s.Content(f.coords...), "%v", f.coords)
	}
	assert.Equal(t, 3.0, s.Content(1.115, 2, 0.5))
	for k, bin := range want.bins {
		require.Contains(t, s.bins, k)
		assert.Equal(t, *bin, *s.bins[k])
	}
	assert.InDelta(t, want.ProjectLabel("pol").SumW(), s.ProjectLabel("pol").SumW(), 1e-12)

	assert.Zero(t, got.Sparse("hSparseLambdaPolwgt").FilledBins())

	// reading twice accumulates
	require.NoError(t, got.ReadROOT(fname))
	assert.Equal(t, 6.0, s.Content(1.115, 2, 0.5))
}

func TestRegistryReadROOTMissingTree(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddSparse("hSparseLambdaPol", testDims()...))
	fname := filepath.Join(t.TempDir(), "sparse.root")
	require.NoError(t, reg.WriteROOT(fname))

	other := NewRegistry()
	require.NoError(t, other.AddSparse("hSparseK0sPol", testDims()...))
	assert.Error(t, other.ReadROOT(fname))
}
