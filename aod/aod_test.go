package aod

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoBodyMomentum is the daughter momentum of a decay at rest.
func twoBodyMomentum(m, m1, m2 float64) float64 {
	return math.Sqrt((m*m-(m1+m2)*(m1+m2))*(m*m-(m1-m2)*(m1-m2))) / (2 * m)
}

func TestV0Masses(t *testing.T) {
	p := twoBodyMomentum(MassLambda, MassProton, MassPionCharged)
	v := V0{PxPos: p, PxNeg: -p}
	assert.InDelta(t, MassLambda, v.MLambda(), 1e-9)
	assert.InDelta(t, 0, v.YLambda(), 1e-12)
	assert.Greater(t, math.Abs(v.MAntiLambda()-MassLambda), 0.01)

	w := v.Swapped()
	assert.InDelta(t, MassLambda, w.MAntiLambda(), 1e-9)

	k := twoBodyMomentum(MassK0Short, MassPionCharged, MassPionCharged)
	v = V0{PyPos: k, PyNeg: -k}
	assert.InDelta(t, MassK0Short, v.MK0Short(), 1e-9)
}

func TestV0Rapidity(t *testing.T) {
	v := V0{PxPos: 0.5, PzPos: 1.2, PxNeg: 0.3, PzNeg: 0.4}
	pz := v.Pz()
	e := math.Sqrt(v.P()*v.P() + MassLambda*MassLambda)
	assert.InDelta(t, 0.5*math.Log((e+pz)/(e-pz)), v.YLambda(), 1e-12)
	assert.Greater(t, v.YK0Short(), v.YLambda())
	assert.InDelta(t, math.Atanh(pz/v.P()), v.Eta(), 1e-12)
}

func TestReadWriteFile(t *testing.T) {
	events := []Event{
		{Index: 3, Run: 7, Timestamp: 100, PosZ: 2.5, CentFT0C: 35, Sel8: true, Selection: NoSameBunchPileup | IsGoodZvtxFT0vsPV, QxC: 1, PsiC: 0.5},
		{Index: 4, Run: 7, Timestamp: 101, PosZ: -1, CentFT0C: 12, RCTGood: true},
	}
	events[0].V0s = []V0{
		{ID: 0, Collision: 3, PxPos: 1, PzNeg: -0.5, CosPA: 0.999, Pos: Track{CrossedRows: 90, NSigmaPr: 0.5}},
		{ID: 1, Collision: 3, PyPos: 2, X: 1, Y: 1, Neg: Track{FoundClusters: 80, NSigmaPi: -1}},
	}

	fname := filepath.Join(t.TempDir(), "aod.root")
	require.NoError(t, WriteFile(fname, events))
	got, err := ReadFile(fname)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 3, got[0].Index)
	assert.Equal(t, 7, got[0].Run)
	assert.Equal(t, int64(100), got[0].Timestamp)
	assert.True(t, got[0].HasBits(IsGoodZvtxFT0vsPV))
	assert.False(t, got[0].HasBits(NoTimeFrameBorder))
	assert.InDelta(t, 0.5, got[0].PsiC, 1e-6)
	assert.True(t, got[1].RCTGood)
	assert.Empty(t, got[1].V0s)

	require.Len(t, got[0].V0s, 2)
	assert.Equal(t, 90, got[0].V0s[0].Pos.CrossedRows)
	assert.InDelta(t, 0.999, got[0].V0s[0].CosPA, 1e-6)
	assert.Equal(t, 80, got[0].V0s[1].Neg.FoundClusters)
	assert.InDelta(t, math.Sqrt2, got[0].V0s[1].Radius(), 1e-6)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "none.root"))
	assert.Error(t, err)
}
