package lambdapol

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/lambdapol/binning"
)

func TestFloatArrayFlags(t *testing.T) {
	edges := FloatArrayFlags{Array: []float64{-10, 10}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&edges, "vtxedge", "")

	spec := binning.AxisSpec{Bins: 5, Min: -10, Max: 10}
	require.NoError(t, edges.Override(&spec))
	assert.Equal(t, 5, spec.Bins, "unset flag keeps the spec")

	require.NoError(t, fs.Parse([]string{"-vtxedge", "-8", "-vtxedge", "0", "-vtxedge", "8"}))
	assert.True(t, edges.IsSet())
	assert.Equal(t, []float64{-8, 0, 8}, edges.Array)
	assert.Equal(t, "[-8 0 8]", edges.String())

	require.NoError(t, edges.Override(&spec))
	assert.Equal(t, []float64{-8, 0, 8}, spec.Edges)

	assert.Error(t, fs.Parse([]string{"-vtxedge", "x"}))

	bad := FloatArrayFlags{}
	require.NoError(t, bad.Set("3"))
	require.NoError(t, bad.Set("1"))
	assert.Error(t, bad.Override(&spec))
	assert.Equal(t, []float64{-8, 0, 8}, spec.Edges)
}

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(1.0, 1.2)
	labelled := 0
	for _, tk := range ticks {
		assert.GreaterOrEqual(t, tk.Value, 1.0-1e-9)
		assert.LessOrEqual(t, tk.Value, 1.2+1e-9)
		if tk.Label != "" {
			labelled++
		}
	}
	assert.GreaterOrEqual(t, labelled, 3)
	assert.Greater(t, len(ticks), labelled, "minor ticks")

	assert.Panics(t, func() { PreciseTicks{}.Ticks(1, 1) })
}

func TestPiTicks(t *testing.T) {
	var labels []string
	for _, tk := range (PiTicks{}).Ticks(0, 2*math.Pi) {
		if tk.Label != "" {
			labels = append(labels, tk.Label)
		}
	}
	assert.Equal(t, []string{"0", "π/2", "π", "3π/2", "2π"}, labels)

	assert.Equal(t, "-π/3", piLabel(-2, 6))
	assert.Equal(t, "3π", piLabel(3, 1))
}

func TestSavePlot(t *testing.T) {
	h1 := hbook.NewH1D(6, -1, 1)
	h1.Annotation()["name"] = "hSparseLambdaPol"
	h2 := hbook.NewH1D(6, -1, 1)
	for _, x := range []float64{-0.5, 0.1, 0.3, 0.7} {
		h1.Fill(x, 1)
		h2.Fill(-x, 2)
	}

	p := Overlay("Pol", "sin(phi* - psi)", h1, h2)
	assert.Equal(t, "Pol", p.Title.Text)

	out := filepath.Join(t.TempDir(), "pol.png")
	require.NoError(t, SavePlot(p, out))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
