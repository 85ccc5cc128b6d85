package pool

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadSizes(t *testing.T) {
	_, err := New(0, 5)
	assert.Error(t, err)
	_, err = New(3, 0)
	assert.Error(t, err)
}

func TestFIFOEviction(t *testing.T) {
	const depth = 4
	p, err := New(1, depth)
	require.NoError(t, err)

	for id := 1; id <= depth; id++ {
		_, ok := p.Admit(0, id)
		assert.False(t, ok)
	}
	evicted, ok := p.Admit(0, depth+1)
	require.True(t, ok)
	assert.Equal(t, 1, evicted)

	assert.Equal(t, []int{2, 3, 4, 5}, p.Contents(0))
}

func TestPartnersMostRecentFirst(t *testing.T) {
	p, err := New(2, 3)
	require.NoError(t, err)

	assert.Empty(t, p.Partners(0, 0))

	p.Admit(0, 10)
	p.Admit(0, 11)
	p.Admit(1, 99)
	assert.Equal(t, []int{11, 10}, p.Partners(0, 0))

	p.Admit(0, 12)
	p.Admit(0, 13)
	assert.Equal(t, []int{13, 12, 11}, p.Partners(0, 0))
	assert.Equal(t, []int{13, 12}, p.Partners(0, 2))
	assert.Equal(t, []int{13, 12, 11}, p.Partners(0, 10))

	// partners never mutate
	assert.Equal(t, []int{11, 12, 13}, p.Contents(0))
	assert.Equal(t, []int{99}, p.Contents(1))
}

func TestBoundedUnderRandomAdmits(t *testing.T) {
	const (
		nbins = 7
		depth = 5
	)
	p, err := New(nbins, depth)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	last := make([][]int, nbins)
	for id := 0; id < 2000; id++ {
		bin := rng.IntN(nbins)
		p.Admit(bin, id)
		last[bin] = append(last[bin], id)
		for b := 0; b < nbins; b++ {
			require.LessOrEqual(t, p.Len(b), depth)
		}
	}
	for b := 0; b < nbins; b++ {
		want := last[b]
		if len(want) > depth {
			want = want[len(want)-depth:]
		}
		assert.Equal(t, want, p.Contents(b), "bin %d", b)
	}
}
