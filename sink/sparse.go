package sink

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/lambdapol/binning"
)

// MaxDims is the largest dimension of a Sparse histogram.
const MaxDims = 8

// Dim is one labelled axis of a Sparse histogram. A Closed axis keeps
// values equal to its upper edge in the last bin.
type Dim struct {
	Label  string
	Axis   binning.Axis
	Closed bool
}

func (d Dim) find(x float64) int {
	if d.Closed {
		return d.Axis.FindBinClosed(x)
	}
	return d.Axis.FindBin(x)
}

type sparseKey [MaxDims]int

type sparseBin struct {
	n     int
	sumW  float64
	sumW2 float64
}

// Sparse is an N-dimensional histogram that only stores filled bins. A
// one-dimensional projection along every axis is kept up to date on each
// fill.
type Sparse struct {
	name string
	dims []Dim
	bins map[sparseKey]*sparseBin
	proj []*hbook.H1D

	entries int
	outside int
}

// NewSparse returns an empty histogram over dims.
func NewSparse(name string, dims ...Dim) (*Sparse, error) {
	if len(dims) == 0 || len(dims) > MaxDims {
		return nil, fmt.Errorf("sink: %s: %d dimensions, want 1 to %d", name, len(dims), MaxDims)
	}
	s := &Sparse{
		name: name,
		dims: dims,
		bins: make(map[sparseKey]*sparseBin),
		proj: make([]*hbook.H1D, len(dims)),
	}
	for i, d := range dims {
		if err := d.Axis.Validate(); err != nil {
			return nil, fmt.Errorf("sink: %s axis %q: %w", name, d.Label, err)
		}
		h := hbook.NewH1DFromEdges(d.Axis.Edges)
		h.Annotation()["name"] = s.name + "/" + d.Label
		h.Annotation()["title"] = d.Label
		s.proj[i] = h
	}
	return s, nil
}

func (s *Sparse) Name() string { return s.name }
func (s *Sparse) Dims() []Dim  { return s.dims }

// Fill adds weight w at coords. A fill with any coordinate outside its
// axis is counted but not stored.
func (s *Sparse) Fill(w float64, coords ...float64) error {
	if len(coords) != len(s.dims) {
		return fmt.Errorf("sink: %s: %d coordinates for %d dimensions", s.name, len(coords), len(s.dims))
	}
	s.entries++

	var k sparseKey
	for i, x := range coords {
		b := s.dims[i].find(x)
		if b < 0 {
			s.outside++
			return nil
		}
		k[i] = b
	}
	bin, ok := s.bins[k]
	if !ok {
		bin = &sparseBin{}
		s.bins[k] = bin
	}
	bin.n++
	bin.sumW += w
	bin.sumW2 += w * w

	for i, x := range coords {
		if s.dims[i].Closed && x == s.dims[i].Axis.Max() {
			x = math.Nextafter(x, math.Inf(-1))
		}
		s.proj[i].Fill(x, w)
	}
	return nil
}

// Entries returns the number of fills, including those outside the axes.
func (s *Sparse) Entries() int { return s.entries }

// Outside returns the number of fills dropped for lying outside an axis.
func (s *Sparse) Outside() int { return s.outside }

// FilledBins returns the number of stored bins.
func (s *Sparse) FilledBins() int { return len(s.bins) }

// Content returns the sum of weights in the bin containing coords.
func (s *Sparse) Content(coords ...float64) float64 {
	if len(coords) != len(s.dims) {
		return 0
	}
	var k sparseKey
	for i, x := range coords {
		b := s.dims[i].find(x)
		if b < 0 {
			return 0
		}
		k[i] = b
	}
	if bin, ok := s.bins[k]; ok {
		return bin.sumW
	}
	return 0
}

// Project returns the projection onto axis i.
func (s *Sparse) Project(i int) *hbook.H1D {
	if i < 0 || i >= len(s.proj) {
		return nil
	}
	return s.proj[i]
}

// ProjectLabel returns the projection onto the axis labelled label.
func (s *Sparse) ProjectLabel(label string) *hbook.H1D {
	for i, d := range s.dims {
		if d.Label == label {
			return s.proj[i]
		}
	}
	return nil
}
