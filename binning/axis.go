// Package binning maps continuous event and candidate quantities onto
// discrete bins.
package binning

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBadAxis is returned for axes whose edges are not strictly increasing.
var ErrBadAxis = errors.New("binning: bad axis")

// Axis is a one dimensional binning over half-open intervals
// [Edges[i], Edges[i+1]).
type Axis struct {
	Edges []float64
}

// UniformAxis returns an axis of n equal-width bins spanning [min, max).
func UniformAxis(n int, min, max float64) Axis {
	edges := make([]float64, n+1)
	width := (max - min) / float64(n)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[n] = max
	return Axis{Edges: edges}
}

// VariableAxis returns an axis with the given bin edges.
func VariableAxis(edges ...float64) Axis {
	return Axis{Edges: append([]float64(nil), edges...)}
}

func (a Axis) Validate() error {
	if len(a.Edges) < 2 {
		return fmt.Errorf("%w: need at least 2 edges, got %d", ErrBadAxis, len(a.Edges))
	}
	for i := 1; i < len(a.Edges); i++ {
		if !(a.Edges[i] > a.Edges[i-1]) {
			return fmt.Errorf("%w: edge %d (%v) not above edge %d (%v)", ErrBadAxis, i, a.Edges[i], i-1, a.Edges[i-1])
		}
	}
	return nil
}

// NBins returns the number of bins on the axis.
func (a Axis) NBins() int {
	if len(a.Edges) < 2 {
		return 0
	}
	return len(a.Edges) - 1
}

func (a Axis) Min() float64 { return a.Edges[0] }
func (a Axis) Max() float64 { return a.Edges[len(a.Edges)-1] }

// FindBin returns the index of the bin containing x, or -1 when x is below
// the first edge, at or above the last edge, or NaN.
func (a Axis) FindBin(x float64) int {
	n := a.NBins()
	if n == 0 || !(x >= a.Edges[0]) || x >= a.Edges[n] {
		return -1
	}
	// first edge strictly above x, minus one
	return sort.Search(len(a.Edges), func(i int) bool { return a.Edges[i] > x }) - 1
}

// FindBinClosed is FindBin with the last bin closed, so that x equal to
// the last edge falls in it.
func (a Axis) FindBinClosed(x float64) int {
	n := a.NBins()
	if n > 0 && x == a.Edges[n] {
		return n - 1
	}
	return a.FindBin(x)
}

// Center returns the middle of bin i.
func (a Axis) Center(i int) float64 {
	return 0.5 * (a.Edges[i] + a.Edges[i+1])
}

// AxisSpec is the configuration form of an Axis: either explicit edges or
// a uniform (bins, min, max) triplet.
type AxisSpec struct {
	Edges []float64 `yaml:"edges,omitempty"`
	Bins  int       `yaml:"bins,omitempty"`
	Min   float64   `yaml:"min,omitempty"`
	Max   float64   `yaml:"max,omitempty"`
}

// Axis builds the axis described by the spec. Explicit edges win.
func (s AxisSpec) Axis() (Axis, error) {
	var a Axis
	switch {
	case len(s.Edges) > 0:
		a = VariableAxis(s.Edges...)
	case s.Bins > 0:
		if !(s.Max > s.Min) {
			return Axis{}, fmt.Errorf("%w: max %v not above min %v", ErrBadAxis, s.Max, s.Min)
		}
		a = UniformAxis(s.Bins, s.Min, s.Max)
	default:
		return Axis{}, fmt.Errorf("%w: neither edges nor bins given", ErrBadAxis)
	}
	if err := a.Validate(); err != nil {
		return Axis{}, err
	}
	return a, nil
}

// MustAxis is like Axis but panics on an invalid spec. It is meant for
// compiled-in defaults.
func (s AxisSpec) MustAxis() Axis {
	a, err := s.Axis()
	if err != nil {
		panic(err)
	}
	return a
}
