package sink

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/lambdapol/binning"
)

var ErrDuplicate = errors.New("sink: name already booked")

type entry struct {
	h1     *hbook.H1D
	prof   *hbook.P1D
	sparse *Sparse
}

// Registry is a Sink that routes each write to the histogram booked under
// its name. One-dimensional histograms take (x), profiles take (x, y) and
// sparse histograms take one coordinate per axis.
type Registry struct {
	entries map[string]entry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

func (r *Registry) add(name string, e entry) error {
	if _, dup := r.entries[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.entries[name] = e
	r.order = append(r.order, name)
	return nil
}

// AddH1D books a one-dimensional histogram over ax.
func (r *Registry) AddH1D(name string, ax binning.Axis) error {
	if err := ax.Validate(); err != nil {
		return fmt.Errorf("sink: %s: %w", name, err)
	}
	h := hbook.NewH1DFromEdges(ax.Edges)
	h.Annotation()["name"] = name
	return r.add(name, entry{h1: h})
}

// AddProfile books a profile of y against x with n uniform bins in
// [min, max).
func (r *Registry) AddProfile(name string, n int, min, max float64) error {
	if n <= 0 || !(min < max) {
		return fmt.Errorf("sink: %s: %w", name, binning.ErrBadAxis)
	}
	p := hbook.NewP1D(n, min, max)
	p.Annotation()["name"] = name
	return r.add(name, entry{prof: p})
}

// AddSparse books an N-dimensional sparse histogram.
func (r *Registry) AddSparse(name string, dims ...Dim) error {
	s, err := NewSparse(name, dims...)
	if err != nil {
		return err
	}
	return r.add(name, entry{sparse: s})
}

// Booked reports whether name has been booked.
func (r *Registry) Booked(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the booked names in booking order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) H1D(name string) *hbook.H1D     { return r.entries[name].h1 }
func (r *Registry) Profile(name string) *hbook.P1D { return r.entries[name].prof }
func (r *Registry) Sparse(name string) *Sparse     { return r.entries[name].sparse }

// Record fills name with unit weight. Writing to a name that was never
// booked, or with the wrong number of coordinates, panics.
func (r *Registry) Record(name string, coords ...float64) {
	r.RecordWeighted(name, 1, coords...)
}

// RecordWeighted fills name with weight w.
func (r *Registry) RecordWeighted(name string, w float64, coords ...float64) {
	e, ok := r.entries[name]
	if !ok {
		panic(fmt.Sprintf("sink: %q not booked", name))
	}
	switch {
	case e.h1 != nil:
		if len(coords) != 1 {
			panic(fmt.Sprintf("sink: %q takes 1 coordinate, got %d", name, len(coords)))
		}
		e.h1.Fill(coords[0], w)
	case e.prof != nil:
		if len(coords) != 2 {
			panic(fmt.Sprintf("sink: %q takes 2 coordinates, got %d", name, len(coords)))
		}
		e.prof.Fill(coords[0], coords[1], w)
	default:
		if err := e.sparse.Fill(w, coords...); err != nil {
			panic(err)
		}
	}
}

type yodaMarshaler interface {
	MarshalYODA() ([]byte, error)
}

// WriteYODA writes every booked object to w in YODA format, in booking
// order. Sparse histograms are written as their one-dimensional
// projections; WriteROOT keeps their full content.
func (r *Registry) WriteYODA(w io.Writer) error {
	for _, name := range r.order {
		e := r.entries[name]
		var objs []yodaMarshaler
		switch {
		case e.h1 != nil:
			objs = append(objs, e.h1)
		case e.prof != nil:
			objs = append(objs, e.prof)
		default:
			for i := range e.sparse.Dims() {
				objs = append(objs, e.sparse.Project(i))
			}
		}
		for _, o := range objs {
			raw, err := o.MarshalYODA()
			if err != nil {
				return fmt.Errorf("sink: marshal %s: %w", name, err)
			}
			if _, err := w.Write(raw); err != nil {
				return fmt.Errorf("sink: write %s: %w", name, err)
			}
		}
	}
	return nil
}

// Summary returns, for each sparse histogram with at least one fill, its
// entry count. Names are sorted.
func (r *Registry) Summary() []string {
	var out []string
	for name, e := range r.entries {
		if e.sparse == nil || e.sparse.Entries() == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %d entries", name, e.sparse.Entries()))
	}
	sort.Strings(out)
	return out
}
