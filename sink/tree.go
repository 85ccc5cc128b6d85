package sink

import (
	"fmt"
	"slices"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Branches carrying the bin content next to the per-axis bin centres.
const (
	BranchEntries = "entries"
	BranchSumW    = "sumw"
	BranchSumW2   = "sumw2"
)

// WriteTree stores the filled bins of s in dir as a tree named after s.
// Each entry is one bin: its centre along every axis, in a branch named
// after the axis label, and its fill count and sums of weights.
func (s *Sparse) WriteTree(dir riofs.Directory) error {
	var (
		centres = make([]float64, len(s.dims))
		n       int64
		sumW    float64
		sumW2   float64
	)
	wvars := make([]rtree.WriteVar, 0, len(s.dims)+3)
	for i, d := range s.dims {
		wvars = append(wvars, rtree.WriteVar{Name: d.Label, Value: &centres[i]})
	}
	wvars = append(wvars,
		rtree.WriteVar{Name: BranchEntries, Value: &n},
		rtree.WriteVar{Name: BranchSumW, Value: &sumW},
		rtree.WriteVar{Name: BranchSumW2, Value: &sumW2},
	)

	w, err := rtree.NewWriter(dir, s.name, wvars)
	if err != nil {
		return fmt.Errorf("sink: could not create tree %q: %w", s.name, err)
	}
	for _, k := range s.sortedKeys() {
		bin := s.bins[k]
		for i, d := range s.dims {
			centres[i] = d.Axis.Center(k[i])
		}
		n, sumW, sumW2 = int64(bin.n), bin.sumW, bin.sumW2
		if _, err := w.Write(); err != nil {
			w.Close()
			return fmt.Errorf("sink: could not write tree %q: %w", s.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("sink: could not close tree %q: %w", s.name, err)
	}
	return nil
}

// ReadTree adds the bins stored by WriteTree under the name of s. The
// axes of s must match the ones the tree was written with. Projections
// are refilled at the bin centres.
func (s *Sparse) ReadTree(dir riofs.Directory) error {
	o, err := dir.Get(s.name)
	if err != nil {
		return fmt.Errorf("sink: could not retrieve tree %q: %w", s.name, err)
	}
	t, ok := o.(rtree.Tree)
	if !ok {
		return fmt.Errorf("sink: object %q is a %T, not a tree", s.name, o)
	}

	var (
		centres = make([]float64, len(s.dims))
		n       int64
		sumW    float64
		sumW2   float64
	)
	rvars := make([]rtree.ReadVar, 0, len(s.dims)+3)
	for i, d := range s.dims {
		rvars = append(rvars, rtree.ReadVar{Name: d.Label, Value: &centres[i]})
	}
	rvars = append(rvars,
		rtree.ReadVar{Name: BranchEntries, Value: &n},
		rtree.ReadVar{Name: BranchSumW, Value: &sumW},
		rtree.ReadVar{Name: BranchSumW2, Value: &sumW2},
	)

	r, err := rtree.NewReader(t, rvars)
	if err != nil {
		return fmt.Errorf("sink: could not create reader for %q: %w", s.name, err)
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		var k sparseKey
		for i, x := range centres {
			b := s.dims[i].find(x)
			if b < 0 {
				return fmt.Errorf("entry %d: %s %v outside the axis", ctx.Entry, s.dims[i].Label, x)
			}
			k[i] = b
		}
		bin, ok := s.bins[k]
		if !ok {
			bin = &sparseBin{}
			s.bins[k] = bin
		}
		bin.n += int(n)
		bin.sumW += sumW
		bin.sumW2 += sumW2
		s.entries += int(n)
		for i, x := range centres {
			s.proj[i].Fill(x, sumW)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sink: could not read tree %q: %w", s.name, err)
	}
	return nil
}

func (s *Sparse) sortedKeys() []sparseKey {
	keys := make([]sparseKey, 0, len(s.bins))
	for k := range s.bins {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b sparseKey) int {
		return slices.Compare(a[:], b[:])
	})
	return keys
}

// WriteROOT writes every sparse histogram of r to a new ROOT file, one
// tree each.
func (r *Registry) WriteROOT(fname string) error {
	f, err := groot.Create(fname)
	if err != nil {
		return fmt.Errorf("sink: could not create %q: %w", fname, err)
	}
	for _, name := range r.order {
		s := r.entries[name].sparse
		if s == nil {
			continue
		}
		if err := s.WriteTree(f); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sink: could not close %q: %w", fname, err)
	}
	return nil
}

// ReadROOT adds the content of a file written by WriteROOT to the sparse
// histograms booked in r.
func (r *Registry) ReadROOT(fname string) error {
	f, err := groot.Open(fname)
	if err != nil {
		return fmt.Errorf("sink: could not open %q: %w", fname, err)
	}
	defer f.Close()

	for _, name := range r.order {
		s := r.entries[name].sparse
		if s == nil {
			continue
		}
		if err := s.ReadTree(f); err != nil {
			return err
		}
	}
	return nil
}
