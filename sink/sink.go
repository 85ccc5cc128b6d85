// Package sink receives the per-candidate and per-event observables of
// the analysis. A Sink is written to by name; the coordinates follow the
// axes the name was booked with.
package sink

// Sink accepts observable writes.
type Sink interface {
	Record(name string, coords ...float64)
}

// Fill is one recorded write.
type Fill struct {
	Name   string
	Coords []float64
}

// Recorder keeps every write in memory, in order.
type Recorder struct {
	Fills []Fill
}

func (r *Recorder) Record(name string, coords ...float64) {
	c := make([]float64, len(coords))
	copy(c, coords)
	r.Fills = append(r.Fills, Fill{Name: name, Coords: c})
}

// Named returns the writes to name.
func (r *Recorder) Named(name string) []Fill {
	var out []Fill
	for _, f := range r.Fills {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

func (r *Recorder) Count(name string) int {
	n := 0
	for _, f := range r.Fills {
		if f.Name == name {
			n++
		}
	}
	return n
}

// Reset drops all recorded writes.
func (r *Recorder) Reset() { r.Fills = r.Fills[:0] }
