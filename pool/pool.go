// Package pool keeps, for every mixing bin, a bounded history of the most
// recently processed event ids.
//
// Events are admitted only after they have been used as a mixing primary,
// so partners handed out for an event are always strictly earlier events.
package pool

import "fmt"

// ring is a fixed-capacity FIFO of event ids. The oldest id sits at head.
type ring struct {
	ids   []int
	head  int
	count int
}

func (r *ring) push(id int) (evicted int, ok bool) {
	depth := len(r.ids)
	if r.count < depth {
		r.ids[(r.head+r.count)%depth] = id
		r.count++
		return 0, false
	}
	evicted = r.ids[r.head]
	r.ids[r.head] = id
	r.head = (r.head + 1) % depth
	return evicted, true
}

// at returns the i-th most recent id, i=0 being the newest.
func (r *ring) at(i int) int {
	depth := len(r.ids)
	return r.ids[(r.head+r.count-1-i)%depth]
}

// Pool holds one bounded FIFO per bin. It is not safe for concurrent use.
type Pool struct {
	depth int
	bins  []ring
}

// New returns a pool for nbins bins, each holding at most depth ids.
func New(nbins, depth int) (*Pool, error) {
	if nbins <= 0 {
		return nil, fmt.Errorf("pool: invalid number of bins %d", nbins)
	}
	if depth <= 0 {
		return nil, fmt.Errorf("pool: invalid mixing depth %d", depth)
	}
	p := &Pool{depth: depth, bins: make([]ring, nbins)}
	for i := range p.bins {
		p.bins[i].ids = make([]int, depth)
	}
	return p, nil
}

// Depth returns the configured maximum number of ids per bin.
func (p *Pool) Depth() int { return p.depth }

// NBins returns the number of bins.
func (p *Pool) NBins() int { return len(p.bins) }

// Len returns the current number of ids held for bin.
func (p *Pool) Len(bin int) int { return p.bins[bin].count }

// Partners returns up to limit ids of bin, most recent first. A limit
// outside (0, Depth] means Depth. The pool is not modified.
func (p *Pool) Partners(bin, limit int) []int {
	if limit <= 0 || limit > p.depth {
		limit = p.depth
	}
	r := &p.bins[bin]
	n := min(limit, r.count)
	out := make([]int, n)
	for i := range out {
		out[i] = r.at(i)
	}
	return out
}

// Admit appends id to the bin's history. When the history was already
// full the oldest id is dropped and returned with ok set.
func (p *Pool) Admit(bin, id int) (evicted int, ok bool) {
	return p.bins[bin].push(id)
}

// Contents returns the ids of bin from oldest to newest.
func (p *Pool) Contents(bin int) []int {
	r := &p.bins[bin]
	out := make([]int, r.count)
	for i := range out {
		out[i] = r.ids[(r.head+i)%p.depth]
	}
	return out
}
