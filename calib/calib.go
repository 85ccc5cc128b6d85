// Package calib provides the acceptance-correction maps of the analysis.
// Maps are fetched by path and timestamp and cached for the current run.
package calib

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/lambdapol/aod"
)

var ErrNotFound = errors.New("calib: no object valid at timestamp")

// Provider fetches the acceptance map stored under path that is valid at
// timestamp.
type Provider interface {
	Fetch(path string, timestamp int64) (*hbook.H2D, error)
}

type grid interface {
	Dims() (c, r int)
	Z(c, r int) float64
}

// Map is an acceptance map over (eta, pT). The sum of weights of each
// cell is the acceptance of that cell.
type Map struct {
	h    *hbook.H2D
	grid grid
}

func NewMap(h *hbook.H2D) *Map {
	return &Map{h: h, grid: h.GridXYZ()}
}

// Value returns the acceptance at (eta, pt). Points outside the map and
// cells with no positive acceptance give 1.
func (m *Map) Value(eta, pt float64) float64 {
	nx, ny := m.grid.Dims()
	i := cell(eta, m.h.XMin(), m.h.XMax(), nx)
	j := cell(pt, m.h.YMin(), m.h.YMax(), ny)
	if i < 0 || j < 0 {
		return 1
	}
	v := m.grid.Z(i, j)
	if !(v > 0) {
		return 1
	}
	return v
}

func cell(x, min, max float64, n int) int {
	if !(x >= min) || x >= max {
		return -1
	}
	i := int(math.Floor((x - min) / (max - min) * float64(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// Cache holds the Lambda and AntiLambda maps of the current run. The maps
// are refetched only when the run changes or after Invalidate.
type Cache struct {
	provider Provider
	paths    map[aod.Hypothesis]string

	run     int
	valid   bool
	maps    map[aod.Hypothesis]*Map
	fetches int
}

func NewCache(p Provider, lambdaPath, antiLambdaPath string) *Cache {
	return &Cache{
		provider: p,
		paths: map[aod.Hypothesis]string{
			aod.Lambda:     lambdaPath,
			aod.AntiLambda: antiLambdaPath,
		},
		maps: make(map[aod.Hypothesis]*Map),
	}
}

// ForRun makes the maps valid at timestamp current for run. Nothing is
// fetched when run is already the cached run.
func (c *Cache) ForRun(run int, timestamp int64) error {
	if c.valid && c.run == run {
		return nil
	}
	c.valid = false
	for _, h := range []aod.Hypothesis{aod.Lambda, aod.AntiLambda} {
		path := c.paths[h]
		obj, err := c.provider.Fetch(path, timestamp)
		c.fetches++
		if err != nil {
			return fmt.Errorf("calib: run %d: %s: %w", run, path, err)
		}
		c.maps[h] = NewMap(obj)
	}
	c.run = run
	c.valid = true
	return nil
}

// Invalidate forces the next ForRun to refetch.
func (c *Cache) Invalidate() {
	c.valid = false
}

// Run returns the cached run, if any.
func (c *Cache) Run() (int, bool) { return c.run, c.valid }

// Fetches returns the number of provider fetches so far.
func (c *Cache) Fetches() int { return c.fetches }

// Value returns the acceptance of a candidate of hypothesis h at
// (eta, pt), or 1 when no valid map exists for h.
func (c *Cache) Value(h aod.Hypothesis, eta, pt float64) float64 {
	if !c.valid {
		return 1
	}
	m, ok := c.maps[h]
	if !ok {
		return 1
	}
	return m.Value(eta, pt)
}
