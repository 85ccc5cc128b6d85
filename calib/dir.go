package calib

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-hep.org/x/hep/hbook"
)

const ext = ".yoda"

// DirProvider serves maps stored on disk as <Root>/<path>/<validFrom>.yoda,
// validFrom being the first timestamp at which the map applies.
type DirProvider struct {
	Root string
}

// Fetch returns the map with the latest validFrom not after timestamp.
func (p DirProvider) Fetch(path string, timestamp int64) (*hbook.H2D, error) {
	dir := filepath.Join(p.Root, filepath.FromSlash(path))
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("calib: %w", err)
	}

	best, found := int64(0), false
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		from, err := strconv.ParseInt(strings.TrimSuffix(name, ext), 10, 64)
		if err != nil || from > timestamp {
			continue
		}
		if !found || from > best {
			best, found = from, true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s at %d", ErrNotFound, path, timestamp)
	}

	fname := filepath.Join(dir, strconv.FormatInt(best, 10)+ext)
	raw, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("calib: %w", err)
	}
	var h hbook.H2D
	if err := h.UnmarshalYODA(raw); err != nil {
		return nil, fmt.Errorf("calib: decode %s: %w", fname, err)
	}
	return &h, nil
}

// Store writes h under path, valid from validFrom on.
func (p DirProvider) Store(path string, validFrom int64, h *hbook.H2D) error {
	dir := filepath.Join(p.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("calib: %w", err)
	}
	raw, err := h.MarshalYODA()
	if err != nil {
		return fmt.Errorf("calib: encode %s: %w", path, err)
	}
	fname := filepath.Join(dir, strconv.FormatInt(validFrom, 10)+ext)
	if err := os.WriteFile(fname, raw, 0o644); err != nil {
		return fmt.Errorf("calib: %w", err)
	}
	return nil
}
