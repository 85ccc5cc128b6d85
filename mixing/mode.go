package mixing

import (
	"errors"
	"fmt"

	"github.com/decibelcooper/lambdapol/aod"
)

// Mode selects how candidates are paired with event planes.
type Mode int

const (
	SameEvent Mode = iota // candidates against their own event plane
	Binned                // all pairs of a bin, planes of the partner
	Matched               // pairs of a bin gated by a kinematic match
	FIFO                  // recent pool partners with pair deduplication
)

var modeNames = [...]string{
	SameEvent: "same",
	Binned:    "binned",
	Matched:   "matched",
	FIFO:      "fifo",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("mixing: unknown mode")

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Run processes events in order under mode.
func (e *Engine) Run(mode Mode, events []aod.Event) error {
	if mode != SameEvent && !e.cfg.V0.AnalyzeLambda {
		return fmt.Errorf("mixing: %v mode needs v0.analyzeLambda", mode)
	}
	switch mode {
	case SameEvent:
		for i := range events {
			if err := e.ProcessEvent(&events[i]); err != nil {
				return err
			}
		}
	case Binned:
		e.MixBinned(events)
	case Matched:
		e.MixMatched(events)
	case FIFO:
		return e.MixFIFO(events)
	default:
		return fmt.Errorf("%w %v", ErrUnknownMode, mode)
	}
	return nil
}
