// Package stimulus tracks which visual stimulus the headset presents.
//
// Rendering happens elsewhere; this package only validates requested
// stimulus names and remembers the active one so the engine can report
// and log it.
package stimulus

import (
	"fmt"

	"github.com/mordilloSan/go-logger/logger"
)

// Kind names a presentable stimulus.
type Kind string

const (
	// KindIdle is a blank resting screen, shown at startup.
	KindIdle Kind = "idle"
	// KindOKN is the optokinetic nystagmus drum pattern.
	KindOKN Kind = "okn"
	// KindSaccades is the jumping fixation target.
	KindSaccades Kind = "saccades"
)

// Kinds lists every stimulus Show accepts, in help-listing order.
func Kinds() []Kind {
	return []Kind{KindOKN, KindIdle, KindSaccades}
}

// Display holds the currently presented stimulus.
type Display struct {
	current Kind
}

// NewDisplay creates a display showing the idle stimulus.
func NewDisplay() *Display {
	return &Display{current: KindIdle}
}

// Show switches to the named stimulus. Unknown names leave the display
// unchanged.
func (d *Display) Show(k Kind) error {
	for _, known := range Kinds() {
		if k == known {
			logger.Infof("Showing stimulus %q", k)
			d.current = k
			return nil
		}
	}
	return fmt.Errorf("unknown stimulus %q (available: %v)", k, Kinds())
}

// Current returns the stimulus on screen.
func (d *Display) Current() Kind {
	return d.current
}
