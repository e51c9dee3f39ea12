package session

import (
	"fmt"
	"time"
)

// Timings holds the durations of every deferred transition.
type Timings struct {
	// Settle is the pause between a verdict arriving and it being shown.
	Settle time.Duration

	// Close is the delay between collapsing the overlay and a completed
	// scan returning to idle.
	Close time.Duration

	// Dismiss is the delay between a dismissal and the verdict being cleared.
	Dismiss time.Duration

	// Action is how long the remediation action reports as processing.
	Action time.Duration
}

// DefaultTimings returns the standard durations.
func DefaultTimings() Timings {
	return Timings{
		Settle:  1500 * time.Millisecond,
		Close:   500 * time.Millisecond,
		Dismiss: 300 * time.Millisecond,
		Action:  1500 * time.Millisecond,
	}
}

// ZeroTimings returns timings with every delay set to zero.
// Deferred transitions still run on the clock, just immediately.
func ZeroTimings() Timings {
	return Timings{}
}

// Validate rejects negative durations.
func (t Timings) Validate() error {
	for name, d := range map[string]time.Duration{
		"settle":  t.Settle,
		"close":   t.Close,
		"dismiss": t.Dismiss,
		"action":  t.Action,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s is %v", ErrInvalidTimings, name, d)
		}
	}
	return nil
}
