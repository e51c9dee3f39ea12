package model

import "fmt"

// ScanStatus is the state of the scan session state machine.
// Exactly one value is current at a time.
type ScanStatus int

const (
	// StatusIdle means no scan is in progress and nothing is prominently displayed.
	StatusIdle ScanStatus = iota

	// StatusScanning means a classification request is outstanding.
	StatusScanning

	// StatusComplete means a verdict has settled and is displayed.
	StatusComplete

	// StatusError means the classification could not be obtained at all.
	StatusError
)

// String returns the lowercase name of the status.
func (s ScanStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusScanning:
		return "scanning"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so that statuses appear
// as readable strings in JSON reports.
func (s ScanStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ScanStatus) UnmarshalText(text []byte) error {
	for _, v := range []ScanStatus{StatusIdle, StatusScanning, StatusComplete, StatusError} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
}
