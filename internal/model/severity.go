package model

import "fmt"

// Severity is the cosmetic risk tier used for colouring and the status
// indicator. It is derived from the risk score only.
//
// Design decision: We use iota-based constants rather than string constants
// for cheap comparisons and ordering. String() gives the lowercase name.
type Severity int

// Tier boundaries. A score <= SeverityMediumFloor is low, a score
// <= SeverityHighFloor is medium, anything above is high.
const (
	SeverityMediumFloor = 30
	SeverityHighFloor   = 70
)

const (
	// SeverityLow covers scores 0-30. Rendered green, "SECURE".
	SeverityLow Severity = iota

	// SeverityMedium covers scores 31-70. Rendered amber, "POTENTIAL RISK".
	SeverityMedium

	// SeverityHigh covers scores 71-100. Rendered red, "THREAT DETECTED".
	SeverityHigh
)

// SeverityOf maps a risk score to its tier.
func SeverityOf(score int) Severity {
	switch {
	case score > SeverityHighFloor:
		return SeverityHigh
	case score > SeverityMediumFloor:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	for _, v := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidSeverity, text)
}

// Headline returns the status indicator text for a settled verdict of this tier.
func (s Severity) Headline() string {
	switch s {
	case SeverityHigh:
		return "THREAT DETECTED"
	case SeverityMedium:
		return "POTENTIAL RISK"
	default:
		return "SECURE"
	}
}
