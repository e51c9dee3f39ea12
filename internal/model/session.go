package model

// SourceManual is the source label used for free text submitted by the user.
const SourceManual = "Manual Input"

// ScanSession is the state of the current scan.
// The session controller owns the only mutable instance; everything else
// sees copies.
type ScanSession struct {
	// Status is the current state machine state.
	Status ScanStatus `json:"status"`

	// Result is nil whenever Status is Idle (after a dismiss) or Scanning.
	Result *AnalysisResult `json:"result,omitempty"`

	// TargetText is the exact text submitted for classification.
	TargetText string `json:"targetText"`

	// Source is the human label of where the text came from, e.g. "Incoming Call".
	Source string `json:"source"`

	// Context selects the display profile.
	Context AppContext `json:"context"`

	// Generation increases by one on every scan start. Asynchronous
	// completions carrying an older generation are discarded.
	Generation uint64 `json:"generation"`

	// ScanID identifies the scan that produced the current state.
	ScanID string `json:"scanId,omitempty"`
}

// Clone returns a deep copy of the session.
func (s ScanSession) Clone() ScanSession {
	if s.Result != nil {
		r := s.Result.Clone()
		s.Result = &r
	}
	return s
}

// OverlayState holds the agent sheet flags. They are independent of the scan
// status: closing the sheet never resets the status on its own.
type OverlayState struct {
	// Open is true while the sheet is expanded.
	Open bool `json:"open"`

	// Protected is the cosmetic Active/Paused flag of the DPI layer.
	Protected bool `json:"protected"`

	// ActionProcessing is true while the remediation action runs.
	ActionProcessing bool `json:"actionProcessing"`
}

// ProtectionLabel returns "Active" or "Paused".
func (o OverlayState) ProtectionLabel() string {
	if o.Protected {
		return "Active"
	}
	return "Paused"
}
