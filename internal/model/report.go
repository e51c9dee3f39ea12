package model

import "time"

// ScanReport is the printable artefact of one finished scan.
// It combines the verdict with the display profile it was rendered under.
//
// Design decision: The display strings (title, headline, action label) are
// resolved once when the report is built so that report writers stay free of
// lookup logic and every output format shows the same wording.
type ScanReport struct {
	// ScanID identifies the scan.
	ScanID string `json:"scanId"`

	// DateScanned is when the report was produced.
	DateScanned time.Time `json:"dateScanned"`

	// Source is the human label of the input, e.g. "SMS Monitor".
	Source string `json:"source"`

	// Context is the app context the scan ran under.
	Context AppContext `json:"context"`

	// TargetText is the scanned text.
	TargetText string `json:"targetText"`

	// Digest is the SHA3-256 of TargetText.
	Digest string `json:"digest"`

	// Status is the final session status.
	Status ScanStatus `json:"status"`

	// Result is the verdict; nil only when Status is Error.
	Result *AnalysisResult `json:"result,omitempty"`

	// Severity is the cosmetic tier of the verdict.
	Severity Severity `json:"severity"`

	// Headline is the status indicator text, e.g. "THREAT DETECTED".
	Headline string `json:"headline"`

	// Title is the context profile title, e.g. "Voice Firewall".
	Title string `json:"title"`

	// ActionOffered is true when the remediation action would be shown.
	ActionOffered bool `json:"actionOffered"`

	// ActionLabel is the context specific action label, e.g. "TERMINATE CALL".
	// It is empty when no action is offered.
	ActionLabel string `json:"actionLabel,omitempty"`

	// Error describes why no verdict was obtained.
	Error string `json:"error,omitempty"`
}

// RiskScore returns the verdict score, or 0 when there is no verdict.
func (r *ScanReport) RiskScore() int {
	if r.Result == nil {
		return 0
	}
	return r.Result.RiskScore
}

// HasResult reports whether the report carries a verdict.
func (r *ScanReport) HasResult() bool {
	return r.Result != nil
}
