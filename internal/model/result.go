package model

import (
	"fmt"
	"slices"
)

// Risk thresholds.
// ActionThreshold gates whether a remediation action is offered at all.
// It is independent of the cosmetic severity tiers in severity.go and the
// two must not be conflated.
const (
	// MinRiskScore and MaxRiskScore bound every verdict.
	MinRiskScore = 0
	MaxRiskScore = 100

	// ActionThreshold: a verdict is high risk iff RiskScore > ActionThreshold.
	ActionThreshold = 50

	// OTPLockThreshold: the browser disables OTP input for an OTP Theft
	// verdict with RiskScore > OTPLockThreshold.
	OTPLockThreshold = 80
)

// AnalysisResult is the structured verdict produced by the classifier.
// It is immutable once produced; a new scan replaces it wholesale.
type AnalysisResult struct {
	// RiskScore is 0 (safe) to 100 (confirmed fraud).
	RiskScore int `json:"riskScore"`

	// Category is one of the nine closed labels.
	Category Category `json:"category"`

	// Flags are short descriptive tags, e.g. "Deepfake Pattern".
	Flags []string `json:"flags"`

	// TechnicalSignals explain why the input was flagged.
	// The first element is shown as the primary reason.
	TechnicalSignals []string `json:"technicalSignals"`

	// PreventiveAction is the automated action taken by the agent.
	PreventiveAction string `json:"preventiveAction"`

	// SafeActionAdvice tells the user what to do next.
	SafeActionAdvice string `json:"safeActionAdvice"`
}

// Validate checks the verdict against the response contract.
// Empty advice strings are accepted; only absent slices count as missing.
func (r AnalysisResult) Validate() error {
	if r.RiskScore < MinRiskScore || r.RiskScore > MaxRiskScore {
		return fmt.Errorf("%w: got %d", ErrRiskScoreRange, r.RiskScore)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, r.Category)
	}
	if r.Flags == nil {
		return fmt.Errorf("%w: flags", ErrMissingField)
	}
	if r.TechnicalSignals == nil {
		return fmt.Errorf("%w: technicalSignals", ErrMissingField)
	}
	return nil
}

// HighRisk reports whether the remediation action should be offered.
func (r AnalysisResult) HighRisk() bool {
	return IsHighRisk(r.RiskScore)
}

// IsHighRisk applies the strict ActionThreshold to a raw score.
func IsHighRisk(score int) bool {
	return score > ActionThreshold
}

// Severity returns the cosmetic severity tier of the verdict.
func (r AnalysisResult) Severity() Severity {
	return SeverityOf(r.RiskScore)
}

// PrimarySignal returns the first technical signal, or "" when there is none.
func (r AnalysisResult) PrimarySignal() string {
	if len(r.TechnicalSignals) == 0 {
		return ""
	}
	return r.TechnicalSignals[0]
}

// BlocksOTPInput reports whether the browser should disable OTP entry.
func (r AnalysisResult) BlocksOTPInput() bool {
	return r.Category == CategoryOTPTheft && r.RiskScore > OTPLockThreshold
}

// Clone returns a deep copy so that callers cannot alias the session's verdict.
func (r AnalysisResult) Clone() AnalysisResult {
	r.Flags = slices.Clone(r.Flags)
	r.TechnicalSignals = slices.Clone(r.TechnicalSignals)
	return r
}
