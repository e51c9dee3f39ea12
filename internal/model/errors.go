package model

import "errors"

// Validation errors for model values.
// Callers use errors.Is to distinguish them; the wrapped message carries
// the offending value.
var (
	// ErrInvalidCategory is returned when a category is outside the closed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidContext is returned when an app context is unknown.
	ErrInvalidContext = errors.New("invalid app context")

	// ErrRiskScoreRange is returned when a risk score is outside [0,100].
	ErrRiskScoreRange = errors.New("risk score out of range: must be 0-100")

	// ErrMissingField is returned when a mandatory verdict field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidSeverity is returned when a severity name is unknown.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidStatus is returned when a scan status name is unknown.
	ErrInvalidStatus = errors.New("invalid scan status")
)
