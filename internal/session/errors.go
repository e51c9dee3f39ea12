package session

import "errors"

// Session errors.
var (
	// ErrActionUnavailable is returned by Act when there is no completed
	// high risk verdict to act on.
	ErrActionUnavailable = errors.New("remediation action is not available: no completed high risk verdict")

	// ErrActionInProgress is returned by Act while a previous action is processing.
	ErrActionInProgress = errors.New("remediation action already in progress")

	// ErrNoClassifier is the failure recorded when the controller has no classifier.
	ErrNoClassifier = errors.New("no classifier configured")

	// ErrClassifierPanic is the failure recorded when the classifier panics.
	ErrClassifierPanic = errors.New("classifier panicked")

	// ErrSuperseded is returned by Await when a newer scan started first.
	ErrSuperseded = errors.New("scan superseded by a newer scan")

	// ErrShutdown is returned after the controller has been shut down.
	ErrShutdown = errors.New("session controller is shut down")

	// ErrInvalidTimings is returned when a duration is negative.
	ErrInvalidTimings = errors.New("invalid timings: durations must be non-negative")
)
