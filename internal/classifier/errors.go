package classifier

import "errors"

// Errors that lead to the fallback verdict. They never leave this package
// through Analyze; they appear in logs and in Decode's return value.
var (
	// ErrEmptyInput is returned when there is no text to classify.
	ErrEmptyInput = errors.New("empty input text")

	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("empty response from classifier")

	// ErrMalformedResponse is returned when the response is not a JSON object.
	ErrMalformedResponse = errors.New("malformed classifier response")

	// ErrNoAPIKey is returned by NewGemini when the API key is empty.
	ErrNoAPIKey = errors.New("gemini API key is not set: export GEMINI_API_KEY or use --offline")
)
