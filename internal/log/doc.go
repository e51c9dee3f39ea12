// Package log provides secure logging for sentinel, built on top of the
// standard slog package.
//
// Scan inputs are fraud attempts aimed at real people: they carry phone
// numbers, UPI IDs, one-time passwords and API credentials. The
// SecureHandler masks attributes whose key names or values look like
// secrets before they reach any sink:
//   - Credentials (Gemini API keys, x-goog-api-key, bearer tokens)
//   - Payment secrets (OTP, PIN, UPI PIN, CVV, card numbers)
//   - Identity numbers (Aadhaar, PAN)
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored. Callers log
// digests of scan text (model.ShortDigest) rather than the text itself.
//
// # Usage
//
//	logger := log.New(os.Stderr, log.WithVerbose(true))
//	logger.Debug("classifier request", "x-goog-api-key", key) // masked
//	slog.SetDefault(logger)
package log
