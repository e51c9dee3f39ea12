package model

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// TextDigest returns the hex encoded SHA3-256 digest of text.
// Digests identify scan inputs in logs and history without storing or
// printing the raw transcript.
func TextDigest(text string) string {
	sum := sha3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns the first 12 hex characters of TextDigest.
func ShortDigest(text string) string {
	return TextDigest(text)[:12]
}
