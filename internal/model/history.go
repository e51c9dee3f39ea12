package model

import (
	"time"

	"github.com/google/uuid"
)

// SnippetLength is the maximum number of runes kept in HistoryItem.Snippet.
const SnippetLength = 60

// HistoryItem is a finished scan kept for the recent activity list.
// It lives only for the lifetime of the process.
type HistoryItem struct {
	AnalysisResult

	// ID is a random UUID.
	ID string `json:"id"`

	// Timestamp is when the verdict settled.
	Timestamp time.Time `json:"timestamp"`

	// Snippet is the beginning of the scanned text.
	Snippet string `json:"snippet"`

	// Source is the human label of the input.
	Source string `json:"source"`

	// Context is the app the scan was started from.
	Context AppContext `json:"context"`

	// Digest is the SHA3-256 of the full text.
	Digest string `json:"digest"`
}

// NewHistoryItem builds a history entry for a settled session.
// It returns false when the session carries no result.
func NewHistoryItem(s ScanSession, at time.Time) (HistoryItem, bool) {
	if s.Result == nil {
		return HistoryItem{}, false
	}
	id := s.ScanID
	if id == "" {
		id = uuid.NewString()
	}
	return HistoryItem{
		AnalysisResult: s.Result.Clone(),
		ID:             id,
		Timestamp:      at,
		Snippet:        Snippet(s.TargetText, SnippetLength),
		Source:         s.Source,
		Context:        s.Context,
		Digest:         TextDigest(s.TargetText),
	}, true
}

// Snippet truncates text to at most n runes, appending "..." when cut.
func Snippet(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
