package classifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/sentinel/internal/model"
)

// Replay answers with verdicts recorded for exact input texts.
// Texts are matched by their SHA3-256 digest; any other text gets the
// fallback verdict, exactly as if the network were down.
type Replay struct {
	mu         sync.RWMutex
	recordings map[string]model.AnalysisResult
	latency    time.Duration
	logger     *slog.Logger
}

// ReplayOption configures a Replay classifier.
type ReplayOption func(*Replay)

// WithLatency delays every answer by d to imitate a network round trip.
func WithLatency(d time.Duration) ReplayOption {
	return func(r *Replay) {
		r.latency = d
	}
}

// WithReplayLogger sets the logger.
func WithReplayLogger(logger *slog.Logger) ReplayOption {
	return func(r *Replay) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReplay creates a Replay classifier from a map of text to verdict.
func NewReplay(recordings map[string]model.AnalysisResult, opts ...ReplayOption) *Replay {
	r := &Replay{
		recordings: make(map[string]model.AnalysisResult, len(recordings)),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for text, result := range recordings {
		r.Record(text, result)
	}
	return r
}

// Record adds or replaces the verdict for text.
func (r *Replay) Record(text string, result model.AnalysisResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordings[model.TextDigest(text)] = result.Clone()
}

// Len returns the number of recordings.
func (r *Replay) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recordings)
}

// Name returns "replay".
func (r *Replay) Name() string {
	return "replay"
}

// Analyze returns the recorded verdict for text or Fallback().
// If ctx is cancelled during the simulated latency, the fallback is returned.
func (r *Replay) Analyze(ctx context.Context, text string) model.AnalysisResult {
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Warn("classification unavailable, using fallback verdict",
				"classifier", r.Name(), "error", ctx.Err())
			return Fallback()
		case <-timer.C:
		}
	}

	digest := model.TextDigest(text)

	r.mu.RLock()
	result, ok := r.recordings[digest]
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn("no recorded verdict, using fallback verdict",
			"classifier", r.Name(), "digest", model.ShortDigest(text))
		return Fallback()
	}
	return result.Clone()
}
