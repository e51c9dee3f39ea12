package batch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/sentinel/internal/classifier"
	sentinellog "github.com/nao1215/sentinel/internal/log"
	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/nao1215/sentinel/internal/session"
)

func quietLogger() *slog.Logger {
	return sentinellog.NewSecureLogger(&bytes.Buffer{}, false)
}

func factoryFor(cls classifier.Classifier) func() *session.Controller {
	return func() *session.Controller {
		return session.NewController(cls,
			session.WithTimings(session.ZeroTimings()),
			session.WithLogger(quietLogger()),
		)
	}
}

func builtinJobs() []Job {
	var jobs []Job
	for _, s := range scenario.Builtin().All() {
		jobs = append(jobs, FromScenario(s))
	}
	return jobs
}

// countingClassifier tracks how many calls run at once.
type countingClassifier struct {
	current atomic.Int32
	peak    atomic.Int32
	delay   time.Duration
}

func (c *countingClassifier) Name() string { return "counting" }

func (c *countingClassifier) Analyze(ctx context.Context, _ string) model.AnalysisResult {
	n := c.current.Add(1)
	defer c.current.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
	}
	return classifier.Fallback()
}

type panickingClassifier struct{}

func (panickingClassifier) Name() string { return "panicking" }

func (panickingClassifier) Analyze(context.Context, string) model.AnalysisResult {
	panic("boom")
}

// TestNewProcessor tests the Processor constructor.
func TestNewProcessor(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(factoryFor(nil))
		if p.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, p.concurrency)
		}
		if p.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		if p := NewProcessor(factoryFor(nil), WithConcurrency(5)); p.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", p.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		if p := NewProcessor(factoryFor(nil), WithConcurrency(0)); p.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, p.concurrency)
		}
	})
}

// TestFromScenario tests the job conversion.
func TestFromScenario(t *testing.T) {
	t.Parallel()

	s, err := scenario.Builtin().Get(scenario.NamePhone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job := FromScenario(s)
	if job.Name != s.Name || job.Text != s.Text || job.Source != s.Source || job.Context != s.Context {
		t.Errorf("unexpected job %+v", job)
	}
}

// TestRun tests a single scan.
func TestRun(t *testing.T) {
	t.Parallel()

	c := scenario.Builtin()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewProcessor(
		factoryFor(classifier.NewReplay(c.Recordings(), classifier.WithReplayLogger(quietLogger()))),
		WithLogger(quietLogger()),
		WithNow(func() time.Time { return fixed }),
	)

	s, _ := c.Get(scenario.NameWallet)
	r, err := p.Run(t.Context(), FromScenario(s))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.RiskScore() != 95 || r.ActionLabel != "BLOCK TRANSACTION" {
		t.Errorf("unexpected report %+v", r)
	}
	if !r.DateScanned.Equal(fixed) {
		t.Errorf("got %v, expected %v", r.DateScanned, fixed)
	}
}

// TestProcessBatch tests batch processing.
func TestProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("processes every job in order", func(t *testing.T) {
		t.Parallel()

		c := scenario.Builtin()
		p := NewProcessor(
			factoryFor(classifier.NewReplay(c.Recordings(), classifier.WithReplayLogger(quietLogger()))),
			WithLogger(quietLogger()),
		)

		jobs := builtinJobs()
		b, err := p.ProcessBatch(t.Context(), jobs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(b.Reports) != len(jobs) {
			t.Fatalf("got %d reports, expected %d", len(b.Reports), len(jobs))
		}
		for i, r := range b.Reports {
			if r == nil {
				t.Fatalf("report %d is nil", i)
			}
			if r.Context != jobs[i].Context {
				t.Errorf("report %d: got %q, expected %q", i, r.Context, jobs[i].Context)
			}
		}
		if s := b.Summary(); s.Threats != len(jobs) {
			t.Errorf("got %d threats, expected %d", s.Threats, len(jobs))
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		cls := &countingClassifier{delay: 20 * time.Millisecond}
		p := NewProcessor(factoryFor(cls), WithConcurrency(2), WithLogger(quietLogger()))

		jobs := make([]Job, 6)
		for i := range jobs {
			jobs[i] = Job{Name: "job", Text: "text", Source: model.SourceManual, Context: model.ContextMessages}
		}
		if _, err := p.ProcessBatch(t.Context(), jobs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak := cls.peak.Load(); peak > 2 {
			t.Errorf("got %d concurrent scans, expected at most 2", peak)
		}
	})

	t.Run("failed scans are reported", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(factoryFor(panickingClassifier{}), WithLogger(quietLogger()))
		b, err := p.ProcessBatch(t.Context(), builtinJobs()[:2])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range b.Reports {
			if r.Status != model.StatusError || r.HasResult() {
				t.Errorf("expected an error report, got %+v", r)
			}
		}
		if s := b.Summary(); s.Failed != 2 {
			t.Errorf("got %d failed, expected 2", s.Failed)
		}
	})

	t.Run("returns error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		p := NewProcessor(factoryFor(&countingClassifier{delay: time.Second}), WithLogger(quietLogger()))
		_, err := p.ProcessBatch(ctx, builtinJobs())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, expected context.Canceled", err)
		}
	})

	t.Run("callback sees every index", func(t *testing.T) {
		t.Parallel()

		c := scenario.Builtin()
		p := NewProcessor(
			factoryFor(classifier.NewReplay(c.Recordings(), classifier.WithReplayLogger(quietLogger()))),
			WithLogger(quietLogger()),
		)

		var seen atomic.Int32
		err := p.ProcessBatchWithCallback(t.Context(), builtinJobs(), func(r *model.ScanReport, _ int) {
			if r != nil {
				seen.Add(1)
			}
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if int(seen.Load()) != c.Len() {
			t.Errorf("got %d callbacks, expected %d", seen.Load(), c.Len())
		}
	})
}
