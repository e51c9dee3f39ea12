package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/report"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/nao1215/sentinel/internal/session"
)

// DefaultConcurrency is the number of scans run at once when no limit is set.
const DefaultConcurrency = 3

// Job is one input to scan.
type Job struct {
	// Name identifies the job in logs, usually the scenario name.
	Name    string
	Text    string
	Source  string
	Context model.AppContext
}

// FromScenario converts a catalogue entry into a job.
func FromScenario(s scenario.Scenario) Job {
	return Job{
		Name:    s.Name,
		Text:    s.Text,
		Source:  s.Source,
		Context: s.Context,
	}
}

// Processor handles concurrent processing of multiple scans.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a controller factory rather than sharing one
// controller because a controller owns a single session and a new scan
// supersedes the previous one.
type Processor struct {
	// controllerFactory creates a new controller for each scan.
	controllerFactory func() *session.Controller

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	now func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger for batch processing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithNow sets the function used to timestamp reports.
func WithNow(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProcessor creates a Processor. The factory is called once per job.
func NewProcessor(controllerFactory func() *session.Controller, opts ...Option) *Processor {
	p := &Processor{
		controllerFactory: controllerFactory,
		concurrency:       DefaultConcurrency,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Run scans one job and waits for its settled outcome.
// A scan that ends in the Error status still yields a report; an error is
// returned only when ctx ends or the controller shuts down first.
func (p *Processor) Run(ctx context.Context, job Job) (*model.ScanReport, error) {
	ctrl := p.controllerFactory()
	defer ctrl.Shutdown()

	gen := ctrl.StartScan(ctx, job.Text, job.Source, job.Context)
	if gen == 0 {
		return nil, session.ErrShutdown
	}

	snap, err := ctrl.Await(ctx, gen)
	if err != nil {
		return nil, err
	}
	return report.NewScanReport(snap.Session, p.now()), nil
}

// ProcessBatch scans every job concurrently and returns the reports in
// job order.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
//
// A job that cannot be scanned for reasons other than cancellation is
// reported with the Error status so the batch stays complete. The error
// return is non-nil only when the batch was cancelled.
func (p *Processor) ProcessBatch(ctx context.Context, jobs []Job) (*report.Batch, error) {
	p.logger.Info("starting batch processing",
		"total_jobs", len(jobs),
		"concurrency", p.concurrency,
	)

	b := &report.Batch{
		Started: p.now(),
		Reports: make([]*model.ScanReport, len(jobs)),
	}
	startTime := time.Now()

	// Each goroutine writes only its own index.
	err := p.ProcessBatchWithCallback(ctx, jobs, func(r *model.ScanReport, index int) {
		b.Reports[index] = r
	})

	b.Duration = time.Since(startTime)
	p.logger.Info("batch processing complete",
		"total_jobs", len(jobs),
		"elapsed", b.Duration,
	)

	return b, err
}

// ProcessBatchWithCallback scans every job and calls callback for each
// finished report. This is useful for streaming results.
//
// The callback is called from the goroutine that completed the scan, so
// it must be safe for concurrent use if it touches shared state.
func (p *Processor) ProcessBatchWithCallback(
	ctx context.Context,
	jobs []Job,
	callback func(report *model.ScanReport, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p.logger.Debug("scanning",
				"job", job.Name,
				"context", string(job.Context),
				"index", i+1,
				"total", len(jobs),
			)

			r, err := p.Run(ctx, job)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				p.logger.Warn("scan failed", "job", job.Name, "error", err)
				r = p.failedReport(job)
			}

			p.logger.Debug("scan completed",
				"job", job.Name,
				"status", r.Status.String(),
				"risk_score", r.RiskScore(),
			)
			callback(r, i)
			return nil
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		p.logger.Warn("batch processing cancelled", "error", err)
	}
	return err
}

func (p *Processor) failedReport(job Job) *model.ScanReport {
	return report.NewScanReport(model.ScanSession{
		Status:     model.StatusError,
		TargetText: job.Text,
		Source:     job.Source,
		Context:    job.Context,
	}, p.now())
}
