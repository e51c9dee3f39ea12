package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/sentinel/internal/classifier"
	"github.com/nao1215/sentinel/internal/model"
)

// Recorder receives every verdict that settles.
type Recorder interface {
	Add(item model.HistoryItem)
}

// Snapshot is a consistent copy of the session and overlay state.
type Snapshot struct {
	Session model.ScanSession
	Overlay model.OverlayState

	// Version increases on every published change.
	Version uint64
}

// Controller owns the scan session state machine.
// All methods are safe for concurrent use.
type Controller struct {
	classifier classifier.Classifier
	clock      Clock
	timings    Timings
	logger     *slog.Logger
	recorder   Recorder
	newID      func() string

	mu      sync.Mutex
	session model.ScanSession
	overlay model.OverlayState
	version uint64
	timers  map[Timer]struct{}
	subs    map[uint64]*subscriber
	nextSub uint64
	closed  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for deferred transitions.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithTimings sets the deferred transition durations.
func WithTimings(t Timings) Option {
	return func(c *Controller) {
		c.timings = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder registers a recorder for settled verdicts.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// NewController creates a controller in the Idle state with protection
// active and the overlay closed.
func NewController(cls classifier.Classifier, opts ...Option) *Controller {
	c := &Controller{
		classifier: cls,
		clock:      RealClock(),
		timings:    DefaultTimings(),
		logger:     slog.Default(),
		newID:      uuid.NewString,
		session:    model.ScanSession{Status: model.StatusIdle},
		overlay:    model.OverlayState{Protected: true},
		timers:     make(map[Timer]struct{}),
		subs:       make(map[uint64]*subscriber),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartScan begins classifying text and returns the generation of the new
// scan. It is allowed from any state: the previous verdict is cleared, the
// status becomes Scanning and the overlay opens before StartScan returns.
// Classification runs on its own goroutine with ctx.
//
// After Shutdown, StartScan does nothing and returns 0.
func (c *Controller) StartScan(ctx context.Context, text, source string, appCtx model.AppContext) uint64 {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Warn("scan ignored after shutdown", "source", source)
		return 0
	}

	gen := c.session.Generation + 1
	c.session = model.ScanSession{
		Status:     model.StatusScanning,
		TargetText: text,
		Source:     source,
		Context:    appCtx,
		Generation: gen,
		ScanID:     c.newID(),
	}
	c.overlay.Open = true
	c.overlay.ActionProcessing = false
	c.publishLocked()
	scanID := c.session.ScanID
	c.mu.Unlock()

	c.logger.Debug("scan started",
		"scan_id", scanID,
		"generation", gen,
		"source", source,
		"context", string(appCtx),
		"digest", model.ShortDigest(text),
	)

	go c.classify(ctx, gen, text)
	return gen
}

// classify runs the classifier and reports back under gen.
func (c *Controller) classify(ctx context.Context, gen uint64, text string) {
	result, err := c.analyze(ctx, text)
	if err != nil {
		c.failed(gen, err)
		return
	}
	c.resolved(gen, result)
}

// analyze calls the classifier, turning a panic or a missing classifier
// into an error. An invalid verdict is replaced with the fallback.
func (c *Controller) analyze(ctx context.Context, text string) (result model.AnalysisResult, err error) {
	if c.classifier == nil {
		return model.AnalysisResult{}, ErrNoClassifier
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrClassifierPanic, r)
		}
	}()

	result = c.classifier.Analyze(ctx, text)
	if verr := result.Validate(); verr != nil {
		c.logger.Warn("classifier returned an invalid verdict, using fallback verdict",
			"classifier", c.classifier.Name(), "error", verr)
		result = classifier.Fallback()
	}
	return result, nil
}

// resolved schedules the settle transition for a verdict.
func (c *Controller) resolved(gen uint64, result model.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.session.Generation {
		c.logger.Debug("stale verdict discarded", "generation", gen, "current", c.session.Generation)
		return
	}

	c.scheduleLocked(c.timings.Settle, func() {
		if gen != c.session.Generation {
			c.logger.Debug("stale settle discarded", "generation", gen, "current", c.session.Generation)
			return
		}
		r := result.Clone()
		c.session.Status = model.StatusComplete
		c.session.Result = &r
		c.recordLocked()
		c.publishLocked()
	})
}

// failed moves the session to Error without retry.
func (c *Controller) failed(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.session.Generation {
		c.logger.Debug("stale failure discarded", "generation", gen, "error", err)
		return
	}

	c.logger.Error("classification failed", "scan_id", c.session.ScanID, "error", err)
	c.session.Status = model.StatusError
	c.session.Result = nil
	c.publishLocked()
}

// recordLocked passes the settled verdict to the recorder.
func (c *Controller) recordLocked() {
	if c.recorder == nil {
		return
	}
	if item, ok := model.NewHistoryItem(c.session, c.clock.Now()); ok {
		c.recorder.Add(item)
	}
}

// Dismiss collapses the overlay and, after Timings.Dismiss, returns the
// session to Idle with no verdict, whatever the status was.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissLocked()
}

func (c *Controller) dismissLocked() {
	if c.closed {
		return
	}
	c.overlay.Open = false
	c.publishLocked()

	gen := c.session.Generation
	c.scheduleLocked(c.timings.Dismiss, func() {
		if gen != c.session.Generation {
			return
		}
		c.session.Status = model.StatusIdle
		c.session.Result = nil
		c.publishLocked()
	})
}

// Act runs the remediation action for a completed high risk verdict.
// The overlay reports ActionProcessing for Timings.Action, then the
// session is dismissed.
func (c *Controller) Act() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrShutdown
	}
	if c.overlay.ActionProcessing {
		return ErrActionInProgress
	}
	s := c.session
	if s.Status != model.StatusComplete || s.Result == nil || !s.Result.HighRisk() {
		return ErrActionUnavailable
	}

	c.overlay.ActionProcessing = true
	c.publishLocked()

	c.logger.Info("remediation action started",
		"scan_id", s.ScanID,
		"context", string(s.Context),
		"preventive_action", s.Result.PreventiveAction,
	)

	gen := s.Generation
	c.scheduleLocked(c.timings.Action, func() {
		if gen != c.session.Generation {
			return
		}
		c.overlay.ActionProcessing = false
		c.dismissLocked()
	})
	return nil
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Session: c.session.Clone(),
		Overlay: c.overlay,
		Version: c.version,
	}
}

// scheduleLocked runs fn under the lock after d, unless the controller is
// shut down first.
func (c *Controller) scheduleLocked(d time.Duration, fn func()) {
	var t Timer
	t = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.timers, t)
		if c.closed {
			return
		}
		fn()
	})
	c.timers[t] = struct{}{}
}

// Shutdown stops every pending deferred transition and closes all
// subscriptions. In-flight classifications are not cancelled; their
// results are discarded when they arrive.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for t := range c.timers {
		t.Stop()
	}
	clear(c.timers)
	for id, sub := range c.subs {
		sub.close()
		delete(c.subs, id)
	}
}
