package scenario

import (
	"bytes"
	"testing"

	"github.com/nao1215/sentinel/internal/classifier"
	"github.com/nao1215/sentinel/internal/display"
	sentinellog "github.com/nao1215/sentinel/internal/log"
	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/session"
)

// runScenario drives one scenario through a session controller backed by
// the replay classifier and returns the settled snapshot.
func runScenario(t *testing.T, name string) session.Snapshot {
	t.Helper()

	c := Builtin()
	s, err := c.Get(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := sentinellog.NewSecureLogger(&bytes.Buffer{}, false)
	ctrl := session.NewController(
		classifier.NewReplay(c.Recordings(), classifier.WithReplayLogger(logger)),
		session.WithTimings(session.ZeroTimings()),
		session.WithLogger(logger),
	)
	t.Cleanup(ctrl.Shutdown)

	gen := ctrl.StartScan(t.Context(), s.Text, s.Source, s.Context)
	snap, err := ctrl.Await(t.Context(), gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Session.Status != model.StatusComplete || snap.Session.Result == nil {
		t.Fatalf("expected a completed scan, got %v", snap.Session.Status)
	}
	return snap
}

// TestScenarioVerdicts tests the end to end outcome of the built-ins.
func TestScenarioVerdicts(t *testing.T) {
	t.Parallel()

	t.Run("kyc sms is blocked at the sender", func(t *testing.T) {
		t.Parallel()

		snap := runScenario(t, NameMessages)
		r := snap.Session.Result
		if !r.Category.IsPhishingRelated() {
			t.Errorf("got %q, expected a phishing related category", r.Category)
		}
		if !r.HighRisk() {
			t.Errorf("got %d, expected a score above %d", r.RiskScore, model.ActionThreshold)
		}
		if label := display.Lookup(snap.Session.Context).ActionLabel; label != "BLOCK SENDER" {
			t.Errorf("got %q, expected %q", label, "BLOCK SENDER")
		}
	})

	t.Run("cyber arrest call is terminated", func(t *testing.T) {
		t.Parallel()

		snap := runScenario(t, NamePhone)
		if snap.Session.Result.RiskScore != 99 {
			t.Errorf("got %d, expected 99", snap.Session.Result.RiskScore)
		}
		if snap.Session.Source != "Live Call Analysis" {
			t.Errorf("got %q, expected %q", snap.Session.Source, "Live Call Analysis")
		}
		if label := display.Lookup(snap.Session.Context).ActionLabel; label != "TERMINATE CALL" {
			t.Errorf("got %q, expected %q", label, "TERMINATE CALL")
		}
	})

	t.Run("otp focus on giveaway domain locks input", func(t *testing.T) {
		t.Parallel()

		r := runScenario(t, NameBrowser).Session.Result
		if r.Category != model.CategoryOTPTheft || r.RiskScore != 100 {
			t.Errorf("got %q %d, expected %q 100", r.Category, r.RiskScore, model.CategoryOTPTheft)
		}
		if !r.BlocksOTPInput() {
			t.Error("expected the OTP field to be locked")
		}
	})

	t.Run("threat headline for every built-in", func(t *testing.T) {
		t.Parallel()

		for _, name := range Builtin().Names() {
			snap := runScenario(t, name)
			ind := display.IndicatorFor(snap.Session.Status, snap.Session.Result)
			if ind.Headline != "THREAT DETECTED" {
				t.Errorf("%s: got %q, expected %q", name, ind.Headline, "THREAT DETECTED")
			}
		}
	})
}
