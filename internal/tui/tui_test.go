package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/sentinel/internal/classifier"
	"github.com/nao1215/sentinel/internal/history"
	sentinellog "github.com/nao1215/sentinel/internal/log"
	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/nao1215/sentinel/internal/session"
)

func newTestModel(t *testing.T) (Model, *session.Controller) {
	t.Helper()

	logger := sentinellog.NewSecureLogger(&bytes.Buffer{}, false)
	catalog := scenario.Builtin()
	log := history.NewLog(history.DefaultCapacity)
	ctrl := session.NewController(
		classifier.NewReplay(catalog.Recordings(), classifier.WithReplayLogger(logger)),
		session.WithTimings(session.ZeroTimings()),
		session.WithLogger(logger),
		session.WithRecorder(log),
	)
	t.Cleanup(ctrl.Shutdown)

	m := New(ctrl,
		WithContext(t.Context()),
		WithCatalog(catalog),
		WithHistory(log),
		WithPick(func(int) int { return 0 }),
	)
	return m, ctrl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// settled waits for the current scan and feeds its snapshot to the model.
func settled(t *testing.T, m Model, ctrl *session.Controller) Model {
	t.Helper()
	snap, err := ctrl.Await(t.Context(), ctrl.Snapshot().Session.Generation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return press(t, m, snapshotMsg{snap: snap})
}

// TestDock tests app switching.
func TestDock(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)

	testCases := []struct {
		name     string
		key      tea.Msg
		expected model.AppContext
	}{
		{"digit selects phone", runes("3"), model.ContextPhone},
		{"tab moves right", tea.KeyMsg{Type: tea.KeyTab}, model.ContextWallet},
		{"digit selects qr", runes("6"), model.ContextQR},
		{"tab wraps", tea.KeyMsg{Type: tea.KeyTab}, model.ContextDashboard},
		{"shift tab wraps back", tea.KeyMsg{Type: tea.KeyShiftTab}, model.ContextQR},
		{"out of range digit is ignored", runes("9"), model.ContextQR},
	}

	for _, tc := range testCases {
		m = press(t, m, tc.key)
		if got := m.currentApp(); got != tc.expected {
			t.Errorf("%s: got %q, expected %q", tc.name, got, tc.expected)
		}
	}
}

// TestScanFromApp tests scanning the selected app's scenario.
func TestScanFromApp(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	m = press(t, m, runes("2"), runes("s"))

	snap := ctrl.Snapshot()
	if snap.Session.Context != model.ContextMessages || !snap.Overlay.Open {
		t.Fatalf("expected a messages scan with the sheet open, got %+v", snap)
	}

	m = settled(t, m, ctrl)
	view := m.View()
	for _, want := range []string{"THREAT DETECTED", "92/100", "KYC Fraud", "BLOCK SENDER", "Message Filter"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m = press(t, m, runes("a"))
	if m.notice != "" {
		t.Errorf("unexpected notice %q", m.notice)
	}
}

// TestScanFromDashboard tests that the dashboard has nothing to scan.
func TestScanFromDashboard(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	m = press(t, m, runes("s"))

	if ctrl.Snapshot().Session.Generation != 0 {
		t.Error("expected no scan from the dashboard")
	}
	if m.notice == "" {
		t.Error("expected a notice")
	}
}

// TestManualCheck tests the manual risk check input.
func TestManualCheck(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	m = press(t, m, runes("m"))
	if !m.manual || !ctrl.Snapshot().Overlay.Open {
		t.Fatal("expected manual mode with the sheet open")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.manual || m.notice == "" {
		t.Error("empty input must not start a scan")
	}

	m = press(t, m, runes("Win a free phone at http://prize.example"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.manual {
		t.Error("expected manual mode to end")
	}

	snap := ctrl.Snapshot()
	if snap.Session.Source != model.SourceManual || snap.Session.Context != model.ContextMessages {
		t.Errorf("unexpected session %+v", snap.Session)
	}
	if snap.Session.TargetText != "Win a free phone at http://prize.example" {
		t.Errorf("got %q", snap.Session.TargetText)
	}

	m = settled(t, m, ctrl)
	if r := m.snap.Session.Result; r == nil || !classifier.IsFallback(*r) {
		t.Errorf("expected the fallback verdict for unrecorded text, got %+v", r)
	}
}

// TestManualCancel tests leaving manual mode.
func TestManualCancel(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	m = press(t, m, runes("m"), runes("abc"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.manual {
		t.Error("expected manual mode to end")
	}
	if ctrl.Snapshot().Session.Generation != 0 {
		t.Error("expected no scan")
	}
}

// TestOverlayKeys tests open, close, dismiss and protection keys.
func TestOverlayKeys(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)

	m = press(t, m, runes("o"))
	if !ctrl.Snapshot().Overlay.Open {
		t.Error("expected the sheet to open")
	}
	m = press(t, m, runes("c"))
	if ctrl.Snapshot().Overlay.Open {
		t.Error("expected the sheet to close")
	}

	m = press(t, m, runes("p"))
	if ctrl.Snapshot().Overlay.Protected || m.notice != "Protection paused." {
		t.Errorf("expected protection paused, notice %q", m.notice)
	}
	m = press(t, m, snapshotMsg{snap: ctrl.Snapshot()})
	if !strings.Contains(m.View(), "DPI Protocol • Paused") {
		t.Error("expected paused protocol label")
	}

	m = press(t, m, runes("a"))
	if m.notice != "No threat to act on." {
		t.Errorf("got %q, expected %q", m.notice, "No threat to act on.")
	}

	m = press(t, m, runes("4"), runes("s"))
	m = settled(t, m, ctrl)
	press(t, m, runes("d"))
	waitSnapshot(t, ctrl, func(s session.Snapshot) bool {
		return s.Session.Status == model.StatusIdle && s.Session.Result == nil
	})
}

func waitSnapshot(t *testing.T, ctrl *session.Controller, cond func(session.Snapshot) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond(ctrl.Snapshot()) {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for snapshot")
		}
		time.Sleep(time.Millisecond)
	}
}

// TestOTPLock tests the browser OTP field.
func TestOTPLock(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	m = press(t, m, runes("5"))
	if !strings.Contains(m.View(), "_ _ _ _ _ _") {
		t.Error("expected an open OTP field before scanning")
	}

	m = press(t, m, runes("s"))
	m = settled(t, m, ctrl)
	if !strings.Contains(m.View(), "Keyboard Input Disabled") {
		t.Error("expected the OTP field to be locked")
	}
}

// TestIdleSheetHistory tests the recent activity list.
func TestIdleSheetHistory(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	m = press(t, m, runes("o"), snapshotMsg{snap: ctrl.Snapshot()})
	if !strings.Contains(m.View(), "No scans yet.") {
		t.Error("expected empty history")
	}

	m = press(t, m, runes("3"), runes("s"))
	m = settled(t, m, ctrl)
	ctrl.Close()
	waitSnapshot(t, ctrl, func(s session.Snapshot) bool { return s.Session.Status == model.StatusIdle })
	ctrl.OpenOverlay()
	m = press(t, m, snapshotMsg{snap: ctrl.Snapshot()})

	view := m.View()
	if !strings.Contains(view, "Live Call Analysis") || !strings.Contains(view, "99 Impersonation") {
		t.Errorf("expected the phone scan in recent activity, got:\n%s", view)
	}
}

// TestScanLogTick tests the scanning log cycle.
func TestScanLogTick(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(t, m, scanLogTickMsg{})
	if m.scanLog != 0 {
		t.Error("scanning log must not advance while idle")
	}

	m.snap.Session.Status = model.StatusScanning
	for range len(scanningMessages) + 1 {
		m = press(t, m, scanLogTickMsg{})
	}
	if m.scanLog != 1 {
		t.Errorf("got %d, expected the log to wrap to 1", m.scanLog)
	}

	lines := scanningLines(2)
	if len(lines) != 3 || lines[0] != scanningMessages[2] || lines[2] != scanningMessages[0] {
		t.Errorf("unexpected lines %v", lines)
	}
}

// TestTrafficLog tests the cosmetic activity log.
func TestTrafficLog(t *testing.T) {
	t.Parallel()

	l := NewTrafficLog(TrafficKeep, func(int) int { return 0 })
	if got := len(l.Lines()); got != 5 {
		t.Fatalf("got %d initial lines, expected 5", got)
	}

	at := time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)
	for range 10 {
		l.Tick(at)
	}
	lines := l.Lines()
	if len(lines) != TrafficKeep {
		t.Fatalf("got %d lines, expected %d", len(lines), TrafficKeep)
	}
	if lines[len(lines)-1] != "[09:30:15] Packet 4f:1a verified secure." {
		t.Errorf("got %q", lines[len(lines)-1])
	}
}

// TestQuit tests quitting.
func TestQuit(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _ := newTestModel(t)
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

// TestFeedClosed tests that the program ends when the controller shuts down.
func TestFeedClosed(t *testing.T) {
	t.Parallel()

	m, ctrl := newTestModel(t)
	ctrl.Shutdown()

	msg := waitForSnapshot(m.feed)()
	for {
		if _, ok := msg.(feedClosedMsg); ok {
			break
		}
		msg = waitForSnapshot(m.feed)()
	}
	_, cmd := m.Update(msg)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
