package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/sentinel/internal/display"
	"github.com/nao1215/sentinel/internal/history"
	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/nao1215/sentinel/internal/session"
)

type snapshotMsg struct {
	snap session.Snapshot
}

type feedClosedMsg struct{}

type trafficTickMsg struct {
	at time.Time
}

type scanLogTickMsg struct{}

// Model is the bubbletea model of the phone simulator.
type Model struct {
	ctx     context.Context
	ctrl    *session.Controller
	catalog *scenario.Catalog
	history *history.Log

	feed   <-chan session.Snapshot
	cancel func()
	snap   session.Snapshot

	apps []model.AppContext
	app  int

	manual  bool
	input   textinput.Model
	spinner spinner.Model

	traffic *TrafficLog
	scanLog int

	// notice is a one-line message shown above the key help.
	notice string

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context passed to every scan.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithCatalog sets the scenario catalogue. The default is scenario.Builtin().
func WithCatalog(c *scenario.Catalog) Option {
	return func(m *Model) {
		if c != nil {
			m.catalog = c
		}
	}
}

// WithHistory sets the log shown as recent activity. It should be the
// recorder of the controller.
func WithHistory(h *history.Log) Option {
	return func(m *Model) {
		if h != nil {
			m.history = h
		}
	}
}

// WithPick sets the random index source of the traffic log.
func WithPick(pick func(n int) int) Option {
	return func(m *Model) {
		if pick != nil {
			m.traffic = NewTrafficLog(TrafficKeep, pick)
		}
	}
}

// New creates the simulator on top of ctrl and subscribes to it.
// The subscription is released when the program quits.
func New(ctrl *session.Controller, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(display.ToneScanning.Color()))

	ti := textinput.New()
	ti.Placeholder = "Paste a message, link or transcript"
	ti.CharLimit = 2000
	ti.Width = phoneWidth - 6

	m := Model{
		ctx:     context.Background(),
		ctrl:    ctrl,
		catalog: scenario.Builtin(),
		history: history.NewLog(history.DefaultCapacity),
		apps:    model.AppContexts(),
		input:   ti,
		spinner: sp,
		traffic: NewTrafficLog(TrafficKeep, rand.IntN),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.feed, m.cancel = ctrl.Subscribe()
	m.snap = ctrl.Snapshot()
	return m
}

// Init starts the snapshot feed and the cosmetic tickers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.feed),
		m.spinner.Tick,
		trafficTick(),
		scanLogTick(),
	)
}

func waitForSnapshot(ch <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

func trafficTick() tea.Cmd {
	return tea.Tick(TrafficInterval, func(t time.Time) tea.Msg {
		return trafficTickMsg{at: t}
	})
}

func scanLogTick() tea.Cmd {
	return tea.Tick(ScanLogInterval, func(time.Time) tea.Msg {
		return scanLogTickMsg{}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		if msg.snap.Session.Status == model.StatusScanning &&
			msg.snap.Session.Generation != m.snap.Session.Generation {
			m.scanLog = 0
		}
		m.snap = msg.snap
		return m, waitForSnapshot(m.feed)

	case feedClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case trafficTickMsg:
		m.traffic.Tick(msg.at)
		return m, trafficTick()

	case scanLogTickMsg:
		if m.snap.Session.Status == model.StatusScanning {
			m.scanLog = (m.scanLog + 1) % len(scanningMessages)
		}
		return m, scanLogTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.manual {
			return m.updateManual(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch key := msg.String(); key {
	case "q":
		return m.quit()
	case "1", "2", "3", "4", "5", "6":
		if idx := int(key[0] - '1'); idx < len(m.apps) {
			m.app = idx
		}
	case "tab":
		m.app = (m.app + 1) % len(m.apps)
	case "shift+tab":
		m.app = (m.app - 1 + len(m.apps)) % len(m.apps)
	case "s":
		m.scanCurrent()
	case "o":
		m.ctrl.OpenOverlay()
	case "c", "esc":
		m.ctrl.Close()
	case "d":
		m.ctrl.Dismiss()
	case "a":
		if err := m.ctrl.Act(); err != nil {
			m.notice = actionNotice(err)
		}
	case "p":
		if m.ctrl.ToggleProtection() {
			m.notice = "Protection resumed."
		} else {
			m.notice = "Protection paused."
		}
	case "m":
		m.ctrl.OpenOverlay()
		m.manual = true
		m.input.Reset()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateManual(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.manual = false
		m.input.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.notice = "Nothing to check."
			return m, nil
		}
		m.manual = false
		m.input.Blur()
		m.input.Reset()
		m.ctrl.StartScan(m.ctx, text, model.SourceManual, model.ContextMessages)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// scanCurrent starts a scan of the selected app's scenario.
func (m *Model) scanCurrent() {
	app := m.currentApp()
	s, ok := m.catalog.ForContext(app)
	if !ok {
		m.notice = "Open an app to scan its content."
		return
	}
	m.ctrl.StartScan(m.ctx, s.Text, s.Source, s.Context)
}

func (m Model) currentApp() model.AppContext {
	return m.apps[m.app]
}

func actionNotice(err error) string {
	switch {
	case errors.Is(err, session.ErrActionInProgress):
		return "Action already in progress."
	case errors.Is(err, session.ErrActionUnavailable):
		return "No threat to act on."
	default:
		return err.Error()
	}
}
