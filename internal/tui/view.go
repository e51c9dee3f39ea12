package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/sentinel/internal/display"
	"github.com/nao1215/sentinel/internal/history"
	"github.com/nao1215/sentinel/internal/model"
)

const helpLine = "1-6/tab app • s scan • o open • c close • d dismiss • a act • p protect • m manual • q quit"

// View renders the phone.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.viewHeader(), m.viewDock(), m.viewScreen())
	if m.snap.Overlay.Open {
		sections = append(sections, m.viewSheet())
	}
	sections = append(sections, m.viewTraffic())

	phone := phoneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	footer := dimStyle.Render(helpLine)
	if m.notice != "" {
		footer = titleStyle.Render(m.notice) + "\n" + footer
	}
	return phone + "\n" + footer + "\n"
}

// viewHeader renders the always visible status indicator.
func (m Model) viewHeader() string {
	ind := display.IndicatorFor(m.snap.Session.Status, m.snap.Session.Result)
	glyph := "●"
	if m.snap.Session.Status == model.StatusScanning {
		glyph = m.spinner.View()
	}
	return fmt.Sprintf("%s %s  %s",
		toneStyle(ind.Tone).Render(glyph),
		toneStyle(ind.Tone).Render(ind.Headline),
		dimStyle.Render("DPI Protocol • "+m.snap.Overlay.ProtectionLabel()),
	)
}

func (m Model) viewDock() string {
	items := make([]string, len(m.apps))
	for i, app := range m.apps {
		label := fmt.Sprintf("%d %s", i+1, display.AppLabel(app))
		if i == m.app {
			items[i] = selectedStyle.Render(label)
		} else {
			items[i] = dockStyle.Render(label)
		}
	}
	return strings.Join(items, "  ") + "\n"
}

func (m Model) viewScreen() string {
	app := m.currentApp()
	if app == model.ContextDashboard {
		return m.viewDashboard()
	}

	var sb strings.Builder
	s, ok := m.catalog.ForContext(app)
	if !ok {
		sb.WriteString(dimStyle.Render("Nothing to show."))
		return sb.String()
	}

	sb.WriteString(titleStyle.Render(s.Label))
	sb.WriteString("\n")
	sb.WriteString(screenIntro(app))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.NewStyle().Width(phoneWidth - 4).Render(s.Text))
	sb.WriteString("\n")

	if app == model.ContextBrowser {
		sb.WriteString("\n")
		sb.WriteString(m.viewOTPField())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("press s to let the agent inspect this"))
	sb.WriteString("\n")
	return sb.String()
}

// screenIntro is the chrome line of each simulated app.
func screenIntro(app model.AppContext) string {
	switch app {
	case model.ContextPhone:
		return dimStyle.Render("Unknown Caller  +91 98XXX XXXXX  • Live Audio Transcript")
	case model.ContextWallet:
		return dimStyle.Render("UPI • Paying Support-Refund-Desk")
	case model.ContextMessages:
		return dimStyle.Render("From: VM-BNKKYC")
	case model.ContextBrowser:
		return dimStyle.Render("https://crypto-giveaway-tesla.com/claim")
	case model.ContextQR:
		return dimStyle.Render("Camera • QR code detected")
	default:
		return ""
	}
}

// viewOTPField renders the OTP input, locked after an OTP theft verdict.
func (m Model) viewOTPField() string {
	if r := m.snap.Session.Result; r != nil &&
		m.snap.Session.Context == model.ContextBrowser && r.BlocksOTPInput() {
		return lockedStyle.Render("[ OTP ] Keyboard Input Disabled")
	}
	return "[ OTP ] _ _ _ _ _ _"
}

func (m Model) viewDashboard() string {
	var sb strings.Builder
	sb.WriteString(dimStyle.Render("SECURITY OVERVIEW"))
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("System Healthy"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Trust Score %s   Scans %d   Identity Leaks 0\n",
		toneStyle(display.ToneSafe).Render("98"), m.history.Len()))
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Active Protection"))
	sb.WriteString("\n")
	for _, line := range []string{"Call Firewall   Monitoring", "SMS Filter      Active", "Web Guard       Active"} {
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}

// viewSheet renders the agent sheet for the current status.
func (m Model) viewSheet() string {
	s := m.snap.Session
	profile := display.Lookup(s.Context)
	if s.Status == model.StatusIdle {
		profile = display.Default()
	}

	var sb strings.Builder
	sb.WriteString(accentStyle(profile).Render(profile.Glyph + " " + profile.Title))
	sb.WriteString("\n")

	switch s.Status {
	case model.StatusScanning:
		m.writeScanning(&sb, profile)
	case model.StatusComplete:
		m.writeVerdict(&sb, profile)
	case model.StatusError:
		sb.WriteString(toneStyle(display.ToneOffline).Render(display.HeadlineOffline))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("No verdict could be obtained. Press s to retry or d to dismiss."))
		sb.WriteString("\n")
	default:
		m.writeIdle(&sb)
	}

	return sheetStyle.BorderForeground(lipgloss.Color(profile.Accent)).Render(sb.String())
}

func (m Model) writeIdle(sb *strings.Builder) {
	if m.manual {
		sb.WriteString(titleStyle.Render("Manual Risk Check"))
		sb.WriteString("\n")
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("enter check • esc cancel"))
		sb.WriteString("\n")
		return
	}

	sb.WriteString(dimStyle.Render("LIVE PROTOCOL ACTIVITY"))
	sb.WriteString("\n")
	items := m.history.Recent(history.DefaultCapacity)
	if len(items) == 0 {
		sb.WriteString(dimStyle.Render("No scans yet."))
		sb.WriteString("\n")
	}
	for _, it := range items {
		sev := it.Severity()
		sb.WriteString(fmt.Sprintf("%s  %-18s %s\n",
			dimStyle.Render(it.Timestamp.Format("15:04:05")),
			model.Snippet(it.Source, 18),
			toneStyle(display.ToneOf(sev)).Render(fmt.Sprintf("%3d %s", it.RiskScore, it.Category)),
		))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("+ Manual Risk Check (m)"))
	sb.WriteString("\n")
}

func (m Model) writeScanning(sb *strings.Builder, profile display.Profile) {
	sb.WriteString(m.spinner.View() + " " + titleStyle.Render(profile.LoadingCaption))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(profile.LoadingDetail))
	sb.WriteString("\n\n")
	for i, line := range scanningLines(m.scanLog) {
		if i == 0 {
			sb.WriteString(logStyle.Bold(true).Render("> " + line))
		} else {
			sb.WriteString(dimStyle.Render("> " + line))
		}
		sb.WriteString("\n")
	}
}

func (m Model) writeVerdict(sb *strings.Builder, profile display.Profile) {
	r := m.snap.Session.Result
	if r == nil {
		return
	}
	tone := display.ToneOf(r.Severity())

	sb.WriteString(fmt.Sprintf("%s  %s\n",
		toneStyle(tone).Render(fmt.Sprintf("%d/100", r.RiskScore)),
		toneStyle(tone).Render(string(r.Category)),
	))
	if len(r.Flags) > 0 {
		sb.WriteString(dimStyle.Render(strings.Join(r.Flags, " • ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	for _, sig := range r.TechnicalSignals {
		sb.WriteString("- " + sig + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Agent Action: ") + r.PreventiveAction + "\n")
	sb.WriteString(lipgloss.NewStyle().Width(phoneWidth - 6).Render(r.SafeActionAdvice))
	sb.WriteString("\n")

	if !r.HighRisk() {
		return
	}
	sb.WriteString("\n")
	if m.snap.Overlay.ActionProcessing {
		sb.WriteString(m.spinner.View() + " " + titleStyle.Render("Processing..."))
	} else {
		sb.WriteString(buttonStyle.Background(lipgloss.Color(profile.Accent)).Render(profile.ActionLabel))
		sb.WriteString(dimStyle.Render("  (a)"))
	}
	sb.WriteString("\n")
}

func (m Model) viewTraffic() string {
	var sb strings.Builder
	sb.WriteString(dimStyle.Render("SYSTEM ACTIVITY LOG"))
	sb.WriteString("\n")
	for _, line := range m.traffic.Lines() {
		sb.WriteString(logStyle.Faint(true).Render(model.Snippet(line, phoneWidth-4)))
		sb.WriteString("\n")
	}
	return sb.String()
}
