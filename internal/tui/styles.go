package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/sentinel/internal/display"
)

const phoneWidth = 58

var (
	colorPrimary = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#64748B")
	colorText    = lipgloss.Color("#E2E8F0")
	colorLog     = lipgloss.Color("#22C55E")

	phoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1).
			Width(phoneWidth)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	dimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	logStyle      = lipgloss.NewStyle().Foreground(colorLog)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Underline(true)
	dockStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	lockedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(display.ToneDanger.Color()))

	sheetStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), true, false, false, false).
			Padding(0, 1).
			Width(phoneWidth - 2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)
)

// toneStyle colours text with the indicator tone.
func toneStyle(t display.Tone) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Color()))
}

// accentStyle colours text with a profile accent.
func accentStyle(p display.Profile) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent))
}
