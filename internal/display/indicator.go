package display

import (
	"github.com/nao1215/sentinel/internal/model"
)

// Tone is the colour family of the status indicator.
type Tone int

const (
	// ToneNeutral is the idle monitoring colour (blue).
	ToneNeutral Tone = iota
	// ToneScanning is shown while a request is outstanding (cyan).
	ToneScanning
	// ToneSafe is a low severity verdict (emerald).
	ToneSafe
	// ToneWarning is a medium severity verdict (amber).
	ToneWarning
	// ToneDanger is a high severity verdict (red).
	ToneDanger
	// ToneOffline is shown when no verdict could be obtained (slate).
	ToneOffline
)

// Color returns the hex colour of the tone.
func (t Tone) Color() string {
	switch t {
	case ToneScanning:
		return "#22D3EE"
	case ToneSafe:
		return "#10B981"
	case ToneWarning:
		return "#F59E0B"
	case ToneDanger:
		return "#EF4444"
	case ToneOffline:
		return "#64748B"
	default:
		return "#3B82F6"
	}
}

// ToneOf returns the tone of a severity tier.
func ToneOf(s model.Severity) Tone {
	switch s {
	case model.SeverityHigh:
		return ToneDanger
	case model.SeverityMedium:
		return ToneWarning
	default:
		return ToneSafe
	}
}

// Indicator is the always-visible status line of the agent.
type Indicator struct {
	Headline string
	Tone     Tone
}

// Status indicator headlines that do not depend on a verdict.
const (
	HeadlineMonitoring = "MONITORING ACTIVE"
	HeadlineScanning   = "INTERCEPTING TRAFFIC..."
	HeadlineOffline    = "AGENT OFFLINE"
)

// IndicatorFor derives the indicator from the scan status and verdict.
// A verdict only colours the indicator once the scan is complete.
func IndicatorFor(status model.ScanStatus, result *model.AnalysisResult) Indicator {
	switch {
	case status == model.StatusScanning:
		return Indicator{Headline: HeadlineScanning, Tone: ToneScanning}
	case status == model.StatusError:
		return Indicator{Headline: HeadlineOffline, Tone: ToneOffline}
	case status == model.StatusComplete && result != nil:
		sev := result.Severity()
		return Indicator{Headline: sev.Headline(), Tone: ToneOf(sev)}
	default:
		return Indicator{Headline: HeadlineMonitoring, Tone: ToneNeutral}
	}
}
