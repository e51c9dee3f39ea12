package display

import (
	"github.com/nao1215/sentinel/internal/model"
)

// Profile is the display copy for one app context.
type Profile struct {
	// Context is the app context this profile belongs to. The default
	// profile carries ContextDashboard.
	Context model.AppContext

	// Title is the sheet header, e.g. "Voice Firewall".
	Title string

	// Icon is a lucide icon name. The terminal UI renders Glyph instead.
	Icon string

	// Glyph is a single character stand-in for Icon.
	Glyph string

	// Accent is the hex accent colour of the sheet.
	Accent string

	// LoadingCaption is the headline shown while scanning.
	LoadingCaption string

	// LoadingDetail is the subtitle shown while scanning.
	LoadingDetail string

	// ActionLabel is the text of the remediation control.
	ActionLabel string
}

// defaultProfile is used for the dashboard and for unknown contexts.
var defaultProfile = Profile{
	Context:        model.ContextDashboard,
	Title:          "Sentinel",
	Icon:           "shield",
	Glyph:          "◈",
	Accent:         "#2563EB",
	LoadingCaption: "Scanning Content...",
	LoadingDetail:  "Heuristic analysis running",
	ActionLabel:    "BLOCK THREAT",
}

var profiles = map[model.AppContext]Profile{
	model.ContextPhone: {
		Context:        model.ContextPhone,
		Title:          "Voice Firewall",
		Icon:           "phone-off",
		Glyph:          "☎",
		Accent:         "#DC2626",
		LoadingCaption: "Analyzing Voice Pattern...",
		LoadingDetail:  "Detecting deepfake signatures",
		ActionLabel:    "TERMINATE CALL",
	},
	model.ContextWallet: {
		Context:        model.ContextWallet,
		Title:          "Transaction Guard",
		Icon:           "lock",
		Glyph:          "₹",
		Accent:         "#4F46E5",
		LoadingCaption: "Verifying Receiver Node...",
		LoadingDetail:  "Checking mule account database",
		ActionLabel:    "BLOCK TRANSACTION",
	},
	model.ContextQR: {
		Context:        model.ContextQR,
		Title:          "QR Shield",
		Icon:           "qr-code",
		Glyph:          "▦",
		Accent:         "#C026D3",
		LoadingCaption: "Checking Link Reputation...",
		LoadingDetail:  "Detecting Quishing vectors",
		ActionLabel:    "BLOCK LINK",
	},
	model.ContextMessages: {
		Context:        model.ContextMessages,
		Title:          "Message Filter",
		Icon:           "message-square",
		Glyph:          "✉",
		Accent:         "#2563EB",
		LoadingCaption: "Scanning Content...",
		LoadingDetail:  "Heuristic analysis running",
		ActionLabel:    "BLOCK SENDER",
	},
	model.ContextBrowser: {
		Context:        model.ContextBrowser,
		Title:          "Web Guard",
		Icon:           "globe",
		Glyph:          "◎",
		Accent:         "#0284C7",
		LoadingCaption: "Inspecting Certificate...",
		LoadingDetail:  "Analyzing page entropy",
		ActionLabel:    "BLOCK ACCESS",
	},
}

// Lookup returns the profile for ctx, or the default profile when ctx has
// no entry of its own.
func Lookup(ctx model.AppContext) Profile {
	if p, ok := profiles[ctx]; ok {
		return p
	}
	return defaultProfile
}

// Default returns the profile used for the dashboard and unknown contexts.
func Default() Profile {
	return defaultProfile
}
