package display

import (
	"testing"

	"github.com/nao1215/sentinel/internal/model"
)

// TestLookup tests the context table.
func TestLookup(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ctx         model.AppContext
		title       string
		caption     string
		actionLabel string
	}{
		{model.ContextPhone, "Voice Firewall", "Analyzing Voice Pattern...", "TERMINATE CALL"},
		{model.ContextWallet, "Transaction Guard", "Verifying Receiver Node...", "BLOCK TRANSACTION"},
		{model.ContextQR, "QR Shield", "Checking Link Reputation...", "BLOCK LINK"},
		{model.ContextMessages, "Message Filter", "Scanning Content...", "BLOCK SENDER"},
		{model.ContextBrowser, "Web Guard", "Inspecting Certificate...", "BLOCK ACCESS"},
		{model.ContextDashboard, "Sentinel", "Scanning Content...", "BLOCK THREAT"},
		{model.AppContext("unknown"), "Sentinel", "Scanning Content...", "BLOCK THREAT"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.ctx), func(t *testing.T) {
			t.Parallel()
			p := Lookup(tc.ctx)
			if p.Title != tc.title {
				t.Errorf("got title %q, expected %q", p.Title, tc.title)
			}
			if p.LoadingCaption != tc.caption {
				t.Errorf("got caption %q, expected %q", p.LoadingCaption, tc.caption)
			}
			if p.ActionLabel != tc.actionLabel {
				t.Errorf("got action label %q, expected %q", p.ActionLabel, tc.actionLabel)
			}
			if p.Accent == "" || p.Glyph == "" || p.LoadingDetail == "" {
				t.Errorf("incomplete profile: %+v", p)
			}
		})
	}
}

// TestIndicatorFor tests the status indicator rules.
func TestIndicatorFor(t *testing.T) {
	t.Parallel()

	result := func(score int) *model.AnalysisResult {
		return &model.AnalysisResult{RiskScore: score}
	}

	testCases := []struct {
		name     string
		status   model.ScanStatus
		result   *model.AnalysisResult
		headline string
		tone     Tone
	}{
		{"idle", model.StatusIdle, nil, "MONITORING ACTIVE", ToneNeutral},
		{"idle with retained result", model.StatusIdle, result(99), "MONITORING ACTIVE", ToneNeutral},
		{"scanning", model.StatusScanning, nil, "INTERCEPTING TRAFFIC...", ToneScanning},
		{"complete high", model.StatusComplete, result(71), "THREAT DETECTED", ToneDanger},
		{"complete boundary 70", model.StatusComplete, result(70), "POTENTIAL RISK", ToneWarning},
		{"complete medium", model.StatusComplete, result(31), "POTENTIAL RISK", ToneWarning},
		{"complete boundary 30", model.StatusComplete, result(30), "SECURE", ToneSafe},
		{"complete without result", model.StatusComplete, nil, "MONITORING ACTIVE", ToneNeutral},
		{"error", model.StatusError, nil, "AGENT OFFLINE", ToneOffline},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := IndicatorFor(tc.status, tc.result)
			if got.Headline != tc.headline {
				t.Errorf("got %q, expected %q", got.Headline, tc.headline)
			}
			if got.Tone != tc.tone {
				t.Errorf("got tone %d, expected %d", got.Tone, tc.tone)
			}
		})
	}
}

// TestAppLabel tests dock labels.
func TestAppLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ctx      model.AppContext
		expected string
	}{
		{model.ContextDashboard, "Dashboard"},
		{model.ContextMessages, "Messages"},
		{model.ContextPhone, "Phone"},
		{model.ContextWallet, "Wallet"},
		{model.ContextBrowser, "Browser"},
		{model.ContextQR, "QR Scanner"},
	}

	for _, tc := range testCases {
		if got := AppLabel(tc.ctx); got != tc.expected {
			t.Errorf("AppLabel(%q) = %q, expected %q", tc.ctx, got, tc.expected)
		}
	}
}

// TestToneColor tests that every tone has a distinct colour.
func TestToneColor(t *testing.T) {
	t.Parallel()

	seen := make(map[string]Tone)
	for _, tone := range []Tone{ToneNeutral, ToneScanning, ToneSafe, ToneWarning, ToneDanger, ToneOffline} {
		c := tone.Color()
		if prev, ok := seen[c]; ok {
			t.Errorf("tone %d shares colour %s with tone %d", tone, c, prev)
		}
		seen[c] = tone
	}
}
