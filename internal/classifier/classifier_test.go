package classifier

import (
	"errors"
	"testing"

	"github.com/nao1215/sentinel/internal/model"
)

// TestDecode tests response decoding.
func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()
		body := `{"riskScore": 92, "category": "KYC Fraud", "flags": ["Fake KYC"],
			"technicalSignals": ["Unregistered domain"], "preventiveAction": "Link Blocked",
			"safeActionAdvice": "Do not click."}`

		got, err := Decode([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskScore != 92 {
			t.Errorf("got %d, expected 92", got.RiskScore)
		}
		if got.Category != model.CategoryKYCFraud {
			t.Errorf("got %q, expected %q", got.Category, model.CategoryKYCFraud)
		}
	})

	t.Run("empty strings are accepted", func(t *testing.T) {
		t.Parallel()
		body := `{"riskScore": 90, "category": "Phishing Link", "flags": ["Lookalike Domain"],
			"technicalSignals": ["Domain registered yesterday"], "preventiveAction": "",
			"safeActionAdvice": ""}`

		got, err := Decode([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RiskScore != 90 {
			t.Errorf("got %d, expected 90", got.RiskScore)
		}
		if !got.HighRisk() {
			t.Error("expected score 90 to offer the action")
		}
		if IsFallback(got) {
			t.Error("a complete verdict must not be replaced by the fallback")
		}
	})

	fractional := []struct {
		name      string
		raw       string
		wantScore int
		wantHigh  bool
		wantTier  model.Severity
	}{
		{"just above action threshold", "50.4", 51, true, model.SeverityMedium},
		{"at action threshold", "50", 50, false, model.SeverityMedium},
		{"just above medium floor", "30.2", 31, false, model.SeverityMedium},
		{"just above high floor", "70.1", 71, true, model.SeverityHigh},
		{"near maximum", "98.6", 99, true, model.SeverityHigh},
	}
	for _, tc := range fractional {
		t.Run("fractional score "+tc.name, func(t *testing.T) {
			t.Parallel()
			body := `{"riskScore": ` + tc.raw + `, "category": "Impersonation", "flags": [],
				"technicalSignals": [], "preventiveAction": "Call Terminated", "safeActionAdvice": "Hang up."}`

			got, err := Decode([]byte(body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.RiskScore != tc.wantScore {
				t.Errorf("got %d, expected %d", got.RiskScore, tc.wantScore)
			}
			if got.HighRisk() != tc.wantHigh {
				t.Errorf("HighRisk() = %v, expected %v", got.HighRisk(), tc.wantHigh)
			}
			if got.Severity() != tc.wantTier {
				t.Errorf("got severity %v, expected %v", got.Severity(), tc.wantTier)
			}
		})
	}

	testCases := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty", "  ", ErrEmptyResponse},
		{"not json", "the text looks risky", ErrMalformedResponse},
		{"missing category", `{"riskScore": 10, "flags": [], "technicalSignals": [], "preventiveAction": "x", "safeActionAdvice": "y"}`, model.ErrMissingField},
		{"null flags", `{"riskScore": 10, "category": "Safe", "flags": null, "technicalSignals": [], "preventiveAction": "x", "safeActionAdvice": "y"}`, model.ErrMissingField},
		{"absent advice", `{"riskScore": 10, "category": "Safe", "flags": [], "technicalSignals": [], "preventiveAction": "x"}`, model.ErrMissingField},
		{"unknown category", `{"riskScore": 10, "category": "Malware", "flags": [], "technicalSignals": [], "preventiveAction": "x", "safeActionAdvice": "y"}`, model.ErrInvalidCategory},
		{"score above range", `{"riskScore": 180, "category": "Safe", "flags": [], "technicalSignals": [], "preventiveAction": "x", "safeActionAdvice": "y"}`, model.ErrRiskScoreRange},
		{"negative score", `{"riskScore": -1, "category": "Safe", "flags": [], "technicalSignals": [], "preventiveAction": "x", "safeActionAdvice": "y"}`, model.ErrRiskScoreRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode([]byte(tc.body)); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

// TestFallback tests the fallback verdict.
func TestFallback(t *testing.T) {
	t.Parallel()

	f := Fallback()
	if f.RiskScore != 0 {
		t.Errorf("got %d, expected 0", f.RiskScore)
	}
	if f.Category != model.CategoryUnknown {
		t.Errorf("got %q, expected %q", f.Category, model.CategoryUnknown)
	}
	if len(f.Flags) != 1 || f.Flags[0] != "System Offline" {
		t.Errorf("got flags %v", f.Flags)
	}
	if f.PrimarySignal() != "Agent unable to connect to central intelligence cloud." {
		t.Errorf("got primary signal %q", f.PrimarySignal())
	}
	if f.PreventiveAction != "Manual Override Required" {
		t.Errorf("got %q", f.PreventiveAction)
	}
	if f.SafeActionAdvice != "Please try again or contact support manually." {
		t.Errorf("got %q", f.SafeActionAdvice)
	}
	if f.HighRisk() {
		t.Error("fallback must not offer the remediation action")
	}
	if err := f.Validate(); err != nil {
		t.Errorf("fallback must be a valid verdict: %v", err)
	}
	if !IsFallback(f) {
		t.Error("IsFallback(Fallback()) = false")
	}

	f.Flags[0] = "mutated"
	if Fallback().Flags[0] != "System Offline" {
		t.Error("Fallback returned a shared slice")
	}
}

// TestResponseSchema tests the response contract.
func TestResponseSchema(t *testing.T) {
	t.Parallel()

	s := ResponseSchema()
	if len(s.Required) != 6 {
		t.Fatalf("got %d required fields, expected 6", len(s.Required))
	}
	for _, field := range RequiredFields() {
		if _, ok := s.Properties[field]; !ok {
			t.Errorf("schema is missing property %q", field)
		}
	}
	if got := len(s.Properties[FieldCategory].Enum); got != 9 {
		t.Errorf("got %d category values, expected 9", got)
	}
}

// TestRequestConfig tests the generation config.
func TestRequestConfig(t *testing.T) {
	t.Parallel()

	cfg := RequestConfig(0.1)
	if cfg.ResponseMIMEType != "application/json" {
		t.Errorf("got %q, expected application/json", cfg.ResponseMIMEType)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.1 {
		t.Errorf("got temperature %v, expected 0.1", cfg.Temperature)
	}
	if cfg.SystemInstruction == nil || len(cfg.SystemInstruction.Parts) == 0 ||
		cfg.SystemInstruction.Parts[0].Text != Instruction() {
		t.Error("expected the system instruction to be attached")
	}
}
