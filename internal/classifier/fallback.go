package classifier

import "github.com/nao1215/sentinel/internal/model"

// Fallback returns the verdict used whenever the classifier is unavailable.
// Each call returns a fresh copy.
func Fallback() model.AnalysisResult {
	return model.AnalysisResult{
		RiskScore:        0,
		Category:         model.CategoryUnknown,
		Flags:            []string{"System Offline"},
		TechnicalSignals: []string{"Agent unable to connect to central intelligence cloud."},
		PreventiveAction: "Manual Override Required",
		SafeActionAdvice: "Please try again or contact support manually.",
	}
}

// IsFallback reports whether r is the fallback verdict.
func IsFallback(r model.AnalysisResult) bool {
	f := Fallback()
	return r.RiskScore == f.RiskScore &&
		r.Category == f.Category &&
		r.PreventiveAction == f.PreventiveAction &&
		r.SafeActionAdvice == f.SafeActionAdvice &&
		len(r.Flags) == 1 && r.Flags[0] == f.Flags[0]
}
