package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/nao1215/sentinel/internal/model"
)

// Classifier produces a verdict for a piece of text.
// Implementations must be safe for concurrent use.
type Classifier interface {
	// Analyze returns the verdict for text. It never fails: on any error it
	// returns Fallback().
	Analyze(ctx context.Context, text string) model.AnalysisResult

	// Name identifies the implementation in logs and reports.
	Name() string
}

// wireResult mirrors the response schema with pointer fields so that
// absent fields can be told apart from zero values.
type wireResult struct {
	RiskScore        *float64  `json:"riskScore"`
	Category         *string   `json:"category"`
	Flags            *[]string `json:"flags"`
	TechnicalSignals *[]string `json:"technicalSignals"`
	PreventiveAction *string   `json:"preventiveAction"`
	SafeActionAdvice *string   `json:"safeActionAdvice"`
}

// Decode parses a classifier response body into a verdict.
// All six fields must be present, though the strings may be empty.
// Fractional scores are rounded up so that a score strictly above an
// integer threshold stays above it; anything outside [0,100] is rejected.
func Decode(data []byte) (model.AnalysisResult, error) {
	body := strings.TrimSpace(string(data))
	if body == "" {
		return model.AnalysisResult{}, ErrEmptyResponse
	}

	var w wireResult
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	missing := make([]string, 0, 6)
	if w.RiskScore == nil {
		missing = append(missing, FieldRiskScore)
	}
	if w.Category == nil {
		missing = append(missing, FieldCategory)
	}
	if w.Flags == nil || *w.Flags == nil {
		missing = append(missing, FieldFlags)
	}
	if w.TechnicalSignals == nil || *w.TechnicalSignals == nil {
		missing = append(missing, FieldTechnicalSignals)
	}
	if w.PreventiveAction == nil {
		missing = append(missing, FieldPreventiveAction)
	}
	if w.SafeActionAdvice == nil {
		missing = append(missing, FieldSafeActionAdvice)
	}
	if len(missing) > 0 {
		return model.AnalysisResult{}, fmt.Errorf("%w: %s", model.ErrMissingField, strings.Join(missing, ", "))
	}

	category, err := model.ParseCategory(*w.Category)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	score := *w.RiskScore
	if math.IsNaN(score) || score < model.MinRiskScore || score > model.MaxRiskScore {
		return model.AnalysisResult{}, fmt.Errorf("%w: got %v", model.ErrRiskScoreRange, score)
	}

	result := model.AnalysisResult{
		RiskScore:        int(math.Ceil(score)),
		Category:         category,
		Flags:            *w.Flags,
		TechnicalSignals: *w.TechnicalSignals,
		PreventiveAction: *w.PreventiveAction,
		SafeActionAdvice: *w.SafeActionAdvice,
	}
	if err := result.Validate(); err != nil {
		return model.AnalysisResult{}, err
	}
	return result, nil
}
