package report

import (
	"time"

	"github.com/nao1215/sentinel/internal/display"
	"github.com/nao1215/sentinel/internal/model"
)

// ErrorText is written to reports of scans that ended in the Error status.
const ErrorText = "classification failed; no verdict available"

// NewScanReport builds the report of a session at time at.
func NewScanReport(s model.ScanSession, at time.Time) *model.ScanReport {
	profile := display.Lookup(s.Context)
	indicator := display.IndicatorFor(s.Status, s.Result)

	r := &model.ScanReport{
		ScanID:      s.ScanID,
		DateScanned: at,
		Source:      s.Source,
		Context:     s.Context,
		TargetText:  s.TargetText,
		Digest:      model.TextDigest(s.TargetText),
		Status:      s.Status,
		Headline:    indicator.Headline,
		Title:       profile.Title,
	}

	if s.Result != nil {
		res := s.Result.Clone()
		r.Result = &res
		r.Severity = res.Severity()
		if s.Status == model.StatusComplete && res.HighRisk() {
			r.ActionOffered = true
			r.ActionLabel = profile.ActionLabel
		}
	}
	if s.Status == model.StatusError {
		r.Error = ErrorText
	}
	return r
}

// Batch is the outcome of scanning several inputs in one run.
type Batch struct {
	// Started is when the first scan began.
	Started time.Time

	// Duration is the wall time of the whole run.
	Duration time.Duration

	// Reports holds one report per input, in input order.
	Reports []*model.ScanReport
}

// Summary is the aggregate view of a batch.
type Summary struct {
	Total   int `json:"total"`
	Threats int `json:"threats"`
	Failed  int `json:"failed"`
	Low     int `json:"low"`
	Medium  int `json:"medium"`
	High    int `json:"high"`
}

// Summary counts reports by outcome and severity tier.
// Reports without a verdict are counted as failed only.
func (b *Batch) Summary() Summary {
	var s Summary
	for _, r := range b.Reports {
		if r == nil {
			continue
		}
		s.Total++
		if !r.HasResult() {
			s.Failed++
			continue
		}
		if r.ActionOffered {
			s.Threats++
		}
		switch r.Severity {
		case model.SeverityLow:
			s.Low++
		case model.SeverityMedium:
			s.Medium++
		case model.SeverityHigh:
			s.High++
		}
	}
	return s
}
