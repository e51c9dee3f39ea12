package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/sentinel/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation. It gives us tables, GitHub alerts and mermaid charts without
// hand-escaping.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a single report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Sentinel Scan Report")
	md.PlainText("")
	w.writeReport(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs every report with a summary table and pie chart.
func (w *MarkdownWriter) WriteBatch(batch *Batch) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Sentinel Batch Report")
	md.PlainText("")
	w.writeBatchSummary(md, batch)

	for _, r := range batch.Reports {
		if r == nil {
			continue
		}
		md.H2(r.Source)
		md.PlainText("")
		w.writeReport(md, r)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeReport writes the overview table, the alert and the details of one scan.
func (w *MarkdownWriter) writeReport(md *markdown.Markdown, r *model.ScanReport) {
	rows := [][]string{
		{"Source", r.Source},
		{"Context", string(r.Context)},
		{"Agent", r.Title},
		{"Scan Date", r.DateScanned.Format("2006-01-02 15:04:05 MST")},
		{"Status", r.Headline},
	}
	if r.HasResult() {
		rows = append(rows,
			[]string{"Risk Score", strconv.Itoa(r.Result.RiskScore) + "/100"},
			[]string{"Category", string(r.Result.Category)},
			[]string{"Severity", r.Severity.String()},
		)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeAlert(md, r)

	if !r.HasResult() {
		return
	}

	if len(r.Result.Flags) > 0 {
		md.PlainText("**Flags**")
		md.PlainText("")
		md.BulletList(r.Result.Flags...)
		md.PlainText("")
	}
	if len(r.Result.TechnicalSignals) > 0 {
		md.PlainText("**Technical Signals**")
		md.PlainText("")
		md.BulletList(r.Result.TechnicalSignals...)
		md.PlainText("")
	}

	md.Details("Scanned text", r.TargetText)
	md.PlainText("")
}

// writeAlert writes an alert matching the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, r *model.ScanReport) {
	switch {
	case !r.HasResult():
		md.Importantf("Agent offline: %s", r.Error)
	case r.ActionOffered && r.Severity == model.SeverityHigh:
		md.Cautionf("%s. %s Recommended action: %s.",
			r.Result.PreventiveAction, r.Result.SafeActionAdvice, r.ActionLabel)
	case r.ActionOffered:
		md.Warningf("%s. %s Recommended action: %s.",
			r.Result.PreventiveAction, r.Result.SafeActionAdvice, r.ActionLabel)
	case r.Severity == model.SeverityMedium:
		md.Note(r.Result.SafeActionAdvice)
	default:
		md.Tip(r.Result.SafeActionAdvice)
	}
	md.PlainText("")
}

// writeBatchSummary writes the per-scan table and the severity chart.
func (w *MarkdownWriter) writeBatchSummary(md *markdown.Markdown, batch *Batch) {
	s := batch.Summary()

	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(batch.Reports))
	for _, r := range batch.Reports {
		if r == nil {
			continue
		}
		score, category, severity, action := "-", "-", "-", "-"
		if r.HasResult() {
			score = strconv.Itoa(r.Result.RiskScore)
			category = string(r.Result.Category)
			severity = r.Severity.String()
		}
		if r.ActionOffered {
			action = r.ActionLabel
		}
		rows = append(rows, []string{r.Source, string(r.Context), score, category, severity, action})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Context", "Score", "Category", "Severity", "Action"},
		Rows:   rows,
	})
	md.PlainText("")

	md.PlainTextf("%d scans, %d threats, %d failed, in %s.",
		s.Total, s.Threats, s.Failed, batch.Duration.Round(time.Millisecond).String())
	md.PlainText("")

	if s.Low+s.Medium+s.High > 0 {
		w.writePieChart(md, s)
	}
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdict Severity Distribution"),
		piechart.WithShowData(true),
	)

	if s.High > 0 {
		chart.LabelAndIntValue("High", uint64(s.High))
	}
	if s.Medium > 0 {
		chart.LabelAndIntValue("Medium", uint64(s.Medium))
	}
	if s.Low > 0 {
		chart.LabelAndIntValue("Low", uint64(s.Low))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by Sentinel*")
}
