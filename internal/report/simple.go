package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/sentinel/internal/model"
)

const cardWidth = 70

// SimpleWriter outputs a human-readable verdict card.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors so the card can be piped to files; the interactive phone
// simulator is where colour lives.
type SimpleWriter struct {
	baseWriter

	// verbose adds the scanned text and digest to each card.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one verdict card.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder
	w.writeCard(&sb, report)
	w.writeFooter(&sb)
	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs one card per report followed by a summary.
func (w *SimpleWriter) WriteBatch(batch *Batch) (int, error) {
	var sb strings.Builder
	for _, r := range batch.Reports {
		if r != nil {
			w.writeCard(&sb, r)
		}
	}
	w.writeSummary(&sb, batch)
	w.writeFooter(&sb)
	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeCard(sb *strings.Builder, r *model.ScanReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", cardWidth))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%s\n", center(fmt.Sprintf("%s  [%s]", r.Headline, r.Title), cardWidth))
	sb.WriteString(strings.Repeat("=", cardWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source:         %s\n", r.Source)
	fmt.Fprintf(sb, "Context:        %s\n", r.Context)
	fmt.Fprintf(sb, "Scan Date:      %s\n", r.DateScanned.Format("2006-01-02 15:04:05 MST"))
	if w.verbose {
		fmt.Fprintf(sb, "Scan ID:        %s\n", r.ScanID)
		fmt.Fprintf(sb, "Digest:         %s\n", model.ShortDigest(r.TargetText))
		fmt.Fprintf(sb, "Text:           %s\n", model.Snippet(r.TargetText, cardWidth-16))
	}

	if !r.HasResult() {
		fmt.Fprintf(sb, "Status:         ERROR - %s\n\n", r.Error)
		return
	}

	res := r.Result
	fmt.Fprintf(sb, "Risk Score:     %d/100 (%s)\n", res.RiskScore, r.Severity)
	fmt.Fprintf(sb, "Category:       %s\n", res.Category)
	sb.WriteString("\n")

	w.writeList(sb, "FLAGS", res.Flags, "[!]")
	w.writeList(sb, "TECHNICAL SIGNALS", res.TechnicalSignals, " - ")

	sb.WriteString(strings.Repeat("-", cardWidth))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Agent Action:   %s\n", res.PreventiveAction)
	fmt.Fprintf(sb, "Advice:         %s\n", res.SafeActionAdvice)
	if r.ActionOffered {
		fmt.Fprintf(sb, "Remediation:    [ %s ]\n", r.ActionLabel)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeList(sb *strings.Builder, title string, items []string, marker string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, it := range items {
		fmt.Fprintf(sb, "  %s %s\n", marker, it)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, batch *Batch) {
	s := batch.Summary()

	sb.WriteString(strings.Repeat("-", cardWidth))
	sb.WriteString("\n")
	sb.WriteString("BATCH SUMMARY\n")
	sb.WriteString(strings.Repeat("-", cardWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  HIGH:     %d\n", s.High)
	fmt.Fprintf(sb, "  MEDIUM:   %d\n", s.Medium)
	fmt.Fprintf(sb, "  LOW:      %d\n", s.Low)
	fmt.Fprintf(sb, "  FAILED:   %d\n", s.Failed)
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:    %d scans, %d threats (%s)\n", s.Total, s.Threats, batch.Duration.Round(time.Millisecond))
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", cardWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by Sentinel\n")
	sb.WriteString(strings.Repeat("=", cardWidth))
	sb.WriteString("\n")
}

// center pads s with spaces to sit in the middle of width columns.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
