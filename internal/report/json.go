package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/sentinel/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the reports are small and the wire format is fixed
// by the struct tags in the model package.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version, when set, wraps every document in an envelope.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion wraps output in an Envelope carrying the sentinel version.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Envelope is the versioned wrapper written when WithVersion is set.
type Envelope struct {
	// Version is the sentinel version that generated this document.
	Version string `json:"version"`

	// Report is a *model.ScanReport or a *BatchDocument.
	Report any `json:"report"`
}

// BatchDocument is the JSON form of a Batch.
type BatchDocument struct {
	Started    time.Time           `json:"started"`
	DurationMS int64               `json:"durationMs"`
	Summary    Summary             `json:"summary"`
	Reports    []*model.ScanReport `json:"reports"`
}

// Write outputs a single report in JSON format.
func (w *JSONWriter) Write(report *model.ScanReport) (int, error) {
	return w.writeJSON(w.wrap(report))
}

// WriteBatch outputs a batch with its summary in JSON format.
func (w *JSONWriter) WriteBatch(batch *Batch) (int, error) {
	doc := &BatchDocument{
		Started:    batch.Started,
		DurationMS: batch.Duration.Milliseconds(),
		Summary:    batch.Summary(),
		Reports:    batch.Reports,
	}
	if doc.Reports == nil {
		doc.Reports = []*model.ScanReport{}
	}
	return w.writeJSON(w.wrap(doc))
}

func (w *JSONWriter) wrap(v any) any {
	if w.version == "" {
		return v
	}
	return &Envelope{Version: w.version, Report: v}
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
