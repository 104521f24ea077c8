package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// JSONWriter outputs vocabulary artifacts in JSON format.
// This format is designed for downstream consumers such as card decks and
// study apps, so the encoding is kept byte-stable across runs.
//
// Design decision: We use a json.Encoder with HTML escaping disabled
// rather than json.MarshalIndent because:
// 1. Swedish vernacular names must survive literally ("blåmes", not
//    escape sequences)
// 2. The encoder appends the trailing newline for us
// 3. It keeps the two-space indentation stable across Go versions
type JSONWriter struct {
	baseWriter

	// indentString is the indentation string for each nesting level.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndentString overrides the default two-space indentation.
func WithIndentString(indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentString = indent
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indentString: "  ",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteGroup outputs the group's vocabulary entries as a JSON array.
// An empty group encodes as [] rather than null.
func (w *JSONWriter) WriteGroup(report *model.GroupReport) (int, error) {
	entries := report.Entries
	if entries == nil {
		entries = make([]model.VocabEntry, 0)
	}
	return w.writeJSON(entries)
}

// WriteRun outputs the run summary in JSON format.
func (w *JSONWriter) WriteRun(run *model.RunRecord) (int, error) {
	return w.writeJSON(run)
}

// writeJSON encodes the given value and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", w.indentString)

	if err := enc.Encode(v); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
