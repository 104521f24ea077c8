package report

import (
	"io"

	"github.com/naturkoll/vocabbuild/internal/model"
)

// Writer defines the interface for report output.
// Implementations write group artifacts and run summaries in various
// formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteGroup outputs one group's vocabulary artifact.
	// Returns the number of bytes written and any error encountered.
	WriteGroup(report *model.GroupReport) (int, error)

	// WriteRun outputs the whole-run summary.
	// This is useful for a quick overview after all groups complete.
	WriteRun(run *model.RunRecord) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteGroup outputs the group artifact to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteGroup(report *model.GroupReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteGroup(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteRun outputs the run summary to all configured Writers.
func (m *MultiWriter) WriteRun(run *model.RunRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRun(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
