package report

import (
	"io"

	"github.com/urlsentry/urlsentry/internal/model"
)

// Writer defines the interface for evaluation report output.
// Implementations write results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteEvaluation outputs the evaluation to the configured
	// destination. Returns the number of bytes written and any error
	// encountered.
	WriteEvaluation(eval *model.Evaluation) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteEvaluation outputs the evaluation to all configured Writers.
// Returns the total bytes written across all writers and stops on the
// first error encountered.
func (m *MultiWriter) WriteEvaluation(eval *model.Evaluation) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteEvaluation(eval)
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
