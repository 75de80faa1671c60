package report

import (
	"encoding/json"
	"io"

	"github.com/urlsentry/urlsentry/internal/model"
)

// JSONWriter outputs evaluations in JSON format for tool integration.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library because it is sufficient for this output
// volume and keeps behavior consistent across Go versions.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) { w.indent = true }
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteEvaluation outputs the evaluation as JSON.
func (w *JSONWriter) WriteEvaluation(eval *model.Evaluation) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(eval, "", "  ")
	} else {
		data, err = json.Marshal(eval)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
