package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/urlsentry/urlsentry/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: Plain text with ASCII formatting rather than ANSI
// colors because it works in all terminals and pipes cleanly to files.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// WriteEvaluation outputs the evaluation in human-readable format.
func (w *SimpleWriter) WriteEvaluation(eval *model.Evaluation) (int, error) {
	var sb strings.Builder

	sb.WriteString("Corpus Evaluation\n")
	sb.WriteString("=================\n")
	fmt.Fprintf(&sb, "Seed:       %d\n", eval.Seed)
	fmt.Fprintf(&sb, "Per class:  %d\n", eval.PerClass)
	fmt.Fprintf(&sb, "Classifier: %s\n\n", onOff(eval.ClassifierUsed))

	for _, stats := range eval.Classes {
		fmt.Fprintf(&sb, "[%s] %d samples, mean rule score %.3f\n",
			stats.Label, stats.Count, stats.MeanRuleScore)

		for _, category := range sortedKeys(stats.Categories) {
			fmt.Fprintf(&sb, "  %-14s %d\n", category, stats.Categories[category])
		}
		if eval.ClassifierUsed {
			fmt.Fprintf(&sb, "  flagged by classifier: %d\n", stats.Flagged)
		}
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// onOff renders a boolean as enabled/disabled text.
func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// sortedKeys returns the map keys in sorted order for stable output.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
