package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/urlsentry/urlsentry/internal/model"
)

// MarkdownWriter outputs evaluations in Markdown format, designed for
// documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation: type-safe tables and lists, plus GitHub-flavored
// alerts for the separation verdict.
type MarkdownWriter struct {
	baseWriter

	// titler capitalizes class labels for headings ("edge_case" ->
	// "Edge Case").
	titler cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}
}

// WriteEvaluation outputs the evaluation in Markdown format.
func (w *MarkdownWriter) WriteEvaluation(eval *model.Evaluation) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, eval)
	w.writeSummary(md, eval)
	w.writeClasses(md, eval)
	w.writeSeparation(md, eval)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run parameters.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, eval *model.Evaluation) {
	md.H1("Corpus Evaluation Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", strconv.FormatInt(eval.Seed, 10)},
			{"Samples per class", strconv.Itoa(eval.PerClass)},
			{"Classifier", onOff(eval.ClassifierUsed)},
		},
	})
	md.PlainText("")
}

// writeSummary writes the per-class mean-score table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, eval *model.Evaluation) {
	md.H2("Mean Rule-Engine Scores")
	md.PlainText("")

	rows := make([][]string, 0, len(eval.Classes))
	for _, stats := range eval.Classes {
		row := []string{
			w.titleLabel(stats.Label),
			strconv.Itoa(stats.Count),
			fmt.Sprintf("%.3f", stats.MeanRuleScore),
		}
		if eval.ClassifierUsed {
			row = append(row, strconv.Itoa(stats.Flagged))
		}
		rows = append(rows, row)
	}

	header := []string{"Class", "Samples", "Mean Score"}
	if eval.ClassifierUsed {
		header = append(header, "Flagged")
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// writeClasses writes the category distribution per class.
func (w *MarkdownWriter) writeClasses(md *markdown.Markdown, eval *model.Evaluation) {
	md.H2("Category Distribution")
	md.PlainText("")

	for _, stats := range eval.Classes {
		md.H3(w.titleLabel(stats.Label))
		md.PlainText("")

		rows := make([][]string, 0, len(stats.Categories))
		for _, category := range sortedKeys(stats.Categories) {
			rows = append(rows, []string{category, strconv.Itoa(stats.Categories[category])})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Category", "Count"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeSeparation writes the benign/malicious separation verdict: across
// a large batch the mean benign score must exceed the mean malicious
// score, otherwise the rule weights have lost their discriminating power.
func (w *MarkdownWriter) writeSeparation(md *markdown.Markdown, eval *model.Evaluation) {
	benign := eval.Stats(model.LabelBenign)
	malicious := eval.Stats(model.LabelPhishing)
	if benign == nil || malicious == nil {
		return
	}

	md.H2("Separation")
	md.PlainText("")
	if benign.MeanRuleScore > malicious.MeanRuleScore {
		md.Tipf("Benign mean score %.3f exceeds malicious mean score %.3f.",
			benign.MeanRuleScore, malicious.MeanRuleScore)
	} else {
		md.Cautionf("Benign mean score %.3f does not exceed malicious mean score %.3f; review rule weights.",
			benign.MeanRuleScore, malicious.MeanRuleScore)
	}
	md.PlainText("")
}

// titleLabel renders a class label as a heading ("edge_case" -> "Edge Case").
func (w *MarkdownWriter) titleLabel(label model.Label) string {
	return w.titler.String(strings.ReplaceAll(label.String(), "_", " "))
}
