package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/urlsentry/urlsentry/internal/corpus"
	"github.com/urlsentry/urlsentry/internal/model"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic URL corpora",
		Long: `Generate produces synthetic URLs for testing and training.

Four classes are supported: benign (well-formed safe URLs), phishing
(URLs carrying attack payloads), edge_case (rare but legitimate shapes
like bare IPs, FTP, encoded paths), and not_a_url (noise that is not a
URL at all).

Generation is deterministic for a given seed: the same seed and count
always produce the same output, so corpora are reproducible. Without
--seed a time-based seed is used.

Examples:
  # 20 phishing URLs, one per line
  urlsentry generate --class phishing --count 20

  # A reproducible labeled CSV with 100 entries per class
  urlsentry generate --labeled --count 100 --seed 42 --output corpus.csv`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().String("class", string(model.LabelBenign), "Class to generate: benign, phishing, edge_case, not_a_url")
	cmd.Flags().IntP("count", "n", 10, "Number of URLs (per class with --labeled)")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible output (0 = time-based)")
	cmd.Flags().Bool("labeled", false, "Emit a url,label CSV covering every class")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		return fmt.Errorf("count must be positive: got %d", count)
	}

	gen, err := generatorFromFlags(cmd)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	if labeled, _ := cmd.Flags().GetBool("labeled"); labeled {
		return writeLabeledCSV(out, gen.Dataset(count))
	}

	class, _ := cmd.Flags().GetString("class")
	label, err := parseLabel(class)
	if err != nil {
		return err
	}
	for _, entry := range gen.Batch(count, label) {
		fmt.Fprintln(out, entry.Text)
	}
	return nil
}

// parseLabel validates a user-supplied class name.
func parseLabel(class string) (model.Label, error) {
	for _, l := range model.Labels() {
		if l.String() == class {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown class %q (want benign, phishing, edge_case, or not_a_url)", class)
}

// generatorFromFlags builds a Generator from the --seed flag.
func generatorFromFlags(cmd *cobra.Command) (*corpus.Generator, error) {
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return corpus.New(seed), nil
}

// openOutput resolves the --output flag to a writer. The returned close
// function is a no-op for stdout.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// writeLabeledCSV emits url,label rows with a header, the interchange
// format consumed by train.
func writeLabeledCSV(w io.Writer, entries []model.CorpusEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"url", "label"}); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := cw.Write([]string{entry.Text, entry.Label.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
