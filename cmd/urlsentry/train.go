package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/urlsentry/urlsentry/internal/classifier"
	"github.com/urlsentry/urlsentry/internal/corpus"
)

// NewTrainCmd creates the train command.
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a classifier bundle from a synthetic corpus",
		Long: `Train generates a synthetic labeled corpus, fits the sequence
classifier on it, and writes the resulting model bundle to disk.

The corpus is seeded, so the same seed and size always produce the same
bundle. The written bundle is the file check and score --strategy model
load at startup.

Examples:
  # Train with defaults and install the bundle in the data directory
  urlsentry train

  # A reproducible bundle at an explicit path
  urlsentry train --seed 42 --per-class 2000 --output bundle.json`,
		Args: cobra.NoArgs,
		RunE: runTrainCmd,
	}

	cmd.Flags().Int64("seed", 42, "Random seed for the training corpus")
	cmd.Flags().Int("per-class", 1000, "Training samples per class")
	cmd.Flags().StringP("output", "o", "", "Bundle path (default: bundle in the user data directory)")

	return cmd
}

// runTrainCmd executes the train command.
func runTrainCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.BundlePath = output
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	seed, _ := cmd.Flags().GetInt64("seed")
	perClass, _ := cmd.Flags().GetInt("per-class")
	if perClass <= 0 {
		return fmt.Errorf("per-class must be positive: got %d", perClass)
	}

	entries := corpus.New(seed).Dataset(perClass)
	logger.Info("corpus generated", "entries", len(entries), "seed", seed)

	bundle, err := classifier.Fit(entries)
	if err != nil {
		return fmt.Errorf("failed to fit model: %w", err)
	}

	bundlePath, err := cfg.ResolveBundlePath()
	if err != nil {
		return err
	}
	if err := bundle.Save(bundlePath); err != nil {
		return fmt.Errorf("failed to write model bundle: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote model bundle to %s (vocab=%d, labels=%d)\n",
		bundlePath, len(bundle.Vocab), len(bundle.LabelSet))
	return nil
}
