package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urlsentry/urlsentry/internal/classifier"
	"github.com/urlsentry/urlsentry/internal/config"
	"github.com/urlsentry/urlsentry/internal/model"
	"github.com/urlsentry/urlsentry/internal/rules"
	"github.com/urlsentry/urlsentry/internal/scorer"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <url> [url...]",
		Short: "Score URLs with the configured strategy",
		Long: `Score evaluates one or more URLs and prints a verdict for each.

The default strategy is the lexical rule engine: every URL starts at a
perfect score of 1.0 and loses weight for each suspicious trait (insecure
scheme, IP host, risky TLD, injection patterns, excessive length, high
entropy). The final score maps onto a category:

  score >= 0.85  SAFE
  score >= 0.60  MODERATE_RISK
  otherwise      DANGEROUS

With --strategy model (or strategy: model in the config file) the
pretrained sequence classifier is used instead.

Examples:
  # Score a single URL with the rule engine
  urlsentry score "https://example.com/home"

  # Score several URLs and print JSON
  urlsentry score --json "https://example.com" "http://192.168.1.1/admin"

  # Use the sequence classifier
  urlsentry score --strategy model "http://free-bitcoin.ru/win"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScoreCmd,
	}

	cmd.Flags().String("strategy", "", "Scoring strategy: rules or model (default: rules)")
	cmd.Flags().StringP("bundle", "b", "", "Model bundle path (model strategy only)")
	cmd.Flags().Bool("json", false, "Print results as JSON")
	cmd.Flags().Bool("save", false, "Persist outcomes to the history store")

	return cmd
}

// runScoreCmd executes the score command.
func runScoreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if strategy, _ := cmd.Flags().GetString("strategy"); strategy != "" {
		cfg.Strategy = strategy
	}
	if bundle, _ := cmd.Flags().GetString("bundle"); bundle != "" {
		cfg.BundlePath = bundle
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	engine := rules.NewEngine()
	var m classifier.Model
	if cfg.Strategy == config.StrategyModel {
		bundlePath, err := cfg.ResolveBundlePath()
		if err != nil {
			return err
		}
		bundle, err := classifier.LoadBundle(bundlePath)
		if err != nil {
			return fmt.Errorf("failed to load model bundle: %w", err)
		}
		m = bundle
	}

	s, err := scorer.ForStrategy(cfg, engine, m)
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	outcomes := make([]model.Outcome, 0, len(args))
	for _, rawURL := range args {
		outcome, err := s.Evaluate(rawURL)
		if err != nil {
			return fmt.Errorf("failed to score %q: %w", rawURL, err)
		}
		outcomes = append(outcomes, outcome)

		if save {
			if err := saveOutcome(cmd.Context(), cfg, outcome, cfg.Strategy); err != nil {
				logger.Warn("failed to persist outcome", "url", outcome.URL, "error", err)
			}
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outcomes)
	}

	for i, outcome := range outcomes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printOutcome(cmd, outcome)
	}
	return nil
}

// printOutcome renders one outcome in the human-readable format.
func printOutcome(cmd *cobra.Command, outcome model.Outcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "URL:     %s\n", outcome.URL)
	fmt.Fprintf(out, "Score:   %.2f\n", outcome.Score)
	fmt.Fprintf(out, "Verdict: %s\n", outcome.Verdict)
	fmt.Fprintf(out, "Status:  %s\n", outcome.Status)
	if len(outcome.Reasons) > 0 {
		fmt.Fprintf(out, "Reasons: %s\n", strings.Join(outcome.Reasons, "; "))
	}
}
