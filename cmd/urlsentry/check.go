package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/urlsentry/urlsentry/internal/classifier"
	"github.com/urlsentry/urlsentry/internal/config"
	"github.com/urlsentry/urlsentry/internal/history"
	"github.com/urlsentry/urlsentry/internal/model"
)

// Process bridge exit codes, stable for scripting. Exit 0 covers safe verdicts and, by
// default, internal failures (fail-open, for protocol compatibility with
// legacy callers); exit 1 is reserved for malicious verdicts; exit 2 is
// used for failures when --strict requests fail-closed behavior, and for
// a model bundle that cannot be loaded at all.
const (
	exitSafe      = 0
	exitMalicious = 1
	exitFailure   = 2
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Classify a URL with the sequence classifier",
		Long: `Check classifies a single URL with the pretrained sequence classifier
and emits a stable line-oriented protocol on stdout for consumption by
non-native callers:

  URL: <url>
  PREDICTION: <label>
  SCORE: <value>
  RESULT: <0|1>
  EXPLANATION: <text>      (optional)
  SUCCESS: true

On an internal failure the bridge emits instead:

  URL: <url>
  ERROR: <message>
  RESULT: 0
  SUCCESS: false

The process exits 1 when RESULT is 1 (malicious) and 0 otherwise.
Internal failures exit 0 by default; with --strict they exit 2 so
callers can fail closed. A model bundle that cannot be loaded always
aborts with exit 2 before any classification.

Examples:
  # Classify one URL
  urlsentry check "http://free-bitcoin.ru/get-rich-now"

  # Fail closed on internal errors
  urlsentry check --strict "https://example.com"

  # Persist the outcome to the history store
  urlsentry check --save "https://example.com"`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("bundle", "b", "", "Model bundle path (default: bundle in the user data directory)")
	cmd.Flags().BoolP("strict", "s", false, "Exit nonzero on internal failures instead of reporting safe")
	cmd.Flags().Bool("save", false, "Persist the outcome to the history store")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	applyCheckFlags(cmd, cfg)

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	rawURL := args[0]
	out := cmd.OutOrStdout()

	// The model bundle is a hard dependency of classification. Failing
	// to load it aborts before any request is served: a gate that
	// cannot classify must not report "safe".
	bundlePath, err := cfg.ResolveBundlePath()
	if err != nil {
		emitFailure(out, rawURL, err)
		return exitCodeError{code: exitFailure}
	}
	bundle, err := classifier.LoadBundle(bundlePath)
	if err != nil {
		logger.Error("model bundle unavailable", "path", bundlePath, "error", err)
		emitFailure(out, rawURL, err)
		return exitCodeError{code: exitFailure}
	}

	adapter := classifier.NewAdapter(bundle, cfg.Allowlist)
	result, err := adapter.Classify(rawURL)
	if err != nil {
		logger.Error("classification failed", "url", rawURL, "error", err)
		emitFailure(out, rawURL, err)
		if cfg.Strict {
			return exitCodeError{code: exitFailure}
		}
		// Fail-open: legacy callers treat any nonzero exit as
		// malicious, so reporting failures as safe keeps them usable.
		return nil
	}

	emitResult(out, result)

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveOutcome(cmd.Context(), cfg, scorerOutcome(result), config.StrategyModel); err != nil {
			logger.Warn("failed to persist check", "error", err)
		}
	}

	if result.ResultFlag == 1 {
		return exitCodeError{code: exitMalicious}
	}
	return nil
}

// applyCheckFlags merges check-specific flags into the config.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	if bundle, _ := cmd.Flags().GetString("bundle"); bundle != "" {
		cfg.BundlePath = bundle
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		cfg.Strict = true
	}
}

// emitResult writes the success protocol lines in their fixed order.
func emitResult(w io.Writer, result model.ClassifierResult) {
	fmt.Fprintf(w, "URL: %s\n", result.URL)
	fmt.Fprintf(w, "PREDICTION: %s\n", result.Prediction)
	fmt.Fprintf(w, "SCORE: %s\n", formatScore(result.Score))
	fmt.Fprintf(w, "RESULT: %d\n", result.ResultFlag)
	if result.Explanation != "" {
		fmt.Fprintf(w, "EXPLANATION: %s\n", result.Explanation)
	}
	fmt.Fprintln(w, "SUCCESS: true")
}

// emitFailure writes the failure protocol lines. RESULT is 0 because the
// protocol has no "unknown" value; the exit code distinguishes strict
// failures.
func emitFailure(w io.Writer, rawURL string, err error) {
	fmt.Fprintf(w, "URL: %s\n", rawURL)
	fmt.Fprintf(w, "ERROR: %s\n", err)
	fmt.Fprintln(w, "RESULT: 0")
	fmt.Fprintln(w, "SUCCESS: false")
}

// formatScore renders scores without trailing zeros: 0, 1, 0.97.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// scorerOutcome normalizes a classifier result for persistence.
func scorerOutcome(result model.ClassifierResult) model.Outcome {
	status := model.StatusAllowed
	if result.ResultFlag != 0 {
		status = model.StatusBlocked
	}
	var reasons []string
	if result.Explanation != "" {
		reasons = []string{result.Explanation}
	}
	return model.Outcome{
		URL:     result.URL,
		Score:   result.Score,
		Verdict: result.Prediction.String(),
		Reasons: reasons,
		Status:  status,
	}
}

// saveOutcome persists an outcome to the history store.
func saveOutcome(ctx context.Context, cfg *config.Config, outcome model.Outcome, strategy string) error {
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}
	store, err := history.Open(dataDir, history.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return store.Save(ctx, outcome, strategy)
}
