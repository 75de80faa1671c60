package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Strategy names selectable via configuration.
const (
	// StrategyRules selects the deterministic lexical rule engine.
	StrategyRules = "rules"

	// StrategyModel selects the sequence classifier adapter.
	StrategyModel = "model"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "urlsentry"

	// DefaultStrategy is the strategy used when none is configured.
	// The rule engine is the default because it works without a model
	// bundle and its verdicts are fully explainable.
	DefaultStrategy = StrategyRules

	// BundleFileName is the model bundle file name under the data dir.
	BundleFileName = "bundle.json"

	// DefaultEvalBatch is the per-class sample count for corpus
	// evaluation runs.
	DefaultEvalBatch = 500

	// DefaultEvalConcurrency bounds concurrent scoring during batch
	// evaluation. Scoring is CPU-only, so a small multiple of typical
	// core counts is enough.
	DefaultEvalConcurrency = 8

	// DefaultHistoryLimit is how many records the history command lists
	// when no limit is given.
	DefaultHistoryLimit = 50
)

// ErrInvalidStrategy is returned when the configured strategy is neither
// "rules" nor "model".
var ErrInvalidStrategy = errors.New("strategy must be \"rules\" or \"model\"")

// Config holds the resolved engine configuration. It is populated from
// defaults, the optional config file, and CLI flags, then passed through
// the application by value reference rather than via globals.
type Config struct {
	// Strategy selects the scoring strategy: StrategyRules or
	// StrategyModel.
	Strategy string

	// BundlePath is the model bundle location. Empty means the default
	// XDG data path.
	BundlePath string

	// DataDir is the directory for the history database. Empty means
	// the default XDG data path.
	DataDir string

	// Allowlist is the set of trusted hosts that bypass the classifier.
	Allowlist Allowlist

	// Strict makes per-input classification failures exit nonzero at
	// the process bridge instead of the protocol's fail-open default.
	Strict bool

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig returns a Config populated with defaults and the built-in
// allowlist.
func NewConfig() *Config {
	return &Config{
		Strategy:  DefaultStrategy,
		Allowlist: DefaultAllowlist(),
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Strategy != StrategyRules && c.Strategy != StrategyModel {
		return fmt.Errorf("%w: got %q", ErrInvalidStrategy, c.Strategy)
	}
	return nil
}

// ResolveBundlePath returns the configured bundle path, falling back to
// the XDG data directory.
func (c *Config) ResolveBundlePath() (string, error) {
	if c.BundlePath != "" {
		return c.BundlePath, nil
	}
	path, err := xdg.DataFile(filepath.Join(AppName, BundleFileName))
	if err != nil {
		return "", fmt.Errorf("failed to resolve bundle path: %w", err)
	}
	return path, nil
}

// ResolveDataDir returns the configured data directory, falling back to
// the XDG data directory.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	// xdg.DataFile ensures parent directories exist; we only need the
	// directory itself here.
	path, err := xdg.DataFile(filepath.Join(AppName, "history"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return filepath.Dir(path), nil
}
