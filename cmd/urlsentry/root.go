// Package main provides the entry point for the urlsentry CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/urlsentry/urlsentry/internal/config"
	internallog "github.com/urlsentry/urlsentry/internal/log"
)

// NewRootCmd creates the root command for urlsentry.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlsentry",
		Short: "URL threat-scoring engine",
		Long: `urlsentry classifies arbitrary strings purporting to be URLs.

It carries two independently callable scoring strategies:
- a deterministic lexical rule engine (explainable, no dependencies)
- a pretrained character-level sequence classifier with an allowlist

plus a synthetic corpus generator for adversarial testing and for
producing labeled training data for the classifier.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path (default: .urlsentry in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewTrainCmd())
	cmd.AddCommand(NewEvalCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// exitCodeError signals a specific process exit code without an error
// message. The check command uses it to implement the line-protocol exit
// contract (exit 1 for malicious verdicts) where the protocol output has
// already been written.
type exitCodeError struct {
	code int
}

// Error implements the error interface.
func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var ec exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig resolves configuration from defaults, the optional config
// file, and global flags, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath, _ = cmd.Root().PersistentFlags().GetString("config")
	}

	// If the user explicitly specified a config file, it must exist.
	// Otherwise a missing file just means defaults.
	found := config.FindConfigFile(configPath)
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cfg.Apply(cf)
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the sanitizing structured logger. The engine logs
// hostile strings (scored URLs carry live payloads), so everything goes
// through the sanitizing handler.
func setupLogger(verbose bool) *slog.Logger {
	return internallog.NewLogger(os.Stderr, verbose)
}
