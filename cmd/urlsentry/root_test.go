package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to run version: %v", err)
	}
	for _, want := range []string{"urlsentry version ", "commit: ", "built:  "} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

// TestRootCmdUnknownCommand tests that unknown subcommands fail.
func TestRootCmdUnknownCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"banish"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

// TestBuildConfig tests configuration resolution through the root
// command's persistent flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("explicit config file is applied", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yml")
		content := "strategy: model\nallowlist:\n  - only.example\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		cmd := NewRootCmd()
		if err := cmd.PersistentFlags().Set("config", path); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("failed to build config: %v", err)
		}
		if cfg.Strategy != "model" {
			t.Errorf("expected strategy model, got %q", cfg.Strategy)
		}
		if !cfg.Allowlist.Contains("only.example") {
			t.Error("expected the file allowlist to be applied")
		}
		if cfg.Allowlist.Contains("www.google.com") {
			t.Error("expected the file allowlist to replace the default")
		}
	})

	t.Run("explicit missing config file fails", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if err := cmd.PersistentFlags().Set("config", filepath.Join(t.TempDir(), "absent.yml")); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Fatal("expected an error for an explicit missing config file")
		}
	})

	t.Run("invalid strategy in the file fails validation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yml")
		if err := os.WriteFile(path, []byte("strategy: oracle\n"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		cmd := NewRootCmd()
		if err := cmd.PersistentFlags().Set("config", path); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}

// TestExitCodeError tests the error-to-exit-code carrier.
func TestExitCodeError(t *testing.T) {
	t.Parallel()

	err := exitCodeError{code: 2}
	if err.Error() != "exit code 2" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
