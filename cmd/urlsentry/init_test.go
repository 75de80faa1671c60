package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urlsentry/urlsentry/internal/config"
)

// TestInitCmd tests starter configuration creation.
func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes a loadable starter file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".urlsentry")

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{"init", "--output", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("failed to init: %v", err)
		}
		if !strings.Contains(out.String(), "wrote "+path) {
			t.Errorf("expected a confirmation line, got:\n%s", out.String())
		}

		cf, err := config.LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load starter: %v", err)
		}
		if cf.Strategy != config.DefaultStrategy {
			t.Errorf("expected default strategy, got %q", cf.Strategy)
		}
		if len(cf.Allowlist) == 0 {
			t.Error("expected the default allowlist in the starter file")
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".urlsentry")

		first := NewRootCmd()
		first.SetOut(&bytes.Buffer{})
		first.SetErr(&bytes.Buffer{})
		first.SetArgs([]string{"init", "--output", path})
		if err := first.Execute(); err != nil {
			t.Fatalf("failed to init: %v", err)
		}

		second := NewRootCmd()
		second.SetOut(&bytes.Buffer{})
		second.SetErr(&bytes.Buffer{})
		second.SetArgs([]string{"init", "--output", path})
		if err := second.Execute(); err == nil {
			t.Fatal("expected an error for an existing file")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".urlsentry")

		for _, args := range [][]string{
			{"init", "--output", path},
			{"init", "--output", path, "--force"},
		} {
			cmd := NewRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("failed to run %v: %v", args, err)
			}
		}
	})
}
