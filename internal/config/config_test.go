package config

import (
	"errors"
	"path/filepath"
	"testing"
)

// TestNewConfig tests the compiled-in defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if cfg.Strategy != StrategyRules {
		t.Errorf("expected default strategy rules, got %q", cfg.Strategy)
	}
	if cfg.Allowlist.Len() == 0 {
		t.Error("expected the default allowlist to be populated")
	}
	if cfg.Strict {
		t.Error("expected strict mode off by default")
	}
}

// TestConfigValidate tests strategy validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strategy string
		wantErr  bool
	}{
		{name: "rules", strategy: StrategyRules},
		{name: "model", strategy: StrategyModel},
		{name: "unknown", strategy: "oracle", wantErr: true},
		{name: "empty", strategy: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{Strategy: tt.strategy}
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStrategy) {
					t.Errorf("expected ErrInvalidStrategy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected valid strategy, got %v", err)
			}
		})
	}
}

// TestConfigResolvePaths tests that explicit paths win over XDG defaults.
func TestConfigResolvePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &Config{
		BundlePath: filepath.Join(dir, "bundle.json"),
		DataDir:    dir,
	}

	bundle, err := cfg.ResolveBundlePath()
	if err != nil {
		t.Fatalf("failed to resolve bundle path: %v", err)
	}
	if bundle != cfg.BundlePath {
		t.Errorf("expected explicit bundle path %q, got %q", cfg.BundlePath, bundle)
	}

	data, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("failed to resolve data dir: %v", err)
	}
	if data != dir {
		t.Errorf("expected explicit data dir %q, got %q", dir, data)
	}
}
