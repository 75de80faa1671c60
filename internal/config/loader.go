package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".urlsentry"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML shape of the configuration file.
//
// Example:
//
//	strategy: model
//	bundle: /var/lib/urlsentry/bundle.json
//	strict: true
//	allowlist:
//	  - www.google.com
//	  - github.com
type File struct {
	// Strategy selects the scoring strategy ("rules" or "model").
	Strategy string `yaml:"strategy,omitempty"`

	// Bundle is the model bundle path.
	Bundle string `yaml:"bundle,omitempty"`

	// DataDir is the history database directory.
	DataDir string `yaml:"data_dir,omitempty"`

	// Strict enables fail-closed behavior for per-input classification
	// failures at the process bridge.
	Strict bool `yaml:"strict,omitempty"`

	// Allowlist lists trusted hosts. When present it replaces the
	// compiled-in default list entirely rather than extending it, so the
	// file is the single source of truth for what bypasses the model.
	Allowlist []string `yaml:"allowlist,omitempty"`
}

// LoadConfigFile loads engine configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this based on whether the path was explicitly specified
// by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply merges file values into the config. File values win over
// defaults; CLI flags are applied after this and win over both.
func (c *Config) Apply(cf *File) {
	if cf == nil {
		return
	}
	if cf.Strategy != "" {
		c.Strategy = cf.Strategy
	}
	if cf.Bundle != "" {
		c.BundlePath = cf.Bundle
	}
	if cf.DataDir != "" {
		c.DataDir = cf.DataDir
	}
	if cf.Strict {
		c.Strict = true
	}
	if len(cf.Allowlist) > 0 {
		c.Allowlist = NewAllowlist(cf.Allowlist)
	}
}

// FindConfigFile searches for the configuration file in order:
// the explicit path if given, then the current directory, then the
// user's home directory. Returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// WriteStarterFile writes a starter configuration file at path with the
// default strategy and allowlist, for the init command. Fails if the
// file already exists.
func WriteStarterFile(path string, allowlist Allowlist) error {
	if _, err := os.Stat(path); err == nil {
		return os.ErrExist
	}

	cf := File{
		Strategy:  DefaultStrategy,
		Allowlist: allowlist.Hosts(),
	}
	data, err := yaml.Marshal(&cf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
