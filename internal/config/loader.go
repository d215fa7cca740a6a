// Package config provides tool-level configuration management for loopr.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. ~/.config/loopr/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "loopr", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: LOOPR_<SECTION>_<FIELD>
//
// Examples:
// - LOOPR_OUTPUT_FORMAT overrides [output].format
// - LOOPR_SUBMITTER_SHELL overrides [submitter].shell
// - LOOPR_SUBMITTER_DRY_RUN overrides [submitter].dry_run
//
// Boolean fields: use "true"/"false" strings.
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// Output section
	applyString("LOOPR_OUTPUT_FORMAT", &c.Output.Format)
	applyBool("LOOPR_OUTPUT_COLOR", &c.Output.Color)

	// Submitter section
	applyString("LOOPR_SUBMITTER_SHELL", &c.Submitter.Shell)
	applyBool("LOOPR_SUBMITTER_DRY_RUN", &c.Submitter.DryRun)
	applyBool("LOOPR_SUBMITTER_STREAM_OUTPUT", &c.Submitter.StreamOutput)

	// Project section
	applyString("LOOPR_PROJECT_RESULTS_SUBDIR", &c.Project.ResultsSubdir)
	applyString("LOOPR_PROJECT_SUBMISSION_SUBDIR", &c.Project.SubmissionSubdir)
}
