package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDetectConfigPath tests that detection returns an absolute path or nothing.
func TestDetectConfigPath(t *testing.T) {
	// We can't easily mock the home directory, so we just verify
	// the function returns something (either a path or empty string).
	path := DetectConfigPath()
	if path != "" {
		if !filepath.IsAbs(path) {
			t.Errorf("DetectConfigPath() returned non-absolute path: %s", path)
		}
	}
}

// TestLoad_ValidConfig tests loading a valid config file.
func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[output]
format = "plain"
color = false

[submitter]
shell = "sh"
dry_run = true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// Config values should override defaults
	if cfg.Output.Format != "plain" {
		t.Errorf("expected output.format to be 'plain', got %q", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("expected output.color to be false")
	}
	if cfg.Submitter.Shell != "sh" {
		t.Errorf("expected submitter.shell to be 'sh', got %q", cfg.Submitter.Shell)
	}
	if !cfg.Submitter.DryRun {
		t.Error("expected submitter.dry_run to be true")
	}
	// Unset sections keep defaults
	if cfg.Project.ResultsSubdir != "results_pipeline" {
		t.Errorf("expected default project.results_subdir, got %q", cfg.Project.ResultsSubdir)
	}
}

// TestLoad_InvalidTOML tests that invalid TOML returns error.
func TestLoad_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[output
format = "plain"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid TOML config, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("error should mention parsing failure, got: %v", err)
	}
}

// TestLoad_ValidationFailed tests that validation failures are returned.
func TestLoad_ValidationFailed(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[output]
format = "html"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("expected error for invalid config, got nil")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error should mention validation failure, got: %v", err)
	}
}

// TestLoad_MissingFile tests that a missing file returns error.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

// TestEnvOverrides tests environment variable overrides.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOOPR_OUTPUT_FORMAT", "json")
	t.Setenv("LOOPR_SUBMITTER_DRY_RUN", "true")
	t.Setenv("LOOPR_OUTPUT_COLOR", "off")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Output.Format != "json" {
		t.Errorf("expected output.format 'json', got %q", cfg.Output.Format)
	}
	if !cfg.Submitter.DryRun {
		t.Error("expected submitter.dry_run true")
	}
	if cfg.Output.Color {
		t.Error("expected output.color false")
	}
}
