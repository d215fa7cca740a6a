// Package config provides tool-level configuration management for loopr.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields. Project-level configuration is
// separate (see internal/project); this package only covers preferences
// of the loopr tool itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration struct for loopr.
// It contains all configuration sections as embedded structs.
type Config struct {
	Output    OutputConfig    `toml:"output"`
	Submitter SubmitterConfig `toml:"submitter"`
	Project   ProjectConfig   `toml:"project"`
}

// OutputConfig contains report output settings.
type OutputConfig struct {
	// Format is the default output format for check reports.
	// Valid values: "table", "json", "plain".
	Format string `toml:"format"`

	// Color controls colored terminal output.
	Color bool `toml:"color"`
}

// SubmitterConfig contains command submission settings.
type SubmitterConfig struct {
	// Shell is the shell used to execute submission scripts.
	// Valid values: "bash", "zsh", "sh".
	Shell string `toml:"shell"`

	// DryRun renders submission scripts without executing them.
	DryRun bool `toml:"dry_run"`

	// StreamOutput controls whether command output is streamed.
	StreamOutput bool `toml:"stream_output"`
}

// ProjectConfig contains defaults applied to loaded projects.
type ProjectConfig struct {
	// ResultsSubdir is the default per-sample results subdirectory.
	ResultsSubdir string `toml:"results_subdir"`

	// SubmissionSubdir is the default submission subdirectory.
	SubmissionSubdir string `toml:"submission_subdir"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	// Detect default shell from environment
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "bash"
	} else {
		shell = filepath.Base(shell)
	}
	switch shell {
	case "bash", "zsh", "sh":
	default:
		shell = "bash"
	}

	return &Config{
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Submitter: SubmitterConfig{
			Shell:        shell,
			DryRun:       false,
			StreamOutput: true,
		},
		Project: ProjectConfig{
			ResultsSubdir:    "results_pipeline",
			SubmissionSubdir: "submission",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"table": true,
		"json":  true,
		"plain": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output.format must be one of: table, json, plain; got %q", c.Output.Format)
	}

	validShells := map[string]bool{
		"bash": true,
		"zsh":  true,
		"sh":   true,
	}
	if !validShells[c.Submitter.Shell] {
		return fmt.Errorf("submitter.shell must be one of: bash, zsh, sh; got %q", c.Submitter.Shell)
	}

	if c.Project.ResultsSubdir == "" {
		return fmt.Errorf("project.results_subdir cannot be empty")
	}
	if c.Project.SubmissionSubdir == "" {
		return fmt.Errorf("project.submission_subdir cannot be empty")
	}

	return nil
}
