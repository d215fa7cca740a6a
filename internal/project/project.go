// Package project provides the project and sample model for loopr.
//
// A project is described by a YAML configuration file pointing at a CSV
// sample table. The model is deliberately thin: loopr only needs a unique
// name and an optional protocol per sample, plus the conventions for
// resolving per-sample results folders and the submission folder.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seqkit/loopr/internal/errors"
)

// Default folder names under a project's output directory.
const (
	DefaultResultsSubdir    = "results_pipeline"
	DefaultSubmissionSubdir = "submission"
)

// Project is a loaded project configuration together with its samples.
type Project struct {
	// Name is the project name.
	Name string `yaml:"name"`

	// OutputDir is the root directory for all pipeline outputs.
	OutputDir string `yaml:"output_dir"`

	// ResultsSubdir is the subdirectory of OutputDir holding per-sample
	// results folders (default: "results_pipeline").
	ResultsSubdir string `yaml:"results_subdir"`

	// SubmissionSubdir is the subdirectory of OutputDir holding submission
	// scripts and logs (default: "submission").
	SubmissionSubdir string `yaml:"submission_subdir"`

	// SampleTable is the path to the CSV sample table, absolute or relative
	// to the config file.
	SampleTable string `yaml:"sample_table"`

	// Amendments names the amendments active when the project was loaded.
	Amendments []string `yaml:"amendments"`

	// Looper holds per-subcommand CLI settings ("all" plus subcommand names).
	Looper map[string]map[string]any `yaml:"looper"`

	// Samples is the parsed sample table.
	Samples []*Sample `yaml:"-"`

	// ConfigPath is the path the project was loaded from.
	ConfigPath string `yaml:"-"`
}

// LoadOption adjusts project loading.
type LoadOption func(*Project)

// WithSubdirDefaults replaces the built-in results and submission
// subdirectory defaults, typically with tool-level config values. The
// project config file still wins over either.
func WithSubdirDefaults(results, submission string) LoadOption {
	return func(p *Project) {
		if results != "" {
			p.ResultsSubdir = results
		}
		if submission != "" {
			p.SubmissionSubdir = submission
		}
	}
}

// Load reads a project configuration and its sample table.
// Relative paths in the config resolve against the config file's directory.
func Load(path string, logger *zap.Logger, opts ...LoadOption) (*Project, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.ProjectError{Path: path, Err: errors.ErrNotFound}
		}
		return nil, &errors.ProjectError{Path: path, Err: err}
	}

	prj := &Project{
		ResultsSubdir:    DefaultResultsSubdir,
		SubmissionSubdir: DefaultSubmissionSubdir,
	}
	for _, opt := range opts {
		opt(prj)
	}
	if err := yaml.Unmarshal(data, prj); err != nil {
		return nil, &errors.ProjectError{Path: path, Err: fmt.Errorf("failed to parse config: %w", err)}
	}
	prj.ConfigPath = path

	if err := prj.validate(); err != nil {
		return nil, &errors.ProjectError{Path: path, Err: err}
	}

	cfgDir := filepath.Dir(path)
	prj.OutputDir = resolveAgainst(cfgDir, prj.OutputDir)

	if prj.SampleTable != "" {
		tablePath := resolveAgainst(cfgDir, prj.SampleTable)
		samples, err := loadSampleTable(tablePath)
		if err != nil {
			return nil, &errors.ProjectError{Path: path, Err: err}
		}
		prj.Samples = samples
	}

	logger.Debug("loaded project",
		zap.String("name", prj.Name),
		zap.String("config", path),
		zap.Int("samples", len(prj.Samples)))
	return prj, nil
}

func (p *Project) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if p.ResultsSubdir == "" {
		return fmt.Errorf("results_subdir cannot be empty")
	}
	if p.SubmissionSubdir == "" {
		return fmt.Errorf("submission_subdir cannot be empty")
	}
	return nil
}

// ResultsFolder returns the directory holding per-sample results folders.
func (p *Project) ResultsFolder() string {
	return filepath.Join(p.OutputDir, p.ResultsSubdir)
}

// SampleFolder returns the results folder for the given sample,
// <results_folder>/<sample_name>.
func (p *Project) SampleFolder(s *Sample) string {
	return filepath.Join(p.ResultsFolder(), s.Name)
}

// SubmissionFolder returns the directory holding submission scripts and logs.
func (p *Project) SubmissionFolder() string {
	return filepath.Join(p.OutputDir, p.SubmissionSubdir)
}

// FilePath builds a path for a project-level file with the given appendix,
// e.g. FilePath("objs_summary.tsv") under an amended project "prj" yields
// <output_dir>/prj_<amendments>_objs_summary.tsv.
func (p *Project) FilePath(appendix string) string {
	name := p.Name
	if len(p.Amendments) > 0 {
		name += "_" + strings.Join(p.Amendments, "_")
	}
	return filepath.Join(p.OutputDir, name+"_"+appendix)
}

// Settings returns the merged looper settings for a subcommand: values from
// the "all" section overlaid with the subcommand's own section.
func (p *Project) Settings(subcommand string) map[string]any {
	merged := make(map[string]any)
	for k, v := range p.Looper["all"] {
		merged[k] = v
	}
	for k, v := range p.Looper[subcommand] {
		merged[k] = v
	}
	return merged
}

func resolveAgainst(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
