// Package dotfile manages the loopr project dotfile.
//
// The dotfile is a small YAML file, .loopr.yaml, holding a single key that
// points at the project configuration. It lets loopr commands run from
// anywhere inside a project tree without repeating --config.
package dotfile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seqkit/loopr/internal/errors"
)

// Name is the dotfile filename.
const Name = ".loopr.yaml"

// configPathKey is the YAML key holding the project config path.
const configPathKey = "config_file_path"

// content is the dotfile's YAML shape.
type content struct {
	ConfigFilePath string `yaml:"config_file_path"`
}

// PathIn returns the dotfile path for the given directory.
func PathIn(dir string) string {
	return filepath.Join(dir, Name)
}

// Init writes a dotfile at path pointing to cfgPath. A relative cfgPath is
// resolved against the dotfile's directory and must name an existing file.
// An existing dotfile is refused unless force is set.
func Init(path, cfgPath string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Wrap(errors.ErrAlreadyExists, fmt.Sprintf("dotfile %s", path))
	}

	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(filepath.Dir(path), cfgPath)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		return errors.Wrap(errors.ErrNotFound,
			fmt.Sprintf("config path %s (must be absolute or relative to %s)", cfgPath, filepath.Dir(path)))
	}

	data, err := yaml.Marshal(content{ConfigFilePath: cfgPath})
	if err != nil {
		return fmt.Errorf("failed to marshal dotfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dotfile: %w", err)
	}
	return nil
}

// Find searches start and its parent directories for a dotfile and returns
// the first one found. Returns ErrNotFound when no parent up to the
// filesystem root contains one.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := PathIn(dir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrap(errors.ErrNotFound,
				fmt.Sprintf("dotfile %s not found in %s or any parent", Name, start))
		}
		dir = parent
	}
}

// ReadConfigPath locates a dotfile starting at start and returns the project
// config path recorded in it.
func ReadConfigPath(start string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dp, err := Find(start)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(dp)
	if err != nil {
		return "", fmt.Errorf("failed to read dotfile %s: %w", dp, err)
	}

	var c content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return "", fmt.Errorf("failed to parse dotfile %s: %w", dp, err)
	}
	if c.ConfigFilePath == "" {
		return "", errors.Wrap(errors.ErrInvalidArgument,
			fmt.Sprintf("dotfile %s lacks key %q", dp, configPathKey))
	}

	logger.Debug("resolved project config from dotfile",
		zap.String("dotfile", dp),
		zap.String("config", c.ConfigFilePath))
	return c.ConfigFilePath, nil
}
