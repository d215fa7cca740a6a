package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqkit/loopr/internal/errors"
)

// PipelineInterface describes one pipeline: its name and the command
// template rendered per sample. Flag files written by the pipeline are
// expected to be prefixed with Name.
type PipelineInterface struct {
	// Name identifies the pipeline and prefixes its flag files.
	Name string `yaml:"pipeline_name"`

	// CommandTemplate is the command rendered per sample, with
	// {namespace.attr} references (namespaces: looper, project, sample,
	// pipeline).
	CommandTemplate string `yaml:"command_template"`

	// Arguments holds extra static values exposed to the template under
	// the pipeline namespace.
	Arguments map[string]string `yaml:"arguments"`
}

// LoadPipelineInterface reads a pipeline interface from a YAML file.
func LoadPipelineInterface(path string) (*PipelineInterface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrNotFound, fmt.Sprintf("pipeline interface %s", path))
		}
		return nil, fmt.Errorf("failed to read pipeline interface %s: %w", path, err)
	}

	var pi PipelineInterface
	if err := yaml.Unmarshal(data, &pi); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline interface %s: %w", path, err)
	}
	if err := pi.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline interface %s: %w", path, err)
	}
	return &pi, nil
}

// Validate checks the pipeline interface for required fields.
func (pi *PipelineInterface) Validate() error {
	if pi.Name == "" {
		return fmt.Errorf("pipeline_name is required")
	}
	if pi.CommandTemplate == "" {
		return fmt.Errorf("command_template is required")
	}
	return nil
}
