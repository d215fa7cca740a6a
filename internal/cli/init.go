// Package cli provides Cobra command definitions for loopr.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/seqkit/loopr/internal/dotfile"
	"github.com/seqkit/loopr/internal/errors"
)

// InitOptions contains the options for the init command.
type InitOptions struct {
	Force bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init <config>",
		Short: "Initialize a loopr dotfile in the current directory",
		Long: `Initialize a loopr dotfile pointing at a project configuration.

The dotfile (` + dotfile.Name + `) records the project config path so that
subsequent loopr commands run from anywhere inside the project tree
without repeating --config. The config path may be absolute or relative
to the current directory, and must exist.

Examples:
  loopr init project_config.yaml
  loopr init /data/projects/atac/project_config.yaml --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing dotfile")

	return cmd
}

func runInit(opts *InitOptions, cfgPath string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	path := dotfile.PathIn(cwd)
	force := opts.Force

	if _, err := os.Stat(path); err == nil && !force {
		if IsNoInput() {
			return errors.Wrap(errors.ErrAlreadyExists,
				fmt.Sprintf("dotfile %s (use --force to overwrite)", path))
		}

		var overwrite bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Dotfile %s already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		).Run(); err != nil {
			return fmt.Errorf("form error: %w", err)
		}
		if !overwrite {
			fmt.Println("Aborted.")
			return nil
		}
		force = true
	}

	if err := dotfile.Init(path, cfgPath, force); err != nil {
		return err
	}

	fmt.Printf("Initialized loopr dotfile: %s\n", path)
	return nil
}
