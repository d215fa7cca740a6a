package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqkit/loopr/internal/dotfile"
	"github.com/seqkit/loopr/internal/project"
)

// resolveProjectConfig returns the project config path: the explicit
// --config value when given, otherwise the path recorded in the nearest
// dotfile at or above the working directory.
func resolveProjectConfig(explicit string, logger *zap.Logger) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dotfile.ReadConfigPath(cwd, logger)
}

// ApplyProjectSettings overlays project-level CLI settings onto a command's
// flags. Settings come from the project's looper section ("all" plus the
// subcommand's own section); a setting only applies to a flag that exists
// and was not set on the command line, so precedence is
// CLI > project config > flag default.
//
// Setting keys use the flag spelling with either '-' or '_'
// (e.g. "dry_run" and "dry-run" both target --dry-run). List values are
// applied element by element, which appends for slice-valued flags.
func ApplyProjectSettings(cmd *cobra.Command, prj *project.Project, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for key, val := range prj.Settings(cmd.Name()) {
		name := strings.ReplaceAll(key, "_", "-")
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			logger.Debug("project setting matches no flag, skipping",
				zap.String("subcommand", cmd.Name()),
				zap.String("setting", key))
			continue
		}
		if flag.Changed {
			continue
		}

		var err error
		switch v := val.(type) {
		case []any:
			for _, item := range v {
				if err = flag.Value.Set(fmt.Sprint(item)); err != nil {
					break
				}
			}
		default:
			err = flag.Value.Set(fmt.Sprint(v))
		}
		if err != nil {
			logger.Debug("failed to apply project setting",
				zap.String("setting", key),
				zap.Error(err))
			continue
		}
		flag.Changed = true
		logger.Debug("applied project setting",
			zap.String("subcommand", cmd.Name()),
			zap.String("flag", name))
	}
}
