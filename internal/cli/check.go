package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqkit/loopr/internal/config"
	"github.com/seqkit/loopr/internal/errors"
	"github.com/seqkit/loopr/internal/flags"
	"github.com/seqkit/loopr/internal/project"
)

// OutputFormat defines the output format for the check command.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

// CheckOptions contains the options for the check command.
type CheckOptions struct {
	ConfigPath  string
	ResultsRoot string
	Flags       []string
	Sample      string
	Pipeline    string
	Format      string
}

// NewCheckCommand creates the check command for reporting flag status.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report pipeline status from flag files",
		Long: `Report pipeline run status by discovering flag files.

By default the project's samples are checked, locating the project config
through --config or the nearest dotfile. With --results-root, a bare
directory is checked instead, assuming each immediate subdirectory is one
sample's results folder; the two addressing modes are mutually exclusive.

With --sample and --pipeline, only that sample's flag files for that
pipeline are listed.

Examples:
  loopr check                          # status of the current project
  loopr check --flag failed            # only failed flags
  loopr check --results-root /data/out # bare directory mode
  loopr check --sample atac_A --pipeline wgbs
  loopr check --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "project config file path")
	cmd.Flags().StringVar(&opts.ResultsRoot, "results-root", "", "check a bare results directory instead of a project")
	cmd.Flags().StringSliceVar(&opts.Flags, "flag", nil, "flag name to check (repeatable; default: all)")
	cmd.Flags().StringVar(&opts.Sample, "sample", "", "restrict to one sample")
	cmd.Flags().StringVar(&opts.Pipeline, "pipeline", "", "pipeline name for --sample mode")
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format (table, json, plain)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	logger := Logger()

	toolCfg, err := config.LoadWithDefaults()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	format := opts.Format
	if format == "" {
		format = toolCfg.Output.Format
	}

	// Parse the requested flags up front.
	var want []flags.Flag
	for _, name := range opts.Flags {
		f, err := flags.Parse(name)
		if err != nil {
			return err
		}
		want = append(want, f)
	}

	var prj *project.Project
	if opts.ResultsRoot == "" {
		cfgPath, err := resolveProjectConfig(opts.ConfigPath, logger)
		if err != nil {
			return err
		}
		prj, err = project.Load(cfgPath, logger,
			project.WithSubdirDefaults(toolCfg.Project.ResultsSubdir, toolCfg.Project.SubmissionSubdir))
		if err != nil {
			return err
		}
		ApplyProjectSettings(cmd, prj, logger)
	}

	if opts.Sample != "" {
		if prj == nil {
			return fmt.Errorf("--sample requires a project, not --results-root")
		}
		if opts.Pipeline == "" {
			return fmt.Errorf("--sample requires --pipeline")
		}
		return checkSample(prj, opts.Sample, opts.Pipeline, logger)
	}

	filesByFlag, err := flags.FetchFlagFiles(flags.Query{
		Project:     prj,
		ResultsRoot: opts.ResultsRoot,
		Flags:       want,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	switch OutputFormat(format) {
	case FormatTable:
		printFlagTable(filesByFlag, toolCfg.Output.Color)
	case FormatJSON:
		return printFlagJSON(filesByFlag)
	case FormatPlain:
		printFlagPlain(filesByFlag)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or plain)", format)
	}

	return nil
}

// checkSample lists one sample's flag files for one pipeline.
func checkSample(prj *project.Project, sampleName, pipeline string, logger *zap.Logger) error {
	var sample *project.Sample
	for _, s := range prj.Samples {
		if s.Name == sampleName {
			sample = s
			break
		}
	}
	if sample == nil {
		return errors.Wrap(errors.ErrNotFound, fmt.Sprintf("sample %q", sampleName))
	}

	found := flags.FetchSampleFlags(logger, prj.SampleFolder(sample), pipeline)
	if len(found) == 0 {
		fmt.Printf("No flag files for sample %s, pipeline %s\n", sampleName, pipeline)
		return nil
	}
	for _, p := range found {
		fmt.Println(p)
	}
	return nil
}

// flagStyles maps flags to their terminal colors.
var flagStyles = map[flags.Flag]lipgloss.Style{
	flags.Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	flags.Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	flags.Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	flags.Waiting:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	flags.Partial:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
}

// printFlagTable prints flag counts in table format.
func printFlagTable(filesByFlag map[flags.Flag][]string, color bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	headerFmt := func(format string, vals ...interface{}) string {
		s := fmt.Sprintf(format, vals...)
		if color {
			return headerStyle.Render(s)
		}
		return s
	}

	tbl := table.New("STATUS", "COUNT", "FILES").WithHeaderFormatter(headerFmt)

	total := 0
	for _, f := range flags.All() {
		paths, ok := filesByFlag[f]
		if !ok {
			continue
		}
		total += len(paths)

		label := flags.AppearanceFor(f, "table").Label
		if color {
			if style, ok := flagStyles[f]; ok {
				label = style.Render(label)
			}
		}

		files := flags.NoDataPlaceholder
		switch {
		case len(paths) == 1:
			files = paths[0]
		case len(paths) > 1:
			files = fmt.Sprintf("%s (+%d more)", paths[0], len(paths)-1)
		}
		tbl.AddRow(label, len(paths), files)
	}

	tbl.Print()
	fmt.Printf("\nTotal: %d flag file(s)\n", total)
}

// printFlagJSON prints flag discovery results in JSON format.
func printFlagJSON(filesByFlag map[flags.Flag][]string) error {
	type flagGroup struct {
		Flag  string   `json:"flag"`
		Count int      `json:"count"`
		Files []string `json:"files"`
	}

	var groups []flagGroup
	for _, f := range flags.All() {
		paths, ok := filesByFlag[f]
		if !ok {
			continue
		}
		if paths == nil {
			paths = []string{}
		}
		groups = append(groups, flagGroup{
			Flag:  string(f),
			Count: len(paths),
			Files: paths,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(groups)
}

// printFlagPlain prints flag discovery results in plain text format.
func printFlagPlain(filesByFlag map[flags.Flag][]string) {
	total := 0
	for _, f := range flags.All() {
		paths, ok := filesByFlag[f]
		if !ok {
			continue
		}
		total += len(paths)

		fmt.Printf("%s: %d\n", f, len(paths))
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}
	fmt.Printf("\nTotal: %d flag file(s)\n", total)
}
