package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seqkit/loopr/internal/config"
	"github.com/seqkit/loopr/internal/flags"
	"github.com/seqkit/loopr/internal/project"
	"github.com/seqkit/loopr/internal/protocols"
	"github.com/seqkit/loopr/internal/render"
	"github.com/seqkit/loopr/internal/submit"
)

// RunOptions contains the options for the run command.
type RunOptions struct {
	ConfigPath       string
	PipelinePath     string
	IncludeProtocols []string
	ExcludeProtocols []string
	DryRun           bool
	IgnoreFlags      bool
	Limit            int
	Shell            string
}

// NewRunCommand creates the run command for submitting pipeline commands.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render and submit pipeline commands per sample",
		Long: `Submit a pipeline command for each selected sample.

The project is located through --config or the nearest dotfile. Samples
may be narrowed by protocol with --include-protocol or --exclude-protocol
(mutually exclusive; protocol matching is case- and punctuation-
insensitive). Samples that already have flag files for the pipeline are
skipped unless --ignore-flags is given.

Settings in the project config's looper section (under "all" or "run")
apply to any flag not set on the command line.

Examples:
  loopr run --pipeline-interface wgbs.yaml
  loopr run --pipeline-interface wgbs.yaml --include-protocol ATAC-Seq
  loopr run --pipeline-interface wgbs.yaml --dry-run --limit 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "project config file path")
	cmd.Flags().StringVar(&opts.PipelinePath, "pipeline-interface", "", "pipeline interface file path (required)")
	cmd.Flags().StringSliceVar(&opts.IncludeProtocols, "include-protocol", nil, "only run samples with this protocol (repeatable)")
	cmd.Flags().StringSliceVar(&opts.ExcludeProtocols, "exclude-protocol", nil, "skip samples with this protocol (repeatable)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "write submission scripts without executing them")
	cmd.Flags().BoolVar(&opts.IgnoreFlags, "ignore-flags", false, "submit even when flag files exist for the pipeline")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of samples to submit (0 = no limit)")
	cmd.Flags().StringVar(&opts.Shell, "shell", "", "shell for submission scripts (default from tool config)")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := Logger()

	toolCfg, err := config.LoadWithDefaults()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfgPath, err := resolveProjectConfig(opts.ConfigPath, logger)
	if err != nil {
		return err
	}
	prj, err := project.Load(cfgPath, logger,
		project.WithSubdirDefaults(toolCfg.Project.ResultsSubdir, toolCfg.Project.SubmissionSubdir))
	if err != nil {
		return err
	}

	// Project settings fill in flags left unset on the command line.
	ApplyProjectSettings(cmd, prj, logger)

	if opts.PipelinePath == "" {
		return fmt.Errorf("--pipeline-interface is required")
	}
	pi, err := project.LoadPipelineInterface(opts.PipelinePath)
	if err != nil {
		return err
	}

	samples, err := protocols.FetchSamples(prj.Samples,
		protocols.NewSpec(opts.IncludeProtocols...),
		protocols.NewSpec(opts.ExcludeProtocols...))
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("No samples selected.")
		return nil
	}

	shell := opts.Shell
	if shell == "" {
		shell = toolCfg.Submitter.Shell
	}
	dryRun := opts.DryRun || (!cmd.Flags().Changed("dry-run") && toolCfg.Submitter.DryRun)

	submitter := submit.New(prj.SubmissionFolder(),
		submit.WithShell(shell),
		submit.WithDryRun(dryRun),
		submit.WithStreamOutput(toolCfg.Submitter.StreamOutput),
		submit.WithLogger(logger))

	var submitted, skipped, failed int
	for _, s := range samples {
		if opts.Limit > 0 && submitted >= opts.Limit {
			logger.Debug("submission limit reached", zap.Int("limit", opts.Limit))
			break
		}

		if !opts.IgnoreFlags {
			existing := flags.FetchSampleFlags(logger, prj.SampleFolder(s), pi.Name)
			if len(existing) > 0 {
				fmt.Printf("Skipping %s: flag file present (%s)\n", s.Name, existing[0])
				skipped++
				continue
			}
		}

		command, err := render.Command(pi.CommandTemplate, namespacesFor(prj, s, pi))
		if err != nil {
			fmt.Printf("Failed to render command for %s: %v\n", s.Name, err)
			failed++
			continue
		}

		result := submitter.Submit(ctx, submit.NewSubmission(s.Name, pi.Name, command))
		switch {
		case result.Error != nil:
			fmt.Printf("Submission failed for %s: %v\n", s.Name, result.Error)
			failed++
		case result.Skipped:
			fmt.Printf("Dry run: wrote %s\n", result.ScriptPath)
			submitted++
		case !result.Success:
			fmt.Printf("Submission failed for %s (exit %d)\n", s.Name, result.ExitCode)
			failed++
		default:
			fmt.Printf("Submitted %s (exit %d)\n", s.Name, result.ExitCode)
			submitted++
		}
	}

	fmt.Printf("\nSubmitted: %d  Skipped: %d  Failed: %d\n", submitted, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d submission(s) failed", failed)
	}
	return nil
}

// namespacesFor builds the rendering context for one sample: the looper,
// project, sample and pipeline namespaces.
func namespacesFor(prj *project.Project, s *project.Sample, pi *project.PipelineInterface) render.Namespaces {
	sample := map[string]any{
		"name":   s.Name,
		"folder": prj.SampleFolder(s),
	}
	for k, v := range s.Attributes {
		sample[k] = v
	}

	pipeline := map[string]any{"name": pi.Name}
	for k, v := range pi.Arguments {
		pipeline[k] = v
	}

	return render.Namespaces{
		"looper": {
			"output_dir":        prj.OutputDir,
			"results_folder":    prj.ResultsFolder(),
			"submission_folder": prj.SubmissionFolder(),
			"sample_folder":     prj.SampleFolder(s),
		},
		"project": {
			"name":       prj.Name,
			"output_dir": prj.OutputDir,
		},
		"sample":   sample,
		"pipeline": pipeline,
	}
}
