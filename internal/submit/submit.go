// Package submit provides pipeline command submission.
//
// Each submission writes a shell script into the project's submission
// folder and, unless running dry, executes it through the configured shell.
// Flag files recording run status are written by the pipelines themselves;
// this package only launches them.
package submit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seqkit/loopr/internal/errors"
)

// Submission is one rendered pipeline command for one sample.
type Submission struct {
	// ID uniquely identifies the submission.
	ID string
	// Sample is the sample name.
	Sample string
	// Pipeline is the pipeline name.
	Pipeline string
	// Command is the fully rendered command.
	Command string
}

// NewSubmission builds a submission with a fresh ID.
func NewSubmission(sample, pipeline, command string) Submission {
	return Submission{
		ID:       uuid.New().String(),
		Sample:   sample,
		Pipeline: pipeline,
		Command:  command,
	}
}

// Result contains the outcome of a submission.
type Result struct {
	Submission Submission
	ScriptPath string
	ExitCode   int
	Success    bool
	Skipped    bool // dry run
	Output     string
	Duration   time.Duration
	Error      error
}

// Submitter writes and executes submission scripts.
type Submitter struct {
	folder string
	shell  string
	dryRun bool
	stream bool
	logger *zap.Logger
}

// New creates a Submitter writing scripts into folder.
func New(folder string, opts ...Option) *Submitter {
	s := &Submitter{
		folder: folder,
		shell:  "bash",
		stream: true,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithShell sets the shell used to execute scripts.
func WithShell(shell string) Option {
	return func(s *Submitter) {
		if shell != "" {
			s.shell = shell
		}
	}
}

// WithDryRun renders scripts without executing them.
func WithDryRun(dry bool) Option {
	return func(s *Submitter) { s.dryRun = dry }
}

// WithStreamOutput enables/disables output streaming.
func WithStreamOutput(stream bool) Option {
	return func(s *Submitter) { s.stream = stream }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// ScriptPath returns the script path for a submission,
// <folder>/<pipeline>_<sample>.sub.
func (s *Submitter) ScriptPath(sub Submission) string {
	return filepath.Join(s.folder, fmt.Sprintf("%s_%s.sub", sub.Pipeline, sub.Sample))
}

// Submit writes the submission script and executes it unless dry-running.
func (s *Submitter) Submit(ctx context.Context, sub Submission) Result {
	result := Result{Submission: sub}

	if err := os.MkdirAll(s.folder, 0755); err != nil {
		result.Error = &errors.SubmissionError{Op: "write", Sample: sub.Sample, Err: err}
		return result
	}

	script := fmt.Sprintf("#!/usr/bin/env %s\n# loopr submission %s\n# sample: %s\n# pipeline: %s\n\n%s\n",
		s.shell, sub.ID, sub.Sample, sub.Pipeline, sub.Command)

	scriptPath := s.ScriptPath(sub)
	if err := os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		result.Error = &errors.SubmissionError{Op: "write", Sample: sub.Sample, Err: err}
		return result
	}
	result.ScriptPath = scriptPath

	s.logger.Debug("wrote submission script",
		zap.String("sample", sub.Sample),
		zap.String("pipeline", sub.Pipeline),
		zap.String("script", scriptPath))

	if s.dryRun {
		result.Skipped = true
		result.Success = true
		return result
	}

	exec := Exec(ctx, ExecConfig{
		Command: scriptPath,
		Shell:   s.shell,
		Stream:  s.stream,
	})
	result.ExitCode = exec.ExitCode
	result.Success = exec.Success
	result.Output = exec.Output
	result.Duration = exec.Duration
	if exec.Error != nil {
		result.Error = &errors.SubmissionError{Op: "exec", Sample: sub.Sample, Err: exec.Error}
	}

	s.logger.Debug("submission finished",
		zap.String("sample", sub.Sample),
		zap.Bool("success", result.Success),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration))
	return result
}
