package submit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// ExecConfig contains configuration for executing a single command.
type ExecConfig struct {
	Command string            // Command or script path to execute
	Shell   string            // Shell to use (bash, zsh, sh)
	CWD     string            // Working directory
	Env     map[string]string // Environment variables
	Stream  bool              // Whether to stream output line by line
}

// ExecResult contains the result of executing a single command.
type ExecResult struct {
	Command  string
	ExitCode int
	Success  bool
	Output   string
	Duration time.Duration
	Error    error
}

// Exec executes a single command with the given configuration.
func Exec(ctx context.Context, config ExecConfig) ExecResult {
	startTime := time.Now()

	result := ExecResult{
		Command: config.Command,
	}

	shell := config.Shell
	if shell == "" {
		shell = "bash"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", config.Command)

	if config.CWD != "" {
		cmd.Dir = config.CWD
	}
	if len(config.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range config.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var output strings.Builder
	if config.Stream {
		// Stream output in real-time
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			result.Error = fmt.Errorf("failed to create stdout pipe: %w", err)
			result.Duration = time.Since(startTime)
			return result
		}
		stderr, err := cmd.StderrPipe()
		if err != nil {
			result.Error = fmt.Errorf("failed to create stderr pipe: %w", err)
			result.Duration = time.Since(startTime)
			return result
		}

		if err := cmd.Start(); err != nil {
			result.Error = fmt.Errorf("failed to start command: %w", err)
			result.Duration = time.Since(startTime)
			return result
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		wg.Add(2)

		readLines := func(r io.Reader) {
			defer wg.Done()
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				mu.Lock()
				output.WriteString(scanner.Text() + "\n")
				mu.Unlock()
			}
		}
		go readLines(stdout)
		go readLines(stderr)

		err = cmd.Wait()
		wg.Wait()

		result.Output = output.String()
		result.Duration = time.Since(startTime)

		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				result.ExitCode = getExitCode(exitErr)
			} else {
				result.ExitCode = 1
			}
			result.Error = err
			return result
		}
	} else {
		// Capture all output at once
		out, err := cmd.CombinedOutput()
		output.Write(out)
		result.Output = output.String()
		result.Duration = time.Since(startTime)

		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				result.ExitCode = getExitCode(exitErr)
			} else {
				result.ExitCode = 1
			}
			result.Error = err
			return result
		}
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

// getExitCode extracts the exit code from an exec.ExitError.
func getExitCode(err *exec.ExitError) int {
	if status, ok := err.Sys().(syscall.WaitStatus); ok {
		return status.ExitStatus()
	}
	return 1
}
