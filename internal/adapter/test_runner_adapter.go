package adapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// DefaultTestTimeout bounds a single external test invocation.
const DefaultTestTimeout = 60 * time.Second

// RunSpec describes one external test invocation.
type RunSpec struct {
	Command string
	Args    []string
	Stdin   io.Reader
	Timeout time.Duration
}

// RunResult captures the outcome of one external test invocation. A timeout
// is a result, not an error: the caller turns it into a scoring outcome.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// TestRunnerAdapter abstracts external test execution.
type TestRunnerAdapter interface {
	// Run executes the command with the given arguments and stdin, bounded
	// by spec.Timeout (DefaultTestTimeout when zero). Errors are
	// reserved for failures to run the command at all; a nonzero exit is
	// reported through ExitCode.
	Run(ctx context.Context, spec RunSpec) (RunResult, error)
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct{}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{}
}

// Run executes the external test process.
func (a *LocalTestRunnerAdapter) Run(ctx context.Context, spec RunSpec) (RunResult, error) {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTestTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Command, spec.Args...)
	cmd.Stdin = spec.Stdin

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1

		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()

		return result, nil
	}

	if err != nil {
		return result, err
	}

	return result, nil
}
