package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"tracksep/domain/media"
)

// Result holds the captured output and exit status of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes the command and waits for it. A non-zero exit is reported
	// through Result.ExitCode; the error is reserved for launch failures
	// (*media.ToolNotFoundError) and context cancellation.
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command, capturing stdout and stderr
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	return nil, &media.ToolNotFoundError{Tool: name, Err: err}
}

// Ensure ExecCommandRunner implements CommandRunner
var _ CommandRunner = (*ExecCommandRunner)(nil)
