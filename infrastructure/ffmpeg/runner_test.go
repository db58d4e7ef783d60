package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"tracksep/domain/media"
)

func TestExecCommandRunner_NotFound(t *testing.T) {
	runner := &ExecCommandRunner{}

	_, err := runner.Run(context.Background(), "tracksep-definitely-not-a-real-binary", "-version")
	if !media.IsToolNotFound(err) {
		t.Fatalf("Run() error = %v, want ToolNotFoundError", err)
	}
}

func TestExecCommandRunner_CapturesExitAndStderr(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	runner := &ExecCommandRunner{}
	res, err := runner.Run(context.Background(), sh, "-c", "echo out; echo boom >&2; exit 3")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Errorf("Stdout = %q, want out", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "boom" {
		t.Errorf("Stderr = %q, want boom", res.Stderr)
	}
}
