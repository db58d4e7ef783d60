package media

import (
	"errors"
	"fmt"
	"strings"
)

// ErrJobInProgress is returned when an extraction is started while another is running
var ErrJobInProgress = errors.New("an extraction job is already running")

// ToolNotFoundError reports that ffmpeg or ffprobe could not be launched
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found or not executable: %v", e.Tool, e.Err)
}

func (e *ToolNotFoundError) Unwrap() error {
	return e.Err
}

// ToolFailedError reports a tool that ran but exited non-zero
type ToolFailedError struct {
	Stage    Stage
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ToolFailedError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	if e.Stage == "" {
		return fmt.Sprintf("%s failed: %s", e.Tool, detail)
	}
	return fmt.Sprintf("%s Extraction Failed: %s", e.Stage, detail)
}

// ValidationError rejects a job before any process is spawned
type ValidationError struct {
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s\n\nTo fix this, run:\n  %s", e.Message, e.Suggestion)
	}
	return e.Message
}

// IsToolNotFound reports whether err wraps a ToolNotFoundError
func IsToolNotFound(err error) bool {
	var target *ToolNotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
