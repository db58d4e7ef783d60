package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tracksep/domain/media"
)

// Extractor implements media.StreamExtractor using ffmpeg
type Extractor struct {
	ffmpegPath string
	runner     CommandRunner
	logger     *slog.Logger
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithExtractorFFmpegPath sets the ffmpeg executable checked by VerifyInstalled
func WithExtractorFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		e.ffmpegPath = path
	}
}

// WithExtractorCommandRunner sets a custom command runner (for testing)
func WithExtractorCommandRunner(runner CommandRunner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// WithExtractorLogger sets the logger used for command diagnostics
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new FFmpeg-based stream extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract implements media.StreamExtractor
func (e *Extractor) Extract(ctx context.Context, stage media.Stage, job *media.ExtractionJob) error {
	var args []string
	switch stage {
	case media.StageVideo:
		args = VideoArgs(job)
	case media.StageAudio:
		args = AudioArgs(job)
	default:
		return fmt.Errorf("unknown extraction stage %q", stage)
	}

	tool := job.Codecs.ToolPath
	log := e.logger.With("job", job.ID, "stage", string(stage))
	log.Info("running extraction command", "command", FormatCommand(tool, args))

	res, err := e.runner.Run(ctx, tool, args...)
	if err != nil {
		log.Error("could not run ffmpeg", "error", err)
		return fmt.Errorf("%s extraction: %w", strings.ToLower(string(stage)), err)
	}

	if res.ExitCode != 0 {
		failed := &media.ToolFailedError{
			Stage:    stage,
			Tool:     tool,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
		log.Error("extraction failed", "exit_code", res.ExitCode, "error", failed)
		return failed
	}

	if out := strings.TrimSpace(res.Stdout); out != "" {
		log.Debug("ffmpeg stdout", "output", out)
	}
	if out := strings.TrimSpace(res.Stderr); out != "" {
		log.Debug("ffmpeg stderr", "output", out)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available. A missing binary is
// reported as the runner's *media.ToolNotFoundError.
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	res, err := e.runner.Run(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &media.ToolFailedError{Tool: e.ffmpegPath, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// Ensure Extractor implements media.StreamExtractor
var _ media.StreamExtractor = (*Extractor)(nil)
