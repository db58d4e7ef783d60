package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tracksep/application/extraction"
	"tracksep/domain/media"
	"tracksep/infrastructure/config"
	"tracksep/infrastructure/ffmpeg"
	"tracksep/infrastructure/filesystem"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	extractOutputDir     string
	extractVideoStream   int
	extractAudioStream   int
	extractVideoTemplate string
	extractAudioTemplate string
	extractInteractive   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the video and audio tracks of a file",
	Long: `Extract one video stream and one audio stream from a file into two
separate outputs: a video-only .mp4 and an audio-only file whose extension
follows the configured audio codec.

Without --output-dir the configured default output folder is used, and
without that the input's own folder. Stream indices come from
'tracksep probe'; when omitted ffmpeg picks its default streams.

Example:
  tracksep extract movie.mkv
  tracksep extract movie.mkv --video-stream 0 --audio-stream 1 --output-dir ./out
  tracksep extract movie.mkv --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutputDir, "output-dir", "o", "", "Output folder (default from settings, then the input's folder)")
	extractCmd.Flags().IntVar(&extractVideoStream, "video-stream", -1, "Index of the video stream to extract")
	extractCmd.Flags().IntVar(&extractAudioStream, "audio-stream", -1, "Index of the audio stream to extract")
	extractCmd.Flags().StringVar(&extractVideoTemplate, "video-template", "", "Video filename template, {filename} is the input name (default from settings)")
	extractCmd.Flags().StringVar(&extractAudioTemplate, "audio-template", "", "Audio filename template (default from settings)")
	extractCmd.Flags().BoolVarP(&extractInteractive, "interactive", "i", false, "Choose streams from a list of probed streams")
}

// FileSizer reports file sizes for the completion summary
type FileSizer interface {
	Size(path string) int64
}

// ExtractDependencies are the collaborators of the extract command
type ExtractDependencies struct {
	Extractor   media.StreamExtractor
	Prober      media.StreamProber
	FileChecker media.FileChecker
	FileSizer   FileSizer
	Prompter    Prompter
	Logger      *slog.Logger
}

// ExtractOptions are the user's choices for one extract invocation
type ExtractOptions struct {
	InputPath     string
	OutputDir     string
	VideoStream   int // negative means unset
	AudioStream   int
	VideoTemplate string
	AudioTemplate string
	Interactive   bool
}

func runExtract(cmd *cobra.Command, args []string) error {
	s, err := GetSettings()
	if err != nil {
		return err
	}

	log := GetLogger()
	checker := filesystem.NewChecker()

	if sp, ok := DefaultPrompter.(*SurveyPrompter); ok {
		sp.DarkMode = s.DarkMode
	}

	deps := ExtractDependencies{
		Extractor: ffmpeg.NewExtractor(
			ffmpeg.WithExtractorFFmpegPath(s.ToolPath),
			ffmpeg.WithExtractorLogger(log),
		),
		Prober: ffmpeg.NewProber(
			ffmpeg.WithProberFFmpegPath(s.ToolPath),
			ffmpeg.WithProberLogger(log),
		),
		FileChecker: checker,
		FileSizer:   checker,
		Prompter:    DefaultPrompter,
		Logger:      log,
	}

	opts := ExtractOptions{
		InputPath:     args[0],
		OutputDir:     extractOutputDir,
		VideoStream:   extractVideoStream,
		AudioStream:   extractAudioStream,
		VideoTemplate: extractVideoTemplate,
		AudioTemplate: extractAudioTemplate,
		Interactive:   extractInteractive,
	}

	return RunExtractWithDependencies(cmd.Context(), deps, s, opts, DefaultOutput)
}

// RunExtractWithDependencies runs the extract command with injected dependencies (for testing)
func RunExtractWithDependencies(
	ctx context.Context,
	deps ExtractDependencies,
	s *config.Settings,
	opts ExtractOptions,
	output OutputWriter,
) error {
	req := extraction.Request{
		InputPath:     opts.InputPath,
		OutputDir:     opts.OutputDir,
		VideoStream:   optionalIndex(opts.VideoStream),
		AudioStream:   optionalIndex(opts.AudioStream),
		VideoTemplate: opts.VideoTemplate,
		AudioTemplate: opts.AudioTemplate,
	}

	job, err := extraction.NewJob(req, extraction.Preferences{
		OutputFolder:  s.DefaultOutputFolder,
		VideoTemplate: s.VideoTemplate,
		AudioTemplate: s.AudioTemplate,
		Codecs:        s.CodecSettings(),
	})
	if err != nil {
		return err
	}

	// Validation failures must stop the command before ffprobe or ffmpeg run
	if err := job.CheckFilesystem(deps.FileChecker); err != nil {
		return err
	}

	// Verify ffmpeg is available if extractor supports it
	if verifiable, ok := deps.Extractor.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	if opts.Interactive {
		if err := chooseStreams(ctx, deps, &req, output); err != nil {
			return err
		}
		job.VideoStream = req.VideoStream
		job.AudioStream = req.AudioStream
	}

	service := extraction.NewService(deps.Extractor, deps.FileChecker, deps.Logger)

	events, err := service.Start(ctx, job)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Extracting %s...\n", job.InputPath)

	var failure string
	if err := extraction.Drain(events, func(ev media.Event) {
		if ev.Failed() {
			failure = ev.Message()
			return
		}
		fmt.Fprintf(output, "[%3d%%] %s stream extracted\n", ev.Percent, ev.Stage)
	}); err != nil {
		return &extractionError{message: failure, err: err}
	}

	fmt.Fprintln(output, "Extraction Complete!")
	printCreated(output, deps.FileSizer, "Video", job.OutputVideo)
	printCreated(output, deps.FileSizer, "Audio", job.OutputAudio)
	return nil
}

// chooseStreams prompts for any stream index the flags left unset
func chooseStreams(ctx context.Context, deps ExtractDependencies, req *extraction.Request, output OutputWriter) error {
	probe := extraction.NewProbeService(deps.Prober, deps.FileChecker)
	result, err := probe.Probe(ctx, req.InputPath)
	if err != nil {
		return err
	}

	if result.Empty() {
		fmt.Fprintln(output, "No streams found; ffmpeg will choose the streams.")
		return nil
	}

	if req.VideoStream == nil {
		idx, err := selectStream(deps.Prompter, "Video stream?", result.Video)
		if err != nil {
			return err
		}
		req.VideoStream = idx
	}

	if req.AudioStream == nil {
		idx, err := selectStream(deps.Prompter, "Audio stream?", result.Audio)
		if err != nil {
			return err
		}
		req.AudioStream = idx
	}

	return nil
}

// selectStream returns the chosen stream's index, or nil when there is
// nothing to choose from
func selectStream(prompter Prompter, message string, streams []media.StreamDescriptor) (*int, error) {
	if len(streams) == 0 {
		return nil, nil
	}

	options := make([]string, len(streams))
	for i, s := range streams {
		options[i] = s.String()
	}

	choice, err := prompter.Select(message, options, 0)
	if err != nil {
		return nil, fmt.Errorf("prompt cancelled")
	}
	if choice < 0 || choice >= len(streams) {
		return nil, fmt.Errorf("invalid stream selection")
	}
	return media.StreamIndex(streams[choice].Index), nil
}

func printCreated(output OutputWriter, sizer FileSizer, label, path string) {
	if sizer == nil {
		fmt.Fprintf(output, "  %s: %s\n", label, path)
		return
	}
	fmt.Fprintf(output, "  %s: %s (%s)\n", label, path, humanize.Bytes(uint64(max(sizer.Size(path), 0))))
}

// extractionError reports a failed stage with its user-facing message
type extractionError struct {
	message string
	err     error
}

func (e *extractionError) Error() string {
	return e.message
}

func (e *extractionError) Unwrap() error {
	return e.err
}

func optionalIndex(i int) *int {
	if i < 0 {
		return nil
	}
	return media.StreamIndex(i)
}
