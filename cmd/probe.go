package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"tracksep/application/extraction"
	"tracksep/domain/media"
	"tracksep/infrastructure/ffmpeg"
	"tracksep/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "List the video and audio streams of a file",
	Long: `List the video and audio streams of a file using ffprobe.

ffprobe is looked up next to the configured ffmpeg executable. The INDEX
column is the value to pass to 'tracksep extract --video-stream' or
'--audio-stream'.

Example:
  tracksep probe movie.mkv`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	s, err := GetSettings()
	if err != nil {
		return err
	}

	prober := ffmpeg.NewProber(
		ffmpeg.WithProberFFmpegPath(s.ToolPath),
		ffmpeg.WithProberLogger(GetLogger()),
	)

	return RunProbeWithDependencies(cmd.Context(), prober, filesystem.NewChecker(), args[0], DefaultOutput)
}

// RunProbeWithDependencies runs the probe command with injected dependencies (for testing)
func RunProbeWithDependencies(ctx context.Context, prober media.StreamProber, fileChecker media.FileChecker, inputPath string, out OutputWriter) error {
	service := extraction.NewProbeService(prober, fileChecker)

	result, err := service.Probe(ctx, inputPath)
	if err != nil {
		return err
	}

	if result.Empty() {
		fmt.Fprintf(out, "No video or audio streams found in %s\n", inputPath)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tKIND\tCODEC\tDETAILS")
	for _, s := range result.Video {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Index, s.Kind, s.Codec, s.Resolution())
	}
	for _, s := range result.Audio {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s ch, %s Hz\n", s.Index, s.Kind, s.Codec, s.ChannelsLabel(), s.SampleRateLabel())
	}
	return w.Flush()
}
