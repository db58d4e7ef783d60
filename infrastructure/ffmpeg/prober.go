package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"tracksep/domain/media"
)

// Prober implements media.StreamProber using ffprobe
type Prober struct {
	ffmpegPath string
	runner     CommandRunner
	logger     *slog.Logger
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithProberFFmpegPath sets the ffmpeg path ffprobe's location is derived from
func WithProberFFmpegPath(path string) ProberOption {
	return func(p *Prober) {
		p.ffmpegPath = path
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// WithProberLogger sets the logger used for probe diagnostics
func WithProberLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) {
		p.logger = logger
	}
}

// NewProber creates a new ffprobe-based stream prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe implements media.StreamProber. It never fails: any problem is
// logged and an empty result returned.
func (p *Prober) Probe(ctx context.Context, inputPath string) *media.ProbeResult {
	probePath := ProbePath(p.ffmpegPath)

	res, err := p.runner.Run(ctx, probePath, ProbeArgs(inputPath)...)
	if err != nil {
		p.logger.Error("ffprobe could not run", "path", probePath, "input", inputPath, "error", err)
		return &media.ProbeResult{}
	}
	if res.ExitCode != 0 {
		p.logger.Error("ffprobe failed", "input", inputPath, "exit_code", res.ExitCode, "stderr", res.Stderr)
		return &media.ProbeResult{}
	}

	result, err := ParseStreams([]byte(res.Stdout))
	if err != nil {
		p.logger.Error("error probing streams", "input", inputPath, "error", err)
		return &media.ProbeResult{}
	}

	p.logger.Debug("probed streams", "input", inputPath, "video", len(result.Video), "audio", len(result.Audio))
	return result
}

// ParseStreams converts ffprobe -show_streams JSON into a ProbeResult.
// Streams that are neither video nor audio are dropped.
// Exported for testing without a real ffprobe binary.
func ParseStreams(data []byte) (*media.ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	result := &media.ProbeResult{}
	for _, s := range raw.Streams {
		switch media.Kind(s.CodecType) {
		case media.KindVideo:
			result.Video = append(result.Video, media.StreamDescriptor{
				Index:  s.Index,
				Kind:   media.KindVideo,
				Codec:  s.CodecName,
				Width:  int(s.Width),
				Height: int(s.Height),
			})
		case media.KindAudio:
			result.Audio = append(result.Audio, media.StreamDescriptor{
				Index:      s.Index,
				Kind:       media.KindAudio,
				Codec:      s.CodecName,
				Channels:   int(s.Channels),
				SampleRate: int(s.SampleRate),
			})
		}
	}
	return result, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index      int      `json:"index"`
	CodecType  string   `json:"codec_type"`
	CodecName  string   `json:"codec_name"`
	Width      looseInt `json:"width"`
	Height     looseInt `json:"height"`
	Channels   looseInt `json:"channels"`
	SampleRate looseInt `json:"sample_rate"`
}

// looseInt accepts a JSON number or a quoted number; ffprobe reports
// sample_rate as a string. Unparseable values decode as zero (unknown).
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.Atoi(string(data))
	if err != nil {
		*n = 0
		return nil
	}
	*n = looseInt(v)
	return nil
}

// Ensure Prober implements media.StreamProber
var _ media.StreamProber = (*Prober)(nil)
