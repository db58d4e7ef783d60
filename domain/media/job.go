package media

import (
	"path/filepath"

	"github.com/google/uuid"
)

// CodecSettings is the snapshot of tool and codec choices a job runs with
type CodecSettings struct {
	ToolPath     string
	VideoCodec   string
	AudioCodec   string
	AudioBitrate string
}

// ExtractionJob describes a single video/audio separation run.
// It is consumed once by the orchestrator and never reused.
type ExtractionJob struct {
	ID          string
	InputPath   string
	OutputVideo string
	OutputAudio string
	VideoStream *int // nil lets ffmpeg pick the stream
	AudioStream *int
	Codecs      CodecSettings
}

// StreamIndex returns a pointer to i for use as a chosen stream index
func StreamIndex(i int) *int {
	return &i
}

// NewExtractionJob creates a validated ExtractionJob. The audio output's
// extension is replaced with the one derived from the audio codec.
func NewExtractionJob(inputPath, outputVideo, outputAudio string, videoStream, audioStream *int, codecs CodecSettings) (*ExtractionJob, error) {
	if inputPath == "" {
		return nil, &ValidationError{Message: "no input file selected"}
	}
	if outputVideo == "" || outputAudio == "" {
		return nil, &ValidationError{Message: "no output folder selected"}
	}
	if videoStream != nil && *videoStream < 0 {
		return nil, &ValidationError{Message: "video stream index must not be negative"}
	}
	if audioStream != nil && *audioStream < 0 {
		return nil, &ValidationError{Message: "audio stream index must not be negative"}
	}

	if codecs.ToolPath == "" {
		codecs.ToolPath = "ffmpeg"
	}
	if codecs.VideoCodec == "" {
		codecs.VideoCodec = DefaultVideoCodec
	}
	if codecs.AudioCodec == "" {
		codecs.AudioCodec = DefaultAudioCodec
	}
	if codecs.AudioBitrate == "" {
		codecs.AudioBitrate = DefaultAudioBitrate
	}

	job := &ExtractionJob{
		ID:          uuid.NewString(),
		InputPath:   inputPath,
		OutputVideo: outputVideo,
		OutputAudio: AudioOutputPath(outputAudio, codecs.AudioCodec),
		VideoStream: videoStream,
		AudioStream: audioStream,
		Codecs:      codecs,
	}

	if samePath(job.OutputVideo, job.OutputAudio) || samePath(job.InputPath, job.OutputVideo) || samePath(job.InputPath, job.OutputAudio) {
		return nil, &ValidationError{Message: "video and audio outputs must be different files from each other and from the input"}
	}

	return job, nil
}

// CheckFilesystem verifies the input exists and both outputs land in an
// existing, writable directory
func (j *ExtractionJob) CheckFilesystem(fc FileChecker) error {
	if !fc.Exists(j.InputPath) {
		return &ValidationError{Message: "input file does not exist: " + j.InputPath}
	}
	for _, out := range []string{j.OutputVideo, j.OutputAudio} {
		dir := filepath.Dir(out)
		if !fc.IsWritableDir(dir) {
			return &ValidationError{
				Message:    "output folder does not exist or is not writable: " + dir,
				Suggestion: "mkdir -p " + dir,
			}
		}
	}
	return nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
