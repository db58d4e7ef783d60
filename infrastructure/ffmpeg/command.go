package ffmpeg

import (
	"path/filepath"
	"strconv"
	"strings"

	"tracksep/domain/media"
)

// VideoArgs builds the video-only invocation:
// -i <input> [-map 0:<v>] -c:v <codec> [tuning] -an <outVideo>
func VideoArgs(job *media.ExtractionJob) []string {
	args := []string{"-i", job.InputPath}
	if job.VideoStream != nil {
		args = append(args, "-map", streamMap(*job.VideoStream))
	}
	args = append(args, "-c:v", job.Codecs.VideoCodec)
	args = append(args, media.VideoTuningFlags(job.Codecs.VideoCodec)...)
	args = append(args,
		"-an", // No audio
		job.OutputVideo,
	)
	return args
}

// AudioArgs builds the audio-only invocation:
// -i <input> [-map 0:<a>] -vn -c:a <codec> [-b:a <bitrate>] -y <outAudio>
// The output extension always follows the audio codec.
func AudioArgs(job *media.ExtractionJob) []string {
	codec := job.Codecs.AudioCodec

	args := []string{"-i", job.InputPath}
	if job.AudioStream != nil {
		args = append(args, "-map", streamMap(*job.AudioStream))
	}
	args = append(args,
		"-vn", // No video
		"-c:a", codec,
	)
	if media.AudioUsesBitrate(codec) {
		args = append(args, "-b:a", job.Codecs.AudioBitrate)
	}
	args = append(args,
		"-y", // Overwrite output file if it exists
		media.AudioOutputPath(job.OutputAudio, codec),
	)
	return args
}

// ProbeArgs builds the ffprobe invocation requesting stream metadata as JSON
func ProbeArgs(inputPath string) []string {
	return []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		inputPath,
	}
}

// ProbePath derives the ffprobe executable from the ffmpeg one by renaming
// the last "ffmpeg" in its base name. A base name without "ffmpeg" maps to
// "ffprobe" in the same directory.
func ProbePath(ffmpegPath string) string {
	if ffmpegPath == "" {
		return "ffprobe"
	}
	dir, base := filepath.Split(ffmpegPath)
	idx := strings.LastIndex(base, "ffmpeg")
	if idx < 0 {
		return dir + "ffprobe" + filepath.Ext(base)
	}
	return dir + base[:idx] + "ffprobe" + base[idx+len("ffmpeg"):]
}

// FormatCommand renders a command line for logging
func FormatCommand(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func streamMap(index int) string {
	return "0:" + strconv.Itoa(index)
}
