package media

import (
	"path/filepath"
	"strings"
)

// Supported codec names as accepted by ffmpeg's -c:v / -c:a flags
const (
	VideoCodecCopy = "copy"
	VideoCodecH264 = "h264"
	VideoCodecH265 = "h265"
	VideoCodecVP9  = "vp9"

	AudioCodecAAC  = "aac"
	AudioCodecMP3  = "mp3"
	AudioCodecFLAC = "flac"
)

// Defaults used when settings leave a value empty
const (
	DefaultVideoCodec     = VideoCodecCopy
	DefaultAudioCodec     = AudioCodecAAC
	DefaultAudioBitrate   = "192k"
	DefaultAudioExtension = "m4a"
	VideoExtension        = "mp4"
)

// VideoCodecs lists the video codecs offered to the user, stream copy first
var VideoCodecs = []string{VideoCodecCopy, VideoCodecH264, VideoCodecH265, VideoCodecVP9}

// AudioCodecs lists the audio codecs offered to the user
var AudioCodecs = []string{AudioCodecAAC, AudioCodecMP3, AudioCodecFLAC}

var videoTuning = map[string][]string{
	VideoCodecH265: {"-preset", "medium", "-crf", "28"},
	VideoCodecH264: {"-preset", "medium", "-crf", "23"},
	VideoCodecVP9:  {"-b:v", "2M"},
}

var audioExtensions = map[string]string{
	AudioCodecAAC:  "m4a",
	AudioCodecMP3:  "mp3",
	AudioCodecFLAC: "flac",
}

// VideoTuningFlags returns the encoder flags for a video codec.
// Stream copy and unrecognized codecs get none.
func VideoTuningFlags(codec string) []string {
	flags := videoTuning[codec]
	if flags == nil {
		return nil
	}
	out := make([]string, len(flags))
	copy(out, flags)
	return out
}

// AudioExtension returns the container extension for an audio codec, m4a when unknown
func AudioExtension(codec string) string {
	if ext, ok := audioExtensions[codec]; ok {
		return ext
	}
	return DefaultAudioExtension
}

// AudioUsesBitrate reports whether a bitrate flag is meaningful for the codec.
// flac is lossless and ignores it.
func AudioUsesBitrate(codec string) bool {
	return codec == AudioCodecAAC || codec == AudioCodecMP3
}

// AudioOutputPath replaces the extension of path with the one derived from codec
func AudioOutputPath(path, codec string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + AudioExtension(codec)
}
