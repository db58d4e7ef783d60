package media

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of an elementary stream
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// unknownValue is rendered in place of a numeric field ffprobe did not report
const unknownValue = "?"

// StreamDescriptor describes one video or audio stream inside a container.
// Numeric fields are zero when the probe did not report them.
type StreamDescriptor struct {
	Index      int
	Kind       Kind
	Codec      string
	Width      int
	Height     int
	Channels   int
	SampleRate int
}

// Resolution returns WIDTHxHEIGHT, using "?" for missing dimensions
func (s StreamDescriptor) Resolution() string {
	return orUnknown(s.Width) + "x" + orUnknown(s.Height)
}

// ChannelsLabel returns the channel count or "?"
func (s StreamDescriptor) ChannelsLabel() string {
	return orUnknown(s.Channels)
}

// SampleRateLabel returns the sample rate in Hz or "?"
func (s StreamDescriptor) SampleRateLabel() string {
	return orUnknown(s.SampleRate)
}

// String renders the descriptor the way it is offered to the user for selection
func (s StreamDescriptor) String() string {
	switch s.Kind {
	case KindVideo:
		return fmt.Sprintf("Stream %d: %s (%s)", s.Index, s.Codec, s.Resolution())
	case KindAudio:
		return fmt.Sprintf("Stream %d: %s (%s ch, %s Hz)", s.Index, s.Codec, s.ChannelsLabel(), s.SampleRateLabel())
	default:
		return fmt.Sprintf("Stream %d: %s", s.Index, s.Codec)
	}
}

func orUnknown(v int) string {
	if v <= 0 {
		return unknownValue
	}
	return strconv.Itoa(v)
}

// ProbeResult holds the streams found in a media file, split by kind
type ProbeResult struct {
	Video []StreamDescriptor
	Audio []StreamDescriptor
}

// Empty reports whether no video or audio streams were found
func (r *ProbeResult) Empty() bool {
	return r == nil || (len(r.Video) == 0 && len(r.Audio) == 0)
}
