package media

import (
	"reflect"
	"testing"
)

func TestAudioExtension(t *testing.T) {
	tests := []struct {
		codec string
		want  string
	}{
		{"aac", "m4a"},
		{"mp3", "mp3"},
		{"flac", "flac"},
		{"opus", "m4a"},
		{"", "m4a"},
		{"AAC", "m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			if got := AudioExtension(tt.codec); got != tt.want {
				t.Errorf("AudioExtension(%q) = %q, want %q", tt.codec, got, tt.want)
			}
		})
	}
}

func TestVideoTuningFlags(t *testing.T) {
	tests := []struct {
		codec string
		want  []string
	}{
		{"h265", []string{"-preset", "medium", "-crf", "28"}},
		{"h264", []string{"-preset", "medium", "-crf", "23"}},
		{"vp9", []string{"-b:v", "2M"}},
		{"copy", nil},
		{"mpeg2video", nil},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			if got := VideoTuningFlags(tt.codec); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VideoTuningFlags(%q) = %v, want %v", tt.codec, got, tt.want)
			}
		})
	}
}

func TestVideoTuningFlags_ReturnsCopy(t *testing.T) {
	flags := VideoTuningFlags("h264")
	flags[0] = "-mutated"

	if got := VideoTuningFlags("h264"); got[0] != "-preset" {
		t.Errorf("VideoTuningFlags shares its table with callers: got %v", got)
	}
}

func TestAudioUsesBitrate(t *testing.T) {
	tests := []struct {
		codec string
		want  bool
	}{
		{"aac", true},
		{"mp3", true},
		{"flac", false},
		{"opus", false},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			if got := AudioUsesBitrate(tt.codec); got != tt.want {
				t.Errorf("AudioUsesBitrate(%q) = %v, want %v", tt.codec, got, tt.want)
			}
		})
	}
}

func TestAudioOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		codec string
		want  string
	}{
		{"replaces extension", "/out/movie_audio.m4a", "mp3", "/out/movie_audio.mp3"},
		{"adds missing extension", "/out/movie_audio", "flac", "/out/movie_audio.flac"},
		{"unknown codec", "/out/movie_audio.wav", "opus", "/out/movie_audio.m4a"},
		{"idempotent", "/out/movie_audio.m4a", "aac", "/out/movie_audio.m4a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AudioOutputPath(tt.path, tt.codec); got != tt.want {
				t.Errorf("AudioOutputPath(%q, %q) = %q, want %q", tt.path, tt.codec, got, tt.want)
			}
		})
	}
}
