package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tracksep/domain/media"
	"tracksep/infrastructure/config"
)

type stubExtractor struct {
	stages    []media.Stage
	failStage media.Stage
}

func (s *stubExtractor) Extract(ctx context.Context, stage media.Stage, job *media.ExtractionJob) error {
	s.stages = append(s.stages, stage)
	if stage == s.failStage {
		return &media.ToolFailedError{Stage: stage, Tool: "ffmpeg", ExitCode: 1, Stderr: "boom\n"}
	}
	return nil
}

type stubFiles struct {
	sizes map[string]int64
}

func (s *stubFiles) Exists(path string) bool        { return true }
func (s *stubFiles) IsWritableDir(path string) bool { return true }
func (s *stubFiles) Size(path string) int64         { return s.sizes[path] }

// verifyingExtractor counts VerifyInstalled calls the way ffmpeg.Extractor
// would spawn "ffmpeg -version"
type verifyingExtractor struct {
	stubExtractor
	verifyCalls int
	verifyErr   error
}

func (v *verifyingExtractor) VerifyInstalled(ctx context.Context) error {
	v.verifyCalls++
	return v.verifyErr
}

type missingFiles struct {
	inputMissing   bool
	folderReadOnly bool
}

func (m *missingFiles) Exists(path string) bool        { return !m.inputMissing }
func (m *missingFiles) IsWritableDir(path string) bool { return !m.folderReadOnly }

type stubPrompter struct {
	selected map[string]int
}

func (s *stubPrompter) Input(message string, defaultValue string) (string, error) {
	return defaultValue, nil
}

func (s *stubPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

func (s *stubPrompter) Select(message string, options []string, defaultIndex int) (int, error) {
	if idx, ok := s.selected[message]; ok {
		return idx, nil
	}
	return defaultIndex, nil
}

func TestRunExtractWithDependencies_Success(t *testing.T) {
	extractor := &stubExtractor{}
	files := &stubFiles{sizes: map[string]int64{"/out/movie_video.mp4": 3_000_000}}
	var out bytes.Buffer

	err := RunExtractWithDependencies(context.Background(), ExtractDependencies{
		Extractor:   extractor,
		FileChecker: files,
		FileSizer:   files,
	}, config.Defaults(), ExtractOptions{
		InputPath:   "/media/movie.mkv",
		OutputDir:   "/out",
		VideoStream: 0,
		AudioStream: -1,
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(extractor.stages) != 2 {
		t.Fatalf("expected 2 stages, got %v", extractor.stages)
	}

	for _, want := range []string{
		"[ 50%] Video stream extracted",
		"[100%] Audio stream extracted",
		"Extraction Complete!",
		"Video: /out/movie_video.mp4 (3.0 MB)",
		"Audio: /out/movie_audio.m4a (0 B)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunExtractWithDependencies_StageFailure(t *testing.T) {
	extractor := &stubExtractor{failStage: media.StageAudio}
	files := &stubFiles{}
	var out bytes.Buffer

	err := RunExtractWithDependencies(context.Background(), ExtractDependencies{
		Extractor:   extractor,
		FileChecker: files,
		FileSizer:   files,
	}, config.Defaults(), ExtractOptions{
		InputPath:   "/media/movie.mkv",
		OutputDir:   "/out",
		VideoStream: -1,
		AudioStream: -1,
	}, &out)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err.Error() != "Audio Extraction Failed: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var failed *media.ToolFailedError
	if !errors.As(err, &failed) {
		t.Errorf("expected ToolFailedError in chain, got %T", err)
	}

	if strings.Contains(out.String(), "Extraction Complete!") {
		t.Errorf("failure must not report completion:\n%s", out.String())
	}
}

func TestRunExtractWithDependencies_ValidationBeforeAnyProcess(t *testing.T) {
	tests := []struct {
		name        string
		files       *missingFiles
		input       string
		errContains string
	}{
		{name: "missing input", files: &missingFiles{inputMissing: true}, input: "/media/missing.mkv", errContains: "input file does not exist"},
		{name: "unwritable folder", files: &missingFiles{folderReadOnly: true}, input: "/media/movie.mkv", errContains: "not writable"},
		{name: "output overwrites input", files: &missingFiles{}, input: "/media/movie_video.mp4", errContains: "must be different files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := &verifyingExtractor{verifyErr: &media.ToolNotFoundError{Tool: "ffmpeg"}}
			var out bytes.Buffer

			settings := config.Defaults()
			if tt.name == "output overwrites input" {
				settings.VideoTemplate = "{filename}"
			}

			err := RunExtractWithDependencies(context.Background(), ExtractDependencies{
				Extractor:   extractor,
				FileChecker: tt.files,
				Prompter:    &stubPrompter{},
			}, settings, ExtractOptions{
				InputPath:   tt.input,
				OutputDir:   "/media",
				VideoStream: -1,
				AudioStream: -1,
				Interactive: true,
			}, &out)

			if !media.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
			if extractor.verifyCalls != 0 {
				t.Errorf("ffmpeg verification ran %d times before validation", extractor.verifyCalls)
			}
			if len(extractor.stages) != 0 {
				t.Errorf("expected no stages, got %v", extractor.stages)
			}
		})
	}
}

func TestRunExtractWithDependencies_VerifiesBeforeExtracting(t *testing.T) {
	extractor := &verifyingExtractor{}
	files := &stubFiles{}
	var out bytes.Buffer

	err := RunExtractWithDependencies(context.Background(), ExtractDependencies{
		Extractor:   extractor,
		FileChecker: files,
		FileSizer:   files,
	}, config.Defaults(), ExtractOptions{
		InputPath:   "/media/movie.mkv",
		OutputDir:   "/out",
		VideoStream: -1,
		AudioStream: -1,
	}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extractor.verifyCalls != 1 {
		t.Errorf("expected one verification, got %d", extractor.verifyCalls)
	}
	if len(extractor.stages) != 2 {
		t.Errorf("expected 2 stages, got %v", extractor.stages)
	}
}

func TestRunExtractWithDependencies_MissingFFmpeg(t *testing.T) {
	extractor := &verifyingExtractor{verifyErr: &media.ToolNotFoundError{Tool: "ffmpeg", Err: errors.New("executable file not found")}}
	var out bytes.Buffer

	err := RunExtractWithDependencies(context.Background(), ExtractDependencies{
		Extractor:   extractor,
		FileChecker: &stubFiles{},
	}, config.Defaults(), ExtractOptions{
		InputPath:   "/media/movie.mkv",
		OutputDir:   "/out",
		VideoStream: -1,
		AudioStream: -1,
	}, &out)
	if !media.IsToolNotFound(err) {
		t.Fatalf("expected ToolNotFoundError, got %v", err)
	}
	if n := strings.Count(err.Error(), "not found or not executable"); n != 1 {
		t.Errorf("expected the not-found text once, got %d in %q", n, err.Error())
	}
	if len(extractor.stages) != 0 {
		t.Errorf("expected no stages, got %v", extractor.stages)
	}
}

func TestSelectStream(t *testing.T) {
	streams := []media.StreamDescriptor{
		{Index: 1, Kind: media.KindAudio, Codec: "aac", Channels: 2, SampleRate: 48000},
		{Index: 3, Kind: media.KindAudio, Codec: "ac3", Channels: 6, SampleRate: 48000},
	}

	idx, err := selectStream(&stubPrompter{selected: map[string]int{"Audio stream?": 1}}, "Audio stream?", streams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx == nil || *idx != 3 {
		t.Errorf("expected stream 3, got %v", idx)
	}

	idx, err = selectStream(&stubPrompter{}, "Video stream?", nil)
	if err != nil || idx != nil {
		t.Errorf("expected no selection without streams, got %v, %v", idx, err)
	}
}

func TestSelectValue(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		selected int
		want     string
	}{
		{name: "keeps current", current: "mp3", selected: -1, want: "mp3"},
		{name: "picks option", current: "aac", selected: 2, want: "flac"},
		{name: "offers unknown current first", current: "opus", selected: -1, want: "opus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPrompter{selected: map[string]int{}}
			if tt.selected >= 0 {
				p.selected["Audio codec?"] = tt.selected
			}

			got, err := selectValue(p, "Audio codec?", media.AudioCodecs, tt.current)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOptionalIndex(t *testing.T) {
	if optionalIndex(-1) != nil {
		t.Error("negative index should be unset")
	}
	if got := optionalIndex(2); got == nil || *got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
}
