//go:build integration

package steps

import (
	"context"
	"os/exec"
	"slices"
	"sync"

	"tracksep/domain/media"
	"tracksep/infrastructure/ffmpeg"
)

// mockFileChecker simulates the filesystem
type mockFileChecker struct {
	existingFiles map[string]bool
	writableDirs  map[string]bool
	sizes         map[string]int64
}

func newMockFileChecker() *mockFileChecker {
	return &mockFileChecker{
		existingFiles: make(map[string]bool),
		writableDirs:  make(map[string]bool),
		sizes:         make(map[string]int64),
	}
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

func (m *mockFileChecker) IsWritableDir(path string) bool {
	return m.writableDirs[path]
}

func (m *mockFileChecker) Size(path string) int64 {
	return m.sizes[path]
}

// recordingRunner stands in for ffmpeg and ffprobe, recording every
// invocation. Extraction stages are told apart by -an (video) and -vn (audio).
type recordingRunner struct {
	mu          sync.Mutex
	calls       []runnerCall
	probeOutput string
	failStage   media.Stage
	failStderr  string
	missing     bool
}

type runnerCall struct {
	name string
	args []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) (*ffmpeg.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, runnerCall{name: name, args: args})

	if r.missing {
		return nil, &media.ToolNotFoundError{Tool: name, Err: exec.ErrNotFound}
	}

	switch {
	case slices.Contains(args, "-version"):
		return &ffmpeg.Result{Stdout: "ffmpeg version 6.1"}, nil
	case slices.Contains(args, "-show_streams"):
		return &ffmpeg.Result{Stdout: r.probeOutput}, nil
	}

	stage := media.StageAudio
	if slices.Contains(args, "-an") {
		stage = media.StageVideo
	}
	if stage == r.failStage {
		return &ffmpeg.Result{ExitCode: 1, Stderr: r.failStderr}, nil
	}
	return &ffmpeg.Result{}, nil
}

// stageArgs returns the arguments of the extraction call for stage
func (r *recordingRunner) stageArgs(stage media.Stage) ([]string, bool) {
	marker := "-vn"
	if stage == media.StageVideo {
		marker = "-an"
	}
	for _, c := range r.calls {
		if slices.Contains(c.args, marker) {
			return c.args, true
		}
	}
	return nil, false
}

// mockPrompter answers prompts by message and records what was asked
type mockPrompter struct {
	answers map[string]string
	asked   []string
}

func newMockPrompter(answers map[string]string) *mockPrompter {
	return &mockPrompter{answers: answers}
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	m.asked = append(m.asked, message)
	if answer, ok := m.answers[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.asked = append(m.asked, message)
	if answer, ok := m.answers[message]; ok {
		return answer == "y" || answer == "yes", nil
	}
	return defaultValue, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultIndex int) (int, error) {
	m.asked = append(m.asked, message)
	if answer, ok := m.answers[message]; ok {
		if idx := slices.Index(options, answer); idx >= 0 {
			return idx, nil
		}
	}
	return defaultIndex, nil
}

func (m *mockPrompter) wasAsked(message string) bool {
	return slices.Contains(m.asked, message)
}

// answersFromTable reads a | prompt | answer | table, skipping the header
func answersFromTable(rows [][]string) map[string]string {
	answers := make(map[string]string)
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		answers[row[0]] = row[1]
	}
	return answers
}
