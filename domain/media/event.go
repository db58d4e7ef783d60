package media

import (
	"errors"
	"fmt"
)

// Stage is one of the two sequential extraction sub-tasks
type Stage string

const (
	StageVideo Stage = "Video"
	StageAudio Stage = "Audio"
)

// Stages in execution order. Audio runs only after video succeeded.
var Stages = []Stage{StageVideo, StageAudio}

// EventType distinguishes progress from failure notifications
type EventType int

const (
	EventProgress EventType = iota
	EventFailure
)

// Event is a one-way notification from the extraction worker
type Event struct {
	Type    EventType
	Stage   Stage
	Percent int
	Err     error
}

// ProgressEvent reports that stage finished and the job is percent complete
func ProgressEvent(stage Stage, percent int) Event {
	return Event{Type: EventProgress, Stage: stage, Percent: percent}
}

// FailureEvent reports that stage failed with err
func FailureEvent(stage Stage, err error) Event {
	return Event{Type: EventFailure, Stage: stage, Err: err}
}

// Failed reports whether the event is a failure
func (e Event) Failed() bool {
	return e.Type == EventFailure
}

// Message returns the consolidated text shown to the user for a failure
func (e Event) Message() string {
	if e.Type != EventFailure {
		return fmt.Sprintf("%s extracted (%d%%)", e.Stage, e.Percent)
	}

	var failed *ToolFailedError
	if errors.As(e.Err, &failed) {
		return failed.Error()
	}
	var notFound *ToolNotFoundError
	if errors.As(e.Err, &notFound) {
		return fmt.Sprintf("File Not Found: %v", notFound)
	}
	return fmt.Sprintf("%s Extraction Failed: %v", e.Stage, e.Err)
}
