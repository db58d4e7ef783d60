package extraction

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"tracksep/domain/media"
)

// Service runs extraction jobs on a background worker and reports back
// through an event channel
type Service struct {
	extractor   media.StreamExtractor
	fileChecker media.FileChecker
	logger      *slog.Logger
	running     atomic.Bool
}

// NewService creates a new extraction Service
func NewService(extractor media.StreamExtractor, fileChecker media.FileChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		extractor:   extractor,
		fileChecker: fileChecker,
		logger:      logger,
	}
}

// Start validates job and runs its stages on a background goroutine.
//
// The returned channel receives a progress event after each successful stage
// (50, then 100) or a single failure event, and is closed when the worker
// exits. Validation failures are returned directly and nothing is spawned.
// Only one job may run at a time; a second Start returns media.ErrJobInProgress.
func (s *Service) Start(ctx context.Context, job *media.ExtractionJob) (<-chan media.Event, error) {
	if job == nil {
		return nil, &media.ValidationError{Message: "no extraction job given"}
	}
	if err := job.CheckFilesystem(s.fileChecker); err != nil {
		s.logger.Warn("extraction rejected", "job", job.ID, "error", err)
		return nil, err
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, media.ErrJobInProgress
	}

	events := make(chan media.Event, len(media.Stages))
	go func() {
		defer close(events)
		defer s.running.Store(false)
		s.run(ctx, job, events)
	}()

	return events, nil
}

// Running reports whether a job is currently in progress
func (s *Service) Running() bool {
	return s.running.Load()
}

func (s *Service) run(ctx context.Context, job *media.ExtractionJob, events chan<- media.Event) {
	log := s.logger.With("job", job.ID)
	log.Info("extraction started", "input", job.InputPath, "video_codec", job.Codecs.VideoCodec, "audio_codec", job.Codecs.AudioCodec)

	for i, stage := range media.Stages {
		if err := s.extractor.Extract(ctx, stage, job); err != nil {
			log.Error("extraction aborted", "stage", string(stage), "error", err)
			events <- media.FailureEvent(stage, err)
			return
		}
		events <- media.ProgressEvent(stage, (i+1)*100/len(media.Stages))
	}

	log.Info("extraction complete", "video", job.OutputVideo, "audio", job.OutputAudio)
}

// Drain consumes events until the channel closes, passing each to handle,
// and returns the failure's error if one was reported
func Drain(events <-chan media.Event, handle func(media.Event)) error {
	var failure error
	for ev := range events {
		if handle != nil {
			handle(ev)
		}
		if ev.Failed() && failure == nil {
			failure = ev.Err
		}
	}
	return failure
}
