package extraction

import (
	"context"

	"tracksep/domain/media"
)

// ProbeService lists the streams of an input file for selection
type ProbeService struct {
	prober      media.StreamProber
	fileChecker media.FileChecker
}

// NewProbeService creates a new ProbeService
func NewProbeService(prober media.StreamProber, fileChecker media.FileChecker) *ProbeService {
	return &ProbeService{
		prober:      prober,
		fileChecker: fileChecker,
	}
}

// Probe returns the input's streams. A missing input is a validation error;
// probe tool problems degrade to an empty result.
func (s *ProbeService) Probe(ctx context.Context, inputPath string) (*media.ProbeResult, error) {
	if inputPath == "" {
		return nil, &media.ValidationError{Message: "no input file selected"}
	}
	if !s.fileChecker.Exists(inputPath) {
		return nil, &media.ValidationError{Message: "input file does not exist: " + inputPath}
	}

	result := s.prober.Probe(ctx, inputPath)
	if result == nil {
		result = &media.ProbeResult{}
	}
	return result, nil
}
