package media

import "context"

// StreamProber lists the streams of a media file.
// Implementations fail soft: problems yield an empty result, never an error.
type StreamProber interface {
	Probe(ctx context.Context, inputPath string) *ProbeResult
}

// StreamExtractor runs one extraction stage of a job
type StreamExtractor interface {
	// Extract returns a *ToolNotFoundError when the tool cannot be launched
	// and a *ToolFailedError when it exits non-zero
	Extract(ctx context.Context, stage Stage, job *ExtractionJob) error
}

// FileChecker defines the filesystem checks made before a job starts
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
	// IsWritableDir returns true if path is an existing directory we can write to
	IsWritableDir(path string) bool
}
