package extraction

import (
	"path/filepath"

	"tracksep/domain/media"
)

// Preferences is the slice of saved settings a job is planned from
type Preferences struct {
	OutputFolder  string
	VideoTemplate string
	AudioTemplate string
	Codecs        media.CodecSettings
}

// Request holds the user's choices for one extraction
type Request struct {
	InputPath     string
	OutputDir     string // empty falls back to the preferred folder, then the input's folder
	VideoStream   *int
	AudioStream   *int
	VideoTemplate string // empty uses the preferred template
	AudioTemplate string
}

// NewJob resolves output paths from the request and preferences and
// returns a validated ExtractionJob
func NewJob(req Request, prefs Preferences) (*media.ExtractionJob, error) {
	if req.InputPath == "" {
		return nil, &media.ValidationError{Message: "no input file selected"}
	}

	outputDir := firstNonEmpty(req.OutputDir, prefs.OutputFolder, filepath.Dir(req.InputPath))

	videoPath, audioPath := media.OutputPaths(req.InputPath, outputDir, media.OutputNames{
		VideoTemplate: firstNonEmpty(req.VideoTemplate, prefs.VideoTemplate),
		AudioTemplate: firstNonEmpty(req.AudioTemplate, prefs.AudioTemplate),
		AudioCodec:    prefs.Codecs.AudioCodec,
	})

	return media.NewExtractionJob(req.InputPath, videoPath, audioPath, req.VideoStream, req.AudioStream, prefs.Codecs)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
