package media

import (
	"path/filepath"
	"strings"
)

// FilenamePlaceholder is substituted with the input's base name
const FilenamePlaceholder = "{filename}"

// Default filename templates
const (
	DefaultVideoTemplate = FilenamePlaceholder + "_video"
	DefaultAudioTemplate = FilenamePlaceholder + "_audio"
)

// BaseName returns the file name of path without directory or extension
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// RenderTemplate substitutes every {filename} in tmpl with the input's base name
func RenderTemplate(tmpl, inputPath string) string {
	return strings.ReplaceAll(tmpl, FilenamePlaceholder, BaseName(inputPath))
}

// OutputNames carries the templates and codec used to name extraction outputs
type OutputNames struct {
	VideoTemplate string
	AudioTemplate string
	AudioCodec    string
}

// OutputPaths returns the video (.mp4) and audio (codec-derived extension)
// output paths for inputPath inside outputDir
func OutputPaths(inputPath, outputDir string, names OutputNames) (videoPath, audioPath string) {
	videoTmpl := names.VideoTemplate
	if videoTmpl == "" {
		videoTmpl = DefaultVideoTemplate
	}
	audioTmpl := names.AudioTemplate
	if audioTmpl == "" {
		audioTmpl = DefaultAudioTemplate
	}

	videoPath = filepath.Join(outputDir, RenderTemplate(videoTmpl, inputPath)+"."+VideoExtension)
	audioPath = filepath.Join(outputDir, RenderTemplate(audioTmpl, inputPath)+"."+AudioExtension(names.AudioCodec))
	return videoPath, audioPath
}
