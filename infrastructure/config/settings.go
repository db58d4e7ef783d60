package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"tracksep/domain/media"
)

// Setting keys as persisted in the settings file
const (
	KeyDefaultOutputFolder = "default_output_folder"
	KeyToolPath            = "tool_path"
	KeyVideoTemplate       = "video_template"
	KeyAudioTemplate       = "audio_template"
	KeyTheme               = "theme"
	KeyLoggingLevel        = "logging_level"
	KeyVideoCodec          = "video_codec"
	KeyAudioCodec          = "audio_codec"
	KeyAudioBitrate        = "audio_bitrate"
	KeyDarkMode            = "dark_mode"
)

// Default values for settings that are not derived from the environment
const (
	DefaultToolPath     = "ffmpeg"
	DefaultTheme        = "Fusion"
	DefaultLoggingLevel = "INFO"
)

// LoggingLevels lists the accepted logging_level values
var LoggingLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR"}

// AudioBitrates lists the bitrates offered by the setup prompts
var AudioBitrates = []string{"128k", "192k", "256k", "320k"}

// Themes lists the theme names offered by the setup prompts
var Themes = []string{"Fusion", "Windows", "windowsvista", "Macintosh"}

// themes that cannot be combined with dark mode
var noDarkModeThemes = map[string]bool{
	"windowsvista": true,
	"Macintosh":    true,
}

// Errors for settings access
var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
)

// Settings represents the persisted user preferences
type Settings struct {
	DefaultOutputFolder string `yaml:"default_output_folder" mapstructure:"default_output_folder" validate:"required"`
	ToolPath            string `yaml:"tool_path" mapstructure:"tool_path" validate:"required"`
	VideoTemplate       string `yaml:"video_template" mapstructure:"video_template" validate:"required"`
	AudioTemplate       string `yaml:"audio_template" mapstructure:"audio_template" validate:"required"`
	Theme               string `yaml:"theme" mapstructure:"theme" validate:"required"`
	LoggingLevel        string `yaml:"logging_level" mapstructure:"logging_level" validate:"oneof=DEBUG INFO WARNING ERROR"`
	VideoCodec          string `yaml:"video_codec" mapstructure:"video_codec" validate:"required"`
	AudioCodec          string `yaml:"audio_codec" mapstructure:"audio_codec" validate:"required"`
	AudioBitrate        string `yaml:"audio_bitrate" mapstructure:"audio_bitrate" validate:"required"`
	DarkMode            bool   `yaml:"dark_mode" mapstructure:"dark_mode"`
}

// DefaultOutputFolder returns the user's video directory
func DefaultOutputFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Videos"
	}
	return filepath.Join(home, "Videos")
}

// DefaultPath returns the settings file location inside the user config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("config", "settings.yaml")
	}
	return filepath.Join(dir, "tracksep", "settings.yaml")
}

// Defaults returns the documented default settings
func Defaults() *Settings {
	return &Settings{
		DefaultOutputFolder: DefaultOutputFolder(),
		ToolPath:            DefaultToolPath,
		VideoTemplate:       media.DefaultVideoTemplate,
		AudioTemplate:       media.DefaultAudioTemplate,
		Theme:               DefaultTheme,
		LoggingLevel:        DefaultLoggingLevel,
		VideoCodec:          media.DefaultVideoCodec,
		AudioCodec:          media.DefaultAudioCodec,
		AudioBitrate:        media.DefaultAudioBitrate,
		DarkMode:            false,
	}
}

// defaultMap returns the defaults keyed by setting name
func defaultMap() map[string]any {
	d := Defaults()
	return map[string]any{
		KeyDefaultOutputFolder: d.DefaultOutputFolder,
		KeyToolPath:            d.ToolPath,
		KeyVideoTemplate:       d.VideoTemplate,
		KeyAudioTemplate:       d.AudioTemplate,
		KeyTheme:               d.Theme,
		KeyLoggingLevel:        d.LoggingLevel,
		KeyVideoCodec:          d.VideoCodec,
		KeyAudioCodec:          d.AudioCodec,
		KeyAudioBitrate:        d.AudioBitrate,
		KeyDarkMode:            d.DarkMode,
	}
}

// Keys returns every setting key in alphabetical order
func Keys() []string {
	keys := make([]string, 0, len(defaultMap()))
	for k := range defaultMap() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize tidies user input: trims values, upper-cases the logging level
// (WARN is stored as WARNING), and turns dark mode off for themes that do not support it
func (s *Settings) Normalize() {
	s.DefaultOutputFolder = strings.TrimSpace(s.DefaultOutputFolder)
	s.ToolPath = strings.TrimSpace(s.ToolPath)
	s.VideoTemplate = strings.TrimSpace(s.VideoTemplate)
	s.AudioTemplate = strings.TrimSpace(s.AudioTemplate)
	s.Theme = strings.TrimSpace(s.Theme)
	s.LoggingLevel = strings.ToUpper(strings.TrimSpace(s.LoggingLevel))
	if s.LoggingLevel == "WARN" {
		s.LoggingLevel = "WARNING"
	}
	s.VideoCodec = strings.TrimSpace(s.VideoCodec)
	s.AudioCodec = strings.TrimSpace(s.AudioCodec)
	s.AudioBitrate = strings.TrimSpace(s.AudioBitrate)

	if !SupportsDarkMode(s.Theme) {
		s.DarkMode = false
	}
}

// SupportsDarkMode reports whether theme can be combined with dark mode
func SupportsDarkMode(theme string) bool {
	return !noDarkModeThemes[theme]
}

// Get returns the value of key rendered as a string
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case KeyDefaultOutputFolder:
		return s.DefaultOutputFolder, nil
	case KeyToolPath:
		return s.ToolPath, nil
	case KeyVideoTemplate:
		return s.VideoTemplate, nil
	case KeyAudioTemplate:
		return s.AudioTemplate, nil
	case KeyTheme:
		return s.Theme, nil
	case KeyLoggingLevel:
		return s.LoggingLevel, nil
	case KeyVideoCodec:
		return s.VideoCodec, nil
	case KeyAudioCodec:
		return s.AudioCodec, nil
	case KeyAudioBitrate:
		return s.AudioBitrate, nil
	case KeyDarkMode:
		return strconv.FormatBool(s.DarkMode), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Set assigns value to key. dark_mode accepts any strconv.ParseBool form.
func (s *Settings) Set(key, value string) error {
	switch key {
	case KeyDefaultOutputFolder:
		s.DefaultOutputFolder = value
	case KeyToolPath:
		s.ToolPath = value
	case KeyVideoTemplate:
		s.VideoTemplate = value
	case KeyAudioTemplate:
		s.AudioTemplate = value
	case KeyTheme:
		s.Theme = value
	case KeyLoggingLevel:
		s.LoggingLevel = value
	case KeyVideoCodec:
		s.VideoCodec = value
	case KeyAudioCodec:
		s.AudioCodec = value
	case KeyAudioBitrate:
		s.AudioBitrate = value
	case KeyDarkMode:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: dark_mode must be true or false, got %q", ErrInvalidValue, value)
		}
		s.DarkMode = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// CodecSettings returns the tool and codec snapshot for a new job
func (s *Settings) CodecSettings() media.CodecSettings {
	return media.CodecSettings{
		ToolPath:     s.ToolPath,
		VideoCodec:   s.VideoCodec,
		AudioCodec:   s.AudioCodec,
		AudioBitrate: s.AudioBitrate,
	}
}
