package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Defaults(), s)
	require.Equal(t, "ffmpeg", s.ToolPath)
	require.Equal(t, "{filename}_video", s.VideoTemplate)
	require.Equal(t, "{filename}_audio", s.AudioTemplate)
	require.Equal(t, "Fusion", s.Theme)
	require.Equal(t, "INFO", s.LoggingLevel)
	require.Equal(t, "copy", s.VideoCodec)
	require.Equal(t, "aac", s.AudioCodec)
	require.Equal(t, "192k", s.AudioBitrate)
	require.False(t, s.DarkMode)
	require.Equal(t, "Videos", filepath.Base(s.DefaultOutputFolder))
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "tool_path: /opt/ffmpeg/bin/ffmpeg\naudio_codec: flac\ndark_mode: true\nlogging_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/opt/ffmpeg/bin/ffmpeg", s.ToolPath)
	require.Equal(t, "flac", s.AudioCodec)
	require.True(t, s.DarkMode)
	require.Equal(t, "DEBUG", s.LoggingLevel)
	require.Equal(t, "copy", s.VideoCodec)
	require.Equal(t, "192k", s.AudioBitrate)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("video_codec: h264\n"), 0644))

	t.Setenv("TRACKSEP_VIDEO_CODEC", "vp9")
	t.Setenv("TRACKSEP_AUDIO_BITRATE", "320k")

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "vp9", s.VideoCodec)
	require.Equal(t, "320k", s.AudioBitrate)
}

func TestLoad_InvalidLoggingLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging_level: chatty\n"), 0644))

	s, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidValue))
	require.Nil(t, s)
}

func TestLoad_WarnIsStoredAsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging_level: warn\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "WARNING", s.LoggingLevel)

	require.NoError(t, s.Set(KeyLoggingLevel, "WARN"))
	require.NoError(t, Save(s, path))

	saved, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "WARNING", saved.LoggingLevel)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tool_path: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s := Defaults()
	require.NoError(t, s.Set(KeyVideoCodec, "h265"))
	require.NoError(t, s.Set(KeyDarkMode, "true"))
	require.NoError(t, s.Set(KeyDefaultOutputFolder, "/srv/media/out"))
	require.NoError(t, Save(s, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, s, loaded)
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	s := Defaults()
	s.ToolPath = "   "
	require.ErrorIs(t, Save(s, path), ErrInvalidValue)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "invalid settings must not be written")
}

func TestSettings_GetSet(t *testing.T) {
	s := Defaults()

	for _, key := range Keys() {
		_, err := s.Get(key)
		require.NoError(t, err, key)
	}

	require.NoError(t, s.Set(KeyAudioBitrate, "128k"))
	got, err := s.Get(KeyAudioBitrate)
	require.NoError(t, err)
	require.Equal(t, "128k", got)

	require.NoError(t, s.Set(KeyDarkMode, "1"))
	got, err = s.Get(KeyDarkMode)
	require.NoError(t, err)
	require.Equal(t, "true", got)

	require.ErrorIs(t, s.Set(KeyDarkMode, "sometimes"), ErrInvalidValue)
	require.ErrorIs(t, s.Set("ffmpeg_path", "x"), ErrUnknownKey)

	_, err = s.Get("colour")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestSettings_NormalizeDisablesDarkModeForUnsupportedTheme(t *testing.T) {
	for _, theme := range []string{"windowsvista", "Macintosh"} {
		s := Defaults()
		s.Theme = theme
		s.DarkMode = true
		s.Normalize()
		require.False(t, s.DarkMode, theme)
	}

	s := Defaults()
	s.DarkMode = true
	s.Normalize()
	require.True(t, s.DarkMode)
}

func TestKeys(t *testing.T) {
	require.Equal(t, []string{
		"audio_bitrate", "audio_codec", "audio_template", "dark_mode", "default_output_folder",
		"logging_level", "theme", "tool_path", "video_codec", "video_template",
	}, Keys())
}

func TestSettings_CodecSettings(t *testing.T) {
	s := Defaults()
	c := s.CodecSettings()
	require.Equal(t, "ffmpeg", c.ToolPath)
	require.Equal(t, "copy", c.VideoCodec)
	require.Equal(t, "aac", c.AudioCodec)
	require.Equal(t, "192k", c.AudioBitrate)
}
