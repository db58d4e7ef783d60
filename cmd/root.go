package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tracksep/infrastructure/config"
	"tracksep/infrastructure/logging"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	logFile     string
	settings    *config.Settings
	settingsErr error
	logger      = logging.Discard()
	closeLog    = func() error { return nil }
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// DefaultOutput is the default output writer for commands
var DefaultOutput OutputWriter = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "tracksep",
	Short: "Split a video file into separate video and audio tracks",
	Long: `tracksep inspects the streams of a video file and extracts them into
separate video-only and audio-only files using ffmpeg:

  - List the video and audio streams of a file
  - Extract a chosen video stream and audio stream to their own files
  - Choose codecs, bitrate and output filename templates in saved settings

Example:
  tracksep probe movie.mkv
  tracksep extract movie.mkv --video-stream 0 --audio-stream 1`,
}

// Execute runs the root command. Ctrl-C cancels the running command and
// any ffmpeg process it started.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLog()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append log records to this file")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath()
	}

	settings, settingsErr = config.Load(cfgFile)

	level := config.DefaultLoggingLevel
	if settings != nil {
		level = settings.LoggingLevel
	}

	l, closeFn, err := logging.Open(os.Stderr, level, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		l, closeFn = logging.New(os.Stderr, level), func() error { return nil }
	}
	logger, closeLog = l, closeFn

	if settingsErr != nil {
		logger.Warn("settings could not be loaded", "path", cfgFile, "error", settingsErr)
	}
}

// GetSettings returns the loaded settings or the reason they are unavailable
func GetSettings() (*config.Settings, error) {
	if settings == nil {
		if settingsErr != nil {
			return nil, fmt.Errorf("settings could not be loaded from %s: %w\n\nTo fix this, run:\n  tracksep settings reset", cfgFile, settingsErr)
		}
		return nil, fmt.Errorf("settings not loaded")
	}
	return settings, nil
}

// GetLogger returns the application logger
func GetLogger() *slog.Logger {
	return logger
}
