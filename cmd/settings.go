package cmd

import (
	"fmt"
	"text/tabwriter"

	"tracksep/infrastructure/config"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change saved settings",
	Long: `Inspect and change the settings stored in the settings file.

Keys:
  default_output_folder, tool_path, video_template, audio_template, theme,
  logging_level, video_codec, audio_codec, audio_bitrate, dark_mode

Environment variables prefixed with TRACKSEP_ (for example
TRACKSEP_AUDIO_CODEC) override the file for a single run.

Examples:
  tracksep settings show
  tracksep settings get audio_codec
  tracksep settings set audio_codec mp3
  tracksep settings reset`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetSettings()
		if err != nil {
			return err
		}
		return RunSettingsShowWithDependencies(s, DefaultOutput)
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetSettings()
		if err != nil {
			return err
		}
		return RunSettingsGetWithDependencies(s, args[0], DefaultOutput)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetSettings()
		if err != nil {
			return err
		}
		return RunSettingsSetWithDependencies(s, cfgFile, args[0], args[1], DefaultOutput)
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings and save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := RunSettingsResetWithDependencies(cfgFile, DefaultOutput)
		if err != nil {
			return err
		}
		settings, settingsErr = s, nil
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

// RunSettingsShowWithDependencies prints every setting as a table
func RunSettingsShowWithDependencies(s *config.Settings, out OutputWriter) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, key := range config.Keys() {
		value, err := s.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", key, value)
	}
	return w.Flush()
}

// RunSettingsGetWithDependencies prints the value of key
func RunSettingsGetWithDependencies(s *config.Settings, key string, out OutputWriter) error {
	value, err := s.Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, value)
	return nil
}

// RunSettingsSetWithDependencies sets key to value and saves to configPath.
// The in-memory settings are left untouched if the new value is rejected.
func RunSettingsSetWithDependencies(s *config.Settings, configPath, key, value string, out OutputWriter) error {
	updated := *s
	if err := updated.Set(key, value); err != nil {
		return err
	}

	if err := config.Save(&updated, configPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	*s = updated
	saved, _ := s.Get(key)
	fmt.Fprintf(out, "Set %s = %s\n", key, saved)
	return nil
}

// RunSettingsResetWithDependencies writes the default settings to configPath
func RunSettingsResetWithDependencies(configPath string, out OutputWriter) (*config.Settings, error) {
	s := config.Defaults()
	if err := config.Save(s, configPath); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintf(out, "Settings reset to defaults in %s\n", configPath)
	return s, nil
}
