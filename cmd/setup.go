package cmd

import (
	"fmt"
	"os"
	"slices"

	"tracksep/domain/media"
	"tracksep/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	// Select returns the index of the chosen option
	Select(message string, options []string, defaultIndex int) (int, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct {
	DarkMode bool
}

func (p *SurveyPrompter) opts() []survey.AskOpt {
	if !p.DarkMode {
		return nil
	}
	return []survey.AskOpt{survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Format = "cyan+hb"
		icons.SelectFocus.Format = "cyan+hb"
		icons.Help.Format = "white+b"
	})}
}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result, p.opts()...); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result, p.opts()...); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("nothing to select for %q", message)
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	result := defaultIndex
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: options[defaultIndex],
	}
	if err := survey.AskOne(prompt, &result, p.opts()...); err != nil {
		return -1, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Edit settings interactively",
	Long: `Prompts for every setting, starting from the current values, and saves
the result to the settings file.

Settings cover the default output folder, the ffmpeg executable, output
filename templates, codecs, audio bitrate, logging level and appearance.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	current := settings
	if current == nil {
		current = config.Defaults()
	}
	if sp, ok := DefaultPrompter.(*SurveyPrompter); ok {
		sp.DarkMode = current.DarkMode
	}
	return RunSetupWithPrompter(DefaultPrompter, current, cfgFile, DefaultOutput)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, current *config.Settings, configPath string, out OutputWriter) error {
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("Settings file already exists. Overwrite?", true)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	s := *current

	if err := promptGeneral(prompter, &s); err != nil {
		return err
	}
	if err := promptAdvanced(prompter, &s); err != nil {
		return err
	}
	if err := promptAppearance(prompter, &s); err != nil {
		return err
	}

	if err := config.Save(&s, configPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	*current = s
	fmt.Fprintf(out, "Settings saved to %s\n", configPath)
	return nil
}

func promptGeneral(prompter Prompter, s *config.Settings) error {
	folder, err := prompter.Input("Default output folder?", s.DefaultOutputFolder)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if folder == "" {
		return fmt.Errorf("output folder is required")
	}
	s.DefaultOutputFolder = folder

	toolPath, err := prompter.Input("Path to the ffmpeg executable?", s.ToolPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if toolPath == "" {
		toolPath = config.DefaultToolPath
	}
	s.ToolPath = toolPath

	videoTmpl, err := prompter.Input("Video filename template?", s.VideoTemplate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if videoTmpl == "" {
		videoTmpl = media.DefaultVideoTemplate
	}
	s.VideoTemplate = videoTmpl

	audioTmpl, err := prompter.Input("Audio filename template?", s.AudioTemplate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if audioTmpl == "" {
		audioTmpl = media.DefaultAudioTemplate
	}
	s.AudioTemplate = audioTmpl

	return nil
}

func promptAdvanced(prompter Prompter, s *config.Settings) error {
	var err error
	if s.VideoCodec, err = selectValue(prompter, "Video codec?", media.VideoCodecs, s.VideoCodec); err != nil {
		return err
	}
	if s.AudioCodec, err = selectValue(prompter, "Audio codec?", media.AudioCodecs, s.AudioCodec); err != nil {
		return err
	}
	if media.AudioUsesBitrate(s.AudioCodec) {
		if s.AudioBitrate, err = selectValue(prompter, "Audio bitrate?", config.AudioBitrates, s.AudioBitrate); err != nil {
			return err
		}
	}
	if s.LoggingLevel, err = selectValue(prompter, "Logging level?", config.LoggingLevels, s.LoggingLevel); err != nil {
		return err
	}
	return nil
}

func promptAppearance(prompter Prompter, s *config.Settings) error {
	var err error
	if s.Theme, err = selectValue(prompter, "Theme?", config.Themes, s.Theme); err != nil {
		return err
	}

	if !config.SupportsDarkMode(s.Theme) {
		s.DarkMode = false
		return nil
	}

	dark, err := prompter.Confirm("Enable dark mode?", s.DarkMode)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	s.DarkMode = dark
	return nil
}

// selectValue offers options with current preselected. A current value
// missing from options is offered as an extra first choice so it can be kept.
func selectValue(prompter Prompter, message string, options []string, current string) (string, error) {
	choices := options
	if current != "" && !slices.Contains(options, current) {
		choices = append([]string{current}, options...)
	}

	idx, err := prompter.Select(message, choices, max(slices.Index(choices, current), 0))
	if err != nil {
		return "", fmt.Errorf("prompt cancelled")
	}
	if idx < 0 || idx >= len(choices) {
		return "", fmt.Errorf("invalid selection for %q", message)
	}
	return choices[idx], nil
}
