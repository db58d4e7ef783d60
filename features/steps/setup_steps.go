//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tracksep/cmd"
	"tracksep/infrastructure/config"

	"github.com/cucumber/godog"
)

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	prompter        *mockPrompter
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext = &setupContext{}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSetupContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		// Create temp directory for each scenario
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "tracksep", "settings.yaml")
		testCtx.originalContent = ""
		testCtx.prompter = nil
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		// Cleanup temp directory
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^no settings file exists for setup$`, testCtx.noSettingsFileExistsForSetup)
	ctx.Step(`^a settings file already exists for setup$`, testCtx.aSettingsFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with answers:$`, testCtx.iRunTheSetupCommandWithAnswers)
	ctx.Step(`^a settings file should exist$`, testCtx.aSettingsFileShouldExist)
	ctx.Step(`^the setup should have saved "([^"]*)" as "([^"]*)"$`, testCtx.theSetupShouldHaveSaved)
	ctx.Step(`^I should not have been asked "([^"]*)"$`, testCtx.iShouldNotHaveBeenAsked)
	ctx.Step(`^I should have been asked "([^"]*)"$`, testCtx.iShouldHaveBeenAsked)
	ctx.Step(`^the setup should be cancelled$`, testCtx.theSetupShouldBeCancelled)
	ctx.Step(`^the setup should fail with "([^"]*)"$`, testCtx.theSetupShouldFailWith)
	ctx.Step(`^the existing settings should be unchanged$`, testCtx.theExistingSettingsShouldBeUnchanged)
}

func (s *setupContext) noSettingsFileExistsForSetup() error {
	// Just ensure the settings directory exists but no settings file
	return os.MkdirAll(filepath.Dir(s.configPath), 0755)
}

func (s *setupContext) aSettingsFileAlreadyExistsForSetup() error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}

	content := `default_output_folder: /original/videos
tool_path: /original/ffmpeg
video_codec: h264
audio_codec: mp3
`
	s.originalContent = content
	return os.WriteFile(s.configPath, []byte(content), 0644)
}

func (s *setupContext) iRunTheSetupCommandWithAnswers(table *godog.Table) error {
	current, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.prompter = newMockPrompter(answersFromTable(tableRows(table)))
	s.err = cmd.RunSetupWithPrompter(s.prompter, current, s.configPath, s.output)
	return nil
}

func (s *setupContext) aSettingsFileShouldExist() error {
	if s.err != nil {
		return fmt.Errorf("setup command failed: %w", s.err)
	}
	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return fmt.Errorf("settings file does not exist at %s", s.configPath)
	}
	return nil
}

func (s *setupContext) theSetupShouldHaveSaved(key, expected string) error {
	saved, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	got, err := saved.Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s %q, got %q", key, expected, got)
	}
	return nil
}

func (s *setupContext) iShouldNotHaveBeenAsked(message string) error {
	if s.prompter.wasAsked(message) {
		return fmt.Errorf("did not expect the prompt %q", message)
	}
	return nil
}

func (s *setupContext) iShouldHaveBeenAsked(message string) error {
	if !s.prompter.wasAsked(message) {
		return fmt.Errorf("expected the prompt %q, asked: %v", message, s.prompter.asked)
	}
	return nil
}

func (s *setupContext) theSetupShouldBeCancelled() error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %v", s.err)
	}
	if !bytes.Contains(s.output.Bytes(), []byte("Setup cancelled.")) {
		return fmt.Errorf("expected setup to be cancelled, output:\n%s", s.output.String())
	}
	return nil
}

func (s *setupContext) theSetupShouldFailWith(expected string) error {
	if s.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", expected)
	}
	if !bytes.Contains([]byte(s.err.Error()), []byte(expected)) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, s.err)
	}
	return nil
}

func (s *setupContext) theExistingSettingsShouldBeUnchanged() error {
	content, err := os.ReadFile(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if string(content) != s.originalContent {
		return fmt.Errorf("settings content was changed")
	}
	return nil
}
