//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tracksep/cmd"
	"tracksep/infrastructure/config"

	"github.com/cucumber/godog"
)

// settingsContext holds test state for settings scenarios
type settingsContext struct {
	tempDir    string
	configPath string
	settings   *config.Settings
	output     *bytes.Buffer
	err        error
}

var SharedSettingsContext = &settingsContext{}

func InitializeSettingsScenario(ctx *godog.ScenarioContext) {
	s := SharedSettingsContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "settings-test-*")
		if err != nil {
			return c, err
		}
		s.tempDir = tempDir
		s.configPath = filepath.Join(tempDir, "tracksep", "settings.yaml")
		s.settings = nil
		s.output = &bytes.Buffer{}
		s.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if s.tempDir != "" {
			os.RemoveAll(s.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^no settings file exists$`, s.noSettingsFileExists)
	ctx.Step(`^a settings file with:$`, s.aSettingsFileWith)
	ctx.Step(`^a settings file containing:$`, s.aSettingsFileContaining)
	ctx.Step(`^I show the settings$`, s.iShowTheSettings)
	ctx.Step(`^I get the setting "([^"]*)"$`, s.iGetTheSetting)
	ctx.Step(`^I set "([^"]*)" to "([^"]*)"$`, s.iSetTo)
	ctx.Step(`^I reset the settings$`, s.iResetTheSettings)
	ctx.Step(`^the saved setting "([^"]*)" should be "([^"]*)"$`, s.theSavedSettingShouldBe)
	ctx.Step(`^the loaded setting "([^"]*)" should be "([^"]*)"$`, s.theLoadedSettingShouldBe)
	ctx.Step(`^the settings output should contain "([^"]*)"$`, s.theSettingsOutputShouldContain)
	ctx.Step(`^the settings command should fail with "([^"]*)"$`, s.theSettingsCommandShouldFailWith)
	ctx.Step(`^the settings file should not exist$`, s.theSettingsFileShouldNotExist)
}

func (s *settingsContext) load() error {
	settings, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	s.settings = settings
	return nil
}

func (s *settingsContext) noSettingsFileExists() error {
	return s.load()
}

func (s *settingsContext) aSettingsFileWith(table *godog.Table) error {
	settings := config.Defaults()
	for i, row := range tableRows(table) {
		if i == 0 {
			continue
		}
		if err := settings.Set(row[0], row[1]); err != nil {
			return err
		}
	}
	if err := config.Save(settings, s.configPath); err != nil {
		return err
	}
	return s.load()
}

func (s *settingsContext) aSettingsFileContaining(doc *godog.DocString) error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.configPath, []byte(doc.Content), 0644); err != nil {
		return err
	}
	return s.load()
}

func (s *settingsContext) iShowTheSettings() error {
	s.err = cmd.RunSettingsShowWithDependencies(s.settings, s.output)
	return nil
}

func (s *settingsContext) iGetTheSetting(key string) error {
	s.err = cmd.RunSettingsGetWithDependencies(s.settings, key, s.output)
	return nil
}

func (s *settingsContext) iSetTo(key, value string) error {
	s.err = cmd.RunSettingsSetWithDependencies(s.settings, s.configPath, key, value, s.output)
	return nil
}

func (s *settingsContext) iResetTheSettings() error {
	s.settings, s.err = cmd.RunSettingsResetWithDependencies(s.configPath, s.output)
	return nil
}

func (s *settingsContext) theSavedSettingShouldBe(key, expected string) error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %v", s.err)
	}
	saved, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to reload settings: %w", err)
	}
	got, err := saved.Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected saved %s %q, got %q", key, expected, got)
	}
	return nil
}

func (s *settingsContext) theLoadedSettingShouldBe(key, expected string) error {
	got, err := s.settings.Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s %q, got %q", key, expected, got)
	}
	return nil
}

func (s *settingsContext) theSettingsOutputShouldContain(expected string) error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %v", s.err)
	}
	if !strings.Contains(s.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, s.output.String())
	}
	return nil
}

func (s *settingsContext) theSettingsCommandShouldFailWith(expected string) error {
	if s.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", expected)
	}
	if !strings.Contains(s.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, s.err)
	}
	return nil
}

func (s *settingsContext) theSettingsFileShouldNotExist() error {
	if _, err := os.Stat(s.configPath); !os.IsNotExist(err) {
		return fmt.Errorf("expected no settings file at %s", s.configPath)
	}
	return nil
}
