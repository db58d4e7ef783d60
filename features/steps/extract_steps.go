//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tracksep/cmd"
	"tracksep/domain/media"
	"tracksep/infrastructure/config"
	"tracksep/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
)

// extractContext holds test state for extract and probe scenarios
type extractContext struct {
	settings    *config.Settings
	runner      *recordingRunner
	fileChecker *mockFileChecker
	prompter    *mockPrompter
	streams     []map[string]any
	output      *bytes.Buffer
	err         error
}

// SharedExtractContext is reset before each scenario via Before hook
var SharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return SharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedExtractContext = &extractContext{
			settings:    config.Defaults(),
			runner:      &recordingRunner{},
			fileChecker: newMockFileChecker(),
			prompter:    newMockPrompter(nil),
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^a video file at "([^"]*)"$`, aVideoFileAt)
	ctx.Step(`^no video file exists at "([^"]*)"$`, noVideoFileExistsAt)
	ctx.Step(`^the output folder "([^"]*)" is writable$`, theOutputFolderIsWritable)
	ctx.Step(`^the output folder "([^"]*)" is not writable$`, theOutputFolderIsNotWritable)
	ctx.Step(`^the setting "([^"]*)" is "([^"]*)"$`, theSettingIs)
	ctx.Step(`^the file contains the streams:$`, theFileContainsTheStreams)
	ctx.Step(`^ffprobe reports "([^"]*)"$`, ffprobeReports)
	ctx.Step(`^ffmpeg fails the "([^"]*)" stage with "([^"]*)"$`, ffmpegFailsTheStageWith)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^the created file "([^"]*)" is (\d+) bytes$`, theCreatedFileIsBytes)
	ctx.Step(`^I answer the stream prompts with:$`, iAnswerTheStreamPromptsWith)

	ctx.Step(`^I extract "([^"]*)" to "([^"]*)" with video stream (\d+) and audio stream (\d+)$`, iExtractToWithStreams)
	ctx.Step(`^I extract "([^"]*)" to "([^"]*)"$`, iExtractTo)
	ctx.Step(`^I extract "([^"]*)"$`, iExtract)
	ctx.Step(`^I extract "([^"]*)" to "([^"]*)" interactively$`, iExtractToInteractively)
	ctx.Step(`^I probe "([^"]*)"$`, iProbe)

	ctx.Step(`^ffmpeg should have been called with video arguments:$`, ffmpegShouldHaveBeenCalledWithVideoArguments)
	ctx.Step(`^ffmpeg should have been called with audio arguments:$`, ffmpegShouldHaveBeenCalledWithAudioArguments)
	ctx.Step(`^ffmpeg should not have run the "([^"]*)" stage$`, ffmpegShouldNotHaveRunTheStage)
	ctx.Step(`^no extraction should have run$`, noExtractionShouldHaveRun)
	ctx.Step(`^ffmpeg should not have been started$`, ffmpegShouldNotHaveBeenStarted)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the output should not contain "([^"]*)"$`, theOutputShouldNotContain)
	ctx.Step(`^the command should fail with "([^"]*)"$`, theCommandShouldFailWith)
	ctx.Step(`^the command should succeed$`, theCommandShouldSucceed)
}

func aVideoFileAt(path string) error {
	e := getExtractContext()
	e.fileChecker.existingFiles[path] = true
	return nil
}

func noVideoFileExistsAt(path string) error {
	e := getExtractContext()
	e.fileChecker.existingFiles[path] = false
	return nil
}

func theOutputFolderIsWritable(dir string) error {
	e := getExtractContext()
	e.fileChecker.writableDirs[dir] = true
	return nil
}

func theOutputFolderIsNotWritable(dir string) error {
	e := getExtractContext()
	e.fileChecker.writableDirs[dir] = false
	return nil
}

func theSettingIs(key, value string) error {
	e := getExtractContext()
	if err := e.settings.Set(key, value); err != nil {
		return err
	}
	e.settings.Normalize()
	return config.Validate(e.settings)
}

// theFileContainsTheStreams turns an | index | type | codec | width | height |
// channels | sample_rate | table into ffprobe JSON
func theFileContainsTheStreams(table *godog.Table) error {
	e := getExtractContext()
	rows := tableRows(table)
	if len(rows) == 0 {
		return fmt.Errorf("stream table is empty")
	}

	header := rows[0]
	for _, row := range rows[1:] {
		stream := make(map[string]any)
		for i, col := range header {
			if i >= len(row) || row[i] == "" {
				continue
			}
			switch col {
			case "index", "width", "height", "channels":
				n, err := strconv.Atoi(row[i])
				if err != nil {
					return fmt.Errorf("column %s: %w", col, err)
				}
				stream[col] = n
			case "type":
				stream["codec_type"] = row[i]
			case "codec":
				stream["codec_name"] = row[i]
			default:
				// ffprobe reports sample_rate as a string
				stream[col] = row[i]
			}
		}
		e.streams = append(e.streams, stream)
	}

	data, err := json.Marshal(map[string]any{"streams": e.streams})
	if err != nil {
		return err
	}
	e.runner.probeOutput = string(data)
	return nil
}

func ffprobeReports(output string) error {
	e := getExtractContext()
	e.runner.probeOutput = output
	return nil
}

func ffmpegFailsTheStageWith(stage, stderr string) error {
	e := getExtractContext()
	e.runner.failStage = media.Stage(stage)
	e.runner.failStderr = stderr
	return nil
}

func ffmpegIsNotInstalled() error {
	e := getExtractContext()
	e.runner.missing = true
	return nil
}

func theCreatedFileIsBytes(path string, size int) error {
	e := getExtractContext()
	e.fileChecker.sizes[path] = int64(size)
	return nil
}

func iAnswerTheStreamPromptsWith(table *godog.Table) error {
	e := getExtractContext()
	e.prompter = newMockPrompter(answersFromTable(tableRows(table)))
	return nil
}

func (e *extractContext) dependencies() cmd.ExtractDependencies {
	return cmd.ExtractDependencies{
		Extractor: ffmpeg.NewExtractor(
			ffmpeg.WithExtractorFFmpegPath(e.settings.ToolPath),
			ffmpeg.WithExtractorCommandRunner(e.runner),
		),
		Prober: ffmpeg.NewProber(
			ffmpeg.WithProberFFmpegPath(e.settings.ToolPath),
			ffmpeg.WithProberCommandRunner(e.runner),
		),
		FileChecker: e.fileChecker,
		FileSizer:   e.fileChecker,
		Prompter:    e.prompter,
	}
}

func (e *extractContext) runExtract(opts cmd.ExtractOptions) {
	e.err = cmd.RunExtractWithDependencies(context.Background(), e.dependencies(), e.settings, opts, e.output)
}

func iExtractToWithStreams(input, dir string, video, audio int) error {
	e := getExtractContext()
	e.runExtract(cmd.ExtractOptions{
		InputPath:   input,
		OutputDir:   dir,
		VideoStream: video,
		AudioStream: audio,
	})
	return nil
}

func iExtractTo(input, dir string) error {
	e := getExtractContext()
	e.runExtract(cmd.ExtractOptions{
		InputPath:   input,
		OutputDir:   dir,
		VideoStream: -1,
		AudioStream: -1,
	})
	return nil
}

func iExtract(input string) error {
	return iExtractTo(input, "")
}

func iExtractToInteractively(input, dir string) error {
	e := getExtractContext()
	e.runExtract(cmd.ExtractOptions{
		InputPath:   input,
		OutputDir:   dir,
		VideoStream: -1,
		AudioStream: -1,
		Interactive: true,
	})
	return nil
}

func iProbe(input string) error {
	e := getExtractContext()
	deps := e.dependencies()
	e.err = cmd.RunProbeWithDependencies(context.Background(), deps.Prober, e.fileChecker, input, e.output)
	return nil
}

func expectArgs(stage media.Stage, expected string) error {
	e := getExtractContext()
	if e.err != nil {
		return fmt.Errorf("unexpected error: %v", e.err)
	}

	args, ok := e.runner.stageArgs(stage)
	if !ok {
		return fmt.Errorf("ffmpeg was not called for the %s stage", stage)
	}

	got := strings.Join(args, " ")
	want := strings.Join(strings.Fields(expected), " ")
	if got != want {
		return fmt.Errorf("%s arguments mismatch:\n  expected: %s\n  got:      %s", stage, want, got)
	}
	return nil
}

func ffmpegShouldHaveBeenCalledWithVideoArguments(doc *godog.DocString) error {
	return expectArgs(media.StageVideo, doc.Content)
}

func ffmpegShouldHaveBeenCalledWithAudioArguments(doc *godog.DocString) error {
	return expectArgs(media.StageAudio, doc.Content)
}

func ffmpegShouldNotHaveRunTheStage(stage string) error {
	e := getExtractContext()
	if _, ok := e.runner.stageArgs(media.Stage(stage)); ok {
		return fmt.Errorf("expected the %s stage not to run", stage)
	}
	return nil
}

func noExtractionShouldHaveRun() error {
	if err := ffmpegShouldNotHaveRunTheStage(string(media.StageVideo)); err != nil {
		return err
	}
	return ffmpegShouldNotHaveRunTheStage(string(media.StageAudio))
}

func ffmpegShouldNotHaveBeenStarted() error {
	e := getExtractContext()
	if len(e.runner.calls) != 0 {
		return fmt.Errorf("expected no ffmpeg or ffprobe process, got %d: %+v", len(e.runner.calls), e.runner.calls)
	}
	return nil
}

func theOutputShouldContain(expected string) error {
	e := getExtractContext()
	if !strings.Contains(e.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, e.output.String())
	}
	return nil
}

func theOutputShouldNotContain(unexpected string) error {
	e := getExtractContext()
	if strings.Contains(e.output.String(), unexpected) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", unexpected, e.output.String())
	}
	return nil
}

func theCommandShouldFailWith(expected string) error {
	e := getExtractContext()
	if e.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", expected)
	}
	if !strings.Contains(e.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, e.err)
	}
	return nil
}

func theCommandShouldSucceed() error {
	e := getExtractContext()
	if e.err != nil {
		return fmt.Errorf("unexpected error: %v", e.err)
	}
	return nil
}

func tableRows(table *godog.Table) [][]string {
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Value)
		}
		rows = append(rows, cells)
	}
	return rows
}
