package support

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cucumber/godog"

	"github.com/docmill/docmill/internal/export"
)

// RegisterExportSteps wires the JSONL export steps.
func (testCtx *TestContext) RegisterExportSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I export the document to JSONL$`, testCtx.iExportTheDocumentToJSONL)

	sc.Step(`^the export file has (\d+) lines?$`, testCtx.theExportFileHasLines)
	sc.Step(`^the reported sample count is (\d+)$`, testCtx.theReportedSampleCountIs)
	sc.Step(`^line (\d+) is a "([^"]*)" sample with content "([^"]*)"$`, testCtx.lineIsASampleWithContent)
	sc.Step(`^line (\d+) has meta "([^"]*)" (\d+)$`, testCtx.lineHasMeta)
}

func (testCtx *TestContext) iExportTheDocumentToJSONL() error {
	result := testCtx.newExtractor().Extract(testCtx.DocumentPath)
	if result.Error != "" {
		return fmt.Errorf("extraction failed: %s", result.Error)
	}

	testCtx.ExportPath = testCtx.tempPath("samples.jsonl")
	count, err := export.WriteFile(testCtx.ExportPath, export.BuildSamples(result))
	if err != nil {
		return err
	}
	testCtx.SampleCount = count
	return nil
}

// exportLines reads back the written JSONL file.
func (testCtx *TestContext) exportLines() ([]string, error) {
	data, err := os.ReadFile(testCtx.ExportPath)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSuffix(string(data), "\n")
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// exportLine parses the 1-based nr-th sample line.
func (testCtx *TestContext) exportLine(nr int) (map[string]any, error) {
	lines, err := testCtx.exportLines()
	if err != nil {
		return nil, err
	}
	if nr < 1 || nr > len(lines) {
		return nil, fmt.Errorf("line %d out of range, file has %d lines", nr, len(lines))
	}

	var sample map[string]any
	if err := json.Unmarshal([]byte(lines[nr-1]), &sample); err != nil {
		return nil, fmt.Errorf("line %d is not JSON: %w", nr, err)
	}
	return sample, nil
}

func (testCtx *TestContext) theExportFileHasLines(count int) error {
	lines, err := testCtx.exportLines()
	if err != nil {
		return err
	}
	if len(lines) != count {
		return fmt.Errorf("export file has %d lines, want %d", len(lines), count)
	}
	return nil
}

func (testCtx *TestContext) theReportedSampleCountIs(count int) error {
	if testCtx.SampleCount != count {
		return fmt.Errorf("reported sample count %d, want %d", testCtx.SampleCount, count)
	}
	return nil
}

func (testCtx *TestContext) lineIsASampleWithContent(nr int, sampleType, content string) error {
	sample, err := testCtx.exportLine(nr)
	if err != nil {
		return err
	}
	if got := sample["type"]; got != sampleType {
		return fmt.Errorf("line %d type %v, want %q", nr, got, sampleType)
	}
	if got := sample["content"]; got != content {
		return fmt.Errorf("line %d content %v, want %q", nr, got, content)
	}
	return nil
}

func (testCtx *TestContext) lineHasMeta(nr int, key string, value int) error {
	sample, err := testCtx.exportLine(nr)
	if err != nil {
		return err
	}
	meta, ok := sample["meta"].(map[string]any)
	if !ok {
		return fmt.Errorf("line %d has no meta object", nr)
	}
	got, ok := meta[key]
	if !ok {
		return fmt.Errorf("line %d meta has no %q key", nr, key)
	}
	number, ok := got.(float64)
	if !ok || int(number) != value {
		return fmt.Errorf("line %d meta %q is %v, want %d", nr, key, got, value)
	}
	return nil
}
