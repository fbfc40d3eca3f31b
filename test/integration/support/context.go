// Package support carries the shared scenario state and step definitions
// for the BDD integration suite. Scenarios drive the public Go API over the
// deterministic paths: OCR stays disabled and the analyzer points at an
// empty models directory, so every model-backed section exercises its
// fallback.
package support

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docmill/docmill/internal/analysis"
	"github.com/docmill/docmill/internal/extract"
	"github.com/docmill/docmill/internal/ocr"
)

// TestContext holds the state threaded through one scenario.
type TestContext struct {
	TempDir string

	// Extraction state
	DocumentPath  string
	ExtractResult extract.Result

	// Analysis state
	AnalysisText   string
	AnalysisResult analysis.Result
	analyzer       *analysis.Analyzer

	// Export state
	ExportPath  string
	SampleCount int
}

// NewTestContext creates a fresh context with its own scratch directory.
func NewTestContext() (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "docmill-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return &TestContext{TempDir: tempDir}, nil
}

// Cleanup releases the scenario's analyzer and scratch directory.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.analyzer != nil {
		testCtx.analyzer.Close()
		testCtx.analyzer = nil
	}
	if err := os.RemoveAll(testCtx.TempDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temp directory %s: %w", testCtx.TempDir, err)
	}
	return nil
}

// tempPath returns a path for a scenario artifact.
func (testCtx *TestContext) tempPath(name string) string {
	return filepath.Join(testCtx.TempDir, name)
}

// discardLogger keeps library logging out of the godog output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newExtractor builds the extraction engine under test. OCR is disabled so
// scenarios run without a system Tesseract installation.
func (testCtx *TestContext) newExtractor() *extract.Extractor {
	return extract.New(extract.Config{
		Logger: discardLogger(),
		OCR:    ocr.Config{Enabled: false},
	})
}

// newAnalyzer builds the analysis engine pointed at a models directory that
// does not exist.
func (testCtx *TestContext) newAnalyzer() *analysis.Analyzer {
	if testCtx.analyzer == nil {
		testCtx.analyzer = analysis.New(analysis.Config{
			ModelsDir: filepath.Join(testCtx.TempDir, "models"),
			Logger:    discardLogger(),
		})
	}
	return testCtx.analyzer
}
