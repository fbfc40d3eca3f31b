// Package extract turns documents of several formats into a uniform text
// Result. Each format has its own strategy; strategy errors and panics are
// converted into structured error results at the dispatch boundary, so no
// failure crosses the package API as anything but a Result.
package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docmill/docmill/internal/docimage"
	"github.com/docmill/docmill/internal/ocr"
)

// Format identifies the extraction strategy chosen for a file.
type Format int

const (
	FormatGeneric Format = iota
	FormatPDF
	FormatDOCX
	FormatDOC
	FormatTXT
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	case FormatDOC:
		return "doc"
	case FormatTXT:
		return "txt"
	default:
		return "generic"
	}
}

// formatForPath resolves the strategy from the lowercased file extension.
// Unknown extensions get the generic content-sniffing strategy.
func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDOC
	case ".txt":
		return FormatTXT
	default:
		return FormatGeneric
	}
}

// Config holds extraction settings.
type Config struct {
	// MaxFileSize caps input files in bytes. Zero means no limit.
	MaxFileSize int64
	// Logger receives warnings from degraded stages. Nil means slog.Default.
	Logger *slog.Logger
	// OCR configures the recognition pass over embedded images.
	OCR ocr.Config
	// OCREngine overrides the engine built from the OCR settings.
	OCREngine ocr.Engine
}

// DefaultConfig returns extraction defaults.
func DefaultConfig() Config {
	return Config{
		OCR: ocr.DefaultConfig(),
	}
}

// Extractor extracts text, metadata and embedded images from documents.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
	engine ocr.Engine
}

// New builds an Extractor. With OCR enabled and no engine injected, a
// Tesseract engine is constructed from the configured languages.
func New(cfg Config) *Extractor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	engine := cfg.OCREngine
	if engine == nil && cfg.OCR.Enabled {
		engine = ocr.NewTesseract(cfg.OCR.Languages...)
	}
	return &Extractor{cfg: cfg, logger: logger, engine: engine}
}

// Extract reads one document and returns its text view. Failures come back
// as a Result with Error set; Extract never panics.
func (e *Extractor) Extract(path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Error: fmt.Sprintf("File not found: %s", path)}
	}
	if e.cfg.MaxFileSize > 0 && info.Size() > e.cfg.MaxFileSize {
		return Result{Error: fmt.Sprintf("Extraction failed: file size %d exceeds limit %d", info.Size(), e.cfg.MaxFileSize)}
	}

	format := formatForPath(path)
	result, err := e.dispatch(format, path)
	if err != nil {
		e.logger.Error("extraction failed", "path", path, "format", format.String(), "error", err)
		return Result{Error: failureMessage(format, err)}
	}
	return result
}

// ExtractWithImages composes Extract with the embedded-image stage for PDF
// and DOCX. Images is always set, possibly empty, even beside an Error
// result; an image-stage failure degrades to an empty list because text is
// the primary deliverable.
func (e *Extractor) ExtractWithImages(path string) Result {
	result := e.Extract(path)
	result.Images = []docimage.Image{}

	var (
		images []docimage.Image
		err    error
	)
	switch formatForPath(path) {
	case FormatPDF:
		images, err = docimage.FromPDF(path, e.engine, e.logger)
	case FormatDOCX:
		images, err = docimage.FromDOCX(path, e.engine, e.logger)
	default:
		return result
	}
	if err != nil {
		e.logger.Warn("image extraction failed", "path", path, "error", err)
		return result
	}
	if len(images) > 0 {
		result.Images = images
	}
	return result
}

// dispatch runs the strategy for a format. A recover guard converts any
// library panic into an ordinary error so it reaches callers as a Result.
func (e *Extractor) dispatch(format Format, path string) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	switch format {
	case FormatPDF:
		return e.extractPDF(path)
	case FormatDOCX:
		return e.extractDOCX(path)
	case FormatDOC:
		return e.extractDOC(path)
	case FormatTXT:
		return e.extractTXT(path)
	default:
		return e.extractGeneric(path)
	}
}

// failureMessage keeps the per-format wording of extraction errors.
func failureMessage(format Format, err error) string {
	switch format {
	case FormatDOC:
		return fmt.Sprintf("DOC extraction failed: %v", err)
	case FormatTXT:
		return fmt.Sprintf("Text extraction failed: %v", err)
	case FormatGeneric:
		return fmt.Sprintf("Unsupported file type extraction failed: %v", err)
	default:
		return fmt.Sprintf("Extraction failed: %v", err)
	}
}
