package docimage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docmill/docmill/internal/ocr"
)

// FromPDF extracts every embedded raster image of a PDF in page order.
// Meta carries the 1-based page number and the 0-based index within that
// page. Extraction runs one page at a time into a scratch directory so page
// attribution never depends on pdfcpu's output naming.
func FromPDF(path string, engine ocr.Engine, logger *slog.Logger) ([]Image, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF page count: %w", err)
	}

	scratch, err := os.MkdirTemp("", "docmill-pdf-images-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	conf := model.NewDefaultConfiguration()

	var images []Image
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		pageDir := filepath.Join(scratch, strconv.Itoa(pageNr))
		if err := os.Mkdir(pageDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scratch directory: %w", err)
		}
		if err := api.ExtractImagesFile(path, pageDir, []string{strconv.Itoa(pageNr)}, conf); err != nil {
			return nil, fmt.Errorf("failed to extract images from page %d: %w", pageNr, err)
		}

		entries, err := os.ReadDir(pageDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list extracted images: %w", err)
		}
		index := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			content, err := os.ReadFile(filepath.Join(pageDir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("failed to read extracted image: %w", err)
			}
			meta := map[string]any{
				"page":  pageNr,
				"index": index,
			}
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".")
			images = append(images, newImage(content, format, meta, engine, logger))
			index++
		}
	}
	return images, nil
}
