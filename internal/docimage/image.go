// Package docimage pulls embedded raster images out of PDF and DOCX files
// and annotates each one with OCR text, a confidence score, and a
// perceptual hash. Every image is a self-contained value carrying its
// provenance (page and index, or relationship id) in the Meta map.
package docimage

import (
	"encoding/base64"
	"log/slog"

	"github.com/docmill/docmill/internal/ocr"
)

// Image is one embedded raster image prepared as a training sample.
type Image struct {
	Type    string         `json:"type"`
	Content string         `json:"content"` // base64 of the original bytes
	Format  string         `json:"format"`  // e.g. "png", "jpeg"
	Meta    map[string]any `json:"meta"`
}

// newImage assembles an Image from raw bytes, filling in the shared OCR and
// hash annotations. The provenance keys are already present in meta.
func newImage(content []byte, format string, meta map[string]any, engine ocr.Engine, logger *slog.Logger) Image {
	text, confidence := recognize(content, engine, logger)
	meta["ocr_text"] = text
	meta["ocr_confidence"] = confidence
	meta["phash"] = hashImage(content, logger)

	return Image{
		Type:    "symbol_image",
		Content: base64.StdEncoding.EncodeToString(content),
		Format:  format,
		Meta:    meta,
	}
}

// recognize runs the OCR engine over one image. A nil engine (OCR disabled)
// and recognition failures both degrade to no text.
func recognize(content []byte, engine ocr.Engine, logger *slog.Logger) (string, float64) {
	if engine == nil {
		return "", 0
	}
	tokens, err := engine.Recognize(content)
	if err != nil {
		logger.Warn("image OCR failed", "error", err)
		return "", 0
	}
	return ocr.JoinText(tokens), ocr.MeanConfidence(tokens)
}
