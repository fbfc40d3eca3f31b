// Package ocr recognizes text in embedded document images. The Engine
// interface isolates the extraction pipeline from the recognition backend;
// the default backend shells into Tesseract via gosseract.
package ocr

import "strings"

// Config holds recognition settings.
type Config struct {
	// Enabled toggles recognition. When false, images are still extracted
	// and hashed but carry no recognized text.
	Enabled bool
	// Languages lists Tesseract language codes, e.g. "eng", "deu".
	Languages []string
}

// DefaultConfig returns recognition defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Languages: []string{"eng"},
	}
}

// Token is one recognized word with its confidence on a 0-100 scale.
// A negative confidence marks a token the backend could not score.
type Token struct {
	Text       string
	Confidence int
}

// Engine recognizes text in a single encoded raster image. Engines are not
// required to be safe for concurrent use; callers confine an engine to one
// extraction at a time.
type Engine interface {
	Recognize(image []byte) ([]Token, error)
}

// JoinText concatenates the non-blank token texts with single spaces.
func JoinText(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok.Text) != "" {
			parts = append(parts, tok.Text)
		}
	}
	return strings.Join(parts, " ")
}

// MeanConfidence averages the scored (non-negative) token confidences.
// It returns 0 when no token carries a score.
func MeanConfidence(tokens []Token) float64 {
	sum, count := 0, 0
	for _, tok := range tokens {
		if tok.Confidence >= 0 {
			sum += tok.Confidence
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
