package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text through the system Tesseract installation.
// Each Recognize call runs on a fresh client, so one engine value is safe
// for concurrent use.
type Tesseract struct {
	languages []string
}

// NewTesseract builds a Tesseract engine for the given language codes.
// With no languages the Tesseract default ("eng") applies.
func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{languages: languages}
}

// Recognize runs word-level recognition on an encoded image.
func (t *Tesseract) Recognize(image []byte) ([]Token, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return nil, fmt.Errorf("failed to set OCR languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to load image for OCR: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize text: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		tokens = append(tokens, Token{
			Text:       box.Word,
			Confidence: int(box.Confidence),
		})
	}
	return tokens, nil
}
