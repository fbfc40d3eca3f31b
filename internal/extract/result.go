package extract

import "github.com/docmill/docmill/internal/docimage"

// Result is the outcome of extracting one document. Error is set instead of
// Text when extraction failed. Exactly one of the Pages, Paragraphs and
// Lines views is populated, depending on the source format.
//
// List and map fields carry omitzero so a stage that ran serializes its
// empty value ("pages": [], "metadata": {}) while stages that never ran
// omit the key entirely.
type Result struct {
	Text       string            `json:"text,omitempty"`
	Pages      []string          `json:"pages,omitzero"`
	Paragraphs []string          `json:"paragraphs,omitzero"`
	Lines      []string          `json:"lines,omitzero"`
	PageCount  int               `json:"page_count,omitempty"`
	Metadata   map[string]string `json:"metadata,omitzero"`
	Images     []docimage.Image  `json:"images,omitzero"`
	Error      string            `json:"error,omitempty"`
}
