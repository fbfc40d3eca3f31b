// Package export flattens extraction results into JSON Lines training
// samples: one text sample per chunk with its provenance, the chunk's
// unicode symbols and math expressions with that provenance merged in, and
// the embedded images last.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docmill/docmill/internal/extract"
	"github.com/docmill/docmill/internal/symbols"
)

// Sample is one export record. Format is only set for image samples.
type Sample struct {
	Type    string         `json:"type"`
	Content string         `json:"content"`
	Format  string         `json:"format,omitempty"`
	Meta    map[string]any `json:"meta"`
}

// BuildSamples flattens an extraction result. Chunking prefers pages, then
// paragraphs, then the whole text as a single chunk with empty provenance;
// line-split results are deliberately not chunked per line. Error results
// yield an empty, non-nil slice.
func BuildSamples(result extract.Result) []Sample {
	type chunk struct {
		text string
		meta map[string]any
	}

	var chunks []chunk
	switch {
	case len(result.Pages) > 0:
		for i, page := range result.Pages {
			chunks = append(chunks, chunk{text: page, meta: map[string]any{"page": i + 1}})
		}
	case len(result.Paragraphs) > 0:
		for i, paragraph := range result.Paragraphs {
			chunks = append(chunks, chunk{text: paragraph, meta: map[string]any{"paragraph": i + 1}})
		}
	case result.Text != "":
		chunks = append(chunks, chunk{text: result.Text, meta: map[string]any{}})
	}

	samples := []Sample{}
	for _, c := range chunks {
		samples = append(samples, Sample{Type: "text", Content: c.text, Meta: c.meta})
		for _, symbol := range symbols.ExtractUnicode(c.text) {
			samples = append(samples, symbolSample(symbol, c.meta))
		}
		for _, expr := range symbols.ExtractMath(c.text) {
			samples = append(samples, mathSample(expr, c.meta))
		}
	}

	for _, img := range result.Images {
		samples = append(samples, Sample{
			Type:    img.Type,
			Content: img.Content,
			Format:  img.Format,
			Meta:    img.Meta,
		})
	}
	return samples
}

// symbolSample wraps a unicode symbol with the chunk's provenance merged
// into its meta.
func symbolSample(symbol symbols.Symbol, chunkMeta map[string]any) Sample {
	meta := map[string]any{
		"unicode":  symbol.Unicode,
		"desc":     symbol.Desc,
		"position": symbol.Position,
	}
	for key, value := range chunkMeta {
		meta[key] = value
	}
	return Sample{Type: "symbol", Content: symbol.Content, Meta: meta}
}

// mathSample wraps a math expression with the chunk's provenance merged
// into its meta.
func mathSample(expr symbols.Math, chunkMeta map[string]any) Sample {
	meta := map[string]any{
		"start": expr.Start,
		"end":   expr.End,
	}
	for key, value := range chunkMeta {
		meta[key] = value
	}
	return Sample{Type: "math", Content: expr.Content, Meta: meta}
}

// Write streams samples to w as JSON Lines, one object per line with HTML
// escaping disabled so UTF-8 stays literal. Returns the sample count.
func Write(w io.Writer, samples []Sample) (int, error) {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	for _, sample := range samples {
		if err := encoder.Encode(sample); err != nil {
			return 0, fmt.Errorf("encode sample: %w", err)
		}
	}
	return len(samples), nil
}

// WriteFile writes samples to a JSONL file, creating or truncating it.
func WriteFile(path string, samples []Sample) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}

	count, writeErr := Write(file, samples)
	closeErr := file.Close()
	if writeErr != nil {
		return 0, writeErr
	}
	if closeErr != nil {
		return 0, fmt.Errorf("close output file: %w", closeErr)
	}
	return count, nil
}
