package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pdfBuilder accumulates numbered objects and their byte offsets for the
// cross-reference table.
type pdfBuilder struct {
	buf     bytes.Buffer
	offsets []int
}

func (b *pdfBuilder) object(nr int, body string) {
	for len(b.offsets) <= nr {
		b.offsets = append(b.offsets, 0)
	}
	b.offsets[nr] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", nr, body)
}

func escapePDFText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "(", `\(`)
	return strings.ReplaceAll(text, ")", `\)`)
}

// buildPDF writes a minimal but valid PDF showing one text per page with a
// Tj operator. The font carries an explicit Widths array so readers that
// position glyphs get strictly increasing offsets.
func buildPDF(pageTexts ...string) []byte {
	n := len(pageTexts)
	fontNr := 3 + 2*n

	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	var b pdfBuilder
	b.buf.WriteString("%PDF-1.4\n")
	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for i, text := range pageTexts {
		pageNr := 3 + 2*i
		stream := fmt.Sprintf("BT\n/F1 12 Tf\n72 720 Td\n(%s) Tj\nET", escapePDFText(text))
		b.object(pageNr, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
			pageNr+1, fontNr))
		b.object(pageNr+1, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	b.object(fontNr, fmt.Sprintf(
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] >>", widths))

	size := fontNr + 1
	xref := b.buf.Len()
	fmt.Fprintf(&b.buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for nr := 1; nr < size; nr++ {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", b.offsets[nr])
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xref)
	return b.buf.Bytes()
}

func writePDF(t *testing.T, name string, pageTexts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buildPDF(pageTexts...), 0o644))
	return path
}

func TestExtractPDFSinglePage(t *testing.T) {
	path := writePDF(t, "single.pdf", "AlphaOne")

	result := newTestExtractor().Extract(path)
	require.Empty(t, result.Error)
	assert.Equal(t, "AlphaOne", result.Text)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "AlphaOne", strings.TrimSpace(result.Pages[0]))
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, map[string]string{}, result.Metadata)
	assert.Nil(t, result.Paragraphs)
	assert.Nil(t, result.Lines)
}

func TestExtractPDFMultiPage(t *testing.T) {
	path := writePDF(t, "multi.pdf", "AlphaOne", "BetaTwo")

	result := newTestExtractor().Extract(path)
	require.Empty(t, result.Error)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, "AlphaOne", strings.TrimSpace(result.Pages[0]))
	assert.Equal(t, "BetaTwo", strings.TrimSpace(result.Pages[1]))
	assert.Equal(t, 2, result.PageCount)
	assert.Contains(t, result.Text, "AlphaOne")
	assert.Contains(t, result.Text, "BetaTwo")
}

func TestPDFFallback(t *testing.T) {
	path := writePDF(t, "partial.pdf", "", "Second page only")

	result, err := newTestExtractor().pdfFallback(path)
	require.NoError(t, err)
	assert.Equal(t, "Second page only", result.Text)
	assert.Equal(t, []string{"Second page only"}, result.Pages)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, map[string]string{}, result.Metadata)
}

func TestExtractPDFCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	result := newTestExtractor().Extract(path)
	assert.True(t, strings.HasPrefix(result.Error, "Extraction failed: "), "got %q", result.Error)
	assert.Empty(t, result.Text)
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain", raw: "hello", expected: "hello"},
		{name: "escaped parens", raw: `\(nested\)`, expected: "(nested)"},
		{name: "escaped backslash", raw: `a\\b`, expected: `a\b`},
		{name: "newline and tab", raw: `a\nb\tc`, expected: "a\nb\tc"},
		{name: "three digit octal", raw: `\101BC`, expected: "ABC"},
		{name: "short octal at end", raw: `x\7`, expected: "x\x07"},
		{name: "trailing backslash", raw: `x\`, expected: `x\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodePDFString([]byte(tt.raw)))
		})
	}
}
