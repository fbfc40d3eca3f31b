package support

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// writeDOCXFixture builds a minimal OOXML package with one w:p element per
// paragraph.
func writeDOCXFixture(path string, paragraphs []string) error {
	escaper := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	var document strings.Builder
	document.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	document.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, paragraph := range paragraphs {
		document.WriteString("<w:p><w:r><w:t>")
		document.WriteString(escaper.Replace(paragraph))
		document.WriteString("</w:t></w:r></w:p>")
	}
	document.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	member, err := zw.Create("word/document.xml")
	if err != nil {
		return err
	}
	if _, err := member.Write([]byte(document.String())); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

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

// writePDFFixture writes a minimal but valid PDF showing one text per page
// with a Tj operator.
func writePDFFixture(path string, pageTexts ...string) error {
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

	return os.WriteFile(path, b.buf.Bytes(), 0o600)
}
