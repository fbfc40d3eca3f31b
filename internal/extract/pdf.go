package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDF is a two-strategy chain: structured per-page reading first,
// then a raw content-stream scrape when that fails. Only when both fail
// does the error surface.
func (e *Extractor) extractPDF(path string) (Result, error) {
	result, err := e.pdfPrimary(path)
	if err == nil {
		return result, nil
	}
	e.logger.Warn("structured PDF extraction failed, using content-stream fallback", "path", path, "error", err)
	return e.pdfFallback(path)
}

// pdfPrimary reads per-page text and Info metadata. The library panics on
// some malformed inputs, so the guard converts panics into errors and lets
// the fallback take over.
func (e *Extractor) pdfPrimary(path string) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	reader, err := pdf.Open(path)
	if err != nil {
		return Result{}, err
	}

	total := reader.NumPage()
	pages := []string{}
	for nr := 1; nr <= total; nr++ {
		page := reader.Page(nr)
		if page.V.IsNull() {
			continue
		}
		if text := pageText(page); text != "" {
			pages = append(pages, text)
		}
	}

	return Result{
		Text:      strings.TrimSpace(strings.Join(pages, "\n\n")),
		Pages:     pages,
		PageCount: total,
		Metadata:  pdfMetadata(reader),
	}, nil
}

// pageText renders one page, preferring row-ordered text and falling back
// to the page's plain text.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var lines []string
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			if sb.Len() > 0 {
				lines = append(lines, sb.String())
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// pdfMetadata reads the five standard Info fields. A missing Info
// dictionary yields an empty map; missing or non-string entries yield "".
func pdfMetadata(reader *pdf.Reader) map[string]string {
	metadata := map[string]string{}
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return metadata
	}

	fields := []struct{ name, key string }{
		{"title", "Title"},
		{"author", "Author"},
		{"subject", "Subject"},
		{"creator", "Creator"},
		{"producer", "Producer"},
	}
	for _, f := range fields {
		metadata[f.name] = pdfString(info.Key(f.key))
	}
	return metadata
}

// pdfString extracts a string value. Text panics on other kinds, so the
// kind check is load-bearing.
func pdfString(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return v.Text()
}

// pdfFallback scrapes text show operators from the raw page content
// streams into one blob with form-feed page breaks, then derives pages
// from the blob.
func (e *Extractor) pdfFallback(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return Result{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	var blob strings.Builder
	for nr := 1; nr <= ctx.PageCount; nr++ {
		if nr > 1 {
			blob.WriteByte('\f')
		}
		blob.WriteString(contentStreamText(ctx, nr))
	}

	raw := blob.String()
	pages := []string{}
	for _, page := range strings.Split(raw, "\f") {
		if trimmed := strings.TrimSpace(page); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	return Result{
		Text:      strings.TrimSpace(raw),
		Pages:     pages,
		PageCount: len(pages),
		Metadata:  map[string]string{},
	}, nil
}

// pdfStringRe matches PDF literal strings, escaped parentheses included.
var pdfStringRe = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// contentStreamText pulls the arguments of Tj and TJ text show operators
// out of one page's content stream.
func contentStreamText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}

	var lines []string
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if !bytes.HasSuffix(line, []byte("Tj")) && !bytes.HasSuffix(line, []byte("TJ")) {
			continue
		}
		var sb strings.Builder
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			sb.WriteString(decodePDFString(m[1]))
		}
		if sb.Len() > 0 {
			lines = append(lines, sb.String())
		}
	}
	return strings.Join(lines, "\n")
}

// decodePDFString resolves backslash escapes in a PDF literal string,
// octal escapes included.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch {
		case raw[i] == 'n':
			sb.WriteByte('\n')
		case raw[i] == 'r':
			sb.WriteByte('\r')
		case raw[i] == 't':
			sb.WriteByte('\t')
		case raw[i] == 'b':
			sb.WriteByte('\b')
		case raw[i] == 'f':
			sb.WriteByte('\f')
		case raw[i] >= '0' && raw[i] <= '7':
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		default:
			// covers \\, \( and \)
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
