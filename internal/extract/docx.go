package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCX walks word/document.xml in streaming fashion: body
// paragraphs feed both the Paragraphs view and the text; table rows feed
// the text only, pipe-joined, after all paragraphs. Metadata comes from
// docProps/core.xml.
func (e *Extractor) extractDOCX(path string) (Result, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	defer zr.Close()

	docData, err := readZipMember(&zr.Reader, "word/document.xml")
	if err != nil {
		return Result{}, err
	}
	allParagraphs, tableRows, err := parseDocumentXML(docData)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse document body: %w", err)
	}

	paragraphs := []string{}
	var text strings.Builder
	for _, p := range allParagraphs {
		if p != "" {
			paragraphs = append(paragraphs, p)
			text.WriteString(p)
			text.WriteByte('\n')
		}
	}
	for _, row := range tableRows {
		text.WriteString(row)
		text.WriteByte('\n')
	}

	return Result{
		Text:       strings.TrimSpace(text.String()),
		Paragraphs: paragraphs,
		Metadata:   docxMetadata(&zr.Reader),
	}, nil
}

// parseDocumentXML returns the body paragraphs (empty ones included) and
// the pipe-joined rows of all top-level tables, each in document order.
// The collectors consume whole subtrees, so the outer loop only ever sees
// body-level elements.
func parseDocumentXML(data []byte) (paragraphs, tableRows []string, err error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch el.Name.Local {
		case "p":
			text, err := collectParagraph(dec)
			if err != nil {
				return nil, nil, err
			}
			paragraphs = append(paragraphs, text)
		case "tbl":
			rows, err := collectTable(dec)
			if err != nil {
				return nil, nil, err
			}
			tableRows = append(tableRows, rows...)
		}
	}
	return paragraphs, tableRows, nil
}

// collectParagraph consumes a w:p subtree and concatenates its run text.
// Tabs and breaks inside runs become "\t" and "\n"; w:tab elements outside
// runs are tab-stop definitions and contribute nothing.
func collectParagraph(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	runDepth := 0
	inText := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch el.Name.Local {
			case "r":
				runDepth++
			case "t":
				if runDepth > 0 {
					inText = true
				}
			case "tab":
				if runDepth > 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			depth--
			switch el.Name.Local {
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write([]byte(el))
			}
		}
	}
	return sb.String(), nil
}

// collectTable consumes a w:tbl subtree and returns its non-empty rows.
func collectTable(dec *xml.Decoder) ([]string, error) {
	var rows []string
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "tr" && depth == 1 {
				row, err := collectRow(dec)
				if err != nil {
					return nil, err
				}
				if row != "" {
					rows = append(rows, row)
				}
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return rows, nil
}

// collectRow consumes a w:tr subtree and pipe-joins its non-empty cells.
func collectRow(dec *xml.Decoder) (string, error) {
	var cells []string
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "tc" && depth == 1 {
				cell, err := collectCell(dec)
				if err != nil {
					return "", err
				}
				cells = append(cells, cell)
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	var parts []string
	for _, cell := range cells {
		if cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " | "), nil
}

// collectCell consumes a w:tc subtree and joins the cell's own paragraphs
// with newlines. Nested tables are skipped outright.
func collectCell(dec *xml.Decoder) (string, error) {
	var paragraphs []string
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "p" && depth == 1:
				text, err := collectParagraph(dec)
				if err != nil {
					return "", err
				}
				paragraphs = append(paragraphs, text)
			case el.Name.Local == "tbl":
				if err := dec.Skip(); err != nil {
					return "", err
				}
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

type coreProperties struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Subject  string `xml:"subject"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// docxMetadata reads docProps/core.xml. The five keys are always present;
// a missing or malformed part leaves them empty.
func docxMetadata(zr *zip.Reader) map[string]string {
	metadata := map[string]string{
		"title":    "",
		"author":   "",
		"subject":  "",
		"created":  "",
		"modified": "",
	}
	data, err := readZipMember(zr, "docProps/core.xml")
	if err != nil {
		return metadata
	}
	var props coreProperties
	if err := xml.Unmarshal(data, &props); err != nil {
		return metadata
	}
	metadata["title"] = props.Title
	metadata["author"] = props.Creator
	metadata["subject"] = props.Subject
	metadata["created"] = props.Created
	metadata["modified"] = props.Modified
	return metadata
}

func readZipMember(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("missing archive member: %s", name)
}
