package docimage

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/docmill/docmill/internal/ocr"
)

const documentRelsPart = "word/_rels/document.xml.rels"

type relationships struct {
	Rels []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type contentTypes struct {
	Defaults  []contentTypeDefault  `xml:"Default"`
	Overrides []contentTypeOverride `xml:"Override"`
}

type contentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// FromDOCX extracts the images referenced by a document's image
// relationships, in relationship order. Meta carries the relationship id.
// An unreadable image part is skipped rather than failing the whole list.
func FromDOCX(file string, engine ocr.Engine, logger *slog.Logger) ([]Image, error) {
	if logger == nil {
		logger = slog.Default()
	}

	zr, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	defer zr.Close()

	relsData, err := readZipMember(&zr.Reader, documentRelsPart)
	if err != nil {
		return nil, fmt.Errorf("failed to read document relationships: %w", err)
	}
	var rels relationships
	if err := xml.Unmarshal(relsData, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse document relationships: %w", err)
	}

	types := loadContentTypes(&zr.Reader)

	var images []Image
	for _, rel := range rels.Rels {
		if !strings.HasSuffix(rel.Type, "/image") || rel.TargetMode == "External" {
			continue
		}
		part := resolveTarget(rel.Target)
		content, err := readZipMember(&zr.Reader, part)
		if err != nil {
			logger.Warn("failed to read image part", "part", part, "error", err)
			continue
		}
		meta := map[string]any{
			"relationship_id": rel.ID,
		}
		images = append(images, newImage(content, types.formatFor(part), meta, engine, logger))
	}
	return images, nil
}

// loadContentTypes parses [Content_Types].xml. When the part is missing or
// malformed, format resolution falls back to file extensions.
func loadContentTypes(zr *zip.Reader) contentTypes {
	data, err := readZipMember(zr, "[Content_Types].xml")
	if err != nil {
		return contentTypes{}
	}
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return contentTypes{}
	}
	return ct
}

// formatFor resolves a part's image format, preferring an explicit
// content-type override, then the extension default, then the bare
// extension. Content types reduce to their subtype, e.g. "image/png" to
// "png".
func (ct contentTypes) formatFor(part string) string {
	for _, o := range ct.Overrides {
		if strings.TrimPrefix(o.PartName, "/") == part {
			return contentTypeSuffix(o.ContentType)
		}
	}
	ext := partExtension(part)
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return contentTypeSuffix(d.ContentType)
		}
	}
	return ext
}

func contentTypeSuffix(contentType string) string {
	if i := strings.LastIndex(contentType, "/"); i >= 0 {
		return contentType[i+1:]
	}
	return contentType
}

func partExtension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return ""
}

// resolveTarget maps a relationship target to its zip member name. Targets
// are relative to word/ unless they start with "/".
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean("word/" + target)
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
