package extract

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractTXT reads a plain text file. Files that are not valid UTF-8 are
// decoded as Latin-1 and tagged with an encoding entry. Lines split the
// raw text and are not individually trimmed.
func (e *Extractor) extractTXT(path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	metadata := map[string]string{
		"filename": filepath.Base(path),
		"size":     strconv.Itoa(len(raw)),
	}

	text := string(raw)
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return Result{}, err
		}
		text = string(decoded)
		metadata["encoding"] = "latin-1"
	}

	return Result{
		Text:     strings.TrimSpace(text),
		Lines:    strings.Split(text, "\n"),
		Metadata: metadata,
	}, nil
}
