package extract

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/richardlehane/mscfb"
	xunicode "golang.org/x/text/encoding/unicode"
)

// ole2Magic is the compound file binary format signature.
var ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// extractGeneric is the catch-all strategy: OLE2 compound files are walked
// stream by stream, everything else gets a printable-run scan over the raw
// bytes. Recovering nothing counts as a failure so the caller reports an
// unsupported file rather than an empty success.
func (e *Extractor) extractGeneric(path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	var text string
	if bytes.HasPrefix(raw, ole2Magic) {
		text, err = compoundFileText(raw)
		if err != nil {
			return Result{}, err
		}
	} else {
		text = streamText(raw)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, errors.New("no printable text found")
	}

	return Result{
		Text: text,
		Metadata: map[string]string{
			"filename": filepath.Base(path),
			"size":     strconv.Itoa(len(raw)),
		},
	}, nil
}

// Streams holding the main text in common OLE2 documents.
var textStreamNames = map[string]bool{
	"WordDocument": true,
	"Contents":     true,
}

// compoundFileText walks an OLE2 container and recovers text from its
// streams, preferring the well-known text streams when present.
func compoundFileText(raw []byte) (string, error) {
	doc, err := mscfb.New(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	var preferred, all []string
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		data, readErr := io.ReadAll(entry)
		if readErr != nil || len(data) == 0 {
			continue
		}
		text := streamText(data)
		if text == "" {
			continue
		}
		if textStreamNames[entry.Name] {
			preferred = append(preferred, text)
		}
		all = append(all, text)
	}
	if len(preferred) > 0 {
		return strings.Join(preferred, "\n"), nil
	}
	return strings.Join(all, "\n"), nil
}

// streamText recovers text from one byte stream. Word stores body text as
// UTF-16LE more often than not; a zero-byte density check picks the
// decoding before the printable-run scan.
func streamText(data []byte) string {
	if looksUTF16LE(data) {
		decoded, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err == nil {
			return printableRuns(decoded)
		}
	}
	return printableRuns(data)
}

// looksUTF16LE reports whether at least half the odd-position bytes are
// zero, the signature of little-endian UTF-16 Latin text.
func looksUTF16LE(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	zeros := 0
	for i := 1; i < len(data); i += 2 {
		if data[i] == 0 {
			zeros++
		}
	}
	return zeros*4 >= len(data)
}

const minPrintableRun = 4

// printableRuns joins all maximal runs of printable characters of at least
// minPrintableRun length with newlines.
func printableRuns(data []byte) string {
	var runs []string
	var current []rune
	flush := func() {
		if len(current) >= minPrintableRun {
			if s := strings.TrimSpace(string(current)); s != "" {
				runs = append(runs, s)
			}
		}
		current = current[:0]
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		i += size
		if r != utf8.RuneError && (unicode.IsPrint(r) || r == '\t') {
			current = append(current, r)
		} else {
			flush()
		}
	}
	flush()
	return strings.Join(runs, "\n")
}
