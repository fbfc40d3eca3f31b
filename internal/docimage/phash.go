package docimage

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"

	// webp decoding; imaging already registers jpeg, png, gif, tiff and bmp.
	_ "golang.org/x/image/webp"
)

// hashImage renders the 64-bit perceptual hash of an encoded image as a
// fixed-width string of 16 lowercase hex digits. Images that cannot be
// decoded hash to "".
func hashImage(content []byte, logger *slog.Logger) string {
	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		logger.Warn("failed to decode image for hashing", "error", err)
		return ""
	}
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		logger.Warn("failed to compute perceptual hash", "error", err)
		return ""
	}
	return fmt.Sprintf("%016x", hash.GetHash())
}
