package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register the WEBP decoder
)

// DefaultQuality is the JPEG quality applied when the caller does not
// choose one.
const DefaultQuality = 95

// SupportedFormats lists the format names accepted by Save and
// EncodeBytes. WEBP is decode-only: saving in it fails with a
// SaveFailed error because no encoder exists in golang.org/x/image.
func SupportedFormats() []string {
	return []string{"PNG", "JPEG", "JPG", "BMP", "GIF", "TIFF", "WEBP"}
}

// resolveFormat applies the format negotiation rules: an explicit name
// wins, else the path extension, else PNG. Matching is case-insensitive
// and the result is upper-cased.
func resolveFormat(format, path string) string {
	f := strings.ToUpper(strings.TrimSpace(format))
	if f == "" {
		f = strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	if f == "" {
		f = "PNG"
	}
	return f
}

func encode(w io.Writer, img image.Image, format string, quality int) error {
	if quality <= 0 {
		quality = DefaultQuality
	}
	switch format {
	case "PNG":
		return png.Encode(w, img)
	case "JPEG", "JPG":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "BMP":
		return bmp.Encode(w, img)
	case "GIF":
		return gif.Encode(w, img, nil)
	case "TIFF":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "WEBP":
		return fmt.Errorf("WEBP encoding is not supported (decode only)")
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save encodes the raster and writes it to path, creating any missing
// parent directories first. Quality applies to JPEG-family formats and
// is ignored elsewhere; range checking is the caller's responsibility.
// Returns the absolute path of the written file.
func Save(img image.Image, path, format string, quality int) (string, error) {
	if img == nil {
		return "", newErrorf(ErrSaveFailed, "save", "no image data to save to %s", path)
	}
	f := resolveFormat(format, path)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", wrapErrorf(ErrSaveFailed, "save", err, "failed to save screenshot to %s", path)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", wrapErrorf(ErrSaveFailed, "save", err, "failed to save screenshot to %s", path)
	}
	if err := encode(file, img, f, quality); err != nil {
		file.Close()
		os.Remove(path)
		return "", wrapErrorf(ErrSaveFailed, "save", err, "failed to save screenshot to %s", path)
	}
	if err := file.Close(); err != nil {
		return "", wrapErrorf(ErrSaveFailed, "save", err, "failed to save screenshot to %s", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", wrapErrorf(ErrSaveFailed, "save", err, "failed to resolve saved path %s", path)
	}
	return abs, nil
}

// EncodeBytes encodes the raster into an in-memory buffer using the
// same format and quality rules as Save, without filesystem effects.
func EncodeBytes(img image.Image, format string, quality int) ([]byte, error) {
	if img == nil {
		return nil, newErrorf(ErrSaveFailed, "encode_bytes", "no image data to encode")
	}
	f := resolveFormat(format, "")
	var buf bytes.Buffer
	if err := encode(&buf, img, f, quality); err != nil {
		return nil, wrapErrorf(ErrSaveFailed, "encode_bytes", err, "failed to encode screenshot as %s", f)
	}
	return buf.Bytes(), nil
}

// Resize scales the raster to the given dimensions using Lanczos
// resampling. Passing zero for one dimension preserves aspect ratio.
func Resize(img image.Image, width, height uint) image.Image {
	return resize.Resize(width, height, img, resize.Lanczos3)
}
