package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// Page dimensions in the PDF map pixels to millimetres at 96 DPI.
const (
	pixelsPerInch = 96
	mmPerInch     = 25.4
)

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// SavePDF writes the rasters into a PDF at path, one page per image,
// with each page sized to its image. Returns the absolute path.
func SavePDF(imgs []image.Image, path, title string) (string, error) {
	if len(imgs) == 0 {
		return "", newErrorf(ErrSaveFailed, "save_pdf", "no image data to save to %s", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", wrapErrorf(ErrSaveFailed, "save_pdf", err, "failed to save PDF to %s", path)
		}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size: gofpdf.SizeType{
			Wd: pixelsToMm(imgs[0].Bounds().Dx()),
			Ht: pixelsToMm(imgs[0].Bounds().Dy()),
		},
	})
	if title != "" {
		pdf.SetTitle(title, true)
	}

	for i, img := range imgs {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: DefaultQuality}); err != nil {
			return "", wrapErrorf(ErrSaveFailed, "save_pdf", err, "failed to encode page %d", i+1)
		}

		w := pixelsToMm(img.Bounds().Dx())
		h := pixelsToMm(img.Bounds().Dy())
		name := fmt.Sprintf("page_%03d", i+1)
		opt := gofpdf.ImageOptions{ImageType: "JPEG"}
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(name, 0, 0, w, h, false, opt, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", wrapErrorf(ErrSaveFailed, "save_pdf", err, "failed to save PDF to %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", wrapErrorf(ErrSaveFailed, "save_pdf", err, "failed to resolve saved path %s", path)
	}
	return abs, nil
}
