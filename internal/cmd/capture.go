package cmd

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/codeforgood-org/screenshot-capturer/pkg/config"
	"github.com/codeforgood-org/screenshot-capturer/pkg/screenshot"
)

var supportedFormatNames = "png, jpeg, jpg, bmp, gif, tiff, webp"

// runCapture validates the capture request and executes it. Validation
// failures surface before any grab so no partial work occurs.
func (a *App) runCapture(ctx context.Context, logger *slog.Logger, store *config.Store, opts *options) int {
	if ctx != nil && ctx.Err() != nil {
		return a.fail(ctx.Err(), opts.verbose)
	}

	capturer, err := newCapturer(screenshot.Options{Grabber: a.grabber, Platform: a.platform})
	if err != nil {
		return a.fail(err, opts.verbose)
	}
	logger.Debug("capturer initialised", "platform", capturer.Platform())

	if opts.listDisplays {
		for _, d := range capturer.Displays() {
			b := d.Bounds
			fmt.Fprintf(a.stdout, "Display %d: %dx%d at (%d,%d)\n", d.Index, b.Dx(), b.Dy(), b.Min.X, b.Min.Y)
		}
		return 0
	}

	mode, err := screenshot.ParseMode(opts.mode)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	var region *screenshot.Region
	if mode == screenshot.ModeRegion {
		if opts.region == "" {
			fmt.Fprintln(a.stderr, "Error: --region is required for region mode")
			return 1
		}
		parsed, err := parseRegion(opts.region)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		region = &parsed
		logger.Debug("region parsed", "region", parsed.String())
	}

	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format == "" {
		format = strings.ToLower(store.DefaultFormat())
	}
	if !isSupportedFormat(format) {
		fmt.Fprintf(a.stderr, "Error: unsupported format %q (choose from %s)\n", format, supportedFormatNames)
		return 1
	}

	quality := opts.quality
	if quality < 0 {
		quality = store.DefaultQuality()
	}
	if quality < 1 || quality > 100 {
		fmt.Fprintln(a.stderr, "Error: quality must be between 1 and 100")
		return 1
	}

	var resizeTo *resizeSpec
	if opts.resizeSpec != "" {
		spec, err := parseResize(opts.resizeSpec)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		resizeTo = &spec
	}

	if opts.count < 1 {
		fmt.Fprintln(a.stderr, "Error: count must be at least 1")
		return 1
	}
	if opts.count > 1 {
		if opts.pdf {
			fmt.Fprintln(a.stderr, "Error: --pdf cannot be combined with --count")
			return 1
		}
		return a.runSeries(ctx, logger, store, opts, capturer, mode, region, format, quality, resizeTo)
	}

	output := opts.output
	if output == "" {
		ext := format
		if opts.pdf {
			ext = "pdf"
		}
		output = filepath.Join(store.DefaultOutputDir(), generateFilename(ext, timeNow()))
	}

	logger.Debug("capturing screenshot", "mode", mode.String(), "output", output, "format", format, "quality", quality)

	if opts.pdf || resizeTo != nil {
		result, err := capturer.QuickCapture(screenshot.QuickOptions{
			Mode:    mode,
			Region:  region,
			Display: opts.display,
		})
		if err != nil {
			return a.fail(err, opts.verbose)
		}
		var img image.Image = result.Image
		if resizeTo != nil {
			img = screenshot.Resize(img, resizeTo.width, resizeTo.height)
		}
		var path string
		if opts.pdf {
			path, err = screenshot.SavePDF([]image.Image{img}, output, "Screenshot")
		} else {
			path, err = screenshot.Save(img, output, format, quality)
		}
		if err != nil {
			return a.fail(err, opts.verbose)
		}
		return a.reportSaved(path, opts.quiet)
	}

	result, err := capturer.QuickCapture(screenshot.QuickOptions{
		Output:  output,
		Mode:    mode,
		Region:  region,
		Display: opts.display,
		Format:  format,
		Quality: quality,
	})
	if err != nil {
		return a.fail(err, opts.verbose)
	}
	return a.reportSaved(result.Path, opts.quiet)
}

func (a *App) runSeries(ctx context.Context, logger *slog.Logger, store *config.Store, opts *options,
	capturer *screenshot.Capturer, mode screenshot.Mode, region *screenshot.Region, format string, quality int,
	resizeTo *resizeSpec) int {

	capture := captureFunc(capturer, mode, region, opts.display)
	if resizeTo != nil {
		inner := capture
		capture = func() (image.Image, error) {
			img, err := inner()
			if err != nil {
				return nil, err
			}
			return screenshot.Resize(img, resizeTo.width, resizeTo.height), nil
		}
	}

	series, err := screenshot.NewSeries(screenshot.SeriesOptions{
		Count:         opts.count,
		Interval:      opts.interval,
		SkipUnchanged: opts.skipUnchanged,
		Capture:       capture,
	})
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	destDir := opts.output
	if destDir == "" {
		destDir = store.DefaultOutputDir()
	}
	logger.Debug("capturing series", "count", opts.count, "interval", opts.interval.String(), "dir", destDir)

	result, err := series.Run(ctx, destDir, format, quality)
	if err != nil {
		return a.fail(err, opts.verbose)
	}

	if !opts.quiet {
		fmt.Fprintf(a.stdout, "Captured %d screenshots to %s", result.Count, destDir)
		if result.Skipped > 0 {
			fmt.Fprintf(a.stdout, " (%d unchanged frames skipped)", result.Skipped)
		}
		fmt.Fprintln(a.stdout)
	}
	return 0
}

func (a *App) reportSaved(path string, quiet bool) int {
	if !quiet {
		fmt.Fprintf(a.stdout, "Screenshot saved to: %s\n", path)
	}
	return 0
}

// captureFunc selects the capture operation a series repeats.
func captureFunc(capturer *screenshot.Capturer, mode screenshot.Mode, region *screenshot.Region, display int) func() (image.Image, error) {
	return func() (image.Image, error) {
		result, err := capturer.QuickCapture(screenshot.QuickOptions{
			Mode:    mode,
			Region:  region,
			Display: display,
		})
		if err != nil {
			return nil, err
		}
		return result.Image, nil
	}
}

// generateFilename builds the auto-generated output name,
// screenshot_<YYYYMMDD_HHMMSS>.<ext>.
func generateFilename(ext string, now time.Time) string {
	return fmt.Sprintf("screenshot_%s.%s", now.Format("20060102_150405"), strings.ToLower(ext))
}

// parseRegion parses 'x,y,width,height' with exactly four integers.
func parseRegion(s string) (screenshot.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return screenshot.Region{}, fmt.Errorf("invalid region format: region must have 4 values: x,y,width,height")
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return screenshot.Region{}, fmt.Errorf("invalid region format: %q is not an integer", strings.TrimSpace(part))
		}
		values[i] = v
	}
	return screenshot.NewRegion(values[0], values[1], values[2], values[3])
}

type resizeSpec struct {
	width  uint
	height uint
}

// parseResize parses 'WIDTHxHEIGHT'; one dimension may be zero to keep
// the aspect ratio, but not both.
func parseResize(s string) (resizeSpec, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return resizeSpec{}, fmt.Errorf("invalid resize format %q: expected WIDTHxHEIGHT", s)
	}
	w, errW := strconv.ParseUint(parts[0], 10, 32)
	h, errH := strconv.ParseUint(parts[1], 10, 32)
	if errW != nil || errH != nil {
		return resizeSpec{}, fmt.Errorf("invalid resize format %q: dimensions must be non-negative integers", s)
	}
	if w == 0 && h == 0 {
		return resizeSpec{}, fmt.Errorf("invalid resize format %q: at least one dimension must be positive", s)
	}
	return resizeSpec{width: uint(w), height: uint(h)}, nil
}

func isSupportedFormat(format string) bool {
	for _, f := range screenshot.SupportedFormats() {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}
