package screenshot

import (
	"errors"
	"image"
	"runtime"
)

// platformCaps records per-platform capability, resolved once at
// Capturer construction rather than checked on every call.
type platformCaps struct {
	activeWindow bool
}

var supportedPlatforms = map[string]platformCaps{
	"windows": {activeWindow: true},
	"darwin":  {activeWindow: true},
	// Active-window capture needs xdotool/wmctrl-style window lookup
	// that is not reliably present on Linux desktops.
	"linux": {activeWindow: false},
}

// Options configure a Capturer. The zero value resolves the running
// platform and uses the host display server.
type Options struct {
	// Grabber overrides the screen-grab primitive; defaults to the
	// host-backed grabber.
	Grabber Grabber
	// Platform overrides the resolved OS identifier; defaults to
	// runtime.GOOS.
	Platform string
}

// Capturer orchestrates platform screen-grab calls. Each capture is a
// stateless request against the platform resolved at construction.
type Capturer struct {
	platform string
	caps     platformCaps
	grabber  Grabber
}

// New resolves the platform, probes the capture backend, and returns a
// ready Capturer. It fails when the platform is outside the supported
// set or when the backend reports no active displays.
func New(opts Options) (*Capturer, error) {
	platform := opts.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	caps, ok := supportedPlatforms[platform]
	if !ok {
		return nil, newErrorf(ErrPlatformNotSupported, "new_capturer",
			"unsupported platform %q (supported: windows, linux, darwin)", platform)
	}
	grabber := opts.Grabber
	if grabber == nil {
		grabber = DefaultGrabber()
	}
	if grabber.NumDisplays() == 0 {
		return nil, newErrorf(ErrCaptureFailed, "new_capturer",
			"screen capture backend unavailable: no active displays detected")
	}
	return &Capturer{platform: platform, caps: caps, grabber: grabber}, nil
}

// Platform returns the OS identifier resolved at construction.
func (c *Capturer) Platform() string {
	return c.platform
}

// Display describes one attached display.
type Display struct {
	Index  int
	Bounds image.Rectangle
}

// Displays lists the active displays known to the capture backend.
func (c *Capturer) Displays() []Display {
	n := c.grabber.NumDisplays()
	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		displays = append(displays, Display{Index: i, Bounds: c.grabber.DisplayBounds(i)})
	}
	return displays
}

// CaptureFullscreen captures the entire primary display.
func (c *Capturer) CaptureFullscreen() (*image.RGBA, error) {
	return c.CaptureDisplay(0)
}

// CaptureDisplay captures the entire display with the given index.
func (c *Capturer) CaptureDisplay(index int) (*image.RGBA, error) {
	if index < 0 || index >= c.grabber.NumDisplays() {
		return nil, newErrorf(ErrCaptureFailed, "capture_display",
			"display index %d out of range (%d active displays)", index, c.grabber.NumDisplays())
	}
	img, err := c.grabber.Grab(c.grabber.DisplayBounds(index))
	if err != nil {
		return nil, wrapErrorf(ErrCaptureFailed, "capture_fullscreen", err, "failed to capture fullscreen")
	}
	if img == nil {
		return nil, newErrorf(ErrCaptureFailed, "capture_fullscreen", "grab primitive returned no image")
	}
	return img, nil
}

// CaptureRegion captures the pixels inside region. The region was
// validated at construction and is not re-checked here.
func (c *Capturer) CaptureRegion(region Region) (*image.RGBA, error) {
	img, err := c.grabber.Grab(region.Bounds())
	if err != nil {
		if errors.Is(err, ErrInvalidRegion) {
			return nil, err
		}
		return nil, wrapErrorf(ErrCaptureFailed, "capture_region", err, "failed to capture region %s", region)
	}
	if img == nil {
		return nil, newErrorf(ErrCaptureFailed, "capture_region", "grab primitive returned no image")
	}
	return img, nil
}

// CaptureActiveWindow captures the display hosting the focused window.
// On platforms without window introspection it refuses outright instead
// of silently returning wrong content under a misleading mode name.
// Where supported it grabs the primary display; true window-bounded
// capture would need a platform window-geometry lookup, so callers
// wanting precise bounds should supply a Region instead.
func (c *Capturer) CaptureActiveWindow() (*image.RGBA, error) {
	if !c.caps.activeWindow {
		return nil, newErrorf(ErrPlatformNotSupported, "capture_active_window",
			"active window capture requires additional tools on %s; use region capture instead", c.platform)
	}
	img, err := c.grabber.Grab(c.grabber.DisplayBounds(0))
	if err != nil {
		return nil, wrapErrorf(ErrCaptureFailed, "capture_active_window", err, "failed to capture active window")
	}
	if img == nil {
		return nil, newErrorf(ErrCaptureFailed, "capture_active_window", "grab primitive returned no image")
	}
	return img, nil
}

// QuickOptions parameterize QuickCapture, the single funnel external
// callers should use.
type QuickOptions struct {
	// Output is the destination path. When empty the raster is
	// returned instead of being persisted.
	Output string
	// Mode selects the capture path.
	Mode Mode
	// Region is required when Mode is ModeRegion.
	Region *Region
	// Display selects which display fullscreen capture targets.
	Display int
	// Format overrides the encoding; empty derives it from Output.
	Format string
	// Quality is the JPEG quality; zero means DefaultQuality.
	Quality int
}

// QuickResult holds either the saved path or the raw raster, depending
// on whether QuickOptions.Output was set.
type QuickResult struct {
	Path  string
	Image *image.RGBA
}

// QuickCapture dispatches to a capture operation by mode, then either
// persists the raster to Output or hands it back to the caller.
func (c *Capturer) QuickCapture(opts QuickOptions) (QuickResult, error) {
	var img *image.RGBA
	var err error

	switch opts.Mode {
	case ModeFullscreen:
		img, err = c.CaptureDisplay(opts.Display)
	case ModeRegion:
		if opts.Region == nil {
			return QuickResult{}, newErrorf(ErrInvalidRegion, "quick_capture", "region must be provided for region mode")
		}
		img, err = c.CaptureRegion(*opts.Region)
	case ModeActiveWindow:
		img, err = c.CaptureActiveWindow()
	default:
		return QuickResult{}, newErrorf(ErrCaptureFailed, "quick_capture", "unknown capture mode %d", opts.Mode)
	}
	if err != nil {
		return QuickResult{}, err
	}

	if opts.Output == "" {
		return QuickResult{Image: img}, nil
	}

	quality := opts.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	path, err := Save(img, opts.Output, opts.Format, quality)
	if err != nil {
		return QuickResult{}, err
	}
	return QuickResult{Path: path}, nil
}
