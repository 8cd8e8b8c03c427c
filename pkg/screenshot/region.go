package screenshot

import (
	"fmt"
	"image"
	"strings"
)

// Region is a validated capture rectangle. NewRegion is the sole
// validation point; a Region obtained from it is never re-checked.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRegion validates the rectangle and returns it. Dimension errors
// take priority over coordinate errors when both are invalid.
func NewRegion(x, y, width, height int) (Region, error) {
	if width <= 0 || height <= 0 {
		return Region{}, newErrorf(ErrInvalidRegion, "new_region",
			"region dimensions must be positive (got width=%d, height=%d)", width, height)
	}
	if x < 0 || y < 0 {
		return Region{}, newErrorf(ErrInvalidRegion, "new_region",
			"region coordinates must be non-negative (got x=%d, y=%d)", x, y)
	}
	return Region{X: x, Y: y, Width: width, Height: height}, nil
}

// Bounds returns the half-open bounding box (x, y, x+width, y+height)
// used as the capture boundary.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Region) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height)
}

// Mode selects which capture path executes.
type Mode int

const (
	ModeFullscreen Mode = iota
	ModeActiveWindow
	ModeRegion
)

// ParseMode maps a CLI mode name onto its Mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fullscreen":
		return ModeFullscreen, nil
	case "active_window":
		return ModeActiveWindow, nil
	case "region":
		return ModeRegion, nil
	default:
		return ModeFullscreen, fmt.Errorf("unsupported capture mode %q (expected fullscreen, region, or active_window)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeActiveWindow:
		return "active_window"
	case ModeRegion:
		return "region"
	default:
		return "fullscreen"
	}
}
