package screenshot

import (
	"image"

	"github.com/kbinani/screenshot"
)

// Grabber abstracts the platform screen-grab primitive so tests can
// substitute synthetic frames for real display captures.
type Grabber interface {
	// NumDisplays reports how many active displays are attached.
	NumDisplays() int
	// DisplayBounds returns the virtual-screen rectangle of a display.
	DisplayBounds(index int) image.Rectangle
	// Grab captures the pixels inside bounds.
	Grab(bounds image.Rectangle) (*image.RGBA, error)
}

type systemGrabber struct{}

// DefaultGrabber returns the grabber backed by the host display server.
func DefaultGrabber() Grabber {
	return systemGrabber{}
}

func (systemGrabber) NumDisplays() int {
	return screenshot.NumActiveDisplays()
}

func (systemGrabber) DisplayBounds(index int) image.Rectangle {
	return screenshot.GetDisplayBounds(index)
}

func (systemGrabber) Grab(bounds image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(bounds)
}
