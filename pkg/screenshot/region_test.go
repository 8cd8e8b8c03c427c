package screenshot

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func TestNewRegionValid(t *testing.T) {
	r, err := NewRegion(100, 100, 400, 300)
	if err != nil {
		t.Fatalf("NewRegion returned error: %v", err)
	}
	if r.X != 100 || r.Y != 100 || r.Width != 400 || r.Height != 300 {
		t.Fatalf("unexpected region: %+v", r)
	}
}

func TestNewRegionZeroOrigin(t *testing.T) {
	if _, err := NewRegion(0, 0, 1, 1); err != nil {
		t.Fatalf("expected origin region to be valid, got %v", err)
	}
}

func TestNewRegionInvalidDimensions(t *testing.T) {
	cases := []struct {
		name          string
		x, y, w, h    int
		wantFragments []string
	}{
		{"zero width", 0, 0, 0, 100, []string{"dimensions must be positive", "width=0"}},
		{"zero height", 0, 0, 100, 0, []string{"dimensions must be positive", "height=0"}},
		{"negative width", 0, 0, -5, 100, []string{"width=-5"}},
		{"negative height", 0, 0, 100, -7, []string{"height=-7"}},
		{"negative x", -1, 0, 100, 100, []string{"coordinates must be non-negative", "x=-1"}},
		{"negative y", 0, -2, 100, 100, []string{"coordinates must be non-negative", "y=-2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegion(tc.x, tc.y, tc.w, tc.h)
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !errors.Is(err, ErrInvalidRegion) {
				t.Fatalf("expected ErrInvalidRegion, got %v", err)
			}
			for _, fragment := range tc.wantFragments {
				if !strings.Contains(err.Error(), fragment) {
					t.Fatalf("error %q missing %q", err.Error(), fragment)
				}
			}
		})
	}
}

func TestNewRegionDimensionErrorTakesPriority(t *testing.T) {
	_, err := NewRegion(-10, -10, 0, 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "dimensions must be positive") {
		t.Fatalf("expected dimension error to win, got %q", err.Error())
	}
}

func TestRegionBounds(t *testing.T) {
	r, err := NewRegion(100, 100, 400, 300)
	if err != nil {
		t.Fatalf("NewRegion returned error: %v", err)
	}
	want := image.Rect(100, 100, 500, 400)
	if got := r.Bounds(); got != want {
		t.Fatalf("unexpected bounds %v, want %v", got, want)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		input string
		want  Mode
	}{
		{"fullscreen", ModeFullscreen},
		{"", ModeFullscreen},
		{"Region", ModeRegion},
		{"ACTIVE_WINDOW", ModeActiveWindow},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.input)
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseMode("window"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
