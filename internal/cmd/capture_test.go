package cmd

import (
	"testing"
	"time"
)

func TestGenerateFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	if got := generateFilename("PNG", now); got != "screenshot_20240301_090507.png" {
		t.Fatalf("generateFilename = %q", got)
	}
	if got := generateFilename("jpeg", now); got != "screenshot_20240301_090507.jpeg" {
		t.Fatalf("generateFilename = %q", got)
	}
}

func TestParseRegion(t *testing.T) {
	region, err := parseRegion("10, 20, 300, 400")
	if err != nil {
		t.Fatalf("parseRegion returned error: %v", err)
	}
	if region.X != 10 || region.Y != 20 || region.Width != 300 || region.Height != 400 {
		t.Fatalf("unexpected region %+v", region)
	}

	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5", "a,b,c,d", "10,20,0,400", "-1,0,10,10"} {
		if _, err := parseRegion(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseResize(t *testing.T) {
	spec, err := parseResize("800x600")
	if err != nil {
		t.Fatalf("parseResize returned error: %v", err)
	}
	if spec.width != 800 || spec.height != 600 {
		t.Fatalf("unexpected spec %+v", spec)
	}

	spec, err = parseResize("1024x0")
	if err != nil {
		t.Fatalf("zero height should keep aspect: %v", err)
	}
	if spec.width != 1024 || spec.height != 0 {
		t.Fatalf("unexpected spec %+v", spec)
	}

	for _, bad := range []string{"", "800", "0x0", "-800x600", "axb"} {
		if _, err := parseResize(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestIsSupportedFormat(t *testing.T) {
	for _, f := range []string{"png", "JPEG", "jpg", "bmp", "gif", "tiff", "webp"} {
		if !isSupportedFormat(f) {
			t.Fatalf("%q should be supported", f)
		}
	}
	for _, f := range []string{"heic", "svg", ""} {
		if isSupportedFormat(f) {
			t.Fatalf("%q should not be supported", f)
		}
	}
}
