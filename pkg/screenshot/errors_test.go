package screenshot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMatchesItsKind(t *testing.T) {
	err := newErrorf(ErrCaptureFailed, "capture_fullscreen", "grab primitive returned no image")
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected errors.Is to match ErrCaptureFailed")
	}
	if errors.Is(err, ErrSaveFailed) {
		t.Fatalf("error should not match a different kind")
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("display server gone")
	err := wrapErrorf(ErrCaptureFailed, "capture_region", cause, "failed to capture region")
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "display server gone") {
		t.Fatalf("expected cause message preserved, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "capture_region") {
		t.Fatalf("expected operation in message, got %q", err.Error())
	}
}

func TestIsDomainCatchesWholeFamily(t *testing.T) {
	for _, kind := range []error{ErrPlatformNotSupported, ErrCaptureFailed, ErrInvalidRegion, ErrSaveFailed} {
		err := newErrorf(kind, "op", "boom")
		if !IsDomain(err) {
			t.Fatalf("expected %v to be caught as a domain error", kind)
		}
	}
	if IsDomain(errors.New("plain")) {
		t.Fatalf("plain errors must not be classified as domain errors")
	}
	if IsDomain(nil) {
		t.Fatalf("nil must not be classified as a domain error")
	}
}

func TestIsDomainSeesThroughWrapping(t *testing.T) {
	inner := newErrorf(ErrInvalidRegion, "new_region", "bad rectangle")
	wrapped := fmt.Errorf("while handling request: %w", inner)
	if !IsDomain(wrapped) {
		t.Fatalf("expected wrapped domain error to be detected")
	}
	if !errors.Is(wrapped, ErrInvalidRegion) {
		t.Fatalf("expected kind match through wrapping")
	}
}
