package screenshot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corona10/goimagehash"
)

// SeriesOptions configure a timed capture series.
type SeriesOptions struct {
	// Count is the number of frames to capture.
	Count int
	// Interval is the spacing between frames; required when Count > 1.
	Interval time.Duration
	// SkipUnchanged drops frames whose perceptual hash matches the
	// previously kept frame.
	SkipUnchanged bool
	// Capture produces one frame, e.g. Capturer.CaptureFullscreen.
	Capture func() (image.Image, error)
	// Clock and Sleeper are injectable for tests.
	Clock   func() time.Time
	Sleeper func(context.Context, time.Duration) error
}

// Series captures a fixed number of frames at a steady cadence.
type Series struct {
	count         int
	interval      time.Duration
	skipUnchanged bool
	capture       func() (image.Image, error)
	clock         func() time.Time
	sleeper       func(context.Context, time.Duration) error
}

// SeriesResult summarises a completed series run.
type SeriesResult struct {
	Files        []string
	Count        int
	Skipped      int
	FirstCapture time.Time
	LastCapture  time.Time
}

// NewSeries validates options and returns a series runner.
func NewSeries(opts SeriesOptions) (*Series, error) {
	if opts.Count <= 0 {
		return nil, errors.New("count must be positive")
	}
	if opts.Count > 1 && opts.Interval <= 0 {
		return nil, errors.New("interval must be positive for multi-frame series")
	}
	if opts.Capture == nil {
		return nil, errors.New("capture function must be provided")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = defaultSleeper
	}
	return &Series{
		count:         opts.Count,
		interval:      opts.Interval,
		skipUnchanged: opts.SkipUnchanged,
		capture:       opts.Capture,
		clock:         clock,
		sleeper:       sleeper,
	}, nil
}

// Run captures frames into destDir, encoding each with the given format
// and quality. File names carry the capture timestamp and a sequence
// number. Context cancellation aborts between frames.
func (s *Series) Run(ctx context.Context, destDir, format string, quality int) (SeriesResult, error) {
	if destDir == "" {
		return SeriesResult{}, newErrorf(ErrSaveFailed, "series_run", "destination directory must not be empty")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return SeriesResult{}, wrapErrorf(ErrSaveFailed, "series_run", err, "failed to prepare destination %s", destDir)
	}

	ext := strings.ToLower(strings.TrimSpace(format))
	if ext == "" {
		ext = "png"
	}

	result := SeriesResult{}
	var prevHash *goimagehash.ImageHash
	next := s.clock()

	for i := 0; i < s.count; i++ {
		if ctx != nil && ctx.Err() != nil {
			return SeriesResult{}, ctx.Err()
		}
		if err := s.waitForNext(ctx, next); err != nil {
			return SeriesResult{}, err
		}
		next = next.Add(s.interval)

		img, err := s.capture()
		if err != nil {
			return SeriesResult{}, err
		}

		if s.skipUnchanged {
			hash, hashErr := goimagehash.DifferenceHash(img)
			if hashErr == nil {
				if prevHash != nil {
					if dist, distErr := prevHash.Distance(hash); distErr == nil && dist == 0 {
						result.Skipped++
						continue
					}
				}
				prevHash = hash
			}
		}

		captured := s.clock()
		name := fmt.Sprintf("screenshot_%s_%03d.%s", captured.UTC().Format("20060102_150405"), i+1, ext)
		path, err := Save(img, filepath.Join(destDir, name), format, quality)
		if err != nil {
			return SeriesResult{}, err
		}

		result.Files = append(result.Files, path)
		result.Count++
		if result.FirstCapture.IsZero() {
			result.FirstCapture = captured
		}
		result.LastCapture = captured
	}

	return result, nil
}

func (s *Series) waitForNext(ctx context.Context, scheduled time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := s.clock()
	if !now.Before(scheduled) {
		return nil
	}
	return s.sleeper(ctx, scheduled.Sub(now))
}

func defaultSleeper(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
