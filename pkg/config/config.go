// Package config persists small user preferences as a JSON record in
// the per-user configuration directory. Loading is tolerant (corrupted
// or unreadable files degrade to built-in defaults in memory without
// touching the file on disk); saving is strict.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known preference keys. Callers may also store custom keys, which
// survive load/save round-trips untouched.
const (
	KeyDefaultFormat    = "default_format"
	KeyDefaultQuality   = "default_quality"
	KeyDefaultOutputDir = "default_output_dir"
)

const (
	defaultFormat    = "PNG"
	defaultQuality   = 95
	defaultOutputDir = "."
)

// Defaults returns a fresh copy of the built-in preference set.
func Defaults() map[string]any {
	return map[string]any{
		KeyDefaultFormat:    defaultFormat,
		KeyDefaultQuality:   defaultQuality,
		KeyDefaultOutputDir: defaultOutputDir,
	}
}

// DefaultPath returns the per-user location of the preference file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "screenshot-capturer", "config.json"), nil
}

// Store holds the in-memory preference record bound to a backing file.
type Store struct {
	path   string
	values map[string]any
}

// Open binds a store to path (DefaultPath when empty) and loads it.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	s := &Store{path: path, values: Defaults()}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file seeds the built-in
// defaults and persists them immediately. A present but unreadable or
// non-parseable file substitutes the defaults in memory only, never
// rewriting the user's file. Keys missing from a parseable file fall
// back individually while present keys win.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.values = Defaults()
			return s.Save()
		}
		s.values = Defaults()
		return nil
	}

	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.values = Defaults()
		return nil
	}

	merged := Defaults()
	for key, value := range loaded {
		merged[key] = value
	}
	s.values = merged
	return nil
}

// Save serializes the complete in-memory record to the backing file,
// creating parent directories as needed.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write configuration to %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value stored under key, or def when absent.
func (s *Store) Get(key string, def any) any {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Set stores a value under key without persisting; call Save to write.
func (s *Store) Set(key string, value any) {
	s.values[key] = value
}

// DefaultFormat returns the preferred image format name.
func (s *Store) DefaultFormat() string {
	if v, ok := s.values[KeyDefaultFormat].(string); ok && v != "" {
		return v
	}
	return defaultFormat
}

// SetDefaultFormat upper-cases and stores the format name.
func (s *Store) SetDefaultFormat(format string) {
	s.values[KeyDefaultFormat] = strings.ToUpper(strings.TrimSpace(format))
}

// DefaultQuality returns the preferred JPEG quality.
func (s *Store) DefaultQuality() int {
	switch v := s.values[KeyDefaultQuality].(type) {
	case int:
		return v
	case float64:
		// JSON numbers decode as float64.
		return int(v)
	}
	return defaultQuality
}

// SetDefaultQuality stores the JPEG quality, rejecting values outside
// the inclusive 1..100 range.
func (s *Store) SetDefaultQuality(quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", quality)
	}
	s.values[KeyDefaultQuality] = quality
	return nil
}

// DefaultOutputDir returns the preferred output directory with a
// leading home-directory marker expanded to an absolute path.
func (s *Store) DefaultOutputDir() string {
	dir, _ := s.values[KeyDefaultOutputDir].(string)
	if dir == "" {
		dir = defaultOutputDir
	}
	return expandHome(dir)
}

// SetDefaultOutputDir stores the output directory as given.
func (s *Store) SetDefaultOutputDir(dir string) {
	s.values[KeyDefaultOutputDir] = dir
}

// Reset restores the built-in defaults, discarding custom keys, and
// persists the result.
func (s *Store) Reset() error {
	s.values = Defaults()
	return s.Save()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
