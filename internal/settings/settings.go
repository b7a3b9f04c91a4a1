// Package settings provides the JSON-backed key/value store the extension
// uses for user preferences, and a cache variant that tolerates a missing or
// corrupt backing file.
//
// The store holds arbitrary JSON-compatible values with no schema. The
// in-memory map and the file are synchronized only at explicit Load and Save
// points; there are no partial updates.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cast"

	"github.com/texsnip/texsnip/internal/errors"
)

// Default basenames within the extension's config directory.
const (
	ConfigFileName = "config.json"
	CacheFileName  = ".cache.json"
)

// Settings is a JSON-backed key/value store.
type Settings struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// Open creates a Settings store backed by {dir}/{basename} and loads it.
// A missing file is not an error: the store starts empty and the file is
// created on the first Save. A file that exists but cannot be parsed is
// reported as a FatalError carrying a user-facing message, since silently
// dropping user preferences would be worse than stopping.
func Open(dir, basename string) (*Settings, error) {
	s := &Settings{
		path:   filepath.Join(dir, basename),
		values: make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenConfig opens the user preferences store at {dir}/config.json.
func OpenConfig(dir string) (*Settings, error) {
	return Open(dir, ConfigFileName)
}

// OpenCache opens the cache store at {dir}/.cache.json. Unlike OpenConfig,
// the fatal parse error is suppressed: cached data is disposable, so a
// corrupt file means proceeding with an empty map and overwriting it on the
// next Save. I/O errors other than a missing file still propagate.
func OpenCache(dir string) (*Settings, error) {
	s, err := Open(dir, CacheFileName)
	if err != nil {
		if !errors.IsFatal(err) {
			return nil, err
		}
		return &Settings{
			path:   filepath.Join(dir, CacheFileName),
			values: make(map[string]any),
		}, nil
	}
	return s, nil
}

// Load replaces the in-memory map with the contents of the backing file.
// A missing file leaves the store empty.
func (s *Settings) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]any)
			return nil
		}
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.NewFatalError(
			fmt.Sprintf("Bad config `%s`: %v. Please fix it and re-run texsnip.", s.path, err),
			err,
		).WithPath(s.path)
	}

	s.values = values
	return nil
}

// Save persists the in-memory map to the backing file using an atomic write,
// creating the parent directory if needed.
func (s *Settings) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.values, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	return atomicWriteFile(s.path, data, 0644)
}

// Get returns the value for key, or def when the key is absent or nil.
func (s *Settings) Get(key string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok || value == nil {
		return def
	}
	return value
}

// GetString returns the value for key as a string, or def when the key is
// absent or not representable as a string.
func (s *Settings) GetString(key, def string) string {
	value, err := cast.ToStringE(s.Get(key, def))
	if err != nil {
		return def
	}
	return value
}

// GetInt returns the value for key as an int, or def when the key is absent
// or not representable as an int. JSON numbers decode as float64, which cast
// converts back.
func (s *Settings) GetInt(key string, def int) int {
	value, err := cast.ToIntE(s.Get(key, def))
	if err != nil {
		return def
	}
	return value
}

// GetBool returns the value for key as a bool, or def when the key is absent
// or not representable as a bool.
func (s *Settings) GetBool(key string, def bool) bool {
	value, err := cast.ToBoolE(s.Get(key, def))
	if err != nil {
		return def
	}
	return value
}

// Set stores a value for key in memory. The file is not touched until Save.
func (s *Settings) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key from the in-memory map.
func (s *Settings) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Has reports whether key is present.
func (s *Settings) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns the stored keys in unspecified order.
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of stored keys.
func (s *Settings) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Path returns the path of the backing file.
func (s *Settings) Path() string {
	return s.path
}

// atomicWriteFile writes data to a file atomically by writing to a temporary
// file first, then renaming. This ensures the target file is never in a
// partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
