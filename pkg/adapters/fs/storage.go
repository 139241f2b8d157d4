package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/daycraft/pkg/core"
)

// FileExt is the extension of every key file.
const FileExt = ".json"

// DefaultSystemDir marks a directory as a Day Craft profile.
const DefaultSystemDir = ".daycraft"

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	SystemDir    string      // e.g. ".daycraft"
	ErrorHandler func(error) // called for runtime watcher failures
}

// Storage implements core.Storage as one JSON file per key inside a profile directory.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize creates the profile directory and its marker.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("profile path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("profile path is not a directory: %s", s.Path)
		}
	}
	if s.config.ReadOnly {
		return nil
	}

	if err := os.MkdirAll(filepath.Join(s.Path, s.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	return nil
}

// Load reads the file of key.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := s.pathOf(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Store writes the file of key atomically.
func (s *Storage) Store(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := core.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	return writeKeyFile(s.Path, key, data)
}

// Remove deletes the file of key.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := core.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	return removeKeyFile(s.Path, key)
}

// Keys lists key files in the profile directory.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyOf(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Storage) pathOf(key string) (string, error) {
	if err := core.ValidateKey(key); err != nil {
		return "", fmt.Errorf("%w: %q", err, key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// keyOf maps a file name back to its key, skipping temp files and foreign files.
func keyOf(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) || filepath.Ext(name) != FileExt {
		return "", false
	}
	key := strings.TrimSuffix(name, FileExt)
	if core.ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
