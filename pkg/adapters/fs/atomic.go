package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TempFilePrefix marks in-flight writes. keyOf never reports them as keys, so
// watchers and Keys ignore them.
const TempFilePrefix = "daycraft-tmp-"

const filePerm = 0o644

// writeKeyFile replaces the file of key in dir. Readers (another CLI process,
// the watcher) see either the previous value or the new one, never a torn
// write. The directory entry is synced too, so a value reported as stored
// survives a crash.
func writeKeyFile(dir, key string, data []byte) error {
	tmp, err := os.CreateTemp(dir, TempFilePrefix+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, key+FileExt)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return syncDir(dir)
}

// removeKeyFile deletes the file of key in dir. A missing file is not an error.
func removeKeyFile(dir, key string) error {
	err := os.Remove(filepath.Join(dir, key+FileExt))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return syncDir(dir)
}

// syncDir flushes directory entries (renames, removals) to disk.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		// Directories cannot be opened for sync on Windows.
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open profile dir: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("failed to sync profile dir: %w", err)
	}
	return nil
}
