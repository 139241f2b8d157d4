package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/daycraft/pkg/adapters/fs"
)

// ErrProfileNotFound is returned by FindProfileRoot when no marker exists above start.
var ErrProfileNotFound = errors.New("profile root not found")

// FindProfileRoot walks upwards from startDir looking for a ".daycraft" marker
// directory and returns the absolute path of the directory holding it.
func FindProfileRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, fs.DefaultSystemDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrProfileNotFound
		}
		dir = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
