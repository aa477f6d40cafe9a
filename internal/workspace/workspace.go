// Package workspace owns the output directory layout and its writer lock.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/nguyentantai21042004/needle-flow/internal/config"
)

const lockFileName = ".needle.lock"

// ErrLocked means another needle process is writing to the same output root.
var ErrLocked = errors.New("output directory is in use by another needle process")

// Ensure creates the audio, analysis and export directories.
func Ensure(cfg *config.Config) error {
	for _, dir := range []string{cfg.AudioDir(), cfg.AnalysisDir(), cfg.ExportDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Lock takes the single-writer lock on root. The returned func releases it.
func Lock(root string) (func() error, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return lock.Unlock, nil
}
