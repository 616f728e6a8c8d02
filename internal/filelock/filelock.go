// Package filelock writes index files so that concurrent builds targeting the
// same path never interleave and readers never see a partial file.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// IndexFileMode is the permission of written index files.
const IndexFileMode os.FileMode = 0644

// Lock is an advisory lock on the lock file that guards one index target.
type Lock struct {
	flock *flock.Flock
	path  string
}

// ForTarget returns the lock guarding writes to target. The lock file is
// target with a ".lock" suffix and is created on the first Acquire.
func ForTarget(target string) *Lock {
	path := LockPath(target)
	return &Lock{flock: flock.New(path), path: path}
}

// LockPath returns the lock file used for writes to target.
func LockPath(target string) string {
	return target + ".lock"
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock. If another build holds it, wait is called once
// with the lock file path and Acquire blocks until the lock is free.
func (l *Lock) Acquire(wait func(lockPath string)) error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	if acquired {
		return nil
	}

	if wait != nil {
		wait(l.path)
	}
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}
	return nil
}

// Release releases the lock.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// AtomicWrite writes data to a temporary file next to path and renames it
// into place. The parent directory is created when missing. On failure an
// existing file at path is left unchanged.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// same directory keeps the rename on one filesystem
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, IndexFileMode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}

// WriteIndex holds the target's Lock while atomically writing data to target.
// The parent directory is created first so the lock file can be placed in it.
// wait is passed to Acquire and may be nil.
func WriteIndex(target string, data []byte, wait func(lockPath string)) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := ForTarget(target)
	if err := lock.Acquire(wait); err != nil {
		return err
	}
	defer lock.Release()

	return AtomicWrite(target, data)
}
