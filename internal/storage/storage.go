// Package storage places watermarked output files on disk.
package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// OutputPath returns the destination for a watermarked copy of filename:
// {inputDir}/{subdir}/{prefix}{filename}. The original name is kept so a
// processed folder stays recognizable next to its source.
func OutputPath(inputDir, subdir, prefix, filename string) string {
	return filepath.Join(inputDir, subdir, prefix+filename)
}

// EnsureDir creates the directory structure for path.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// CleanStaleTemp removes leftover ".tmp-*" files in dir from interrupted
// runs. Missing directories are fine.
func CleanStaleTemp(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			log.Printf("could not remove stale temp file %s: %v", e.Name(), err)
		}
	}
}

// AtomicWrite writes data to path through a temp file in the same directory
// plus a rename, so a crashed or cancelled run never leaves a half-written
// photo behind.
func AtomicWrite(path string, data io.Reader) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp to final: %w", err)
	}
	return nil
}
