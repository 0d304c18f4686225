package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic replaces path with data. Readers see either the old or the
// new content, never a partial write.
func WriteFileAtomic(path string, data []byte) error {
	if err := EnsureDir(path); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
