// Package fileutils provides the file operations used by commands and the
// profile loader.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mozzadell/cc-optimizer/internal/models"
)

// MaxProfileBytes caps how much of a spending profile is read.
const MaxProfileBytes = 1 << 20

// EnsureDirectoryExists creates dirPath and its parents if they are missing.
func EnsureDirectoryExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return nil
	}
	if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// ReadFile reads a regular file of at most maxBytes.
func ReadFile(filePath string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(filePath) // #nosec G304 -- path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", filePath)
	}

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s is larger than %d bytes", filePath, maxBytes)
	}
	return data, nil
}

// WriteFile writes data next to filePath and renames it into place, so a
// failed write never leaves a truncated report behind. Parent directories
// are created as needed.
func WriteFile(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Chmod(models.PermissionReportFile); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
