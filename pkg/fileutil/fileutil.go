// Package fileutil provides filesystem helpers for writing converted images,
// built on afero so commands and tests can swap the backing filesystem.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// File permission constants used when writing output files and directories.
const (
	// ReadWriteExecuteUserReadExecuteOthers is 0755 for directories.
	ReadWriteExecuteUserReadExecuteOthers os.FileMode = 0o755
	// ReadWriteUserReadOthers is 0644 for regular files.
	ReadWriteUserReadOthers os.FileMode = 0o644
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, ReadWriteExecuteUserReadExecuteOthers); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// UniquePath returns path if nothing exists there, otherwise the first
// collision-free variant with a numeric suffix before the extension:
// image.png, image_1.png, image_2.png, ...
func UniquePath(fs afero.Fs, path string) (string, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to check if %s exists: %w", path, err)
	}
	if !exists {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check if %s exists: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

// AppendExt adds ext (without dot) to path unless path already carries an
// extension.
func AppendExt(path, ext string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + "." + ext
}
