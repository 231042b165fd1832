package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"b64img/pkg/convert"
	"b64img/pkg/exitcodes"
	"b64img/pkg/fileutil"
)

// writeImage persists a converted image under dir, deriving the final path
// from name, the detected extension, and collision numbering. It returns the
// path actually written.
func writeImage(fs afero.Fs, dir, name string, img *convert.Image) (string, error) {
	if err := fileutil.EnsureDir(fs, dir); err != nil {
		return "", &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  err,
		}
	}

	path := fileutil.AppendExt(filepath.Join(dir, name), img.Ext)
	path, err := fileutil.UniquePath(fs, path)
	if err != nil {
		return "", &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  err,
		}
	}

	if err := afero.WriteFile(fs, path, img.Data, fileutil.ReadWriteUserReadOthers); err != nil {
		return "", &exitcodes.ExitCodeError{
			Code: exitcodes.ExitIOError,
			Err:  fmt.Errorf("failed to write output file %s: %w", path, err),
		}
	}
	return path, nil
}
