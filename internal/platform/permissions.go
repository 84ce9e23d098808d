package platform

import (
	"os"

	"github.com/spf13/afero"
)

// Chmod sets file permissions on fsys. On Windows this is a no-op because
// Windows does not support Unix-style permission bits.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if goos() == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode)
}
