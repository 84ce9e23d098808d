package fsync

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/platform"
)

// Mutator abstracts the filesystem calls that change state. Swapping it is
// how dry-run mode guarantees nothing is touched.
type Mutator interface {
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	Remove(path string) error
	CopyFile(src, dst string) error
}

// Live applies mutations to Fs.
type Live struct {
	Fs afero.Fs
}

// MkdirAll creates path and any missing parents.
func (l Live) MkdirAll(path string, perm os.FileMode) error {
	return l.Fs.MkdirAll(path, perm)
}

// RemoveAll deletes path recursively.
func (l Live) RemoveAll(path string) error {
	return l.Fs.RemoveAll(path)
}

// Remove deletes a single file or empty directory.
func (l Live) Remove(path string) error {
	return l.Fs.Remove(path)
}

// CopyFile copies src to dst, overwriting dst and preserving permissions.
func (l Live) CopyFile(src, dst string) error {
	info, err := l.Fs.Stat(src)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(l.Fs, src)
	if err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if err := afero.WriteFile(l.Fs, dst, data, perm); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing dst.
	return platform.Chmod(l.Fs, dst, perm)
}

// DryRun logs each mutation instead of performing it.
type DryRun struct {
	Log *logx.Logger
}

// MkdirAll logs the directory creation.
func (d DryRun) MkdirAll(path string, perm os.FileMode) error {
	d.Log.Debug(fmt.Sprintf("[dry-run] mkdir -p %s (%o)", path, perm))
	return nil
}

// RemoveAll logs the recursive deletion.
func (d DryRun) RemoveAll(path string) error {
	d.Log.Debug("[dry-run] rm -r " + path)
	return nil
}

// Remove logs the deletion.
func (d DryRun) Remove(path string) error {
	d.Log.Debug("[dry-run] rm " + path)
	return nil
}

// CopyFile logs the copy.
func (d DryRun) CopyFile(src, dst string) error {
	d.Log.Debug(fmt.Sprintf("[dry-run] cp %s %s", src, dst))
	return nil
}
