package fsync

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/platform"
)

// CopyOptions control Copy.
type CopyOptions struct {
	// MergeContents copies the children of a source directory into dest
	// instead of replacing dest/<base(src)>.
	MergeContents bool
	// Confirm asks before an existing target is replaced.
	Confirm bool
}

// Copy copies src (a file or directory) into the directory dest.
func (e *Engine) Copy(src, dest string, opts CopyOptions) error {
	return e.fail(e.copy(filepath.Clean(src), dest, opts), false)
}

// PlatformCopy resolves dest for the engine's platform and copies src into it.
func (e *Engine) PlatformCopy(src string, dest platform.Path, opts CopyOptions) error {
	dir, err := dest.ResolveFor(e.plat)
	if err != nil {
		return e.fail(fmt.Errorf("copying %s: %w", src, err), false)
	}
	return e.Copy(src, dir, opts)
}

// PlatformCopyContents merges the contents of src into the resolved dest.
func (e *Engine) PlatformCopyContents(src string, dest platform.Path, confirm bool) error {
	return e.PlatformCopy(src, dest, CopyOptions{MergeContents: true, Confirm: confirm})
}

func (e *Engine) copy(src, dest string, opts CopyOptions) error {
	if dest == "" {
		return fmt.Errorf("%w: destination is empty", ErrInvalidDestination)
	}

	srcInfo, err := e.fs.Stat(src)
	if err != nil {
		if isNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", ErrSourceNotFound, src)
		}
		return fmt.Errorf("reading %s: %w", src, err)
	}

	destExists := false
	destInfo, err := e.fs.Stat(dest)
	switch {
	case err == nil && !destInfo.IsDir():
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDestination, dest)
	case err == nil:
		destExists = true
	case !isNotExist(err):
		return fmt.Errorf("reading %s: %w", dest, err)
	}

	if !srcInfo.IsDir() {
		if !destExists {
			e.log.Debugf("Making directories at %s", dest)
			if err := e.mut.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dest, err)
			}
		}
		e.log.Debugf("Copying file %s to %s", src, dest)
		if err := e.mut.CopyFile(src, filepath.Join(dest, filepath.Base(src))); err != nil {
			return fmt.Errorf("copying %s: %w", src, err)
		}
		return nil
	}

	if opts.MergeContents {
		e.log.Debugf("Copying contents of %s into %s", src, dest)
		return e.copyTree(src, dest)
	}

	target := filepath.Join(dest, filepath.Base(src))
	if info, err := e.fs.Stat(target); err == nil {
		same := false
		if info.IsDir() {
			if same, err = e.mirrors(src, target); err != nil {
				return err
			}
		}
		if same {
			e.log.Debugf("%s is already up to date", target)
			return nil
		}

		e.log.Debugf("Replacing %s", target)
		if opts.Confirm && !e.confirm.Confirm() {
			return fmt.Errorf("%w: %s was left untouched", ErrAbandoned, target)
		}
		if err := e.mut.RemoveAll(target); err != nil {
			return fmt.Errorf("removing %s: %w", target, err)
		}
	} else if !isNotExist(err) {
		return fmt.Errorf("reading %s: %w", target, err)
	}

	e.log.Debugf("Copying directory %s to %s", src, target)
	return e.copyTree(src, target)
}

// copyTree recursively copies the directory src onto dst, creating
// directories as needed and overwriting files in place. Symlinks and special
// files are skipped.
func (e *Engine) copyTree(src, dst string) error {
	return afero.Walk(e.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := e.mut.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if err := e.mut.CopyFile(path, target); err != nil {
			return fmt.Errorf("copying %s: %w", path, err)
		}
		return nil
	})
}

// mirrors reports whether dst holds exactly the same relative files and
// directories as src, with identical file contents.
func (e *Engine) mirrors(src, dst string) (bool, error) {
	srcTree, err := e.tree(src)
	if err != nil {
		return false, err
	}
	dstTree, err := e.tree(dst)
	if err != nil {
		return false, err
	}

	if len(srcTree) != len(dstTree) {
		return false, nil
	}
	for rel, isDir := range srcTree {
		otherIsDir, ok := dstTree[rel]
		if !ok || otherIsDir != isDir {
			return false, nil
		}
		if isDir {
			continue
		}
		a, err := afero.ReadFile(e.fs, filepath.Join(src, rel))
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", filepath.Join(src, rel), err)
		}
		b, err := afero.ReadFile(e.fs, filepath.Join(dst, rel))
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", filepath.Join(dst, rel), err)
		}
		if !bytes.Equal(a, b) {
			return false, nil
		}
	}
	return true, nil
}

// tree maps every entry below root to whether it is a directory.
func (e *Engine) tree(root string) (map[string]bool, error) {
	entries := make(map[string]bool)
	err := afero.Walk(e.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries[rel] = info.IsDir()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return entries, nil
}
