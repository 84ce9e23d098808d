package fsync

import (
	"fmt"
	"path/filepath"

	"github.com/pluginbridge/cgc/internal/platform"
)

// RemoveOptions control RemoveFromDir.
type RemoveOptions struct {
	// Confirm asks before deleting.
	Confirm bool
	// Quiet suppresses the error log line. The error is still returned.
	Quiet bool
}

// RemoveFromDir deletes item from the directory base resolves to on the engine's
// platform. Directories are removed recursively.
func (e *Engine) RemoveFromDir(item string, base platform.Path, opts RemoveOptions) error {
	return e.fail(e.remove(item, base, opts), opts.Quiet)
}

func (e *Engine) remove(item string, base platform.Path, opts RemoveOptions) error {
	dir, err := base.ResolveFor(e.plat)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoResolvableDir, err)
	}

	if item == "" || filepath.Clean(item) == "." {
		return fmt.Errorf("%w: no item named in %s", ErrTargetNotFound, dir)
	}

	target := filepath.Join(dir, item)
	info, err := e.fs.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", ErrTargetNotFound, target)
		}
		return fmt.Errorf("reading %s: %w", target, err)
	}

	e.log.Debugf("Deleting %s", target)
	if opts.Confirm && !e.confirm.Confirm() {
		return fmt.Errorf("%w: %s was left untouched", ErrAbandoned, target)
	}

	if info.IsDir() {
		err = e.mut.RemoveAll(target)
	} else {
		err = e.mut.Remove(target)
	}
	if err != nil {
		return fmt.Errorf("removing %s: %w", target, err)
	}
	return nil
}
