package fsync

import (
	"errors"
	"fmt"
	"io/fs"
)

// Failure categories. Every error returned by the Engine matches at most one
// of these with errors.Is (resolution failures also match
// platform.ErrUnresolvable).
var (
	ErrSourceNotFound     = errors.New("source not found")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrAbandoned          = errors.New("operation abandoned")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTargetNotFound     = errors.New("target not found")
	ErrNoResolvableDir    = errors.New("no resolvable directory")
)

// classify folds low-level permission failures into ErrPermissionDenied.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) && !errors.Is(err, ErrPermissionDenied) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
