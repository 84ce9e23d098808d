package dispatch

import "errors"

var (
	// ErrConfiguration marks a broken commands directory or definition file.
	// The CLI treats it as fatal.
	ErrConfiguration = errors.New("configuration error")

	// ErrCommandNotFound is returned when no definition file declares the
	// requested command.
	ErrCommandNotFound = errors.New("command not found")
)
