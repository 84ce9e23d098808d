package platform

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnresolvable is returned when a platform-conditioned value has no
// binding for the current host.
var ErrUnresolvable = errors.New("no resolvable path for this platform")

// Path is a logical location with one concrete path per supported platform.
// The zero value resolves nowhere.
type Path struct {
	Mac string
	Win string
}

// NewPath returns a Path with the given per-platform variants.
func NewPath(mac, win string) Path {
	return Path{Mac: mac, Win: win}
}

// Same returns a Path that resolves to p on every supported platform.
func Same(p string) Path {
	return Path{Mac: p, Win: p}
}

// Resolve returns the variant bound to the current platform.
func (p Path) Resolve() (string, error) {
	return p.ResolveFor(Current())
}

// ResolveFor returns the variant bound to plat.
func (p Path) ResolveFor(plat Platform) (string, error) {
	var resolved string
	switch plat {
	case MacOS:
		resolved = p.Mac
	case Windows:
		resolved = p.Win
	default:
		return "", fmt.Errorf("resolving path on %s: %w", HostName(), ErrUnresolvable)
	}
	if resolved == "" {
		return "", fmt.Errorf("no %s variant: %w", plat, ErrUnresolvable)
	}
	return resolved, nil
}

// Join returns a new Path whose variants are each joined with segment and
// made absolute. Both variants are always carried; the host is not consulted.
func (p Path) Join(segment string) Path {
	return Path{
		Mac: joinAbs(p.Mac, segment),
		Win: joinAbs(p.Win, segment),
	}
}

// String renders both variants.
func (p Path) String() string {
	return fmt.Sprintf("{mac: %q, win: %q}", p.Mac, p.Win)
}

func joinAbs(base, segment string) string {
	if base == "" {
		return ""
	}
	joined := filepath.Join(base, segment)
	if IsAbs(joined) {
		return filepath.Clean(joined)
	}
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

// IsAbs reports whether path is absolute in either Unix or Windows form, so
// a Windows variant stays intact when handled on a macOS host.
func IsAbs(path string) bool {
	if len(path) == 0 {
		return false
	}
	if path[0] == '/' || path[0] == '\\' {
		return true
	}
	// Windows absolute (e.g., C:\)
	if len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}
	return false
}
