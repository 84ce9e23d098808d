package platform

import (
	"runtime"
	"strings"
)

// goos reports the host operating system. Tests swap it to simulate hosts.
var goos = func() string {
	return runtime.GOOS
}

// Platform identifies a supported host family.
type Platform int

const (
	// Unsupported is any host outside the supported set.
	Unsupported Platform = iota
	// MacOS covers darwin hosts.
	MacOS
	// Windows covers windows hosts.
	Windows
)

// String returns a human-readable platform name.
func (p Platform) String() string {
	switch p {
	case MacOS:
		return "macOS"
	case Windows:
		return "Windows"
	default:
		return "unsupported"
	}
}

// Tag returns the short tag naming this platform's command subdirectory
// ("mac" or "win"). Unsupported platforms have no tag.
func (p Platform) Tag() string {
	switch p {
	case MacOS:
		return "mac"
	case Windows:
		return "win"
	default:
		return ""
	}
}

// Supported reports whether p is one of the supported platforms.
func (p Platform) Supported() bool {
	return p == MacOS || p == Windows
}

// Current returns the platform of the running process.
func Current() Platform {
	return FromGOOS(goos())
}

// HostName returns the raw host operating system name, for messages.
func HostName() string {
	return goos()
}

// FromGOOS maps a GOOS value onto the supported platform set.
func FromGOOS(name string) Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return Unsupported
	}
}

// ParseTag converts a platform tag or name ("mac", "macOS", "darwin", "win",
// "windows") to a Platform.
func ParseTag(tag string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "mac", "macos", "darwin":
		return MacOS, true
	case "win", "windows":
		return Windows, true
	default:
		return Unsupported, false
	}
}

// Is reports whether the host matches the given system name, compared
// case-insensitively. "macOS" is accepted as an alias of "darwin".
func Is(name string) bool {
	name = strings.ToLower(name)
	if name == "macos" {
		name = "darwin"
	}
	return strings.ToLower(goos()) == name
}
