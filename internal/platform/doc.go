// Package platform resolves platform-conditioned values for the two supported
// host families: macOS-like and Windows-like. It detects the current host,
// resolves Path values that carry one concrete path per platform, selects
// per-platform Flags, and wraps the few filesystem calls whose behaviour
// differs by platform (permission bits are a no-op on Windows).
//
// Any other host (Linux, BSD, ...) is explicitly unsupported: resolution
// reports ErrUnresolvable instead of guessing.
package platform
