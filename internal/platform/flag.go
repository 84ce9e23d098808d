package platform

import "fmt"

// Flag selects behaviour per platform. Select reports true only when the
// current platform's bit is set.
type Flag struct {
	Mac bool
	Win bool
}

// MacOnly selects macOS hosts.
func MacOnly() Flag { return Flag{Mac: true} }

// WinOnly selects Windows hosts.
func WinOnly() Flag { return Flag{Win: true} }

// AllPlatforms selects every supported host.
func AllPlatforms() Flag { return Flag{Mac: true, Win: true} }

// FlagFor builds a Flag from platform tags. An empty list selects all
// supported platforms.
func FlagFor(tags []string) (Flag, error) {
	if len(tags) == 0 {
		return AllPlatforms(), nil
	}
	var f Flag
	for _, tag := range tags {
		p, ok := ParseTag(tag)
		if !ok {
			return Flag{}, fmt.Errorf("unknown platform %q", tag)
		}
		switch p {
		case MacOS:
			f.Mac = true
		case Windows:
			f.Win = true
		}
	}
	return f, nil
}

// Select reports whether the flag is set for the current platform.
func (f Flag) Select() bool {
	return f.SelectFor(Current())
}

// SelectFor reports whether the flag is set for p.
func (f Flag) SelectFor(p Platform) bool {
	switch p {
	case MacOS:
		return f.Mac
	case Windows:
		return f.Win
	default:
		return false
	}
}
