package dispatch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// discoveryPattern matches every definition file for the given prefix.
func discoveryPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^%s[_|.][\w|.]*ya?ml$`, regexp.QuoteMeta(prefix)))
}

// commandPattern matches the definition files for a single command name.
func commandPattern(prefix, name string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^%s_%s[_|.][\w|.]*ya?ml$`,
		regexp.QuoteMeta(prefix), regexp.QuoteMeta(name)))
}

// commandName extracts the command name from a definition file name: the
// second "_" segment of the name without its extension, cut at the first ".".
func commandName(file string) (string, bool) {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return "", false
	}

	name := parts[1]
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", false
	}
	return name, true
}
