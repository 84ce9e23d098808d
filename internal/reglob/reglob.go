// Package reglob lists the immediate children of a directory whose file names
// match a regular expression. It never descends into subdirectories.
package reglob

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"
)

// Files returns the regular files directly inside dir whose base name
// matches pattern, as full paths. A missing directory yields no files.
func Files(fsys afero.Fs, dir string, pattern *regexp.Regexp, sorted bool) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var acc []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern.MatchString(entry.Name()) {
			acc = append(acc, filepath.Join(dir, entry.Name()))
		}
	}

	if sorted {
		sort.Strings(acc)
	}
	return acc, nil
}

// Match compiles expr and calls Files.
func Match(fsys afero.Fs, dir, expr string, sorted bool) ([]string, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return Files(fsys, dir, pattern, sorted)
}
