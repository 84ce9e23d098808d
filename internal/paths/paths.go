// Package paths resolves the directories cgc works with.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/branding"
)

// CommandsDirName is the conventional name of the commands directory.
const CommandsDirName = "commands"

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0o755
	FilePermNormal os.FileMode = 0o644
)

// Where a commands directory came from.
const (
	SourceFlag       = "flag"
	SourceEnv        = "env"
	SourceConfig     = "config"
	SourceExecutable = "executable"
	SourceWorkingDir = "working directory"
)

// executable is swapped in tests.
var executable = os.Executable

// Home returns the per-user cgc directory. It checks the CGC_HOME
// environment variable first, then falls back to ~/.cgc.
func Home() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// CommandsDir is a resolved commands directory and the setting that chose it.
type CommandsDir struct {
	Path   string
	Source string
}

// ResolveCommandsDir picks the commands directory. The first non-empty of
// flag, the CGC_COMMANDS environment variable and configured wins. Otherwise
// a commands directory next to the executable is used when it exists, and
// ./commands when it does not.
func ResolveCommandsDir(fsys afero.Fs, flag, configured string) CommandsDir {
	if flag != "" {
		return CommandsDir{Path: flag, Source: SourceFlag}
	}
	if v := os.Getenv(branding.EnvVar("COMMANDS")); v != "" {
		return CommandsDir{Path: v, Source: SourceEnv}
	}
	if configured != "" {
		return CommandsDir{Path: configured, Source: SourceConfig}
	}

	if exe, err := executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		candidate := filepath.Join(filepath.Dir(exe), CommandsDirName)
		if ok, _ := afero.DirExists(fsys, candidate); ok {
			return CommandsDir{Path: candidate, Source: SourceExecutable}
		}
	}

	return CommandsDir{Path: CommandsDirName, Source: SourceWorkingDir}
}
