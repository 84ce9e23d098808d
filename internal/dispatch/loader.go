package dispatch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/branding"
	"github.com/pluginbridge/cgc/internal/cmddef"
	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/platform"
	"github.com/pluginbridge/cgc/internal/reglob"
)

// Loader finds and loads commands from a commands directory.
type Loader struct {
	dir     string
	fs      afero.Fs
	plat    platform.Platform
	prefix  string
	version string
	log     *logx.Logger

	memo map[string]Command
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fsys afero.Fs) LoaderOption {
	return func(l *Loader) { l.fs = fsys }
}

// WithPlatform sets the platform whose subdirectory is scanned and whose
// steps are selected. The default is the host platform.
func WithPlatform(p platform.Platform) LoaderOption {
	return func(l *Loader) { l.plat = p }
}

// WithPrefix overrides the definition file prefix.
func WithPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.prefix = prefix }
}

// WithVersion sets the version checked against each file's requires
// constraint. The default is the development version, which satisfies all.
func WithVersion(v string) LoaderOption {
	return func(l *Loader) { l.version = v }
}

// WithLogger sets the logger used for load traces.
func WithLogger(log *logx.Logger) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// NewLoader returns a Loader over dir. dir must be an existing directory.
func NewLoader(dir string, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{
		dir:     dir,
		plat:    platform.Current(),
		prefix:  branding.CommandPrefix(),
		version: cmddef.DevVersion,
		memo:    make(map[string]Command),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.log == nil {
		l.log = logx.Discard()
	}

	info, err := l.fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: commands directory %s: %w", ErrConfiguration, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: commands directory %s is not a directory", ErrConfiguration, dir)
	}
	return l, nil
}

// Dir returns the commands directory.
func (l *Loader) Dir() string { return l.dir }

// Platform returns the platform the loader selects for.
func (l *Loader) Platform() platform.Platform { return l.plat }

// PlatformDir returns the per-platform subdirectory, or "" on hosts without
// one.
func (l *Loader) PlatformDir() string {
	tag := l.plat.Tag()
	if tag == "" {
		return ""
	}
	return filepath.Join(l.dir, tag)
}

// searchDirs lists the directories scanned, generic first.
func (l *Loader) searchDirs() []string {
	dirs := []string{l.dir}
	if pd := l.PlatformDir(); pd != "" {
		dirs = append(dirs, pd)
	}
	return dirs
}

// DefinitionFiles returns every definition file visible to the loader,
// generic files first, each group sorted.
func (l *Loader) DefinitionFiles() ([]string, error) {
	return l.scan(discoveryPattern(l.prefix))
}

// CommandFiles returns the definition files that contribute to name, in
// load order.
func (l *Loader) CommandFiles(name string) ([]string, error) {
	return l.scan(commandPattern(l.prefix, name))
}

func (l *Loader) scan(pattern *regexp.Regexp) ([]string, error) {
	var files []string
	for _, dir := range l.searchDirs() {
		found, err := reglob.Files(l.fs, dir, pattern, true)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// ListCommands returns the sorted names of all discoverable commands. Only
// file names are inspected.
func (l *Loader) ListCommands() ([]string, error) {
	files, err := l.DefinitionFiles()
	if err != nil {
		return nil, fmt.Errorf("listing commands: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, f := range files {
		name, ok := commandName(f)
		if !ok {
			l.log.Trace("skipping definition file", "file", f)
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads the definition files for name and returns the command they
// declare. A file that fails to load aborts with ErrConfiguration; a name no
// file declares yields ErrCommandNotFound.
func (l *Loader) Load(name string) (Command, error) {
	if cmd, ok := l.memo[name]; ok {
		return cmd, nil
	}

	files, err := l.CommandFiles(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	namespace := make(map[string]*cmddef.Definition)
	for _, path := range files {
		l.log.Trace("loading definition file", "command", name, "file", path)
		f, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		for exported, def := range f.Commands {
			namespace[exported] = def
		}
	}

	def, ok := namespace[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	cmd := newCommand(name, name, def, l)
	l.memo[name] = cmd
	return cmd, nil
}

// loadFile parses and checks one definition file.
func (l *Loader) loadFile(path string) (*cmddef.File, error) {
	f, err := cmddef.ParseFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := f.CheckRequires(l.version); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	for name, def := range f.Commands {
		if err := checkActions(name, def); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
		}
	}
	return f, nil
}

// Check loads every definition file without registering anything and
// returns the failure of each broken file keyed by path.
func (l *Loader) Check() (map[string]error, error) {
	files, err := l.DefinitionFiles()
	if err != nil {
		return nil, err
	}
	failures := make(map[string]error)
	for _, path := range files {
		if _, err := l.loadFile(path); err != nil {
			failures[path] = err
		}
	}
	return failures, nil
}

// checkActions verifies that every step of def and its subcommands names a
// registered action.
func checkActions(name string, def *cmddef.Definition) error {
	for i, step := range def.Steps {
		if _, ok := lookupAction(step.Action); !ok {
			return fmt.Errorf("command %s step %d: unknown action %q", name, i+1, step.Action)
		}
		if _, err := step.PlatformFlag(); err != nil {
			return fmt.Errorf("command %s step %d: %w", name, i+1, err)
		}
	}
	for sub, child := range def.Subcommands {
		if err := checkActions(name+" "+sub, child); err != nil {
			return err
		}
	}
	return nil
}
