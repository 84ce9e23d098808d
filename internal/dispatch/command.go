package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pluginbridge/cgc/internal/cmddef"
	"github.com/pluginbridge/cgc/internal/fsync"
	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/options"
	"github.com/pluginbridge/cgc/internal/platform"
	"github.com/pluginbridge/cgc/internal/shell"
)

// Command is a loaded, invocable command.
type Command interface {
	// Name is the command's own name.
	Name() string
	// Path is the space-separated name from the top-level command down.
	Path() string
	Description() string
	Hidden() bool
	// Defaults are the option overrides the definition declares.
	Defaults() options.Layer
	// Subcommands are sorted by name.
	Subcommands() []Command
	// Runnable reports whether the command has steps of its own.
	Runnable() bool
	Run(ctx context.Context, inv Invocation) (*Outcome, error)
}

// Invocation carries everything a run needs: the resolved options, the
// positional and keyword arguments, and the services steps call into. Nil
// services are replaced with defaults bound to the loader's platform.
type Invocation struct {
	Options options.Resolved
	Args    []string
	Vars    map[string]string

	Sync  *fsync.Engine
	Shell *shell.Runner
	Log   *logx.Logger
}

// Outcome summarises a run.
type Outcome struct {
	Command  string
	Executed int
	Skipped  int
}

type definitionCommand struct {
	name   string
	path   string
	def    *cmddef.Definition
	loader *Loader
	subs   []Command
}

func newCommand(name, path string, def *cmddef.Definition, l *Loader) *definitionCommand {
	c := &definitionCommand{name: name, path: path, def: def, loader: l}

	names := make([]string, 0, len(def.Subcommands))
	for sub := range def.Subcommands {
		names = append(names, sub)
	}
	sort.Strings(names)
	for _, sub := range names {
		c.subs = append(c.subs, newCommand(sub, path+" "+sub, def.Subcommands[sub], l))
	}
	return c
}

func (c *definitionCommand) Name() string            { return c.name }
func (c *definitionCommand) Path() string            { return c.path }
func (c *definitionCommand) Description() string     { return c.def.Description }
func (c *definitionCommand) Hidden() bool            { return c.def.Hidden }
func (c *definitionCommand) Defaults() options.Layer { return c.def.Defaults }
func (c *definitionCommand) Subcommands() []Command  { return c.subs }
func (c *definitionCommand) Runnable() bool          { return len(c.def.Steps) > 0 }

// Run executes the command's steps in order, stopping at the first failure.
func (c *definitionCommand) Run(ctx context.Context, inv Invocation) (*Outcome, error) {
	inv = c.withDefaults(inv)
	out := &Outcome{Command: c.path}
	plat := c.loader.plat

	inv.Log.Trace("running command", "command", c.path, "options", inv.Options.String())

	if !plat.Supported() {
		err := fmt.Errorf("%s: %s hosts have no path bindings: %w", c.path, platform.HostName(), platform.ErrUnresolvable)
		inv.Log.Error(err.Error())
		return out, err
	}

	for i := range c.def.Steps {
		step := &c.def.Steps[i]
		if err := ctx.Err(); err != nil {
			return out, err
		}

		flag, err := step.PlatformFlag()
		if err != nil {
			return out, fmt.Errorf("%s step %d: %w", c.path, i+1, err)
		}
		if !flag.SelectFor(plat) || !step.Applies(inv.Options) {
			inv.Log.Trace("skipping step", "command", c.path, "step", i+1, "action", step.Action)
			out.Skipped++
			continue
		}

		fn, ok := lookupAction(step.Action)
		if !ok {
			return out, fmt.Errorf("%s step %d: unknown action %q", c.path, i+1, step.Action)
		}

		sc := &StepContext{Invocation: inv, Platform: plat, Dir: c.loader.dir}
		if err := fn(ctx, sc, step); err != nil {
			return out, fmt.Errorf("%s step %d (%s): %w", c.path, i+1, step.Action, err)
		}
		out.Executed++
	}
	return out, nil
}

func (c *definitionCommand) withDefaults(inv Invocation) Invocation {
	if inv.Log == nil {
		inv.Log = logx.Default()
	}
	if inv.Sync == nil {
		inv.Sync = fsync.New(
			fsync.WithFs(c.loader.fs),
			fsync.WithPlatform(c.loader.plat),
			fsync.WithLogger(inv.Log),
		)
	}
	if inv.Shell == nil {
		inv.Shell = shell.NewRunner(inv.Log)
	}
	if inv.Vars == nil {
		inv.Vars = map[string]string{}
	}
	return inv
}

// StepContext is what an action sees while it runs.
type StepContext struct {
	Invocation

	// Platform is the platform steps are selected and resolved for.
	Platform platform.Platform
	// Dir is the commands directory; relative paths are anchored to it.
	Dir string
}

// Expand substitutes ${N} with the Nth positional argument, ${name} with a
// keyword argument, ${commands_dir} and ${platform} with their builtin values
// and anything else from the environment. Unknown references are kept.
func (s *StepContext) Expand(v string) string {
	return os.Expand(v, func(key string) string {
		if n, err := strconv.Atoi(key); err == nil {
			if n >= 1 && n <= len(s.Args) {
				return s.Args[n-1]
			}
			return "${" + key + "}"
		}
		if val, ok := s.Vars[key]; ok {
			return val
		}
		switch key {
		case "commands_dir":
			return s.Dir
		case "platform":
			return s.Platform.Tag()
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}

// Path expands both variants of v and anchors relative ones to Dir.
func (s *StepContext) Path(v cmddef.PathValue) platform.Path {
	return platform.NewPath(s.anchor(s.Expand(v.Mac)), s.anchor(s.Expand(v.Win)))
}

// Local resolves v for the step's platform.
func (s *StepContext) Local(v cmddef.PathValue) (string, error) {
	return s.Path(v).ResolveFor(s.Platform)
}

func (s *StepContext) anchor(p string) string {
	if p == "" || platform.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Dir, p)
}
