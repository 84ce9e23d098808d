package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluginbridge/cgc/internal/dispatch"
	"github.com/pluginbridge/cgc/internal/fsync"
	"github.com/pluginbridge/cgc/internal/options"
	"github.com/pluginbridge/cgc/internal/prompt"
	"github.com/pluginbridge/cgc/internal/shell"
)

const setUsage = "Set a keyword argument (key=value, repeatable)"

// registerCommands adds one subcommand per discovered name. The invoked
// command is loaded up front so its nested subcommands and help are real;
// the rest load on demand.
func (a *app) registerCommands(root *cobra.Command, invoked string) error {
	names, err := a.loader.ListCommands()
	if err != nil {
		return fmt.Errorf("%w: %w", dispatch.ErrConfiguration, err)
	}

	builtin := make(map[string]bool)
	for _, c := range root.Commands() {
		builtin[c.Name()] = true
	}

	for _, name := range names {
		if builtin[name] {
			a.log.Trace("definition shadows a built-in command, skipping", "command", name)
			continue
		}
		if name == invoked {
			if dc, err := a.loader.Load(name); err == nil {
				root.AddCommand(a.commandFor(dc, nil))
				continue
			}
		}
		root.AddCommand(a.lazyCommand(name))
	}
	return nil
}

// lazyCommand is a placeholder that loads name when run and walks
// positional arguments into nested subcommands.
func (a *app) lazyCommand(name string) *cobra.Command {
	var sets []string
	c := &cobra.Command{
		Use:   name,
		Short: "Run the " + name + " command",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc, err := a.loader.Load(name)
			if err != nil {
				return err
			}
			chain := []dispatch.Command{dc}
			for len(args) > 0 {
				next := findSub(chain[len(chain)-1], args[0])
				if next == nil {
					break
				}
				chain = append(chain, next)
				args = args[1:]
			}
			return a.run(cmd, chain, args, sets)
		},
	}
	c.Flags().StringArrayVarP(&sets, "set", "s", nil, setUsage)
	return c
}

func findSub(c dispatch.Command, name string) dispatch.Command {
	for _, sub := range c.Subcommands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// commandFor builds the cobra command tree for a loaded command.
func (a *app) commandFor(dc dispatch.Command, ancestors []dispatch.Command) *cobra.Command {
	chain := make([]dispatch.Command, 0, len(ancestors)+1)
	chain = append(chain, ancestors...)
	chain = append(chain, dc)

	var sets []string
	c := &cobra.Command{
		Use:    dc.Name(),
		Short:  dc.Description(),
		Hidden: dc.Hidden(),
	}
	c.Flags().StringArrayVarP(&sets, "set", "s", nil, setUsage)

	c.Args = cobra.ArbitraryArgs
	if dc.Runnable() {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, chain, args, sets)
		}
	} else {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("%w: %s %s", dispatch.ErrCommandNotFound, dc.Path(), args[0])
		}
	}
	for _, sub := range dc.Subcommands() {
		c.AddCommand(a.commandFor(sub, chain))
	}
	return c
}

// run resolves the option layers for chain and runs its leaf.
func (a *app) run(cmd *cobra.Command, chain []dispatch.Command, args, sets []string) error {
	leaf := chain[len(chain)-1]
	if !leaf.Runnable() {
		return fmt.Errorf("%s requires a subcommand", leaf.Path())
	}

	vars, err := parseKeyValues(sets)
	if err != nil {
		return err
	}

	layers := []options.Layer{a.cfg.Settings().Layer()}
	for _, c := range chain {
		layers = append(layers, c.Defaults())
	}
	layers = append(layers, a.flagLayer(cmd))
	resolved := options.Resolve(layers...)
	a.log.Trace("resolved options", "command", leaf.Path(), "options", resolved.String())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome, err := leaf.Run(ctx, dispatch.Invocation{
		Options: resolved,
		Args:    args,
		Vars:    vars,
		Sync:    a.engine(),
		Shell:   shell.NewRunner(a.log),
		Log:     a.log,
	})
	if outcome != nil {
		a.log.Trace("command finished", "command", outcome.Command,
			"executed", outcome.Executed, "skipped", outcome.Skipped)
	}
	return err
}

// flagLayer converts explicitly given root flags into an option layer.
func (a *app) flagLayer(cmd *cobra.Command) options.Layer {
	var l options.Layer
	flags := cmd.Flags()
	if flags.Changed("install") {
		l.Install = options.Bool(a.flags.install)
	}
	if flags.Changed("undo") {
		l.Undo = options.Bool(a.flags.undo)
	}
	if flags.Changed("force") {
		l.Force = options.Bool(a.flags.force)
	}
	return l
}

func (a *app) engine() *fsync.Engine {
	var confirmer prompt.Confirmer = prompt.NewTerminal(a.in, a.out)
	if a.flags.yes {
		confirmer = prompt.Always(true)
	}
	return fsync.New(
		fsync.WithFs(a.fs),
		fsync.WithPlatform(a.plat),
		fsync.WithLogger(a.log),
		fsync.WithConfirmer(confirmer),
		fsync.WithDryRun(a.flags.dryRun || a.cfg.Settings().DryRun),
	)
}

// parseKeyValues parses --set key=value flags into a map.
func parseKeyValues(inputs []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, input := range inputs {
		parts := strings.SplitN(input, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --set format %q: expected key=value", input)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, errors.New("invalid --set format: key cannot be empty")
		}
		result[key] = value
	}
	return result, nil
}
