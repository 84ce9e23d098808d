package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pluginbridge/cgc/internal/cmddef"
	"github.com/pluginbridge/cgc/internal/fsync"
	"github.com/pluginbridge/cgc/internal/shell"
)

type copyParams struct {
	Src  cmddef.PathValue `yaml:"src"`
	Dest cmddef.PathValue `yaml:"dest"`
}

func (p *copyParams) check(action string) error {
	if p.Src.IsZero() {
		return fmt.Errorf("%s: src is required", action)
	}
	if p.Dest.IsZero() {
		return fmt.Errorf("%s: dest is required", action)
	}
	return nil
}

// copyAction replaces dest/<base(src)> with src.
func copyAction(_ context.Context, sc *StepContext, step *cmddef.Step) error {
	return runCopy(sc, step, false)
}

// copyContentsAction merges the contents of src into dest.
func copyContentsAction(_ context.Context, sc *StepContext, step *cmddef.Step) error {
	return runCopy(sc, step, true)
}

func runCopy(sc *StepContext, step *cmddef.Step, merge bool) error {
	var p copyParams
	if err := step.Decode(&p); err != nil {
		return err
	}
	if err := p.check(step.Action); err != nil {
		return err
	}

	src, err := sc.Local(p.Src)
	if err != nil {
		return fmt.Errorf("resolving source: %w", err)
	}
	return sc.Sync.PlatformCopy(src, sc.Path(p.Dest), fsync.CopyOptions{
		MergeContents: merge,
		Confirm:       !sc.Options.Force,
	})
}

type removeParams struct {
	Item      string           `yaml:"item"`
	From      cmddef.PathValue `yaml:"from"`
	MissingOK bool             `yaml:"missing_ok"`
}

// removeAction deletes item from the from directory.
func removeAction(_ context.Context, sc *StepContext, step *cmddef.Step) error {
	var p removeParams
	if err := step.Decode(&p); err != nil {
		return err
	}
	if p.Item == "" || p.From.IsZero() {
		return errors.New("remove: item and from are required")
	}

	err := sc.Sync.RemoveFromDir(sc.Expand(p.Item), sc.Path(p.From), fsync.RemoveOptions{
		Confirm: !sc.Options.Force,
		Quiet:   p.MissingOK,
	})
	if p.MissingOK && errors.Is(err, fsync.ErrTargetNotFound) {
		sc.Log.Debugf("Nothing to remove: %s", sc.Expand(p.Item))
		return nil
	}
	if err != nil && p.MissingOK {
		sc.Log.Error(err.Error())
	}
	return err
}

type shellParams struct {
	Cmd          cmddef.Argv       `yaml:"cmd"`
	Pipe         bool              `yaml:"pipe"`
	Shell        bool              `yaml:"shell"`
	Dir          string            `yaml:"dir"`
	Env          map[string]string `yaml:"env"`
	AllowFailure bool              `yaml:"allow_failure"`
}

// shellAction runs an external command. A non-zero exit fails the step
// unless allow_failure is set.
func shellAction(ctx context.Context, sc *StepContext, step *cmddef.Step) error {
	var p shellParams
	if err := step.Decode(&p); err != nil {
		return err
	}
	if len(p.Cmd) == 0 {
		return errors.New("shell: cmd is required")
	}

	argv := make([]string, len(p.Cmd))
	for i, arg := range p.Cmd {
		argv[i] = sc.Expand(arg)
	}

	opts := shell.Options{Pipe: p.Pipe, Shell: p.Shell}
	if p.Dir != "" {
		opts.Dir = sc.anchor(sc.Expand(p.Dir))
	}
	keys := make([]string, 0, len(p.Env))
	for k := range p.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts.Env = append(opts.Env, k+"="+sc.Expand(p.Env[k]))
	}

	if sc.Sync.DryRunning() {
		sc.Log.Debugf("[dry-run] %s", strings.Join(argv, " "))
		return nil
	}

	res, err := sc.Shell.Invoke(ctx, argv, opts)
	if err != nil {
		return err
	}
	if p.Pipe {
		for _, line := range strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n") {
			if line != "" {
				sc.Log.Debug(line)
			}
		}
	}
	if !res.Success() && !p.AllowFailure {
		if p.Pipe && res.Stderr != "" {
			sc.Log.Error(strings.TrimRight(res.Stderr, "\n"))
		}
		return fmt.Errorf("%s exited with code %d", argv[0], res.ExitCode)
	}
	return nil
}

type logParams struct {
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// logAction writes a message at the given severity (info by default).
func logAction(_ context.Context, sc *StepContext, step *cmddef.Step) error {
	var p logParams
	if err := step.Decode(&p); err != nil {
		return err
	}

	msg := sc.Expand(p.Message)
	switch strings.ToLower(p.Level) {
	case "debug":
		sc.Log.Debug(msg)
	case "", "info":
		sc.Log.Info(msg)
	case "success":
		sc.Log.Success(msg)
	case "error":
		sc.Log.Error(msg)
	default:
		return fmt.Errorf("log: unknown level %q", p.Level)
	}
	return nil
}
