package fsync

import (
	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/platform"
	"github.com/pluginbridge/cgc/internal/prompt"
)

// Engine performs confirmed copy and remove operations.
type Engine struct {
	fs      afero.Fs
	confirm prompt.Confirmer
	log     *logx.Logger
	plat    platform.Platform
	hasPlat bool
	dryRun  bool
	mut     Mutator
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(e *Engine) { e.fs = fsys }
}

// WithConfirmer sets the confirmation source. The default reads stdin.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(e *Engine) { e.confirm = c }
}

// WithLogger sets the logger. The default writes to stdout and stderr.
func WithLogger(l *logx.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithPlatform fixes the platform that platform paths resolve for. The
// default is the host platform.
func WithPlatform(p platform.Platform) Option {
	return func(e *Engine) { e.plat, e.hasPlat = p, true }
}

// WithDryRun switches the engine to the DryRun mutator.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) { e.dryRun = dryRun }
}

// WithMutator overrides the mutation strategy entirely.
func WithMutator(m Mutator) Option {
	return func(e *Engine) { e.mut = m }
}

// New builds an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.log == nil {
		e.log = logx.Default()
	}
	if !e.hasPlat {
		e.plat = platform.Current()
	}
	if e.confirm == nil {
		e.confirm = prompt.Stdio()
	}
	if e.mut == nil {
		if e.dryRun {
			e.mut = DryRun{Log: e.log}
		} else {
			e.mut = Live{Fs: e.fs}
		}
	}
	return e
}

// Fs returns the filesystem the engine reads from.
func (e *Engine) Fs() afero.Fs { return e.fs }

// Platform returns the platform paths resolve for.
func (e *Engine) Platform() platform.Platform { return e.plat }

// DryRunning reports whether mutations are only being logged.
func (e *Engine) DryRunning() bool {
	_, ok := e.mut.(DryRun)
	return ok
}

// fail logs err unless quiet and returns it classified.
func (e *Engine) fail(err error, quiet bool) error {
	err = classify(err)
	if err != nil && !quiet {
		e.log.Error(err.Error())
	}
	return err
}
