package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pluginbridge/cgc/internal/branding"
	"github.com/pluginbridge/cgc/internal/config"
	"github.com/pluginbridge/cgc/internal/dispatch"
	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/paths"
	"github.com/pluginbridge/cgc/internal/platform"
)

// globalFlags are the root persistent flags.
type globalFlags struct {
	commandsDir string
	dryRun      bool
	verbose     bool
	install     bool
	undo        bool
	force       bool
	yes         bool
}

// app holds the process-wide state the commands share.
type app struct {
	version string
	commit  string
	date    string

	fs         afero.Fs
	plat       platform.Platform
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	configPath string

	log   *logx.Logger
	cfg   *config.Config
	flags globalFlags

	commandsDir paths.CommandsDir
	loader      *dispatch.Loader
	loaderErr   error
}

func newApp(version, commit, date string) *app {
	return &app{
		version: version,
		commit:  commit,
		date:    date,
		fs:      afero.NewOsFs(),
		plat:    platform.Current(),
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// Execute runs the CLI with build info injected via ldflags.
func Execute(version, commit, date string) error {
	return newApp(version, commit, date).execute(os.Args[1:])
}

func (a *app) execute(args []string) error {
	if a.log == nil {
		a.log = logx.New(a.out, a.errOut)
	}

	root, err := a.newRootCmd(args)
	if err != nil {
		a.log.Error(err.Error())
		return err
	}
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	if err := root.Execute(); err != nil {
		if errors.Is(err, dispatch.ErrCommandNotFound) {
			a.log.Errorf("unknown command: %v", err)
		} else {
			a.log.Error(err.Error())
		}
		return err
	}
	return nil
}

func (a *app) newRootCmd(args []string) (*cobra.Command, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` runs the named commands defined in the commands directory: install,
uninstall and sync steps for plugin bundles, mirrored into platform-specific locations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log.SetVerbose(a.flags.verbose || a.cfg.Settings().Verbose)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.commandsDir, "commands-dir", "", "Directory holding command definition files")
	pf.BoolVar(&a.flags.dryRun, "dry-run", false, "Log filesystem changes instead of making them")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Trace command loading and option resolution")
	pf.BoolVar(&a.flags.install, "install", false, "Run install steps")
	pf.BoolVar(&a.flags.undo, "undo", false, "Run undo steps")
	pf.BoolVarP(&a.flags.force, "force", "f", false, "Do not ask for confirmation")
	pf.BoolVarP(&a.flags.yes, "yes", "y", false, "Answer yes to every confirmation prompt")

	root.AddCommand(
		a.newCommandsCmd(),
		a.newDoctorCmd(),
		a.newNewCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)

	pre := prescan(args)
	a.log.SetVerbose(pre.verbose || cfg.Settings().Verbose)
	a.openLoader(pre.commandsDir)
	if a.loaderErr != nil {
		root.Args = cobra.ArbitraryArgs
		root.RunE = func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.loaderErr
		}
		return root, nil
	}

	if err := a.registerCommands(root, pre.invoked); err != nil {
		return nil, err
	}
	return root, nil
}

// openLoader resolves the commands directory and opens a loader over it. A
// failure is kept so built-in commands still work.
func (a *app) openLoader(flagDir string) {
	a.commandsDir = paths.ResolveCommandsDir(a.fs, flagDir, a.cfg.Settings().CommandsDir)
	a.loader, a.loaderErr = dispatch.NewLoader(a.commandsDir.Path,
		dispatch.WithFs(a.fs),
		dispatch.WithPlatform(a.plat),
		dispatch.WithVersion(a.version),
		dispatch.WithLogger(a.log),
	)
}

// preArgs are the root flags needed before the command tree exists.
type preArgs struct {
	commandsDir string
	invoked     string
	verbose     bool
}

// prescan extracts --commands-dir, --verbose and the first positional
// argument before cobra parses anything, since the command tree depends on
// them.
func prescan(args []string) preArgs {
	fs := pflag.NewFlagSet("prescan", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	dir := fs.String("commands-dir", "", "")
	verbose := fs.BoolP("verbose", "v", false, "")
	for _, name := range []string{"dry-run", "install", "undo"} {
		fs.Bool(name, false, "")
	}
	fs.BoolP("force", "f", false, "")
	fs.BoolP("yes", "y", false, "")
	fs.BoolP("help", "h", false, "")
	fs.StringArrayP("set", "s", nil, "")

	_ = fs.Parse(args)
	pre := preArgs{commandsDir: *dir, verbose: *verbose}
	if rest := fs.Args(); len(rest) > 0 {
		pre.invoked = rest[0]
	}
	return pre
}

func (a *app) writef(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
