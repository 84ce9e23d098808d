package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluginbridge/cgc/internal/dispatch"
	"github.com/pluginbridge/cgc/internal/platform"
)

// errDoctorFailed is returned when at least one check fails.
var errDoctorFailed = errors.New("doctor found problems")

func (a *app) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the host platform and the commands directory",
		Long: `Run diagnostic checks: whether the host platform is supported, where the
commands directory was resolved from, and whether every definition file in it
parses, validates and references known actions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.runDoctor() {
				return errDoctorFailed
			}
			return nil
		},
	}
}

// runDoctor prints one line per check and reports whether all passed.
func (a *app) runDoctor() bool {
	ok := true
	pass := func(format string, args ...any) { a.log.Successf("✓ "+format, args...) }
	fail := func(format string, args ...any) {
		ok = false
		a.log.Errorf("✗ "+format, args...)
	}

	if a.plat.Supported() {
		pass("platform %s (subdirectory %q)", a.plat, a.plat.Tag())
	} else {
		fail("platform %s is not supported; platform paths will not resolve", platform.HostName())
	}

	dir := a.commandsDir
	if a.loaderErr != nil {
		fail("commands directory %s (from %s): %v", dir.Path, dir.Source, a.loaderErr)
		return ok
	}
	pass("commands directory %s (from %s)", dir.Path, dir.Source)

	if pd := a.loader.PlatformDir(); pd != "" {
		if exists, _ := afero.DirExists(a.fs, pd); exists {
			pass("platform directory %s", pd)
		} else {
			a.log.Infof("- no platform directory at %s", pd)
		}
	}

	files, err := a.loader.DefinitionFiles()
	if err != nil {
		fail("scanning definition files: %v", err)
		return ok
	}
	failures, err := a.loader.Check()
	if err != nil {
		fail("checking definition files: %v", err)
		return ok
	}

	for _, f := range files {
		rel, relErr := filepath.Rel(dir.Path, f)
		if relErr != nil {
			rel = f
		}
		if ferr, bad := failures[f]; bad {
			fail("%s: %s", rel, strings.TrimPrefix(ferr.Error(), dispatch.ErrConfiguration.Error()+": "))
		} else {
			pass("%s", rel)
		}
	}
	if len(files) == 0 {
		a.log.Infof("- no definition files in %s", dir.Path)
	}

	names, err := a.loader.ListCommands()
	if err == nil {
		a.log.Infof("%d command(s): %s", len(names), strings.Join(names, ", "))
	}
	a.log.Infof("actions: %s", strings.Join(dispatch.Actions(), ", "))

	if len(failures) > 0 {
		a.log.Errorf("%d definition file(s) failed", len(failures))
	}
	return ok
}
