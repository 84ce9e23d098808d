//go:build integration

package integration_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pluginbridge/cgc/internal/dispatch"
	"github.com/pluginbridge/cgc/internal/fsync"
	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/platform"
	"github.com/pluginbridge/cgc/internal/prompt"
	"github.com/pluginbridge/cgc/internal/shell"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // CGC_HOME, holds config.yaml
	CommandsDir string // definition files and bundle sources
	DestDir     string // stands in for the system plugin folder
}

// setupTestEnv creates isolated temp directories and points the cgc
// environment variables at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		CommandsDir: t.TempDir(),
		DestDir:     t.TempDir(),
	}
	t.Setenv("CGC_HOME", env.HomeDir)
	t.Setenv("CGC_COMMANDS", env.CommandsDir)
	return env
}

// setupPluginCommands writes a plugin bundle and the definitions that
// install and remove it, plus a macOS override of the status command.
func setupPluginCommands(t *testing.T, env *testEnv) {
	t.Helper()

	writeFile(t, filepath.Join(env.CommandsDir, "bundles/Reverb/Reverb.vst3"), "reverb v1")
	writeFile(t, filepath.Join(env.CommandsDir, "bundles/Reverb/presets/hall.xml"), "<hall/>")
	writeFile(t, filepath.Join(env.CommandsDir, "bundles/shared/license.txt"), "MIT")

	dest := "{mac: '" + env.DestDir + "', win: 'C:\\Plugins'}"
	writeFile(t, filepath.Join(env.CommandsDir, "cgc_plugins.yaml"), `requires: ">= 0.1.0"
commands:
  plugins:
    description: Install the plugin bundles
    subcommands:
      reverb:
        description: Reverb plugin
        steps:
          - action: copy
            when: install
            with: {src: bundles/Reverb, dest: `+dest+`}
          - action: copy_contents
            when: install
            with: {src: bundles/shared, dest: `+dest+`}
          - action: remove
            when: undo
            with: {item: Reverb, from: `+dest+`}
          - action: remove
            when: undo
            with: {item: license.txt, from: `+dest+`, missing_ok: true}
          - action: log
            with: {level: success, message: "reverb done on ${platform}"}
`)
	writeFile(t, filepath.Join(env.CommandsDir, "cgc_status.yaml"), `commands:
  status:
    steps:
      - action: log
        with: {message: generic status}
`)
	writeFile(t, filepath.Join(env.CommandsDir, "mac/cgc_status.mac.yaml"), `commands:
  status:
    steps:
      - action: log
        with: {message: mac status}
`)
}

// harness bundles a loader and services bound to a fixed platform.
type harness struct {
	Loader  *dispatch.Loader
	Out     *bytes.Buffer
	Err     *bytes.Buffer
	Log     *logx.Logger
	Confirm prompt.Confirmer
	DryRun  bool
	plat    platform.Platform
}

func newHarness(t *testing.T, env *testEnv, plat platform.Platform) *harness {
	t.Helper()
	var out, errw bytes.Buffer
	log := logx.New(&out, &errw)
	l, err := dispatch.NewLoader(env.CommandsDir,
		dispatch.WithPlatform(plat),
		dispatch.WithVersion("1.0.0"),
		dispatch.WithLogger(log),
	)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return &harness{Loader: l, Out: &out, Err: &errw, Log: log, Confirm: prompt.Always(false), plat: plat}
}

func (h *harness) invocation() dispatch.Invocation {
	return dispatch.Invocation{
		Log:   h.Log,
		Shell: shell.NewRunner(h.Log),
		Sync: fsync.New(
			fsync.WithPlatform(h.plat),
			fsync.WithLogger(h.Log),
			fsync.WithConfirmer(h.Confirm),
			fsync.WithDryRun(h.DryRun),
		),
	}
}

// command loads path ("plugins reverb") and walks into subcommands.
func (h *harness) command(t *testing.T, path string) dispatch.Command {
	t.Helper()
	parts := strings.Fields(path)
	cmd, err := h.Loader.Load(parts[0])
	if err != nil {
		t.Fatalf("Load(%s): %v", parts[0], err)
	}
	for _, name := range parts[1:] {
		var next dispatch.Command
		for _, sub := range cmd.Subcommands() {
			if sub.Name() == name {
				next = sub
			}
		}
		if next == nil {
			t.Fatalf("%s has no subcommand %s", cmd.Path(), name)
		}
		cmd = next
	}
	return cmd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be absent, stat error: %v", path, err)
	}
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("%s = %q, want %q", path, data, want)
	}
}

// readTree maps every regular file below root to its contents.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}
