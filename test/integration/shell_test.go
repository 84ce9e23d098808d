//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/pluginbridge/cgc/internal/logx"
	"github.com/pluginbridge/cgc/internal/shell"
)

func TestShellRunnerModes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	var logOut bytes.Buffer
	r := shell.NewRunner(logx.New(&logOut, &logOut))
	ctx := context.Background()

	res, err := r.Invoke(ctx, []string{"sh", "-c", "echo out; echo err >&2; exit 4"}, shell.Options{Pipe: true})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if res.ExitCode != 4 || strings.TrimSpace(res.Stdout) != "out" || strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("piped result = %+v", res)
	}

	var inherited bytes.Buffer
	r.Stdout = &inherited
	res, err = r.Invoke(ctx, []string{"echo", "it's here"}, shell.Options{Shell: true})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if res.Stdout != "" || strings.TrimSpace(inherited.String()) != "it's here" {
		t.Errorf("inherit mode: result %+v, stream %q", res, inherited.String())
	}

	if !strings.Contains(logOut.String(), "[piped]") || !strings.Contains(logOut.String(), "[system]") {
		t.Errorf("invocation log = %q", logOut.String())
	}
}
