//go:build windows

package shell

import (
	"context"
	"os/exec"
	"syscall"
)

// shellCommand runs argv through cmd.exe. The command line is set verbatim
// so exec does not quote the already quoted line a second time.
func shellCommand(ctx context.Context, argv []string) (*exec.Cmd, string, error) {
	line := JoinWindows(argv)
	cmd := exec.CommandContext(ctx, "cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: `cmd /S /C "` + line + `"`}
	return cmd, line, nil
}
