//go:build !windows

package shell

import (
	"context"
	"os/exec"
)

// shellCommand runs argv through sh with POSIX quoting.
func shellCommand(ctx context.Context, argv []string) (*exec.Cmd, string, error) {
	line, err := Join(argv)
	if err != nil {
		return nil, "", err
	}
	return exec.CommandContext(ctx, "sh", "-c", line), line, nil
}
