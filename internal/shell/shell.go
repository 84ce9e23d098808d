package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"mvdan.cc/sh/v3/syntax"

	"github.com/pluginbridge/cgc/internal/logx"
)

// Options controls a single invocation.
type Options struct {
	// Pipe buffers stdout/stderr into the Result instead of streaming them.
	Pipe bool
	// Shell runs the quoted command line through the host shell.
	Shell bool
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the inherited environment ("KEY=VALUE").
	Env []string
}

// Result captures a completed invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// String renders the result for diagnostics.
func (r *Result) String() string {
	return fmt.Sprintf("Out: %s\nErr: %s\nReturnCode: %d", r.Stdout, r.Stderr, r.ExitCode)
}

// Runner executes commands.
type Runner struct {
	// Stdin, Stdout and Stderr are used in inherit mode; they default to the
	// process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	log *logx.Logger
}

// NewRunner returns a Runner logging through log.
func NewRunner(log *logx.Logger) *Runner {
	if log == nil {
		log = logx.Discard()
	}
	return &Runner{log: log}
}

// Invoke runs argv and waits for it to exit. A non-zero exit code is
// reported in the Result, not as an error; errors mean the process could not
// be started.
func (r *Runner) Invoke(ctx context.Context, argv []string, opts Options) (*Result, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("command cannot be empty")
	}

	cmd, display, err := r.build(ctx, argv, opts)
	if err != nil {
		return nil, err
	}

	mode := "system"
	if opts.Pipe {
		mode = "piped"
	}
	r.log.Debugf("Invoking %s [%s]", display, mode)

	var stdoutBuf, stderrBuf bytes.Buffer
	if opts.Pipe {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	} else {
		cmd.Stdin = orReader(r.Stdin, os.Stdin)
		cmd.Stdout = orWriter(r.Stdout, os.Stdout)
		cmd.Stderr = orWriter(r.Stderr, os.Stderr)
	}

	result := &Result{}
	err = cmd.Run()
	if opts.Pipe {
		result.Stdout = stdoutBuf.String()
		result.Stderr = stderrBuf.String()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("invoking %s: %w", display, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	r.log.Debugf("[invoke] code = %d", result.ExitCode)
	return result, nil
}

func (r *Runner) build(ctx context.Context, argv []string, opts Options) (*exec.Cmd, string, error) {
	var cmd *exec.Cmd
	var display string

	if opts.Shell {
		c, line, err := shellCommand(ctx, argv)
		if err != nil {
			return nil, "", err
		}
		cmd, display = c, line
	} else {
		display = strings.Join(argv, " ")
		cmd = exec.CommandContext(ctx, argv[0], argv[1:]...)
	}

	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	return cmd, display, nil
}

// Join quotes each argument for a POSIX shell and joins them with spaces.
func Join(argv []string) (string, error) {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("quoting %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}

// JoinWindows quotes each argument the way the Windows C runtime splits a
// command line and joins them with spaces.
func JoinWindows(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, quoteWindows(arg))
	}
	return strings.Join(quoted, " ")
}

func quoteWindows(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"") {
		return arg
	}

	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			slashes++
		case '"':
			// Backslashes before a quote are literal only when doubled.
			b.WriteString(strings.Repeat(`\`, slashes+1))
			slashes = 0
		default:
			slashes = 0
		}
		b.WriteByte(c)
	}
	b.WriteString(strings.Repeat(`\`, slashes))
	b.WriteByte('"')
	return b.String()
}

// ParseCommand splits a command line into arguments, honouring shell-style
// quotes.
func ParseCommand(line string) ([]string, error) {
	parts, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(parts) == 0 {
		return nil, errors.New("empty command")
	}
	return parts, nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
