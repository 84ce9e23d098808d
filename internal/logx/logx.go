// Package logx is the CLI's logging channel. Four severities are written as
// single styled lines: debug (faint), info (bold), success (bold green) and
// error (bold red). Errors go to the error stream, everything else to the
// output stream. There is no level filtering on these lines.
//
// A separate tracer carries verbose diagnostics (loader decisions, option
// resolution). It is silent unless verbose mode is enabled.
package logx

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Colors for the severities. Tuned for dark terminal backgrounds.
const (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
)

// Logger writes styled lines to an output and an error stream.
type Logger struct {
	out io.Writer
	err io.Writer

	debugStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style

	tracer *log.Logger
}

// New returns a Logger writing to out and errw. Styling adapts to each
// writer's terminal capabilities, so plain buffers receive plain text.
func New(out, errw io.Writer) *Logger {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errw)

	tracer := log.NewWithOptions(errw, log.Options{
		Prefix: "trace",
		Level:  log.InfoLevel,
	})

	return &Logger{
		out:          out,
		err:          errw,
		debugStyle:   outR.NewStyle().Faint(true),
		infoStyle:    outR.NewStyle().Bold(true),
		successStyle: outR.NewStyle().Bold(true).Foreground(colorSuccess),
		errorStyle:   errR.NewStyle().Bold(true).Foreground(colorError),
		tracer:       tracer,
	}
}

// Default returns a Logger bound to the process stdout and stderr.
func Default() *Logger {
	return New(os.Stdout, os.Stderr)
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, io.Discard)
}

// SetVerbose enables or silences the tracer.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.tracer.SetLevel(log.DebugLevel)
		return
	}
	l.tracer.SetLevel(log.InfoLevel)
}

// Debug writes a faint line.
func (l *Logger) Debug(msg string) {
	fmt.Fprintln(l.out, l.debugStyle.Render(msg))
}

// Debugf writes a formatted faint line.
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Info writes a bold line.
func (l *Logger) Info(msg string) {
	fmt.Fprintln(l.out, l.infoStyle.Render(msg))
}

// Infof writes a formatted bold line.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Success writes a bold green line.
func (l *Logger) Success(msg string) {
	fmt.Fprintln(l.out, l.successStyle.Render(msg))
}

// Successf writes a formatted bold green line.
func (l *Logger) Successf(format string, args ...any) {
	l.Success(fmt.Sprintf(format, args...))
}

// Error writes a bold red line to the error stream.
func (l *Logger) Error(msg string) {
	fmt.Fprintln(l.err, l.errorStyle.Render(msg))
}

// Errorf writes a formatted bold red line to the error stream.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Trace records a verbose diagnostic with structured key/value pairs.
func (l *Logger) Trace(msg string, keyvals ...any) {
	l.tracer.Debug(msg, keyvals...)
}
