// Package prompt implements the interactive confirmation gate shown before
// destructive filesystem steps.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Text is the prompt line written before reading an answer.
const Text = "OK? [Y/N]: "

// affirmative answers, compared case-insensitively after trimming.
var affirmative = map[string]bool{
	"yes": true,
	"y":   true,
	"a":   true,
	"ok":  true,
	"yup": true,
}

// Confirmer asks whether a destructive step may proceed.
type Confirmer interface {
	Confirm() bool
}

// Terminal prompts on Out and reads one line from In.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewTerminal returns a Terminal over in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Stdio returns a Terminal bound to the process stdin and stdout.
func Stdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stdout)
}

// Confirm writes the prompt and reports whether the answer is affirmative.
// Empty input and end of input decline.
func (t *Terminal) Confirm() bool {
	if t.scanner == nil {
		t.scanner = bufio.NewScanner(t.In)
	}
	fmt.Fprint(t.Out, Text)
	if !t.scanner.Scan() {
		return false
	}
	return IsAffirmative(t.scanner.Text())
}

// IsAffirmative reports whether answer accepts the prompt.
func IsAffirmative(answer string) bool {
	return affirmative[strings.ToLower(strings.TrimSpace(answer))]
}

// Always is a Confirmer with a fixed answer. Always(true) backs --force/--yes.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm() bool { return bool(a) }
