package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestSeverityStreams(t *testing.T) {
	var out, errw bytes.Buffer
	l := New(&out, &errw)

	l.Debug("debug line")
	l.Info("info line")
	l.Successf("done %d", 3)
	l.Errorf("failed: %s", "boom")

	for _, want := range []string{"debug line", "info line", "done 3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "failed") {
		t.Errorf("error line leaked to stdout:\n%s", out.String())
	}
	if !strings.Contains(errw.String(), "failed: boom") {
		t.Errorf("stderr missing error line:\n%s", errw.String())
	}
}

func TestOneLinePerMessage(t *testing.T) {
	var out bytes.Buffer
	New(&out, &out).Info("plain")
	got := out.String()
	if !strings.Contains(got, "plain") || !strings.HasSuffix(got, "\n") {
		t.Errorf("Info to buffer = %q, want a single plain line", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("Info wrote %d lines, want 1", strings.Count(got, "\n"))
	}
}

func TestTraceSilentUnlessVerbose(t *testing.T) {
	var out, errw bytes.Buffer
	l := New(&out, &errw)

	l.Trace("hidden", "k", "v")
	if errw.Len() != 0 {
		t.Fatalf("trace written while not verbose: %q", errw.String())
	}

	l.SetVerbose(true)
	l.Trace("shown", "file", "cgc_init.yaml")
	if !strings.Contains(errw.String(), "shown") {
		t.Errorf("verbose trace missing: %q", errw.String())
	}
	if !strings.Contains(errw.String(), "cgc_init.yaml") {
		t.Errorf("verbose trace missing key/value: %q", errw.String())
	}
}
