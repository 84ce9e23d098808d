package cmddef

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/options"
)

const validDefinition = `
requires: ">= 0.1.0"
commands:
  init:
    description: Install the plugin bundle
    defaults:
      install: true
    steps:
      - action: copy
        when: install
        platforms: [mac]
        with:
          src: build/Plugin.bundle
          dest:
            mac: /Library/Plugins
            win: C:\Plugins
      - action: shell
        with:
          cmd: cmake --build "build dir"
    subcommands:
      clean:
        hidden: true
        steps:
          - action: remove
            with:
              item: Plugin.bundle
              from: /Library/Plugins
`

func TestParseValid(t *testing.T) {
	f, err := Parse([]byte(validDefinition), "cgc_init.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if f.Path != "cgc_init.yaml" {
		t.Errorf("Path = %q", f.Path)
	}
	def, ok := f.Commands["init"]
	if !ok {
		t.Fatal("commands.init missing")
	}
	if def.Description != "Install the plugin bundle" {
		t.Errorf("Description = %q", def.Description)
	}
	if def.Defaults.Install == nil || !*def.Defaults.Install {
		t.Errorf("Defaults.Install = %v, want true", def.Defaults.Install)
	}
	if len(def.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(def.Steps))
	}

	var copyParams struct {
		Src  string    `yaml:"src"`
		Dest PathValue `yaml:"dest"`
	}
	if err := def.Steps[0].Decode(&copyParams); err != nil {
		t.Fatalf("Decode copy: %v", err)
	}
	if copyParams.Dest.Mac != "/Library/Plugins" || copyParams.Dest.Win != `C:\Plugins` {
		t.Errorf("Dest = %+v", copyParams.Dest)
	}

	var shellParams struct {
		Cmd Argv `yaml:"cmd"`
	}
	if err := def.Steps[1].Decode(&shellParams); err != nil {
		t.Fatalf("Decode shell: %v", err)
	}
	want := Argv{"cmake", "--build", "build dir"}
	if !reflect.DeepEqual(shellParams.Cmd, want) {
		t.Errorf("Cmd = %v, want %v", shellParams.Cmd, want)
	}

	clean, ok := def.Subcommands["clean"]
	if !ok || !clean.Hidden {
		t.Fatalf("subcommand clean = %+v", clean)
	}
	var removeParams struct {
		From PathValue `yaml:"from"`
	}
	if err := clean.Steps[0].Decode(&removeParams); err != nil {
		t.Fatalf("Decode remove: %v", err)
	}
	if removeParams.From.Mac != "/Library/Plugins" || removeParams.From.Win != "/Library/Plugins" {
		t.Errorf("scalar path should bind both variants, got %+v", removeParams.From)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing commands", "requires: \">= 1.0\"\n"},
		{"unknown top-level key", "commands:\n  init: {}\nextra: 1\n"},
		{"bad when", "commands:\n  init:\n    steps:\n      - action: copy\n        when: sometimes\n"},
		{"bad platform", "commands:\n  init:\n    steps:\n      - action: copy\n        platforms: [linux]\n"},
		{"step without action", "commands:\n  init:\n    steps:\n      - when: install\n"},
		{"underscore in name", "commands:\n  do_it: {}\n"},
		{"empty file", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), "cgc_x.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			var invalid *InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("error = %v, want *InvalidError", err)
			}
			if len(invalid.Issues) == 0 {
				t.Error("expected at least one issue")
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("commands: [unterminated"), "cgc_x.yaml"); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestParseBadRequires(t *testing.T) {
	_, err := Parse([]byte("requires: \"not a constraint\"\ncommands:\n  init: {}\n"), "cgc_x.yaml")
	if err == nil {
		t.Fatal("expected error for invalid requires constraint")
	}
}

func TestParseFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/cmds/cgc_init.yaml", []byte(validDefinition), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := ParseFile(fsys, "/cmds/cgc_init.yaml")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if _, ok := f.Commands["init"]; !ok {
		t.Error("commands.init missing")
	}

	if _, err := ParseFile(fsys, "/cmds/missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepApplies(t *testing.T) {
	cases := []struct {
		when string
		opts options.Resolved
		want bool
	}{
		{"", options.Resolved{}, true},
		{WhenAlways, options.Resolved{Install: true}, true},
		{WhenInstall, options.Resolved{Install: true}, true},
		{WhenInstall, options.Resolved{}, false},
		{WhenUndo, options.Resolved{}, true},
		{WhenUndo, options.Resolved{Install: true}, false},
		{WhenUndo, options.Resolved{Install: true, Undo: true}, true},
	}

	for _, tc := range cases {
		s := Step{When: tc.when}
		if got := s.Applies(tc.opts); got != tc.want {
			t.Errorf("Step{When:%q}.Applies(%+v) = %v, want %v", tc.when, tc.opts, got, tc.want)
		}
	}
}
