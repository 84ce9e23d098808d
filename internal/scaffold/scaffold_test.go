package scaffold

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/cmddef"
)

func TestGenerateMinimal(t *testing.T) {
	fsys := afero.NewMemMapFs()

	res, err := Generate(fsys, "/cmds", Data{Name: "hello"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Path != filepath.Join("/cmds", "cgc_hello.yaml") {
		t.Errorf("Path = %s", res.Path)
	}

	f, err := cmddef.ParseFile(fsys, res.Path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	def := f.Commands["hello"]
	if def == nil {
		t.Fatalf("commands = %v", f.Commands)
	}
	if def.Description == "" {
		t.Error("default description missing")
	}
	if len(def.Steps) != 1 || def.Steps[0].Action != "log" {
		t.Errorf("steps = %+v", def.Steps)
	}
}

func TestGenerateBundle(t *testing.T) {
	fsys := afero.NewMemMapFs()
	d := Data{
		Name:        "reverb",
		Description: `Reverb "hall" plugin`,
		Platform:    "macos",
		Bundle:      "bundles/Reverb/",
		MacDest:     "/Library/Audio/Plug-Ins/VST3",
		WinDest:     `C:\Program Files\Common Files\VST3`,
		Force:       true,
	}

	res, err := Generate(fsys, "/cmds", d)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Path != filepath.Join("/cmds", "mac", "cgc_reverb.mac.yaml") {
		t.Errorf("Path = %s", res.Path)
	}

	f, err := cmddef.ParseFile(fsys, res.Path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	def := f.Commands["reverb"]
	if def.Description != d.Description {
		t.Errorf("Description = %q", def.Description)
	}
	if def.Defaults.Force == nil || !*def.Defaults.Force {
		t.Error("force default not set")
	}
	if len(def.Steps) != 3 {
		t.Fatalf("steps = %+v", def.Steps)
	}

	var copyParams struct {
		Src  string           `yaml:"src"`
		Dest cmddef.PathValue `yaml:"dest"`
	}
	if err := def.Steps[0].Decode(&copyParams); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if copyParams.Dest.Win != d.WinDest || copyParams.Dest.Mac != d.MacDest {
		t.Errorf("dest = %+v", copyParams.Dest)
	}

	var removeParams struct {
		Item string `yaml:"item"`
	}
	if err := def.Steps[1].Decode(&removeParams); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if removeParams.Item != "Reverb" {
		t.Errorf("item = %q", removeParams.Item)
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/cmds/cgc_hello.yaml", []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(fsys, "/cmds", Data{Name: "hello"})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("error = %v, want ErrExists", err)
	}
	data, _ := afero.ReadFile(fsys, "/cmds/cgc_hello.yaml")
	if string(data) != "keep" {
		t.Errorf("file overwritten: %q", data)
	}
}

func TestGenerateRejects(t *testing.T) {
	tests := []struct {
		name string
		data Data
		want string
	}{
		{"underscore", Data{Name: "my_cmd"}, "invalid command name"},
		{"hyphen", Data{Name: "my-cmd"}, "invalid command name"},
		{"leading digit", Data{Name: "1cmd"}, "invalid command name"},
		{"platform", Data{Name: "x", Platform: "linux"}, "invalid platform"},
		{"bundle without dest", Data{Name: "x", Bundle: "b", MacDest: "/m"}, "destination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(afero.NewMemMapFs(), "/cmds", tt.data)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
