package scaffold

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/afero"

	"github.com/pluginbridge/cgc/internal/branding"
	"github.com/pluginbridge/cgc/internal/cmddef"
	"github.com/pluginbridge/cgc/internal/paths"
	"github.com/pluginbridge/cgc/internal/platform"
)

//go:embed templates/command.yaml.tmpl
var commandTemplate string

// namePattern restricts names to what the file naming convention can carry.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// ErrExists is returned when the definition file is already present.
var ErrExists = errors.New("definition file already exists")

// Data holds the template variables for a new command.
type Data struct {
	Name        string
	Description string
	// Platform is "", "mac" or "win". A platform command is written to the
	// platform subdirectory.
	Platform string
	// Bundle, when set, adds install and undo steps that copy the bundle
	// directory to MacDest/WinDest and remove it again.
	Bundle  string
	MacDest string
	WinDest string
	// Force makes the command skip confirmation prompts by default.
	Force bool
}

// templateData is Data plus derived fields.
type templateData struct {
	Data
	CLIName string
	Item    string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path string
}

// FileName returns the definition file name for d.
func FileName(d Data) string {
	if d.Platform != "" {
		return fmt.Sprintf("%s_%s.%s.yaml", branding.CommandPrefix(), d.Name, d.Platform)
	}
	return fmt.Sprintf("%s_%s.yaml", branding.CommandPrefix(), d.Name)
}

// Generate renders a definition file for d into commandsDir (or its
// platform subdirectory), creating directories as needed. Existing files are
// never overwritten.
func Generate(fsys afero.Fs, commandsDir string, d Data) (*Result, error) {
	if err := check(&d); err != nil {
		return nil, err
	}

	dir := commandsDir
	if d.Platform != "" {
		dir = filepath.Join(commandsDir, d.Platform)
	}
	path := filepath.Join(dir, FileName(d))

	if exists, err := afero.Exists(fsys, path); err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	} else if exists {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	data, err := Render(d)
	if err != nil {
		return nil, err
	}

	// The template must always produce a valid definition.
	if _, err := cmddef.Parse(data, path); err != nil {
		return nil, fmt.Errorf("generated definition is invalid: %w", err)
	}

	if err := fsys.MkdirAll(dir, paths.DirPermNormal); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := afero.WriteFile(fsys, path, data, paths.FilePermNormal); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return &Result{Path: path}, nil
}

// Render executes the template for d without writing anything.
func Render(d Data) ([]byte, error) {
	if err := check(&d); err != nil {
		return nil, err
	}

	tmpl, err := template.New("command").Parse(commandTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	td := templateData{Data: d, CLIName: branding.CLIName()}
	if d.Bundle != "" {
		td.Item = filepath.Base(filepath.Clean(d.Bundle))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, td); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

func check(d *Data) error {
	if !namePattern.MatchString(d.Name) {
		return fmt.Errorf("invalid command name %q: use letters and digits, starting with a letter", d.Name)
	}
	if d.Platform != "" {
		p, ok := platform.ParseTag(d.Platform)
		if !ok {
			return fmt.Errorf("invalid platform %q: use mac or win", d.Platform)
		}
		d.Platform = p.Tag()
	}
	if d.Bundle != "" && (d.MacDest == "" || d.WinDest == "") {
		return errors.New("a bundle needs both a mac and a win destination")
	}
	if d.Description == "" {
		d.Description = fmt.Sprintf("%s command %s", branding.DisplayName(), d.Name)
	}
	return nil
}
