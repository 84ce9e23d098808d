package cmddef

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pluginbridge/cgc/internal/options"
	"github.com/pluginbridge/cgc/internal/platform"
	"github.com/pluginbridge/cgc/internal/shell"
)

// Step conditions.
const (
	WhenAlways  = "always"
	WhenInstall = "install"
	WhenUndo    = "undo"
)

// File is one parsed definition file.
type File struct {
	Requires string                 `yaml:"requires,omitempty" json:"requires,omitempty"`
	Commands map[string]*Definition `yaml:"commands" json:"commands"`

	// Path is the file the definitions were read from.
	Path string `yaml:"-" json:"-"`
}

// Definition describes one command, or a group when it has subcommands.
type Definition struct {
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Hidden      bool                   `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Defaults    options.Layer          `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Steps       []Step                 `yaml:"steps,omitempty" json:"steps,omitempty"`
	Subcommands map[string]*Definition `yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
}

// Step is a single action invocation within a command.
type Step struct {
	Action    string    `yaml:"action" json:"action"`
	When      string    `yaml:"when,omitempty" json:"when,omitempty"`
	Platforms []string  `yaml:"platforms,omitempty" json:"platforms,omitempty"`
	With      yaml.Node `yaml:"with,omitempty" json:"-"`
}

// Decode decodes the step's "with" block into v. A step without parameters
// leaves v untouched.
func (s *Step) Decode(v any) error {
	if s.With.Kind == 0 {
		return nil
	}
	if err := s.With.Decode(v); err != nil {
		return fmt.Errorf("decoding %s parameters: %w", s.Action, err)
	}
	return nil
}

// Applies reports whether the step runs under the resolved options.
func (s *Step) Applies(o options.Resolved) bool {
	switch s.When {
	case WhenInstall:
		return o.Install
	case WhenUndo:
		return o.Undo || !o.Install
	default:
		return true
	}
}

// PlatformFlag returns the platform selection of the step.
func (s *Step) PlatformFlag() (platform.Flag, error) {
	return platform.FlagFor(s.Platforms)
}

// PathValue is a path parameter given either as one string for every
// platform or as a {mac, win} mapping.
type PathValue struct {
	Mac string `yaml:"mac"`
	Win string `yaml:"win"`
}

// UnmarshalYAML accepts a scalar or a mapping.
func (p *PathValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Mac, p.Win = node.Value, node.Value
		return nil
	}
	type plain PathValue
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = PathValue(raw)
	return nil
}

// Platform converts the value to a platform.Path.
func (p PathValue) Platform() platform.Path {
	return platform.NewPath(p.Mac, p.Win)
}

// IsZero reports whether neither variant is set.
func (p PathValue) IsZero() bool {
	return p.Mac == "" && p.Win == ""
}

// Argv is a command line given either as a list or as one string split with
// shell-style quoting.
type Argv []string

// UnmarshalYAML accepts a scalar or a sequence.
func (a *Argv) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parts, err := shell.ParseCommand(node.Value)
		if err != nil {
			return err
		}
		*a = parts
		return nil
	}
	var parts []string
	if err := node.Decode(&parts); err != nil {
		return err
	}
	*a = parts
	return nil
}
