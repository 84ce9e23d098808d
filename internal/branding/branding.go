// Package branding provides compile-time identity values for the CLI.
//
// Identity lives in branding.yaml next to this file and is baked into the
// binary with //go:embed. The command prefix doubles as the filename prefix of
// command definition files (cgc_<name>.yaml).
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	CommandPrefix string `yaml:"command_prefix"`
	GoModule      string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "cgc",
			DisplayName:   "PluginBridge",
			Description:   "Command dispatcher and install helper",
			HomeDir:       ".cgc",
			EnvPrefix:     "CGC",
			CommandPrefix: "cgc",
			GoModule:      "github.com/pluginbridge/cgc",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "cgc").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".cgc").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CGC").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// CommandPrefix returns the filename prefix of command definition files.
func CommandPrefix() string { load(); return defaults.CommandPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("commands") → "CGC_COMMANDS".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
