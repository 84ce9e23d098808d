package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/pluginbridge/cgc/internal/branding"
	"github.com/pluginbridge/cgc/internal/options"
	"github.com/pluginbridge/cgc/internal/paths"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known keys.
const (
	KeyCommandsDir = "commands_dir"
	KeyDryRun      = "dry_run"
	KeyVerbose     = "verbose"
	KeyForce       = "force"
	KeyInstall     = "install"
)

// keyKinds maps each known key to whether it holds a boolean.
var keyKinds = map[string]bool{
	KeyCommandsDir: false,
	KeyDryRun:      true,
	KeyVerbose:     true,
	KeyForce:       true,
	KeyInstall:     true,
}

// Keys returns the known configuration keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilePath returns the full path to the config file (~/.cgc/config.yaml).
func FilePath() string {
	dir, err := paths.Home()
	if err != nil {
		dir = filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(dir, fileName+"."+fileType)
}

// Settings are the values cgc reads from configuration.
type Settings struct {
	CommandsDir string
	DryRun      bool
	Verbose     bool
	// Force and Install are nil unless configured, so they only override
	// command defaults when set.
	Force   *bool
	Install *bool
}

// Layer returns the option overrides carried by the settings.
func (s Settings) Layer() options.Layer {
	return options.Layer{Install: s.Install, Force: s.Force}
}

// Config is a loaded configuration.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads the config file at path (FilePath when empty) and the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return &Config{v: v, path: path}, nil
}

// Path returns the config file location.
func (c *Config) Path() string { return c.path }

// Settings returns the typed settings.
func (c *Config) Settings() Settings {
	s := Settings{
		CommandsDir: c.v.GetString(KeyCommandsDir),
		DryRun:      c.v.GetBool(KeyDryRun),
		Verbose:     c.v.GetBool(KeyVerbose),
	}
	if c.v.IsSet(KeyForce) {
		s.Force = options.Bool(c.v.GetBool(KeyForce))
	}
	if c.v.IsSet(KeyInstall) {
		s.Install = options.Bool(c.v.GetBool(KeyInstall))
	}
	return s
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Set validates and stores a key-value pair, then saves the config file.
func (c *Config) Set(key, value string) error {
	isBool, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}

	if isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("key %q expects true or false, got %q", key, value)
		}
		c.v.Set(key, b)
	} else {
		c.v.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), paths.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
