package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluginbridge/cgc/internal/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long:  `Read and write cgc configuration stored at ~/.cgc/config.yaml.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				if err := a.cfg.Set(key, value); err != nil {
					return fmt.Errorf("setting config key %q: %w", key, err)
				}
				a.writef("Set %s = %s\n", key, value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a.writef("%s\n", a.cfg.Get(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every configuration key and its value",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.writef("# %s\n", a.cfg.Path())
				for _, key := range config.Keys() {
					a.writef("%s = %s\n", key, a.cfg.Get(key))
				}
				return nil
			},
		},
	)
	return cmd
}
