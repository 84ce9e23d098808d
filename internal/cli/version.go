package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluginbridge/cgc/internal/branding"
)

func (a *app) newVersionCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				a.writef("%s\n", a.version)
				return nil
			}

			if asJSON {
				info := map[string]string{
					"version": a.version,
					"commit":  a.commit,
					"date":    a.date,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				a.writef("%s\n", out)
				return nil
			}

			a.writef("%s version %s (commit: %s, built: %s)\n", branding.CLIName(), a.version, a.commit, a.date)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return cmd
}
