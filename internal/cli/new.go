package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluginbridge/cgc/internal/scaffold"
)

func (a *app) newNewCmd() *cobra.Command {
	var d scaffold.Data
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new command definition file",
		Long: `Create a definition file for a new command in the commands directory.

With --bundle, the command gets an install step copying the bundle directory
to the platform destination and an undo step removing it again.`,
		Example: `  cgc new hello
  cgc new reverb --bundle bundles/Reverb --mac-dest /Library/Audio/Plug-Ins/VST3 --win-dest 'C:\Program Files\Common Files\VST3'
  cgc new cleanup --platform win`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Name = args[0]
			res, err := scaffold.Generate(a.fs, a.commandsDir.Path, d)
			if err != nil {
				return fmt.Errorf("creating command %s: %w", d.Name, err)
			}
			a.log.Successf("Created %s", res.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&d.Description, "description", "", "Command description")
	cmd.Flags().StringVar(&d.Platform, "platform", "", "Write a platform override (mac or win)")
	cmd.Flags().StringVar(&d.Bundle, "bundle", "", "Bundle directory to install, relative to the commands directory")
	cmd.Flags().StringVar(&d.MacDest, "mac-dest", "", "Install destination on macOS")
	cmd.Flags().StringVar(&d.WinDest, "win-dest", "", "Install destination on Windows")
	cmd.Flags().BoolVar(&d.Force, "no-confirm", false, "Default the command to skipping confirmation prompts")
	return cmd
}
