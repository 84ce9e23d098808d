package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// commandEntry describes a discovered command for display.
type commandEntry struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

func (a *app) newCommandsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the commands found in the commands directory",
		Long: `List every command discoverable in the commands directory and the current
platform's subdirectory, with the definition files that contribute to it.
Definition files are not parsed; run doctor to validate them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.loaderErr != nil {
				return a.loaderErr
			}

			names, err := a.loader.ListCommands()
			if err != nil {
				return err
			}

			entries := make([]commandEntry, 0, len(names))
			for _, name := range names {
				files, err := a.loader.CommandFiles(name)
				if err != nil {
					return err
				}
				entries = append(entries, commandEntry{Name: name, Files: files})
			}

			if asJSON {
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling commands: %w", err)
				}
				a.writef("%s\n", out)
				return nil
			}

			if len(entries) == 0 {
				a.writef("No commands found in %s.\n", a.loader.Dir())
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFILES")
			for _, e := range entries {
				rel := make([]string, 0, len(e.Files))
				for _, f := range e.Files {
					if r, err := filepath.Rel(a.loader.Dir(), f); err == nil {
						f = r
					}
					rel = append(rel, f)
				}
				fmt.Fprintf(w, "%s\t%s\n", e.Name, strings.Join(rel, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
