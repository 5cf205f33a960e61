package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	projectsync "github.com/rbxsync-io/rbxsync/internal/sync"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		output string
		asLua  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export universe resources as a Luau config module",
		Long: `Fetch the universe's game passes, developer products, and badges and
write them as a Luau module returning a table, for requiring from game
scripts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			snapshot, err := projectsync.FetchSnapshot(cmd.Context(), client, universeID)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = "config.luau"
				if asLua {
					path = "config.lua"
				}
			}

			if err := os.WriteFile(path, snapshot.Luau(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default config.luau)")
	cmd.Flags().BoolVar(&asLua, "lua", false, "use the .lua default filename instead of .luau")

	return cmd
}
