package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// NewBadgesCommand creates the badges command group.
func NewBadgesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Inspect universe badges",
	}

	cmd.AddCommand(newBadgesListCommand())

	return cmd
}

func newBadgesListCommand() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List badges in the universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			badges, err := client.Badges().List(cmd.Context(), universeID,
				listOptionsFromFlags(limit, cursor, ""))
			if err != nil {
				return err
			}

			handled, err := renderStructured(badges)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Enabled")

			for _, badge := range badges.Data {
				enabled := "no"
				if badge.Enabled {
					enabled = "yes"
				}

				_ = table.Append(formatID(badge.ID), badge.Name, enabled)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if badges.NextPageCursor != "" {
				fmt.Fprintln(os.Stdout, "Next cursor:", badges.NextPageCursor)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume cursor from a previous page")

	return cmd
}
