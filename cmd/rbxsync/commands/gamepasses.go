package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// NewGamePassesCommand creates the gamepasses command group.
func NewGamePassesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gamepasses",
		Aliases: []string{"gp"},
		Short:   "Inspect universe game passes",
	}

	cmd.AddCommand(newGamePassesListCommand())

	return cmd
}

func newGamePassesListCommand() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List game passes in the universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			passes, err := client.GamePasses().List(cmd.Context(), universeID,
				listOptionsFromFlags(limit, cursor, ""))
			if err != nil {
				return err
			}

			handled, err := renderStructured(passes)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Price", "For Sale")

			for _, pass := range passes.Data {
				forSale := "no"
				if pass.IsForSale {
					forSale = "yes"
				}

				_ = table.Append(formatID(pass.ID), pass.Name, formatPrice(pass.Price), forSale)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if passes.NextPageCursor != "" {
				fmt.Fprintln(os.Stdout, "Next cursor:", passes.NextPageCursor)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume cursor from a previous page")

	return cmd
}
