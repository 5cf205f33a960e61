package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// NewProductsCommand creates the products command group.
func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"devproducts"},
		Short:   "Inspect universe developer products",
	}

	cmd.AddCommand(newProductsListCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List developer products in the universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			products, err := client.DeveloperProducts().List(cmd.Context(), universeID,
				listOptionsFromFlags(limit, cursor, ""))
			if err != nil {
				return err
			}

			handled, err := renderStructured(products)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Price")

			for _, product := range products.Data {
				_ = table.Append(formatID(product.ID), product.Name, formatPrice(product.Price))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if products.NextPageCursor != "" {
				fmt.Fprintln(os.Stdout, "Next cursor:", products.NextPageCursor)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume cursor from a previous page")

	return cmd
}
