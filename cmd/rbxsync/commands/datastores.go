package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// NewDataStoresCommand creates the datastores command group.
func NewDataStoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datastores",
		Aliases: []string{"ds"},
		Short:   "Inspect standard data stores",
	}

	cmd.AddCommand(newDataStoresListCommand())
	cmd.AddCommand(newDataStoresEntriesCommand())
	cmd.AddCommand(newDataStoresGetCommand())

	return cmd
}

func newDataStoresListCommand() *cobra.Command {
	var (
		limit  int
		cursor string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List data stores in the universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			stores, err := client.DataStores().List(cmd.Context(), universeID,
				listOptionsFromFlags(limit, cursor, prefix))
			if err != nil {
				return err
			}

			handled, err := renderStructured(stores)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Created")

			for _, store := range stores.Data {
				created := constants.NotAvailable
				if store.CreatedTime != nil {
					created = store.CreatedTime.Format("2006-01-02 15:04:05")
				}

				_ = table.Append(store.Name, created)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if stores.NextPageCursor != "" {
				fmt.Fprintln(os.Stdout, "Next cursor:", stores.NextPageCursor)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume cursor from a previous page")
	cmd.Flags().StringVar(&prefix, "prefix", "", "filter by name prefix")

	return cmd
}

func newDataStoresEntriesCommand() *cobra.Command {
	var (
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "entries DATASTORE",
		Short: "List entry keys within a data store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			keys, err := client.DataStores().ListEntries(cmd.Context(), universeID, args[0],
				listOptionsFromFlags(limit, cursor, ""))
			if err != nil {
				return err
			}

			handled, err := renderStructured(keys)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key")

			for _, key := range keys.Data {
				_ = table.Append(key.Key)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			if keys.NextPageCursor != "" {
				fmt.Fprintln(os.Stdout, "Next cursor:", keys.NextPageCursor)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "resume cursor from a previous page")

	return cmd
}

func newDataStoresGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DATASTORE KEY",
		Short: "Fetch a single entry's value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			value, err := client.DataStores().GetEntry(cmd.Context(), universeID, args[0], args[1])
			if err != nil {
				return err
			}

			// Entry values have no schema; pretty-print when possible and
			// fall back to the raw bytes.
			var pretty interface{}
			if json.Unmarshal(value, &pretty) == nil {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(pretty)
			}

			fmt.Fprintln(os.Stdout, string(value))

			return nil
		},
	}
}
