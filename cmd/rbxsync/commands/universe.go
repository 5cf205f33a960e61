package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// NewUniverseCommand creates the universe command group.
func NewUniverseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "universe",
		Short: "Inspect and update universe settings",
	}

	cmd.AddCommand(newUniverseGetCommand())
	cmd.AddCommand(newUniverseUpdateCommand())

	return cmd
}

func newUniverseGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show universe settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			universe, err := client.Universes().Get(cmd.Context(), universeID)
			if err != nil {
				return err
			}

			handled, err := renderStructured(universe)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Display Name", universe.DisplayName)
			_ = table.Append("Description", universe.Description)
			_ = table.Append("Visibility", universe.Visibility)
			_ = table.Append("Path", universe.Path)

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newUniverseUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		genre       string
		devices     []string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Patch universe settings",
		Long:  "Patch universe settings. Only the flags given are sent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			universeID, err := ResolveUniverseID()
			if err != nil {
				return err
			}

			request := &rbxcloud.UniverseUpdateRequest{}
			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("description") {
				request.Description = &description
			}

			if cmd.Flags().Changed("genre") {
				request.Genre = &genre
			}

			if cmd.Flags().Changed("device") {
				request.PlayableDevices = devices
			}

			if _, err := client.Universes().Update(cmd.Context(), universeID, request); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Universe settings updated")

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "universe name")
	cmd.Flags().StringVar(&description, "description", "", "universe description")
	cmd.Flags().StringVar(&genre, "genre", "", "universe genre")
	cmd.Flags().StringSliceVar(&devices, "device", nil, "playable device (repeatable)")

	return cmd
}
