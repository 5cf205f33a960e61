package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	projectsync "github.com/rbxsync-io/rbxsync/internal/sync"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile rbxsync.yaml against the universe",
		Long: `Reconcile the declarative rbxsync.yaml project in the current directory
against the live universe: universe settings first, then game passes,
developer products, and badges. Resource identity learned along the way is
recorded in .rbxsync/state.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := buildEngine(dryRun)
			if err != nil {
				return err
			}

			if err := engine.Run(cmd.Context()); err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "Dry run complete, no changes applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report planned changes without applying them")

	return cmd
}

// NewPublishCommand creates the publish command.
func NewPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish place files marked in rbxsync.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := buildEngine(false)
			if err != nil {
				return err
			}

			if err := engine.Publish(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Publish complete")

			return nil
		},
	}
}

// buildEngine wires the client, project file, and state file from the
// current working directory into a sync engine.
func buildEngine(dryRun bool) (*projectsync.Engine, error) {
	client, err := CreateClient()
	if err != nil {
		return nil, err
	}

	universeID, err := ResolveUniverseID()
	if err != nil {
		return nil, err
	}

	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	project, err := projectsync.LoadProject(filepath.Join(root, projectsync.ProjectFileName))
	if err != nil {
		return nil, err
	}

	state, err := projectsync.LoadState(root)
	if err != nil {
		return nil, err
	}

	return projectsync.NewEngine(client, universeID, root, project, state,
		projectsync.WithLogger(commandLogger()),
		projectsync.WithDryRun(dryRun))
}
