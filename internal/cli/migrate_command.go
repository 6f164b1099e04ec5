package cli

import (
	"fmt"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/registry"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(globalOptions *GlobalOptions) *cobra.Command {

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Registry migration tools",
		Long:  `Manage the registry schema version. Use subcommands 'up', 'down', or 'status'.`,
	}

	var upCmd = &cobra.Command{
		Use:   "up",
		Short: "Migrate the registry to the most recent version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("up", globalOptions)
		},
	}

	var downCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back the registry by one version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("down", globalOptions)
		},
	}

	var statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Dump the migration status for the current registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration("status", globalOptions)
		},
	}

	// Add subcommands
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	migrateCmd.AddCommand(statusCmd)

	return migrateCmd
}

func runMigration(command string, globalOptions *GlobalOptions) error {
	// Migrations only touch the database, so no blob backend is needed.
	reg, err := registry.Open(globalOptions.Conf.Registry.Path, nil, registry.Options{})
	if err != nil {
		return fmt.Errorf("failed to connect to registry: %w", err)
	}
	defer reg.Close()

	logging.Log.Infof("Running migration command: %s", command)
	if err := reg.Migrate(command); err != nil {
		return err
	}

	logging.Log.Info("Migration operation completed successfully.")
	return nil
}
