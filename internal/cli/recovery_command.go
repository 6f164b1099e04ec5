package cli

import (
	"encoding/json"
	"fmt"

	"gallerysaver/internal/housekeeping"
	"gallerysaver/internal/logging"

	"github.com/spf13/cobra"
)

type RecoveryOptions struct {
	DryRun bool // If true, report only without editing
	Force  bool // If true, also delete pending entries that have not expired yet
}

func NewRecoveryCommand(globalOptions *GlobalOptions) *cobra.Command {

	recoveryOptions := &RecoveryOptions{DryRun: false}

	recoveryCommand := &cobra.Command{
		Use:   "recovery",
		Short: "Remove pending registry entries left behind by interrupted saves",
		Long: `Scans the registry for entries that are still pending (e.g., due to a crash between reserve and finalize)
and deletes them together with their blobs. This does not start the HTTP server.

Without --force only expired entries are deleted, since an unexpired pending entry may
belong to a save a running server has not finalized yet. Use --force only while the
server is stopped. --dryrun lists every pending entry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecovery(cmd, globalOptions, recoveryOptions)
		},
	}

	recoveryOptions.registerFlags(recoveryCommand)

	return recoveryCommand

}

func (opt *RecoveryOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&opt.DryRun, "dryrun", false, "If true, report only without editing.")
	cmd.Flags().BoolVar(&opt.Force, "force", false, "Also delete unexpired pending entries. Stop the server first.")
}

func runRecovery(cmd *cobra.Command, globalOptions *GlobalOptions, recoveryOptions *RecoveryOptions) error {
	reg, err := openRegistry(contextOf(cmd), globalOptions.Conf)
	if err != nil {
		return fmt.Errorf("failed to connect to registry: %w", err)
	}
	defer reg.Close()

	logging.Log.Info("Starting recovery process...")

	includeUnexpired := recoveryOptions.DryRun || recoveryOptions.Force
	switch {
	case recoveryOptions.Force && !recoveryOptions.DryRun:
		logging.Log.Warn("Recovery: deleting unexpired pending entries. Saves in progress on a running server will lose their entry.")
	case !includeUnexpired:
		logging.Log.Warn("Recovery: only expired pending entries are deleted. Stop the server and pass --force to delete all of them.")
	}

	report, err := housekeeping.Run(contextOf(cmd), housekeeping.Dependencies{Registry: reg}, housekeeping.RunOptions{
		DryRun:           recoveryOptions.DryRun,
		IncludeUnexpired: includeUnexpired,
	})
	if err != nil {
		return err
	}

	logging.Log.Info(report.Message)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
