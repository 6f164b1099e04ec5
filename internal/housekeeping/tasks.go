// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"context"
	"fmt"
	"time"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/models"
)

// Dependencies defines the required services for the housekeeping tasks.
type Dependencies struct {
	Registry PendingStore
	Now      func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// RunOptions control a single housekeeping run.
type RunOptions struct {
	// DryRun only reports what would be deleted.
	DryRun bool
	// IncludeUnexpired also purges pending entries whose expiry has not passed yet.
	// Only safe while no save is in flight.
	IncludeUnexpired bool
}

// Run purges abandoned pending entries and reports what was (or would be) removed.
func Run(ctx context.Context, deps Dependencies, opts RunOptions) (*models.HousekeepingReport, error) {
	var (
		entries []models.MediaEntry
		err     error
	)
	if opts.IncludeUnexpired {
		entries, err = deps.Registry.PendingEntries(ctx)
	} else {
		entries, err = deps.Registry.ExpiredPending(ctx, deps.now())
	}
	if err != nil {
		return nil, fmt.Errorf("could not query for pending entries: %w", err)
	}

	report := &models.HousekeepingReport{
		EntriesFound: len(entries),
		DryRun:       opts.DryRun,
	}

	if len(entries) == 0 {
		report.Message = "Housekeeping complete. No abandoned pending entries found."
		return report, nil
	}

	if opts.DryRun {
		for _, entry := range entries {
			report.SpaceFreedBytes += entry.Size
			logging.Log.Infof("Dry run: would delete pending entry %s (%s/%s, %s)",
				entry.Locator, entry.RelativePath, entry.DisplayName, formatBytes(entry.Size))
		}
		report.Message = fmt.Sprintf("Dry run complete. %d pending entries would be deleted, freeing %s.",
			report.EntriesFound, formatBytes(report.SpaceFreedBytes))
		return report, nil
	}

	logging.Log.Infof("Found %d abandoned pending entries. Deleting...", len(entries))
	deleteEntries(ctx, deps, entries, report)

	report.Message = fmt.Sprintf("Housekeeping complete. %d entries deleted, freeing %s.",
		report.EntriesDeleted, formatBytes(report.SpaceFreedBytes))
	return report, nil
}

// deleteEntries is a helper function to delete a list of entries and record them in report.
func deleteEntries(ctx context.Context, deps Dependencies, entries []models.MediaEntry, report *models.HousekeepingReport) {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			logging.Log.Warnf("Housekeeping interrupted: %v", err)
			return
		}

		rows, err := deps.Registry.Delete(ctx, entry.Locator)
		if err != nil {
			logging.Log.Errorf("Failed to delete pending entry %s: %v", entry.Locator, err)
			continue // Skip to the next entry
		}
		if rows == 0 {
			// Finalized or removed since the query ran.
			continue
		}

		report.EntriesDeleted++
		report.SpaceFreedBytes += entry.Size
	}
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
