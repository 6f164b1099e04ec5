// filepath: internal/registry/pending.go
package registry

import (
	"context"
	"fmt"
	"time"

	"gallerysaver/internal/models"

	"github.com/Masterminds/squirrel"
)

// PendingEntries lists every entry still flagged pending, oldest first.
func (r *Repository) PendingEntries(ctx context.Context) ([]models.MediaEntry, error) {
	return r.queryEntries(ctx, squirrel.Eq{"is_pending": true})
}

// ExpiredPending lists pending entries whose expiry is at or before cutoff.
func (r *Repository) ExpiredPending(ctx context.Context, cutoff time.Time) ([]models.MediaEntry, error) {
	return r.queryEntries(ctx, squirrel.And{
		squirrel.Eq{"is_pending": true},
		squirrel.NotEq{"date_expires": nil},
		squirrel.LtOrEq{"date_expires": cutoff.Unix()},
	})
}

func (r *Repository) queryEntries(ctx context.Context, where squirrel.Sqlizer) ([]models.MediaEntry, error) {
	query := r.Builder.Select(entryColumns...).
		From(tableName).
		Where(where).
		OrderBy("date_added ASC", "id ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	entries := make([]models.MediaEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}
