// filepath: internal/registry/entries.go
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/models"
	"gallerysaver/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/oklog/ulid/v2"
)

// maxDuplicates bounds the " (n)" suffix search for a free display name.
const maxDuplicates = 1000

var entryColumns = []string{
	"id", "collection", "display_name", "relative_path", "mime_type", "blob_key",
	"size", "date_added", "date_modified", "date_expires", "is_pending",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*models.MediaEntry, error) {
	var (
		e        models.MediaEntry
		mime     sql.NullString
		added    int64
		modified int64
		expires  sql.NullInt64
	)
	if err := row.Scan(&e.ID, &e.Collection, &e.DisplayName, &e.RelativePath, &mime, &e.BlobKey,
		&e.Size, &added, &modified, &expires, &e.IsPending); err != nil {
		return nil, err
	}
	if mime.Valid {
		e.MimeType = &mime.String
	}
	e.DateAdded = time.Unix(added, 0)
	e.DateModified = time.Unix(modified, 0)
	if expires.Valid {
		t := time.Unix(expires.Int64, 0)
		e.DateExpires = &t
	}
	e.Locator = Locator(e.Collection, e.ID)
	return &e, nil
}

func cacheKey(id string) string {
	return "entry_" + id
}

// duplicateName returns name with " (n)" inserted before the extension.
func duplicateName(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	if ext == name {
		ext = ""
	}
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n, ext)
}

// Insert creates a registry entry and returns its locator. When the display
// name is already taken in the same relative path a " (n)" suffix is added,
// so two inserts with identical values always yield two entries.
func (r *Repository) Insert(ctx context.Context, v models.EntryValues) (string, error) {
	if v.Collection != models.CollectionImages && v.Collection != models.CollectionVideo {
		return "", fmt.Errorf("%w: unknown collection %q", ErrCollectionUnavailable, v.Collection)
	}
	if !r.CollectionEnabled(v.Collection) {
		return "", fmt.Errorf("%w: %s", ErrCollectionUnavailable, v.Collection)
	}
	if v.DisplayName == "" {
		return "", fmt.Errorf("display name must not be empty")
	}

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	name, err := r.freeName(ctx, tx, v.RelativePath, v.DisplayName)
	if err != nil {
		return "", err
	}

	blobKey := storage.Key(v.RelativePath, name)
	var expires interface{}
	if v.DateExpires != nil {
		expires = v.DateExpires.Unix()
		if v.IsPending {
			blobKey = storage.Key(v.RelativePath, storage.PendingName(name, v.DateExpires.Unix()))
		}
	}
	var mime interface{}
	if v.MimeType != nil {
		mime = *v.MimeType
	}

	id := ulid.Make().String()
	query := r.Builder.Insert(tableName).
		Columns(entryColumns...).
		Values(id, v.Collection, name, v.RelativePath, mime, blobKey,
			0, v.DateAdded.Unix(), v.DateModified.Unix(), expires, v.IsPending)

	sqlInsert, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlInsert, args...); err != nil {
		return "", fmt.Errorf("failed to insert entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Log.Debugf("Registry: inserted entry %s (%s/%s, pending=%t)", id, v.RelativePath, name, v.IsPending)
	return Locator(v.Collection, id), nil
}

// freeName finds the first display name not used by another entry or an
// existing blob in relativePath.
func (r *Repository) freeName(ctx context.Context, tx *Tx, relativePath, name string) (string, error) {
	for n := 0; n < maxDuplicates; n++ {
		candidate := duplicateName(name, n)

		query := r.Builder.Select("COUNT(*)").
			From(tableName).
			Where(squirrel.Eq{"relative_path": relativePath, "display_name": candidate})
		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return "", fmt.Errorf("failed to build name query: %w", err)
		}
		var count int
		if err := tx.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
			return "", fmt.Errorf("failed to check display name: %w", err)
		}
		if count > 0 {
			continue
		}

		// Files written through the direct path share the media root.
		exists, err := r.Blobs.Exists(ctx, storage.Key(relativePath, candidate))
		if err != nil {
			return "", fmt.Errorf("failed to check blob: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free display name for %q after %d attempts", name, maxDuplicates)
}

// Get returns the entry behind a locator.
func (r *Repository) Get(ctx context.Context, locator string) (*models.MediaEntry, error) {
	_, id, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}
	if cached, found := r.Cache.Get(cacheKey(id)); found {
		entry := *cached.(*models.MediaEntry)
		return &entry, nil
	}

	query := r.Builder.Select(entryColumns...).From(tableName).Where(squirrel.Eq{"id": id})
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	entry, err := scanEntry(r.DB.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	r.Cache.Set(cacheKey(id), entry, 5*time.Minute)
	copied := *entry
	return &copied, nil
}

// OpenWriter opens an output stream bound to the entry's blob. The entry size
// is recorded when the stream is closed.
func (r *Repository) OpenWriter(ctx context.Context, locator string) (io.WriteCloser, error) {
	entry, err := r.Get(ctx, locator)
	if err != nil {
		return nil, err
	}
	w, err := r.Blobs.Create(ctx, entry.BlobKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob for %s: %w", locator, err)
	}
	return &entryWriter{WriteCloser: w, ctx: ctx, repo: r, id: entry.ID}, nil
}

// Update applies upd to the entry and returns the number of rows changed.
// Clearing the pending flag moves the blob to its final name.
func (r *Repository) Update(ctx context.Context, locator string, upd models.EntryUpdate) (int64, error) {
	entry, err := r.Get(ctx, locator)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	modified := r.now()
	if upd.DateModified != nil {
		modified = *upd.DateModified
	}
	set := map[string]interface{}{"date_modified": modified.Unix()}

	if upd.IsPending != nil {
		set["is_pending"] = *upd.IsPending
		if !*upd.IsPending && entry.IsPending {
			final := storage.Key(entry.RelativePath, entry.DisplayName)
			if final != entry.BlobKey {
				if err := r.Blobs.Rename(ctx, entry.BlobKey, final); err != nil {
					return 0, fmt.Errorf("failed to publish blob: %w", err)
				}
				set["blob_key"] = final
			}
		}
	}
	if upd.ClearExpires {
		set["date_expires"] = nil
	}

	query := r.Builder.Update(tableName).SetMap(set).Where(squirrel.Eq{"id": entry.ID})
	sqlUpdate, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update query: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, sqlUpdate, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update entry: %w", err)
	}
	r.Cache.Delete(cacheKey(entry.ID))
	return res.RowsAffected()
}

// Delete removes the entry and its blob, returning the number of rows deleted.
// A blob that cannot be removed is logged and left for housekeeping.
func (r *Repository) Delete(ctx context.Context, locator string) (int64, error) {
	entry, err := r.Get(ctx, locator)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if err := r.Blobs.Remove(ctx, entry.BlobKey); err != nil {
		logging.Log.Warnf("Registry: failed to remove blob %s: %v", entry.BlobKey, err)
	}

	query := r.Builder.Delete(tableName).Where(squirrel.Eq{"id": entry.ID})
	sqlDelete, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, sqlDelete, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entry: %w", err)
	}
	r.Cache.Delete(cacheKey(entry.ID))
	return res.RowsAffected()
}

// entryWriter counts the bytes written and stores the total on Close.
type entryWriter struct {
	io.WriteCloser
	ctx    context.Context
	repo   *Repository
	id     string
	n      int64
	closed bool
}

func (w *entryWriter) Write(p []byte) (int, error) {
	n, err := w.WriteCloser.Write(p)
	w.n += int64(n)
	return n, err
}

func (w *entryWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.WriteCloser.Close(); err != nil {
		return err
	}

	query := w.repo.Builder.Update(tableName).Set("size", w.n).Where(squirrel.Eq{"id": w.id})
	sqlUpdate, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build size query: %w", err)
	}
	if _, err := w.repo.DB.ExecContext(w.ctx, sqlUpdate, args...); err != nil {
		return fmt.Errorf("failed to record entry size: %w", err)
	}
	w.repo.Cache.Delete(cacheKey(w.id))
	return nil
}
