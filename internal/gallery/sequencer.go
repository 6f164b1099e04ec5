// filepath: internal/gallery/sequencer.go
package gallery

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/media"
	"gallerysaver/internal/models"
	"gallerysaver/internal/storage"

	"github.com/sirupsen/logrus"
)

// DefaultPendingTTL is how long a reserved entry stays valid before it is
// treated as abandoned.
const DefaultPendingTTL = 24 * time.Hour

// Registry is the media registry as seen by the sequencer.
type Registry interface {
	Insert(ctx context.Context, v models.EntryValues) (string, error)
	OpenWriter(ctx context.Context, locator string) (io.WriteCloser, error)
	Update(ctx context.Context, locator string, upd models.EntryUpdate) (int64, error)
	Delete(ctx context.Context, locator string) (int64, error)
}

// entryState tracks a registry entry through one save.
type entryState int

const (
	stateReserved entryState = iota
	stateWrittenPending
	stateCommitted
	stateRolledBack
	stateOrphaned
)

func (s entryState) String() string {
	switch s {
	case stateReserved:
		return "reserved"
	case stateWrittenPending:
		return "written_pending"
	case stateCommitted:
		return "committed"
	case stateRolledBack:
		return "rolled_back"
	default:
		return "orphaned"
	}
}

// Sequencer performs the write for a resolved Descriptor.
type Sequencer struct {
	caps       Capabilities
	registry   Registry
	decoder    media.Decoder
	pendingTTL time.Duration
	now        func() time.Time
}

// NewSequencer creates a sequencer. registry may be nil when only DirectPath
// is used; a nil decoder uses media.StdDecoder.
func NewSequencer(caps Capabilities, registry Registry, decoder media.Decoder, pendingTTL time.Duration) *Sequencer {
	if decoder == nil {
		decoder = media.StdDecoder{}
	}
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	return &Sequencer{
		caps:       caps,
		registry:   registry,
		decoder:    decoder,
		pendingTTL: pendingTTL,
		now:        time.Now,
	}
}

// Write stores the payload of req at d and reports the outcome.
func (s *Sequencer) Write(ctx context.Context, d Descriptor, req SaveRequest) models.SaveResult {
	if err := ctx.Err(); err != nil {
		return ResultFromError(newError(KindContextUnavailable, d.Model, "write", err))
	}

	if d.Model == RegistryInsert {
		if s.registry == nil {
			return ResultFromError(newError(KindContextUnavailable, d.Model, "write", nil))
		}
		if err := s.writeRegistry(ctx, d, req); err != nil {
			return ResultFromError(err)
		}
		return models.Succeeded(nil)
	}

	locator, err := s.writeDirect(d, req)
	if err != nil {
		logging.Log.WithError(err).WithField("path", d.Path).Error("Direct save failed")
		return ResultFromError(err)
	}
	if locator == "" {
		return models.Failed("")
	}
	return models.Succeeded(&locator)
}

func (s *Sequencer) writeDirect(d Descriptor, req SaveRequest) (string, error) {
	if req.IsFile() {
		src, _ := req.Source().Get()
		f, err := os.Open(src)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", &Error{Kind: KindSourceNotFound, Model: DirectPath, Op: "copy", Path: src}
			}
			return "", newError(KindWriteFailure, DirectPath, "copy", err)
		}
		defer f.Close()
		if err := ensureDir(d.Path); err != nil {
			return "", err
		}

		err = storage.WriteFileAtomic(d.Path, func(w io.Writer) error {
			_, err := storage.CopyChunked(w, f, storage.DirectChunkSize)
			return err
		})
		if err != nil {
			return "", newError(KindWriteFailure, DirectPath, "copy", err)
		}
		return fileURI(d.Path), nil
	}

	quality, ok := req.Quality().Get()
	if !ok {
		return "", newError(KindInvalidRequest, DirectPath, "encode", nil)
	}
	bmp, err := s.decoder.Decode(req.Image())
	if err != nil {
		return "", newError(KindInvalidRequest, DirectPath, "decode", err)
	}
	defer bmp.Release()
	if err := ensureDir(d.Path); err != nil {
		return "", err
	}

	err = storage.WriteFileAtomic(d.Path, func(w io.Writer) error {
		return media.EncodeJPEG(w, bmp, quality)
	})
	if err != nil {
		return "", newError(KindWriteFailure, DirectPath, "encode", err)
	}
	return fileURI(d.Path), nil
}

// ensureDir creates the collection directory of dest. It runs only once the
// payload is known to be readable, so failed saves leave no empty folders.
func ensureDir(dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return newError(KindCollectionUnavailable, DirectPath, "mkdir", err)
	}
	return nil
}

// writeRegistry runs reserve, write and finalize. The payload is validated
// before anything is reserved so bad input never leaves an entry behind.
func (s *Sequencer) writeRegistry(ctx context.Context, d Descriptor, req SaveRequest) error {
	var bmp *media.Bitmap
	if req.IsFile() {
		src, _ := req.Source().Get()
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &Error{Kind: KindSourceNotFound, Model: RegistryInsert, Op: "copy", Path: src}
			}
			return newError(KindWriteFailure, RegistryInsert, "copy", err)
		}
	} else {
		var err error
		bmp, err = s.decoder.Decode(req.Image())
		if err != nil {
			return newError(KindInvalidRequest, RegistryInsert, "decode", err)
		}
		defer bmp.Release()
	}

	now := s.now()
	expires := now.Add(s.pendingTTL)
	values := models.EntryValues{
		Collection:   d.Kind.Collection(),
		DisplayName:  d.DisplayName,
		RelativePath: d.RelativePath,
		MimeType:     d.MimeType.Ptr(),
		DateAdded:    now,
		DateModified: now,
		DateExpires:  &expires,
		IsPending:    true,
	}

	locator, err := s.registry.Insert(ctx, values)
	if err != nil {
		logging.Log.WithError(err).WithFields(logrus.Fields{
			"display_name":  d.DisplayName,
			"relative_path": d.RelativePath,
		}).Error("Registry refused insert")
		return newError(KindInsertRefused, RegistryInsert, "reserve", err)
	}
	log := logging.Log.WithField("locator", locator)
	log.WithField("state", stateReserved.String()).Debug("Entry reserved")

	if err := s.stream(ctx, locator, req, bmp); err != nil {
		s.rollback(context.WithoutCancel(ctx), locator, err)
		return newError(KindWriteFailure, RegistryInsert, "write", err)
	}
	log.WithField("state", stateWrittenPending.String()).Debug("Entry written")

	s.finalize(context.WithoutCancel(ctx), locator)
	return nil
}

func (s *Sequencer) stream(ctx context.Context, locator string, req SaveRequest, bmp *media.Bitmap) (err error) {
	out, err := s.registry.OpenWriter(ctx, locator)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if bmp != nil {
		return media.EncodePNG(out, bmp)
	}

	src, _ := req.Source().Get()
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = storage.CopyChunked(out, in, storage.RegistryChunkSize)
	return err
}

// rollback deletes a reserved entry after a failed write. Platforms without
// pending deletion keep it until it expires.
func (s *Sequencer) rollback(ctx context.Context, locator string, cause error) {
	log := logging.Log.WithError(cause).WithField("locator", locator)
	if !s.caps.PendingDelete {
		log.WithField("state", stateOrphaned.String()).Warn("Write failed, pending entry left until it expires")
		return
	}
	rows, err := s.registry.Delete(ctx, locator)
	if err != nil || rows == 0 {
		log.WithField("state", stateOrphaned.String()).WithField("delete_error", err).Warn("Write failed, could not delete pending entry")
		return
	}
	log.WithField("state", stateRolledBack.String()).Warn("Write failed, pending entry deleted")
}

// finalize clears the pending flag and expiry. Its outcome is logged only;
// once the write succeeded the save counts as successful.
func (s *Sequencer) finalize(ctx context.Context, locator string) {
	pending := false
	rows, err := s.registry.Update(ctx, locator, models.EntryUpdate{
		IsPending:    &pending,
		ClearExpires: true,
	})
	log := logging.Log.WithField("locator", locator)
	switch {
	case err != nil:
		log.WithError(err).Error("Finalize failed, entry stays pending")
	case rows == 0:
		log.Warn("Finalize updated no rows")
	default:
		log.WithField("state", stateCommitted.String()).Debug("Entry committed")
	}
}

func fileURI(p string) string {
	if p == "" {
		return ""
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
