// filepath: internal/cli/app.go
package cli

import (
	"context"
	"fmt"

	"gallerysaver/internal/audit"
	"gallerysaver/internal/config"
	"gallerysaver/internal/gallery"
	"gallerysaver/internal/logging"
	"gallerysaver/internal/media"
	"gallerysaver/internal/registry"
	"gallerysaver/internal/services"
	"gallerysaver/internal/storage"
)

// app holds the components shared by the commands.
type app struct {
	cfg          *config.Config
	caps         gallery.Capabilities
	registry     *registry.Repository // nil under the direct storage model
	saver        *gallery.Saver
	gallery      services.GalleryService
	housekeeping services.HousekeepingService
}

// newBlobStore creates the blob backend configured for registry entries.
func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.Registry.Backend {
	case config.BackendS3:
		return storage.NewS3BlobStore(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Prefix:          cfg.S3.Prefix,
		})
	default:
		return storage.NewLocalBlobStore(cfg.Storage.MediaRoot)
	}
}

// openRegistry opens the registry and applies pending migrations.
func openRegistry(ctx context.Context, cfg *config.Config) (*registry.Repository, error) {
	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	reg, err := registry.Open(cfg.Registry.Path, blobs, registry.Options{
		DisabledCollections: cfg.Registry.Disabled,
	})
	if err != nil {
		return nil, err
	}
	if err := reg.EnsureSchema(); err != nil {
		reg.Close()
		return nil, fmt.Errorf("failed to bootstrap registry: %w", err)
	}
	return reg, nil
}

// newApp wires the saver for the configured capabilities.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, caps: services.ResolveCapabilities(cfg)}
	logging.Log.Infof("Storage model: %s (api level %d, pending delete %t)", a.caps.Model, cfg.Storage.APILevel, a.caps.PendingDelete)

	var seqRegistry gallery.Registry
	if a.caps.Model == gallery.RegistryInsert {
		reg, err := openRegistry(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.registry = reg
		seqRegistry = reg
		a.housekeeping = services.NewHousekeepingService(reg, cfg.HousekeepingInterval, cfg.Housekeeping.Enabled)
	} else {
		a.housekeeping = services.NewHousekeepingService(nil, cfg.HousekeepingInterval, cfg.Housekeeping.Enabled)
	}

	a.saver = gallery.NewSaver(
		gallery.NewResolver(a.caps, cfg.Storage.MediaRoot, media.DefaultTable, nil),
		gallery.NewSequencer(a.caps, seqRegistry, media.StdDecoder{}, cfg.PendingTTLDuration),
	)
	a.gallery = services.NewGalleryService(a.saver, audit.NewLoggerAuditor(cfg.Logging.AuditEnabled))
	return a, nil
}

func (a *app) Close() {
	if a.registry != nil {
		if err := a.registry.Close(); err != nil {
			logging.Log.Warnf("Failed to close registry: %v", err)
		}
	}
}
