package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nfrund/safeonboard/internal/config"
	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/nfrund/safeonboard/internal/rendering"
	"github.com/nfrund/safeonboard/internal/storage"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// NewContainer builds the root DI scope holding the services shared by all
// modules. Services are constructed lazily on first invocation and shut
// down in reverse dependency order by RootScope.Shutdown.
func NewContainer(cfg config.Provider, logger *slog.Logger) *do.RootScope {
	i := do.New()

	do.ProvideValue[config.Provider](i, cfg)
	do.ProvideValue(i, logger)

	do.Provide(i, func(i do.Injector) (*pubsub.Tracing, error) {
		return pubsub.SetupOTel(context.Background(), pubsub.LoadTracingConfig(os.Getenv))
	})
	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		tracing := do.MustInvoke[*pubsub.Tracing](i)
		return pubsub.NewWatermillBridge(tracing.Tracer), nil
	})
	do.Provide(i, newStore)
	do.Provide(i, func(i do.Injector) (*storage.Attachments, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return storage.NewAttachments(do.MustInvoke[storage.Store](i), cfg.GetMaxUploadBytes()), nil
	})
	do.Provide(i, func(i do.Injector) (*rendering.UniversalRenderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})

	return i
}

func newStore(i do.Injector) (storage.Store, error) {
	cfg := do.MustInvoke[config.Provider](i)
	logger := do.MustInvoke[*slog.Logger](i)

	switch cfg.GetStorageBackend() {
	case config.StorageDisk:
		store, err := storage.NewDiskStore(cfg.GetStorageDir())
		if err != nil {
			return nil, fmt.Errorf("open upload directory %q: %w", cfg.GetStorageDir(), err)
		}
		logger.Info("Storing uploads on disk", "dir", cfg.GetStorageDir())
		return store, nil
	default:
		logger.Info("Storing uploads in memory")
		return storage.NewAferoStore(afero.NewMemMapFs()), nil
	}
}
