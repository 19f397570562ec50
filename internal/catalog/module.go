package catalog

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/config"
)

// Module provides the catalog store and loads it when the application starts.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

func newStore(cfg *config.Config, logger *slog.Logger) *Store {
	return NewStore(cfg.ItemsFile, cfg.BoxesFile, logger)
}

func registerLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			_, err := store.Reload()
			return err
		},
	})
}
