package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/usecase"
)

// Module wires the storefront facade and its lifecycle hooks.
var Module = fx.Options(
	fx.Provide(NewStorefront),
	fx.Invoke(registerLifecycle),
)

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger
	Seeder    *usecase.SeedUseCase
	Config    *config.Config
}

// registerLifecycle imports the seed file on start when the store is in
// memory; a fresh process would otherwise have no accounts to log in with.
func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.DatabaseURI == "" && p.Config.SeedFile != "" {
				if _, err := p.Seeder.ImportFile(ctx, p.Config.SeedFile); err != nil {
					return err
				}
			}
			p.Logger.Debug("storefront started")
			return nil
		},
		OnStop: func(context.Context) error {
			p.Logger.Debug("storefront stopped")
			return nil
		},
	})
}
