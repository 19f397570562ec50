package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/app"
	"github.com/polkiloo/freshharvest/internal/catalog"
	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/logger"
	"github.com/polkiloo/freshharvest/internal/pkg/auth"
	"github.com/polkiloo/freshharvest/internal/storage"
	"github.com/polkiloo/freshharvest/internal/usecase"
)

// Module composes the whole application graph around cfg. Extra options are
// appended last so tests can replace providers.
func Module(cfg *config.Config, opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module(cfg),
		logger.Module,
		auth.Module,
		catalog.Module,
		storage.Module,
		usecase.Module,
		fx.Provide(func(store *catalog.Store) usecase.CatalogSource { return store }),
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
