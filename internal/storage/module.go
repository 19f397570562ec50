package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
	"github.com/polkiloo/freshharvest/internal/storage/memory"
	"github.com/polkiloo/freshharvest/internal/storage/postgres"
)

// Backend is a repository factory that owns releasable resources.
type Backend interface {
	repository.Factory
	Close()
}

// Module wires the configured storage backend and its repository adapters.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(
		func(b Backend) repository.Factory { return b },
		func(b Backend) repository.CustomerRepository { return b.Customers() },
		func(b Backend) repository.StaffRepository { return b.Staff() },
		func(b Backend) repository.OrderRepository { return b.Orders() },
		func(b Backend) repository.PaymentRepository { return b.Payments() },
		func(b Backend) repository.IDGenerator { return b.IDs() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newBackend(p backendParams) (Backend, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("using in-memory storage")
		return memory.New(), nil
	}
	return postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func registerLifecycle(lc fx.Lifecycle, backend Backend) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if hc, ok := backend.(healthChecker); ok {
				return hc.HealthCheck(ctx)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
}
