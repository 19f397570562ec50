package di

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/freshharvest/internal/app"
	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	pkgAuth "github.com/polkiloo/freshharvest/internal/pkg/auth"
	"github.com/polkiloo/freshharvest/internal/test"
	"github.com/polkiloo/freshharvest/internal/usecase"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ItemsFile = filepath.Join("..", "..", "static", "veggies.txt")
	cfg.BoxesFile = filepath.Join("..", "..", "static", "premadeboxes.txt")
	cfg.SeedFile = filepath.Join("..", "..", "static", "seed.yaml")
	return cfg
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var storefront *app.Storefront
	fxApp := fxtest.New(t,
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(testConfig(),
			fx.Replace(logger),
			fx.Decorate(func(pkgAuth.PasswordHasher) pkgAuth.PasswordHasher { return test.HasherStub{} }),
		),
		fx.Populate(&storefront),
	)
	fxApp.RequireStart()
	t.Cleanup(fxApp.RequireStop)

	if storefront == nil {
		t.Fatal("expected storefront instance")
	}
	identity, err := storefront.Login(context.Background(), pkgAuth.RoleCustomer, "corporateLL", "12345")
	if err != nil {
		t.Fatalf("login against seeded store failed: %v", err)
	}

	result, err := storefront.Checkout(context.Background(), identity.Token, usecase.CheckoutRequest{
		Cart:   usecase.Cart{Lines: []usecase.CartLine{{Name: "Large Box", Quantity: decimal.NewFromInt(1)}}},
		Method: model.PaymentAccount,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Order.Number != "ORD1000" {
		t.Fatalf("unexpected order number %q", result.Order.Number)
	}
	if got := result.Order.TotalAmount.StringFixed(2); got != "31.50" {
		t.Fatalf("unexpected total %s", got)
	}
}

func TestModuleFailsWithoutCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.ItemsFile = filepath.Join(t.TempDir(), "missing.txt")

	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(cfg, fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil)))),
	)
	if err := fxApp.Err(); err != nil {
		t.Fatalf("graph should build, got %v", err)
	}
	if err := fxApp.Start(context.Background()); err == nil {
		_ = fxApp.Stop(context.Background())
		t.Fatal("expected start to fail when the catalog cannot be read")
	}
}
