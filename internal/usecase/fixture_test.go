package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/storage/memory"
	testhelpers "github.com/polkiloo/freshharvest/internal/test"
)

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		DeliveryFee:    dec("10.00"),
		DeliveryRadius: 20,
		MaxOwing:       dec("100.00"),
	}
}

type fixture struct {
	store    *memory.Storage
	cfg      *config.Config
	cards    *CardValidator
	checkout *CheckoutUseCase
	ledger   *LedgerUseCase
	reports  *ReportUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	cfg := testConfig()
	cards := NewCardValidator(cfg)
	cards.now = func() time.Time { return fixedNow }

	f := &fixture{store: store, cfg: cfg, cards: cards}
	f.checkout = NewCheckoutUseCase(CheckoutDeps{
		Customers: store.Customers(),
		Orders:    store.Orders(),
		Payments:  store.Payments(),
		IDs:       store.IDs(),
		Catalog:   testhelpers.CatalogStub{},
		Cards:     cards,
		Config:    cfg,
		Logger:    discardLogger(),
	})
	f.checkout.now = func() time.Time { return fixedNow }
	f.ledger = NewLedgerUseCase(store.Customers(), store.Payments(), store.IDs(), cards, discardLogger())
	f.ledger.now = func() time.Time { return fixedNow }
	f.reports = NewReportUseCase(store.Orders(), store.Customers(), store.Payments(), discardLogger())

	f.addCustomer(t, model.CustomerProfile{ID: "P1000", Kind: model.CustomerPrivate, Name: "Sally Smith", Username: "privateSS",
		Address: "Distance 10", MaxOwing: dec("100")})
	f.addCustomer(t, model.CustomerProfile{ID: "P1001", Kind: model.CustomerPrivate, Name: "Tom Brown", Username: "privateTB",
		Address: "Distance 25", MaxOwing: dec("100")})
	f.addCustomer(t, model.CustomerProfile{ID: "C1000", Kind: model.CustomerCorporate, Name: "Kim King", Username: "corporateKK",
		Address: "Distance 30", MaxOwing: dec("100"), DiscountRate: dec("0.10")})
	f.addCustomer(t, model.CustomerProfile{ID: "C1001", Kind: model.CustomerCorporate, Name: "Luna Lory", Username: "corporateLL",
		Address: "Distance 20", MaxOwing: dec("100"), DiscountRate: dec("0.10")})
	return f
}

func (f *fixture) addCustomer(t *testing.T, p model.CustomerProfile) {
	t.Helper()
	c, err := model.NewCustomer(p, f.cfg.DeliveryRadius)
	require.NoError(t, err)
	require.NoError(t, f.store.Customers().Put(context.Background(), c))
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	c, err := f.store.Customers().Get(context.Background(), id)
	require.NoError(t, err)
	return c.Balance
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	orders, err := f.store.Orders().Scan(context.Background(), nil)
	require.NoError(t, err)
	return len(orders)
}

func weight(name, kilos string) CartLine {
	return CartLine{Type: "weight", Name: name, Quantity: dec(kilos)}
}

func unit(name string, n int64, price string) CartLine {
	line := CartLine{Type: "unit", Name: name, Quantity: decimal.NewFromInt(n)}
	if price != "" {
		line.UnitPrice = dec(price)
	}
	return line
}

func box(size string, n int64, contents ...string) CartLine {
	return CartLine{Type: "box", Name: size, Quantity: decimal.NewFromInt(n), Contents: contents}
}
