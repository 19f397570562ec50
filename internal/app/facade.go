package app

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/catalog"
	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	pkgAuth "github.com/polkiloo/freshharvest/internal/pkg/auth"
	"github.com/polkiloo/freshharvest/internal/usecase"
)

// Storefront is the single entry point used by the command line. Every
// operation except Login and Seed takes a session token and checks its role.
type Storefront struct {
	auth        *usecase.AuthUseCase
	checkout    *usecase.CheckoutUseCase
	ledger      *usecase.LedgerUseCase
	fulfillment *usecase.FulfillmentUseCase
	reports     *usecase.ReportUseCase
	directory   *usecase.DirectoryUseCase
	seeder      *usecase.SeedUseCase
	catalog     *catalog.Store
}

// StorefrontDeps groups the use cases behind the facade.
type StorefrontDeps struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Checkout    *usecase.CheckoutUseCase
	Ledger      *usecase.LedgerUseCase
	Fulfillment *usecase.FulfillmentUseCase
	Reports     *usecase.ReportUseCase
	Directory   *usecase.DirectoryUseCase
	Seeder      *usecase.SeedUseCase
	Catalog     *catalog.Store
}

func NewStorefront(d StorefrontDeps) *Storefront {
	return &Storefront{
		auth:        d.Auth,
		checkout:    d.Checkout,
		ledger:      d.Ledger,
		fulfillment: d.Fulfillment,
		reports:     d.Reports,
		directory:   d.Directory,
		seeder:      d.Seeder,
		catalog:     d.Catalog,
	}
}

func (s *Storefront) Login(ctx context.Context, role pkgAuth.Role, username, password string) (*usecase.Identity, error) {
	return s.auth.Login(ctx, role, username, password)
}

func (s *Storefront) Session(token string) (pkgAuth.Session, error) {
	return s.auth.ParseToken(token)
}

func (s *Storefront) Seed(ctx context.Context, path string) (usecase.SeedResult, error) {
	return s.seeder.ImportFile(ctx, path)
}

func (s *Storefront) Catalog() *model.Catalog {
	return s.catalog.Current()
}

// ReloadCatalog re-reads the price files. Staff only.
func (s *Storefront) ReloadCatalog(token string) (*model.Catalog, error) {
	if _, err := s.auth.Authorize(token, pkgAuth.RoleStaff); err != nil {
		return nil, err
	}
	return s.catalog.Reload()
}

func (s *Storefront) Quote(ctx context.Context, token string, cart usecase.Cart) (*model.Order, error) {
	session, err := s.auth.Authorize(token, pkgAuth.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.checkout.Quote(ctx, session.Subject, cart)
}

// Checkout places an order for the customer owning token; req.CustomerID is ignored.
func (s *Storefront) Checkout(ctx context.Context, token string, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error) {
	session, err := s.auth.Authorize(token, pkgAuth.RoleCustomer)
	if err != nil {
		return nil, err
	}
	req.CustomerID = session.Subject
	return s.checkout.Checkout(ctx, req)
}

func (s *Storefront) Balance(ctx context.Context, token string) (*model.Customer, error) {
	session, err := s.auth.Authorize(token, pkgAuth.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return s.ledger.Balance(ctx, session.Subject)
}

func (s *Storefront) PayBalance(ctx context.Context, token string, req usecase.SettlementRequest) (*model.Payment, *model.Customer, error) {
	session, err := s.auth.Authorize(token, pkgAuth.RoleCustomer)
	if err != nil {
		return nil, nil, err
	}
	req.CustomerID = session.Subject
	return s.ledger.PayBalance(ctx, req)
}

func (s *Storefront) Fulfill(ctx context.Context, token, number string) (*model.Order, error) {
	if _, err := s.auth.Authorize(token, pkgAuth.RoleStaff); err != nil {
		return nil, err
	}
	return s.fulfillment.Fulfill(ctx, number)
}

// CurrentOrders lists pending orders. Customers only see their own; staff see
// customerID's orders or everyone's when it is empty.
func (s *Storefront) CurrentOrders(ctx context.Context, token, customerID string) (model.OrderList, error) {
	scope, err := s.scope(token, customerID)
	if err != nil {
		return model.OrderList{}, err
	}
	return s.reports.CurrentOrders(ctx, scope), nil
}

// PreviousOrders lists fulfilled orders with the same scoping as CurrentOrders.
func (s *Storefront) PreviousOrders(ctx context.Context, token, customerID string) (model.OrderList, error) {
	scope, err := s.scope(token, customerID)
	if err != nil {
		return model.OrderList{}, err
	}
	return s.reports.PreviousOrders(ctx, scope), nil
}

func (s *Storefront) CustomerHistory(ctx context.Context, token, customerID string) (model.CustomerHistory, error) {
	scope, err := s.scope(token, customerID)
	if err != nil {
		return model.CustomerHistory{}, err
	}
	if scope == "" {
		return model.CustomerHistory{}, domainErrors.ErrNotFound
	}
	return s.reports.CustomerHistory(ctx, scope), nil
}

func (s *Storefront) SalesReport(ctx context.Context, token string, start, end time.Time) (model.SalesReport, error) {
	if _, err := s.auth.Authorize(token, pkgAuth.RoleStaff); err != nil {
		return model.SalesReport{}, err
	}
	return s.reports.SalesReport(ctx, start, end), nil
}

func (s *Storefront) PopularItems(ctx context.Context, token string) (model.PopularItems, error) {
	if _, err := s.auth.Authorize(token, pkgAuth.RoleStaff); err != nil {
		return model.PopularItems{}, err
	}
	return s.reports.PopularItems(ctx), nil
}

func (s *Storefront) Customers(ctx context.Context, token string, kind model.CustomerKind) ([]model.Customer, error) {
	if _, err := s.auth.Authorize(token, pkgAuth.RoleStaff); err != nil {
		return nil, err
	}
	return s.directory.Customers(ctx, kind)
}

func (s *Storefront) scope(token, customerID string) (string, error) {
	session, err := s.auth.Authorize(token, pkgAuth.RoleStaff, pkgAuth.RoleCustomer)
	if err != nil {
		return "", err
	}
	if session.Role == pkgAuth.RoleStaff {
		return customerID, nil
	}
	if customerID != "" && customerID != session.Subject {
		return "", domainErrors.ErrForbidden
	}
	return session.Subject, nil
}
