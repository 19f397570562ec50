package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/config"
	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
	pkgAuth "github.com/polkiloo/freshharvest/internal/pkg/auth"
	"github.com/polkiloo/freshharvest/internal/seed"
)

// SeedResult counts imported records.
type SeedResult struct {
	Staff     int
	Customers int
}

// SeedDeps groups the collaborators of SeedUseCase.
type SeedDeps struct {
	fx.In

	Customers repository.CustomerRepository
	Staff     repository.StaffRepository
	Hasher    pkgAuth.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// SeedUseCase imports account fixtures.
type SeedUseCase struct {
	customers repository.CustomerRepository
	staff     repository.StaffRepository
	hasher    pkgAuth.PasswordHasher
	radiusKm  int
	maxOwing  decimal.Decimal
	logger    *slog.Logger
}

// NewSeedUseCase constructs SeedUseCase.
func NewSeedUseCase(d SeedDeps) *SeedUseCase {
	return &SeedUseCase{
		customers: d.Customers,
		staff:     d.Staff,
		hasher:    d.Hasher,
		radiusKm:  d.Config.DeliveryRadius,
		maxOwing:  d.Config.MaxOwing,
		logger:    d.Logger,
	}
}

// Import writes every record of doc. Existing customers keep their balance so
// re-importing never rewrites the ledger.
func (u *SeedUseCase) Import(ctx context.Context, doc *seed.Document) (SeedResult, error) {
	var result SeedResult
	for _, record := range doc.Staff {
		joined, err := record.JoinedAt()
		if err != nil {
			return result, err
		}
		hash, err := u.hash(record.Password)
		if err != nil {
			return result, fmt.Errorf("staff %s: %w", record.ID, err)
		}
		staff := &model.Staff{
			ID:           record.ID,
			Name:         record.Name,
			Username:     record.Username,
			PasswordHash: hash,
			Department:   record.Department,
			JoinedAt:     joined,
		}
		if err := u.staff.Put(ctx, staff); err != nil {
			return result, fmt.Errorf("staff %s: %w", record.ID, err)
		}
		result.Staff++
	}

	for _, record := range doc.Customers {
		profile, err := record.Profile(u.maxOwing)
		if err != nil {
			return result, err
		}
		if profile.PasswordHash, err = u.hash(record.Password); err != nil {
			return result, fmt.Errorf("customer %s: %w", record.ID, err)
		}
		customer, err := model.NewCustomer(profile, u.radiusKm)
		if err != nil {
			return result, err
		}
		existing, err := u.customers.Get(ctx, customer.ID)
		switch {
		case err == nil:
			customer.Balance = existing.Balance
		case !errors.Is(err, domainErrors.ErrNotFound):
			return result, err
		}
		if err := u.customers.Put(ctx, customer); err != nil {
			return result, fmt.Errorf("customer %s: %w", record.ID, err)
		}
		result.Customers++
	}

	u.logger.Info("seed imported", slog.Int("staff", result.Staff), slog.Int("customers", result.Customers))
	return result, nil
}

// ImportFile loads a seed file and imports it.
func (u *SeedUseCase) ImportFile(ctx context.Context, path string) (SeedResult, error) {
	doc, err := seed.LoadFile(path)
	if err != nil {
		return SeedResult{}, err
	}
	return u.Import(ctx, doc)
}

func (u *SeedUseCase) hash(password string) (string, error) {
	if pkgAuth.IsHashed(password) {
		return password, nil
	}
	return u.hasher.Hash(password)
}
