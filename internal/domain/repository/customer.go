package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// CustomerRepository persists customer accounts and their balances.
type CustomerRepository interface {
	Get(ctx context.Context, id string) (*model.Customer, error)
	GetByUsername(ctx context.Context, username string) (*model.Customer, error)
	Put(ctx context.Context, customer *model.Customer) error
	Scan(ctx context.Context, match Predicate[model.Customer]) ([]model.Customer, error)
	// ChargeIfEligible adds amount to the balance only when the result stays
	// within limit. The check and the write happen atomically. A refused charge
	// returns *errors.EligibilityError.
	ChargeIfEligible(ctx context.Context, id string, amount, limit decimal.Decimal) (*model.Customer, error)
	// AdjustBalance adds delta (which may be negative) to the balance.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (*model.Customer, error)
}
