package repository

import (
	"context"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// PaymentRepository persists card payments. Scan returns payments oldest first.
type PaymentRepository interface {
	Put(ctx context.Context, payment *model.Payment) error
	Scan(ctx context.Context, match Predicate[model.Payment]) ([]model.Payment, error)
}
