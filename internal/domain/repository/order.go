package repository

import (
	"context"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// OrderRepository persists orders. Scan returns orders oldest first.
type OrderRepository interface {
	Get(ctx context.Context, number string) (*model.Order, error)
	Put(ctx context.Context, order *model.Order) error
	Scan(ctx context.Context, match Predicate[model.Order]) ([]model.Order, error)
	UpdateStatus(ctx context.Context, number string, status model.OrderStatus) error
}
