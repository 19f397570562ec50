package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

// FulfillmentUseCase moves orders through their status lifecycle.
type FulfillmentUseCase struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewFulfillmentUseCase constructs FulfillmentUseCase.
func NewFulfillmentUseCase(orders repository.OrderRepository, logger *slog.Logger) *FulfillmentUseCase {
	return &FulfillmentUseCase{orders: orders, logger: logger}
}

// Fulfill marks a pending order as fulfilled. Fulfilled orders are rejected
// with ErrInvalidStatusTransition.
func (u *FulfillmentUseCase) Fulfill(ctx context.Context, number string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := order.Fulfill(); err != nil {
		return nil, err
	}
	if err := u.orders.UpdateStatus(ctx, order.Number, order.Status); err != nil {
		return nil, err
	}
	u.logger.Info("order fulfilled", slog.String("order", order.Number), slog.String("customer", order.CustomerID))
	return order, nil
}
