package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

// SettlementRequest pays down an account balance by card.
type SettlementRequest struct {
	CustomerID string
	Amount     decimal.Decimal
	Method     model.PaymentMethod
	Credit     *model.CreditCard
	Debit      *model.DebitCard
}

// LedgerUseCase manages customer account balances.
type LedgerUseCase struct {
	customers repository.CustomerRepository
	payments  repository.PaymentRepository
	ids       repository.IDGenerator
	cards     *CardValidator
	logger    *slog.Logger
	now       func() time.Time
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(customers repository.CustomerRepository, payments repository.PaymentRepository,
	ids repository.IDGenerator, cards *CardValidator, logger *slog.Logger) *LedgerUseCase {
	return &LedgerUseCase{customers: customers, payments: payments, ids: ids, cards: cards, logger: logger, now: time.Now}
}

// Balance returns the stored customer record.
func (u *LedgerUseCase) Balance(ctx context.Context, customerID string) (*model.Customer, error) {
	return u.customers.Get(ctx, customerID)
}

// CanPlaceOrder re-reads the balance and reports whether amount fits under the limit.
// The answer may be stale by the time a charge happens; ChargeIfEligible is the atomic form.
func (u *LedgerUseCase) CanPlaceOrder(ctx context.Context, customerID string, amount decimal.Decimal) (bool, error) {
	customer, err := u.customers.Get(ctx, customerID)
	if err != nil {
		return false, err
	}
	return customer.CanPlaceOrder(amount), nil
}

// ChargeToAccount adds amount to the balance without a limit check.
func (u *LedgerUseCase) ChargeToAccount(ctx context.Context, customerID string, amount decimal.Decimal) (*model.Customer, error) {
	if amount.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.customers.AdjustBalance(ctx, customerID, amount)
}

// ChargeIfEligible adds amount to the balance only when it stays within the limit.
func (u *LedgerUseCase) ChargeIfEligible(ctx context.Context, customerID string, amount decimal.Decimal) (*model.Customer, error) {
	if amount.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	customer, err := u.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return u.customers.ChargeIfEligible(ctx, customerID, amount, customer.MaxOwing)
}

// PayBalance records a card payment and lowers the balance by its amount.
func (u *LedgerUseCase) PayBalance(ctx context.Context, req SettlementRequest) (*model.Payment, *model.Customer, error) {
	amount := model.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, nil, domainErrors.ErrInvalidAmount
	}
	if !req.Method.IsCard() {
		return nil, nil, fmt.Errorf("%w: balance can only be paid by card", domainErrors.ErrInvalidPaymentMethod)
	}
	if err := u.cards.Validate(req.Method, req.Credit, req.Debit); err != nil {
		return nil, nil, err
	}
	if _, err := u.customers.Get(ctx, req.CustomerID); err != nil {
		return nil, nil, err
	}

	id, err := u.ids.NextPaymentID(ctx)
	if err != nil {
		return nil, nil, err
	}
	payment := newCardPayment(id, req.CustomerID, "", amount, u.now(), req.Method, req.Credit, req.Debit)

	customer, err := u.customers.AdjustBalance(ctx, req.CustomerID, amount.Neg())
	if err != nil {
		return nil, nil, err
	}
	if err := u.payments.Put(ctx, payment); err != nil {
		u.logger.Error("payment write failed after balance update",
			slog.String("customer", req.CustomerID),
			slog.String("amount", amount.StringFixed(2)),
			slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("store payment %s: %w", payment.ID, err)
	}

	u.logger.Info("balance payment recorded",
		slog.String("customer", req.CustomerID),
		slog.String("payment", payment.ID),
		slog.String("balance", customer.Balance.StringFixed(2)))
	return payment, customer, nil
}
