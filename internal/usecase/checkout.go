package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/config"
	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

// CheckoutRequest is a cart submitted for purchase.
type CheckoutRequest struct {
	CustomerID string
	Cart       Cart
	Method     model.PaymentMethod
	Credit     *model.CreditCard
	Debit      *model.DebitCard
}

// CheckoutResult is a stored order and, for card purchases, its payment.
type CheckoutResult struct {
	Order   *model.Order
	Payment *model.Payment
}

// CheckoutDeps groups the collaborators of CheckoutUseCase.
type CheckoutDeps struct {
	fx.In

	Customers repository.CustomerRepository
	Orders    repository.OrderRepository
	Payments  repository.PaymentRepository
	IDs       repository.IDGenerator
	Catalog   CatalogSource
	Cards     *CardValidator
	Config    *config.Config
	Logger    *slog.Logger
}

// CheckoutUseCase prices carts and turns them into orders.
type CheckoutUseCase struct {
	customers   repository.CustomerRepository
	orders      repository.OrderRepository
	payments    repository.PaymentRepository
	ids         repository.IDGenerator
	catalog     CatalogSource
	cards       *CardValidator
	deliveryFee decimal.Decimal
	logger      *slog.Logger
	now         func() time.Time
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(d CheckoutDeps) *CheckoutUseCase {
	return &CheckoutUseCase{
		customers:   d.Customers,
		orders:      d.Orders,
		payments:    d.Payments,
		ids:         d.IDs,
		catalog:     d.Catalog,
		cards:       d.Cards,
		deliveryFee: d.Config.DeliveryFee,
		logger:      d.Logger,
		now:         time.Now,
	}
}

// Quote prices a cart without storing anything. It fails with an
// EligibilityError when the total would take the customer past the limit.
func (u *CheckoutUseCase) Quote(ctx context.Context, customerID string, cart Cart) (*model.Order, error) {
	customer, order, err := u.price(ctx, customerID, cart)
	if err != nil {
		return nil, err
	}
	if err := eligibility(customer, order.TotalAmount); err != nil {
		return nil, err
	}
	return order, nil
}

// Checkout prices the cart, checks eligibility, takes payment and stores the
// order. Nothing is written when any check fails.
func (u *CheckoutUseCase) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	customer, order, err := u.price(ctx, req.CustomerID, req.Cart)
	if err != nil {
		return nil, err
	}
	if err := eligibility(customer, order.TotalAmount); err != nil {
		u.logger.Info("checkout refused",
			slog.String("customer", customer.ID),
			slog.String("error", err.Error()))
		return nil, err
	}
	if err := u.cards.Validate(req.Method, req.Credit, req.Debit); err != nil {
		return nil, err
	}

	number, err := u.ids.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}
	order.Number = number
	order.PaymentMethod = req.Method

	var payment *model.Payment
	if req.Method == model.PaymentAccount {
		if _, err := u.customers.ChargeIfEligible(ctx, customer.ID, order.TotalAmount, customer.MaxOwing); err != nil {
			return nil, err
		}
	} else {
		payment, err = u.newPayment(ctx, customer.ID, order.Number, order.TotalAmount, req.Method, req.Credit, req.Debit)
		if err != nil {
			return nil, err
		}
	}

	// The charge and the writes below are separate store operations.
	if err := u.orders.Put(ctx, order); err != nil {
		u.logger.Error("order write failed after payment",
			slog.String("order", order.Number),
			slog.String("customer", customer.ID),
			slog.String("amount", order.TotalAmount.StringFixed(2)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("store order %s: %w", order.Number, err)
	}
	if payment != nil {
		if err := u.payments.Put(ctx, payment); err != nil {
			u.logger.Error("payment write failed after order",
				slog.String("order", order.Number),
				slog.String("payment", payment.ID),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("store payment %s: %w", payment.ID, err)
		}
	}

	u.logger.Info("order placed",
		slog.String("order", order.Number),
		slog.String("customer", customer.ID),
		slog.String("method", string(req.Method)),
		slog.String("total", order.TotalAmount.StringFixed(2)))
	return &CheckoutResult{Order: order, Payment: payment}, nil
}

func (u *CheckoutUseCase) price(ctx context.Context, customerID string, cart Cart) (*model.Customer, *model.Order, error) {
	customer, err := u.customers.Get(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}

	method := cart.Delivery
	if method == "" {
		method = model.DeliveryPickup
	}
	if _, ok := model.ParseDeliveryMethod(string(method)); !ok {
		return nil, nil, fmt.Errorf("%w: unknown delivery method %q", domainErrors.ErrDeliveryUnavailable, method)
	}
	if method == model.DeliveryDelivery && !customer.CanDeliver {
		return nil, nil, fmt.Errorf("%w: %s", domainErrors.ErrDeliveryUnavailable, customer.Address)
	}

	items, err := BuildLineItems(u.catalog.Current(), cart.Lines)
	if err != nil {
		return nil, nil, err
	}

	order := model.NewOrder("", customer, method, u.deliveryFee, u.now())
	order.SetItems(items)
	if !order.TotalAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: order total %s", domainErrors.ErrInvalidAmount, model.FormatMoney(order.TotalAmount))
	}
	return customer, order, nil
}

func (u *CheckoutUseCase) newPayment(ctx context.Context, customerID, orderNumber string, amount decimal.Decimal,
	method model.PaymentMethod, credit *model.CreditCard, debit *model.DebitCard) (*model.Payment, error) {
	id, err := u.ids.NextPaymentID(ctx)
	if err != nil {
		return nil, err
	}
	return newCardPayment(id, customerID, orderNumber, amount, u.now(), method, credit, debit), nil
}

func newCardPayment(id, customerID, orderNumber string, amount decimal.Decimal, date time.Time,
	method model.PaymentMethod, credit *model.CreditCard, debit *model.DebitCard) *model.Payment {
	p := &model.Payment{
		ID:          id,
		CustomerID:  customerID,
		OrderNumber: orderNumber,
		Amount:      amount,
		Date:        date,
		Method:      method,
	}
	switch method {
	case model.PaymentCreditCard:
		card := credit.Redacted()
		p.Credit = &card
	case model.PaymentDebitCard:
		card := debit.Redacted()
		p.Debit = &card
	}
	return p
}

func eligibility(customer *model.Customer, amount decimal.Decimal) error {
	if customer.CanPlaceOrder(amount) {
		return nil
	}
	return &domainErrors.EligibilityError{
		CustomerID: customer.ID,
		Amount:     amount,
		Balance:    customer.Balance,
		Limit:      customer.MaxOwing,
	}
}
