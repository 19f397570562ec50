package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
)

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
)

// DeliveryMethod is how the customer receives the order.
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

// ParseDeliveryMethod validates a delivery method name.
func ParseDeliveryMethod(s string) (DeliveryMethod, bool) {
	switch m := DeliveryMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case DeliveryPickup, DeliveryDelivery:
		return m, true
	}
	return "", false
}

// FeeFor returns the flat fee for delivery and nothing for pickup.
func (m DeliveryMethod) FeeFor(flatFee decimal.Decimal) decimal.Decimal {
	if m == DeliveryDelivery {
		return flatFee
	}
	return decimal.Zero
}

// Order is a confirmed purchase. Amounts are derived by SetItems and frozen
// once the order is stored; only Status changes afterwards.
type Order struct {
	Number         string
	CustomerID     string
	CustomerName   string
	CustomerKind   CustomerKind
	DiscountRate   decimal.Decimal
	Date           time.Time
	DeliveryMethod DeliveryMethod
	Status         OrderStatus
	PaymentMethod  PaymentMethod
	Items          []LineItem
	DeliveryFee    decimal.Decimal
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	SalesAmount    decimal.Decimal
	TotalAmount    decimal.Decimal
}

// NewOrder opens a pending order for customer. The delivery fee and discount
// rate are captured now and never change for this order.
func NewOrder(number string, customer *Customer, method DeliveryMethod, flatFee decimal.Decimal, date time.Time) *Order {
	o := &Order{
		Number:         number,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerKind:   customer.Kind,
		DiscountRate:   customer.EffectiveDiscountRate(),
		Date:           date,
		DeliveryMethod: method,
		Status:         OrderStatusPending,
		DeliveryFee:    method.FeeFor(flatFee),
	}
	o.SetItems(nil)
	return o
}

// SetItems replaces the line items and recomputes, in order, subtotal,
// discount, sales amount and total. The discount is the only rounded step.
func (o *Order) SetItems(items []LineItem) {
	o.Items = make([]LineItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		item = item.Clone()
		item.CalculateTotal()
		subtotal = subtotal.Add(item.TotalPrice)
		o.Items = append(o.Items, item)
	}
	o.Subtotal = subtotal
	o.Discount = RoundMoney(subtotal.Mul(o.DiscountRate))
	o.SalesAmount = o.Subtotal.Sub(o.Discount)
	o.TotalAmount = o.SalesAmount.Add(o.DeliveryFee)
}

// Fulfill moves a pending order to fulfilled.
func (o *Order) Fulfill() error {
	if o.Status != OrderStatusPending {
		return domainErrors.ErrInvalidStatusTransition
	}
	o.Status = OrderStatusFulfilled
	return nil
}

// IsCorporate reports whether the order was placed on a corporate account.
func (o *Order) IsCorporate() bool {
	return o.CustomerKind == CustomerCorporate
}

// ItemSummary joins the line presentations into one line.
func (o *Order) ItemSummary() string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, "; ")
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.Clone())
	}
	o.Items = items
	return o
}
