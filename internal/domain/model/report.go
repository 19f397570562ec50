package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView is the flat record shown in current and previous order lists.
type OrderView struct {
	Number       string
	CustomerID   string
	CustomerName string
	Date         time.Time
	Status       OrderStatus
	Items        string
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	DeliveryFee  decimal.Decimal
	Total        decimal.Decimal
}

// NewOrderView flattens an order.
func NewOrderView(o Order) OrderView {
	return OrderView{
		Number:       o.Number,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Date:         o.Date,
		Status:       o.Status,
		Items:        o.ItemSummary(),
		Subtotal:     o.Subtotal,
		Discount:     o.Discount,
		DeliveryFee:  o.DeliveryFee,
		Total:        o.TotalAmount,
	}
}

// OrderList is a report of orders. Error is set when the store could not be read.
type OrderList struct {
	Orders []OrderView
	Error  string
}

// SalesLine is one order in a sales report.
type SalesLine struct {
	Number       string
	CustomerName string
	Date         time.Time
	Corporate    bool
	Subtotal     decimal.Decimal
	DiscountRate decimal.Decimal
	Discount     decimal.Decimal
	SalesAmount  decimal.Decimal
}

// SalesReport sums sales amounts over an inclusive date range.
type SalesReport struct {
	Start time.Time
	End   time.Time
	Lines []SalesLine
	Total decimal.Decimal
	Error string
}

// ItemTally is the quantity sold of one item.
type ItemTally struct {
	Name     string
	Quantity decimal.Decimal
}

// PopularItems ranks vegetables and boxes separately.
type PopularItems struct {
	Vegetables []ItemTally
	Boxes      []ItemTally
	Error      string
}

// CustomerHistory lists a customer's orders and payments.
type CustomerHistory struct {
	Customer Customer
	Orders   []OrderView
	Payments []Payment
	Error    string
}
