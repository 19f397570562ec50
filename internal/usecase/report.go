package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

// ReportUseCase builds read-only views over stored orders. Store failures
// never escape: the report comes back empty with Error set.
type ReportUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	payments  repository.PaymentRepository
	logger    *slog.Logger
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(orders repository.OrderRepository, customers repository.CustomerRepository,
	payments repository.PaymentRepository, logger *slog.Logger) *ReportUseCase {
	return &ReportUseCase{orders: orders, customers: customers, payments: payments, logger: logger}
}

// CurrentOrders lists pending orders. An empty customerID lists every customer.
func (u *ReportUseCase) CurrentOrders(ctx context.Context, customerID string) model.OrderList {
	return u.orderList(ctx, "current orders", customerID, model.OrderStatusPending)
}

// PreviousOrders lists fulfilled orders. An empty customerID lists every customer.
func (u *ReportUseCase) PreviousOrders(ctx context.Context, customerID string) model.OrderList {
	return u.orderList(ctx, "previous orders", customerID, model.OrderStatusFulfilled)
}

func (u *ReportUseCase) orderList(ctx context.Context, name, customerID string, status model.OrderStatus) model.OrderList {
	orders, err := u.orders.Scan(ctx, func(o model.Order) bool {
		return o.Status == status && (customerID == "" || o.CustomerID == customerID)
	})
	if err != nil {
		return model.OrderList{Error: u.readFailure(name, err)}
	}
	list := model.OrderList{Orders: make([]model.OrderView, 0, len(orders))}
	for _, o := range orders {
		list.Orders = append(list.Orders, model.NewOrderView(o))
	}
	return list
}

// SalesReport sums sales amounts of orders dated between start and end,
// both days included.
func (u *ReportUseCase) SalesReport(ctx context.Context, start, end time.Time) model.SalesReport {
	report := model.SalesReport{Start: start, End: end, Total: decimal.Zero}
	from := startOfDay(start)
	until := startOfDay(end).AddDate(0, 0, 1)
	if !from.Before(until) {
		report.Error = "start date is after end date"
		return report
	}

	orders, err := u.orders.Scan(ctx, func(o model.Order) bool {
		return !o.Date.Before(from) && o.Date.Before(until)
	})
	if err != nil {
		report.Error = u.readFailure("sales report", err)
		return report
	}
	for _, o := range orders {
		report.Lines = append(report.Lines, model.SalesLine{
			Number:       o.Number,
			CustomerName: o.CustomerName,
			Date:         o.Date,
			Corporate:    o.IsCorporate(),
			Subtotal:     o.Subtotal,
			DiscountRate: o.DiscountRate,
			Discount:     o.Discount,
			SalesAmount:  o.SalesAmount,
		})
		report.Total = report.Total.Add(o.SalesAmount)
	}
	return report
}

// PopularItems ranks items by quantity sold. Box contents also count toward
// their vegetable; boxes are ranked on their own.
func (u *ReportUseCase) PopularItems(ctx context.Context) model.PopularItems {
	orders, err := u.orders.Scan(ctx, nil)
	if err != nil {
		return model.PopularItems{Error: u.readFailure("popular items", err)}
	}

	vegetables := make(map[string]decimal.Decimal)
	boxes := make(map[string]decimal.Decimal)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Kind != model.LineItemBox {
				vegetables[item.Name] = vegetables[item.Name].Add(item.Quantity)
				continue
			}
			boxes[item.Name] = boxes[item.Name].Add(item.Quantity)
			for _, content := range item.Contents {
				vegetables[content] = vegetables[content].Add(item.Quantity)
			}
		}
	}
	return model.PopularItems{Vegetables: rank(vegetables), Boxes: rank(boxes)}
}

// CustomerHistory returns a customer with all of their orders and payments.
func (u *ReportUseCase) CustomerHistory(ctx context.Context, customerID string) model.CustomerHistory {
	customer, err := u.customers.Get(ctx, customerID)
	if err != nil {
		return model.CustomerHistory{Error: u.readFailure("customer history", err)}
	}
	history := model.CustomerHistory{Customer: *customer}

	orders, err := u.orders.Scan(ctx, func(o model.Order) bool { return o.CustomerID == customerID })
	if err != nil {
		history.Error = u.readFailure("customer history", err)
		return history
	}
	for _, o := range orders {
		history.Orders = append(history.Orders, model.NewOrderView(o))
	}

	payments, err := u.payments.Scan(ctx, func(p model.Payment) bool { return p.CustomerID == customerID })
	if err != nil {
		history.Error = u.readFailure("customer history", err)
		return history
	}
	history.Payments = payments
	return history
}

func (u *ReportUseCase) readFailure(report string, err error) string {
	u.logger.Error("report read failed", slog.String("report", report), slog.String("error", err.Error()))
	return err.Error()
}

func rank(tally map[string]decimal.Decimal) []model.ItemTally {
	ranked := make([]model.ItemTally, 0, len(tally))
	for name, qty := range tally {
		ranked = append(ranked, model.ItemTally{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Quantity.Cmp(ranked[j].Quantity); c != 0 {
			return c > 0
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
