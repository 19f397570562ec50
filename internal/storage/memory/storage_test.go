package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

var _ repository.Factory = (*Storage)(nil)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedCustomer(t *testing.T, s *Storage, id, username, balance string) {
	t.Helper()
	c := &model.Customer{ID: id, Kind: model.CustomerPrivate, Username: username, Balance: dec(balance), MaxOwing: dec("100")}
	if err := s.Customers().Put(context.Background(), c); err != nil {
		t.Fatalf("put customer: %v", err)
	}
}

func TestCustomerGetPutScan(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedCustomer(t, s, "P1001", "tom", "0")
	seedCustomer(t, s, "P1000", "sally", "5")

	got, err := s.Customers().Get(ctx, "P1000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "sally" || !got.Balance.Equal(dec("5")) {
		t.Fatalf("unexpected customer: %+v", got)
	}

	byName, err := s.Customers().GetByUsername(ctx, "TOM")
	if err != nil || byName.ID != "P1001" {
		t.Fatalf("unexpected lookup by username: %+v %v", byName, err)
	}

	if _, err := s.Customers().Get(ctx, "nope"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	all, err := s.Customers().Scan(ctx, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(all) != 2 || all[0].ID != "P1000" || all[1].ID != "P1001" {
		t.Fatalf("expected customers sorted by id, got %+v", all)
	}

	owing, err := s.Customers().Scan(ctx, func(c model.Customer) bool { return c.Balance.IsPositive() })
	if err != nil || len(owing) != 1 || owing[0].ID != "P1000" {
		t.Fatalf("unexpected filtered scan: %+v %v", owing, err)
	}
}

func TestCustomerPutRejectsDuplicateUsername(t *testing.T) {
	s := New()
	seedCustomer(t, s, "P1000", "sally", "0")
	err := s.Customers().Put(context.Background(), &model.Customer{ID: "P1002", Username: "Sally"})
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestReturnedCustomerIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedCustomer(t, s, "P1000", "sally", "0")
	got, _ := s.Customers().Get(ctx, "P1000")
	got.Balance = dec("99")
	again, _ := s.Customers().Get(ctx, "P1000")
	if !again.Balance.IsZero() {
		t.Fatalf("store must not alias returned records, got %s", again.Balance)
	}
}

func TestChargeIfEligible(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedCustomer(t, s, "P1000", "sally", "94")

	_, err := s.Customers().ChargeIfEligible(ctx, "P1000", dec("6.01"), dec("100"))
	var eligibility *domainErrors.EligibilityError
	if !errors.As(err, &eligibility) {
		t.Fatalf("expected eligibility error, got %v", err)
	}
	if !eligibility.Balance.Equal(dec("94")) || !eligibility.Limit.Equal(dec("100")) || !eligibility.Amount.Equal(dec("6.01")) {
		t.Fatalf("unexpected eligibility details: %+v", eligibility)
	}

	updated, err := s.Customers().ChargeIfEligible(ctx, "P1000", dec("6"), dec("100"))
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if !updated.Balance.Equal(dec("100")) {
		t.Fatalf("expected balance 100, got %s", updated.Balance)
	}

	if _, err := s.Customers().ChargeIfEligible(ctx, "nope", dec("1"), dec("100")); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChargeIfEligibleConcurrentChargesNeverExceedLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedCustomer(t, s, "P1000", "sally", "0")

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Customers().ChargeIfEligible(ctx, "P1000", dec("10"), dec("100"))
		}()
	}
	wg.Wait()

	got, _ := s.Customers().Get(ctx, "P1000")
	if !got.Balance.Equal(dec("100")) {
		t.Fatalf("expected exactly ten successful charges, balance %s", got.Balance)
	}
}

func TestAdjustBalance(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedCustomer(t, s, "P1000", "sally", "40")

	updated, err := s.Customers().AdjustBalance(ctx, "P1000", dec("-55.50"))
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if !updated.Balance.Equal(dec("-15.50")) {
		t.Fatalf("unexpected balance %s", updated.Balance)
	}
	if _, err := s.Customers().AdjustBalance(ctx, "nope", dec("1")); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStaffRepository(t *testing.T) {
	ctx := context.Background()
	s := New()
	staff := &model.Staff{ID: "S1000", Name: "John Doe", Username: "staffJD"}
	if err := s.Staff().Put(ctx, staff); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Staff().Put(ctx, &model.Staff{ID: "S1001", Username: "STAFFJD"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	got, err := s.Staff().GetByUsername(ctx, "staffjd")
	if err != nil || got.ID != "S1000" {
		t.Fatalf("unexpected staff lookup: %+v %v", got, err)
	}
	if _, err := s.Staff().Get(ctx, "S9"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	all, err := s.Staff().Scan(ctx, nil)
	if err != nil || len(all) != 1 {
		t.Fatalf("unexpected scan: %+v %v", all, err)
	}
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	customer := &model.Customer{ID: "P1000", Name: "Sally", Kind: model.CustomerPrivate}

	first := model.NewOrder("ORD1001", customer, model.DeliveryPickup, dec("10"), base.Add(time.Hour))
	first.SetItems([]model.LineItem{model.NewBoxItem(model.BoxSizeSmall, 1, dec("15"), []string{"Carrot", "Potato", "Onion"})})
	second := model.NewOrder("ORD1000", customer, model.DeliveryPickup, dec("10"), base)
	second.SetItems([]model.LineItem{model.NewUnitItem("Lettuce", 2, dec("1.50"))})

	for _, o := range []*model.Order{first, second} {
		if err := s.Orders().Put(ctx, o); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	first.Items[0].Contents[0] = "Mutated"
	if err := s.Orders().Put(ctx, second); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate order number to be rejected, got %v", err)
	}

	got, err := s.Orders().Get(ctx, "ORD1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Items[0].Contents[0] != "Carrot" {
		t.Fatalf("store must own its copy of the items, got %v", got.Items[0].Contents)
	}

	all, err := s.Orders().Scan(ctx, nil)
	if err != nil || len(all) != 2 || all[0].Number != "ORD1000" {
		t.Fatalf("expected orders oldest first, got %+v %v", all, err)
	}

	if err := s.Orders().UpdateStatus(ctx, "ORD1000", model.OrderStatusFulfilled); err != nil {
		t.Fatalf("update status: %v", err)
	}
	fulfilled, _ := s.Orders().Scan(ctx, func(o model.Order) bool { return o.Status == model.OrderStatusFulfilled })
	if len(fulfilled) != 1 || fulfilled[0].Number != "ORD1000" {
		t.Fatalf("unexpected fulfilled orders: %+v", fulfilled)
	}
	if err := s.Orders().UpdateStatus(ctx, "ORD9", model.OrderStatusFulfilled); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.Orders().Get(ctx, "ORD9"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIDGeneratorSkipsStoredNumbers(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, _ := s.IDs().NextOrderNumber(ctx)
	if first != "ORD1000" {
		t.Fatalf("expected ORD1000, got %s", first)
	}

	customer := &model.Customer{ID: "P1000"}
	if err := s.Orders().Put(ctx, model.NewOrder("ORD1010", customer, model.DeliveryPickup, dec("0"), time.Now())); err != nil {
		t.Fatalf("put: %v", err)
	}
	next, _ := s.IDs().NextOrderNumber(ctx)
	if next != "ORD1011" {
		t.Fatalf("expected ORD1011, got %s", next)
	}

	pay, _ := s.IDs().NextPaymentID(ctx)
	if pay != "pay1000" {
		t.Fatalf("expected pay1000, got %s", pay)
	}
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()
	later := &model.Payment{ID: "pay1001", CustomerID: "P1000", Amount: dec("5"), Date: now.Add(time.Minute), Method: model.PaymentDebitCard,
		Debit: &model.DebitCard{BankName: "ANZ", Number: "************5678"}}
	earlier := &model.Payment{ID: "pay1000", CustomerID: "C1000", Amount: dec("6"), Date: now, Method: model.PaymentCreditCard,
		Credit: &model.CreditCard{Number: "************1111", Type: model.CardVisa}}

	for _, p := range []*model.Payment{later, earlier} {
		if err := s.Payments().Put(ctx, p); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if err := s.Payments().Put(ctx, earlier); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate payment to be rejected, got %v", err)
	}

	all, err := s.Payments().Scan(ctx, nil)
	if err != nil || len(all) != 2 || all[0].ID != "pay1000" {
		t.Fatalf("expected payments oldest first, got %+v %v", all, err)
	}
	all[0].Credit.Number = "changed"

	mine, _ := s.Payments().Scan(ctx, func(p model.Payment) bool { return p.CustomerID == "C1000" })
	if len(mine) != 1 || mine[0].Credit.Number != "************1111" {
		t.Fatalf("unexpected payments: %+v", mine)
	}
}
