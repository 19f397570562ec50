package test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

// CustomerRepositoryStub wraps a real repository and injects failures.
type CustomerRepositoryStub struct {
	repository.CustomerRepository
	GetErr    error
	ScanErr   error
	ChargeErr error
	Charges   int
}

// Get returns GetErr when set.
func (s *CustomerRepositoryStub) Get(ctx context.Context, id string) (*model.Customer, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.CustomerRepository.Get(ctx, id)
}

// Scan returns ScanErr when set.
func (s *CustomerRepositoryStub) Scan(ctx context.Context, match repository.Predicate[model.Customer]) ([]model.Customer, error) {
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	return s.CustomerRepository.Scan(ctx, match)
}

// ChargeIfEligible counts calls and returns ChargeErr when set.
func (s *CustomerRepositoryStub) ChargeIfEligible(ctx context.Context, id string, amount, limit decimal.Decimal) (*model.Customer, error) {
	s.Charges++
	if s.ChargeErr != nil {
		return nil, s.ChargeErr
	}
	return s.CustomerRepository.ChargeIfEligible(ctx, id, amount, limit)
}

// OrderRepositoryStub wraps a real repository and injects failures.
type OrderRepositoryStub struct {
	repository.OrderRepository
	PutErr    error
	ScanErr   error
	UpdateErr error
}

// Put returns PutErr when set.
func (s *OrderRepositoryStub) Put(ctx context.Context, order *model.Order) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	return s.OrderRepository.Put(ctx, order)
}

// Scan returns ScanErr when set.
func (s *OrderRepositoryStub) Scan(ctx context.Context, match repository.Predicate[model.Order]) ([]model.Order, error) {
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	return s.OrderRepository.Scan(ctx, match)
}

// UpdateStatus returns UpdateErr when set.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, number string, status model.OrderStatus) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	return s.OrderRepository.UpdateStatus(ctx, number, status)
}

// PaymentRepositoryStub wraps a real repository and injects failures.
type PaymentRepositoryStub struct {
	repository.PaymentRepository
	PutErr  error
	ScanErr error
}

// Put returns PutErr when set.
func (s *PaymentRepositoryStub) Put(ctx context.Context, payment *model.Payment) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	return s.PaymentRepository.Put(ctx, payment)
}

// Scan returns ScanErr when set.
func (s *PaymentRepositoryStub) Scan(ctx context.Context, match repository.Predicate[model.Payment]) ([]model.Payment, error) {
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	return s.PaymentRepository.Scan(ctx, match)
}

// IDGeneratorStub hands out sequential identifiers starting at Next.
type IDGeneratorStub struct {
	Next int64
	Err  error
}

// NextOrderNumber returns "ORD<n>".
func (s *IDGeneratorStub) NextOrderNumber(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Next++
	return fmt.Sprintf("ORD%d", s.Next), nil
}

// NextPaymentID returns "pay<n>".
func (s *IDGeneratorStub) NextPaymentID(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Next++
	return fmt.Sprintf("pay%d", s.Next), nil
}

var _ repository.IDGenerator = (*IDGeneratorStub)(nil)
