package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
	"github.com/polkiloo/freshharvest/internal/pkg/idgen"
)

const (
	orderPrefix   = "ORD"
	paymentPrefix = "pay"
	firstNumber   = 1000
)

// Storage keeps every record in process memory. One mutex guards all maps so
// a balance check and its write never interleave with another charge.
type Storage struct {
	mu        sync.RWMutex
	customers map[string]model.Customer
	staff     map[string]model.Staff
	orders    map[string]model.Order
	payments  []model.Payment

	orderSeq   *idgen.Sequence
	paymentSeq *idgen.Sequence
}

type customerRepository struct{ storage *Storage }

type staffRepository struct{ storage *Storage }

type orderRepository struct{ storage *Storage }

type paymentRepository struct{ storage *Storage }

type idGenerator struct{ storage *Storage }

// New creates an empty store. Order numbers start at ORD1000 and payment ids at pay1000.
func New() *Storage {
	return &Storage{
		customers:  make(map[string]model.Customer),
		staff:      make(map[string]model.Staff),
		orders:     make(map[string]model.Order),
		orderSeq:   idgen.NewSequence(orderPrefix, firstNumber),
		paymentSeq: idgen.NewSequence(paymentPrefix, firstNumber),
	}
}

// Close is a no-op kept for parity with other backends.
func (s *Storage) Close() {}

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Staff() repository.StaffRepository {
	return &staffRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) IDs() repository.IDGenerator {
	return &idGenerator{storage: s}
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Get(ctx context.Context, id string) (*model.Customer, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	c, ok := r.storage.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepository) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	for _, c := range r.storage.customers {
		if strings.EqualFold(c.Username, username) {
			return &c, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *customerRepository) Put(ctx context.Context, customer *model.Customer) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	for id, c := range r.storage.customers {
		if id != customer.ID && customer.Username != "" && strings.EqualFold(c.Username, customer.Username) {
			return domainErrors.ErrAlreadyExists
		}
	}
	r.storage.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) Scan(ctx context.Context, match repository.Predicate[model.Customer]) ([]model.Customer, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	var result []model.Customer
	for _, c := range r.storage.customers {
		if match.Match(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *customerRepository) ChargeIfEligible(ctx context.Context, id string, amount, limit decimal.Decimal) (*model.Customer, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	c, ok := r.storage.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if c.Balance.Add(amount).GreaterThan(limit) {
		return nil, &domainErrors.EligibilityError{CustomerID: id, Amount: amount, Balance: c.Balance, Limit: limit}
	}
	c.Balance = c.Balance.Add(amount)
	r.storage.customers[id] = c
	return &c, nil
}

func (r *customerRepository) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (*model.Customer, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	c, ok := r.storage.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	c.Balance = c.Balance.Add(delta)
	r.storage.customers[id] = c
	return &c, nil
}

// --- StaffRepository implementation ---

func (r *staffRepository) Get(ctx context.Context, id string) (*model.Staff, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	s, ok := r.storage.staff[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &s, nil
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*model.Staff, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	for _, s := range r.storage.staff {
		if strings.EqualFold(s.Username, username) {
			return &s, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *staffRepository) Put(ctx context.Context, staff *model.Staff) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	for id, s := range r.storage.staff {
		if id != staff.ID && strings.EqualFold(s.Username, staff.Username) {
			return domainErrors.ErrAlreadyExists
		}
	}
	r.storage.staff[staff.ID] = *staff
	return nil
}

func (r *staffRepository) Scan(ctx context.Context, match repository.Predicate[model.Staff]) ([]model.Staff, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	var result []model.Staff
	for _, s := range r.storage.staff {
		if match.Match(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Get(ctx context.Context, number string) (*model.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	o, ok := r.storage.orders[number]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := o.Clone()
	return &clone, nil
}

func (r *orderRepository) Put(ctx context.Context, order *model.Order) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	if _, ok := r.storage.orders[order.Number]; ok {
		return domainErrors.ErrAlreadyExists
	}
	if n, ok := idgen.Parse(orderPrefix, order.Number); ok {
		r.storage.orderSeq.Advance(n)
	}
	r.storage.orders[order.Number] = order.Clone()
	return nil
}

func (r *orderRepository) Scan(ctx context.Context, match repository.Predicate[model.Order]) ([]model.Order, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	var result []model.Order
	for _, o := range r.storage.orders {
		if match.Match(o) {
			result = append(result, o.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Number < result[j].Number
	})
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, number string, status model.OrderStatus) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	o, ok := r.storage.orders[number]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	r.storage.orders[number] = o
	return nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) Put(ctx context.Context, payment *model.Payment) error {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	for _, p := range r.storage.payments {
		if p.ID == payment.ID {
			return domainErrors.ErrAlreadyExists
		}
	}
	r.storage.payments = append(r.storage.payments, clonePayment(*payment))
	return nil
}

func (r *paymentRepository) Scan(ctx context.Context, match repository.Predicate[model.Payment]) ([]model.Payment, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()
	var result []model.Payment
	for _, p := range r.storage.payments {
		if match.Match(p) {
			result = append(result, clonePayment(p))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func clonePayment(p model.Payment) model.Payment {
	if p.Credit != nil {
		card := *p.Credit
		p.Credit = &card
	}
	if p.Debit != nil {
		card := *p.Debit
		p.Debit = &card
	}
	return p
}

// --- IDGenerator implementation ---

func (g *idGenerator) NextOrderNumber(ctx context.Context) (string, error) {
	return g.storage.orderSeq.Next(), nil
}

func (g *idGenerator) NextPaymentID(ctx context.Context) (string, error) {
	return g.storage.paymentSeq.Next(), nil
}
