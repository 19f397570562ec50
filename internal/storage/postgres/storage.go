package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
	"github.com/polkiloo/freshharvest/internal/pkg/idgen"
)

const (
	orderPrefix   = "ORD"
	paymentPrefix = "pay-"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool     pgxPool
	logger   *slog.Logger
	payments *idgen.UUID
}

type customerRepository struct {
	storage *Storage
}

type staffRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type idGenerator struct {
	storage *Storage
}

type rowScanner interface {
	Scan(dest ...any) error
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := wrapPool(pool, logger)
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres storage ready", slog.String("host", cfg.ConnConfig.Host))
	return storage, nil
}

func wrapPool(pool pgxPool, logger *slog.Logger) *Storage {
	return &Storage{pool: pool, logger: logger, payments: idgen.NewUUID(paymentPrefix)}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

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

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            address TEXT NOT NULL,
            balance NUMERIC NOT NULL DEFAULT 0,
            max_owing NUMERIC NOT NULL,
            discount_rate NUMERIC NOT NULL DEFAULT 0,
            can_deliver BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS staff (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            department TEXT NOT NULL,
            joined_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            number TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL REFERENCES customers(id),
            customer_name TEXT NOT NULL,
            customer_kind TEXT NOT NULL,
            discount_rate NUMERIC NOT NULL,
            order_date TIMESTAMPTZ NOT NULL,
            delivery_method TEXT NOT NULL,
            status TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            items JSONB NOT NULL,
            delivery_fee NUMERIC NOT NULL,
            subtotal NUMERIC NOT NULL,
            discount NUMERIC NOT NULL,
            sales_amount NUMERIC NOT NULL,
            total_amount NUMERIC NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL REFERENCES customers(id),
            order_number TEXT NOT NULL DEFAULT '',
            amount NUMERIC NOT NULL,
            paid_at TIMESTAMPTZ NOT NULL,
            method TEXT NOT NULL,
            details JSONB NOT NULL
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq START WITH 1000`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, order_date)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, order_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_customer ON payments(customer_id, paid_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

const customerColumns = `id, kind, name, username, password_hash, address,
                         balance::text, max_owing::text, discount_rate::text, can_deliver`

func scanCustomer(row rowScanner) (*model.Customer, error) {
	var (
		c                       model.Customer
		kind                    string
		balance, maxOwing, rate string
	)
	if err := row.Scan(&c.ID, &kind, &c.Name, &c.Username, &c.PasswordHash, &c.Address,
		&balance, &maxOwing, &rate, &c.CanDeliver); err != nil {
		return nil, err
	}
	c.Kind = model.CustomerKind(kind)
	var err error
	if c.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("customer %s balance: %w", c.ID, err)
	}
	if c.MaxOwing, err = decimal.NewFromString(maxOwing); err != nil {
		return nil, fmt.Errorf("customer %s max owing: %w", c.ID, err)
	}
	if c.DiscountRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("customer %s discount rate: %w", c.ID, err)
	}
	return &c, nil
}

func (r *customerRepository) getBy(ctx context.Context, column string, value string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + column + `=$1`
	c, err := scanCustomer(r.storage.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*model.Customer, error) {
	return r.getBy(ctx, "id", id)
}

func (r *customerRepository) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	return r.getBy(ctx, "lower(username)", strings.ToLower(username))
}

func (r *customerRepository) Put(ctx context.Context, c *model.Customer) error {
	const query = `INSERT INTO customers (id, kind, name, username, password_hash, address, balance, max_owing, discount_rate, can_deliver)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   ON CONFLICT (id) DO UPDATE SET
                       kind = EXCLUDED.kind,
                       name = EXCLUDED.name,
                       username = EXCLUDED.username,
                       password_hash = EXCLUDED.password_hash,
                       address = EXCLUDED.address,
                       balance = EXCLUDED.balance,
                       max_owing = EXCLUDED.max_owing,
                       discount_rate = EXCLUDED.discount_rate,
                       can_deliver = EXCLUDED.can_deliver`
	_, err := r.storage.pool.Exec(ctx, query, c.ID, string(c.Kind), c.Name, c.Username, c.PasswordHash, c.Address,
		c.Balance.String(), c.MaxOwing.String(), c.DiscountRate.String(), c.CanDeliver)
	return mapWriteError(err)
}

func (r *customerRepository) Scan(ctx context.Context, match repository.Predicate[model.Customer]) ([]model.Customer, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		if match.Match(*c) {
			result = append(result, *c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *customerRepository) ChargeIfEligible(ctx context.Context, id string, amount, limit decimal.Decimal) (*model.Customer, error) {
	var charged *model.Customer
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		c, err := lockCustomer(ctx, tx, id)
		if err != nil {
			return err
		}
		if c.Balance.Add(amount).GreaterThan(limit) {
			return &domainErrors.EligibilityError{CustomerID: id, Amount: amount, Balance: c.Balance, Limit: limit}
		}
		if err := addBalance(ctx, tx, id, amount); err != nil {
			return err
		}
		c.Balance = c.Balance.Add(amount)
		charged = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return charged, nil
}

func (r *customerRepository) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (*model.Customer, error) {
	var adjusted *model.Customer
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		c, err := lockCustomer(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := addBalance(ctx, tx, id, delta); err != nil {
			return err
		}
		c.Balance = c.Balance.Add(delta)
		adjusted = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func lockCustomer(ctx context.Context, tx pgx.Tx, id string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1 FOR UPDATE`
	c, err := scanCustomer(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func addBalance(ctx context.Context, tx pgx.Tx, id string, delta decimal.Decimal) error {
	const query = `UPDATE customers SET balance = balance + $2 WHERE id=$1`
	_, err := tx.Exec(ctx, query, id, delta.String())
	return err
}

// --- StaffRepository implementation ---

const staffColumns = `id, name, username, password_hash, department, joined_at`

func scanStaff(row rowScanner) (*model.Staff, error) {
	var s model.Staff
	if err := row.Scan(&s.ID, &s.Name, &s.Username, &s.PasswordHash, &s.Department, &s.JoinedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) getBy(ctx context.Context, column, value string) (*model.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE ` + column + `=$1`
	s, err := scanStaff(r.storage.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *staffRepository) Get(ctx context.Context, id string) (*model.Staff, error) {
	return r.getBy(ctx, "id", id)
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*model.Staff, error) {
	return r.getBy(ctx, "lower(username)", strings.ToLower(username))
}

func (r *staffRepository) Put(ctx context.Context, s *model.Staff) error {
	const query = `INSERT INTO staff (id, name, username, password_hash, department, joined_at)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (id) DO UPDATE SET
                       name = EXCLUDED.name,
                       username = EXCLUDED.username,
                       password_hash = EXCLUDED.password_hash,
                       department = EXCLUDED.department,
                       joined_at = EXCLUDED.joined_at`
	_, err := r.storage.pool.Exec(ctx, query, s.ID, s.Name, s.Username, s.PasswordHash, s.Department, s.JoinedAt)
	return mapWriteError(err)
}

func (r *staffRepository) Scan(ctx context.Context, match repository.Predicate[model.Staff]) ([]model.Staff, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		if match.Match(*s) {
			result = append(result, *s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

const orderColumns = `number, customer_id, customer_name, customer_kind, discount_rate::text, order_date,
                      delivery_method, status, payment_method, items,
                      delivery_fee::text, subtotal::text, discount::text, sales_amount::text, total_amount::text`

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o                                  model.Order
		kind, method, status, payment      string
		items                              []byte
		rate, fee, sub, disc, sales, total string
	)
	if err := row.Scan(&o.Number, &o.CustomerID, &o.CustomerName, &kind, &rate, &o.Date,
		&method, &status, &payment, &items, &fee, &sub, &disc, &sales, &total); err != nil {
		return nil, err
	}
	o.CustomerKind = model.CustomerKind(kind)
	o.DeliveryMethod = model.DeliveryMethod(method)
	o.Status = model.OrderStatus(status)
	o.PaymentMethod = model.PaymentMethod(payment)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("order %s items: %w", o.Number, err)
	}
	amounts := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&o.DiscountRate, rate}, {&o.DeliveryFee, fee}, {&o.Subtotal, sub},
		{&o.Discount, disc}, {&o.SalesAmount, sales}, {&o.TotalAmount, total},
	}
	for _, a := range amounts {
		v, err := decimal.NewFromString(a.src)
		if err != nil {
			return nil, fmt.Errorf("order %s amount: %w", o.Number, err)
		}
		*a.dst = v
	}
	return &o, nil
}

func (r *orderRepository) Get(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number=$1`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Put(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	const query = `INSERT INTO orders (number, customer_id, customer_name, customer_kind, discount_rate, order_date,
                       delivery_method, status, payment_method, items,
                       delivery_fee, subtotal, discount, sales_amount, total_amount)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.storage.pool.Exec(ctx, query, o.Number, o.CustomerID, o.CustomerName, string(o.CustomerKind),
		o.DiscountRate.String(), o.Date, string(o.DeliveryMethod), string(o.Status), string(o.PaymentMethod), items,
		o.DeliveryFee.String(), o.Subtotal.String(), o.Discount.String(), o.SalesAmount.String(), o.TotalAmount.String())
	return mapWriteError(err)
}

func (r *orderRepository) Scan(ctx context.Context, match repository.Predicate[model.Order]) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		if match.Match(*o) {
			result = append(result, *o)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, number string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1 WHERE number=$2`
	tag, err := r.storage.pool.Exec(ctx, query, string(status), number)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- PaymentRepository implementation ---

type paymentDetails struct {
	Credit *model.CreditCard `json:"credit,omitempty"`
	Debit  *model.DebitCard  `json:"debit,omitempty"`
}

func (r *paymentRepository) Put(ctx context.Context, p *model.Payment) error {
	details, err := json.Marshal(paymentDetails{Credit: p.Credit, Debit: p.Debit})
	if err != nil {
		return fmt.Errorf("encode payment details: %w", err)
	}
	const query = `INSERT INTO payments (id, customer_id, order_number, amount, paid_at, method, details)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.storage.pool.Exec(ctx, query, p.ID, p.CustomerID, p.OrderNumber, p.Amount.String(), p.Date, string(p.Method), details)
	return mapWriteError(err)
}

func (r *paymentRepository) Scan(ctx context.Context, match repository.Predicate[model.Payment]) ([]model.Payment, error) {
	const query = `SELECT id, customer_id, order_number, amount::text, paid_at, method, details
                   FROM payments ORDER BY paid_at, id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var (
			p              model.Payment
			amount, method string
			details        []byte
		)
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.OrderNumber, &amount, &p.Date, &method, &details); err != nil {
			return nil, err
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("payment %s amount: %w", p.ID, err)
		}
		p.Method = model.PaymentMethod(method)
		var d paymentDetails
		if err := json.Unmarshal(details, &d); err != nil {
			return nil, fmt.Errorf("payment %s details: %w", p.ID, err)
		}
		p.Credit, p.Debit = d.Credit, d.Debit
		if match.Match(p) {
			result = append(result, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- IDGenerator implementation ---

func (g *idGenerator) NextOrderNumber(ctx context.Context) (string, error) {
	var n int64
	if err := g.storage.pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	return idgen.Format(orderPrefix, n), nil
}

func (g *idGenerator) NextPaymentID(ctx context.Context) (string, error) {
	return g.storage.payments.Next()
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
