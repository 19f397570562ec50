package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
)

// CustomerKind distinguishes private and corporate accounts.
type CustomerKind string

const (
	CustomerPrivate   CustomerKind = "private"
	CustomerCorporate CustomerKind = "corporate"
)

// Customer is a store account. Balance is what the customer owes: positive
// means owing, negative means in credit.
type Customer struct {
	ID           string
	Kind         CustomerKind
	Name         string
	Username     string
	PasswordHash string
	Address      string
	Balance      decimal.Decimal
	MaxOwing     decimal.Decimal
	DiscountRate decimal.Decimal
	CanDeliver   bool
}

// CustomerProfile carries the fields needed to open an account.
type CustomerProfile struct {
	ID           string
	Kind         CustomerKind
	Name         string
	Username     string
	PasswordHash string
	Address      string
	Balance      decimal.Decimal
	MaxOwing     decimal.Decimal
	DiscountRate decimal.Decimal
}

// NewCustomer builds a customer and fixes delivery eligibility from the address
// against radiusKm. Private customers never carry a discount rate.
func NewCustomer(p CustomerProfile, radiusKm int) (*Customer, error) {
	c := &Customer{
		ID:           strings.TrimSpace(p.ID),
		Kind:         p.Kind,
		Name:         p.Name,
		Username:     strings.TrimSpace(p.Username),
		PasswordHash: p.PasswordHash,
		Address:      p.Address,
		Balance:      p.Balance,
		MaxOwing:     p.MaxOwing,
		CanDeliver:   CanDeliverTo(p.Address, radiusKm),
	}
	if c.ID == "" {
		return nil, errInvalidCustomer("missing id")
	}
	switch p.Kind {
	case CustomerPrivate:
		c.DiscountRate = decimal.Zero
	case CustomerCorporate:
		if p.DiscountRate.IsNegative() || p.DiscountRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, errInvalidCustomer("discount rate must be in [0, 1)")
		}
		c.DiscountRate = p.DiscountRate
	default:
		return nil, errInvalidCustomer("unknown kind " + strconv.Quote(string(p.Kind)))
	}
	return c, nil
}

// EffectiveDiscountRate is the rate applied to order subtotals. Only corporate
// accounts are discounted.
func (c *Customer) EffectiveDiscountRate() decimal.Decimal {
	switch c.Kind {
	case CustomerCorporate:
		return c.DiscountRate
	default:
		return decimal.Zero
	}
}

// CanPlaceOrder reports whether an order of amount keeps the balance within MaxOwing.
func (c *Customer) CanPlaceOrder(amount decimal.Decimal) bool {
	return c.Balance.Add(amount).LessThanOrEqual(c.MaxOwing)
}

// AddressDistance extracts the first number embedded in an address such as
// "Distance 10". ok is false when the address has no digits.
func AddressDistance(address string) (km int, ok bool) {
	start := strings.IndexAny(address, "0123456789")
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(address) && address[end] >= '0' && address[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(address[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CanDeliverTo reports whether address lies within radiusKm, inclusive.
// Addresses without a distance are never eligible.
func CanDeliverTo(address string, radiusKm int) bool {
	km, ok := AddressDistance(address)
	return ok && km <= radiusKm
}

func errInvalidCustomer(reason string) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrInvalidCustomer, reason)
}
