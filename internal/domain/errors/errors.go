package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyExists           = errors.New("already exists")
	ErrNotFound                = errors.New("record not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrForbidden               = errors.New("operation not permitted for this role")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrConfigurationNotFound   = errors.New("configuration not found")
	ErrConfigurationParse      = errors.New("configuration parse error")
	ErrEligibilityDenied       = errors.New("eligibility denied")
	ErrDeliveryUnavailable     = errors.New("delivery unavailable for customer address")
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrUnknownItem             = errors.New("unknown catalog item")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidCard             = errors.New("invalid card details")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidCustomer         = errors.New("invalid customer")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// EligibilityError explains why an order was refused by the credit limit check.
type EligibilityError struct {
	CustomerID string
	Amount     decimal.Decimal
	Balance    decimal.Decimal
	Limit      decimal.Decimal
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("eligibility denied for customer %s: balance $%s + order $%s exceeds limit $%s",
		e.CustomerID, e.Balance.StringFixed(2), e.Amount.StringFixed(2), e.Limit.StringFixed(2))
}

func (e *EligibilityError) Unwrap() error {
	return ErrEligibilityDenied
}

// Available returns how much more the customer may owe before reaching the limit.
func (e *EligibilityError) Available() decimal.Decimal {
	left := e.Limit.Sub(e.Balance)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
