package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
)

// PaymentMethod is how an order or balance settlement is paid.
type PaymentMethod string

const (
	PaymentAccount    PaymentMethod = "account"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
)

// ParsePaymentMethod accepts the method names and a few common aliases.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "account", "charge", "charge_to_account":
		return PaymentAccount, true
	case "credit", "credit_card", "credit-card":
		return PaymentCreditCard, true
	case "debit", "debit_card", "debit-card":
		return PaymentDebitCard, true
	}
	return "", false
}

// IsCard reports whether the method carries card details.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentCreditCard || m == PaymentDebitCard
}

// CardType is a credit card network.
type CardType string

const (
	CardVisa       CardType = "VISA"
	CardMasterCard CardType = "MasterCard"
	CardAmex       CardType = "American Express"
)

// ParseCardType matches a card network name case-insensitively.
func ParseCardType(s string) (CardType, bool) {
	for _, t := range []CardType{CardVisa, CardMasterCard, CardAmex} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// CreditCard holds the fields collected for a credit card payment.
type CreditCard struct {
	Number      string   `json:"number"`
	Type        CardType `json:"type"`
	ExpiryMonth int      `json:"expiry_month"`
	ExpiryYear  int      `json:"expiry_year"`
	CVV         string   `json:"cvv,omitempty"`
	Holder      string   `json:"holder"`
}

// Validate checks the card shape. Cards expire at the end of their expiry month.
func (c CreditCard) Validate(now time.Time) error {
	if !isDigits(c.Number, 16) {
		return cardError("credit card number must be 16 digits")
	}
	if _, ok := ParseCardType(string(c.Type)); !ok {
		return cardError("unsupported card type " + string(c.Type))
	}
	if c.ExpiryMonth < 1 || c.ExpiryMonth > 12 {
		return cardError("expiry month must be between 01 and 12")
	}
	if c.ExpiryYear < now.Year() || (c.ExpiryYear == now.Year() && c.ExpiryMonth < int(now.Month())) {
		return cardError("card has expired")
	}
	if !isDigits(c.CVV, 3) {
		return cardError("cvv must be 3 digits")
	}
	if strings.TrimSpace(c.Holder) == "" {
		return cardError("card holder is required")
	}
	return nil
}

// Redacted drops the cvv and masks the number for storage.
func (c CreditCard) Redacted() CreditCard {
	c.Number = MaskCardNumber(c.Number)
	c.CVV = ""
	return c
}

// DebitCard holds the fields collected for a debit card payment.
type DebitCard struct {
	BankName string `json:"bank_name"`
	Number   string `json:"number"`
}

// Validate checks the card shape.
func (d DebitCard) Validate() error {
	if strings.TrimSpace(d.BankName) == "" {
		return cardError("bank name is required")
	}
	if !isDigits(d.Number, 16) {
		return cardError("debit card number must be 16 digits")
	}
	return nil
}

// Redacted masks the number for storage.
func (d DebitCard) Redacted() DebitCard {
	d.Number = MaskCardNumber(d.Number)
	return d
}

// Payment records money received by card. OrderNumber is empty for
// balance settlements.
type Payment struct {
	ID          string
	CustomerID  string
	OrderNumber string
	Amount      decimal.Decimal
	Date        time.Time
	Method      PaymentMethod
	Credit      *CreditCard
	Debit       *DebitCard
}

// Description renders the method specific part of the payment.
func (p Payment) Description() string {
	switch p.Method {
	case PaymentCreditCard:
		if p.Credit != nil {
			return fmt.Sprintf("%s %s (%s)", p.Credit.Type, p.Credit.Number, p.Credit.Holder)
		}
	case PaymentDebitCard:
		if p.Debit != nil {
			return fmt.Sprintf("%s %s", p.Debit.BankName, p.Debit.Number)
		}
	case PaymentAccount:
		return "charged to account"
	}
	return string(p.Method)
}

// MaskCardNumber keeps the last four digits.
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func cardError(reason string) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrInvalidCard, reason)
}
