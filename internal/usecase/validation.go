package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theplant/luhn"

	"github.com/polkiloo/freshharvest/internal/config"
	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// ValidateCardNumber checks a card number using Luhn algorithm.
func ValidateCardNumber(number string) bool {
	if number == "" || len(number) > 18 {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return false
	}
	return luhn.Valid(n)
}

// CardValidator checks payment details before anything is charged.
type CardValidator struct {
	checksum bool
	now      func() time.Time
}

// NewCardValidator builds a validator; the Luhn check is enabled by configuration.
func NewCardValidator(cfg *config.Config) *CardValidator {
	return &CardValidator{checksum: cfg.CardChecksum, now: time.Now}
}

// Validate checks the details required by method. Account payments carry none.
func (v *CardValidator) Validate(method model.PaymentMethod, credit *model.CreditCard, debit *model.DebitCard) error {
	switch method {
	case model.PaymentAccount:
		return nil
	case model.PaymentCreditCard:
		if credit == nil {
			return fmt.Errorf("%w: credit card details are required", domainErrors.ErrInvalidCard)
		}
		if err := credit.Validate(v.now()); err != nil {
			return err
		}
		return v.checkNumber(credit.Number)
	case model.PaymentDebitCard:
		if debit == nil {
			return fmt.Errorf("%w: debit card details are required", domainErrors.ErrInvalidCard)
		}
		if err := debit.Validate(); err != nil {
			return err
		}
		return v.checkNumber(debit.Number)
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidPaymentMethod, method)
	}
}

func (v *CardValidator) checkNumber(number string) error {
	if v.checksum && !ValidateCardNumber(number) {
		return fmt.Errorf("%w: card number failed checksum", domainErrors.ErrInvalidCard)
	}
	return nil
}
