package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/usecase"
)

// parseItem reads "[type:]name=quantity[@price]", e.g. "Tomato=1.5" or
// "unit:Radish=3@0.80". Without a type the catalog decides.
func parseItem(s string) (usecase.CartLine, error) {
	spec, value, ok := strings.Cut(s, "=")
	if !ok {
		return usecase.CartLine{}, fmt.Errorf("item %q: expected name=quantity", s)
	}
	var line usecase.CartLine
	if typ, name, found := strings.Cut(spec, ":"); found {
		line.Type, line.Name = strings.TrimSpace(typ), strings.TrimSpace(name)
	} else {
		line.Name = strings.TrimSpace(spec)
	}
	if line.Name == "" {
		return usecase.CartLine{}, fmt.Errorf("item %q: missing name", s)
	}

	qty, price, hasPrice := strings.Cut(value, "@")
	var err error
	if line.Quantity, err = decimal.NewFromString(strings.TrimSpace(qty)); err != nil {
		return usecase.CartLine{}, fmt.Errorf("item %q: bad quantity: %w", s, err)
	}
	if hasPrice {
		if line.UnitPrice, err = decimal.NewFromString(strings.TrimSpace(price)); err != nil {
			return usecase.CartLine{}, fmt.Errorf("item %q: bad price: %w", s, err)
		}
	}
	return line, nil
}

// parseBox reads "size=quantity[:item,item,...]", e.g. "small=2" or
// "medium=1:Carrot,Potato,Onion,Lettuce".
func parseBox(s string) (usecase.CartLine, error) {
	size, rest, ok := strings.Cut(s, "=")
	if !ok {
		return usecase.CartLine{}, fmt.Errorf("box %q: expected size=quantity", s)
	}
	line := usecase.CartLine{Type: string(model.LineItemBox), Name: strings.TrimSpace(size)}

	qty, contents, hasContents := strings.Cut(rest, ":")
	var err error
	if line.Quantity, err = decimal.NewFromString(strings.TrimSpace(qty)); err != nil {
		return usecase.CartLine{}, fmt.Errorf("box %q: bad quantity: %w", s, err)
	}
	if hasContents {
		for _, item := range strings.Split(contents, ",") {
			if item = strings.TrimSpace(item); item != "" {
				line.Contents = append(line.Contents, item)
			}
		}
	}
	return line, nil
}

func cartFromFlags(c *cli.Context) (usecase.Cart, error) {
	var cart usecase.Cart
	for _, s := range c.StringSlice(flagItem) {
		line, err := parseItem(s)
		if err != nil {
			return usecase.Cart{}, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	for _, s := range c.StringSlice(flagBox) {
		line, err := parseBox(s)
		if err != nil {
			return usecase.Cart{}, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	method, ok := model.ParseDeliveryMethod(c.String(flagDelivery))
	if !ok {
		return usecase.Cart{}, fmt.Errorf("unknown delivery method %q", c.String(flagDelivery))
	}
	cart.Delivery = method
	return cart, nil
}

// paymentFromFlags returns the method and card details given on the command line.
func paymentFromFlags(c *cli.Context) (model.PaymentMethod, *model.CreditCard, *model.DebitCard, error) {
	method, ok := model.ParsePaymentMethod(c.String(flagPay))
	if !ok {
		return "", nil, nil, fmt.Errorf("unknown payment method %q", c.String(flagPay))
	}
	switch method {
	case model.PaymentCreditCard:
		cardType, _ := model.ParseCardType(c.String(flagCardType))
		month, year, err := parseExpiry(c.String(flagExpiry))
		if err != nil {
			return "", nil, nil, err
		}
		return method, &model.CreditCard{
			Number:      c.String(flagCardNumber),
			Type:        cardType,
			ExpiryMonth: month,
			ExpiryYear:  year,
			CVV:         c.String(flagCVV),
			Holder:      c.String(flagHolder),
		}, nil, nil
	case model.PaymentDebitCard:
		return method, nil, &model.DebitCard{BankName: c.String(flagBank), Number: c.String(flagCardNumber)}, nil
	}
	return method, nil, nil, nil
}

// parseExpiry reads "MM/YYYY" or "MM/YY".
func parseExpiry(s string) (int, int, error) {
	m, y, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, fmt.Errorf("expiry %q: expected MM/YYYY", s)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, fmt.Errorf("expiry %q: bad month", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, fmt.Errorf("expiry %q: bad year", s)
	}
	if len(y) == 2 {
		year += 2000
	}
	return month, year, nil
}

// parseDay reads a YYYY-MM-DD date in local time; empty means today.
func parseDay(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected %s", s, dateLayout)
	}
	return t, nil
}
