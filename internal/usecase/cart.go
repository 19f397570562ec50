package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// CatalogSource exposes the latest loaded catalog.
type CatalogSource interface {
	Current() *model.Catalog
}

// CartLine is one row of a cart as collected by the presentation layer.
// Listed items and boxes always sell at the catalog price; a non-zero UnitPrice
// must match it. Type may be empty when Name identifies a catalog item or a box size.
type CartLine struct {
	Type      string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Contents  []string
}

// Cart is everything needed to price an order.
type Cart struct {
	Lines    []CartLine
	Delivery model.DeliveryMethod
}

// MaxLineCount caps the count on a unit, pack or box line.
const MaxLineCount = 10000

// BuildLineItems turns cart lines into line items. Quantities are validated
// here: weights must be positive and counts whole numbers from 1 to MaxLineCount.
func BuildLineItems(cat *model.Catalog, lines []CartLine) ([]model.LineItem, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	if cat == nil {
		cat = &model.Catalog{}
	}
	items := make([]model.LineItem, 0, len(lines))
	for i, line := range lines {
		item, err := buildLineItem(cat, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func buildLineItem(cat *model.Catalog, line CartLine) (model.LineItem, error) {
	name := strings.TrimSpace(line.Name)
	kind, err := lineKind(cat, line.Type, name)
	if err != nil {
		return model.LineItem{}, err
	}
	if line.UnitPrice.IsNegative() {
		return model.LineItem{}, fmt.Errorf("%w: negative price for %s", domainErrors.ErrInvalidAmount, name)
	}

	if kind == model.LineItemBox {
		return buildBox(cat, name, line)
	}

	entry, known := cat.Lookup(name)
	if known {
		if model.KindForMode(entry.Mode) != kind {
			return model.LineItem{}, fmt.Errorf("%w: %s is sold by %s", domainErrors.ErrUnknownItem, entry.Name, entry.Mode)
		}
		name = entry.Name
	}
	price, err := linePrice(line.UnitPrice, entry.Price, known, len(cat.Items) == 0, name)
	if err != nil {
		return model.LineItem{}, err
	}

	switch kind {
	case model.LineItemWeight:
		if !line.Quantity.IsPositive() {
			return model.LineItem{}, fmt.Errorf("%w: weight of %s must be positive", domainErrors.ErrInvalidQuantity, name)
		}
		return model.NewWeightItem(name, line.Quantity, price), nil
	case model.LineItemUnit:
		n, err := wholeCount(name, line.Quantity)
		if err != nil {
			return model.LineItem{}, err
		}
		return model.NewUnitItem(name, n, price), nil
	default:
		n, err := wholeCount(name, line.Quantity)
		if err != nil {
			return model.LineItem{}, err
		}
		return model.NewPackItem(name, n, price), nil
	}
}

func buildBox(cat *model.Catalog, name string, line CartLine) (model.LineItem, error) {
	size, ok := model.ParseBoxSize(name)
	if !ok {
		return model.LineItem{}, fmt.Errorf("%w: no box size %q", domainErrors.ErrUnknownItem, name)
	}
	template, known := cat.Box(size)
	price, err := linePrice(line.UnitPrice, template.Price, known, len(cat.Boxes) == 0, size.Title())
	if err != nil {
		return model.LineItem{}, err
	}
	n, err := wholeCount(size.Title(), line.Quantity)
	if err != nil {
		return model.LineItem{}, err
	}

	contents := template.Contents
	if len(line.Contents) > 0 {
		if len(line.Contents) != size.Slots() {
			return model.LineItem{}, fmt.Errorf("%w: %s holds %d items, got %d",
				domainErrors.ErrInvalidQuantity, size.Title(), size.Slots(), len(line.Contents))
		}
		contents = make([]string, 0, len(line.Contents))
		for _, content := range line.Contents {
			content = strings.TrimSpace(content)
			if entry, ok := cat.Lookup(content); ok {
				content = entry.Name
			} else if len(cat.Items) > 0 {
				return model.LineItem{}, fmt.Errorf("%w: %s", domainErrors.ErrUnknownItem, content)
			}
			contents = append(contents, content)
		}
	}
	return model.NewBoxItem(size, n, price, contents), nil
}

func lineKind(cat *model.Catalog, typ, name string) (model.LineItemKind, error) {
	if strings.TrimSpace(typ) != "" {
		kind, ok := model.ParseLineItemKind(typ)
		if !ok {
			return "", fmt.Errorf("%w: unknown line type %q", domainErrors.ErrUnknownItem, typ)
		}
		return kind, nil
	}
	if entry, ok := cat.Lookup(name); ok {
		return model.KindForMode(entry.Mode), nil
	}
	if _, ok := model.ParseBoxSize(name); ok {
		return model.LineItemBox, nil
	}
	return "", fmt.Errorf("%w: %s", domainErrors.ErrUnknownItem, name)
}

// linePrice resolves the price of a line. Without a loaded price table
// (unlisted) the given price is taken as is.
func linePrice(given, listed decimal.Decimal, known, unlisted bool, name string) (decimal.Decimal, error) {
	given = model.RoundMoney(given)
	switch {
	case known:
		if !given.IsZero() && !given.Equal(listed) {
			return decimal.Zero, fmt.Errorf("%w: %s sells at %s, not %s",
				domainErrors.ErrInvalidAmount, name, model.FormatMoney(listed), model.FormatMoney(given))
		}
		return listed, nil
	case unlisted && given.IsPositive():
		return given, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", domainErrors.ErrUnknownItem, name)
}

func wholeCount(name string, q decimal.Decimal) (int64, error) {
	if !q.IsInteger() || q.LessThan(decimal.NewFromInt(1)) || q.GreaterThan(decimal.NewFromInt(MaxLineCount)) {
		return 0, fmt.Errorf("%w: %s needs a whole quantity from 1 to %d, got %s",
			domainErrors.ErrInvalidQuantity, name, MaxLineCount, q.String())
	}
	return q.IntPart(), nil
}
