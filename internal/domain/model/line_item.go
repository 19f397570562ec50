package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItemKind is the closed set of cart line variants.
type LineItemKind string

const (
	LineItemWeight LineItemKind = "weight"
	LineItemUnit   LineItemKind = "unit"
	LineItemPack   LineItemKind = "pack"
	LineItemBox    LineItemKind = "box"
)

// ParseLineItemKind validates a kind name.
func ParseLineItemKind(s string) (LineItemKind, bool) {
	switch k := LineItemKind(strings.ToLower(strings.TrimSpace(s))); k {
	case LineItemWeight, LineItemUnit, LineItemPack, LineItemBox:
		return k, true
	}
	return "", false
}

// KindForMode maps a catalog sales mode to the line kind that sells it.
func KindForMode(mode SalesMode) LineItemKind {
	switch mode {
	case SalesModeWeight:
		return LineItemWeight
	case SalesModePack:
		return LineItemPack
	default:
		return LineItemUnit
	}
}

// LineItem is one priced cart line. Quantity is kilograms for weight lines and
// a whole count for the others. TotalPrice is derived by CalculateTotal.
// Positivity of Quantity is checked by whoever builds the cart.
type LineItem struct {
	Kind       LineItemKind    `json:"kind"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	BoxSize    BoxSize         `json:"box_size,omitempty"`
	Contents   []string        `json:"contents,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewWeightItem builds a line priced per kilogram.
func NewWeightItem(name string, kilos, pricePerKilo decimal.Decimal) LineItem {
	return newLineItem(LineItemWeight, name, kilos, pricePerKilo)
}

// NewUnitItem builds a line priced per unit.
func NewUnitItem(name string, quantity int64, pricePerUnit decimal.Decimal) LineItem {
	return newLineItem(LineItemUnit, name, decimal.NewFromInt(quantity), pricePerUnit)
}

// NewPackItem builds a line priced per pack.
func NewPackItem(name string, packs int64, pricePerPack decimal.Decimal) LineItem {
	return newLineItem(LineItemPack, name, decimal.NewFromInt(packs), pricePerPack)
}

// NewBoxItem builds a premade box line. Contents are informational and never priced.
func NewBoxItem(size BoxSize, quantity int64, boxPrice decimal.Decimal, contents []string) LineItem {
	item := newLineItem(LineItemBox, size.Title(), decimal.NewFromInt(quantity), boxPrice)
	item.BoxSize = size
	item.Contents = append([]string(nil), contents...)
	return item
}

func newLineItem(kind LineItemKind, name string, quantity, price decimal.Decimal) LineItem {
	item := LineItem{Kind: kind, Name: name, Quantity: quantity, UnitPrice: price}
	item.CalculateTotal()
	return item
}

// CalculateTotal derives TotalPrice from quantity and unit price, rounded half-up
// to cents. Every variant multiplies the per-unit price; only fractional weights
// can produce sub-cent products.
func (li *LineItem) CalculateTotal() decimal.Decimal {
	li.TotalPrice = RoundMoney(li.Quantity.Mul(li.UnitPrice))
	return li.TotalPrice
}

// SetQuantity replaces the quantity and re-derives the total.
func (li *LineItem) SetQuantity(q decimal.Decimal) {
	li.Quantity = q
	li.CalculateTotal()
}

// String renders the line for order summaries.
func (li LineItem) String() string {
	price := FormatMoney(li.UnitPrice)
	total := FormatMoney(li.TotalPrice)
	switch li.Kind {
	case LineItemWeight:
		return fmt.Sprintf("%s %skg x %s/kg = %s", li.Name, li.Quantity.StringFixed(2), price, total)
	case LineItemUnit:
		return fmt.Sprintf("%s %s x %s/unit = %s", li.Name, li.Quantity.String(), price, total)
	case LineItemPack:
		return fmt.Sprintf("%s %s pack(s) x %s/pack = %s", li.Name, li.Quantity.String(), price, total)
	case LineItemBox:
		s := fmt.Sprintf("%s %s x %s = %s", li.Name, li.Quantity.String(), price, total)
		if len(li.Contents) > 0 {
			s += " (" + strings.Join(li.Contents, ", ") + ")"
		}
		return s
	}
	return fmt.Sprintf("%s %s x %s = %s", li.Name, li.Quantity.String(), price, total)
}

// Clone returns a copy that shares no slices with the receiver.
func (li LineItem) Clone() LineItem {
	li.Contents = append([]string(nil), li.Contents...)
	return li
}
