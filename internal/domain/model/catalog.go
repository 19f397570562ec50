package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SalesMode tells how a vegetable is sold.
type SalesMode string

const (
	SalesModeWeight SalesMode = "weight"
	SalesModeUnit   SalesMode = "unit"
	SalesModePack   SalesMode = "pack"
)

// SalesModes lists modes in catalog display order.
var SalesModes = []SalesMode{SalesModeWeight, SalesModeUnit, SalesModePack}

// CatalogEntry is a priced vegetable.
type CatalogEntry struct {
	Name  string
	Mode  SalesMode
	Price decimal.Decimal
}

// String formats the entry as it appears in catalog listings.
func (e CatalogEntry) String() string {
	return fmt.Sprintf("%s - $%s", e.Name, e.Price.StringFixed(2))
}

// BoxSize identifies a premade box template.
type BoxSize string

const (
	BoxSizeSmall  BoxSize = "small"
	BoxSizeMedium BoxSize = "medium"
	BoxSizeLarge  BoxSize = "large"
)

// BoxSizes lists sizes from smallest to largest.
var BoxSizes = []BoxSize{BoxSizeSmall, BoxSizeMedium, BoxSizeLarge}

// ParseBoxSize accepts a size name in any case, with or without a "box" suffix.
func ParseBoxSize(s string) (BoxSize, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "box"))
	switch BoxSize(s) {
	case BoxSizeSmall, BoxSizeMedium, BoxSizeLarge:
		return BoxSize(s), true
	}
	return "", false
}

// Slots is the number of content items a box of this size holds.
func (s BoxSize) Slots() int {
	switch s {
	case BoxSizeSmall:
		return 3
	case BoxSizeMedium:
		return 4
	case BoxSizeLarge:
		return 5
	}
	return 0
}

// Title is the display name of the box, e.g. "Small Box".
func (s BoxSize) Title() string {
	if s == "" {
		return "Box"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:]) + " Box"
}

// BoxTemplate is the price and default contents of a premade box.
type BoxTemplate struct {
	Size     BoxSize
	Price    decimal.Decimal
	Contents []string
}

// String formats the template for listings.
func (b BoxTemplate) String() string {
	return fmt.Sprintf("%s - $%s (%s)", b.Size.Title(), b.Price.StringFixed(2), strings.Join(b.Contents, ", "))
}

// Catalog is an immutable snapshot of everything the store sells.
type Catalog struct {
	Items []CatalogEntry
	Boxes map[BoxSize]BoxTemplate
}

// Listing returns the master list of formatted entries in source order.
func (c *Catalog) Listing() []string {
	out := make([]string, 0, len(c.Items))
	for _, e := range c.Items {
		out = append(out, e.String())
	}
	return out
}

// ListingByMode returns the formatted entries sold in the given mode.
func (c *Catalog) ListingByMode(mode SalesMode) []string {
	var out []string
	for _, e := range c.ByMode(mode) {
		out = append(out, e.String())
	}
	return out
}

// ByMode returns the entries sold in the given mode.
func (c *Catalog) ByMode(mode SalesMode) []CatalogEntry {
	var out []CatalogEntry
	for _, e := range c.Items {
		if e.Mode == mode {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by name, case-insensitively.
func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	name = strings.TrimSpace(name)
	for _, e := range c.Items {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Box returns the template for a size.
func (c *Catalog) Box(size BoxSize) (BoxTemplate, bool) {
	b, ok := c.Boxes[size]
	return b, ok
}
