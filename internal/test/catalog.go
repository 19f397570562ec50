package test

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// CatalogStub serves a fixed catalog snapshot.
type CatalogStub struct {
	Catalog *model.Catalog
}

// Current returns the configured snapshot or the default test catalog.
func (s CatalogStub) Current() *model.Catalog {
	if s.Catalog != nil {
		return s.Catalog
	}
	return NewCatalog()
}

// NewCatalog returns a small catalog covering every sales mode and box size.
func NewCatalog() *model.Catalog {
	price := decimal.RequireFromString
	return &model.Catalog{
		Items: []model.CatalogEntry{
			{Name: "Tomato", Mode: model.SalesModeWeight, Price: price("3.00")},
			{Name: "Carrot", Mode: model.SalesModeWeight, Price: price("2.50")},
			{Name: "Potato", Mode: model.SalesModeWeight, Price: price("1.80")},
			{Name: "Onion", Mode: model.SalesModeWeight, Price: price("2.20")},
			{Name: "Lettuce", Mode: model.SalesModeUnit, Price: price("1.50")},
			{Name: "Broccoli", Mode: model.SalesModeUnit, Price: price("2.80")},
			{Name: "Beans", Mode: model.SalesModePack, Price: price("4.00")},
		},
		Boxes: map[model.BoxSize]model.BoxTemplate{
			model.BoxSizeSmall:  {Size: model.BoxSizeSmall, Price: price("15.00"), Contents: []string{"Carrot", "Potato", "Onion"}},
			model.BoxSizeMedium: {Size: model.BoxSizeMedium, Price: price("25.00"), Contents: []string{"Carrot", "Potato", "Onion", "Broccoli"}},
			model.BoxSizeLarge:  {Size: model.BoxSizeLarge, Price: price("35.00"), Contents: []string{"Carrot", "Potato", "Onion", "Broccoli", "Lettuce"}},
		},
	}
}
