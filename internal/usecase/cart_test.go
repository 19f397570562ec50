package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	testhelpers "github.com/polkiloo/freshharvest/internal/test"
)

func TestBuildLineItemsUsesCatalog(t *testing.T) {
	cat := testhelpers.NewCatalog()
	items, err := BuildLineItems(cat, []CartLine{
		weight("tomato", "1.5"),
		{Name: "Lettuce", Quantity: decimal.NewFromInt(2)},
		{Name: "beans", Quantity: decimal.NewFromInt(3)},
		{Name: "Medium Box", Quantity: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, model.LineItemWeight, items[0].Kind)
	assert.Equal(t, "Tomato", items[0].Name)
	assert.Equal(t, "4.50", items[0].TotalPrice.StringFixed(2))

	assert.Equal(t, model.LineItemUnit, items[1].Kind)
	assert.Equal(t, "3.00", items[1].TotalPrice.StringFixed(2))

	assert.Equal(t, model.LineItemPack, items[2].Kind)
	assert.Equal(t, "Beans", items[2].Name)
	assert.Equal(t, "12.00", items[2].TotalPrice.StringFixed(2))

	assert.Equal(t, model.LineItemBox, items[3].Kind)
	assert.Equal(t, model.BoxSizeMedium, items[3].BoxSize)
	assert.Equal(t, []string{"Carrot", "Potato", "Onion", "Broccoli"}, items[3].Contents)
	assert.Equal(t, "25.00", items[3].TotalPrice.StringFixed(2))
}

func TestBuildLineItemsListedPriceWins(t *testing.T) {
	cat := testhelpers.NewCatalog()

	items, err := BuildLineItems(cat, []CartLine{
		{Type: "weight", Name: "Tomato", Quantity: dec("10"), UnitPrice: dec("3")},
		unit("Lettuce", 2, "1.5"),
		{Type: "box", Name: "small", Quantity: dec("1"), UnitPrice: dec("15.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, "30.00", items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "3.00", items[1].TotalPrice.StringFixed(2))
	assert.Equal(t, "15.00", items[2].TotalPrice.StringFixed(2))

	for name, line := range map[string]CartLine{
		"item":   {Type: "weight", Name: "Tomato", Quantity: dec("10"), UnitPrice: dec("0.01")},
		"box":    {Type: "box", Name: "small", Quantity: dec("1"), UnitPrice: dec("0.01")},
		"dearer": unit("Lettuce", 1, "9.99"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := BuildLineItems(cat, []CartLine{line})
			assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
		})
	}
}

func TestBuildLineItemsUnlistedPrices(t *testing.T) {
	items, err := BuildLineItems(nil, []CartLine{
		unit("Radish", 2, "1.005"),
		{Type: "box", Name: "large", Quantity: dec("1"), UnitPrice: dec("40")},
	})
	require.NoError(t, err)
	assert.Equal(t, "1.01", items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "2.02", items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "40.00", items[1].TotalPrice.StringFixed(2))

	_, err = BuildLineItems(nil, []CartLine{unit("Radish", 2, "")})
	assert.ErrorIs(t, err, domainErrors.ErrUnknownItem)

	_, err = BuildLineItems(testhelpers.NewCatalog(), []CartLine{unit("Radish", 2, "1.00")})
	assert.ErrorIs(t, err, domainErrors.ErrUnknownItem, "a loaded catalog never prices unknown items")
}

func TestBuildLineItemsBoxContents(t *testing.T) {
	cat := testhelpers.NewCatalog()

	items, err := BuildLineItems(cat, []CartLine{box("small", 2, "tomato", "Beans", "Lettuce")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato", "Beans", "Lettuce"}, items[0].Contents)
	assert.Equal(t, "30.00", items[0].TotalPrice.StringFixed(2))

	_, err = BuildLineItems(cat, []CartLine{box("small", 1, "Tomato", "Beans")})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidQuantity)

	_, err = BuildLineItems(cat, []CartLine{box("small", 1, "Tomato", "Beans", "Dragonfruit")})
	assert.ErrorIs(t, err, domainErrors.ErrUnknownItem)

	_, err = BuildLineItems(cat, []CartLine{box("huge", 1)})
	assert.ErrorIs(t, err, domainErrors.ErrUnknownItem)
}

func TestBuildLineItemsRejectsBadLines(t *testing.T) {
	cat := testhelpers.NewCatalog()
	cases := []struct {
		name string
		line CartLine
		want error
	}{
		{"zero weight", weight("Tomato", "0"), domainErrors.ErrInvalidQuantity},
		{"negative weight", weight("Tomato", "-1"), domainErrors.ErrInvalidQuantity},
		{"fractional units", CartLine{Type: "unit", Name: "Lettuce", Quantity: dec("1.5")}, domainErrors.ErrInvalidQuantity},
		{"zero units", unit("Lettuce", 0, ""), domainErrors.ErrInvalidQuantity},
		{"zero boxes", box("large", 0), domainErrors.ErrInvalidQuantity},
		{"count above cap", unit("Lettuce", MaxLineCount+1, ""), domainErrors.ErrInvalidQuantity},
		{"count past int64", CartLine{Type: "unit", Name: "Lettuce", Quantity: dec("9223372036854775808")}, domainErrors.ErrInvalidQuantity},
		{"unknown item", unit("Durian", 1, ""), domainErrors.ErrUnknownItem},
		{"wrong sales mode", unit("Tomato", 1, ""), domainErrors.ErrUnknownItem},
		{"unknown type", CartLine{Type: "crate", Name: "Tomato", Quantity: dec("1")}, domainErrors.ErrUnknownItem},
		{"negative price", unit("Lettuce", 1, "-1"), domainErrors.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildLineItems(cat, []CartLine{tc.line})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuildLineItemsEmptyCart(t *testing.T) {
	_, err := BuildLineItems(testhelpers.NewCatalog(), nil)
	assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
}
