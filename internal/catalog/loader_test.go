package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
)

const itemsText = `
stray = 1.00

[Veggies by weight/kg]
Tomato = 3
Kumara = 4.495
this line has no equals sign

[Veggies by unit]
Lettuce = 1.5

; comment
[Veggies by pack]
Mushroom = 5.005

[Specials]
Corn = 2.00
Leek pack = 3.10
`

const boxesText = `
[SMALL]
price = 14.995
item1 = Carrot
item2 = Potato
Item3 = Onion
colour = green

[Medium]
price = 25
item1 = Carrot

[Giant]
price = 99
item1 = Everything
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseItems(t *testing.T) {
	items, err := ParseItems(strings.NewReader(itemsText))
	require.NoError(t, err)

	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, fmt.Sprintf("%s|%s|%s", item.Name, item.Mode, item.Price.StringFixed(2)))
	}
	assert.Equal(t, []string{
		"Tomato|weight|3.00",
		"Kumara|weight|4.50",
		"Lettuce|unit|1.50",
		"Mushroom|pack|5.01",
		"Leek pack|pack|3.10",
	}, got)

	cat := &model.Catalog{Items: items}
	assert.Equal(t, "Tomato - $3.00", cat.Listing()[0])
	assert.Len(t, cat.ListingByMode(model.SalesModeWeight), 2)
	assert.Len(t, cat.ListingByMode(model.SalesModeUnit), 1)
	assert.Len(t, cat.ListingByMode(model.SalesModePack), 2)
}

func TestParseItemsMalformedPrice(t *testing.T) {
	_, err := ParseItems(strings.NewReader("[by unit]\nLettuce = one fifty\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationParse)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseItemsMissingName(t *testing.T) {
	_, err := ParseItems(strings.NewReader("[by unit]\n = 1.00\n"))
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationParse)
}

func TestParseItemsRoundTrip(t *testing.T) {
	items, err := ParseItems(strings.NewReader(itemsText))
	require.NoError(t, err)

	var b strings.Builder
	for _, mode := range model.SalesModes {
		fmt.Fprintf(&b, "[by %s]\n", map[model.SalesMode]string{
			model.SalesModeWeight: "weight/kg", model.SalesModeUnit: "unit", model.SalesModePack: "pack",
		}[mode])
		for _, item := range items {
			if item.Mode == mode {
				fmt.Fprintf(&b, "%s = %s\n", item.Name, item.Price.StringFixed(2))
			}
		}
	}

	again, err := ParseItems(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, again, len(items))

	want := make(map[string]string)
	for _, item := range items {
		want[item.Name] = item.Price.StringFixed(2)
	}
	for _, item := range again {
		assert.Equal(t, want[item.Name], item.Price.StringFixed(2), item.Name)
	}
}

func TestParseBoxes(t *testing.T) {
	boxes, err := ParseBoxes(strings.NewReader(boxesText))
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	small := boxes[model.BoxSizeSmall]
	assert.Equal(t, model.BoxSizeSmall, small.Size)
	assert.Equal(t, "15.00", small.Price.StringFixed(2))
	assert.Equal(t, []string{"Carrot", "Potato", "Onion"}, small.Contents)

	medium := boxes[model.BoxSizeMedium]
	assert.Equal(t, "25.00", medium.Price.StringFixed(2))
	assert.Equal(t, []string{"Carrot"}, medium.Contents)
}

func TestParseBoxesMalformedPrice(t *testing.T) {
	_, err := ParseBoxes(strings.NewReader("[small]\nprice = cheap\n"))
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationParse)
}

func TestLoadFilesMissingSource(t *testing.T) {
	dir := t.TempDir()
	items := writeFile(t, dir, "veggies.txt", itemsText)

	_, err := LoadFiles(filepath.Join(dir, "nope.txt"), items)
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationNotFound)

	_, err = LoadFiles(items, filepath.Join(dir, "nope.txt"))
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationNotFound)
}

func TestLoadFilesShippedCatalog(t *testing.T) {
	cat, err := LoadFiles(filepath.Join("..", "..", "static", "veggies.txt"), filepath.Join("..", "..", "static", "premadeboxes.txt"))
	require.NoError(t, err)

	assert.NotEmpty(t, cat.ByMode(model.SalesModeWeight))
	assert.NotEmpty(t, cat.ByMode(model.SalesModeUnit))
	assert.NotEmpty(t, cat.ByMode(model.SalesModePack))
	for _, size := range model.BoxSizes {
		box, ok := cat.Box(size)
		require.True(t, ok, size)
		assert.Len(t, box.Contents, size.Slots())
		for _, content := range box.Contents {
			_, ok := cat.Lookup(content)
			assert.True(t, ok, "box content %s should be a catalog item", content)
		}
	}
}

func TestStoreReloadLastLoadWins(t *testing.T) {
	dir := t.TempDir()
	items := writeFile(t, dir, "veggies.txt", "[unit]\nLettuce = 1.50\n")
	boxes := writeFile(t, dir, "boxes.txt", boxesText)
	store := NewStore(items, boxes, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	assert.Empty(t, store.Current().Items)

	_, err := store.Reload()
	require.NoError(t, err)
	entry, ok := store.Current().Lookup("Lettuce")
	require.True(t, ok)
	assert.Equal(t, "1.50", entry.Price.StringFixed(2))

	writeFile(t, dir, "veggies.txt", "[unit]\nLettuce = 1.75\nCabbage = 3.50\n")
	_, err = store.Reload()
	require.NoError(t, err)
	entry, _ = store.Current().Lookup("Lettuce")
	assert.Equal(t, "1.75", entry.Price.StringFixed(2))
	assert.Len(t, store.Current().Items, 2)

	writeFile(t, dir, "veggies.txt", "[unit]\nLettuce = free\n")
	_, err = store.Reload()
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationParse)
	assert.Len(t, store.Current().Items, 2, "failed reload keeps the previous snapshot")
}
