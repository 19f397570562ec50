package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/seed"
	"github.com/polkiloo/freshharvest/internal/storage/memory"
	testhelpers "github.com/polkiloo/freshharvest/internal/test"
)

func newSeedUseCase(store *memory.Storage, hasher testhelpers.HasherStub) *SeedUseCase {
	return NewSeedUseCase(SeedDeps{
		Customers: store.Customers(),
		Staff:     store.Staff(),
		Hasher:    hasher,
		Config:    testConfig(),
		Logger:    discardLogger(),
	})
}

func seedDocument() *seed.Document {
	return &seed.Document{
		Staff: []seed.StaffRecord{{ID: "S1000", Name: "John Doe", Username: "staffJD", Password: "12345", Department: "Sales", Joined: "2024-01-15"}},
		Customers: []seed.CustomerRecord{
			{ID: "P1000", Kind: "Private", Name: "Sally Smith", Username: "privateSS", Password: "12345", Address: "Distance 10"},
			{ID: "C1000", Kind: "corporate", Name: "Kim King", Username: "corporateKK", Password: "12345", Address: "Distance 30",
				DiscountRate: "0.10", MaxOwing: "250"},
		},
	}
}

func TestSeedImport(t *testing.T) {
	store := memory.New()
	uc := newSeedUseCase(store, testhelpers.HasherStub{})
	ctx := context.Background()

	result, err := uc.Import(ctx, seedDocument())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Staff: 1, Customers: 2}, result)

	staff, err := store.Staff().Get(ctx, "S1000")
	require.NoError(t, err)
	assert.Equal(t, "hash:12345", staff.PasswordHash)
	assert.Equal(t, 2024, staff.JoinedAt.Year())

	sally, err := store.Customers().Get(ctx, "P1000")
	require.NoError(t, err)
	assert.Equal(t, model.CustomerPrivate, sally.Kind)
	assert.True(t, sally.CanDeliver)
	assert.Equal(t, "100.00", sally.MaxOwing.StringFixed(2))

	kim, err := store.Customers().Get(ctx, "C1000")
	require.NoError(t, err)
	assert.False(t, kim.CanDeliver)
	assert.Equal(t, "250.00", kim.MaxOwing.StringFixed(2))
	assert.Equal(t, "0.1", kim.DiscountRate.String())
}

func TestSeedImportKeepsBalances(t *testing.T) {
	store := memory.New()
	uc := newSeedUseCase(store, testhelpers.HasherStub{})
	ctx := context.Background()
	_, err := uc.Import(ctx, seedDocument())
	require.NoError(t, err)
	_, err = store.Customers().AdjustBalance(ctx, "P1000", dec("42.50"))
	require.NoError(t, err)

	_, err = uc.Import(ctx, seedDocument())
	require.NoError(t, err)
	sally, err := store.Customers().Get(ctx, "P1000")
	require.NoError(t, err)
	assert.Equal(t, "42.50", sally.Balance.StringFixed(2))
}

func TestSeedImportKeepsExistingHashes(t *testing.T) {
	store := memory.New()
	hashed := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	uc := newSeedUseCase(store, testhelpers.HasherStub{HashFn: func(string) (string, error) {
		return "", errors.New("should not hash")
	}})
	doc := &seed.Document{Staff: []seed.StaffRecord{{ID: "S1", Name: "A", Username: "a", Password: hashed}}}

	_, err := uc.Import(context.Background(), doc)
	require.NoError(t, err)
	staff, err := store.Staff().Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, hashed, staff.PasswordHash)
}

func TestSeedImportErrors(t *testing.T) {
	failing := testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", errors.New("hash failed") }}

	_, err := newSeedUseCase(memory.New(), failing).Import(context.Background(), seedDocument())
	assert.EqualError(t, err, "staff S1000: hash failed")

	doc := &seed.Document{Staff: []seed.StaffRecord{{ID: "S1", Joined: "15/01/2024"}}}
	_, err = newSeedUseCase(memory.New(), testhelpers.HasherStub{}).Import(context.Background(), doc)
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationParse)

	doc = &seed.Document{Customers: []seed.CustomerRecord{{ID: "X1", Kind: "wholesale", Name: "X", Username: "x", Password: "p"}}}
	_, err = newSeedUseCase(memory.New(), testhelpers.HasherStub{}).Import(context.Background(), doc)
	assert.Error(t, err)
}

func TestSeedImportFile(t *testing.T) {
	store := memory.New()
	uc := newSeedUseCase(store, testhelpers.HasherStub{})

	result, err := uc.ImportFile(context.Background(), filepath.Join("..", "..", "static", "seed.yaml"))
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Staff: 1, Customers: 4}, result)

	_, err = uc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationNotFound)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("staff: [\n"), 0o600))
	_, err = uc.ImportFile(context.Background(), path)
	assert.ErrorIs(t, err, domainErrors.ErrConfigurationParse)
}
