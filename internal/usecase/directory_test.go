package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/freshharvest/internal/domain/errors"
	"github.com/polkiloo/freshharvest/internal/domain/model"
)

func TestDirectoryCustomers(t *testing.T) {
	f := newFixture(t)
	uc := NewDirectoryUseCase(f.store.Customers(), f.store.Staff())
	ctx := context.Background()

	all, err := uc.Customers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	corporate, err := uc.Customers(ctx, model.CustomerCorporate)
	require.NoError(t, err)
	require.Len(t, corporate, 2)
	for _, c := range corporate {
		assert.Equal(t, model.CustomerCorporate, c.Kind)
	}
}

func TestDirectoryStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Staff().Put(ctx, &model.Staff{ID: "S1000", Name: "John Doe", Username: "staffJD"}))
	uc := NewDirectoryUseCase(f.store.Customers(), f.store.Staff())

	staff, err := uc.Staff(ctx, "S1000")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", staff.Name)

	_, err = uc.Staff(ctx, "S9")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
