package repository

import (
	"context"

	"github.com/polkiloo/freshharvest/internal/domain/model"
)

// StaffRepository persists employee accounts.
type StaffRepository interface {
	Get(ctx context.Context, id string) (*model.Staff, error)
	GetByUsername(ctx context.Context, username string) (*model.Staff, error)
	Put(ctx context.Context, staff *model.Staff) error
	Scan(ctx context.Context, match Predicate[model.Staff]) ([]model.Staff, error)
}
