package usecase

import (
	"context"

	"github.com/polkiloo/freshharvest/internal/domain/model"
	"github.com/polkiloo/freshharvest/internal/domain/repository"
)

// DirectoryUseCase lists accounts for staff.
type DirectoryUseCase struct {
	customers repository.CustomerRepository
	staff     repository.StaffRepository
}

// NewDirectoryUseCase constructs DirectoryUseCase.
func NewDirectoryUseCase(customers repository.CustomerRepository, staff repository.StaffRepository) *DirectoryUseCase {
	return &DirectoryUseCase{customers: customers, staff: staff}
}

// Customers lists customers of the given kind; an empty kind lists all.
func (u *DirectoryUseCase) Customers(ctx context.Context, kind model.CustomerKind) ([]model.Customer, error) {
	return u.customers.Scan(ctx, func(c model.Customer) bool {
		return kind == "" || c.Kind == kind
	})
}

// Staff returns a staff member by id.
func (u *DirectoryUseCase) Staff(ctx context.Context, id string) (*model.Staff, error) {
	return u.staff.Get(ctx, id)
}
