package repository

import (
	"context"
	"errors"

	"github.com/umalmyha/customer-records/internal/model"
)

// ErrDuplicateEmail is raised by storage when customer email is already taken
var ErrDuplicateEmail = errors.New("customer with such email already exists")

// CustomerRepository represents behavior for customer repository.
// Find methods return nil customer without error when nothing is found.
type CustomerRepository interface {
	FindByID(context.Context, string) (*model.Customer, error)
	FindByEmail(context.Context, string) (*model.Customer, error)
	FindPage(ctx context.Context, skip, limit int64) ([]*model.Customer, error)
	Count(context.Context) (int64, error)
	Search(context.Context, string) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) (bool, error)
	DeleteByID(context.Context, string) error
}
