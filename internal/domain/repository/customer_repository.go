package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the backend customer operations
type CustomerRepository interface {
	List(ctx context.Context, params *CustomerFilterParams) (*entity.CustomerList, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// Me returns the customer record of the logged-in customer.
	Me(ctx context.Context) (*entity.Customer, error)
	Create(ctx context.Context, input *CustomerInput) (*entity.Customer, error)
	Update(ctx context.Context, id string, input *CustomerInput) (*entity.Customer, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*entity.CustomerStats, error)
	AdjustWallet(ctx context.Context, id string, adj *entity.WalletAdjustment) (*entity.Customer, error)
}

// CustomerFilterParams contains filtering parameters for customer queries
type CustomerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	HasBalance *bool
	// Status is one of active, inactive or first_login.
	Status     string
	MinBalance *decimal.Decimal
	MaxBalance *decimal.Decimal
}

// CustomerInput carries customer fields for create and update.
type CustomerInput struct {
	Name          *string
	Phone         *string
	WalletBalance *decimal.Decimal
	Notes         *string
	IsActive      *bool
	FirstLogin    *bool
}
