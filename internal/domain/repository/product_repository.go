package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the backend product operations
type ProductRepository interface {
	List(ctx context.Context, params *ProductFilterParams) (*entity.ProductList, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByCode looks a product up by the code printed in its QR label.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Create(ctx context.Context, input *ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id string, input *ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// SetStock writes an absolute on-hand quantity.
	SetStock(ctx context.Context, id string, quantity int) (*entity.Product, error)
	ExportInventory(ctx context.Context) (*Export, error)
}

// CategoryRepository defines the backend category operations
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, input *CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, id string, input *CategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination   *pagination.PaginationParams
	CategoryID   string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStockOnly  *bool
	LowStockOnly *bool
}

// ProductInput carries product fields for create and update. Nil pointers are
// omitted so updates are partial.
type ProductInput struct {
	Name         *string
	ProductCode  *string
	Description  *string
	Price        *decimal.Decimal
	SellingPrice *decimal.Decimal
	BuyingPrice  *decimal.Decimal
	Quantity     *int
	CategoryID   *string
	Discount     *decimal.Decimal
	SKU          *string
	SizeUnit     *string
	IsActive     *bool
}

// CategoryInput carries category fields for create and update.
type CategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Export is a file produced by the backend.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}
