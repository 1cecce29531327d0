package repository

import (
	"context"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the backend invoice operations
type InvoiceRepository interface {
	List(ctx context.Context, params *InvoiceFilterParams) (*entity.InvoiceList, error)
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Create(ctx context.Context, input *entity.InvoiceInput) (*entity.Invoice, error)
	Update(ctx context.Context, id string, input *entity.InvoiceInput) (*entity.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status enum.InvoiceStatus) (*entity.Invoice, error)
	Delete(ctx context.Context, id string) error
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Invoice, error)
	// GetForCustomer fetches one invoice through the customer-facing endpoint.
	GetForCustomer(ctx context.Context, id string) (*entity.Invoice, error)
	Stats(ctx context.Context) (*entity.InvoiceStats, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID string
	Status     enum.InvoiceStatus
	MinTotal   *decimal.Decimal
	MaxTotal   *decimal.Decimal
	MinDate    *time.Time
	MaxDate    *time.Time
}

// InvoiceStatusCache remembers the last status seen for each invoice so
// decisions such as refusing to delete a paid invoice need no extra call.
type InvoiceStatusCache interface {
	Remember(invoices ...entity.Invoice)
	Status(id string) (enum.InvoiceStatus, bool)
	Forget(id string)
}
