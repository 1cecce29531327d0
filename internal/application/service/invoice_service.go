package service

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// InvoiceService handles saved invoices: listing, status changes and deletion
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	statusCache repository.InvoiceStatusCache
	stock       *StockSyncer
	log         *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	statusCache repository.InvoiceStatusCache,
	stock *StockSyncer,
	log *zap.Logger,
) *InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		statusCache: statusCache,
		stock:       stock,
		log:         log,
	}
}

// ListInvoices returns one page of invoices matching the filters
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if params.Status != "" && !params.Status.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "must be Paid, Pending or Partial"}})
	}
	if params.MinDate != nil && params.MaxDate != nil && params.MinDate.After(*params.MaxDate) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "min_date", Message: "must not be after max_date"}})
	}

	list, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	s.statusCache.Remember(list.Invoices...)
	return pagination.NewPaginatedResult(list.Invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PageSize, list.Total, list.TotalPages)), nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.statusCache.Remember(*inv)
	return inv, nil
}

// ListCustomerInvoices lists every invoice of one customer
func (s *InvoiceService) ListCustomerInvoices(ctx context.Context, customerID string) ([]entity.Invoice, error) {
	invoices, err := s.invoiceRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	s.statusCache.Remember(invoices...)
	return invoices, nil
}

// Stats returns invoice statistics
func (s *InvoiceService) Stats(ctx context.Context) (*entity.InvoiceStats, error) {
	return s.invoiceRepo.Stats(ctx)
}

// UpdateStatus changes an invoice's payment status
func (s *InvoiceService) UpdateStatus(ctx context.Context, id string, status enum.InvoiceStatus) (*entity.Invoice, error) {
	if !status.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "must be Paid, Pending or Partial"}})
	}
	inv, err := s.invoiceRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.statusCache.Remember(*inv)
	return inv, nil
}

// MarkPaid sets an invoice's status to Paid
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.UpdateStatus(ctx, id, enum.InvoiceStatusPaid)
}

// DeleteInvoiceResult reports a deletion and the stock it returned.
type DeleteInvoiceResult struct {
	InvoiceID string           `json:"invoice_id"`
	Stock     *StockSyncResult `json:"stock,omitempty"`
}

// Warning is non-empty when some units could not be returned to stock.
func (r *DeleteInvoiceResult) Warning() string {
	return r.Stock.Warning()
}

// DeleteInvoice deletes an unpaid invoice. A Paid invoice is refused, without
// a backend call when its status is already known. For Pending and Partial
// invoices the item quantities are returned to stock: product stock is read
// before the delete and the restored figure written once it succeeded.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (*DeleteInvoiceResult, error) {
	if status, ok := s.statusCache.Status(id); ok && status == enum.InvoiceStatusPaid {
		return nil, apperror.ErrPaidInvoiceDelete
	}

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.statusCache.Remember(*inv)
	if inv.Status == enum.InvoiceStatusPaid {
		return nil, apperror.ErrPaidInvoiceDelete
	}

	var current map[string]entity.Product
	quantities := inv.QuantityByProduct()
	if inv.Status.HoldsStock() && len(quantities) > 0 {
		current = s.fetchProducts(ctx, lo.Keys(quantities))
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.statusCache.Forget(id)

	result := &DeleteInvoiceResult{InvoiceID: id}
	if current != nil {
		changes, unknown := invoice.PlanRollback(quantities, current)
		result.Stock = s.stock.Apply(ctx, changes, unknown)
	}
	s.log.Info("invoice deleted", zap.String("invoice_id", id), zap.String("status", inv.Status.String()))
	return result, nil
}

// fetchProducts reads the given products concurrently. Products that cannot
// be read are left out of the result.
func (s *InvoiceService) fetchProducts(ctx context.Context, ids []string) map[string]entity.Product {
	p := pool.NewWithResults[*entity.Product]().WithMaxGoroutines(defaultStockWorkers)
	for _, id := range ids {
		id := id
		p.Go(func() *entity.Product {
			product, err := s.productRepo.GetByID(ctx, id)
			if err != nil {
				s.log.Warn("product lookup failed", zap.String("product_id", id), zap.Error(err))
				return nil
			}
			return product
		})
	}

	out := make(map[string]entity.Product, len(ids))
	for _, product := range p.Wait() {
		if product != nil {
			out[product.ID] = *product
		}
	}
	return out
}

// remember records statuses seen through paths other than this service.
func (s *InvoiceService) remember(inv *entity.Invoice) {
	if inv != nil {
		s.statusCache.Remember(*inv)
	}
}

