package repository

import (
	"context"
	"net/url"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
)

type invoiceRepository struct {
	api *backend.Client
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(api *backend.Client) domainRepo.InvoiceRepository {
	return &invoiceRepository{api: api}
}

type invoiceListWire struct {
	Invoices   []invoiceWire `json:"invoices"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) (*entity.InvoiceList, error) {
	if params == nil {
		params = &domainRepo.InvoiceFilterParams{}
	}
	q := query(
		Paginate(params.Pagination),
		Eq("customer_id", params.CustomerID),
		Eq("status", params.Status.String()),
		Decimal("min_total", params.MinTotal),
		Decimal("max_total", params.MaxTotal),
		Date("min_date", params.MinDate),
		Date("max_date", params.MaxDate),
	)

	var out invoiceListWire
	if err := r.api.Get(ctx, "/invoices/", q, &out); err != nil {
		return nil, err
	}
	return &entity.InvoiceList{
		Invoices:   invoices(out.Invoices),
		Total:      out.Total,
		Page:       out.Page,
		PageSize:   out.PageSize,
		TotalPages: out.TotalPages,
	}, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.fetch(ctx, "/invoices/"+url.PathEscape(id))
}

func (r *invoiceRepository) GetForCustomer(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.fetch(ctx, "/invoices/my-invoices/"+url.PathEscape(id))
}

func (r *invoiceRepository) fetch(ctx context.Context, path string) (*entity.Invoice, error) {
	var out invoiceWire
	if err := r.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	inv := out.toEntity()
	return &inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, input *entity.InvoiceInput) (*entity.Invoice, error) {
	var out invoiceWire
	if err := r.api.Post(ctx, "/invoices/", nil, newInvoicePayload(input), &out); err != nil {
		return nil, err
	}
	inv := out.toEntity()
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, id string, input *entity.InvoiceInput) (*entity.Invoice, error) {
	var out invoiceWire
	if err := r.api.Put(ctx, "/invoices/"+url.PathEscape(id), newInvoicePayload(input), &out); err != nil {
		return nil, err
	}
	inv := out.toEntity()
	return &inv, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status enum.InvoiceStatus) (*entity.Invoice, error) {
	var out invoiceWire
	q := query(Eq("status", status.String()))
	if err := r.api.Patch(ctx, "/invoices/"+url.PathEscape(id)+"/status", q, nil, &out); err != nil {
		return nil, err
	}
	inv := out.toEntity()
	return &inv, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/invoices/"+url.PathEscape(id))
}

func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID string) ([]entity.Invoice, error) {
	var out []invoiceWire
	if err := r.api.Get(ctx, "/invoices/customer/"+url.PathEscape(customerID), nil, &out); err != nil {
		return nil, err
	}
	return invoices(out), nil
}

func (r *invoiceRepository) Stats(ctx context.Context) (*entity.InvoiceStats, error) {
	var out entity.InvoiceStats
	if err := r.api.Get(ctx, "/invoices/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
