package repository

import (
	"context"
	"net/url"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
	"github.com/samber/lo"
)

type customerRepository struct {
	api *backend.Client
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(api *backend.Client) domainRepo.CustomerRepository {
	return &customerRepository{api: api}
}

type customerListWire struct {
	Customers  []customerWire `json:"customers"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) (*entity.CustomerList, error) {
	if params == nil {
		params = &domainRepo.CustomerFilterParams{}
	}
	q := query(
		Paginate(params.Pagination),
		Eq("search", params.Search),
		Bool("has_balance", params.HasBalance),
		Eq("status", params.Status),
		Decimal("min_balance", params.MinBalance),
		Decimal("max_balance", params.MaxBalance),
	)

	var out customerListWire
	if err := r.api.Get(ctx, "/customers/", q, &out); err != nil {
		return nil, err
	}
	return &entity.CustomerList{
		Customers:  lo.Map(out.Customers, func(w customerWire, _ int) entity.Customer { return w.toEntity() }),
		Total:      out.Total,
		Page:       out.Page,
		PageSize:   out.PageSize,
		TotalPages: out.TotalPages,
	}, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out customerWire
	if err := r.api.Get(ctx, "/customers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	customer := out.toEntity()
	return &customer, nil
}

func (r *customerRepository) Me(ctx context.Context) (*entity.Customer, error) {
	var out customerWire
	if err := r.api.Get(ctx, "/customers/me", nil, &out); err != nil {
		return nil, err
	}
	customer := out.toEntity()
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, input *domainRepo.CustomerInput) (*entity.Customer, error) {
	var out customerWire
	if err := r.api.Post(ctx, "/customers/", nil, newCustomerPayload(input), &out); err != nil {
		return nil, err
	}
	customer := out.toEntity()
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, input *domainRepo.CustomerInput) (*entity.Customer, error) {
	var out customerWire
	if err := r.api.Put(ctx, "/customers/"+url.PathEscape(id), newCustomerPayload(input), &out); err != nil {
		return nil, err
	}
	customer := out.toEntity()
	return &customer, nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/customers/"+url.PathEscape(id))
}

func (r *customerRepository) Stats(ctx context.Context) (*entity.CustomerStats, error) {
	var out entity.CustomerStats
	if err := r.api.Get(ctx, "/customers/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *customerRepository) AdjustWallet(ctx context.Context, id string, adj *entity.WalletAdjustment) (*entity.Customer, error) {
	body := walletPayload{
		Amount:          money(adj.Amount),
		TransactionType: string(adj.Type),
		Description:     adj.Description,
	}
	var out customerWire
	if err := r.api.Patch(ctx, "/customers/"+url.PathEscape(id)+"/wallet", nil, body, &out); err != nil {
		return nil, err
	}
	customer := out.toEntity()
	return &customer, nil
}
