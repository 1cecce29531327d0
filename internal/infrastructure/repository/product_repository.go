package repository

import (
	"context"
	"mime"
	"net/http"
	"net/url"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
)

type productRepository struct {
	api *backend.Client
}

// NewProductRepository creates a new product repository
func NewProductRepository(api *backend.Client) domainRepo.ProductRepository {
	return &productRepository{api: api}
}

type productListWire struct {
	Products   []productWire `json:"products"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) (*entity.ProductList, error) {
	if params == nil {
		params = &domainRepo.ProductFilterParams{}
	}
	q := query(
		Paginate(params.Pagination),
		Eq("category_id", params.CategoryID),
		Eq("search", params.Search),
		Decimal("min_price", params.MinPrice),
		Decimal("max_price", params.MaxPrice),
		Bool("in_stock_only", params.InStockOnly),
		Bool("low_stock_only", params.LowStockOnly),
	)

	var out productListWire
	if err := r.api.Get(ctx, "/products/", q, &out); err != nil {
		return nil, err
	}
	return &entity.ProductList{
		Products:   products(out.Products),
		Total:      out.Total,
		Page:       out.Page,
		PageSize:   out.PageSize,
		TotalPages: out.TotalPages,
	}, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out productWire
	if err := r.api.Get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	product := out.toEntity()
	return &product, nil
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var out productWire
	if err := r.api.Get(ctx, "/products/by-product-id/"+url.PathEscape(code), nil, &out); err != nil {
		return nil, err
	}
	product := out.toEntity()
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, input *domainRepo.ProductInput) (*entity.Product, error) {
	var out productWire
	if err := r.api.Post(ctx, "/products/", nil, newProductPayload(input), &out); err != nil {
		return nil, err
	}
	product := out.toEntity()
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id string, input *domainRepo.ProductInput) (*entity.Product, error) {
	var out productWire
	if err := r.api.Put(ctx, "/products/"+url.PathEscape(id), newProductPayload(input), &out); err != nil {
		return nil, err
	}
	product := out.toEntity()
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/products/"+url.PathEscape(id))
}

func (r *productRepository) SetStock(ctx context.Context, id string, quantity int) (*entity.Product, error) {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	var out productWire
	if err := r.api.Patch(ctx, "/products/"+url.PathEscape(id)+"/stock", nil, body, &out); err != nil {
		return nil, err
	}
	product := out.toEntity()
	return &product, nil
}

func (r *productRepository) ExportInventory(ctx context.Context) (*domainRepo.Export, error) {
	resp, err := r.api.Send(ctx, &backend.Request{Method: http.MethodGet, Path: "/products/export/inventory"})
	if err != nil {
		return nil, err
	}

	export := &domainRepo.Export{
		Filename:    "inventory.csv",
		ContentType: resp.Headers.Get("Content-Type"),
		Body:        resp.Body,
	}
	if export.ContentType == "" {
		export.ContentType = "text/csv"
	}
	if _, params, err := mime.ParseMediaType(resp.Headers.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			export.Filename = name
		}
	}
	return export, nil
}

type categoryRepository struct {
	api *backend.Client
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(api *backend.Client) domainRepo.CategoryRepository {
	return &categoryRepository{api: api}
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var out []categoryWire
	if err := r.api.Get(ctx, "/categories/", nil, &out); err != nil {
		return nil, err
	}
	categories := make([]entity.Category, 0, len(out))
	for _, w := range out {
		categories = append(categories, w.toEntity())
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, input *domainRepo.CategoryInput) (*entity.Category, error) {
	var out categoryWire
	body := categoryPayload{Name: input.Name, Description: input.Description, IsActive: input.IsActive}
	if err := r.api.Post(ctx, "/categories/", nil, body, &out); err != nil {
		return nil, err
	}
	category := out.toEntity()
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, input *domainRepo.CategoryInput) (*entity.Category, error) {
	var out categoryWire
	body := categoryPayload{Name: input.Name, Description: input.Description, IsActive: input.IsActive}
	if err := r.api.Put(ctx, "/categories/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	category := out.toEntity()
	return &category, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/categories/"+url.PathEscape(id))
}
