package service

import (
	"context"
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

const catalogWorkers = 4

// ProductService handles product-related operations
type ProductService struct {
	productRepo       repository.ProductRepository
	lowStockThreshold int
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, lowStockThreshold int) *ProductService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &ProductService{
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// ProductInput represents the create and update product input. Nil fields are
// left unchanged on update.
type ProductInput struct {
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	ProductCode  *string          `json:"product_id"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,gte=0"`
	BuyingPrice  *decimal.Decimal `json:"buying_price" validate:"omitempty,gte=0"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=0"`
	CategoryID   *string          `json:"category_id"`
	Discount     *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=100"`
	SKU          *string          `json:"sku"`
	SizeUnit     *string          `json:"size_unit"`
	IsActive     *bool            `json:"is_active"`
}

func (in *ProductInput) toRepo() *repository.ProductInput {
	return &repository.ProductInput{
		Name:         trimmed(in.Name),
		ProductCode:  trimmed(in.ProductCode),
		Description:  in.Description,
		Price:        in.Price,
		SellingPrice: in.SellingPrice,
		BuyingPrice:  in.BuyingPrice,
		Quantity:     in.Quantity,
		CategoryID:   in.CategoryID,
		Discount:     in.Discount,
		SKU:          in.SKU,
		SizeUnit:     in.SizeUnit,
		IsActive:     in.IsActive,
	}
}

// ListProducts returns one page of products matching the filters
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	list, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(list.Products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PageSize, list.Total, list.TotalPages)), nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// GetProductByCode resolves a scanned product code.
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewBadRequestError("Product code is required")
	}
	return s.productRepo.GetByCode(ctx, code)
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Price == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "is required"})
	}
	if input.CategoryID == nil || *input.CategoryID == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category_id", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if err := validator.ValidateRequest(input); err != nil {
		return nil, err
	}
	if input.Quantity == nil {
		zero := 0
		input.Quantity = &zero
	}
	return s.productRepo.Create(ctx, input.toRepo())
}

// UpdateProduct applies a partial update to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error) {
	if err := validator.ValidateRequest(input); err != nil {
		return nil, err
	}
	return s.productRepo.Update(ctx, id, input.toRepo())
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

// SetStock writes an absolute stock quantity.
func (s *ProductService) SetStock(ctx context.Context, id string, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "quantity", Message: "must be at least 0"}})
	}
	return s.productRepo.SetStock(ctx, id, quantity)
}

// LowStock lists products at or below threshold; zero uses the configured threshold.
func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}
	catalog, err := s.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0)
	for _, p := range catalog {
		if p.Quantity <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

// ExportInventory passes the backend inventory export through.
func (s *ProductService) ExportInventory(ctx context.Context) (*repository.Export, error) {
	return s.productRepo.ExportInventory(ctx)
}

// AllProducts fetches every page of the product listing. Pages after the
// first are requested concurrently.
func (s *ProductService) AllProducts(ctx context.Context) ([]entity.Product, error) {
	first, err := s.productRepo.List(ctx, &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PageSize: pagination.MaxPageSize},
	})
	if err != nil {
		return nil, err
	}
	products := append([]entity.Product{}, first.Products...)
	if first.TotalPages <= 1 {
		return products, nil
	}

	p := pool.NewWithResults[[]entity.Product]().WithErrors().WithMaxGoroutines(catalogWorkers)
	for page := 2; page <= first.TotalPages; page++ {
		page := page
		p.Go(func() ([]entity.Product, error) {
			list, err := s.productRepo.List(ctx, &repository.ProductFilterParams{
				Pagination: &pagination.PaginationParams{Page: page, PageSize: pagination.MaxPageSize},
			})
			if err != nil {
				return nil, err
			}
			return list.Products, nil
		})
	}
	pages, err := p.Wait()
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		products = append(products, page...)
	}
	return products, nil
}

// LoadCatalog builds the cached product view a draft validates against.
func (s *ProductService) LoadCatalog(ctx context.Context) (invoice.Catalog, error) {
	products, err := s.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	return invoice.NewCatalog(products), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
