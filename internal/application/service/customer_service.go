package service

import (
	"context"
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/validator"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create and update customer input
type CustomerInput struct {
	Name          *string          `json:"name"`
	Phone         *string          `json:"phone"`
	WalletBalance *decimal.Decimal `json:"wallet_balance" validate:"omitempty,gte=0"`
	Notes         *string          `json:"notes"`
	IsActive      *bool            `json:"is_active"`
	FirstLogin    *bool            `json:"first_login"`
}

func (in *CustomerInput) check(create bool) error {
	var fieldErrors []apperror.FieldError
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" || create && in.Name == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.Phone != nil {
		if err := validatePhone(strings.TrimSpace(*in.Phone)); err != nil {
			fieldErrors = append(fieldErrors, apperror.GetAppError(err).Errors...)
		}
	} else if create {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return validator.ValidateRequest(in)
}

func (in *CustomerInput) toRepo() *repository.CustomerInput {
	return &repository.CustomerInput{
		Name:          trimmed(in.Name),
		Phone:         trimmed(in.Phone),
		WalletBalance: in.WalletBalance,
		Notes:         in.Notes,
		IsActive:      in.IsActive,
		FirstLogin:    in.FirstLogin,
	}
}

// ListCustomers returns one page of customers matching the filters
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if params.Status != "" && params.Status != "active" && params.Status != "inactive" && params.Status != "first_login" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "must be one of: active inactive first_login"}})
	}

	list, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(list.Customers,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PageSize, list.Total, list.TotalPages)), nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if err := input.check(true); err != nil {
		return nil, err
	}
	return s.customerRepo.Create(ctx, input.toRepo())
}

// UpdateCustomer applies a partial update to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, input *CustomerInput) (*entity.Customer, error) {
	if err := input.check(false); err != nil {
		return nil, err
	}
	return s.customerRepo.Update(ctx, id, input.toRepo())
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.customerRepo.Delete(ctx, id)
}

// Stats returns customer base statistics
func (s *CustomerService) Stats(ctx context.Context) (*entity.CustomerStats, error) {
	return s.customerRepo.Stats(ctx)
}

// WalletAdjustInput represents a manual wallet credit or debit
type WalletAdjustInput struct {
	Amount      decimal.Decimal            `json:"amount" validate:"gt=0"`
	Type        enum.WalletTransactionType `json:"transaction_type" validate:"required,oneof=add deduct"`
	Description *string                    `json:"description"`
}

// AdjustWallet credits or debits a customer's wallet. Deductions larger than
// the balance are refused by the backend.
func (s *CustomerService) AdjustWallet(ctx context.Context, id string, input *WalletAdjustInput) (*entity.Customer, error) {
	if err := validator.ValidateRequest(input); err != nil {
		return nil, err
	}
	return s.customerRepo.AdjustWallet(ctx, id, &entity.WalletAdjustment{
		Amount:      input.Amount,
		Type:        input.Type,
		Description: input.Description,
	})
}

// SetWalletBalance overwrites a customer's wallet balance.
func (s *CustomerService) SetWalletBalance(ctx context.Context, id string, balance decimal.Decimal) (*entity.Customer, error) {
	if balance.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "wallet_balance", Message: "must be at least 0"}})
	}
	return s.customerRepo.Update(ctx, id, &repository.CustomerInput{WalletBalance: &balance})
}
