package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	CustomerID string           `form:"customer_id"`
	Status     string           `form:"status"`
	MinTotal   *decimal.Decimal `form:"min_total"`
	MaxTotal   *decimal.Decimal `form:"max_total"`
	MinDate    *time.Time       `form:"min_date" time_format:"2006-01-02"`
	MaxDate    *time.Time       `form:"max_date" time_format:"2006-01-02"`
	Page       int              `form:"page"`
	PageSize   int              `form:"page_size"`
}

// UpdateStatusRequest changes an invoice's status.
type UpdateStatusRequest struct {
	Status string `form:"status" json:"status" binding:"required"`
}

// SetQuantityRequest sets a draft line's quantity; zero removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SelectCustomerRequest picks the draft's customer; an empty id clears it.
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// PaymentRequest updates a draft's discount, wallet and status inputs. Absent
// fields are left unchanged.
type PaymentRequest struct {
	Discount      *decimal.Decimal `json:"discount"`
	DiscountType  *string          `json:"discount_type"`
	WalletPayment *decimal.Decimal `json:"wallet_payment"`
	WalletAdd     *decimal.Decimal `json:"wallet_add"`
	Status        *string          `json:"status"`
	Notes         *string          `json:"notes"`
}

// MergeRequest toggles merging of repeated products into one line.
type MergeRequest struct {
	Merge *bool `json:"merge" binding:"required"`
}

// SearchRequest filters the draft catalog.
type SearchRequest struct {
	Query    string `form:"q"`
	Category string `form:"category"`
}
