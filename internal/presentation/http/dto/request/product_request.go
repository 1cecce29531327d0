package request

import "github.com/shopspring/decimal"

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search       string           `form:"search"`
	CategoryID   string           `form:"category_id"`
	MinPrice     *decimal.Decimal `form:"min_price"`
	MaxPrice     *decimal.Decimal `form:"max_price"`
	InStockOnly  *bool            `form:"in_stock_only"`
	LowStockOnly *bool            `form:"low_stock_only"`
	Page         int              `form:"page"`
	PageSize     int              `form:"page_size"`
}

// SetStockRequest overwrites a product's stock.
type SetStockRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// LowStockRequest reads the low-stock threshold.
type LowStockRequest struct {
	Threshold int `form:"threshold" binding:"omitempty,min=0"`
}

// PrintLabelRequest reads how many labels to print. Zero prints one.
type PrintLabelRequest struct {
	Copies int `form:"copies"`
}
