package request

import "github.com/shopspring/decimal"

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search     string           `form:"search"`
	HasBalance *bool            `form:"has_balance"`
	Status     string           `form:"status"`
	MinBalance *decimal.Decimal `form:"min_balance"`
	MaxBalance *decimal.Decimal `form:"max_balance"`
	Page       int              `form:"page"`
	PageSize   int              `form:"page_size"`
}

// SetBalanceRequest overwrites a customer's wallet balance.
type SetBalanceRequest struct {
	WalletBalance decimal.Decimal `json:"wallet_balance" binding:"required"`
}
