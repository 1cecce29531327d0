package entity

import "github.com/shopspring/decimal"

// ProductLabel is a shelf label carrying a product's scannable code.
type ProductLabel struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	StoreName string          `json:"store_name"`
}
