package entity

import "github.com/shopspring/decimal"

// Product is the gateway's read-only view of a catalog product.
type Product struct {
	ID              string           `json:"id"`
	ProductCode     string           `json:"product_id,omitempty"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"`
	BuyingPrice     *decimal.Decimal `json:"buying_price,omitempty"`
	FinalPrice      decimal.Decimal  `json:"final_price"`
	Quantity        int              `json:"quantity"`
	CategoryID      string           `json:"category_id"`
	CategoryName    string           `json:"category_name,omitempty"`
	Discount        decimal.Decimal  `json:"discount"`
	SKU             *string          `json:"sku,omitempty"`
	SizeUnit        string           `json:"size_unit,omitempty"`
	ExpiryDate      *Timestamp       `json:"expiry_date,omitempty"`
	IsActive        bool             `json:"is_active"`
	IsLowStock      bool             `json:"is_low_stock"`
	StockStatus     string           `json:"stock_status,omitempty"`
	IsExpired       bool             `json:"is_expired,omitempty"`
	DaysUntilExpiry *int             `json:"days_until_expiry,omitempty"`
	CreatedAt       Timestamp        `json:"created_at"`
	UpdatedAt       *Timestamp       `json:"updated_at,omitempty"`
}

// UnitPrice is the price captured into an invoice line when the product is added.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.SellingPrice != nil && p.SellingPrice.IsPositive() {
		return *p.SellingPrice
	}
	return p.Price
}

// InStock reports whether at least one unit is on hand.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// Category groups products in the catalog.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
}

// ProductList is one page of the backend product listing.
type ProductList struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
