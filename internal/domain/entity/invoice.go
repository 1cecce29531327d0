package entity

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Invoice is a saved invoice as returned by the backend.
type Invoice struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	Status        enum.InvoiceStatus `json:"status"`
	Notes         *string            `json:"notes,omitempty"`
	WalletPayment decimal.Decimal    `json:"wallet_payment"`
	WalletAdd     decimal.Decimal    `json:"wallet_add"`
	Discount      decimal.Decimal    `json:"discount"`
	DiscountType  enum.DiscountType  `json:"discount_type"`
	Total         decimal.Decimal    `json:"total"`
	Items         []InvoiceItem      `json:"invoice_items"`
	CreatedAt     Timestamp          `json:"created_at"`
	UpdatedAt     *Timestamp         `json:"updated_at,omitempty"`
}

// InvoiceItem is a persisted invoice line. ProductName is resolved by the gateway.
type InvoiceItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal returns quantity times price.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// QuantityByProduct sums item quantities per product id.
func (inv *Invoice) QuantityByProduct() map[string]int {
	out := make(map[string]int, len(inv.Items))
	for _, item := range inv.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

// InvoiceList is one page of the backend invoice listing.
type InvoiceList struct {
	Invoices   []Invoice `json:"invoices"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// InvoiceStats summarises invoice volume and revenue.
type InvoiceStats struct {
	TotalInvoices       int             `json:"total_invoices"`
	PaidInvoices        int             `json:"paid_invoices"`
	PendingInvoices     int             `json:"pending_invoices"`
	PartialInvoices     int             `json:"partial_invoices"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	AverageInvoiceValue decimal.Decimal `json:"average_invoice_value"`
	TodayInvoices       int             `json:"today_invoices"`
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
}

// InvoiceItemInput is one line of an invoice create or update request.
type InvoiceItemInput struct {
	ID        string          `json:"id,omitempty"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// InvoiceInput is the full invoice payload sent to the backend.
type InvoiceInput struct {
	CustomerID    string             `json:"customer_id"`
	Status        enum.InvoiceStatus `json:"status"`
	Notes         *string            `json:"notes,omitempty"`
	WalletPayment decimal.Decimal    `json:"wallet_payment"`
	WalletAdd     decimal.Decimal    `json:"wallet_add"`
	Discount      decimal.Decimal    `json:"discount"`
	DiscountType  enum.DiscountType  `json:"discount_type"`
	Items         []InvoiceItemInput `json:"invoice_items"`
}
