package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the store branding printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Tagline   string `json:"tagline,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Hours     string `json:"hours,omitempty"`
}

// ReceiptCustomer is the customer block of a receipt.
type ReceiptCustomer struct {
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object composed at print time from a draft or a saved invoice.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	InvoiceNo     string          `json:"invoice_no,omitempty"`
	IssuedAt      time.Time       `json:"issued_at"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      ReceiptCustomer `json:"customer"`
	Items         []ReceiptItem   `json:"items"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountLabel string          `json:"discount_label,omitempty"`
	Total         decimal.Decimal `json:"total"`
	WalletPayment decimal.Decimal `json:"wallet_payment"`
	WalletAdd     decimal.Decimal `json:"wallet_add"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Status        string          `json:"status,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Currency      string          `json:"currency"`
	Footer        string          `json:"footer,omitempty"`
	QRTarget      string          `json:"qr_target,omitempty"`
}
