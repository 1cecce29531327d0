package repository

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// The backend stores documents in MongoDB and some responses still carry the
// raw "_id" key instead of "id". Responses are decoded through these wrappers.

type productWire struct {
	entity.Product
	MongoID string `json:"_id"`
}

func (w productWire) toEntity() entity.Product {
	p := w.Product
	if p.ID == "" {
		p.ID = w.MongoID
	}
	return p
}

type categoryWire struct {
	entity.Category
	MongoID string `json:"_id"`
}

func (w categoryWire) toEntity() entity.Category {
	c := w.Category
	if c.ID == "" {
		c.ID = w.MongoID
	}
	return c
}

type customerWire struct {
	entity.Customer
	MongoID string `json:"_id"`
}

func (w customerWire) toEntity() entity.Customer {
	c := w.Customer
	if c.ID == "" {
		c.ID = w.MongoID
	}
	return c
}

type invoiceWire struct {
	entity.Invoice
	MongoID string `json:"_id"`
}

func (w invoiceWire) toEntity() entity.Invoice {
	inv := w.Invoice
	if inv.ID == "" {
		inv.ID = w.MongoID
	}
	if inv.Items == nil {
		inv.Items = []entity.InvoiceItem{}
	}
	return inv
}

func products(ws []productWire) []entity.Product {
	return lo.Map(ws, func(w productWire, _ int) entity.Product { return w.toEntity() })
}

func invoices(ws []invoiceWire) []entity.Invoice {
	return lo.Map(ws, func(w invoiceWire, _ int) entity.Invoice { return w.toEntity() })
}

// Money travels to the backend as JSON numbers.

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func optMoney(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	return lo.ToPtr(d.InexactFloat64())
}

type productPayload struct {
	Name         *string  `json:"name,omitempty"`
	ProductID    *string  `json:"product_id,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	SellingPrice *float64 `json:"selling_price,omitempty"`
	BuyingPrice  *float64 `json:"buying_price,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty"`
	Discount     *float64 `json:"discount,omitempty"`
	SKU          *string  `json:"sku,omitempty"`
	SizeUnit     *string  `json:"size_unit,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func newProductPayload(in *domainRepo.ProductInput) productPayload {
	return productPayload{
		Name:         in.Name,
		ProductID:    in.ProductCode,
		Description:  in.Description,
		Price:        optMoney(in.Price),
		SellingPrice: optMoney(in.SellingPrice),
		BuyingPrice:  optMoney(in.BuyingPrice),
		Quantity:     in.Quantity,
		CategoryID:   in.CategoryID,
		Discount:     optMoney(in.Discount),
		SKU:          in.SKU,
		SizeUnit:     in.SizeUnit,
		IsActive:     in.IsActive,
	}
}

type categoryPayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type customerPayload struct {
	Name          *string  `json:"name,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	WalletBalance *float64 `json:"wallet_balance,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
	FirstLogin    *bool    `json:"first_login,omitempty"`
}

func newCustomerPayload(in *domainRepo.CustomerInput) customerPayload {
	return customerPayload{
		Name:          in.Name,
		Phone:         in.Phone,
		WalletBalance: optMoney(in.WalletBalance),
		Notes:         in.Notes,
		IsActive:      in.IsActive,
		FirstLogin:    in.FirstLogin,
	}
}

type walletPayload struct {
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Description     *string `json:"description,omitempty"`
}

type invoiceItemPayload struct {
	ID        string  `json:"id,omitempty"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type invoicePayload struct {
	CustomerID    string               `json:"customer_id"`
	Status        string               `json:"status"`
	Notes         *string              `json:"notes,omitempty"`
	WalletPayment float64              `json:"wallet_payment"`
	WalletAdd     float64              `json:"wallet_add"`
	Discount      float64              `json:"discount"`
	DiscountType  string               `json:"discount_type"`
	Items         []invoiceItemPayload `json:"invoice_items"`
}

func newInvoicePayload(in *entity.InvoiceInput) invoicePayload {
	return invoicePayload{
		CustomerID:    in.CustomerID,
		Status:        in.Status.String(),
		Notes:         in.Notes,
		WalletPayment: money(in.WalletPayment),
		WalletAdd:     money(in.WalletAdd),
		Discount:      money(in.Discount),
		DiscountType:  string(in.DiscountType),
		Items: lo.Map(in.Items, func(item entity.InvoiceItemInput, _ int) invoiceItemPayload {
			return invoiceItemPayload{
				ID:        item.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     money(item.Price),
			}
		}),
	}
}
