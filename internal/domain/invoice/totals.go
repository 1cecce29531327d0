package invoice

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the derived money summary of an invoice.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	WalletPayment  decimal.Decimal `json:"wallet_payment"`
	WalletAdd      decimal.Decimal `json:"wallet_add"`
	Remaining      decimal.Decimal `json:"remaining"`
}

// Subtotal sums line totals.
func Subtotal(items []LineItem) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, l LineItem, _ int) decimal.Decimal {
		return acc.Add(l.LineTotal)
	}, decimal.Zero)
}

// DiscountAmount converts a discount value to money. Percentages are taken
// of the subtotal and rounded to two places.
func DiscountAmount(subtotal, discount decimal.Decimal, kind enum.DiscountType) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if kind.OrDefault() == enum.DiscountTypePercentage {
		return subtotal.Mul(discount).Div(hundred).Round(2)
	}
	return discount
}

// ClampWalletPayment bounds a requested wallet payment to [0, total].
func ClampWalletPayment(raw, total decimal.Decimal) decimal.Decimal {
	if raw.IsNegative() || total.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(raw, total)
}

// ClampWalletAdd floors a wallet top-up at zero.
func ClampWalletAdd(raw decimal.Decimal) decimal.Decimal {
	return decimal.Max(raw, decimal.Zero)
}

// CalculateTotals derives subtotal, discount, total, the clamped wallet
// payment and the remaining amount due.
func CalculateTotals(items []LineItem, discount decimal.Decimal, kind enum.DiscountType, walletPayment, walletAdd decimal.Decimal) Totals {
	subtotal := Subtotal(items)
	discountAmount := DiscountAmount(subtotal, discount, kind)
	total := decimal.Max(subtotal.Sub(discountAmount), decimal.Zero)
	paid := ClampWalletPayment(walletPayment, total)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		WalletPayment:  paid,
		WalletAdd:      ClampWalletAdd(walletAdd),
		Remaining:      decimal.Max(total.Sub(paid), decimal.Zero),
	}
}

// InvoiceTotals recomputes the money summary of a saved invoice from its items.
func InvoiceTotals(inv *entity.Invoice) Totals {
	lines := lo.Map(inv.Items, func(item entity.InvoiceItem, _ int) LineItem {
		return LineItem{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.Price, LineTotal: item.LineTotal()}
	})
	return CalculateTotals(lines, inv.Discount, inv.DiscountType, inv.WalletPayment, inv.WalletAdd)
}
