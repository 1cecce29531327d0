package invoice

import (
	"testing"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(price string, qty int) LineItem {
	l := LineItem{ProductID: price, UnitPrice: d(price)}
	l.setQuantity(qty)
	return l
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name          string
		items         []LineItem
		discount      string
		kind          enum.DiscountType
		walletPayment string
		walletAdd     string
		want          Totals
	}{
		{
			name:          "percentage discount with wallet clamped to total",
			items:         []LineItem{line("50.00", 2)},
			discount:      "10",
			kind:          enum.DiscountTypePercentage,
			walletPayment: "200",
			want: Totals{
				Subtotal: d("100"), DiscountAmount: d("10"), Total: d("90"),
				WalletPayment: d("90"), Remaining: d("0"), WalletAdd: d("0"),
			},
		},
		{
			name:          "fixed discount larger than subtotal floors total at zero",
			items:         []LineItem{line("20", 1)},
			discount:      "35",
			kind:          enum.DiscountTypeFixed,
			walletPayment: "5",
			want: Totals{
				Subtotal: d("20"), DiscountAmount: d("35"), Total: d("0"),
				WalletPayment: d("0"), Remaining: d("0"), WalletAdd: d("0"),
			},
		},
		{
			name:          "negative wallet inputs clamp to zero",
			items:         []LineItem{line("12.50", 4)},
			discount:      "0",
			kind:          enum.DiscountTypeFixed,
			walletPayment: "-3",
			walletAdd:     "-10",
			want: Totals{
				Subtotal: d("50"), DiscountAmount: d("0"), Total: d("50"),
				WalletPayment: d("0"), Remaining: d("50"), WalletAdd: d("0"),
			},
		},
		{
			name:          "partial wallet payment leaves remainder",
			items:         []LineItem{line("33.33", 3)},
			discount:      "15",
			kind:          enum.DiscountTypePercentage,
			walletPayment: "40",
			walletAdd:     "25",
			want: Totals{
				Subtotal: d("99.99"), DiscountAmount: d("15"), Total: d("84.99"),
				WalletPayment: d("40"), Remaining: d("44.99"), WalletAdd: d("25"),
			},
		},
		{
			name: "empty invoice",
			want: Totals{
				Subtotal: d("0"), DiscountAmount: d("0"), Total: d("0"),
				WalletPayment: d("0"), Remaining: d("0"), WalletAdd: d("0"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount := decimal.Zero
			if tt.discount != "" {
				discount = d(tt.discount)
			}
			wp := decimal.Zero
			if tt.walletPayment != "" {
				wp = d(tt.walletPayment)
			}
			wa := decimal.Zero
			if tt.walletAdd != "" {
				wa = d(tt.walletAdd)
			}

			got := CalculateTotals(tt.items, discount, tt.kind, wp, wa)

			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.want.DiscountAmount.Equal(got.DiscountAmount), "discount %s", got.DiscountAmount)
			assert.True(t, tt.want.Total.Equal(got.Total), "total %s", got.Total)
			assert.True(t, tt.want.WalletPayment.Equal(got.WalletPayment), "wallet %s", got.WalletPayment)
			assert.True(t, tt.want.Remaining.Equal(got.Remaining), "remaining %s", got.Remaining)
			assert.True(t, tt.want.WalletAdd.Equal(got.WalletAdd), "wallet add %s", got.WalletAdd)
		})
	}
}

func TestClampWalletPayment(t *testing.T) {
	total := d("90")
	assert.True(t, ClampWalletPayment(d("200"), total).Equal(total))
	assert.True(t, ClampWalletPayment(d("-1"), total).IsZero())
	assert.True(t, ClampWalletPayment(d("30.25"), total).Equal(d("30.25")))
	assert.True(t, ClampWalletPayment(d("5"), decimal.Zero).IsZero())
}

func TestDiscountAmountRoundsPercentages(t *testing.T) {
	got := DiscountAmount(d("10"), d("33.333"), enum.DiscountTypePercentage)
	assert.Equal(t, "3.33", got.StringFixed(2))
	assert.True(t, got.Equal(d("3.33")))

	assert.True(t, DiscountAmount(d("10"), d("-5"), enum.DiscountTypeFixed).IsZero())
	assert.True(t, DiscountAmount(d("10"), d("5"), "").Equal(d("0.5")), "empty kind means percentage")
}

func TestInvoiceTotals(t *testing.T) {
	inv := &entity.Invoice{
		Discount:      d("10"),
		DiscountType:  enum.DiscountTypePercentage,
		WalletPayment: d("200"),
		Items:         []entity.InvoiceItem{{ProductID: "p1", Quantity: 2, Price: d("50")}},
	}

	got := InvoiceTotals(inv)
	assert.True(t, d("100").Equal(got.Subtotal))
	assert.True(t, d("10").Equal(got.DiscountAmount))
	assert.True(t, d("90").Equal(got.Total))
	assert.True(t, d("90").Equal(got.WalletPayment))
	assert.True(t, got.Remaining.IsZero())
}
