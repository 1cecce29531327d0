package receipt

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// view is a receipt with every amount pre-formatted for output.
type view struct {
	*entity.Receipt
	Date          string
	Lines         []viewLine
	SubTotal      string
	Discount      string
	HasDiscount   bool
	Total         string
	WalletPayment string
	HasWallet     bool
	WalletAdd     string
	HasWalletAdd  bool
	GrandTotal    string
	Balance       string
}

type viewLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

func newView(r *entity.Receipt) view {
	money := func(d decimal.Decimal) string { return Money(d, r.Currency) }

	v := view{
		Receipt:       r,
		Date:          r.IssuedAt.Format("2006-01-02 15:04"),
		SubTotal:      money(r.SubTotal),
		Discount:      money(r.Discount),
		HasDiscount:   r.Discount.IsPositive(),
		Total:         money(r.Total),
		WalletPayment: money(r.WalletPayment),
		HasWallet:     r.WalletPayment.IsPositive(),
		WalletAdd:     money(r.WalletAdd),
		HasWalletAdd:  r.WalletAdd.IsPositive(),
		GrandTotal:    money(r.GrandTotal),
		Balance:       money(r.Customer.WalletBalance),
	}
	for _, item := range r.Items {
		v.Lines = append(v.Lines, viewLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Total:     item.Total.StringFixed(2),
		})
	}
	return v
}

// Money formats an amount with two decimals and the currency code.
func Money(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + currency
}
