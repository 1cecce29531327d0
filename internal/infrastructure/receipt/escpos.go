package receipt

import (
	"fmt"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/printer"
)

// RenderESCPOS converts a receipt into ESC/POS bytes for a thermal printer
// with charWidth columns.
func RenderESCPOS(r *entity.Receipt, charWidth int) []byte {
	v := newView(r)
	doc := printer.NewDocument(charWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	for _, line := range []string{r.Header.Tagline, r.Header.Address, r.Header.Phone, r.Header.Hours} {
		if line != "" {
			doc.Text(line)
		}
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", v.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	doc.KeyValue("Customer:", r.Customer.Name)
	if r.Customer.Phone != "" {
		doc.KeyValue("Phone:", r.Customer.Phone)
	}
	if r.Status != "" {
		doc.KeyValue("Status:", r.Status)
	}
	doc.Separator('-')

	for _, item := range v.Lines {
		doc.ItemLine(item.Quantity, item.Name, item.Total)
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice)
		}
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal:", v.SubTotal)
	if v.HasDiscount {
		doc.KeyValue(fmt.Sprintf("Discount %s:", r.DiscountLabel), "-"+v.Discount)
	}
	doc.KeyValue("Total after discount:", v.Total)
	if v.HasWallet {
		doc.KeyValue("Paid from wallet:", "-"+v.WalletPayment)
	}
	doc.SetBold(true).
		KeyValue("GRAND TOTAL:", v.GrandTotal).
		SetBold(false)
	if v.HasWallet || v.HasWalletAdd {
		if v.HasWalletAdd {
			doc.KeyValue("Added to wallet:", v.WalletAdd)
		}
		doc.KeyValue("Wallet balance:", v.Balance)
	}
	if r.Notes != "" {
		doc.Separator('-').Text(r.Notes)
	}
	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter)
	if r.Footer != "" {
		doc.LineFeed().Text(r.Footer)
	}
	if r.QRTarget != "" {
		doc.LineFeed().QRCode(r.QRTarget, 6)
	}
	doc.SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
