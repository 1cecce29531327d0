package receipt

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/phpdave11/gofpdf"
)

const (
	pdfWidth  = 72.0
	pdfMargin = 4.0
)

// RenderPDF renders the receipt on a 72mm wide page tall enough for every line.
// Core PDF fonts cover Latin-1 only; other scripts are transliterated by gofpdf.
func RenderPDF(r *entity.Receipt) ([]byte, error) {
	v := newView(r)
	height := 120.0 + float64(len(v.Lines))*9
	if r.QRTarget != "" {
		height += 40
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pdfWidth, Ht: height},
	})
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	center := func(size float64, style, text string) {
		pdf.SetFont("Arial", style, size)
		pdf.CellFormat(0, size*0.45, tr(text), "", 1, "C", false, 0, "")
	}
	row := func(style, left, right string) {
		pdf.SetFont("Arial", style, 8)
		pdf.CellFormat(40, 4, tr(left), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 4, tr(right), "", 1, "R", false, 0, "")
	}
	rule := func() {
		y := pdf.GetY() + 1
		pdf.Line(pdfMargin, y, pdfWidth-pdfMargin, y)
		pdf.Ln(2)
	}

	center(12, "B", r.Header.StoreName)
	for _, line := range []string{r.Header.Tagline, r.Header.Address, r.Header.Phone, r.Header.Hours} {
		if line != "" {
			center(7, "", line)
		}
	}
	rule()

	row("", "Invoice", r.InvoiceNo)
	row("", "Date", v.Date)
	if r.Cashier != "" {
		row("", "Cashier", r.Cashier)
	}
	row("", "Customer", r.Customer.Name)
	if r.Customer.Phone != "" {
		row("", "Phone", r.Customer.Phone)
	}
	if r.Status != "" {
		row("", "Status", r.Status)
	}
	rule()

	for _, item := range v.Lines {
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 4, tr(item.Name), "", "L", false)
		row("", fmt.Sprintf("  %d x %s", item.Quantity, item.UnitPrice), item.Total)
	}
	rule()

	row("", "Subtotal", v.SubTotal)
	if v.HasDiscount {
		row("", "Discount "+r.DiscountLabel, "-"+v.Discount)
	}
	row("", "Total after discount", v.Total)
	if v.HasWallet {
		row("", "Paid from wallet", "-"+v.WalletPayment)
	}
	row("B", "Grand total", v.GrandTotal)
	if v.HasWallet || v.HasWalletAdd {
		rule()
		if v.HasWalletAdd {
			row("", "Added to wallet", v.WalletAdd)
		}
		row("", "Wallet balance", v.Balance)
	}
	if r.Notes != "" {
		rule()
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 4, tr(r.Notes), "", "L", false)
	}
	rule()
	if r.Footer != "" {
		center(8, "", r.Footer)
	}

	if r.QRTarget != "" {
		png, err := QRCodePNG(r.QRTarget, QRSize)
		if err != nil {
			return nil, errors.Wrap(err, "receipt: encode qr")
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
		size := 30.0
		pdf.ImageOptions("qr", (pdfWidth-size)/2, pdf.GetY()+2, size, size, true, opts, 0, "")
	}

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "receipt: render pdf")
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, errors.Wrap(err, "receipt: write pdf")
	}
	return out.Bytes(), nil
}
