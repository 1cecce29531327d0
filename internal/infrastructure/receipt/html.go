package receipt

import (
	"bytes"
	"html/template"

	"github.com/cockroachdb/errors"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
)

const receiptHTMLTemplate = `<!doctype html>
<html dir="auto">
<head>
  <meta charset="utf-8" />
  <title>Receipt {{.InvoiceNo}}</title>
  <style>
    @page { size: 72mm auto; margin: 0; }
    * { box-sizing: border-box; }
    body { width: 72mm; margin: 0 auto; padding: 4mm 3mm; font-family: 'Tahoma', 'Arial', sans-serif; font-size: 11px; color: #000; }
    .center { text-align: center; }
    .store { font-size: 16px; font-weight: bold; }
    .muted { font-size: 10px; }
    .rule { border-top: 1px dashed #000; margin: 6px 0; }
    .row { display: flex; justify-content: space-between; gap: 6px; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 2px 0; text-align: start; font-size: 10px; }
    th.num, td.num { text-align: end; }
    .total { font-weight: bold; font-size: 13px; }
    .qr { margin-top: 8px; }
    .qr img { width: 120px; height: 120px; }
  </style>
</head>
<body>
  <div class="center">
    <div class="store">{{.Header.StoreName}}</div>
    {{if .Header.Tagline}}<div class="muted">{{.Header.Tagline}}</div>{{end}}
    {{if .Header.Address}}<div class="muted">{{.Header.Address}}</div>{{end}}
    {{if .Header.Phone}}<div class="muted">{{.Header.Phone}}</div>{{end}}
    {{if .Header.Hours}}<div class="muted">{{.Header.Hours}}</div>{{end}}
  </div>
  <div class="rule"></div>
  <div class="row"><div>Invoice</div><div>{{.InvoiceNo}}</div></div>
  <div class="row"><div>Date</div><div>{{.Date}}</div></div>
  {{if .Cashier}}<div class="row"><div>Cashier</div><div>{{.Cashier}}</div></div>{{end}}
  <div class="row"><div>Customer</div><div>{{.Customer.Name}}</div></div>
  {{if .Customer.Phone}}<div class="row"><div>Phone</div><div>{{.Customer.Phone}}</div></div>{{end}}
  {{if .Status}}<div class="row"><div>Status</div><div>{{.Status}}</div></div>{{end}}
  <div class="rule"></div>
  <table>
    <thead><tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr></thead>
    <tbody>
      {{range .Lines}}<tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Total}}</td></tr>
      {{end}}
    </tbody>
  </table>
  <div class="rule"></div>
  <div class="row"><div>Subtotal</div><div>{{.SubTotal}}</div></div>
  {{if .HasDiscount}}<div class="row"><div>Discount {{.DiscountLabel}}</div><div>-{{.Discount}}</div></div>{{end}}
  <div class="row"><div>Total after discount</div><div>{{.Total}}</div></div>
  {{if .HasWallet}}<div class="row"><div>Paid from wallet</div><div>-{{.WalletPayment}}</div></div>{{end}}
  <div class="row total"><div>Grand total</div><div>{{.GrandTotal}}</div></div>
  {{if or .HasWallet .HasWalletAdd}}
  <div class="rule"></div>
  {{if .HasWalletAdd}}<div class="row"><div>Added to wallet</div><div>{{.WalletAdd}}</div></div>{{end}}
  <div class="row"><div>Wallet balance</div><div>{{.Balance}}</div></div>
  {{end}}
  {{if .Notes}}<div class="rule"></div><div>{{.Notes}}</div>{{end}}
  <div class="rule"></div>
  {{if .Footer}}<div class="center">{{.Footer}}</div>{{end}}
  {{if .QRImage}}<div class="center qr"><img src="{{.QRImage}}" alt="QR" /><div class="muted">{{.QRTarget}}</div></div>{{end}}
  <script>window.onload = function () { window.print(); };</script>
</body>
</html>`

var receiptHTML = template.Must(template.New("receipt").Parse(receiptHTMLTemplate))

type htmlView struct {
	view
	QRImage template.URL
}

// RenderHTML renders a self-contained 72mm receipt page. The QR target is
// embedded as a PNG data URL and the page opens the print dialog on load.
func RenderHTML(r *entity.Receipt) ([]byte, error) {
	data := htmlView{view: newView(r)}
	if r.QRTarget != "" {
		qr, err := QRCodeDataURL(r.QRTarget, QRSize)
		if err != nil {
			return nil, errors.Wrap(err, "receipt: encode qr")
		}
		data.QRImage = qr
	}

	var buf bytes.Buffer
	if err := receiptHTML.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "receipt: render html")
	}
	return buf.Bytes(), nil
}
