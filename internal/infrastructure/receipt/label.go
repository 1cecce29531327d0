package receipt

import (
	"bytes"
	"html/template"

	"github.com/cockroachdb/errors"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/printer"
	"github.com/phpdave11/gofpdf"
)

const (
	labelWidth  = 58.0
	labelHeight = 40.0
	labelQRSize = 200
)

const labelHTMLTemplate = `<!doctype html>
<html dir="auto">
<head>
  <meta charset="utf-8" />
  <title>Label {{.Code}}</title>
  <style>
    @page { size: 58mm 40mm; margin: 0; }
    body { width: 58mm; margin: 0 auto; padding: 2mm; font-family: 'Tahoma', 'Arial', sans-serif; text-align: center; color: #000; }
    .name { font-size: 13px; font-weight: bold; }
    .code { font-family: monospace; font-size: 12px; letter-spacing: 2px; }
    .price { font-size: 12px; }
    img { width: 22mm; height: 22mm; }
  </style>
</head>
<body>
  <div class="name">{{.Name}}</div>
  <img src="{{.QRImage}}" alt="{{.Code}}" />
  <div class="code">{{.Code}}</div>
  <div class="price">{{.Price}}</div>
  <script>window.onload = function () { window.print(); };</script>
</body>
</html>`

var labelHTML = template.Must(template.New("label").Parse(labelHTMLTemplate))

type labelView struct {
	Name    string
	Code    string
	Price   string
	QRImage template.URL
}

// RenderLabelHTML renders a printable 58x40mm label with the product code as
// an embedded QR image.
func RenderLabelHTML(l *entity.ProductLabel) ([]byte, error) {
	qr, err := QRCodeDataURL(l.Code, labelQRSize)
	if err != nil {
		return nil, errors.Wrap(err, "label: encode qr")
	}
	data := labelView{Name: l.Name, Code: l.Code, Price: Money(l.Price, l.Currency), QRImage: qr}

	var buf bytes.Buffer
	if err := labelHTML.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "label: render html")
	}
	return buf.Bytes(), nil
}

// RenderLabelPDF renders the label on a single 58x40mm page.
func RenderLabelPDF(l *entity.ProductLabel) ([]byte, error) {
	png, err := QRCodePNG(l.Code, labelQRSize)
	if err != nil {
		return nil, errors.Wrap(err, "label: encode qr")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: labelWidth, Ht: labelHeight},
	})
	pdf.SetMargins(2, 2, 2)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 4, tr(l.Name), "", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("code", opts, bytes.NewReader(png))
	size := 22.0
	pdf.ImageOptions("code", (labelWidth-size)/2, pdf.GetY()+1, size, size, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + size + 1)

	pdf.SetFont("Courier", "B", 9)
	pdf.CellFormat(0, 4, tr(l.Code), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 4, tr(Money(l.Price, l.Currency)), "", 1, "C", false, 0, "")

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "label: render pdf")
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, errors.Wrap(err, "label: write pdf")
	}
	return out.Bytes(), nil
}

// RenderLabelESCPOS renders copies of the label for a thermal printer. Codes
// in CODE128 set B print as a barcode, anything else as a QR symbol.
func RenderLabelESCPOS(l *entity.ProductLabel, charWidth, copies int) []byte {
	if copies < 1 {
		copies = 1
	}
	doc := printer.NewDocument(charWidth)
	for i := 0; i < copies; i++ {
		doc.SetAlign(printer.AlignCenter).
			SetBold(true).
			Text(l.Name).
			SetBold(false)
		if printer.Code128Printable(l.Code) {
			doc.Barcode128(l.Code, 80)
		} else {
			doc.QRCode(l.Code, 6).Text(l.Code)
		}
		doc.Text(Money(l.Price, l.Currency)).
			SetAlign(printer.AlignLeft).
			FeedLines(3).
			PartialCut()
	}
	return doc.Bytes()
}
