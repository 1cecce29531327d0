package receipt

import (
	"encoding/base64"
	"html/template"

	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length in pixels of the receipt QR image.
const QRSize = 120

// QRCodePNG encodes target as a PNG QR code.
func QRCodePNG(target string, size int) ([]byte, error) {
	if size <= 0 {
		size = QRSize
	}
	return qrcode.Encode(target, qrcode.Medium, size)
}

// QRCodeDataURL encodes target as an inline PNG data URL safe for an img src.
func QRCodeDataURL(target string, size int) (template.URL, error) {
	png, err := QRCodePNG(target, size)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
