package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one line of the invoice being composed.
type LineItem struct {
	ID string `json:"id"`
	// InvoiceItemID is the backend id of a line loaded from a saved invoice.
	InvoiceItemID string          `json:"invoice_item_id,omitempty"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

func (l *LineItem) setQuantity(qty int) {
	l.Quantity = qty
	l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// newLineItemID returns productID-unixmillis-random.
func newLineItemID(productID string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", productID, now.UnixMilli(), strings.ToLower(uuid.New().String()[:8]))
}
