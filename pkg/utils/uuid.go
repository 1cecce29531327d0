package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a new random identifier
func NewID() string {
	return uuid.New().String()
}

// ReceiptNo derives the short receipt number printed for an invoice id.
func ReceiptNo(invoiceID string) string {
	id := strings.ToUpper(invoiceID)
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "INV-" + id
}
