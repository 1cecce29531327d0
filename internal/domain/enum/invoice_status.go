package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InvoiceStatus is the payment state of an invoice as stored by the backend.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPartial InvoiceStatus = "Partial"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the statuses the backend accepts.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusPartial:
		return true
	}
	return false
}

// HoldsStock reports whether deleting an invoice in this status returns its items to stock.
func (s InvoiceStatus) HoldsStock() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPartial
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseInvoiceStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseInvoiceStatus accepts any casing of Paid, Pending or Partial. An empty
// string yields Pending, the backend default.
func ParseInvoiceStatus(str string) (InvoiceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "paid":
		return InvoiceStatusPaid, nil
	case "pending", "":
		return InvoiceStatusPending, nil
	case "partial":
		return InvoiceStatusPartial, nil
	}
	return "", fmt.Errorf("unknown invoice status %q", str)
}
