package enum

// DiscountType selects how an invoice discount value is interpreted.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// OrDefault returns percentage for an empty value, matching the backend default.
func (t DiscountType) OrDefault() DiscountType {
	if t == "" {
		return DiscountTypePercentage
	}
	return t
}
