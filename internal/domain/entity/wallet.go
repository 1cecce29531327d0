package entity

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// WalletAdjustment is a manual credit or debit of a customer's wallet.
type WalletAdjustment struct {
	Amount      decimal.Decimal            `json:"amount"`
	Type        enum.WalletTransactionType `json:"transaction_type"`
	Description *string                    `json:"description,omitempty"`
}
