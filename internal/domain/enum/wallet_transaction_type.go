package enum

// WalletTransactionType is the direction of a manual wallet adjustment.
type WalletTransactionType string

const (
	WalletTransactionAdd    WalletTransactionType = "add"
	WalletTransactionDeduct WalletTransactionType = "deduct"
)

func (t WalletTransactionType) IsValid() bool {
	return t == WalletTransactionAdd || t == WalletTransactionDeduct
}
