package entity

import "github.com/shopspring/decimal"

// Customer is a store customer holding a prepaid wallet.
type Customer struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email,omitempty"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	Notes         *string         `json:"notes,omitempty"`
	IsActive      bool            `json:"is_active"`
	FirstLogin    bool            `json:"first_login"`
	CreatedAt     Timestamp       `json:"created_at"`
	UpdatedAt     *Timestamp      `json:"updated_at,omitempty"`
}

// CustomerList is one page of the backend customer listing.
type CustomerList struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// CustomerStats summarises the customer base.
type CustomerStats struct {
	TotalCustomers       int             `json:"total_customers"`
	ActiveCustomers      int             `json:"active_customers"`
	InactiveCustomers    int             `json:"inactive_customers"`
	FirstLoginCustomers  int             `json:"first_login_customers"`
	CustomersWithBalance int             `json:"customers_with_balance"`
	TotalWalletBalance   decimal.Decimal `json:"total_wallet_balance"`
	AverageWalletBalance decimal.Decimal `json:"average_wallet_balance"`
}

// CustomerCheck is the answer to a first-login lookup by phone.
type CustomerCheck struct {
	Exists       bool    `json:"exists"`
	CustomerName *string `json:"customer_name"`
	Phone        string  `json:"phone"`
	HasPassword  bool    `json:"has_password"`
	FirstLogin   bool    `json:"first_login"`
}

// PasswordSetResult is returned by the backend after a customer password is set.
type PasswordSetResult struct {
	Success      bool   `json:"success"`
	CustomerName string `json:"customer_name,omitempty"`
	FirstLogin   bool   `json:"first_login"`
	Error        string `json:"error,omitempty"`
}
