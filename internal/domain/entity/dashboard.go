package entity

import "github.com/shopspring/decimal"

type ProductCounts struct {
	Total    int `json:"total"`
	LowStock int `json:"low_stock"`
}

type SalesSummary struct {
	Today decimal.Decimal `json:"today"`
	Week  decimal.Decimal `json:"week"`
	Month decimal.Decimal `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// DashboardStats is the headline block of the admin dashboard.
type DashboardStats struct {
	Products  ProductCounts `json:"products"`
	Customers CustomerStats `json:"customers"`
	Invoices  InvoiceStats  `json:"invoices"`
	Sales     SalesSummary  `json:"sales"`
}

type SalesPoint struct {
	Date  string          `json:"date"`
	Sales decimal.Decimal `json:"sales"`
}

type SalesTrend struct {
	Period string       `json:"period"`
	Data   []SalesPoint `json:"data"`
}

type CategoryShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type CategoryDistribution struct {
	Categories []CategoryShare `json:"categories"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Timestamp   Timestamp        `json:"timestamp"`
	Status      string           `json:"status"`
}

type RecentActivities struct {
	Activities []Activity `json:"activities"`
}

type LowStockReport struct {
	Products  []Product `json:"products"`
	Threshold int       `json:"threshold"`
	Count     int       `json:"count"`
}

// DashboardOverview bundles everything the dashboard landing page renders.
type DashboardOverview struct {
	Stats        *DashboardStats       `json:"stats,omitempty"`
	SalesTrend   *SalesTrend           `json:"sales_trend,omitempty"`
	Distribution *CategoryDistribution `json:"category_distribution,omitempty"`
	Activities   *RecentActivities     `json:"recent_activities,omitempty"`
	LowStock     *LowStockReport       `json:"low_stock,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
}
