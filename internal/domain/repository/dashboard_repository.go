package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
)

// DashboardRepository defines the backend dashboard aggregates
type DashboardRepository interface {
	Stats(ctx context.Context) (*entity.DashboardStats, error)
	SalesTrend(ctx context.Context, days int) (*entity.SalesTrend, error)
	CategoryDistribution(ctx context.Context) (*entity.CategoryDistribution, error)
	RecentActivities(ctx context.Context, limit int) (*entity.RecentActivities, error)
	LowStockProducts(ctx context.Context, threshold int) (*entity.LowStockReport, error)
}
