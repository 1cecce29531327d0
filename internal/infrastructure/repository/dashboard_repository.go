package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
)

type dashboardRepository struct {
	api *backend.Client
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(api *backend.Client) domainRepo.DashboardRepository {
	return &dashboardRepository{api: api}
}

func (r *dashboardRepository) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	var out entity.DashboardStats
	if err := r.api.Get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *dashboardRepository) SalesTrend(ctx context.Context, days int) (*entity.SalesTrend, error) {
	var out entity.SalesTrend
	if err := r.api.Get(ctx, "/dashboard/sales-trend", query(Int("days", days)), &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []entity.SalesPoint{}
	}
	return &out, nil
}

func (r *dashboardRepository) CategoryDistribution(ctx context.Context) (*entity.CategoryDistribution, error) {
	var out entity.CategoryDistribution
	if err := r.api.Get(ctx, "/dashboard/category-distribution", nil, &out); err != nil {
		return nil, err
	}
	if out.Categories == nil {
		out.Categories = []entity.CategoryShare{}
	}
	return &out, nil
}

func (r *dashboardRepository) RecentActivities(ctx context.Context, limit int) (*entity.RecentActivities, error) {
	var out entity.RecentActivities
	if err := r.api.Get(ctx, "/dashboard/recent-activities", query(Int("limit", limit)), &out); err != nil {
		return nil, err
	}
	if out.Activities == nil {
		out.Activities = []entity.Activity{}
	}
	return &out, nil
}

type lowStockWire struct {
	Products  []productWire `json:"products"`
	Threshold int           `json:"threshold"`
	Count     int           `json:"count"`
}

func (r *dashboardRepository) LowStockProducts(ctx context.Context, threshold int) (*entity.LowStockReport, error) {
	var out lowStockWire
	if err := r.api.Get(ctx, "/dashboard/low-stock-products", query(Int("threshold", threshold)), &out); err != nil {
		return nil, err
	}
	return &entity.LowStockReport{
		Products:  products(out.Products),
		Threshold: out.Threshold,
		Count:     out.Count,
	}, nil
}
