package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Dashboard query defaults and bounds.
const (
	DefaultTrendDays         = 7
	MaxTrendDays             = 365
	DefaultActivityLimit     = 10
	MaxActivityLimit         = 50
	DefaultLowStockThreshold = 10
	MaxLowStockThreshold     = 100
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	log           *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, log *zap.Logger) *DashboardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardService{dashboardRepo: dashboardRepo, log: log}
}

// DashboardQuery holds the tunable ranges of the dashboard widgets. Zero
// values take the defaults.
type DashboardQuery struct {
	Days      int `form:"days"`
	Limit     int `form:"limit"`
	Threshold int `form:"threshold"`
}

// Normalize fills defaults and rejects values outside the allowed ranges.
func (q *DashboardQuery) Normalize() error {
	var fieldErrors []apperror.FieldError
	check := func(field string, v *int, def, max int) {
		if *v == 0 {
			*v = def
			return
		}
		if *v < 1 || *v > max {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: fmt.Sprintf("must be between 1 and %d", max)})
		}
	}
	check("days", &q.Days, DefaultTrendDays, MaxTrendDays)
	check("limit", &q.Limit, DefaultActivityLimit, MaxActivityLimit)
	check("threshold", &q.Threshold, DefaultLowStockThreshold, MaxLowStockThreshold)
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Stats returns the headline dashboard statistics
func (s *DashboardService) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	return s.dashboardRepo.Stats(ctx)
}

// SalesTrend returns daily sales over the last days
func (s *DashboardService) SalesTrend(ctx context.Context, days int) (*entity.SalesTrend, error) {
	q := DashboardQuery{Days: days}
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return s.dashboardRepo.SalesTrend(ctx, q.Days)
}

// CategoryDistribution returns the product count per category
func (s *DashboardService) CategoryDistribution(ctx context.Context) (*entity.CategoryDistribution, error) {
	return s.dashboardRepo.CategoryDistribution(ctx)
}

// RecentActivities returns the latest activity feed entries
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) (*entity.RecentActivities, error) {
	q := DashboardQuery{Limit: limit}
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return s.dashboardRepo.RecentActivities(ctx, q.Limit)
}

// LowStockProducts returns products at or below threshold
func (s *DashboardService) LowStockProducts(ctx context.Context, threshold int) (*entity.LowStockReport, error) {
	q := DashboardQuery{Threshold: threshold}
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return s.dashboardRepo.LowStockProducts(ctx, q.Threshold)
}

// Overview fetches every widget concurrently. A failing widget is left out
// and reported as a warning; the call only fails when every widget failed.
func (s *DashboardService) Overview(ctx context.Context, q DashboardQuery) (*entity.DashboardOverview, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	out := &entity.DashboardOverview{}
	var mu sync.Mutex
	var failures []error
	fail := func(widget string, err error) {
		s.log.Warn("dashboard widget failed", zap.String("widget", widget), zap.Error(err))
		mu.Lock()
		defer mu.Unlock()
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", widget, apperror.GetAppError(err).Message))
		failures = append(failures, err)
	}

	p := pool.New().WithMaxGoroutines(5)
	p.Go(func() {
		stats, err := s.dashboardRepo.Stats(ctx)
		if err != nil {
			fail("stats", err)
			return
		}
		out.Stats = stats
	})
	p.Go(func() {
		trend, err := s.dashboardRepo.SalesTrend(ctx, q.Days)
		if err != nil {
			fail("sales_trend", err)
			return
		}
		out.SalesTrend = trend
	})
	p.Go(func() {
		dist, err := s.dashboardRepo.CategoryDistribution(ctx)
		if err != nil {
			fail("category_distribution", err)
			return
		}
		out.Distribution = dist
	})
	p.Go(func() {
		acts, err := s.dashboardRepo.RecentActivities(ctx, q.Limit)
		if err != nil {
			fail("recent_activities", err)
			return
		}
		out.Activities = acts
	})
	p.Go(func() {
		low, err := s.dashboardRepo.LowStockProducts(ctx, q.Threshold)
		if err != nil {
			fail("low_stock", err)
			return
		}
		out.LowStock = low
	})
	p.Wait()

	if len(failures) == 5 {
		return nil, failures[0]
	}
	sort.Strings(out.Warnings)
	return out, nil
}
