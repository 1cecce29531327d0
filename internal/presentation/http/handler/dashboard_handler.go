package handler

import (
	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns every dashboard widget in one response. Widgets that
// failed are listed as warnings.
func (h *DashboardHandler) Overview(c *gin.Context) {
	var q service.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	overview, err := h.dashboardService.Overview(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved successfully", overview)
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// SalesTrend returns daily sales for the last days
func (h *DashboardHandler) SalesTrend(c *gin.Context) {
	days, ok := intQuery(c, "days")
	if !ok {
		return
	}
	trend, err := h.dashboardService.SalesTrend(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales trend retrieved successfully", trend)
}

// CategoryDistribution returns product counts per category
func (h *DashboardHandler) CategoryDistribution(c *gin.Context) {
	dist, err := h.dashboardService.CategoryDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Category distribution retrieved successfully", dist)
}

// RecentActivities returns the latest invoices and customer sign-ups
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	acts, err := h.dashboardService.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent activities retrieved successfully", acts)
}

// LowStockProducts returns products at or below the threshold
func (h *DashboardHandler) LowStockProducts(c *gin.Context) {
	threshold, ok := intQuery(c, "threshold")
	if !ok {
		return
	}
	report, err := h.dashboardService.LowStockProducts(c.Request.Context(), threshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock products retrieved successfully", report)
}
