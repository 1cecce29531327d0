package routes

import (
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/config"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/handler"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Customer  *handler.CustomerHandler
	Invoice   *handler.InvoiceHandler
	Draft     *handler.DraftHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
	Portal    *handler.PortalHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	AuthService     *service.AuthService
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.SessionRateLimiter
	Log             *zap.Logger
}

// NewRateLimiter builds the per-session limiter from configuration.
func NewRateLimiter(cfg *config.Config) *middleware.SessionRateLimiter {
	return middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Log: deps.Log})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Staff routes
		staff := v1.Group("")
		staff.Use(middleware.AuthMiddleware(deps.AuthService, enum.UserRoleAdmin))
		staff.Use(deps.RateLimiter.Middleware())
		staff.Use(middleware.RequireStaff())
		registerStaffRoutes(staff, h, idempotent)

		// Customer portal
		portal := v1.Group("/portal")
		portal.POST("/auth/login", h.Auth.CustomerLogin)
		protectedPortal := portal.Group("")
		protectedPortal.Use(middleware.AuthMiddleware(deps.AuthService, enum.UserRoleCustomer))
		protectedPortal.Use(deps.RateLimiter.Middleware())
		protectedPortal.Use(middleware.RequireRole(enum.UserRoleCustomer))
		registerPortalRoutes(protectedPortal, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/check-customer", h.Auth.CheckCustomer)
		auth.POST("/set-customer-password", h.Auth.SetCustomerPassword)
	}
}

func registerStaffRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	staff.POST("/auth/logout", h.Auth.Logout)
	staff.GET("/auth/me", h.Auth.Me)

	registerDashboardRoutes(staff, h)
	registerProductRoutes(staff, h)
	registerCategoryRoutes(staff, h)
	registerCustomerRoutes(staff, h, idempotent)
	registerInvoiceRoutes(staff, h, idempotent)
	registerDraftRoutes(staff, h, idempotent)
	registerPrinterRoutes(staff, h)
}

func registerDashboardRoutes(staff *gin.RouterGroup, h *Handlers) {
	dashboard := staff.Group("/dashboard")
	dashboard.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		dashboard.GET("", h.Dashboard.Overview)
		dashboard.GET("/stats", h.Dashboard.GetStats)
		dashboard.GET("/sales-trend", h.Dashboard.SalesTrend)
		dashboard.GET("/category-distribution", h.Dashboard.CategoryDistribution)
		dashboard.GET("/recent-activities", h.Dashboard.RecentActivities)
		dashboard.GET("/low-stock-products", h.Dashboard.LowStockProducts)
	}
}

func registerProductRoutes(staff *gin.RouterGroup, h *Handlers) {
	products := staff.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/by-code/:code", h.Product.GetByCode)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/label", h.Product.Label)
		products.POST("/:id/label/print", h.Product.PrintLabel)
	}

	admin := products.Group("")
	admin.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		admin.GET("/export/inventory", h.Product.ExportInventory)
		admin.POST("", h.Product.Create)
		admin.PUT("/:id", h.Product.Update)
		admin.PATCH("/:id/stock", h.Product.SetStock)
		admin.DELETE("/:id", h.Product.Delete)
	}
}

func registerCategoryRoutes(staff *gin.RouterGroup, h *Handlers) {
	categories := staff.Group("/categories")
	{
		categories.GET("", h.Category.List)
	}

	admin := categories.Group("")
	admin.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		admin.POST("", h.Category.Create)
		admin.PUT("/:id", h.Category.Update)
		admin.DELETE("/:id", h.Category.Delete)
	}
}

func registerCustomerRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	customers := staff.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/stats", h.Customer.Stats)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/invoices", h.Customer.Invoices)
	}

	admin := customers.Group("")
	admin.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		admin.DELETE("/:id", h.Customer.Delete)
		admin.PATCH("/:id/wallet", idempotent, h.Customer.AdjustWallet)
		admin.PUT("/:id/wallet", idempotent, h.Customer.SetBalance)
		admin.POST("/:id/password", h.Auth.SetCustomerPasswordByID)
	}
}

func registerInvoiceRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	invoices := staff.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/stats", h.Invoice.Stats)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
		invoices.POST("/:id/pay", idempotent, h.Invoice.MarkPaid)
		invoices.POST("/:id/edit", h.Invoice.Edit)
		invoices.GET("/:id/receipt", h.Invoice.Receipt)
		invoices.GET("/:id/receipt.pdf", h.Invoice.ReceiptPDF)
		invoices.POST("/:id/print", h.Invoice.Print)
	}

	admin := invoices.Group("")
	admin.Use(middleware.RequireRole(enum.UserRoleAdmin))
	{
		admin.DELETE("/:id", idempotent, h.Invoice.Delete)
	}
}

func registerDraftRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	drafts := staff.Group("/drafts")
	{
		drafts.POST("", h.Draft.Create)
		drafts.GET("", h.Draft.List)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Delete)
		drafts.POST("/:id/items", h.Draft.AddItem)
		drafts.PUT("/:id/items/:productId", h.Draft.SetQuantity)
		drafts.DELETE("/:id/lines/:lineId", h.Draft.RemoveLine)
		drafts.PUT("/:id/customer", h.Draft.SelectCustomer)
		drafts.PUT("/:id/payment", h.Draft.Payment)
		drafts.PUT("/:id/merge", h.Draft.SetMerge)
		drafts.POST("/:id/refresh", h.Draft.Refresh)
		drafts.GET("/:id/products", h.Draft.Search)
		drafts.POST("/:id/submit", idempotent, h.Draft.Submit)
		drafts.GET("/:id/receipt", h.Draft.Receipt)
		drafts.POST("/:id/print", h.Draft.Print)
	}
}

func registerPrinterRoutes(staff *gin.RouterGroup, h *Handlers) {
	printer := staff.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}

func registerPortalRoutes(portal *gin.RouterGroup, h *Handlers) {
	portal.GET("/me", h.Portal.Profile)
	portal.GET("/invoices", h.Portal.Invoices)
	portal.GET("/invoices/:id", h.Portal.Invoice)
	portal.GET("/invoices/:id/receipt", h.Portal.Receipt)
	portal.GET("/invoices/:id/receipt.pdf", h.Portal.ReceiptPDF)
}
