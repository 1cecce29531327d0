package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/config"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/cache"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/handler"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/routes"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/logger"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/printer"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Must(cfg.App.Env)
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	// Backend client and repositories
	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log.Named("backend"))
	authRepo := repository.NewAuthRepository(api)
	productRepo := repository.NewProductRepository(api)
	categoryRepo := repository.NewCategoryRepository(api)
	customerRepo := repository.NewCustomerRepository(api)
	invoiceRepo := repository.NewInvoiceRepository(api)
	dashboardRepo := repository.NewDashboardRepository(api)

	// In-memory stores
	sessionCache := cache.NewInMemoryCache(cfg.Session.TTL, cfg.Session.CleanupInterval)
	draftCache := cache.NewInMemoryCache(cfg.Drafts.TTL, cfg.Drafts.CleanupInterval)
	sharedCache := cache.NewInMemoryCache(time.Hour, 10*time.Minute)
	sessionRepo := cache.NewSessionStore(sessionCache)
	draftRepo := cache.NewDraftStore(draftCache, cfg.Drafts.TTL)
	idempotencyRepo := cache.NewIdempotencyStore(sharedCache)
	statusCache := cache.NewInvoiceStatusCache(sharedCache, 12*time.Hour)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter, _ = printer.New(printer.Config{Type: "none"})
	}

	// Initialize services
	authService := service.NewAuthService(authRepo, sessionRepo, jwtManager, log.Named("auth"))
	api.SetUnauthorizedHandler(authService.HandleUnauthorized)

	stockSyncer := service.NewStockSyncer(productRepo, log.Named("stock"))
	productService := service.NewProductService(productRepo, cfg.Inventory.LowStockThreshold)
	categoryService := service.NewCategoryService(categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, statusCache, stockSyncer, log.Named("invoices"))
	draftService := service.NewDraftService(
		draftRepo, productRepo, customerRepo, invoiceRepo,
		productService, invoiceService, stockSyncer,
		cfg.Drafts.MergeByDefault, log.Named("drafts"),
	)
	dashboardService := service.NewDashboardService(dashboardRepo, log.Named("dashboard"))
	receiptService := service.NewReceiptService(invoiceRepo, productRepo, customerRepo, thermalPrinter, service.StoreInfo{
		Header: entity.ReceiptHeader{
			StoreName: cfg.Store.Name,
			Tagline:   cfg.Store.Tagline,
			Address:   cfg.Store.Address,
			Phone:     cfg.Store.Phone,
			Hours:     cfg.Store.Hours,
		},
		Currency:   cfg.Store.Currency,
		Footer:     cfg.Store.Footer,
		WebsiteURL: cfg.Store.WebsiteURL,
		CharWidth:  cfg.Printer.CharWidth,
	}, log.Named("receipts"))
	portalService := service.NewPortalService(customerRepo, invoiceRepo, receiptService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, receiptService),
		Category:  handler.NewCategoryHandler(categoryService),
		Customer:  handler.NewCustomerHandler(customerService, invoiceService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, draftService, receiptService),
		Draft:     handler.NewDraftHandler(draftService, receiptService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(receiptService),
		Portal:    handler.NewPortalHandler(portalService, receiptService),
	}

	rateLimiter := routes.NewRateLimiter(cfg)
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		AuthService:     authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Log:             log.Named("http"),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
