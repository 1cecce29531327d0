package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/config"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/cache"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/handler"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/middleware"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/testutil"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Warning  string          `json:"warning"`
	Redirect string          `json:"redirect"`
}

type RouterSuite struct {
	suite.Suite
	router    *gin.Engine
	products  *testutil.ProductRepo
	customers *testutil.CustomerRepo
	invoices  *testutil.InvoiceRepo
	printer   *testutil.Printer
	limiter   *middleware.SessionRateLimiter
}

func TestRouterSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.products = testutil.NewProductRepo(
		testutil.Product("p1", "Rice", "50.00", 10),
		testutil.Product("p2", "Oil", "30.00", 5),
	)
	s.customers = testutil.NewCustomerRepo(testutil.Customer("c1", "Mona", "200"))
	s.customers.MeID = "c1"
	s.invoices = testutil.NewInvoiceRepo(entity.Invoice{
		ID:         "paid-1",
		CustomerID: "c1",
		Status:     enum.InvoiceStatusPaid,
		Items:      []entity.InvoiceItem{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(50)}},
	})
	s.printer = &testutil.Printer{}

	authRepo := testutil.NewAuthRepo()
	authRepo.AddUser(entity.User{ID: "u1", Name: "Admin", Phone: "01000000001", Role: enum.UserRoleAdmin}, "secret")
	authRepo.AddUser(entity.User{ID: "u2", Name: "Cashier", Phone: "01000000002", Role: enum.UserRoleCashier}, "secret")
	authRepo.AddUser(entity.User{ID: "c1", Name: "Mona", Phone: "01000000003", Role: enum.UserRoleCustomer}, "secret")

	cfg := &config.Config{App: config.AppConfig{Name: "test"}}
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}

	store := cache.NewInMemoryCache(time.Hour, time.Minute)
	jwt := utils.NewJWTManager("test-secret", time.Hour, "test")
	authService := service.NewAuthService(authRepo, cache.NewSessionStore(store), jwt, nil)
	stock := service.NewStockSyncer(s.products, nil)
	productService := service.NewProductService(s.products, 10)
	invoiceService := service.NewInvoiceService(s.invoices, s.products, cache.NewInvoiceStatusCache(store, time.Hour), stock, nil)
	draftService := service.NewDraftService(cache.NewDraftStore(store, time.Hour), s.products, s.customers, s.invoices,
		productService, invoiceService, stock, true, nil)
	receiptService := service.NewReceiptService(s.invoices, s.products, s.customers, s.printer, service.StoreInfo{
		Header:     entity.ReceiptHeader{StoreName: "Sanabel"},
		Currency:   "EGP",
		WebsiteURL: "https://www.sanabelkhair.com/",
		CharWidth:  48,
	}, nil)

	s.limiter = NewRateLimiter(cfg)
	s.router = Setup(&Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, receiptService),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(nil)),
		Customer:  handler.NewCustomerHandler(service.NewCustomerService(s.customers), invoiceService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, draftService, receiptService),
		Draft:     handler.NewDraftHandler(draftService, receiptService),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(&testutil.DashboardRepo{}, nil)),
		Printer:   handler.NewPrinterHandler(receiptService),
		Portal:    handler.NewPortalHandler(service.NewPortalService(s.customers, s.invoices, receiptService), receiptService),
	}, &Deps{
		AuthService:     authService,
		Cfg:             cfg,
		IdempotencyRepo: cache.NewIdempotencyStore(store),
		RateLimiter:     s.limiter,
		Log:             zap.NewNop(),
	})
}

func (s *RouterSuite) TearDownTest() {
	s.limiter.Stop()
}

func (s *RouterSuite) do(method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (s *RouterSuite) login(path, phone string, role string) string {
	w, env := s.do(http.MethodPost, path, "", map[string]string{"phone": phone, "password": "secret", "role": role})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &out))
	return out.AccessToken
}

func (s *RouterSuite) TestMissingTokenRedirectsToLogin() {
	w, env := s.do(http.MethodGet, "/api/v1/drafts", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("/admin/login", env.Redirect)

	w, env = s.do(http.MethodGet, "/api/v1/portal/invoices", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("/customer/login", env.Redirect)
}

func (s *RouterSuite) TestRolesAreEnforced() {
	customer := s.login("/api/v1/portal/auth/login", "01000000003", "")
	w, _ := s.do(http.MethodGet, "/api/v1/drafts", customer, nil)
	s.Equal(http.StatusForbidden, w.Code)

	cashier := s.login("/api/v1/auth/login", "01000000002", "cashier")
	w, _ = s.do(http.MethodGet, "/api/v1/drafts", cashier, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/v1/products/p1", cashier, nil)
	s.Equal(http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodGet, "/api/v1/portal/me", cashier, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterSuite) TestLogoutEndsSession() {
	token := s.login("/api/v1/auth/login", "01000000001", "admin")
	w, _ := s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/drafts", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("/admin/login", env.Redirect)
}

func (s *RouterSuite) TestDraftToInvoiceFlow() {
	token := s.login("/api/v1/auth/login", "01000000001", "admin")

	w, env := s.do(http.MethodPost, "/api/v1/drafts", token, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var draft struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &draft))
	base := "/api/v1/drafts/" + draft.ID

	for i := 0; i < 2; i++ {
		w, _ = s.do(http.MethodPost, base+"/items", token, map[string]string{"product_id": "p1"})
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}
	w, _ = s.do(http.MethodPut, base+"/customer", token, map[string]string{"customer_id": "c1"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w, env = s.do(http.MethodPut, base+"/payment", token, map[string]any{"discount": 10, "wallet_payment": 200})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var result service.DraftResult
	s.Require().NoError(json.Unmarshal(env.Data, &result))
	s.Equal(2, result.Draft.Items[0].Quantity)
	s.Equal("90.00", result.Draft.Totals.Total.StringFixed(2))
	s.Equal("90.00", result.Draft.Totals.WalletPayment.StringFixed(2))
	s.Equal("0.00", result.Draft.Totals.Remaining.StringFixed(2))

	w, env = s.do(http.MethodPost, base+"/submit", token, nil, middleware.IdempotencyKeyHeader, "submit-1")
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var submitted service.SubmitResult
	s.Require().NoError(json.Unmarshal(env.Data, &submitted))
	s.Equal(service.SubmitSuccess, submitted.Outcome)
	s.Equal(8, s.products.Stock("p1"))

	w, _ = s.do(http.MethodPost, base+"/submit", token, nil, middleware.IdempotencyKeyHeader, "submit-1")
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("true", w.Header().Get("X-Idempotency-Replayed"))
	s.Len(s.invoices.Created, 1)

	w, _ = s.do(http.MethodGet, "/api/v1/invoices/"+submitted.Invoice.ID+"/receipt", token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/html")
	s.Contains(w.Body.String(), "INV-")

	w, _ = s.do(http.MethodPost, "/api/v1/invoices/"+submitted.Invoice.ID+"/print", token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.printer.Jobs, 1)
}

func (s *RouterSuite) TestSubmitValidationErrorLeavesNoInvoice() {
	token := s.login("/api/v1/auth/login", "01000000001", "admin")
	_, env := s.do(http.MethodPost, "/api/v1/drafts", token, nil)
	var draft struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &draft))

	w, env := s.do(http.MethodPost, "/api/v1/drafts/"+draft.ID+"/submit", token, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.False(env.Success)
	s.Empty(s.invoices.Created)
}

func (s *RouterSuite) TestPaidInvoiceCannotBeDeleted() {
	token := s.login("/api/v1/auth/login", "01000000001", "admin")
	w, env := s.do(http.MethodDelete, "/api/v1/invoices/paid-1", token, nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Paid invoices cannot be deleted", env.Message)
	_, deletes := s.invoices.Calls()
	s.Zero(deletes)
}

func (s *RouterSuite) TestPortalShowsOwnInvoices() {
	token := s.login("/api/v1/portal/auth/login", "01000000003", "")
	w, env := s.do(http.MethodGet, "/api/v1/portal/invoices", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var invoices []entity.Invoice
	s.Require().NoError(json.Unmarshal(env.Data, &invoices))
	s.Len(invoices, 1)

	w, _ = s.do(http.MethodGet, "/api/v1/portal/invoices/paid-1/receipt.pdf", token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
}

func (s *RouterSuite) TestProductLabel() {
	cashier := s.login("/api/v1/auth/login", "01000000002", "cashier")

	w, _ := s.do(http.MethodGet, "/api/v1/products/p1/label", cashier, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Header().Get("Content-Type"), "text/html")
	s.Contains(w.Body.String(), "P-p1")

	w, _ = s.do(http.MethodGet, "/api/v1/products/p1/label?format=pdf", cashier, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))

	w, _ = s.do(http.MethodPost, "/api/v1/products/p1/label/print?copies=2", cashier, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Require().Len(s.printer.Jobs, 1)
	s.Equal(2, bytes.Count(s.printer.Jobs[0], []byte("{BP-p1")))

	w, _ = s.do(http.MethodPost, "/api/v1/products/p1/label/print?copies=500", cashier, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Len(s.printer.Jobs, 1)
}

func (s *RouterSuite) TestDashboardQueryIsValidated() {
	token := s.login("/api/v1/auth/login", "01000000001", "admin")
	w, _ := s.do(http.MethodGet, "/api/v1/dashboard?days=400", token, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/dashboard/sales-trend?days=abc", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}
