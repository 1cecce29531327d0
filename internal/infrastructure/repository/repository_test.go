package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RepositorySuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *backend.Client
	ctx     context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.client = backend.NewClient(s.server.URL, 5*time.Second, zap.NewNop())
	s.ctx = backend.WithToken(context.Background(), "token-1")
}

func (s *RepositorySuite) TearDownTest() {
	s.server.Close()
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (s *RepositorySuite) TestProductListSendsFiltersAndReadsMongoIDs() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/products/", r.URL.Path)
		s.Equal("Bearer token-1", r.Header.Get("Authorization"))
		q := r.URL.Query()
		s.Equal("2", q.Get("page"))
		s.Equal("100", q.Get("page_size"))
		s.Equal("cat-1", q.Get("category_id"))
		s.Equal("true", q.Get("in_stock_only"))
		s.Equal("5", q.Get("min_price"))
		s.Empty(q.Get("search"))
		writeJSON(w, http.StatusOK, `{"products":[{"_id":"p1","name":"Rice","price":25.5,"final_price":25.5,"quantity":4,"category_id":"cat-1","discount":0,"is_active":true,"is_low_stock":false,"created_at":"2024-01-01T08:00:00"}],"total":1,"page":2,"page_size":100,"total_pages":1}`)
	}

	repo := NewProductRepository(s.client)
	list, err := repo.List(s.ctx, &domainRepo.ProductFilterParams{
		Pagination:  &pagination.PaginationParams{Page: 2, PageSize: 500},
		CategoryID:  "cat-1",
		MinPrice:    lo.ToPtr(decimal.NewFromInt(5)),
		InStockOnly: lo.ToPtr(true),
	})
	s.Require().NoError(err)
	s.Require().Len(list.Products, 1)
	s.Equal("p1", list.Products[0].ID)
	s.True(decimal.RequireFromString("25.5").Equal(list.Products[0].Price))
	s.Equal(2024, list.Products[0].CreatedAt.Year())
}

func (s *RepositorySuite) TestSetStockSendsAbsoluteQuantity() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPatch, r.Method)
		s.Equal("/products/p1/stock", r.URL.Path)
		var body map[string]int
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal(map[string]int{"quantity": 7}, body)
		writeJSON(w, http.StatusOK, `{"id":"p1","name":"Rice","price":10,"final_price":10,"quantity":7,"category_id":"c","discount":0,"is_active":true,"is_low_stock":false,"created_at":"2024-01-01T08:00:00Z"}`)
	}

	product, err := NewProductRepository(s.client).SetStock(s.ctx, "p1", 7)
	s.Require().NoError(err)
	s.Equal(7, product.Quantity)
}

func (s *RepositorySuite) TestInvoiceCreateSendsNumericMoney() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		var body map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal(90.0, body["wallet_payment"])
		s.Equal(10.0, body["discount"])
		s.Equal("percentage", body["discount_type"])
		s.Equal("Paid", body["status"])
		items := body["invoice_items"].([]any)
		s.Require().Len(items, 1)
		s.Equal(50.0, items[0].(map[string]any)["price"])
		s.NotContains(items[0].(map[string]any), "id")
		writeJSON(w, http.StatusCreated, `{"id":"inv-1","customer_id":"c1","customer_name":"Mona","status":"Paid","wallet_payment":90,"wallet_add":0,"discount":10,"discount_type":"percentage","total":90,"invoice_items":[{"id":"it-1","product_id":"p1","quantity":2,"price":50}],"created_at":"2024-05-01T10:00:00.5"}`)
	}

	inv, err := NewInvoiceRepository(s.client).Create(s.ctx, &entity.InvoiceInput{
		CustomerID:    "c1",
		Status:        enum.InvoiceStatusPaid,
		WalletPayment: decimal.NewFromInt(90),
		Discount:      decimal.NewFromInt(10),
		DiscountType:  enum.DiscountTypePercentage,
		Items: []entity.InvoiceItemInput{
			{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(50)},
		},
	})
	s.Require().NoError(err)
	s.Equal("inv-1", inv.ID)
	s.Equal(enum.InvoiceStatusPaid, inv.Status)
	s.Equal(map[string]int{"p1": 2}, inv.QuantityByProduct())
}

func (s *RepositorySuite) TestUpdateStatusUsesQueryParameter() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/invoices/inv-1/status", r.URL.Path)
		s.Equal("Paid", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, `{"id":"inv-1","status":"paid","invoice_items":null,"created_at":"2024-05-01T10:00:00"}`)
	}

	inv, err := NewInvoiceRepository(s.client).UpdateStatus(s.ctx, "inv-1", enum.InvoiceStatusPaid)
	s.Require().NoError(err)
	s.Equal(enum.InvoiceStatusPaid, inv.Status)
	s.NotNil(inv.Items)
}

func (s *RepositorySuite) TestBackendErrorsSurfaceAsAppErrors() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"detail":"Invoice not found"}`)
	}

	_, err := NewInvoiceRepository(s.client).GetByID(s.ctx, "missing")
	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Equal(http.StatusNotFound, appErr.Code)
	s.Equal("Invoice not found", appErr.Message)
	s.Equal(apperror.KindAPI, appErr.Kind)
}

func (s *RepositorySuite) TestLoginReturnsToken() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/auth/login", r.URL.Path)
		s.Empty(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"access_token":"jwt-abc","token_type":"bearer","user":{"id":"u1","name":"Admin","phone":"0100","role":"admin","is_active":true,"first_login":false,"created_at":"2024-01-01T00:00:00"}}`)
	}

	user, token, err := NewAuthRepository(s.client).Login(context.Background(), "0100", "secret", enum.UserRoleAdmin)
	s.Require().NoError(err)
	s.Equal("jwt-abc", token)
	s.Equal(enum.UserRoleAdmin, user.Role)
}

func (s *RepositorySuite) TestCheckCustomerSendsPhoneAsQuery() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("01011112222", r.URL.Query().Get("phone"))
		writeJSON(w, http.StatusOK, `{"exists":true,"customer_name":"Mona","phone":"01011112222","has_password":false,"first_login":true}`)
	}

	check, err := NewAuthRepository(s.client).CheckCustomer(s.ctx, "01011112222")
	s.Require().NoError(err)
	s.True(check.Exists)
	s.False(check.HasPassword)
}

func (s *RepositorySuite) TestDashboardRangesAreForwarded() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("30", r.URL.Query().Get("days"))
		writeJSON(w, http.StatusOK, `{"period":"30 days","data":[{"date":"2024-05-01","sales":120.5}]}`)
	}

	trend, err := NewDashboardRepository(s.client).SalesTrend(s.ctx, 30)
	s.Require().NoError(err)
	s.Require().Len(trend.Data, 1)
	s.True(decimal.RequireFromString("120.5").Equal(trend.Data[0].Sales))
}

func (s *RepositorySuite) TestExportInventoryReadsFilename() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="inventory_2024.csv"`)
		_, _ = io.WriteString(w, "name,quantity\nRice,4\n")
	}

	export, err := NewProductRepository(s.client).ExportInventory(s.ctx)
	s.Require().NoError(err)
	s.Equal("inventory_2024.csv", export.Filename)
	s.Equal("text/csv", export.ContentType)
	s.Contains(string(export.Body), "Rice,4")
}
