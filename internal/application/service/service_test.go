package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/cache"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/testutil"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ServiceSuite wires the invoice services over in-memory fakes.
type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	session   *entity.Session
	products  *testutil.ProductRepo
	customers *testutil.CustomerRepo
	invoices  *testutil.InvoiceRepo
	status    repository.InvoiceStatusCache
	logs      *observer.ObservedLogs

	productSvc *ProductService
	invoiceSvc *InvoiceService
	draftSvc   *DraftService
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	core, logs := observer.New(zap.InfoLevel)
	s.logs = logs
	s.session = &entity.Session{ID: "session-1", User: entity.User{ID: "u1", Name: "Cashier", Role: enum.UserRoleCashier}}
	s.products = testutil.NewProductRepo(
		testutil.Product("p1", "Rice", "50.00", 10),
		testutil.Product("p2", "Oil", "30.00", 5),
		testutil.Product("p3", "Sugar", "20.00", 0),
	)
	s.customers = testutil.NewCustomerRepo(testutil.Customer("c1", "Mona", "200"))
	s.invoices = testutil.NewInvoiceRepo()

	store := cache.NewInMemoryCache(time.Hour, time.Minute)
	s.status = cache.NewInvoiceStatusCache(store, time.Hour)
	stock := NewStockSyncer(s.products, zap.NewNop())
	s.productSvc = NewProductService(s.products, 10)
	s.invoiceSvc = NewInvoiceService(s.invoices, s.products, s.status, stock, zap.NewNop())
	s.draftSvc = NewDraftService(
		cache.NewDraftStore(store, time.Hour),
		s.products, s.customers, s.invoices,
		s.productSvc, s.invoiceSvc, stock, true, zap.New(core),
	)
}

func (s *ServiceSuite) newDraft() string {
	view, err := s.draftSvc.CreateDraft(s.ctx, s.session)
	s.Require().NoError(err)
	return view.ID
}

func (s *ServiceSuite) add(draftID, productID string) (*DraftResult, error) {
	return s.draftSvc.AddProduct(s.ctx, s.session, draftID, &AddProductInput{ProductID: productID})
}

func (s *ServiceSuite) readyDraft() string {
	id := s.newDraft()
	_, err := s.add(id, "p1")
	s.Require().NoError(err)
	_, err = s.add(id, "p1")
	s.Require().NoError(err)
	_, err = s.draftSvc.SelectCustomer(s.ctx, s.session, id, "c1")
	s.Require().NoError(err)
	return id
}

func (s *ServiceSuite) TestAddProductMergesIntoOneLine() {
	id := s.newDraft()
	_, err := s.add(id, "p1")
	s.Require().NoError(err)
	res, err := s.add(id, "p1")
	s.Require().NoError(err)

	s.Require().Len(res.Draft.Items, 1)
	s.Equal(2, res.Draft.Items[0].Quantity)
	s.Equal("100.00", res.Draft.Items[0].LineTotal.StringFixed(2))
	s.Equal(invoice.NoticeInfo, res.Notice.Level)
}

func (s *ServiceSuite) TestAddProductByCode() {
	id := s.newDraft()
	res, err := s.draftSvc.AddProduct(s.ctx, s.session, id, &AddProductInput{Code: "P-p2"})
	s.Require().NoError(err)
	s.Equal("p2", res.Draft.Items[0].ProductID)

	_, err = s.draftSvc.AddProduct(s.ctx, s.session, id, &AddProductInput{})
	s.True(apperror.IsValidation(err))
}

func (s *ServiceSuite) TestAddOutOfStockProductIsRejected() {
	id := s.newDraft()
	_, err := s.add(id, "p3")
	s.Require().Error(err)
	s.True(apperror.IsValidation(err))

	view, err := s.draftSvc.GetDraft(s.ctx, s.session, id)
	s.Require().NoError(err)
	s.Empty(view.Items)
}

func (s *ServiceSuite) TestAddProductUsesFreshStock() {
	id := s.newDraft()
	_, err := s.products.SetStock(s.ctx, "p2", 1)
	s.Require().NoError(err)

	_, err = s.add(id, "p2")
	s.Require().NoError(err)
	_, err = s.add(id, "p2")
	s.Error(err)
}

func (s *ServiceSuite) TestSetQuantityAboveStockKeepsPrevious() {
	id := s.newDraft()
	_, err := s.add(id, "p2")
	s.Require().NoError(err)
	_, err = s.draftSvc.SetQuantity(s.ctx, s.session, id, "p2", 3)
	s.Require().NoError(err)

	_, err = s.draftSvc.SetQuantity(s.ctx, s.session, id, "p2", 6)
	s.Require().Error(err)

	view, err := s.draftSvc.GetDraft(s.ctx, s.session, id)
	s.Require().NoError(err)
	s.Equal(3, view.Items[0].Quantity)

	res, err := s.draftSvc.SetQuantity(s.ctx, s.session, id, "p2", 0)
	s.Require().NoError(err)
	s.Empty(res.Draft.Items)
}

func (s *ServiceSuite) TestSubmitSavesInvoiceAndWritesStock() {
	id := s.readyDraft()
	_, err := s.draftSvc.ApplyPayment(s.ctx, s.session, id, invoice.Payment{
		Discount:      lo.ToPtr(d("10")),
		WalletPayment: lo.ToPtr(d("200")),
	})
	s.Require().NoError(err)

	res, err := s.draftSvc.Submit(s.ctx, s.session, id)
	s.Require().NoError(err)
	s.Equal(SubmitSuccess, res.Outcome)
	s.Empty(res.Warning())
	s.Equal(invoice.StateSuccess, res.Draft.State)

	s.Require().Len(s.invoices.Created, 1)
	created := s.invoices.Created[0]
	s.Equal("c1", created.CustomerID)
	s.Equal("90.00", created.WalletPayment.StringFixed(2))
	s.Require().Len(created.Items, 1)
	s.Equal(2, created.Items[0].Quantity)

	s.Equal(8, s.products.StockSets["p1"])
	status, ok := s.status.Status(res.Invoice.ID)
	s.True(ok)
	s.Equal(enum.InvoiceStatusPending, status)
}

func (s *ServiceSuite) TestSubmitWithFailedStockWriteIsPartial() {
	id := s.readyDraft()
	s.products.StockErr["p1"] = apperror.NewAPIError(502, "Server error, please try again later")

	res, err := s.draftSvc.Submit(s.ctx, s.session, id)
	s.Require().NoError(err)
	s.Equal(SubmitPartial, res.Outcome)
	s.Contains(res.Warning(), "Rice")
	s.Len(s.invoices.Created, 1)
	s.Require().Len(res.Stock.Failed, 1)
	s.Equal("p1", res.Stock.Failed[0].ProductID)
}

func (s *ServiceSuite) TestSubmitWithoutCustomerMakesNoCall() {
	id := s.newDraft()
	_, err := s.add(id, "p1")
	s.Require().NoError(err)

	_, err = s.draftSvc.Submit(s.ctx, s.session, id)
	s.Require().Error(err)
	s.True(apperror.IsValidation(err))
	s.Empty(s.invoices.Created)

	view, err := s.draftSvc.GetDraft(s.ctx, s.session, id)
	s.Require().NoError(err)
	s.Equal(invoice.StateFailed, view.State)

	res, err := s.add(id, "p2")
	s.Require().NoError(err)
	s.Equal(invoice.StateEditing, res.Draft.State)
}

func (s *ServiceSuite) TestSubmitBackendFailureKeepsDraftUsable() {
	id := s.readyDraft()
	s.invoices.CreateErr = apperror.NewAPIError(502, "Failed to connect to the server")

	_, err := s.draftSvc.Submit(s.ctx, s.session, id)
	s.Require().Error(err)
	s.Empty(s.products.StockSets)

	s.invoices.CreateErr = nil
	res, err := s.draftSvc.Submit(s.ctx, s.session, id)
	s.Require().NoError(err)
	s.Equal(SubmitSuccess, res.Outcome)
}

func (s *ServiceSuite) TestSecondSubmitIsRefused() {
	id := s.readyDraft()
	s.invoices.Block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.draftSvc.Submit(s.ctx, s.session, id)
		done <- err
	}()

	s.Eventually(func() bool {
		view, err := s.draftSvc.GetDraft(s.ctx, s.session, id)
		return err == nil && view.State == invoice.StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := s.draftSvc.Submit(s.ctx, s.session, id)
	s.ErrorIs(err, apperror.ErrSubmitInProgress)
	_, err = s.add(id, "p2")
	s.ErrorIs(err, apperror.ErrSubmitInProgress)

	close(s.invoices.Block)
	s.Require().NoError(<-done)
	s.Len(s.invoices.Created, 1)

	_, err = s.draftSvc.Submit(s.ctx, s.session, id)
	s.ErrorIs(err, apperror.ErrDraftSubmitted)
}

func (s *ServiceSuite) TestSubmitReportsStateThatCannotAdvance() {
	id := s.readyDraft()
	s.invoices.Block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.draftSvc.Submit(s.ctx, s.session, id)
		done <- err
	}()

	s.Eventually(func() bool {
		view, err := s.draftSvc.GetDraft(s.ctx, s.session, id)
		return err == nil && view.State == invoice.StateSubmitting
	}, time.Second, 5*time.Millisecond)

	draft, err := s.draftSvc.Draft(s.ctx, s.session, id)
	s.Require().NoError(err)
	draft.Lock()
	draft.Submission().Fail(nil)
	draft.Unlock()

	close(s.invoices.Block)
	s.Require().NoError(<-done)
	s.Len(s.invoices.Created, 1)

	entries := s.logs.FilterMessage("invoice saved but draft state could not advance").All()
	s.Require().Len(entries, 1)
	s.Equal(zap.ErrorLevel, entries[0].Level)
	s.Equal(string(invoice.StateFailed), entries[0].ContextMap()["state"])
}

func (s *ServiceSuite) TestDraftsAreScopedToTheirSession() {
	id := s.newDraft()
	other := &entity.Session{ID: "session-2"}

	_, err := s.draftSvc.GetDraft(s.ctx, other, id)
	s.Error(err)
	drafts, err := s.draftSvc.ListDrafts(s.ctx, other)
	s.Require().NoError(err)
	s.Empty(drafts)

	drafts, err = s.draftSvc.ListDrafts(s.ctx, s.session)
	s.Require().NoError(err)
	s.Len(drafts, 1)
}

func (s *ServiceSuite) TestEditDraftWritesOnlyTheDifference() {
	s.invoices.Invoices["inv-1"] = entity.Invoice{
		ID: "inv-1", CustomerID: "c1", Status: enum.InvoiceStatusPending,
		DiscountType: enum.DiscountTypePercentage,
		Items: []entity.InvoiceItem{
			{ID: "item-1", ProductID: "p1", Quantity: 3, Price: d("50")},
			{ID: "item-2", ProductID: "p2", Quantity: 1, Price: d("30")},
		},
	}
	s.products.Products["p1"] = testutil.Product("p1", "Rice", "50.00", 7)

	view, err := s.draftSvc.OpenEdit(s.ctx, s.session, "inv-1")
	s.Require().NoError(err)
	s.Equal(invoice.ModeEdit, view.Mode)

	_, err = s.draftSvc.SetQuantity(s.ctx, s.session, view.ID, "p1", 10)
	s.Require().NoError(err)
	_, err = s.draftSvc.SetQuantity(s.ctx, s.session, view.ID, "p2", 0)
	s.Require().NoError(err)

	res, err := s.draftSvc.Submit(s.ctx, s.session, view.ID)
	s.Require().NoError(err)
	s.Equal("inv-1", res.Invoice.ID)
	s.Require().Len(s.invoices.Updated, 1)
	s.Equal("item-1", s.invoices.Updated[0].Items[0].ID)

	s.Equal(0, s.products.StockSets["p1"])
	s.Equal(6, s.products.StockSets["p2"])
}

func (s *ServiceSuite) TestSearchAndRefreshCatalog() {
	id := s.newDraft()
	hits, err := s.draftSvc.Search(s.ctx, s.session, id, "ri", "")
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal("p1", hits[0].ProductID)

	s.products.Products["p4"] = testutil.Product("p4", "Rice flour", "15.00", 3)
	_, err = s.draftSvc.RefreshCatalog(s.ctx, s.session, id)
	s.Require().NoError(err)
	hits, err = s.draftSvc.Search(s.ctx, s.session, id, "rice", "cat-1")
	s.Require().NoError(err)
	s.Len(hits, 2)
}

func (s *ServiceSuite) TestDeletePaidInvoiceWithKnownStatusMakesNoCall() {
	s.invoices.Invoices["inv-paid"] = entity.Invoice{ID: "inv-paid", Status: enum.InvoiceStatusPaid}
	_, err := s.invoiceSvc.ListInvoices(s.ctx, &repository.InvoiceFilterParams{})
	s.Require().NoError(err)

	_, err = s.invoiceSvc.DeleteInvoice(s.ctx, "inv-paid")
	s.ErrorIs(err, apperror.ErrPaidInvoiceDelete)
	gets, deletes := s.invoices.Calls()
	s.Zero(gets)
	s.Zero(deletes)
}

func (s *ServiceSuite) TestDeletePaidInvoiceLooksStatusUp() {
	s.invoices.Invoices["inv-paid"] = entity.Invoice{ID: "inv-paid", Status: enum.InvoiceStatusPaid}

	_, err := s.invoiceSvc.DeleteInvoice(s.ctx, "inv-paid")
	s.ErrorIs(err, apperror.ErrPaidInvoiceDelete)
	gets, deletes := s.invoices.Calls()
	s.Equal(1, gets)
	s.Zero(deletes)
}

func (s *ServiceSuite) TestDeletePendingInvoiceReturnsStock() {
	s.invoices.Invoices["inv-1"] = entity.Invoice{
		ID: "inv-1", Status: enum.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{ProductID: "p1", Quantity: 2, Price: d("50")},
			{ProductID: "p1", Quantity: 1, Price: d("50")},
			{ProductID: "gone", Quantity: 1, Price: d("5")},
		},
	}

	res, err := s.invoiceSvc.DeleteInvoice(s.ctx, "inv-1")
	s.Require().NoError(err)
	s.Equal(13, s.products.StockSets["p1"])
	s.Require().Len(res.Stock.Failed, 1)
	s.Equal("gone", res.Stock.Failed[0].ProductID)
	s.NotEmpty(res.Warning())
	_, ok := s.invoices.Invoices["inv-1"]
	s.False(ok)
}

func (s *ServiceSuite) TestMarkPaidBlocksLaterDelete() {
	s.invoices.Invoices["inv-1"] = entity.Invoice{ID: "inv-1", Status: enum.InvoiceStatusPartial}

	inv, err := s.invoiceSvc.MarkPaid(s.ctx, "inv-1")
	s.Require().NoError(err)
	s.Equal(enum.InvoiceStatusPaid, inv.Status)

	_, err = s.invoiceSvc.DeleteInvoice(s.ctx, "inv-1")
	s.ErrorIs(err, apperror.ErrPaidInvoiceDelete)
	_, deletes := s.invoices.Calls()
	s.Zero(deletes)
}

func (s *ServiceSuite) TestUpdateStatusRejectsUnknownStatus() {
	_, err := s.invoiceSvc.UpdateStatus(s.ctx, "inv-1", enum.InvoiceStatus("Refunded"))
	s.True(apperror.IsValidation(err))
}

func (s *ServiceSuite) TestAllProductsReadsEveryPage() {
	for i := 0; i < 230; i++ {
		p := testutil.Product(lo.RandomString(12, lo.LettersCharset), "Bulk", "1.00", 1)
		s.products.Products[p.ID] = p
	}
	products, err := s.productSvc.AllProducts(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 233)
	s.Equal(3, s.products.ListCalls)
}

func (s *ServiceSuite) TestStockSyncerReportsEveryFailure() {
	s.products.StockErr["p2"] = errors.New("boom")
	syncer := NewStockSyncer(s.products, nil)

	res := syncer.Apply(s.ctx, []invoice.StockChange{
		{ProductID: "p1", ProductName: "Rice", Target: 4},
		{ProductID: "p2", ProductName: "Oil", Target: 1},
	}, []string{"p9"})

	s.False(res.OK())
	s.Len(res.Updated, 1)
	s.Len(res.Failed, 2)
	s.Equal("Stock could not be updated for: Oil, p9", res.Warning())
	s.Equal(4, s.products.Stock("p1"))
}
