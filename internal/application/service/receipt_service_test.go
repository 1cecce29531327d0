package service

import (
	"context"
	"testing"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/testutil"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceiptFixture() (*ReceiptService, *testutil.InvoiceRepo, *testutil.CustomerRepo, *testutil.Printer) {
	products := testutil.NewProductRepo(testutil.Product("p1", "Rice", "50.00", 10))
	customers := testutil.NewCustomerRepo(testutil.Customer("c1", "Mona", "110"), testutil.Customer("c2", "Ali", "0"))
	invoices := testutil.NewInvoiceRepo(entity.Invoice{
		ID:            "665f1c2ab7e4a1d2c3f4e5a6",
		CustomerID:    "c1",
		CustomerName:  "Mona",
		Status:        enum.InvoiceStatusPaid,
		Discount:      d("10"),
		DiscountType:  enum.DiscountTypePercentage,
		WalletPayment: d("90"),
		Items:         []entity.InvoiceItem{{ProductID: "p1", Quantity: 2, Price: d("50")}},
		CreatedAt:     entity.NewTimestamp(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
	})
	p := &testutil.Printer{}
	store := StoreInfo{
		Header:     entity.ReceiptHeader{StoreName: "Sanabel"},
		Currency:   "EGP",
		Footer:     "Thank you",
		WebsiteURL: "https://www.sanabelkhair.com/",
		CharWidth:  48,
	}
	return NewReceiptService(invoices, products, customers, p, store, nil), invoices, customers, p
}

func TestInvoiceReceipt(t *testing.T) {
	svc, _, _, _ := newReceiptFixture()

	r, err := svc.InvoiceReceipt(context.Background(), "665f1c2ab7e4a1d2c3f4e5a6", "Cashier")
	require.NoError(t, err)
	assert.Equal(t, "INV-C3F4E5A6", r.InvoiceNo)
	assert.Equal(t, "Rice", r.Items[0].Name)
	assert.Equal(t, "(10%)", r.DiscountLabel)
	assert.Equal(t, "100.00", r.SubTotal.StringFixed(2))
	assert.Equal(t, "90.00", r.Total.StringFixed(2))
	assert.Equal(t, "90.00", r.WalletPayment.StringFixed(2))
	assert.Equal(t, "0.00", r.GrandTotal.StringFixed(2))
	assert.Equal(t, "110", r.Customer.WalletBalance.String())
	assert.Equal(t, "https://www.sanabelkhair.com/", r.QRTarget)

	html, err := svc.RenderHTML(r)
	require.NoError(t, err)
	assert.Contains(t, string(html), "INV-C3F4E5A6")
}

func TestCustomerReceiptIsScopedToOwner(t *testing.T) {
	svc, _, customers, _ := newReceiptFixture()
	ctx := context.Background()

	customers.MeID = "c2"
	_, err := svc.CustomerReceipt(ctx, "665f1c2ab7e4a1d2c3f4e5a6")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)

	customers.MeID = "c1"
	r, err := svc.CustomerReceipt(ctx, "665f1c2ab7e4a1d2c3f4e5a6")
	require.NoError(t, err)
	assert.Empty(t, r.Cashier)
}

func TestDraftReceiptAndPrint(t *testing.T) {
	svc, _, _, p := newReceiptFixture()
	catalog := invoice.Catalog{"p1": {ProductID: "p1", Name: "Rice", Price: d("50"), Stock: 5}}
	draft := invoice.NewDraft("s1", catalog, true)
	_, err := draft.AddProduct(catalog["p1"])
	require.NoError(t, err)
	_, err = draft.ApplyPayment(invoice.Payment{
		Discount:     lo.ToPtr(d("5")),
		DiscountType: lo.ToPtr(enum.DiscountTypeFixed),
	})
	require.NoError(t, err)

	r := svc.FromDraft(draft, "Cashier")
	assert.Empty(t, r.InvoiceNo)
	assert.Equal(t, "(5.00 EGP)", r.DiscountLabel)
	assert.Equal(t, "45.00", r.GrandTotal.StringFixed(2))

	require.NoError(t, svc.Print(context.Background(), r))
	require.Len(t, p.Jobs, 1)
	assert.Contains(t, string(p.Jobs[0]), "1x Rice")
}

func TestDiscountLabel(t *testing.T) {
	assert.Equal(t, "", DiscountLabel(d("0"), enum.DiscountTypePercentage, "EGP"))
	assert.Equal(t, "(12.5%)", DiscountLabel(d("12.5"), "", "EGP"))
	assert.Equal(t, "(7.50 EGP)", DiscountLabel(d("7.5"), enum.DiscountTypeFixed, "EGP"))
}

func TestProductLabelPrint(t *testing.T) {
	svc, _, _, p := newReceiptFixture()
	ctx := context.Background()

	l, err := svc.ProductLabel(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "P-p1", l.Code)
	assert.Equal(t, "Rice", l.Name)
	assert.Equal(t, "50.00", l.Price.StringFixed(2))
	assert.Equal(t, "EGP", l.Currency)

	err = svc.PrintLabel(ctx, l, 0)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	err = svc.PrintLabel(ctx, l, MaxLabelCopies+1)
	require.Error(t, err)
	assert.Empty(t, p.Jobs)

	require.NoError(t, svc.PrintLabel(ctx, l, 3))
	require.Len(t, p.Jobs, 1)
	assert.Contains(t, string(p.Jobs[0]), "{BP-p1")

	_, err = svc.ProductLabel(ctx, "missing")
	assert.Error(t, err)
}
