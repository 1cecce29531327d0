package invoice

import (
	"testing"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DraftSuite struct {
	suite.Suite
	catalog  Catalog
	customer *CustomerSnapshot
}

func TestDraft(t *testing.T) {
	suite.Run(t, new(DraftSuite))
}

func (s *DraftSuite) SetupTest() {
	s.catalog = Catalog{
		"p1": {ProductID: "p1", Name: "Sugar", Price: d("50.00"), Stock: 5},
		"p2": {ProductID: "p2", Name: "Tea", Price: d("15.00"), Stock: 1},
	}
	s.customer = &CustomerSnapshot{ID: "c1", Name: "Mona", Phone: "01000000000", WalletBalance: d("200")}
}

func (s *DraftSuite) newDraft() *Draft {
	return NewDraft("session-1", s.catalog, true)
}

func (s *DraftSuite) TestExampleTotals() {
	dr := s.newDraft()
	_, err := dr.SelectCustomer(s.customer)
	s.Require().NoError(err)
	_, _ = dr.AddProduct(s.catalog["p1"])
	_, _ = dr.AddProduct(s.catalog["p1"])

	_, err = dr.ApplyPayment(Payment{Discount: lo.ToPtr(d("10")), WalletPayment: lo.ToPtr(d("200"))})
	s.Require().NoError(err)

	totals := dr.Totals()
	s.Equal("100.00", totals.Subtotal.StringFixed(2))
	s.Equal("10.00", totals.DiscountAmount.StringFixed(2))
	s.Equal("90.00", totals.Total.StringFixed(2))
	s.Equal("90.00", totals.WalletPayment.StringFixed(2))
	s.Equal("0.00", totals.Remaining.StringFixed(2))
	s.NoError(dr.Validate())
}

func (s *DraftSuite) TestWalletReclampedWhenTotalDrops() {
	dr := s.newDraft()
	_, _ = dr.SelectCustomer(s.customer)
	_, _ = dr.AddProduct(s.catalog["p1"])
	_, _ = dr.AddProduct(s.catalog["p1"])
	_, _ = dr.ApplyPayment(Payment{WalletPayment: lo.ToPtr(d("100"))})
	s.True(dr.WalletPayment.Equal(d("100")))

	_, err := dr.SetQuantity("p1", 1)
	s.Require().NoError(err)
	s.True(dr.WalletPayment.Equal(d("50")))
}

func (s *DraftSuite) TestValidateOrder() {
	dr := s.newDraft()
	err := dr.Validate()
	s.Require().Error(err)
	s.Equal("Select a customer first", err.Error())

	poor := *s.customer
	poor.WalletBalance = d("10")
	_, _ = dr.SelectCustomer(&poor)
	_, _ = dr.AddProduct(s.catalog["p1"])
	dr.WalletPayment = d("40")
	err = dr.Validate()
	s.Require().Error(err)
	s.Contains(err.Error(), "wallet balance")

	dr.WalletPayment = decimal.Zero
	_, _ = dr.SetQuantity("p1", 0)
	err = dr.Validate()
	s.Require().Error(err)
	s.Contains(err.Error(), "at least one product")
}

func (s *DraftSuite) TestValidateAgainstCachedCatalog() {
	dr := s.newDraft()
	_, _ = dr.SelectCustomer(s.customer)
	_, _ = dr.AddProduct(s.catalog["p2"])

	delete(dr.Cart.Catalog(), "p2")
	err := dr.Validate()
	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Equal(apperror.KindValidation, appErr.Kind)
	s.Require().Len(appErr.Errors, 1)
	s.Equal("p2", appErr.Errors[0].Field)
}

func (s *DraftSuite) TestApplyPaymentRejectsBadDiscountWithoutChanges() {
	dr := s.newDraft()
	_, err := dr.ApplyPayment(Payment{
		DiscountType: lo.ToPtr(enum.DiscountTypeFixed),
		Discount:     lo.ToPtr(d("-1")),
	})
	s.Require().Error(err)
	s.Equal(enum.DiscountTypePercentage, dr.DiscountType)

	_, err = dr.ApplyPayment(Payment{Discount: lo.ToPtr(d("120"))})
	s.Error(err)

	_, err = dr.ApplyPayment(Payment{DiscountType: lo.ToPtr(enum.DiscountTypeFixed), Discount: lo.ToPtr(d("120"))})
	s.NoError(err)
}

func (s *DraftSuite) TestMutationsBlockedWhileSubmitting() {
	dr := s.newDraft()
	s.Require().NoError(dr.Submission().Begin())
	s.Require().NoError(dr.Submission().Submit())

	_, err := dr.AddProduct(s.catalog["p1"])
	s.ErrorIs(err, apperror.ErrSubmitInProgress)
	s.Zero(dr.Cart.Len())

	dr.Submission().Fail(nil)
	_, err = dr.AddProduct(s.catalog["p1"])
	s.NoError(err)
	s.Equal(StateEditing, dr.Submission().State())
}

func (s *DraftSuite) TestEditDraftPlansDiff() {
	inv := &entity.Invoice{
		ID:            "inv-1",
		CustomerID:    "c1",
		CustomerName:  "Mona",
		Status:        enum.InvoiceStatusPending,
		Discount:      d("5"),
		DiscountType:  enum.DiscountTypeFixed,
		WalletPayment: d("20"),
		Items: []entity.InvoiceItem{
			{ID: "it-1", ProductID: "p1", Quantity: 2, Price: d("50")},
			{ID: "it-2", ProductID: "p2", Quantity: 1, Price: d("15")},
		},
		CreatedAt: entity.NewTimestamp(time.Now()),
	}
	dr := NewEditDraft("session-1", inv, nil, s.catalog, true)

	s.Equal(ModeEdit, dr.Mode)
	s.Equal("Sugar", dr.Cart.Items()[0].ProductName)
	s.Equal(7, dr.Cart.Available("p1"))

	_, err := dr.SetQuantity("p1", 4)
	s.Require().NoError(err)
	_, err = dr.SetQuantity("p2", 0)
	s.Require().NoError(err)

	changes, unknown := dr.StockPlan()
	s.Empty(unknown)
	s.Require().Len(changes, 2)
	s.Equal(StockChange{ProductID: "p1", ProductName: "Sugar", Previous: 5, Delta: 2, Target: 3}, changes[0])
	s.Equal(StockChange{ProductID: "p2", ProductName: "Tea", Previous: 1, Delta: -1, Target: 2}, changes[1])

	input := dr.Input()
	s.Require().Len(input.Items, 1)
	s.Equal("it-1", input.Items[0].ID)
	s.Equal(4, input.Items[0].Quantity)
}
