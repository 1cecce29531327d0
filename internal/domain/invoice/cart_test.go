package invoice

import (
	"testing"

	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CartSuite struct {
	suite.Suite
	catalog Catalog
	rice    CatalogEntry
	oil     CatalogEntry
	empty   CatalogEntry
}

func TestCart(t *testing.T) {
	suite.Run(t, new(CartSuite))
}

func (s *CartSuite) SetupTest() {
	s.rice = CatalogEntry{ProductID: "p-rice", Name: "Rice 1kg", Price: decimal.RequireFromString("50.00"), Stock: 3}
	s.oil = CatalogEntry{ProductID: "p-oil", Name: "Oil", Price: decimal.RequireFromString("82.50"), Stock: 10}
	s.empty = CatalogEntry{ProductID: "p-salt", Name: "Salt", Price: decimal.RequireFromString("7.00"), Stock: 0}
	s.catalog = Catalog{s.rice.ProductID: s.rice, s.oil.ProductID: s.oil, s.empty.ProductID: s.empty}
}

func (s *CartSuite) assertLineTotals(c *Cart) {
	for _, l := range c.Items() {
		s.True(l.LineTotal.Equal(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))), "line %s", l.ID)
	}
}

func (s *CartSuite) TestMergeIncrementsExistingLine() {
	c := NewCart(s.catalog, true)

	_, err := c.AddProduct(s.rice)
	s.Require().NoError(err)
	notice, err := c.AddProduct(s.rice)
	s.Require().NoError(err)

	s.Equal(NoticeInfo, notice.Level)
	s.Require().Equal(1, c.Len())
	s.Equal(2, c.Items()[0].Quantity)
	s.True(c.Items()[0].LineTotal.Equal(decimal.RequireFromString("100")))
	s.assertLineTotals(c)
}

func (s *CartSuite) TestMergeRejectsAboveStock() {
	c := NewCart(s.catalog, true)
	for i := 0; i < 3; i++ {
		_, err := c.AddProduct(s.rice)
		s.Require().NoError(err)
	}

	_, err := c.AddProduct(s.rice)
	s.Require().Error(err)
	s.True(apperror.IsValidation(err))
	s.Equal(3, c.Quantity(s.rice.ProductID))
}

func (s *CartSuite) TestOutOfStockRejected() {
	c := NewCart(s.catalog, true)

	_, err := c.AddProduct(s.empty)
	s.Require().Error(err)
	s.Contains(err.Error(), "out of stock")
	s.Zero(c.Len())
}

func (s *CartSuite) TestMergeOffAppendsLinesButGuardsTotal() {
	c := NewCart(s.catalog, false)

	for i := 0; i < 3; i++ {
		notice, err := c.AddProduct(s.rice)
		s.Require().NoError(err)
		s.Equal(NoticeSuccess, notice.Level)
	}
	s.Equal(3, c.Len())
	s.Equal(3, c.Quantity(s.rice.ProductID))

	_, err := c.AddProduct(s.rice)
	s.Error(err)
	s.Equal(3, c.Len())

	ids := map[string]bool{}
	for _, l := range c.Items() {
		s.False(ids[l.ID], "duplicate line id")
		ids[l.ID] = true
	}
}

func (s *CartSuite) TestMergeSwitchedOnGuardsEveryLine() {
	c := NewCart(s.catalog, false)
	for i := 0; i < 2; i++ {
		_, err := c.AddProduct(s.rice)
		s.Require().NoError(err)
	}
	s.Require().Equal(2, c.Len())

	c.SetMerge(true)
	notice, err := c.AddProduct(s.rice)
	s.Require().NoError(err)
	s.Equal(NoticeInfo, notice.Level)
	s.Equal(3, c.Quantity(s.rice.ProductID))

	_, err = c.AddProduct(s.rice)
	s.Require().Error(err)
	s.True(apperror.IsValidation(err))
	s.Equal(3, c.Quantity(s.rice.ProductID))
	s.Equal(2, c.Len())
	s.assertLineTotals(c)
}

func (s *CartSuite) TestAddCapturesPriceAndRefreshesCatalog() {
	c := NewCart(s.catalog, true)
	cheaper := s.oil
	cheaper.Price = decimal.RequireFromString("80.00")
	cheaper.Stock = 1

	_, err := c.AddProduct(cheaper)
	s.Require().NoError(err)
	s.True(c.Items()[0].UnitPrice.Equal(decimal.RequireFromString("80")))
	s.Equal(1, c.Available(s.oil.ProductID))

	_, err = c.AddProduct(cheaper)
	s.Error(err)
}

func (s *CartSuite) TestSetQuantity() {
	c := NewCart(s.catalog, true)
	_, err := c.AddProduct(s.oil)
	s.Require().NoError(err)

	_, err = c.SetQuantity(s.oil.ProductID, 7)
	s.Require().NoError(err)
	s.Equal(7, c.Items()[0].Quantity)
	s.True(c.Items()[0].LineTotal.Equal(decimal.RequireFromString("577.5")))

	_, err = c.SetQuantity(s.oil.ProductID, 11)
	s.Require().Error(err)
	s.Equal(7, c.Items()[0].Quantity, "rejected quantity keeps the previous value")

	_, err = c.SetQuantity(s.oil.ProductID, 0)
	s.Require().NoError(err)
	s.Zero(c.Len())
}

func (s *CartSuite) TestSetQuantityNegativeRemoves() {
	c := NewCart(s.catalog, true)
	_, _ = c.AddProduct(s.oil)
	_, _ = c.AddProduct(s.rice)

	_, err := c.SetQuantity(s.oil.ProductID, -2)
	s.Require().NoError(err)
	s.Require().Equal(1, c.Len())
	s.Equal(s.rice.ProductID, c.Items()[0].ProductID)
}

func (s *CartSuite) TestSetQuantityCollapsesDuplicates() {
	c := NewCart(s.catalog, false)
	_, _ = c.AddProduct(s.oil)
	_, _ = c.AddProduct(s.rice)
	_, _ = c.AddProduct(s.oil)
	s.Require().Equal(3, c.Len())

	_, err := c.SetQuantity(s.oil.ProductID, 4)
	s.Require().NoError(err)
	s.Equal(2, c.Len())
	s.Equal(4, c.Quantity(s.oil.ProductID))
	s.Equal(s.oil.ProductID, c.Items()[0].ProductID, "order of first occurrence is kept")
}

func (s *CartSuite) TestSetQuantityUnknownProduct() {
	c := NewCart(s.catalog, true)
	_, err := c.SetQuantity("nope", 2)
	s.Error(err)
}

func (s *CartSuite) TestRemoveLine() {
	c := NewCart(s.catalog, false)
	_, _ = c.AddProduct(s.oil)
	_, _ = c.AddProduct(s.oil)
	first := c.Items()[0].ID

	_, err := c.RemoveLine(first)
	s.Require().NoError(err)
	s.Equal(1, c.Len())
	s.NotEqual(first, c.Items()[0].ID)

	_, err = c.RemoveLine(first)
	s.Error(err)
}

func (s *CartSuite) TestReservedQuantityCountsAsAvailable() {
	c := NewCart(s.catalog, true)
	c.Load([]LineItem{{ProductID: s.rice.ProductID, ProductName: s.rice.Name, Quantity: 2, UnitPrice: s.rice.Price}})
	c.Reserve(map[string]int{s.rice.ProductID: 2})

	s.Equal(5, c.Available(s.rice.ProductID))
	_, err := c.SetQuantity(s.rice.ProductID, 5)
	s.Require().NoError(err)
	_, err = c.SetQuantity(s.rice.ProductID, 6)
	s.Error(err)
	s.assertLineTotals(c)
}
