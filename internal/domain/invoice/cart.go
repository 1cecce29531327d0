package invoice

import (
	"fmt"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Cart is the ordered list of line items of one invoice draft. It enforces the
// stock guard against the draft's catalog: no mutation may knowingly push a
// product's quantity above its last-fetched stock.
type Cart struct {
	items   []LineItem
	catalog Catalog
	merge   bool
	// reserved holds quantities the invoice being edited already took out of
	// stock; they count as available again for that invoice.
	reserved map[string]int
	now      func() time.Time
}

// NewCart returns an empty cart bound to catalog.
func NewCart(catalog Catalog, merge bool) *Cart {
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Cart{
		catalog:  catalog,
		merge:    merge,
		reserved: map[string]int{},
		now:      time.Now,
	}
}

// Merge reports whether re-adding a product bumps its existing line.
func (c *Cart) Merge() bool { return c.merge }

// SetMerge toggles merge mode. Existing lines are not touched.
func (c *Cart) SetMerge(on bool) { c.merge = on }

// Catalog exposes the cached product view the cart checks against.
func (c *Cart) Catalog() Catalog { return c.catalog }

// Reserve marks quantities already deducted from stock for the invoice being edited.
func (c *Cart) Reserve(quantities map[string]int) {
	c.reserved = make(map[string]int, len(quantities))
	for id, qty := range quantities {
		c.reserved[id] = qty
	}
}

// Available is the quantity of a product this cart may hold.
func (c *Cart) Available(productID string) int {
	entry, ok := c.catalog.Lookup(productID)
	if !ok {
		return c.reserved[productID]
	}
	return entry.Stock + c.reserved[productID]
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.items) }

// Quantity is the total quantity of a product across all its lines.
func (c *Cart) Quantity(productID string) int {
	return lo.SumBy(c.items, func(l LineItem) int {
		if l.ProductID == productID {
			return l.Quantity
		}
		return 0
	})
}

// QuantityByProduct sums quantities per product id.
func (c *Cart) QuantityByProduct() map[string]int {
	out := make(map[string]int, len(c.items))
	for _, l := range c.items {
		out[l.ProductID] += l.Quantity
	}
	return out
}

// Subtotal is the sum of all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.items)
}

// AddProduct adds one unit of the product. The catalog entry is refreshed
// with the given view first so the guard uses the newest stock figure.
func (c *Cart) AddProduct(product CatalogEntry) (Notice, error) {
	c.catalog[product.ProductID] = product
	available := c.Available(product.ProductID)
	if available <= 0 {
		return Notice{}, apperror.NewRuleError(fmt.Sprintf("%s is out of stock", product.Name))
	}

	// The guard counts every line of the product; lines added while merge was
	// off stay separate after it is switched on.
	if c.Quantity(product.ProductID)+1 > available {
		return Notice{}, stockError(product.Name, available)
	}

	if c.merge {
		if idx, ok := c.firstLine(product.ProductID); ok {
			next := c.items[idx].Quantity + 1
			c.items[idx].setQuantity(next)
			return info(fmt.Sprintf("Quantity of %s increased to %d", product.Name, next)), nil
		}
	}

	line := LineItem{
		ID:          newLineItemID(product.ProductID, c.now()),
		ProductID:   product.ProductID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
	}
	line.setQuantity(1)
	c.items = append(c.items, line)
	return success(fmt.Sprintf("%s added to the invoice", product.Name)), nil
}

// SetQuantity sets the quantity of a product. Zero or less removes the
// product; a quantity above available stock is rejected and leaves the cart
// unchanged. Duplicate lines for the product collapse into the first one.
func (c *Cart) SetQuantity(productID string, qty int) (Notice, error) {
	idx, ok := c.firstLine(productID)
	if !ok {
		return Notice{}, apperror.NewNotFoundError("Invoice item")
	}
	name := c.items[idx].ProductName

	if qty <= 0 {
		c.items = lo.Reject(c.items, func(l LineItem, _ int) bool { return l.ProductID == productID })
		return info(fmt.Sprintf("%s removed from the invoice", name)), nil
	}

	if available := c.Available(productID); qty > available {
		return Notice{}, stockError(name, available)
	}

	c.items[idx].setQuantity(qty)
	keep := c.items[idx].ID
	c.items = lo.Reject(c.items, func(l LineItem, _ int) bool { return l.ProductID == productID && l.ID != keep })
	return info(fmt.Sprintf("Quantity of %s set to %d", name, qty)), nil
}

// RemoveLine drops a single line by id.
func (c *Cart) RemoveLine(lineID string) (Notice, error) {
	line, ok := lo.Find(c.items, func(l LineItem) bool { return l.ID == lineID })
	if !ok {
		return Notice{}, apperror.NewNotFoundError("Invoice item")
	}
	c.items = lo.Reject(c.items, func(l LineItem, _ int) bool { return l.ID == lineID })
	return info(fmt.Sprintf("%s removed from the invoice", line.ProductName)), nil
}

// Load replaces the cart content with lines from a saved invoice.
func (c *Cart) Load(lines []LineItem) {
	c.items = make([]LineItem, 0, len(lines))
	for _, l := range lines {
		if l.ID == "" {
			l.ID = newLineItemID(l.ProductID, c.now())
		}
		l.setQuantity(l.Quantity)
		c.items = append(c.items, l)
	}
}

func (c *Cart) firstLine(productID string) (int, bool) {
	for i, l := range c.items {
		if l.ProductID == productID {
			return i, true
		}
	}
	return -1, false
}

func stockError(name string, available int) error {
	if available <= 0 {
		return apperror.NewRuleError(fmt.Sprintf("%s is out of stock", name))
	}
	return apperror.NewRuleError(fmt.Sprintf("Only %d units of %s are in stock", available, name))
}
