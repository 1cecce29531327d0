package invoice

import (
	"sort"
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CatalogEntry is the last-fetched view of a product a draft relies on.
// Stock is a cached figure; the backend remains the source of truth.
type CatalogEntry struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code,omitempty"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
}

// EntryFromProduct captures the fields of p the cart needs.
func EntryFromProduct(p entity.Product) CatalogEntry {
	return CatalogEntry{
		ProductID:    p.ID,
		Code:         p.ProductCode,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Price:        p.UnitPrice(),
		Stock:        p.Quantity,
	}
}

// Catalog indexes cached products by id.
type Catalog map[string]CatalogEntry

// NewCatalog builds a catalog from a product listing.
func NewCatalog(products []entity.Product) Catalog {
	c := make(Catalog, len(products))
	c.Refresh(products)
	return c
}

// Refresh upserts products into the catalog. Entries not present in products are kept.
func (c Catalog) Refresh(products []entity.Product) {
	for _, p := range products {
		c[p.ID] = EntryFromProduct(p)
	}
}

// Lookup returns the cached entry for a product id.
func (c Catalog) Lookup(productID string) (CatalogEntry, bool) {
	e, ok := c[productID]
	return e, ok
}

// ByCode finds an entry by its scanned product code.
func (c Catalog) ByCode(code string) (CatalogEntry, bool) {
	return lo.Find(lo.Values(c), func(e CatalogEntry) bool {
		return e.Code != "" && e.Code == code
	})
}

// Search filters the catalog by a free-text term (name, id or code) and a
// category (id or name). Empty arguments match everything. Results are sorted by name.
func (c Catalog) Search(term, category string) []CatalogEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	category = strings.TrimSpace(category)

	out := lo.Filter(lo.Values(c), func(e CatalogEntry, _ int) bool {
		if category != "" && e.CategoryID != category && e.CategoryName != category {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Name), term) ||
			strings.Contains(strings.ToLower(e.ProductID), term) ||
			strings.Contains(strings.ToLower(e.Code), term)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
