package invoice

import (
	"sort"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
)

// StockChange is one absolute stock write the gateway performs after an
// invoice mutation. The stock endpoint sets a quantity, so Target is computed
// from the cached figure rather than sent as a delta.
type StockChange struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Previous    int    `json:"previous"`
	// Delta is the number of units leaving stock; negative values return units.
	Delta  int `json:"delta"`
	Target int `json:"target"`
}

func newStockChange(entry CatalogEntry, delta int) StockChange {
	target := entry.Stock - delta
	if target < 0 {
		target = 0
	}
	return StockChange{
		ProductID:   entry.ProductID,
		ProductName: entry.Name,
		Previous:    entry.Stock,
		Delta:       delta,
		Target:      target,
	}
}

// PlanCreate returns one stock write per distinct product of a new invoice.
// Products missing from the catalog are returned separately.
func PlanCreate(quantities map[string]int, catalog Catalog) ([]StockChange, []string) {
	return PlanEdit(nil, quantities, catalog)
}

// PlanEdit diffs an edited invoice against the snapshot taken when it was
// opened. Products whose quantity did not change are skipped; products removed
// from the invoice have their units returned.
func PlanEdit(original, updated map[string]int, catalog Catalog) ([]StockChange, []string) {
	ids := make(map[string]struct{}, len(original)+len(updated))
	for id := range original {
		ids[id] = struct{}{}
	}
	for id := range updated {
		ids[id] = struct{}{}
	}

	var changes []StockChange
	var unknown []string
	for id := range ids {
		delta := updated[id] - original[id]
		if delta == 0 {
			continue
		}
		entry, ok := catalog.Lookup(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		changes = append(changes, newStockChange(entry, delta))
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].ProductID < changes[j].ProductID })
	sort.Strings(unknown)
	return changes, unknown
}

// PlanRollback returns the units of a deleted invoice to stock, one write per
// distinct product, based on freshly fetched product quantities.
func PlanRollback(quantities map[string]int, current map[string]entity.Product) ([]StockChange, []string) {
	var changes []StockChange
	var unknown []string
	for id, qty := range quantities {
		p, ok := current[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		changes = append(changes, newStockChange(EntryFromProduct(p), -qty))
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].ProductID < changes[j].ProductID })
	sort.Strings(unknown)
	return changes, unknown
}
