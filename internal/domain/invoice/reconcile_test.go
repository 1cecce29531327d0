package invoice

import (
	"testing"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		"a": {ProductID: "a", Name: "A", Stock: 10},
		"b": {ProductID: "b", Name: "B", Stock: 2},
		"c": {ProductID: "c", Name: "C", Stock: 0},
	}
}

func TestPlanCreate(t *testing.T) {
	changes, unknown := PlanCreate(map[string]int{"a": 3, "b": 5, "ghost": 1}, testCatalog())

	require.Len(t, changes, 2)
	assert.Equal(t, StockChange{ProductID: "a", ProductName: "A", Previous: 10, Delta: 3, Target: 7}, changes[0])
	assert.Equal(t, 0, changes[1].Target, "target never goes negative")
	assert.Equal(t, []string{"ghost"}, unknown)
}

func TestPlanEdit(t *testing.T) {
	original := map[string]int{"a": 4, "b": 1, "c": 2}
	updated := map[string]int{"a": 6, "b": 1}

	changes, unknown := PlanEdit(original, updated, testCatalog())

	assert.Empty(t, unknown)
	require.Len(t, changes, 2, "unchanged products are skipped")
	assert.Equal(t, "a", changes[0].ProductID)
	assert.Equal(t, 2, changes[0].Delta)
	assert.Equal(t, 8, changes[0].Target)
	assert.Equal(t, "c", changes[1].ProductID)
	assert.Equal(t, -2, changes[1].Delta, "removed products return their units")
	assert.Equal(t, 2, changes[1].Target)
}

func TestPlanRollback(t *testing.T) {
	inv := entity.Invoice{Items: []entity.InvoiceItem{
		{ProductID: "a", Quantity: 2},
		{ProductID: "a", Quantity: 1},
		{ProductID: "gone", Quantity: 4},
	}}
	current := map[string]entity.Product{"a": {ID: "a", Name: "A", Quantity: 5}}

	changes, unknown := PlanRollback(inv.QuantityByProduct(), current)

	require.Len(t, changes, 1)
	assert.Equal(t, 8, changes[0].Target)
	assert.Equal(t, -3, changes[0].Delta)
	assert.Equal(t, []string{"gone"}, unknown)
}
