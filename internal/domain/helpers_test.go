package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestWarehouse builds:
//
//	A (GENERAL)            A-01: A-01-B-01 (50)   A-02: A-02-B-01 (50)
//	B (CLIMATE_CONTROLLED) B-01: B-01-A-01 (20)
func newTestWarehouse(t *testing.T) *Warehouse {
	t.Helper()

	w, err := NewWarehouse("Central", "1 Warehouse Road")
	require.NoError(t, err)

	a, err := NewWarehouseSection("A", SectionGeneral, Climate{Temperature: 20, Humidity: 45})
	require.NoError(t, err)
	addShelf(t, a, "A-01", map[string]int{"A-01-B-01": 50})
	addShelf(t, a, "A-02", map[string]int{"A-02-B-01": 50})
	require.NoError(t, w.AddSection(a))

	b, err := NewWarehouseSection("B", SectionClimateControlled, Climate{Temperature: 18, Humidity: 40})
	require.NoError(t, err)
	addShelf(t, b, "B-01", map[string]int{"B-01-A-01": 20})
	require.NoError(t, w.AddSection(b))

	return w
}

func addShelf(t *testing.T, s *WarehouseSection, id string, locations map[string]int) *Shelf {
	t.Helper()
	shelf, err := NewShelf(id, 10)
	require.NoError(t, err)
	for locID, capacity := range locations {
		loc, err := NewStorageLocation(locID, capacity)
		require.NoError(t, err)
		require.NoError(t, shelf.AddLocation(loc))
	}
	require.NoError(t, s.AddShelf(shelf))
	return shelf
}

func mustLocation(t *testing.T, w *Warehouse, id string) *StorageLocation {
	t.Helper()
	loc, ok := w.FindLocation(id)
	require.True(t, ok, "location %s", id)
	return loc
}

// receive books quantity copies of isbn into locationID and returns the item.
func receive(t *testing.T, w *Warehouse, id, isbn, locationID string, quantity int) *InventoryItem {
	t.Helper()
	item, ok := w.FindInventoryItem(isbn, locationID)
	if !ok {
		var err error
		item, err = NewInventoryItem(isbn, 0, locationID, testDate)
		require.NoError(t, err)
	}
	m, err := NewStockReceipt(w, MovementParams{
		ID:      id,
		ActorID: "EMP-001",
		Date:    testDate,
		Lines:   []MovementLine{{Item: item, Quantity: quantity}},
	}, "Acme Books")
	require.NoError(t, err)
	require.NoError(t, w.ProcessStockMovement(m))
	return item
}

func params(id string, lines ...MovementLine) MovementParams {
	return MovementParams{ID: id, ActorID: "EMP-001", Date: testDate, Lines: lines}
}
