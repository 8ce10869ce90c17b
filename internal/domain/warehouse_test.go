package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShelf_AddLocation(t *testing.T) {
	shelf, err := NewShelf("A-01", 2)
	require.NoError(t, err)

	first, _ := NewStorageLocation("A-01-B-01", 10)
	second, _ := NewStorageLocation("A-01-B-02", 10)
	third, _ := NewStorageLocation("A-01-B-03", 10)
	foreign, _ := NewStorageLocation("A-02-B-01", 10)

	require.NoError(t, shelf.AddLocation(first))
	assert.ErrorIs(t, shelf.AddLocation(first), ErrDuplicate)
	assert.Equal(t, "LOCATION_SHELF_MISMATCH", ErrorCode(shelf.AddLocation(foreign)))
	require.NoError(t, shelf.AddLocation(second))
	assert.True(t, shelf.IsFull())
	assert.ErrorIs(t, shelf.AddLocation(third), ErrCapacity)
	assert.Len(t, shelf.Locations(), 2)

	t.Run("bounds", func(t *testing.T) {
		_, err := NewShelf("A-01", 0)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = NewShelf("A-01", MaxLocationsPerShelf+1)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = NewShelf("A1", 5)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestShelf_RemoveLocation(t *testing.T) {
	shelf, _ := NewShelf("A-01", 5)
	loc, _ := NewStorageLocation("A-01-B-01", 10)
	require.NoError(t, shelf.AddLocation(loc))
	require.NoError(t, loc.AddBooks(1))

	assert.ErrorIs(t, shelf.RemoveLocation("A-01-B-01"), ErrInvalidState)
	assert.ErrorIs(t, shelf.RemoveLocation("A-01-B-09"), ErrNotFound)

	require.NoError(t, loc.RemoveBooks(1))
	require.NoError(t, shelf.RemoveLocation("A-01-B-01"))
	assert.Empty(t, shelf.Locations())
}

func TestWarehouseSection(t *testing.T) {
	t.Run("climate bounds", func(t *testing.T) {
		_, err := NewWarehouseSection("A", SectionGeneral, Climate{Temperature: 51, Humidity: 40})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = NewWarehouseSection("A", SectionGeneral, Climate{Temperature: 20, Humidity: 101})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = NewWarehouseSection("AB", SectionGeneral, Climate{})
		assert.ErrorIs(t, err, ErrValidation)
		_, err = NewWarehouseSection("A", SectionType("COLD"), Climate{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("shelves", func(t *testing.T) {
		section, err := NewWarehouseSection("A", SectionGeneral, Climate{Temperature: -50, Humidity: 0})
		require.NoError(t, err)
		shelf, _ := NewShelf("A-01", 5)
		other, _ := NewShelf("B-01", 5)

		require.NoError(t, section.AddShelf(shelf))
		assert.ErrorIs(t, section.AddShelf(shelf), ErrDuplicate)
		assert.ErrorIs(t, section.AddShelf(other), ErrValidation)

		found, ok := section.FindShelf("A-01")
		assert.True(t, ok)
		assert.Same(t, shelf, found)
	})

	t.Run("parse type", func(t *testing.T) {
		st, err := ParseSectionType("climate_controlled")
		require.NoError(t, err)
		assert.Equal(t, SectionClimateControlled, st)
		_, err = ParseSectionType("freezer")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestWarehouse_Sections(t *testing.T) {
	_, err := NewWarehouse(" ", "addr")
	assert.ErrorIs(t, err, ErrValidation)

	w, err := NewWarehouse("Central", "1 Warehouse Road")
	require.NoError(t, err)

	for c := 'A'; c <= 'Z'; c++ {
		s, err := NewWarehouseSection(string(c), SectionGeneral, Climate{})
		require.NoError(t, err)
		require.NoError(t, w.AddSection(s))
	}
	assert.Len(t, w.Sections(), MaxSections)

	dup, _ := NewWarehouseSection("C", SectionBulk, Climate{})
	assert.ErrorIs(t, w.AddSection(dup), ErrDuplicate)
}

func TestWarehouse_Aggregates(t *testing.T) {
	w := newTestWarehouse(t)
	require.NoError(t, mustLocation(t, w, "A-01-B-01").AddBooks(30))
	require.NoError(t, mustLocation(t, w, "B-01-A-01").AddBooks(5))

	assert.Equal(t, 120, w.TotalCapacity())
	assert.Equal(t, 35, w.CurrentLoad())
	assert.Equal(t, 85, w.AvailableSpace())

	sumCapacity, sumLoad := 0, 0
	for _, s := range w.Sections() {
		sumCapacity += s.TotalCapacity()
		sumLoad += s.CurrentLoad()
		shelfLoad := 0
		for _, shelf := range s.Shelves() {
			shelfLoad += shelf.CurrentLoad()
		}
		assert.Equal(t, s.CurrentLoad(), shelfLoad, "section %s", s.ID())
	}
	assert.Equal(t, w.TotalCapacity(), sumCapacity)
	assert.Equal(t, w.CurrentLoad(), sumLoad)
}

func TestWarehouse_FindLocation(t *testing.T) {
	w := newTestWarehouse(t)

	loc, ok := w.FindLocation("A-02-B-01")
	require.True(t, ok)
	assert.Equal(t, "A-02-B-01", loc.ID())

	for _, id := range []string{"A-03-B-01", "C-01-A-01", "", "garbage"} {
		_, ok := w.FindLocation(id)
		assert.False(t, ok, id)
	}
}

func TestWarehouse_FindOptimalLocation(t *testing.T) {
	w := newTestWarehouse(t)

	t.Run("preferred section first", func(t *testing.T) {
		loc, ok := w.FindOptimalLocation(10, SectionClimateControlled)
		require.True(t, ok)
		assert.Equal(t, "B-01-A-01", loc.ID())
	})

	t.Run("falls back to other sections", func(t *testing.T) {
		loc, ok := w.FindOptimalLocation(30, SectionClimateControlled)
		require.True(t, ok)
		assert.Equal(t, "A-01-B-01", loc.ID())
	})

	t.Run("skips blocked and full locations", func(t *testing.T) {
		mustLocation(t, w, "A-01-B-01").Block()
		defer mustLocation(t, w, "A-01-B-01").Unblock()

		loc, ok := w.FindOptimalLocation(30, SectionGeneral)
		require.True(t, ok)
		assert.Equal(t, "A-02-B-01", loc.ID())
	})

	t.Run("nothing fits", func(t *testing.T) {
		_, ok := w.FindOptimalLocation(51, SectionGeneral)
		assert.False(t, ok)
	})
}

func TestWarehouse_InventoryItems(t *testing.T) {
	w := newTestWarehouse(t)

	item, err := NewInventoryItem("978-0", 0, "A-01-B-01", testDate)
	require.NoError(t, err)
	require.NoError(t, w.AddInventoryItem(item))

	t.Run("duplicate book and location", func(t *testing.T) {
		again, _ := NewInventoryItem("978-0", 0, "A-01-B-01", testDate)
		assert.ErrorIs(t, w.AddInventoryItem(again), ErrDuplicate)
		assert.ErrorIs(t, w.AddInventoryItem(item), ErrDuplicate)
	})

	t.Run("unknown location", func(t *testing.T) {
		lost, _ := NewInventoryItem("978-0", 0, "C-01-A-01", testDate)
		assert.ErrorIs(t, w.AddInventoryItem(lost), ErrNotFound)
	})

	other, _ := NewInventoryItem("978-0", 3, "A-02-B-01", testDate)
	require.NoError(t, w.AddInventoryItem(other))
	item.quantity = 4

	assert.Len(t, w.FindItemsByBook("978-0"), 2)
	assert.Equal(t, 7, w.TotalQuantity("978-0"))
	assert.Equal(t, 0, w.TotalQuantity("978-1"))

	found, ok := w.FindInventoryItem("978-0", "A-02-B-01")
	require.True(t, ok)
	assert.Same(t, other, found)

	other.quantity = 0
	assert.Equal(t, 1, w.RemoveEmptyItems())
	assert.Len(t, w.InventoryItems(), 1)

	assert.True(t, w.RemoveInventoryItem(item))
	assert.False(t, w.RemoveInventoryItem(item))
	assert.Empty(t, w.InventoryItems())
}

func TestWarehouse_CheckConsistency(t *testing.T) {
	w := newTestWarehouse(t)
	require.NoError(t, w.CheckConsistency())

	receive(t, w, "REC-2025-001", "978-0", "A-01-B-01", 12)
	require.NoError(t, w.CheckConsistency())

	require.NoError(t, mustLocation(t, w, "A-01-B-01").AddBooks(1))
	err := w.CheckConsistency()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "LOAD_MISMATCH", ErrorCode(err))
}

func TestInventoryItem(t *testing.T) {
	_, err := NewInventoryItem("", 1, "A-01-B-01", testDate)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewInventoryItem("978-0", -1, "A-01-B-01", testDate)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewInventoryItem("978-0", 1, "A-01", testDate)
	assert.ErrorIs(t, err, ErrValidation)

	item, err := NewInventoryItem(" 978-0 ", 0, "A-01-B-01", testDate)
	require.NoError(t, err)
	assert.Equal(t, "978-0", item.ISBN)
	assert.Equal(t, "A-01-B-01", item.LocationID())
	assert.Equal(t, 0, item.Quantity())
	assert.True(t, item.IsEmpty())
	assert.Equal(t, testDate, item.DateAdded)
}
