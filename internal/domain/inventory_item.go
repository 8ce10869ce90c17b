package domain

import (
	"strings"
	"time"
)

// InventoryItem is the share of a location's load held for one book. It
// refers to its location by id; the location itself is owned by a shelf.
// Quantity and location only change through stock movements.
type InventoryItem struct {
	ISBN      string
	DateAdded time.Time

	quantity   int
	locationID string
}

func NewInventoryItem(isbn string, quantity int, locationID string, dateAdded time.Time) (*InventoryItem, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, NewError(ErrValidation, "INVALID_ISBN", "isbn is required")
	}
	if quantity < 0 {
		return nil, NewError(ErrValidation, "INVALID_QUANTITY", "quantity cannot be negative: %d", quantity)
	}
	if !IsValidLocationID(locationID) {
		return nil, NewError(ErrValidation, "INVALID_LOCATION_ID", "invalid location id %q", locationID)
	}
	if dateAdded.IsZero() {
		dateAdded = time.Now().UTC()
	}
	return &InventoryItem{
		ISBN:       isbn,
		DateAdded:  dateAdded,
		quantity:   quantity,
		locationID: locationID,
	}, nil
}

func (i *InventoryItem) Quantity() int {
	return i.quantity
}

func (i *InventoryItem) LocationID() string {
	return i.locationID
}

func (i *InventoryItem) IsEmpty() bool {
	return i.quantity == 0
}
