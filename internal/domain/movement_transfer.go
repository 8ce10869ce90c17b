package domain

import (
	"errors"
	"time"
)

// DoesSourceHaveSufficientStock reports whether the source location of a
// transfer holds at least the total quantity moved. It is false for other
// movement types.
func (m *StockMovement) DoesSourceHaveSufficientStock() bool {
	t, ok := m.details.(Transfer)
	w := m.warehouse.Value()
	if !ok || w == nil {
		return false
	}
	src, ok := w.FindLocation(t.FromLocationID)
	return ok && src.CurrentLoad() >= m.TotalQuantity()
}

// CanDestinationAccommodate reports whether the destination of a transfer
// can take the total quantity moved. It is false for other movement types.
func (m *StockMovement) CanDestinationAccommodate() bool {
	t, ok := m.details.(Transfer)
	w := m.warehouse.Value()
	if !ok || w == nil {
		return false
	}
	dst, ok := w.FindLocation(t.ToLocationID)
	return ok && dst.CanAccommodate(m.TotalQuantity())
}

func (m *StockMovement) IsCrossSectionTransfer() bool {
	t, ok := m.details.(Transfer)
	return ok && t.IsCrossSection()
}

func (m *StockMovement) checkTransfer(w *Warehouse, t Transfer) error {
	src, ok := w.FindLocation(t.FromLocationID)
	if !ok {
		return NewError(ErrNotFound, "LOCATION_NOT_FOUND", "source location %s not found", t.FromLocationID)
	}
	if _, ok := w.FindLocation(t.ToLocationID); !ok {
		return NewError(ErrNotFound, "LOCATION_NOT_FOUND", "destination location %s not found", t.ToLocationID)
	}
	for _, line := range m.lines {
		item := line.Item
		if !w.hasItem(item) {
			return NewError(ErrNotFound, "ITEM_NOT_FOUND", "no registered item for %s at %s", item.ISBN, item.locationID)
		}
		if item.locationID != t.FromLocationID {
			return NewError(ErrValidation, "ITEM_NOT_AT_SOURCE",
				"item %s is stored at %s, not %s", item.ISBN, item.locationID, t.FromLocationID)
		}
		if line.Quantity > item.quantity {
			return NewError(ErrInsufficientStock, "INSUFFICIENT_ITEM_STOCK",
				"item %s at %s holds %d, cannot move %d", item.ISBN, item.locationID, item.quantity, line.Quantity)
		}
	}
	if src.IsBlocked() {
		return NewError(ErrBlockedResource, "BLOCKED_LOCATION", "source location %s is blocked", src.ID())
	}
	if !m.DoesSourceHaveSufficientStock() {
		return NewError(ErrInsufficientStock, "INSUFFICIENT_SOURCE_STOCK",
			"source %s holds %d, cannot move %d", src.ID(), src.CurrentLoad(), m.TotalQuantity())
	}
	if !m.CanDestinationAccommodate() {
		return NewError(ErrInsufficientStock, "DESTINATION_CAPACITY_INSUFFICIENT",
			"destination %s cannot take %d books", t.ToLocationID, m.TotalQuantity())
	}
	return nil
}

// applyTransferLine moves line.Quantity books from the source to the
// destination location and hands them to the destination item: the item
// itself is relocated when moved whole, otherwise the quantity is split off
// into the destination item for the same book, created when missing.
func applyTransferLine(w *Warehouse, t Transfer, line MovementLine, date time.Time) (func() error, error) {
	src, ok := w.FindLocation(t.FromLocationID)
	if !ok {
		return nil, NewError(ErrNotFound, "LOCATION_NOT_FOUND", "source location %s not found", t.FromLocationID)
	}
	dst, ok := w.FindLocation(t.ToLocationID)
	if !ok {
		return nil, NewError(ErrNotFound, "LOCATION_NOT_FOUND", "destination location %s not found", t.ToLocationID)
	}
	qty := line.Quantity
	item := line.Item

	if err := src.RemoveBooks(qty); err != nil {
		return nil, err
	}
	if err := dst.AddBooks(qty); err != nil {
		if backErr := src.AddBooks(qty); backErr != nil {
			return nil, errors.Join(err, backErr)
		}
		return nil, err
	}

	revertLocations := func() error {
		if err := dst.RemoveBooks(qty); err != nil {
			return err
		}
		if err := src.AddBooks(qty); err != nil {
			// keep the destination in step with its items
			if again := dst.AddBooks(qty); again != nil {
				return errors.Join(err, again)
			}
			return err
		}
		return nil
	}

	var revertItems func() error
	destItem, merge := w.FindInventoryItem(item.ISBN, t.ToLocationID)
	switch {
	case merge:
		item.quantity -= qty
		destItem.quantity += qty
		revertItems = func() error {
			destItem.quantity -= qty
			item.quantity += qty
			if !w.hasItem(item) {
				return w.AddInventoryItem(item)
			}
			return nil
		}
	case qty == item.quantity:
		item.locationID = t.ToLocationID
		revertItems = func() error {
			item.locationID = t.FromLocationID
			return nil
		}
	default:
		split, err := NewInventoryItem(item.ISBN, qty, t.ToLocationID, date)
		if err == nil {
			err = w.AddInventoryItem(split)
		}
		if err != nil {
			if rbErr := revertLocations(); rbErr != nil {
				return nil, errors.Join(err, rbErr)
			}
			return nil, err
		}
		item.quantity -= qty
		revertItems = func() error {
			w.RemoveInventoryItem(split)
			item.quantity += qty
			return nil
		}
	}

	return func() error {
		if err := revertLocations(); err != nil {
			return err
		}
		return revertItems()
	}, nil
}
