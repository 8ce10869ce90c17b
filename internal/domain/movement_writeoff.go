package domain

func (m *StockMovement) checkWriteOff(w *Warehouse) error {
	planned := make(map[*StorageLocation]int)
	for _, line := range m.lines {
		item := line.Item
		if !w.hasItem(item) {
			return NewError(ErrNotFound, "ITEM_NOT_FOUND", "no registered item for %s at %s", item.ISBN, item.locationID)
		}
		loc, ok := w.FindLocation(item.locationID)
		if !ok {
			return NewError(ErrNotFound, "LOCATION_NOT_FOUND", "location %s not found", item.locationID)
		}
		if loc.IsBlocked() {
			return NewError(ErrBlockedResource, "BLOCKED_LOCATION", "location %s is blocked", loc.ID())
		}
		if line.Quantity > item.quantity {
			return NewError(ErrInsufficientStock, "INSUFFICIENT_ITEM_STOCK",
				"item %s at %s holds %d, cannot write off %d", item.ISBN, item.locationID, item.quantity, line.Quantity)
		}
		planned[loc] += line.Quantity
	}
	for loc, qty := range planned {
		if qty > loc.CurrentLoad() {
			return NewError(ErrInsufficientStock, "INSUFFICIENT_LOCATION_STOCK",
				"location %s holds %d, cannot write off %d", loc.ID(), loc.CurrentLoad(), qty)
		}
	}
	return nil
}

// applyWriteOffLine removes the books from the location and the item, and
// drops the item from the warehouse once it is empty.
func applyWriteOffLine(w *Warehouse, line MovementLine) (func() error, error) {
	item := line.Item
	loc, ok := w.FindLocation(item.locationID)
	if !ok {
		return nil, NewError(ErrNotFound, "LOCATION_NOT_FOUND", "location %s not found", item.locationID)
	}
	if line.Quantity > item.quantity {
		return nil, NewError(ErrInsufficientStock, "INSUFFICIENT_ITEM_STOCK",
			"item %s at %s holds %d, cannot write off %d", item.ISBN, item.locationID, item.quantity, line.Quantity)
	}
	if err := loc.RemoveBooks(line.Quantity); err != nil {
		return nil, err
	}
	item.quantity -= line.Quantity

	removed := false
	if item.quantity == 0 {
		removed = w.RemoveInventoryItem(item)
	}

	return func() error {
		if err := loc.AddBooks(line.Quantity); err != nil {
			return err
		}
		item.quantity += line.Quantity
		if removed {
			return w.AddInventoryItem(item)
		}
		return nil
	}, nil
}
