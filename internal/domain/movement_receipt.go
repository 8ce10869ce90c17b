package domain

func (m *StockMovement) checkReceipt(w *Warehouse) error {
	planned := make(map[*StorageLocation]int)
	incoming := make(map[string]bool)
	for _, line := range m.lines {
		item := line.Item
		loc, ok := w.FindLocation(item.locationID)
		if !ok {
			return NewError(ErrNotFound, "LOCATION_NOT_FOUND", "location %s not found", item.locationID)
		}
		if loc.IsBlocked() {
			return NewError(ErrBlockedResource, "BLOCKED_LOCATION", "location %s is blocked", loc.ID())
		}
		if !w.hasItem(item) {
			if _, dup := w.FindInventoryItem(item.ISBN, item.locationID); dup {
				return NewError(ErrDuplicate, "DUPLICATE_ITEM",
					"location %s already holds an item for %s", item.locationID, item.ISBN)
			}
			key := item.ISBN + "@" + item.locationID
			if incoming[key] {
				return NewError(ErrDuplicate, "DUPLICATE_ITEM",
					"receipt registers %s at %s twice", item.ISBN, item.locationID)
			}
			incoming[key] = true
		}
		planned[loc] += line.Quantity
	}
	for loc, qty := range planned {
		if !loc.CanAccommodate(qty) {
			return NewError(ErrCapacity, "CAPACITY_EXCEEDED",
				"location %s cannot take %d more books (available %d)", loc.ID(), qty, loc.AvailableSpace())
		}
	}
	return nil
}

// applyReceiptLine registers the item if needed, then adds the books to the
// location and the item.
func applyReceiptLine(w *Warehouse, line MovementLine) (func() error, error) {
	item := line.Item
	loc, ok := w.FindLocation(item.locationID)
	if !ok {
		return nil, NewError(ErrNotFound, "LOCATION_NOT_FOUND", "location %s not found", item.locationID)
	}

	registered := false
	if !w.hasItem(item) {
		if err := w.AddInventoryItem(item); err != nil {
			return nil, err
		}
		registered = true
	}
	if err := loc.AddBooks(line.Quantity); err != nil {
		if registered {
			w.RemoveInventoryItem(item)
		}
		return nil, err
	}
	item.quantity += line.Quantity

	return func() error {
		if err := loc.RemoveBooks(line.Quantity); err != nil {
			return err
		}
		item.quantity -= line.Quantity
		if item.quantity == 0 {
			w.RemoveInventoryItem(item)
		}
		return nil
	}, nil
}
