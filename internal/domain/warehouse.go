package domain

import "strings"

// Warehouse owns its sections and the flat list of inventory items. It is
// not safe for concurrent use; callers serialise access.
type Warehouse struct {
	name     string
	address  string
	sections []*WarehouseSection
	items    []*InventoryItem
}

func NewWarehouse(name, address string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return nil, NewError(ErrValidation, "INVALID_NAME", "warehouse name is required")
	}
	if address == "" {
		return nil, NewError(ErrValidation, "INVALID_ADDRESS", "warehouse address is required")
	}
	return &Warehouse{name: name, address: address}, nil
}

func (w *Warehouse) Name() string {
	return w.name
}

func (w *Warehouse) Address() string {
	return w.address
}

func (w *Warehouse) Sections() []*WarehouseSection {
	out := make([]*WarehouseSection, len(w.sections))
	copy(out, w.sections)
	return out
}

func (w *Warehouse) AddSection(section *WarehouseSection) error {
	if section == nil {
		return NewError(ErrValidation, "INVALID_SECTION", "section is required")
	}
	if _, ok := w.FindSection(section.ID()); ok {
		return NewError(ErrDuplicate, "DUPLICATE_SECTION", "section %s already exists", section.ID())
	}
	if len(w.sections) >= MaxSections {
		return NewError(ErrCapacity, "TOO_MANY_SECTIONS", "warehouse already has %d sections", MaxSections)
	}
	w.sections = append(w.sections, section)
	return nil
}

// FindSection reports a miss with ok=false rather than an error.
func (w *Warehouse) FindSection(id string) (*WarehouseSection, bool) {
	for _, s := range w.sections {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

func (w *Warehouse) FindLocation(id string) (*StorageLocation, bool) {
	section, ok := w.FindSection(sectionOf(id))
	if !ok {
		return nil, false
	}
	return section.FindLocation(id)
}

func (w *Warehouse) FindAvailableLocations() []*StorageLocation {
	var out []*StorageLocation
	for _, s := range w.sections {
		out = append(out, s.FindAvailableLocations()...)
	}
	return out
}

func (w *Warehouse) TotalCapacity() int {
	total := 0
	for _, s := range w.sections {
		total += s.TotalCapacity()
	}
	return total
}

func (w *Warehouse) CurrentLoad() int {
	total := 0
	for _, s := range w.sections {
		total += s.CurrentLoad()
	}
	return total
}

func (w *Warehouse) AvailableSpace() int {
	return w.TotalCapacity() - w.CurrentLoad()
}

// CandidateLocations lists every available location, those in sections of
// the preferred type first, each group in section/shelf/location order.
func (w *Warehouse) CandidateLocations(preferred SectionType) []*StorageLocation {
	var first, rest []*StorageLocation
	for _, s := range w.sections {
		if s.Type() == preferred {
			first = append(first, s.FindAvailableLocations()...)
		} else {
			rest = append(rest, s.FindAvailableLocations()...)
		}
	}
	return append(first, rest...)
}

// FindOptimalLocation returns the first location able to take quantity,
// looking in preferred sections before falling back to all of them.
func (w *Warehouse) FindOptimalLocation(quantity int, preferred SectionType) (*StorageLocation, bool) {
	for _, loc := range w.CandidateLocations(preferred) {
		if loc.CanAccommodate(quantity) {
			return loc, true
		}
	}
	return nil, false
}

// Inventory items

func (w *Warehouse) InventoryItems() []*InventoryItem {
	out := make([]*InventoryItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Warehouse) AddInventoryItem(item *InventoryItem) error {
	if item == nil {
		return NewError(ErrValidation, "INVALID_ITEM", "inventory item is required")
	}
	if _, ok := w.FindLocation(item.locationID); !ok {
		return NewError(ErrNotFound, "LOCATION_NOT_FOUND", "location %s not found in warehouse %s", item.locationID, w.name)
	}
	if w.hasItem(item) {
		return NewError(ErrDuplicate, "DUPLICATE_ITEM", "inventory item for %s at %s is already registered", item.ISBN, item.locationID)
	}
	if _, ok := w.FindInventoryItem(item.ISBN, item.locationID); ok {
		return NewError(ErrDuplicate, "DUPLICATE_ITEM", "location %s already holds an item for %s", item.locationID, item.ISBN)
	}
	w.items = append(w.items, item)
	return nil
}

// RemoveInventoryItem removes the given item by identity. It reports whether
// the item was registered.
func (w *Warehouse) RemoveInventoryItem(item *InventoryItem) bool {
	for i, it := range w.items {
		if it == item {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Warehouse) hasItem(item *InventoryItem) bool {
	for _, it := range w.items {
		if it == item {
			return true
		}
	}
	return false
}

func (w *Warehouse) FindInventoryItem(isbn, locationID string) (*InventoryItem, bool) {
	for _, it := range w.items {
		if it.ISBN == isbn && it.locationID == locationID {
			return it, true
		}
	}
	return nil, false
}

func (w *Warehouse) FindItemsByBook(isbn string) []*InventoryItem {
	var out []*InventoryItem
	for _, it := range w.items {
		if it.ISBN == isbn {
			out = append(out, it)
		}
	}
	return out
}

func (w *Warehouse) TotalQuantity(isbn string) int {
	total := 0
	for _, it := range w.items {
		if it.ISBN == isbn {
			total += it.quantity
		}
	}
	return total
}

// RemoveEmptyItems drops every item whose quantity reached zero and returns
// how many were removed.
func (w *Warehouse) RemoveEmptyItems() int {
	kept := w.items[:0]
	removed := 0
	for _, it := range w.items {
		if it.IsEmpty() {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(w.items); i++ {
		w.items[i] = nil
	}
	w.items = kept
	return removed
}

// ProcessStockMovement executes m against this warehouse and drops items
// left empty, whether or not execution succeeded.
func (w *Warehouse) ProcessStockMovement(m *StockMovement) error {
	if err := w.owns(m); err != nil {
		return err
	}
	defer w.RemoveEmptyItems()
	return m.Execute()
}

func (w *Warehouse) CancelStockMovement(m *StockMovement) error {
	if err := w.owns(m); err != nil {
		return err
	}
	defer w.RemoveEmptyItems()
	return m.Cancel()
}

func (w *Warehouse) owns(m *StockMovement) error {
	if m == nil {
		return NewError(ErrValidation, "INVALID_MOVEMENT", "movement is required")
	}
	if m.warehouse.Value() != w {
		return NewError(ErrValidation, "FOREIGN_MOVEMENT", "movement %s belongs to another warehouse", m.ID())
	}
	return nil
}

// CheckConsistency verifies that every location's load equals the sum of
// the items stored there and that every item points at a known location.
func (w *Warehouse) CheckConsistency() error {
	perLocation := make(map[string]int)
	for _, it := range w.items {
		if it.quantity < 0 {
			return NewError(ErrInvalidState, "NEGATIVE_ITEM_QUANTITY",
				"item %s at %s has negative quantity %d", it.ISBN, it.locationID, it.quantity)
		}
		if _, ok := w.FindLocation(it.locationID); !ok {
			return NewError(ErrInvalidState, "UNKNOWN_ITEM_LOCATION",
				"item %s refers to unknown location %s", it.ISBN, it.locationID)
		}
		perLocation[it.locationID] += it.quantity
	}
	for _, s := range w.sections {
		for _, loc := range s.locations() {
			if loc.CurrentLoad() != perLocation[loc.ID()] {
				return NewError(ErrInvalidState, "LOAD_MISMATCH", "location %s load %d does not match item total %d",
					loc.ID(), loc.CurrentLoad(), perLocation[loc.ID()])
			}
		}
	}
	return nil
}
