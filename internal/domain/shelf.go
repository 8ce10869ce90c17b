package domain

import "strings"

// Shelf owns an ordered, bounded set of storage locations. Aggregates are
// recomputed from the locations on every call.
type Shelf struct {
	id           string
	maxLocations int
	locations    []*StorageLocation
}

func NewShelf(id string, maxLocations int) (*Shelf, error) {
	if !IsValidShelfID(id) {
		return nil, NewError(ErrValidation, "INVALID_SHELF_ID", "invalid shelf id %q", id)
	}
	if maxLocations < 1 || maxLocations > MaxLocationsPerShelf {
		return nil, NewError(ErrValidation, "INVALID_MAX_LOCATIONS",
			"shelf must hold between 1 and %d locations, got %d", MaxLocationsPerShelf, maxLocations)
	}
	return &Shelf{
		id:           id,
		maxLocations: maxLocations,
		locations:    make([]*StorageLocation, 0, maxLocations),
	}, nil
}

func (s *Shelf) ID() string {
	return s.id
}

func (s *Shelf) MaxLocations() int {
	return s.maxLocations
}

func (s *Shelf) Locations() []*StorageLocation {
	out := make([]*StorageLocation, len(s.locations))
	copy(out, s.locations)
	return out
}

func (s *Shelf) IsFull() bool {
	return len(s.locations) >= s.maxLocations
}

func (s *Shelf) AddLocation(loc *StorageLocation) error {
	if loc == nil {
		return NewError(ErrValidation, "INVALID_LOCATION", "location is required")
	}
	if !strings.HasPrefix(loc.ID(), s.id+"-") {
		return NewError(ErrValidation, "LOCATION_SHELF_MISMATCH", "location %s does not belong to shelf %s", loc.ID(), s.id)
	}
	if _, ok := s.FindLocation(loc.ID()); ok {
		return NewError(ErrDuplicate, "DUPLICATE_LOCATION", "location %s already exists on shelf %s", loc.ID(), s.id)
	}
	if s.IsFull() {
		return NewError(ErrCapacity, "SHELF_FULL", "shelf %s already holds %d locations", s.id, s.maxLocations)
	}
	s.locations = append(s.locations, loc)
	return nil
}

// RemoveLocation detaches an empty location from the shelf.
func (s *Shelf) RemoveLocation(id string) error {
	for i, loc := range s.locations {
		if loc.ID() != id {
			continue
		}
		if loc.CurrentLoad() > 0 {
			return NewError(ErrInvalidState, "LOCATION_NOT_EMPTY", "location %s still holds %d books", id, loc.CurrentLoad())
		}
		s.locations = append(s.locations[:i], s.locations[i+1:]...)
		return nil
	}
	return NewError(ErrNotFound, "LOCATION_NOT_FOUND", "location %s not found on shelf %s", id, s.id)
}

func (s *Shelf) FindLocation(id string) (*StorageLocation, bool) {
	for _, loc := range s.locations {
		if loc.ID() == id {
			return loc, true
		}
	}
	return nil, false
}

func (s *Shelf) FindAvailableLocations() []*StorageLocation {
	var out []*StorageLocation
	for _, loc := range s.locations {
		if loc.IsAvailable() {
			out = append(out, loc)
		}
	}
	return out
}

func (s *Shelf) TotalCapacity() int {
	total := 0
	for _, loc := range s.locations {
		total += loc.Capacity()
	}
	return total
}

func (s *Shelf) CurrentLoad() int {
	total := 0
	for _, loc := range s.locations {
		total += loc.CurrentLoad()
	}
	return total
}

func (s *Shelf) AvailableSpace() int {
	return s.TotalCapacity() - s.CurrentLoad()
}
