package domain

type LocationStatus string

const (
	LocationFree     LocationStatus = "FREE"
	LocationOccupied LocationStatus = "OCCUPIED"
	LocationBlocked  LocationStatus = "BLOCKED"
)

func (s LocationStatus) IsValid() bool {
	switch s {
	case LocationFree, LocationOccupied, LocationBlocked:
		return true
	}
	return false
}

// StorageLocation is the smallest addressable capacity cell. AddBooks and
// RemoveBooks are the only mutators of its load.
type StorageLocation struct {
	id          string
	capacity    int
	currentLoad int
	status      LocationStatus
}

func NewStorageLocation(id string, capacity int) (*StorageLocation, error) {
	if !IsValidLocationID(id) {
		return nil, NewError(ErrValidation, "INVALID_LOCATION_ID", "invalid location id %q", id)
	}
	if capacity < MinLocationCapacity || capacity > MaxLocationCapacity {
		return nil, NewError(ErrValidation, "INVALID_CAPACITY",
			"location capacity must be between %d and %d, got %d", MinLocationCapacity, MaxLocationCapacity, capacity)
	}
	return &StorageLocation{
		id:       id,
		capacity: capacity,
		status:   LocationFree,
	}, nil
}

func (l *StorageLocation) ID() string {
	return l.id
}

func (l *StorageLocation) Capacity() int {
	return l.capacity
}

func (l *StorageLocation) CurrentLoad() int {
	return l.currentLoad
}

func (l *StorageLocation) Status() LocationStatus {
	return l.status
}

func (l *StorageLocation) AvailableSpace() int {
	return l.capacity - l.currentLoad
}

func (l *StorageLocation) IsBlocked() bool {
	return l.status == LocationBlocked
}

// SectionID returns the leading section letter of the location id.
func (l *StorageLocation) SectionID() string {
	return sectionOf(l.id)
}

func (l *StorageLocation) ShelfID() string {
	return shelfOf(l.id)
}

// IsAvailable reports whether the location can take at least one more book.
func (l *StorageLocation) IsAvailable() bool {
	return !l.IsBlocked() && l.currentLoad < l.capacity
}

func (l *StorageLocation) CanAccommodate(n int) bool {
	return !l.IsBlocked() && n >= 0 && l.currentLoad+n <= l.capacity
}

func (l *StorageLocation) AddBooks(n int) error {
	if l.IsBlocked() {
		return NewError(ErrBlockedResource, "BLOCKED_LOCATION", "location %s is blocked", l.id)
	}
	if n < 0 {
		return NewError(ErrValidation, "INVALID_QUANTITY", "quantity cannot be negative: %d", n)
	}
	if l.currentLoad+n > l.capacity {
		return NewError(ErrCapacity, "CAPACITY_EXCEEDED",
			"location %s cannot take %d more books (load %d, capacity %d)", l.id, n, l.currentLoad, l.capacity)
	}
	l.currentLoad += n
	if l.currentLoad > 0 {
		l.status = LocationOccupied
	}
	return nil
}

func (l *StorageLocation) RemoveBooks(n int) error {
	if l.IsBlocked() {
		return NewError(ErrBlockedResource, "BLOCKED_LOCATION", "location %s is blocked", l.id)
	}
	if n < 0 {
		return NewError(ErrValidation, "INVALID_QUANTITY", "quantity cannot be negative: %d", n)
	}
	if n > l.currentLoad {
		return NewError(ErrCapacity, "CAPACITY_UNDERFLOW",
			"location %s holds %d books, cannot remove %d", l.id, l.currentLoad, n)
	}
	l.currentLoad -= n
	if l.currentLoad == 0 {
		l.status = LocationFree
	}
	return nil
}

// SetStatus only accepts statuses consistent with the current load, except
// Blocked which is always allowed.
func (l *StorageLocation) SetStatus(status LocationStatus) error {
	switch status {
	case LocationBlocked:
	case LocationFree:
		if l.currentLoad > 0 {
			return NewError(ErrValidation, "INVALID_STATUS", "location %s holds %d books and cannot be free", l.id, l.currentLoad)
		}
	case LocationOccupied:
		if l.currentLoad == 0 {
			return NewError(ErrValidation, "INVALID_STATUS", "empty location %s cannot be occupied", l.id)
		}
	default:
		return NewError(ErrValidation, "INVALID_STATUS", "unknown location status %q", status)
	}
	l.status = status
	return nil
}

func (l *StorageLocation) Block() {
	l.status = LocationBlocked
}

// Unblock restores the status derived from the current load.
func (l *StorageLocation) Unblock() {
	if l.currentLoad > 0 {
		l.status = LocationOccupied
		return
	}
	l.status = LocationFree
}

func (l *StorageLocation) SetCapacity(capacity int) error {
	if capacity < MinLocationCapacity || capacity > MaxLocationCapacity {
		return NewError(ErrValidation, "INVALID_CAPACITY",
			"location capacity must be between %d and %d, got %d", MinLocationCapacity, MaxLocationCapacity, capacity)
	}
	if capacity < l.currentLoad {
		return NewError(ErrCapacity, "CAPACITY_BELOW_LOAD",
			"location %s holds %d books, capacity %d is too small", l.id, l.currentLoad, capacity)
	}
	l.capacity = capacity
	return nil
}
