package domain

import "strings"

// SectionType is only used as a placement preference when looking for a
// location; it never restricts what a section may hold.
type SectionType string

const (
	SectionGeneral           SectionType = "GENERAL"
	SectionClimateControlled SectionType = "CLIMATE_CONTROLLED"
	SectionBulk              SectionType = "BULK"
	SectionReceiving         SectionType = "RECEIVING"
	SectionReturns           SectionType = "RETURNS"
)

func (t SectionType) IsValid() bool {
	switch t {
	case SectionGeneral,
		SectionClimateControlled,
		SectionBulk,
		SectionReceiving,
		SectionReturns:
		return true
	}
	return false
}

// ParseSectionType accepts the type name in any case.
func ParseSectionType(s string) (SectionType, error) {
	t := SectionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", NewError(ErrValidation, "INVALID_SECTION_TYPE", "unknown section type %q", s)
	}
	return t, nil
}

// Climate is the environment a section is kept at.
type Climate struct {
	Temperature float64
	Humidity    float64
}

func (c Climate) validate() error {
	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return NewError(ErrValidation, "INVALID_TEMPERATURE",
			"temperature must be between %.0f and %.0f, got %.1f", MinTemperature, MaxTemperature, c.Temperature)
	}
	if c.Humidity < MinHumidity || c.Humidity > MaxHumidity {
		return NewError(ErrValidation, "INVALID_HUMIDITY",
			"humidity must be between %.0f and %.0f, got %.1f", MinHumidity, MaxHumidity, c.Humidity)
	}
	return nil
}

type WarehouseSection struct {
	id          string
	sectionType SectionType
	climate     Climate
	shelves     []*Shelf
}

func NewWarehouseSection(id string, sectionType SectionType, climate Climate) (*WarehouseSection, error) {
	if !IsValidSectionID(id) {
		return nil, NewError(ErrValidation, "INVALID_SECTION_ID", "invalid section id %q", id)
	}
	if !sectionType.IsValid() {
		return nil, NewError(ErrValidation, "INVALID_SECTION_TYPE", "unknown section type %q", sectionType)
	}
	if err := climate.validate(); err != nil {
		return nil, err
	}
	return &WarehouseSection{
		id:          id,
		sectionType: sectionType,
		climate:     climate,
	}, nil
}

func (s *WarehouseSection) ID() string {
	return s.id
}

func (s *WarehouseSection) Type() SectionType {
	return s.sectionType
}

func (s *WarehouseSection) Climate() Climate {
	return s.climate
}

func (s *WarehouseSection) SetClimate(c Climate) error {
	if err := c.validate(); err != nil {
		return err
	}
	s.climate = c
	return nil
}

func (s *WarehouseSection) Shelves() []*Shelf {
	out := make([]*Shelf, len(s.shelves))
	copy(out, s.shelves)
	return out
}

func (s *WarehouseSection) AddShelf(shelf *Shelf) error {
	if shelf == nil {
		return NewError(ErrValidation, "INVALID_SHELF", "shelf is required")
	}
	if sectionOf(shelf.ID()) != s.id {
		return NewError(ErrValidation, "SHELF_SECTION_MISMATCH", "shelf %s does not belong to section %s", shelf.ID(), s.id)
	}
	if _, ok := s.FindShelf(shelf.ID()); ok {
		return NewError(ErrDuplicate, "DUPLICATE_SHELF", "shelf %s already exists in section %s", shelf.ID(), s.id)
	}
	s.shelves = append(s.shelves, shelf)
	return nil
}

func (s *WarehouseSection) FindShelf(id string) (*Shelf, bool) {
	for _, shelf := range s.shelves {
		if shelf.ID() == id {
			return shelf, true
		}
	}
	return nil, false
}

func (s *WarehouseSection) FindLocation(id string) (*StorageLocation, bool) {
	shelf, ok := s.FindShelf(shelfOf(id))
	if !ok {
		return nil, false
	}
	return shelf.FindLocation(id)
}

func (s *WarehouseSection) FindAvailableLocations() []*StorageLocation {
	var out []*StorageLocation
	for _, shelf := range s.shelves {
		out = append(out, shelf.FindAvailableLocations()...)
	}
	return out
}

func (s *WarehouseSection) TotalCapacity() int {
	total := 0
	for _, shelf := range s.shelves {
		total += shelf.TotalCapacity()
	}
	return total
}

func (s *WarehouseSection) CurrentLoad() int {
	total := 0
	for _, shelf := range s.shelves {
		total += shelf.CurrentLoad()
	}
	return total
}

func (s *WarehouseSection) AvailableSpace() int {
	return s.TotalCapacity() - s.CurrentLoad()
}

// locations returns every location in shelf order, blocked ones included.
func (s *WarehouseSection) locations() []*StorageLocation {
	var out []*StorageLocation
	for _, shelf := range s.shelves {
		out = append(out, shelf.locations...)
	}
	return out
}
