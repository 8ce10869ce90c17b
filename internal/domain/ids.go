package domain

import (
	"regexp"
	"strings"
)

var (
	locationIDPattern = regexp.MustCompile(`^[A-Z]-\d{2}-[A-Z]-\d{2}$`)
	shelfIDPattern    = regexp.MustCompile(`^[A-Z]-\d{2}$`)
	sectionIDPattern  = regexp.MustCompile(`^[A-Z]$`)
	movementIDPattern = regexp.MustCompile(`^(REC|WO|TRF|DEL)-\d{4}-\d{3}$`)
	actorIDPattern    = regexp.MustCompile(`^EMP-\d{3}$`)
)

// Numeric bounds enforced at construction.
const (
	MinLocationCapacity  = 1
	MaxLocationCapacity  = 1000
	MaxLocationsPerShelf = 50
	MaxSections          = 26
	MinTemperature       = -50.0
	MaxTemperature       = 50.0
	MinHumidity          = 0.0
	MaxHumidity          = 100.0
)

// IsValidLocationID reports whether id has the section-shelf-row-cell form, e.g. A-01-B-05.
func IsValidLocationID(id string) bool {
	return locationIDPattern.MatchString(id)
}

func IsValidShelfID(id string) bool {
	return shelfIDPattern.MatchString(id)
}

func IsValidSectionID(id string) bool {
	return sectionIDPattern.MatchString(id)
}

func IsValidMovementID(id string) bool {
	return movementIDPattern.MatchString(id)
}

func IsValidActorID(id string) bool {
	return actorIDPattern.MatchString(id)
}

// sectionOf returns the section letter a location or shelf id belongs to.
func sectionOf(id string) string {
	if id == "" {
		return ""
	}
	return id[:1]
}

// shelfOf returns the shelf id ("A-01") of a location id ("A-01-B-05").
func shelfOf(locationID string) string {
	if len(locationID) < 4 {
		return ""
	}
	return locationID[:4]
}

func movementPrefix(id string) string {
	prefix, _, _ := strings.Cut(id, "-")
	return prefix
}
