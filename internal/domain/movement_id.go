package domain

import (
	"fmt"
	"sync"
	"time"
)

const maxMovementSequence = 999

// MovementIDGenerator hands out PREFIX-YYYY-NNN ids. Each prefix keeps its
// own counter, restarted when the year changes.
type MovementIDGenerator struct {
	mu    sync.Mutex
	now   func() time.Time
	year  map[string]int
	count map[string]int
}

func NewMovementIDGenerator(now func() time.Time) *MovementIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &MovementIDGenerator{
		now:   now,
		year:  make(map[string]int),
		count: make(map[string]int),
	}
}

func (g *MovementIDGenerator) Next(t MovementType) (string, error) {
	prefix := t.Prefix()
	if prefix == "" {
		return "", NewError(ErrValidation, "UNKNOWN_MOVEMENT", "unknown movement type %q", t)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	year := g.now().UTC().Year()
	if g.year[prefix] != year {
		g.year[prefix] = year
		g.count[prefix] = 0
	}
	if g.count[prefix] >= maxMovementSequence {
		return "", NewError(ErrCapacity, "MOVEMENT_SEQUENCE_EXHAUSTED",
			"no %s movement ids left for %d", prefix, year)
	}
	g.count[prefix]++
	return fmt.Sprintf("%s-%04d-%03d", prefix, year, g.count[prefix]), nil
}

// Seed makes the next id of type t in year follow seq, unless the counter
// is already past it. Ids persisted by an earlier run are seeded at startup.
func (g *MovementIDGenerator) Seed(t MovementType, year, seq int) error {
	prefix := t.Prefix()
	if prefix == "" {
		return NewError(ErrValidation, "UNKNOWN_MOVEMENT", "unknown movement type %q", t)
	}
	if seq < 0 || seq > maxMovementSequence {
		return NewError(ErrValidation, "INVALID_MOVEMENT_SEQUENCE",
			"sequence %d outside 0..%d", seq, maxMovementSequence)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.year[prefix] != year {
		g.year[prefix] = year
		g.count[prefix] = seq
		return nil
	}
	g.count[prefix] = max(g.count[prefix], seq)
	return nil
}

// Year is the year the next id would carry.
func (g *MovementIDGenerator) Year() int {
	return g.now().UTC().Year()
}

// Reset forgets every counter.
func (g *MovementIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.year)
	clear(g.count)
}
