// Package memory holds the in-process adapters used when the service runs
// without Postgres, and by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

type MovementJournal struct {
	mu      sync.RWMutex
	records map[string]domain.MovementRecord
	order   []string
}

func NewMovementJournal() *MovementJournal {
	return &MovementJournal{records: make(map[string]domain.MovementRecord)}
}

func (j *MovementJournal) Save(_ context.Context, rec domain.MovementRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	prev, ok := j.records[rec.ID]
	if !ok {
		j.order = append(j.order, rec.ID)
	} else if !prev.SameMovement(rec) {
		return domain.NewError(domain.ErrDuplicate, "MOVEMENT_ID_CONFLICT",
			"journal already holds a different movement %s", rec.ID)
	}
	rec.Lines = slices.Clone(rec.Lines)
	j.records[rec.ID] = rec
	return nil
}

func (j *MovementJournal) GetByID(_ context.Context, id string) (*domain.MovementRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	rec, ok := j.records[id]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "MOVEMENT_NOT_FOUND", "movement %s not found", id)
	}
	rec.Lines = slices.Clone(rec.Lines)
	return &rec, nil
}

// ListRecent returns the most recently saved movements first.
func (j *MovementJournal) ListRecent(_ context.Context, limit int) ([]domain.MovementRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]domain.MovementRecord, 0, min(limit, len(j.order)))
	for i := len(j.order) - 1; i >= 0 && len(out) < limit; i-- {
		rec := j.records[j.order[i]]
		rec.Lines = slices.Clone(rec.Lines)
		out = append(out, rec)
	}
	return out, nil
}

func (j *MovementJournal) MaxSequence(_ context.Context, t domain.MovementType, year int) (int, error) {
	if t.Prefix() == "" {
		return 0, domain.NewError(domain.ErrValidation, "UNKNOWN_MOVEMENT", "unknown movement type %q", t)
	}
	prefix := fmt.Sprintf("%s-%04d-", t.Prefix(), year)

	j.mu.RLock()
	defer j.mu.RUnlock()

	highest := 0
	for id := range j.records {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if seq, err := strconv.Atoi(rest); err == nil {
			highest = max(highest, seq)
		}
	}
	return highest, nil
}
