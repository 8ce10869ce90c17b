package domain

import (
	"context"

	"github.com/google/uuid"
)

// MovementJournal keeps the outcome of every executed or cancelled movement.
type MovementJournal interface {
	Save(ctx context.Context, rec MovementRecord) error
	GetByID(ctx context.Context, id string) (*MovementRecord, error)
	ListRecent(ctx context.Context, limit int) ([]MovementRecord, error)
	// MaxSequence returns the highest NNN journaled for t in year, 0 if none.
	MaxSequence(ctx context.Context, t MovementType, year int) (int, error)
}

type OutboxRepository interface {
	Insert(ctx context.Context, msg OutboxMessage) error
	GetPendingBatch(ctx context.Context, maxRetry, batchSize int) ([]OutboxMessage, error)
	Save(ctx context.Context, msg OutboxMessage) error
}

type OutboxMessage struct {
	ID             uuid.UUID
	Type           string
	PayloadJSON    string
	OccurredAtUtc  int64 // unix seconds
	RetryCount     int
	ProcessedAtUtc *int64
}
