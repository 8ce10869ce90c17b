package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

type OutboxRepository struct {
	mu       sync.Mutex
	messages []domain.OutboxMessage
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Insert(_ context.Context, msg domain.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.OccurredAtUtc == 0 {
		msg.OccurredAtUtc = time.Now().UTC().Unix()
	}
	r.messages = append(r.messages, msg)
	return nil
}

// GetPendingBatch returns unprocessed messages in insertion order.
func (r *OutboxRepository) GetPendingBatch(_ context.Context, maxRetry, batchSize int) ([]domain.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.OutboxMessage
	for _, msg := range r.messages {
		if len(out) >= batchSize {
			break
		}
		if msg.ProcessedAtUtc == nil && msg.RetryCount < maxRetry {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *OutboxRepository) Save(_ context.Context, msg domain.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.messages {
		if r.messages[i].ID == msg.ID {
			r.messages[i].RetryCount = msg.RetryCount
			if msg.ProcessedAtUtc != nil {
				r.messages[i].ProcessedAtUtc = msg.ProcessedAtUtc
			}
			return nil
		}
	}
	return domain.NewError(domain.ErrNotFound, "OUTBOX_MESSAGE_NOT_FOUND", "outbox message %s not found", msg.ID)
}

// Messages returns a copy of everything stored, processed or not.
func (r *OutboxRepository) Messages() []domain.OutboxMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.OutboxMessage, len(r.messages))
	copy(out, r.messages)
	return out
}
