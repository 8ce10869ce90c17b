package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

// PgOutboxRepository stores warehouse events until the dispatcher has
// published them. Timestamps travel as timestamptz; the domain keeps unix
// seconds.
type PgOutboxRepository struct {
	db *sql.DB
}

func NewPgOutboxRepository(db *sql.DB) *PgOutboxRepository {
	return &PgOutboxRepository{db: db}
}

const outboxColumns = `
        select id, type, payload_json, occurred_at_utc, retry_count, processed_at_utc
        from warehouse_outbox_messages
`

func (r *PgOutboxRepository) Insert(
	ctx context.Context,
	msg domain.OutboxMessage,
) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	occurredAt := time.Now().UTC()
	if msg.OccurredAtUtc != 0 {
		occurredAt = time.Unix(msg.OccurredAtUtc, 0).UTC()
	}

	_, err := r.db.ExecContext(ctx, `
        insert into warehouse_outbox_messages
        (id, type, payload_json, occurred_at_utc, retry_count)
        values ($1,$2,$3,$4,$5)
    `,
		msg.ID,
		msg.Type,
		msg.PayloadJSON,
		occurredAt,
		msg.RetryCount,
	)
	return err
}

// GetPendingBatch returns unpublished messages that still have retries
// left, oldest first.
func (r *PgOutboxRepository) GetPendingBatch(
	ctx context.Context,
	maxRetry, batchSize int,
) ([]domain.OutboxMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		outboxColumns+`
        where processed_at_utc is null
          and retry_count < $1
        order by occurred_at_utc, id
        limit $2
    `, maxRetry, batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch []domain.OutboxMessage
	for rows.Next() {
		msg, err := scanOutboxMessage(rows)
		if err != nil {
			return nil, err
		}
		batch = append(batch, msg)
	}
	return batch, rows.Err()
}

func scanOutboxMessage(row rowScanner) (domain.OutboxMessage, error) {
	var msg domain.OutboxMessage
	var occurredAt time.Time
	var processedAt sql.NullTime
	if err := row.Scan(
		&msg.ID,
		&msg.Type,
		&msg.PayloadJSON,
		&occurredAt,
		&msg.RetryCount,
		&processedAt,
	); err != nil {
		return domain.OutboxMessage{}, err
	}
	msg.OccurredAtUtc = occurredAt.Unix()
	if processedAt.Valid {
		sec := processedAt.Time.Unix()
		msg.ProcessedAtUtc = &sec
	}
	return msg, nil
}

// Save stores the dispatch outcome of msg. A processed time, once set, is
// never cleared.
func (r *PgOutboxRepository) Save(
	ctx context.Context,
	msg domain.OutboxMessage,
) error {
	if msg.ID == uuid.Nil {
		return domain.NewError(domain.ErrValidation, "INVALID_OUTBOX_MESSAGE", "outbox message id is empty")
	}

	var processedAt sql.NullTime
	if msg.ProcessedAtUtc != nil {
		processedAt = sql.NullTime{Time: time.Unix(*msg.ProcessedAtUtc, 0).UTC(), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
        update warehouse_outbox_messages
        set retry_count = $2,
            processed_at_utc = coalesce($3, processed_at_utc)
        where id = $1
    `,
		msg.ID,
		msg.RetryCount,
		processedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.NewError(domain.ErrNotFound, "OUTBOX_MESSAGE_NOT_FOUND", "outbox message %s not found", msg.ID)
	}
	return nil
}
