package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/abstractions"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

type Dispatcher struct {
	repo      domain.OutboxRepository
	eventBus  abstractions.EventBus
	maxRetry  int
	batchSize int
	log       *zap.Logger
}

func NewDispatcher(
	repo domain.OutboxRepository,
	eventBus abstractions.EventBus,
	maxRetry, batchSize int,
	log *zap.Logger,
) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		repo:      repo,
		eventBus:  eventBus,
		maxRetry:  maxRetry,
		batchSize: batchSize,
		log:       log.Named("outbox"),
	}
}

// DispatchOnce publishes one batch of pending messages and returns how many
// were published. A message that fails is retried on a later batch until it
// reaches maxRetry.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.repo.GetPendingBatch(ctx, d.maxRetry, d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	processed := 0
	for i := range msgs {
		msg := &msgs[i]

		if !json.Valid([]byte(msg.PayloadJSON)) {
			d.log.Warn("invalid payload", zap.String("id", msg.ID.String()), zap.String("type", msg.Type))
			msg.RetryCount++
			d.save(ctx, msg)
			continue
		}

		// e.g. "StockMovementCompleted" / "CatalogStockAdjusted"
		envelope := primitives.NewIntegrationEventEnvelope(msg.Type, msg.PayloadJSON)
		envelope.SetRoutingKey(msg.Type)

		if err := d.eventBus.Publish(ctx, &envelope); err != nil {
			d.log.Warn("failed to publish",
				zap.String("id", msg.ID.String()),
				zap.String("type", msg.Type),
				zap.Int("retry_count", msg.RetryCount+1),
				zap.Error(err))
			msg.RetryCount++
		} else {
			now := time.Now().UTC().Unix()
			msg.ProcessedAtUtc = &now
			processed++
		}
		d.save(ctx, msg)
	}

	return processed, nil
}

func (d *Dispatcher) save(ctx context.Context, msg *domain.OutboxMessage) {
	if err := d.repo.Save(ctx, *msg); err != nil {
		d.log.Error("failed to save message", zap.String("id", msg.ID.String()), zap.Error(err))
	}
}
