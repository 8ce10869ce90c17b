package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

type EventHandler interface {
	Handle(ctx context.Context, ev primitives.Event) error
}

// ProductCreatedHandler books the initial stock of a new catalog product
// into the warehouse as a receipt by the system actor.
type ProductCreatedHandler struct {
	manager *WarehouseManager
	actorID string
	log     *zap.Logger
}

func NewProductCreatedHandler(manager *WarehouseManager, systemActorID string, log *zap.Logger) *ProductCreatedHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductCreatedHandler{
		manager: manager,
		actorID: systemActorID,
		log:     log.Named("product_created_handler"),
	}
}

func (h *ProductCreatedHandler) Handle(ctx context.Context, ev primitives.Event) error {
	env, ok := ev.(*primitives.IntegrationEventEnvelope)
	if !ok {
		h.log.Warn("invalid event type", zap.String("type", typeNameOf(ev)))
		return nil
	}
	if env.Type != "ProductCreated" {
		return nil
	}

	var payload domain.ProductCreatedPayload
	if err := json.Unmarshal([]byte(env.PayloadJSON), &payload); err != nil {
		h.log.Warn("failed to unmarshal payload", zap.Error(err))
		return nil
	}
	if payload.Sku == "" {
		h.log.Warn("missing sku")
		return nil
	}
	if payload.StockQuantity <= 0 {
		h.log.Debug("no initial stock", zap.String("sku", payload.Sku))
		return nil
	}

	h.log.Info("received ProductCreated",
		zap.String("sku", payload.Sku),
		zap.Int("stock_quantity", payload.StockQuantity))

	res, err := h.manager.ProcessInitialStock(ctx, ReceiptRequest{
		ActorID:          h.actorID,
		Supplier:         "catalog",
		PreferredSection: domain.SectionReceiving,
		Lines:            []ReceiptLine{{ISBN: payload.Sku, Quantity: payload.StockQuantity}},
	})
	if err != nil {
		// the stock is booked; a redelivery would book it twice
		if res != nil && res.Status == domain.MovementCompleted {
			h.log.Error("initial stock received but not recorded",
				zap.String("sku", payload.Sku),
				zap.String("movement_id", res.ID),
				zap.Error(err))
			return nil
		}
		// a rejected receipt will not succeed on redelivery
		if isDomainError(err) {
			h.log.Warn("initial stock rejected",
				zap.String("sku", payload.Sku),
				zap.String("code", domain.ErrorCode(err)),
				zap.Error(err))
			return nil
		}
		return err
	}
	h.log.Info("initial stock received", zap.String("sku", payload.Sku), zap.String("movement_id", res.ID))
	return nil
}

func isDomainError(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de)
}
