package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
)

// =========== Incoming payloads ===========

// ProductCreated (from catalog.events). The catalog sku is the book ISBN.
type ProductCreatedPayload struct {
	ProductID     uuid.UUID `json:"productId"`
	VendorID      uuid.UUID `json:"vendorId"`
	Sku           string    `json:"sku"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAtUtc  time.Time `json:"createdAtUtc"`
	IsActive      bool      `json:"isActive"`
}

// =========== Outgoing events Warehouse -> others ===========

type StockMovementLine struct {
	Isbn       string `json:"isbn"`
	LocationID string `json:"locationId"`
	Quantity   int    `json:"quantity"`
}

type StockMovementCompletedEvent struct {
	primitives.BaseEvent
	MovementID     string              `json:"movementId"`
	MovementType   string              `json:"movementType"`
	ActorID        string              `json:"actorId"`
	FromLocationID string              `json:"fromLocationId,omitempty"`
	ToLocationID   string              `json:"toLocationId,omitempty"`
	Lines          []StockMovementLine `json:"lines"`
	CompletedAtUtc time.Time           `json:"completedAtUtc"`
}

func NewStockMovementCompletedEvent(rec MovementRecord) *StockMovementCompletedEvent {
	ev := &StockMovementCompletedEvent{
		BaseEvent:      primitives.NewBaseEvent(),
		MovementID:     rec.ID,
		MovementType:   string(rec.Type),
		ActorID:        rec.ActorID,
		FromLocationID: rec.FromLocationID,
		ToLocationID:   rec.ToLocationID,
		Lines:          eventLines(rec.Lines),
		CompletedAtUtc: finishedOrNow(rec),
	}
	ev.SetRoutingKey("StockMovementCompleted")
	return ev
}

type StockMovementCancelledEvent struct {
	primitives.BaseEvent
	MovementID         string              `json:"movementId"`
	MovementType       string              `json:"movementType"`
	ActorID            string              `json:"actorId"`
	Reason             string              `json:"reason"`
	RollbackIncomplete bool                `json:"rollbackIncomplete"`
	Lines              []StockMovementLine `json:"lines"`
	CancelledAtUtc     time.Time           `json:"cancelledAtUtc"`
}

func NewStockMovementCancelledEvent(rec MovementRecord) *StockMovementCancelledEvent {
	ev := &StockMovementCancelledEvent{
		BaseEvent:          primitives.NewBaseEvent(),
		MovementID:         rec.ID,
		MovementType:       string(rec.Type),
		ActorID:            rec.ActorID,
		Reason:             rec.Failure,
		RollbackIncomplete: rec.RollbackIncomplete,
		Lines:              eventLines(rec.Lines),
		CancelledAtUtc:     finishedOrNow(rec),
	}
	ev.SetRoutingKey("StockMovementCancelled")
	return ev
}

// CatalogStockAdjusted (for Catalog, Search, etc.)
type CatalogStockAdjustedEvent struct {
	primitives.BaseEvent
	Sku               string    `json:"sku"`
	AvailableQuantity int       `json:"availableQuantity"`
	Reason            string    `json:"reason"`
	OccurredAtUtc     time.Time `json:"occurredAtUtc"`
}

func NewCatalogStockAdjustedEvent(sku string, available int, reason string) *CatalogStockAdjustedEvent {
	ev := &CatalogStockAdjustedEvent{
		BaseEvent:         primitives.NewBaseEvent(),
		Sku:               sku,
		AvailableQuantity: available,
		Reason:            reason,
		OccurredAtUtc:     time.Now().UTC(),
	}
	ev.SetRoutingKey("CatalogStockAdjusted")
	return ev
}

func eventLines(lines []MovementRecordLine) []StockMovementLine {
	out := make([]StockMovementLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, StockMovementLine{Isbn: l.ISBN, LocationID: l.LocationID, Quantity: l.Quantity})
	}
	return out
}

func finishedOrNow(rec MovementRecord) time.Time {
	if rec.FinishedAt != nil {
		return *rec.FinishedAt
	}
	return time.Now().UTC()
}
