package application

import (
	"time"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

// =========== Requests ===========

type ReceiptLine struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
	// optional, resolved through the candidate scan when empty
	LocationID string `json:"locationId,omitempty"`
}

type ReceiptRequest struct {
	ActorID          string             `json:"actorId"`
	Supplier         string             `json:"supplier"`
	PreferredSection domain.SectionType `json:"preferredSection,omitempty"`
	Lines            []ReceiptLine      `json:"lines"`
}

type StockLine struct {
	ISBN       string `json:"isbn"`
	LocationID string `json:"locationId"`
	Quantity   int    `json:"quantity"`
}

type WriteOffRequest struct {
	ActorID string                `json:"actorId"`
	Reason  domain.WriteOffReason `json:"reason"`
	Lines   []StockLine           `json:"lines"`
}

type TransferLine struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type TransferRequest struct {
	ActorID        string         `json:"actorId"`
	FromLocationID string         `json:"fromLocationId"`
	ToLocationID   string         `json:"toLocationId"`
	Lines          []TransferLine `json:"lines"`
}

// =========== Responses ===========

type MovementResult struct {
	ID                 string      `json:"id"`
	Type               string      `json:"type"`
	Status             string      `json:"status"`
	ActorID            string      `json:"actorId"`
	Date               time.Time   `json:"date"`
	FinishedAt         *time.Time  `json:"finishedAt,omitempty"`
	Failure            string      `json:"failure,omitempty"`
	RollbackIncomplete bool        `json:"rollbackIncomplete,omitempty"`
	Supplier           string      `json:"supplier,omitempty"`
	Reason             string      `json:"reason,omitempty"`
	FromLocationID     string      `json:"fromLocationId,omitempty"`
	ToLocationID       string      `json:"toLocationId,omitempty"`
	Lines              []StockLine `json:"lines"`
}

func newMovementResult(rec domain.MovementRecord) *MovementResult {
	res := &MovementResult{
		ID:                 rec.ID,
		Type:               string(rec.Type),
		Status:             string(rec.Status),
		ActorID:            rec.ActorID,
		Date:               rec.Date,
		FinishedAt:         rec.FinishedAt,
		Failure:            rec.Failure,
		RollbackIncomplete: rec.RollbackIncomplete,
		Supplier:           rec.Supplier,
		Reason:             string(rec.Reason),
		FromLocationID:     rec.FromLocationID,
		ToLocationID:       rec.ToLocationID,
		Lines:              make([]StockLine, 0, len(rec.Lines)),
	}
	for _, l := range rec.Lines {
		res.Lines = append(res.Lines, StockLine{ISBN: l.ISBN, LocationID: l.LocationID, Quantity: l.Quantity})
	}
	return res
}

type LocationStock struct {
	ISBN       string    `json:"isbn,omitempty"`
	LocationID string    `json:"locationId"`
	Quantity   int       `json:"quantity"`
	DateAdded  time.Time `json:"dateAdded"`
}

type BookStockInfo struct {
	ISBN          string          `json:"isbn"`
	TotalQuantity int             `json:"totalQuantity"`
	Locations     []LocationStock `json:"locations"`
}

type LocationInfo struct {
	ID             string          `json:"id"`
	Capacity       int             `json:"capacity"`
	CurrentLoad    int             `json:"currentLoad"`
	AvailableSpace int             `json:"availableSpace"`
	Status         string          `json:"status"`
	Items          []LocationStock `json:"items"`
}

type SectionSummary struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	Shelves        int     `json:"shelves"`
	TotalCapacity  int     `json:"totalCapacity"`
	CurrentLoad    int     `json:"currentLoad"`
	AvailableSpace int     `json:"availableSpace"`
}

type WarehouseSummary struct {
	Name           string           `json:"name"`
	Address        string           `json:"address"`
	TotalCapacity  int              `json:"totalCapacity"`
	CurrentLoad    int              `json:"currentLoad"`
	AvailableSpace int              `json:"availableSpace"`
	Items          int              `json:"items"`
	Sections       []SectionSummary `json:"sections"`
}
