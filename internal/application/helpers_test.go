package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/config"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/memory"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type observed struct {
	Type   domain.MovementType
	Status domain.MovementStatus
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (o *fakeObserver) ObserveMovement(t domain.MovementType, s domain.MovementStatus, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observed{Type: t, Status: s})
}

type failingJournal struct {
	*memory.MovementJournal
}

func (failingJournal) Save(context.Context, domain.MovementRecord) error {
	return errors.New("journal unavailable")
}

type fixture struct {
	manager   *WarehouseManager
	warehouse *domain.Warehouse
	journal   *memory.MovementJournal
	outbox    *memory.OutboxRepository
	observer  *fakeObserver
}

// testLayout:
//
//	A (GENERAL)   A-01: A-01-A-01 (10), A-01-A-02 (10)
//	R (RECEIVING) R-01: R-01-A-01 (30)
func testLayout() config.WarehouseConfig {
	return config.WarehouseConfig{
		Name:          "Test Warehouse",
		Address:       "2 Dock Street",
		SystemActorID: "EMP-000",
		Sections: []config.SectionConfig{
			{
				ID: "A", Type: "GENERAL", Temperature: 20, Humidity: 45,
				Shelves: []config.ShelfConfig{{
					ID: "A-01", MaxLocations: 5,
					Locations: []config.LocationConfig{{ID: "A-01-A-01", Capacity: 10}, {ID: "A-01-A-02", Capacity: 10}},
				}},
			},
			{
				ID: "R", Type: "RECEIVING", Temperature: 20, Humidity: 50,
				Shelves: []config.ShelfConfig{{
					ID: "R-01", MaxLocations: 5,
					Locations: []config.LocationConfig{{ID: "R-01-A-01", Capacity: 30}},
				}},
			},
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	w, err := BuildWarehouse(testLayout())
	require.NoError(t, err)

	f := &fixture{
		warehouse: w,
		journal:   memory.NewMovementJournal(),
		outbox:    memory.NewOutboxRepository(),
		observer:  &fakeObserver{},
	}
	ids := domain.NewMovementIDGenerator(func() time.Time { return testNow })
	f.manager = NewWarehouseManager(w, ids, f.journal, NewOutboxWriter(f.outbox), f.observer, nil)
	return f
}

func (f *fixture) location(t *testing.T, id string) *domain.StorageLocation {
	t.Helper()
	loc, ok := f.warehouse.FindLocation(id)
	require.True(t, ok, "location %s", id)
	return loc
}

func (f *fixture) receive(t *testing.T, isbn, locationID string, qty int) *MovementResult {
	t.Helper()
	res, err := f.manager.ProcessStockReceipt(context.Background(), ReceiptRequest{
		ActorID:  "EMP-001",
		Supplier: "Acme Books",
		Lines:    []ReceiptLine{{ISBN: isbn, Quantity: qty, LocationID: locationID}},
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) outboxTypes() []string {
	var types []string
	for _, msg := range f.outbox.Messages() {
		types = append(types, msg.Type)
	}
	return types
}

type stockAdjusted struct {
	Sku               string `json:"sku"`
	AvailableQuantity int    `json:"availableQuantity"`
	Reason            string `json:"reason"`
}

func (f *fixture) lastAdjustment(t *testing.T) stockAdjusted {
	t.Helper()
	msgs := f.outbox.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type != "CatalogStockAdjusted" {
			continue
		}
		var ev stockAdjusted
		require.NoError(t, json.Unmarshal([]byte(msgs[i].PayloadJSON), &ev))
		return ev
	}
	t.Fatal("no CatalogStockAdjusted message")
	return stockAdjusted{}
}
