package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/memory"
)

func TestWarehouseManager_ProcessStockReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves locations with the quantities already planned", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID:  "EMP-001",
			Supplier: "Acme Books",
			Lines: []ReceiptLine{
				{ISBN: "978-1", Quantity: 8},
				{ISBN: "978-2", Quantity: 5},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "REC-2025-001", res.ID)
		assert.Equal(t, "COMPLETED", res.Status)
		assert.Equal(t, "Acme Books", res.Supplier)
		require.NotNil(t, res.FinishedAt)
		assert.Equal(t, []StockLine{
			{ISBN: "978-1", LocationID: "A-01-A-01", Quantity: 8},
			{ISBN: "978-2", LocationID: "A-01-A-02", Quantity: 5},
		}, res.Lines)

		assert.Equal(t, 8, f.location(t, "A-01-A-01").CurrentLoad())
		assert.Equal(t, 5, f.location(t, "A-01-A-02").CurrentLoad())
		require.NoError(t, f.manager.CheckConsistency())

		rec, err := f.journal.GetByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MovementCompleted, rec.Status)

		assert.Equal(t, []string{"StockMovementCompleted", "CatalogStockAdjusted", "CatalogStockAdjusted"}, f.outboxTypes())
		assert.Equal(t, []observed{{domain.MovementReceipt, domain.MovementCompleted}}, f.observer.seen)
	})

	t.Run("preferred section", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID:          "EMP-001",
			PreferredSection: domain.SectionReceiving,
			Lines:            []ReceiptLine{{ISBN: "978-1", Quantity: 25}},
		})
		require.NoError(t, err)
		assert.Equal(t, "R-01-A-01", res.Lines[0].LocationID)
	})

	t.Run("repeated lines are merged", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID: "EMP-001",
			Lines: []ReceiptLine{
				{ISBN: "978-1", Quantity: 3, LocationID: "A-01-A-01"},
				{ISBN: "978-1", Quantity: 4, LocationID: "A-01-A-01"},
			},
		})
		require.NoError(t, err)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, 7, res.Lines[0].Quantity)
		assert.Equal(t, 7, f.lastAdjustment(t).AvailableQuantity)
	})

	t.Run("no location fits", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID: "EMP-001",
			Lines:   []ReceiptLine{{ISBN: "978-1", Quantity: 31}},
		})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrCapacity)
		assert.Equal(t, "NO_LOCATION_AVAILABLE", domain.ErrorCode(err))
		assert.Empty(t, f.outbox.Messages())
		assert.Empty(t, f.observer.seen)
	})

	t.Run("invalid requests", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.manager.ProcessStockReceipt(ctx, ReceiptRequest{ActorID: "EMP-001"})
		assert.Equal(t, "EMPTY_MOVEMENT", domain.ErrorCode(err))

		_, err = f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID: "EMP-001",
			Lines:   []ReceiptLine{{ISBN: "978-1", Quantity: 0}},
		})
		assert.Equal(t, "INVALID_QUANTITY", domain.ErrorCode(err))

		_, err = f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID: "nobody",
			Lines:   []ReceiptLine{{ISBN: "978-1", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("blocked location is journaled as cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.location(t, "A-01-A-02").Block()

		res, err := f.manager.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID: "EMP-001",
			Lines:   []ReceiptLine{{ISBN: "978-1", Quantity: 2, LocationID: "A-01-A-02"}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBlockedResource)
		require.NotNil(t, res)
		assert.Equal(t, "CANCELLED", res.Status)
		assert.NotEmpty(t, res.Failure)

		rec, err := f.journal.GetByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MovementCancelled, rec.Status)
		assert.Equal(t, []string{"StockMovementCancelled"}, f.outboxTypes())
		assert.Equal(t, 0, f.warehouse.CurrentLoad())
	})

	t.Run("journal failure does not undo the movement", func(t *testing.T) {
		w, err := BuildWarehouse(testLayout())
		require.NoError(t, err)
		outbox := memory.NewOutboxRepository()
		m := NewWarehouseManager(w, nil, failingJournal{memory.NewMovementJournal()}, NewOutboxWriter(outbox), nil, nil)

		res, err := m.ProcessStockReceipt(ctx, ReceiptRequest{
			ActorID: "EMP-001",
			Lines:   []ReceiptLine{{ISBN: "978-1", Quantity: 2}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "journal unavailable")
		require.NotNil(t, res)
		assert.Equal(t, "COMPLETED", res.Status)
		assert.Equal(t, 2, w.CurrentLoad())
		assert.Empty(t, outbox.Messages())
	})
}

func TestWarehouseManager_ProcessStockWriteOff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.receive(t, "978-1", "A-01-A-01", 10)

	res, err := f.manager.ProcessStockWriteOff(ctx, WriteOffRequest{
		ActorID: "EMP-002",
		Reason:  domain.WriteOffDamaged,
		Lines:   []StockLine{{ISBN: "978-1", LocationID: "A-01-A-01", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, "WO-2025-001", res.ID)
	assert.Equal(t, "DAMAGED", res.Reason)
	assert.Equal(t, 6, f.manager.GetBookStockInfo("978-1").TotalQuantity)

	adj := f.lastAdjustment(t)
	assert.Equal(t, "978-1", adj.Sku)
	assert.Equal(t, 6, adj.AvailableQuantity)
	assert.Equal(t, "WRITE_OFF", adj.Reason)

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.manager.ProcessStockWriteOff(ctx, WriteOffRequest{
			ActorID: "EMP-002",
			Reason:  domain.WriteOffLost,
			Lines:   []StockLine{{ISBN: "978-9", LocationID: "A-01-A-01", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "ITEM_NOT_FOUND", domain.ErrorCode(err))
	})

	t.Run("more than stored", func(t *testing.T) {
		res, err := f.manager.ProcessStockWriteOff(ctx, WriteOffRequest{
			ActorID: "EMP-002",
			Reason:  domain.WriteOffLost,
			Lines:   []StockLine{{ISBN: "978-1", LocationID: "A-01-A-01", Quantity: 7}},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		require.NotNil(t, res)
		assert.Equal(t, "CANCELLED", res.Status)
		assert.Equal(t, 6, f.location(t, "A-01-A-01").CurrentLoad())
	})
}

func TestWarehouseManager_ProcessStockTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.receive(t, "978-1", "A-01-A-01", 10)
	before := len(f.outbox.Messages())

	res, err := f.manager.ProcessStockTransfer(ctx, TransferRequest{
		ActorID:        "EMP-003",
		FromLocationID: "A-01-A-01",
		ToLocationID:   "R-01-A-01",
		Lines:          []TransferLine{{ISBN: "978-1", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF-2025-001", res.ID)
	assert.Equal(t, "COMPLETED", res.Status)

	info := f.manager.GetBookStockInfo("978-1")
	assert.Equal(t, 10, info.TotalQuantity)
	require.Len(t, info.Locations, 1)
	assert.Equal(t, "R-01-A-01", info.Locations[0].LocationID)

	// transfers do not change catalog availability
	assert.Equal(t, []string{"StockMovementCompleted"}, f.outboxTypes()[before:])

	t.Run("destination too small", func(t *testing.T) {
		f.receive(t, "978-2", "R-01-A-01", 15)
		res, err := f.manager.ProcessStockTransfer(ctx, TransferRequest{
			ActorID:        "EMP-003",
			FromLocationID: "R-01-A-01",
			ToLocationID:   "A-01-A-02",
			Lines:          []TransferLine{{ISBN: "978-2", Quantity: 15}},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, "DESTINATION_CAPACITY_INSUFFICIENT", domain.ErrorCode(err))
		require.NotNil(t, res)
		assert.Equal(t, "CANCELLED", res.Status)
		assert.Equal(t, 25, f.location(t, "R-01-A-01").CurrentLoad())
	})
}

func TestWarehouseManager_PreparedMovements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	prepared, err := f.manager.PrepareStockReceipt(ReceiptRequest{
		ActorID: "EMP-001",
		Lines:   []ReceiptLine{{ISBN: "978-1", Quantity: 3, LocationID: "A-01-A-01"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", prepared.Status)
	assert.Equal(t, 0, f.warehouse.CurrentLoad())

	got, err := f.manager.GetMovement(ctx, prepared.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", got.Status)

	done, err := f.manager.ExecuteMovement(ctx, prepared.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", done.Status)
	assert.Equal(t, 3, f.warehouse.CurrentLoad())

	_, err = f.manager.ExecuteMovement(ctx, prepared.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.manager.CancelMovement(ctx, prepared.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.manager.CancelMovement(ctx, "REC-2025-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	t.Run("cancel pending", func(t *testing.T) {
		wo, err := f.manager.PrepareStockWriteOff(WriteOffRequest{
			ActorID: "EMP-001",
			Reason:  domain.WriteOffExpired,
			Lines:   []StockLine{{ISBN: "978-1", LocationID: "A-01-A-01", Quantity: 3}},
		})
		require.NoError(t, err)

		cancelled, err := f.manager.CancelMovement(ctx, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", cancelled.Status)
		assert.Equal(t, 3, f.warehouse.CurrentLoad())

		rec, err := f.journal.GetByID(ctx, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MovementCancelled, rec.Status)
	})

	t.Run("prepared transfer", func(t *testing.T) {
		trf, err := f.manager.PrepareStockTransfer(TransferRequest{
			ActorID:        "EMP-001",
			FromLocationID: "A-01-A-01",
			ToLocationID:   "A-01-A-02",
			Lines:          []TransferLine{{ISBN: "978-1", Quantity: 1}},
		})
		require.NoError(t, err)
		res, err := f.manager.ExecuteMovement(ctx, trf.ID)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", res.Status)
		assert.Equal(t, 1, f.location(t, "A-01-A-02").CurrentLoad())
	})
}

func TestWarehouseManager_Queries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.receive(t, "978-1", "A-01-A-01", 4)
	f.receive(t, "978-1", "R-01-A-01", 6)

	assert.True(t, f.manager.IsBookAvailable("978-1", 10))
	assert.False(t, f.manager.IsBookAvailable("978-1", 11))
	assert.False(t, f.manager.IsBookAvailable("978-1", 0))
	assert.False(t, f.manager.IsBookAvailable("978-9", 1))

	info := f.manager.GetBookStockInfo("978-9")
	assert.Equal(t, 0, info.TotalQuantity)
	assert.Empty(t, info.Locations)

	loc, ok := f.manager.FindLocation("R-01-A-01")
	require.True(t, ok)
	assert.Equal(t, 30, loc.Capacity)
	assert.Equal(t, 6, loc.CurrentLoad)
	assert.Equal(t, 24, loc.AvailableSpace)
	assert.Equal(t, "OCCUPIED", loc.Status)
	require.Len(t, loc.Items, 1)
	assert.Equal(t, "978-1", loc.Items[0].ISBN)

	_, ok = f.manager.FindLocation("Z-01-A-01")
	assert.False(t, ok)

	sum := f.manager.WarehouseSummary()
	assert.Equal(t, "Test Warehouse", sum.Name)
	assert.Equal(t, 50, sum.TotalCapacity)
	assert.Equal(t, 10, sum.CurrentLoad)
	assert.Equal(t, 40, sum.AvailableSpace)
	assert.Equal(t, 2, sum.Items)
	require.Len(t, sum.Sections, 2)
	assert.Equal(t, "RECEIVING", sum.Sections[1].Type)
	assert.Equal(t, 6, sum.Sections[1].CurrentLoad)

	capacity, load := f.manager.Load()
	assert.Equal(t, 50, capacity)
	assert.Equal(t, 10, load)

	list, err := f.manager.ListMovements(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "REC-2025-002", list[0].ID)
	assert.Equal(t, "REC-2025-001", list[1].ID)

	_, err = f.manager.GetMovement(ctx, "TRF-2025-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseManager_ProcessInitialStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := ReceiptRequest{
		ActorID:          "EMP-000",
		Supplier:         "catalog",
		PreferredSection: domain.SectionReceiving,
		Lines:            []ReceiptLine{{ISBN: "978-1", Quantity: 5}},
	}

	res, err := f.manager.ProcessInitialStock(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.MovementCompleted, res.Status)
	assert.Equal(t, 5, f.location(t, "R-01-A-01").CurrentLoad())

	res, err = f.manager.ProcessInitialStock(ctx, req)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "INITIAL_STOCK_ALREADY_BOOKED", domain.ErrorCode(err))
	assert.Equal(t, 5, f.warehouse.CurrentLoad())
	recent, err := f.journal.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestWarehouseManager_SeedMovementIDs(t *testing.T) {
	ctx := context.Background()
	journal := memory.NewMovementJournal()
	clock := func() time.Time { return testNow }

	start := func() *WarehouseManager {
		t.Helper()
		w, err := BuildWarehouse(testLayout())
		require.NoError(t, err)
		m := NewWarehouseManager(w, domain.NewMovementIDGenerator(clock), journal, nil, nil, nil)
		require.NoError(t, m.SeedMovementIDs(ctx))
		return m
	}
	receipt := func(isbn string, qty int) ReceiptRequest {
		return ReceiptRequest{
			ActorID: "EMP-001",
			Lines:   []ReceiptLine{{ISBN: isbn, Quantity: qty, LocationID: "A-01-A-01"}},
		}
	}

	first, err := start().ProcessStockReceipt(ctx, receipt("978-A", 3))
	require.NoError(t, err)
	assert.Equal(t, "REC-2025-001", first.ID)

	// a restarted service continues after the journaled ids
	second, err := start().ProcessStockReceipt(ctx, receipt("978-B", 7))
	require.NoError(t, err)
	assert.Equal(t, "REC-2025-002", second.ID)

	list, err := journal.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	rec, err := journal.GetByID(ctx, "REC-2025-001")
	require.NoError(t, err)
	assert.Equal(t, []domain.MovementRecordLine{{ISBN: "978-A", LocationID: "A-01-A-01", Quantity: 3}}, rec.Lines)

	t.Run("journal errors stop the seeding", func(t *testing.T) {
		w, err := BuildWarehouse(testLayout())
		require.NoError(t, err)
		m := NewWarehouseManager(w, nil, brokenSequenceJournal{memory.NewMovementJournal()}, nil, nil, nil)
		assert.ErrorContains(t, m.SeedMovementIDs(ctx), "journal unavailable")
	})
}

type brokenSequenceJournal struct {
	*memory.MovementJournal
}

func (brokenSequenceJournal) MaxSequence(context.Context, domain.MovementType, int) (int, error) {
	return 0, errors.New("journal unavailable")
}
