package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

// MovementObserver receives the outcome of every finished movement.
type MovementObserver interface {
	ObserveMovement(t domain.MovementType, s domain.MovementStatus, elapsed time.Duration)
}

type WarehouseManager struct {
	mu        sync.Mutex
	warehouse *domain.Warehouse
	ids       *domain.MovementIDGenerator
	journal   domain.MovementJournal
	outbox    OutboxWriter
	observer  MovementObserver
	log       *zap.Logger

	pending map[string]*domain.StockMovement
}

func NewWarehouseManager(
	warehouse *domain.Warehouse,
	ids *domain.MovementIDGenerator,
	journal domain.MovementJournal,
	outbox OutboxWriter,
	observer MovementObserver,
	log *zap.Logger,
) *WarehouseManager {
	if ids == nil {
		ids = domain.NewMovementIDGenerator(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WarehouseManager{
		warehouse: warehouse,
		ids:       ids,
		journal:   journal,
		outbox:    outbox,
		observer:  observer,
		log:       log.Named("warehouse_manager"),
		pending:   make(map[string]*domain.StockMovement),
	}
}

// SeedMovementIDs moves the id counters past the movements already in the
// journal for the current year, so a restart does not hand out their ids
// again.
func (m *WarehouseManager) SeedMovementIDs(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.journal == nil {
		return nil
	}
	year := m.ids.Year()
	for _, t := range []domain.MovementType{domain.MovementReceipt, domain.MovementWriteOff, domain.MovementTransfer} {
		seq, err := m.journal.MaxSequence(ctx, t, year)
		if err != nil {
			return fmt.Errorf("read %s sequence: %w", t, err)
		}
		if err := m.ids.Seed(t, year, seq); err != nil {
			return err
		}
		if seq > 0 {
			m.log.Info("movement ids seeded",
				zap.String("prefix", t.Prefix()),
				zap.Int("year", year),
				zap.Int("last_sequence", seq))
		}
	}
	return nil
}

// SetObserver replaces the movement observer. The metrics recorder reads
// warehouse load through the manager, so it is attached after construction.
func (m *WarehouseManager) SetObserver(o MovementObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = o
}

// =========== Receipts ===========

func (m *WarehouseManager) ProcessStockReceipt(ctx context.Context, req ReceiptRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.prepareReceipt(req)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, mv)
}

// ProcessInitialStock runs a receipt only when none of its books is stored
// yet. A book that already has stock fails with INITIAL_STOCK_ALREADY_BOOKED,
// so replaying the same initial stock is a no-op.
func (m *WarehouseManager) ProcessInitialStock(ctx context.Context, req ReceiptRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range req.Lines {
		if qty := m.warehouse.TotalQuantity(l.ISBN); qty > 0 {
			return nil, domain.NewError(domain.ErrDuplicate, "INITIAL_STOCK_ALREADY_BOOKED",
				"book %s already holds %d copies", l.ISBN, qty)
		}
	}
	mv, err := m.prepareReceipt(req)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, mv)
}

func (m *WarehouseManager) PrepareStockReceipt(req ReceiptRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.prepareReceipt(req)
	if err != nil {
		return nil, err
	}
	m.pending[mv.ID()] = mv
	return newMovementResult(mv.Snapshot()), nil
}

func (m *WarehouseManager) prepareReceipt(req ReceiptRequest) (*domain.StockMovement, error) {
	if len(req.Lines) == 0 {
		return nil, domain.NewError(domain.ErrValidation, "EMPTY_MOVEMENT", "receipt has no lines")
	}
	preferred := req.PreferredSection
	if preferred == "" {
		preferred = domain.SectionGeneral
	}

	// quantities already planned per location in this request
	planned := make(map[string]int)
	lineIndex := make(map[*domain.InventoryItem]int)
	var lines []domain.MovementLine

	for _, rl := range req.Lines {
		if rl.Quantity <= 0 {
			return nil, domain.NewError(domain.ErrValidation, "INVALID_QUANTITY",
				"receipt quantity must be positive, got %d for %s", rl.Quantity, rl.ISBN)
		}
		locationID := rl.LocationID
		if locationID == "" {
			loc, ok := m.resolveLocation(rl.Quantity, preferred, planned)
			if !ok {
				return nil, domain.NewError(domain.ErrCapacity, "NO_LOCATION_AVAILABLE",
					"no location can take %d copies of %s", rl.Quantity, rl.ISBN)
			}
			locationID = loc.ID()
		}
		planned[locationID] += rl.Quantity

		item, ok := m.warehouse.FindInventoryItem(rl.ISBN, locationID)
		if !ok {
			item, ok = findPlannedItem(lines, rl.ISBN, locationID)
		}
		if !ok {
			var err error
			item, err = domain.NewInventoryItem(rl.ISBN, 0, locationID, time.Time{})
			if err != nil {
				return nil, err
			}
		}
		if i, seen := lineIndex[item]; seen {
			lines[i].Quantity += rl.Quantity
			continue
		}
		lineIndex[item] = len(lines)
		lines = append(lines, domain.MovementLine{Item: item, Quantity: rl.Quantity})
	}

	id, err := m.ids.Next(domain.MovementReceipt)
	if err != nil {
		return nil, err
	}
	return domain.NewStockReceipt(m.warehouse, domain.MovementParams{
		ID:      id,
		ActorID: req.ActorID,
		Lines:   lines,
	}, req.Supplier)
}

// resolveLocation walks the candidate locations and returns the first one
// with room for quantity on top of what is already planned for it.
func (m *WarehouseManager) resolveLocation(quantity int, preferred domain.SectionType, planned map[string]int) (*domain.StorageLocation, bool) {
	for _, loc := range m.warehouse.CandidateLocations(preferred) {
		if loc.CanAccommodate(planned[loc.ID()] + quantity) {
			return loc, true
		}
	}
	return nil, false
}

func findPlannedItem(lines []domain.MovementLine, isbn, locationID string) (*domain.InventoryItem, bool) {
	for _, l := range lines {
		if l.Item.ISBN == isbn && l.Item.LocationID() == locationID {
			return l.Item, true
		}
	}
	return nil, false
}

// =========== Write-offs ===========

func (m *WarehouseManager) ProcessStockWriteOff(ctx context.Context, req WriteOffRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.prepareWriteOff(req)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, mv)
}

func (m *WarehouseManager) PrepareStockWriteOff(req WriteOffRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.prepareWriteOff(req)
	if err != nil {
		return nil, err
	}
	m.pending[mv.ID()] = mv
	return newMovementResult(mv.Snapshot()), nil
}

func (m *WarehouseManager) prepareWriteOff(req WriteOffRequest) (*domain.StockMovement, error) {
	if len(req.Lines) == 0 {
		return nil, domain.NewError(domain.ErrValidation, "EMPTY_MOVEMENT", "write-off has no lines")
	}
	lines, err := m.collectLines(req.Lines)
	if err != nil {
		return nil, err
	}
	id, err := m.ids.Next(domain.MovementWriteOff)
	if err != nil {
		return nil, err
	}
	return domain.NewStockWriteOff(m.warehouse, domain.MovementParams{
		ID:      id,
		ActorID: req.ActorID,
		Lines:   lines,
	}, req.Reason)
}

// =========== Transfers ===========

func (m *WarehouseManager) ProcessStockTransfer(ctx context.Context, req TransferRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.prepareTransfer(req)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, mv)
}

func (m *WarehouseManager) PrepareStockTransfer(req TransferRequest) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.prepareTransfer(req)
	if err != nil {
		return nil, err
	}
	m.pending[mv.ID()] = mv
	return newMovementResult(mv.Snapshot()), nil
}

func (m *WarehouseManager) prepareTransfer(req TransferRequest) (*domain.StockMovement, error) {
	if len(req.Lines) == 0 {
		return nil, domain.NewError(domain.ErrValidation, "EMPTY_MOVEMENT", "transfer has no lines")
	}
	stockLines := make([]StockLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		stockLines = append(stockLines, StockLine{ISBN: l.ISBN, LocationID: req.FromLocationID, Quantity: l.Quantity})
	}
	lines, err := m.collectLines(stockLines)
	if err != nil {
		return nil, err
	}
	id, err := m.ids.Next(domain.MovementTransfer)
	if err != nil {
		return nil, err
	}
	return domain.NewStockTransfer(m.warehouse, domain.MovementParams{
		ID:      id,
		ActorID: req.ActorID,
		Lines:   lines,
	}, req.FromLocationID, req.ToLocationID)
}

// collectLines resolves each (isbn, location) to its registered item and
// merges repeated pairs into one line.
func (m *WarehouseManager) collectLines(in []StockLine) ([]domain.MovementLine, error) {
	lineIndex := make(map[*domain.InventoryItem]int)
	var lines []domain.MovementLine
	for _, sl := range in {
		if sl.Quantity <= 0 {
			return nil, domain.NewError(domain.ErrValidation, "INVALID_QUANTITY",
				"quantity must be positive, got %d for %s", sl.Quantity, sl.ISBN)
		}
		item, ok := m.warehouse.FindInventoryItem(sl.ISBN, sl.LocationID)
		if !ok {
			return nil, domain.NewError(domain.ErrNotFound, "ITEM_NOT_FOUND",
				"no stock of %s at %s", sl.ISBN, sl.LocationID)
		}
		if i, seen := lineIndex[item]; seen {
			lines[i].Quantity += sl.Quantity
			continue
		}
		lineIndex[item] = len(lines)
		lines = append(lines, domain.MovementLine{Item: item, Quantity: sl.Quantity})
	}
	return lines, nil
}

// =========== Prepared movements ===========

func (m *WarehouseManager) ExecuteMovement(ctx context.Context, id string) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.takePending(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.execute(ctx, mv)
}

func (m *WarehouseManager) CancelMovement(ctx context.Context, id string) (*MovementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mv, err := m.takePending(ctx, id)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	cancelErr := m.warehouse.CancelStockMovement(mv)
	return m.finish(ctx, mv, start, cancelErr)
}

func (m *WarehouseManager) takePending(ctx context.Context, id string) (*domain.StockMovement, error) {
	if mv, ok := m.pending[id]; ok {
		delete(m.pending, id)
		return mv, nil
	}
	if m.journal != nil {
		if rec, err := m.journal.GetByID(ctx, id); err == nil && rec != nil {
			return nil, domain.NewError(domain.ErrInvalidState, "INVALID_MOVEMENT_STATE",
				"movement %s is already %s", id, rec.Status)
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "MOVEMENT_NOT_FOUND", "movement %s not found", id)
}

func (m *WarehouseManager) execute(ctx context.Context, mv *domain.StockMovement) (*MovementResult, error) {
	start := time.Now()
	execErr := m.warehouse.ProcessStockMovement(mv)
	return m.finish(ctx, mv, start, execErr)
}

// finish records a movement that reached a terminal status. Journal and
// outbox failures do not undo the movement; they are returned after it.
func (m *WarehouseManager) finish(
	ctx context.Context,
	mv *domain.StockMovement,
	start time.Time,
	opErr error,
) (*MovementResult, error) {
	rec := mv.Snapshot()
	elapsed := time.Since(start)
	if m.observer != nil {
		m.observer.ObserveMovement(rec.Type, rec.Status, elapsed)
	}

	fields := []zap.Field{
		zap.String("movement_id", rec.ID),
		zap.String("type", string(rec.Type)),
		zap.String("status", string(rec.Status)),
		zap.String("actor_id", rec.ActorID),
		zap.Int("quantity", mv.TotalQuantity()),
		zap.Duration("elapsed", elapsed),
	}
	switch {
	case rec.RollbackIncomplete:
		m.log.Error("movement rollback incomplete", append(fields, zap.Error(opErr))...)
	case opErr != nil:
		m.log.Warn("movement failed", append(fields, zap.String("code", domain.ErrorCode(opErr)), zap.Error(opErr))...)
	default:
		m.log.Info("movement finished", fields...)
	}

	if rec.Status != domain.MovementCompleted && rec.Status != domain.MovementCancelled {
		return newMovementResult(rec), opErr
	}
	if err := m.record(ctx, rec); err != nil {
		m.log.Error("failed to record movement", zap.String("movement_id", rec.ID), zap.Error(err))
		return newMovementResult(rec), errors.Join(opErr, fmt.Errorf("record movement %s: %w", rec.ID, err))
	}
	return newMovementResult(rec), opErr
}

func (m *WarehouseManager) record(ctx context.Context, rec domain.MovementRecord) error {
	if m.journal != nil {
		if err := m.journal.Save(ctx, rec); err != nil {
			return err
		}
	}
	if m.outbox == nil {
		return nil
	}

	if rec.Status == domain.MovementCancelled {
		if err := m.outbox.Enqueue(ctx, domain.NewStockMovementCancelledEvent(rec)); err != nil {
			return err
		}
		if !rec.RollbackIncomplete {
			return nil
		}
	} else {
		if err := m.outbox.Enqueue(ctx, domain.NewStockMovementCompletedEvent(rec)); err != nil {
			return err
		}
		if rec.Type == domain.MovementTransfer {
			return nil
		}
	}

	// catalog only cares about the warehouse-wide quantity per book
	seen := make(map[string]bool)
	for _, l := range rec.Lines {
		if seen[l.ISBN] {
			continue
		}
		seen[l.ISBN] = true
		ev := domain.NewCatalogStockAdjustedEvent(l.ISBN, m.warehouse.TotalQuantity(l.ISBN), string(rec.Type))
		if err := m.outbox.Enqueue(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// =========== Queries ===========

func (m *WarehouseManager) IsBookAvailable(isbn string, quantity int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return quantity > 0 && m.warehouse.TotalQuantity(isbn) >= quantity
}

func (m *WarehouseManager) GetBookStockInfo(isbn string) BookStockInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := BookStockInfo{ISBN: isbn, Locations: []LocationStock{}}
	for _, it := range m.warehouse.FindItemsByBook(isbn) {
		info.TotalQuantity += it.Quantity()
		info.Locations = append(info.Locations, LocationStock{
			LocationID: it.LocationID(),
			Quantity:   it.Quantity(),
			DateAdded:  it.DateAdded,
		})
	}
	return info
}

func (m *WarehouseManager) FindLocation(id string) (LocationInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, ok := m.warehouse.FindLocation(id)
	if !ok {
		return LocationInfo{}, false
	}
	info := LocationInfo{
		ID:             loc.ID(),
		Capacity:       loc.Capacity(),
		CurrentLoad:    loc.CurrentLoad(),
		AvailableSpace: loc.AvailableSpace(),
		Status:         string(loc.Status()),
		Items:          []LocationStock{},
	}
	for _, it := range m.warehouse.InventoryItems() {
		if it.LocationID() == loc.ID() {
			info.Items = append(info.Items, LocationStock{
				ISBN:       it.ISBN,
				LocationID: it.LocationID(),
				Quantity:   it.Quantity(),
				DateAdded:  it.DateAdded,
			})
		}
	}
	return info, true
}

func (m *WarehouseManager) WarehouseSummary() WarehouseSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.warehouse
	sum := WarehouseSummary{
		Name:           w.Name(),
		Address:        w.Address(),
		TotalCapacity:  w.TotalCapacity(),
		CurrentLoad:    w.CurrentLoad(),
		AvailableSpace: w.AvailableSpace(),
		Items:          len(w.InventoryItems()),
	}
	for _, s := range w.Sections() {
		c := s.Climate()
		sum.Sections = append(sum.Sections, SectionSummary{
			ID:             s.ID(),
			Type:           string(s.Type()),
			Temperature:    c.Temperature,
			Humidity:       c.Humidity,
			Shelves:        len(s.Shelves()),
			TotalCapacity:  s.TotalCapacity(),
			CurrentLoad:    s.CurrentLoad(),
			AvailableSpace: s.AvailableSpace(),
		})
	}
	return sum
}

// Load returns total capacity and current load in books.
func (m *WarehouseManager) Load() (capacity, load int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warehouse.TotalCapacity(), m.warehouse.CurrentLoad()
}

func (m *WarehouseManager) GetMovement(ctx context.Context, id string) (*MovementResult, error) {
	m.mu.Lock()
	if mv, ok := m.pending[id]; ok {
		rec := mv.Snapshot()
		m.mu.Unlock()
		return newMovementResult(rec), nil
	}
	m.mu.Unlock()

	if m.journal == nil {
		return nil, domain.NewError(domain.ErrNotFound, "MOVEMENT_NOT_FOUND", "movement %s not found", id)
	}
	rec, err := m.journal.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newMovementResult(*rec), nil
}

func (m *WarehouseManager) ListMovements(ctx context.Context, limit int) ([]MovementResult, error) {
	if m.journal == nil {
		return []MovementResult{}, nil
	}
	recs, err := m.journal.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]MovementResult, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *newMovementResult(rec))
	}
	return out, nil
}

// CheckConsistency runs the warehouse load check under the manager lock.
func (m *WarehouseManager) CheckConsistency() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warehouse.CheckConsistency()
}
