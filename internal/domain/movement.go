package domain

import (
	"errors"
	"strings"
	"time"
	"weak"
)

type MovementType string

const (
	MovementReceipt  MovementType = "RECEIPT"
	MovementWriteOff MovementType = "WRITE_OFF"
	MovementTransfer MovementType = "TRANSFER"
)

// Prefix returns the movement id prefix used for this type.
func (t MovementType) Prefix() string {
	switch t {
	case MovementReceipt:
		return "REC"
	case MovementWriteOff:
		return "WO"
	case MovementTransfer:
		return "TRF"
	}
	return ""
}

type MovementStatus string

const (
	MovementPending    MovementStatus = "PENDING"
	MovementInProgress MovementStatus = "IN_PROGRESS"
	MovementCompleted  MovementStatus = "COMPLETED"
	MovementCancelled  MovementStatus = "CANCELLED"
)

func (s MovementStatus) IsTerminal() bool {
	return s == MovementCompleted || s == MovementCancelled
}

// MovementDetails is the closed set of movement variants: Receipt, WriteOff
// and Transfer.
type MovementDetails interface {
	movementType() MovementType
}

type Receipt struct {
	Supplier string
}

type WriteOffReason string

const (
	WriteOffDamaged    WriteOffReason = "DAMAGED"
	WriteOffLost       WriteOffReason = "LOST"
	WriteOffExpired    WriteOffReason = "EXPIRED"
	WriteOffCorrection WriteOffReason = "INVENTORY_CORRECTION"
	WriteOffOther      WriteOffReason = "OTHER"
)

func (r WriteOffReason) IsValid() bool {
	switch r {
	case WriteOffDamaged, WriteOffLost, WriteOffExpired, WriteOffCorrection, WriteOffOther:
		return true
	}
	return false
}

type WriteOff struct {
	Reason WriteOffReason
}

type Transfer struct {
	FromLocationID string
	ToLocationID   string
}

// IsCrossSection compares the section letters of both locations. It is
// informational only.
func (t Transfer) IsCrossSection() bool {
	return sectionOf(t.FromLocationID) != sectionOf(t.ToLocationID)
}

func (Receipt) movementType() MovementType  { return MovementReceipt }
func (WriteOff) movementType() MovementType { return MovementWriteOff }
func (Transfer) movementType() MovementType { return MovementTransfer }

// MovementLine moves Quantity books of Item.
type MovementLine struct {
	Item     *InventoryItem
	Quantity int

	locationID string
}

// LocationID is the item's location at the time the movement was created.
func (l MovementLine) LocationID() string {
	return l.locationID
}

type MovementParams struct {
	ID      string
	ActorID string
	Date    time.Time
	Lines   []MovementLine
}

// StockMovement is a short-lived operation against one warehouse. It holds
// only a weak reference to that warehouse.
type StockMovement struct {
	id         string
	actorID    string
	date       time.Time
	status     MovementStatus
	details    MovementDetails
	lines      []MovementLine
	warehouse  weak.Pointer[Warehouse]
	finishedAt time.Time

	undo               []func() error
	failure            error
	rollbackIncomplete bool

	// apply replaces applyLine when set.
	apply func(w *Warehouse, line MovementLine) (func() error, error)
}

func NewStockReceipt(w *Warehouse, p MovementParams, supplier string) (*StockMovement, error) {
	return newMovement(w, p, Receipt{Supplier: strings.TrimSpace(supplier)})
}

func NewStockWriteOff(w *Warehouse, p MovementParams, reason WriteOffReason) (*StockMovement, error) {
	if !reason.IsValid() {
		return nil, NewError(ErrValidation, "INVALID_WRITE_OFF_REASON", "unknown write-off reason %q", reason)
	}
	return newMovement(w, p, WriteOff{Reason: reason})
}

func NewStockTransfer(w *Warehouse, p MovementParams, fromLocationID, toLocationID string) (*StockMovement, error) {
	if !IsValidLocationID(fromLocationID) || !IsValidLocationID(toLocationID) {
		return nil, NewError(ErrValidation, "INVALID_LOCATION_ID",
			"invalid transfer locations %q -> %q", fromLocationID, toLocationID)
	}
	if fromLocationID == toLocationID {
		return nil, NewError(ErrValidation, "SAME_LOCATION_TRANSFER", "cannot transfer within location %s", fromLocationID)
	}
	for _, line := range p.Lines {
		if line.Item != nil && line.Item.locationID != fromLocationID {
			return nil, NewError(ErrValidation, "ITEM_NOT_AT_SOURCE",
				"item %s is stored at %s, not %s", line.Item.ISBN, line.Item.locationID, fromLocationID)
		}
	}
	return newMovement(w, p, Transfer{FromLocationID: fromLocationID, ToLocationID: toLocationID})
}

func newMovement(w *Warehouse, p MovementParams, details MovementDetails) (*StockMovement, error) {
	if w == nil {
		return nil, NewError(ErrValidation, "INVALID_WAREHOUSE", "warehouse is required")
	}
	if !IsValidMovementID(p.ID) {
		return nil, NewError(ErrValidation, "INVALID_MOVEMENT_ID", "invalid movement id %q", p.ID)
	}
	if movementPrefix(p.ID) != details.movementType().Prefix() {
		return nil, NewError(ErrValidation, "INVALID_MOVEMENT_ID",
			"movement id %q does not match type %s", p.ID, details.movementType())
	}
	if !IsValidActorID(p.ActorID) {
		return nil, NewError(ErrValidation, "INVALID_ACTOR_ID", "invalid actor id %q", p.ActorID)
	}
	if len(p.Lines) == 0 {
		return nil, NewError(ErrValidation, "EMPTY_MOVEMENT", "movement %s has no lines", p.ID)
	}

	lines := make([]MovementLine, 0, len(p.Lines))
	seen := make(map[*InventoryItem]bool, len(p.Lines))
	for _, line := range p.Lines {
		if line.Item == nil {
			return nil, NewError(ErrValidation, "INVALID_ITEM", "movement %s has a line without item", p.ID)
		}
		if line.Quantity <= 0 {
			return nil, NewError(ErrValidation, "INVALID_QUANTITY",
				"line quantity must be positive, got %d for %s", line.Quantity, line.Item.ISBN)
		}
		if seen[line.Item] {
			return nil, NewError(ErrValidation, "DUPLICATE_LINE", "item %s at %s appears twice", line.Item.ISBN, line.Item.locationID)
		}
		seen[line.Item] = true
		line.locationID = line.Item.locationID
		lines = append(lines, line)
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &StockMovement{
		id:        p.ID,
		actorID:   p.ActorID,
		date:      date,
		status:    MovementPending,
		details:   details,
		lines:     lines,
		warehouse: weak.Make(w),
	}, nil
}

func (m *StockMovement) ID() string {
	return m.id
}

func (m *StockMovement) Type() MovementType {
	return m.details.movementType()
}

func (m *StockMovement) Status() MovementStatus {
	return m.status
}

func (m *StockMovement) Date() time.Time {
	return m.date
}

func (m *StockMovement) ActorID() string {
	return m.actorID
}

func (m *StockMovement) Details() MovementDetails {
	return m.details
}

func (m *StockMovement) Lines() []MovementLine {
	out := make([]MovementLine, len(m.lines))
	copy(out, m.lines)
	return out
}

// FinishedAt is zero until the movement reaches a terminal status.
func (m *StockMovement) FinishedAt() time.Time {
	return m.finishedAt
}

// Failure is the error that cancelled an execution, if any.
func (m *StockMovement) Failure() error {
	return m.failure
}

// RollbackIncomplete reports whether a compensating pass failed, leaving
// part of the movement applied even though it is cancelled.
func (m *StockMovement) RollbackIncomplete() bool {
	return m.rollbackIncomplete
}

func (m *StockMovement) TotalQuantity() int {
	total := 0
	for _, line := range m.lines {
		total += line.Quantity
	}
	return total
}

// Execute applies the movement. Every precondition is checked before the
// first mutation; a failure after that rolls back the lines already applied.
// The movement always ends COMPLETED or CANCELLED.
func (m *StockMovement) Execute() error {
	if m.status != MovementPending {
		return m.wrap("execute", NewError(ErrInvalidState, "INVALID_MOVEMENT_STATE",
			"cannot execute movement in status %s", m.status))
	}
	w := m.warehouse.Value()
	if w == nil {
		return m.wrap("execute", NewError(ErrNotFound, "WAREHOUSE_UNAVAILABLE", "warehouse is no longer available"))
	}

	m.status = MovementInProgress
	if err := m.checkPreconditions(w); err != nil {
		return m.abort("execute", err)
	}
	apply := m.apply
	if apply == nil {
		apply = m.applyLine
	}
	for _, line := range m.lines {
		undo, err := apply(w, line)
		if err != nil {
			return m.abort("execute", err)
		}
		m.undo = append(m.undo, undo)
	}

	m.undo = nil
	m.status = MovementCompleted
	m.finishedAt = time.Now().UTC()
	return nil
}

// Cancel is legal while PENDING or IN_PROGRESS. An in-progress movement is
// rolled back first; it ends CANCELLED even if the rollback is incomplete.
func (m *StockMovement) Cancel() error {
	switch m.status {
	case MovementPending:
		m.status = MovementCancelled
		m.finishedAt = time.Now().UTC()
		return nil
	case MovementInProgress:
		rbErr := m.rollback()
		m.status = MovementCancelled
		m.finishedAt = time.Now().UTC()
		if rbErr != nil {
			return &MovementError{
				MovementID:  m.id,
				Op:          "cancel",
				Err:         NewError(ErrInvalidState, "ROLLBACK_INCOMPLETE", "movement %s was only partially reverted", m.id),
				RollbackErr: rbErr,
			}
		}
		return nil
	}
	return m.wrap("cancel", NewError(ErrInvalidState, "INVALID_MOVEMENT_STATE",
		"cannot cancel movement in status %s", m.status))
}

func (m *StockMovement) abort(op string, cause error) error {
	rbErr := m.rollback()
	m.status = MovementCancelled
	m.finishedAt = time.Now().UTC()
	m.failure = cause
	return &MovementError{MovementID: m.id, Op: op, Err: cause, RollbackErr: rbErr}
}

// rollback runs the undo log in reverse. Every step is attempted even when
// an earlier one fails.
func (m *StockMovement) rollback() error {
	var errs []error
	for i := len(m.undo) - 1; i >= 0; i-- {
		if err := m.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	m.undo = nil
	if len(errs) > 0 {
		m.rollbackIncomplete = true
	}
	return errors.Join(errs...)
}

func (m *StockMovement) wrap(op string, err error) error {
	return &MovementError{MovementID: m.id, Op: op, Err: err}
}

func (m *StockMovement) checkPreconditions(w *Warehouse) error {
	switch d := m.details.(type) {
	case Receipt:
		return m.checkReceipt(w)
	case WriteOff:
		return m.checkWriteOff(w)
	case Transfer:
		return m.checkTransfer(w, d)
	}
	return NewError(ErrValidation, "UNKNOWN_MOVEMENT", "unknown movement variant %T", m.details)
}

func (m *StockMovement) applyLine(w *Warehouse, line MovementLine) (func() error, error) {
	switch d := m.details.(type) {
	case Receipt:
		return applyReceiptLine(w, line)
	case WriteOff:
		return applyWriteOffLine(w, line)
	case Transfer:
		return applyTransferLine(w, d, line, m.date)
	}
	return nil, NewError(ErrValidation, "UNKNOWN_MOVEMENT", "unknown movement variant %T", m.details)
}
