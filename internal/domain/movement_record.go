package domain

import "time"

// MovementRecord is the journal view of a movement once it left PENDING.
type MovementRecord struct {
	ID                 string
	Type               MovementType
	Status             MovementStatus
	ActorID            string
	Date               time.Time
	FinishedAt         *time.Time
	Failure            string
	RollbackIncomplete bool

	Supplier       string
	Reason         WriteOffReason
	FromLocationID string
	ToLocationID   string

	Lines []MovementRecordLine
}

// SameMovement reports whether other describes the same movement, possibly
// in a later status.
func (r MovementRecord) SameMovement(other MovementRecord) bool {
	return r.ID == other.ID &&
		r.Type == other.Type &&
		r.ActorID == other.ActorID &&
		r.Date.Equal(other.Date)
}

type MovementRecordLine struct {
	ISBN       string
	LocationID string
	Quantity   int
}

// Snapshot copies the movement state. Line locations are the ones the items
// had when the movement was created.
func (m *StockMovement) Snapshot() MovementRecord {
	rec := MovementRecord{
		ID:                 m.id,
		Type:               m.Type(),
		Status:             m.status,
		ActorID:            m.actorID,
		Date:               m.date,
		RollbackIncomplete: m.rollbackIncomplete,
	}
	if !m.finishedAt.IsZero() {
		t := m.finishedAt
		rec.FinishedAt = &t
	}
	if m.failure != nil {
		rec.Failure = m.failure.Error()
	}

	switch d := m.details.(type) {
	case Receipt:
		rec.Supplier = d.Supplier
	case WriteOff:
		rec.Reason = d.Reason
	case Transfer:
		rec.FromLocationID = d.FromLocationID
		rec.ToLocationID = d.ToLocationID
	}

	rec.Lines = make([]MovementRecordLine, 0, len(m.lines))
	for _, line := range m.lines {
		rec.Lines = append(rec.Lines, MovementRecordLine{
			ISBN:       line.Item.ISBN,
			LocationID: line.locationID,
			Quantity:   line.Quantity,
		})
	}
	return rec
}
