package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

type PgMovementJournal struct {
	db *sql.DB
}

func NewPgMovementJournal(db *sql.DB) *PgMovementJournal {
	return &PgMovementJournal{db: db}
}

// Save upserts the movement header and replaces its lines. A row with the
// same id but another type, actor or date is left alone and reported as
// MOVEMENT_ID_CONFLICT.
func (r *PgMovementJournal) Save(
	ctx context.Context,
	rec domain.MovementRecord,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := `
        insert into warehouse_movements
        (id, type, status, actor_id, movement_date_utc, finished_at_utc, failure,
         rollback_incomplete, supplier, reason, from_location_id, to_location_id)
        values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        on conflict (id) do update
        set status = excluded.status,
            finished_at_utc = excluded.finished_at_utc,
            failure = excluded.failure,
            rollback_incomplete = excluded.rollback_incomplete
        where warehouse_movements.type = excluded.type
          and warehouse_movements.actor_id = excluded.actor_id
          and warehouse_movements.movement_date_utc = excluded.movement_date_utc
    `
	var finishedAt sql.NullTime
	if rec.FinishedAt != nil {
		finishedAt = sql.NullTime{Time: rec.FinishedAt.UTC(), Valid: true}
	}
	res, err := tx.ExecContext(
		ctx, q,
		rec.ID,
		string(rec.Type),
		string(rec.Status),
		rec.ActorID,
		rec.Date.UTC().Truncate(time.Microsecond),
		finishedAt,
		rec.Failure,
		rec.RollbackIncomplete,
		rec.Supplier,
		string(rec.Reason),
		rec.FromLocationID,
		rec.ToLocationID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.NewError(domain.ErrDuplicate, "MOVEMENT_ID_CONFLICT",
			"journal already holds a different movement %s", rec.ID)
	}

	if _, err := tx.ExecContext(ctx,
		`delete from warehouse_movement_lines where movement_id = $1`, rec.ID); err != nil {
		return err
	}

	lq := `
        insert into warehouse_movement_lines
        (id, movement_id, line_no, isbn, location_id, quantity)
        values ($1,$2,$3,$4,$5,$6)
    `
	for i, l := range rec.Lines {
		if _, err := tx.ExecContext(
			ctx, lq,
			uuid.New(), rec.ID, i+1, l.ISBN, l.LocationID, l.Quantity,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const movementColumns = `
        select id, type, status, actor_id, movement_date_utc, finished_at_utc, failure,
               rollback_incomplete, supplier, reason, from_location_id, to_location_id
        from warehouse_movements
`

func (r *PgMovementJournal) GetByID(
	ctx context.Context,
	id string,
) (*domain.MovementRecord, error) {
	row := r.db.QueryRowContext(ctx, movementColumns+` where id = $1`, id)
	rec, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(domain.ErrNotFound, "MOVEMENT_NOT_FOUND", "movement %s not found", id)
		}
		return nil, err
	}
	if rec.Lines, err = r.loadLines(ctx, rec.ID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *PgMovementJournal) ListRecent(
	ctx context.Context,
	limit int,
) ([]domain.MovementRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		movementColumns+` order by movement_date_utc desc, id desc limit $1`, limit)
	if err != nil {
		return nil, err
	}

	var result []domain.MovementRecord
	for rows.Next() {
		rec, err := scanMovement(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// lines are loaded once the header cursor is closed
	for i := range result {
		if result[i].Lines, err = r.loadLines(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *PgMovementJournal) MaxSequence(
	ctx context.Context,
	t domain.MovementType,
	year int,
) (int, error) {
	if t.Prefix() == "" {
		return 0, domain.NewError(domain.ErrValidation, "UNKNOWN_MOVEMENT", "unknown movement type %q", t)
	}
	prefix := fmt.Sprintf("%s-%04d-", t.Prefix(), year)

	// NNN is zero padded, so the highest id sorts last
	var maxID sql.NullString
	if err := r.db.QueryRowContext(ctx,
		`select max(id) from warehouse_movements where id like $1`, prefix+"%",
	).Scan(&maxID); err != nil {
		return 0, err
	}
	if !maxID.Valid {
		return 0, nil
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(maxID.String, prefix))
	if err != nil {
		return 0, fmt.Errorf("unexpected movement id %q: %w", maxID.String, err)
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*domain.MovementRecord, error) {
	var rec domain.MovementRecord
	var movementType, status, reason string
	var finishedAt sql.NullTime
	if err := row.Scan(
		&rec.ID,
		&movementType,
		&status,
		&rec.ActorID,
		&rec.Date,
		&finishedAt,
		&rec.Failure,
		&rec.RollbackIncomplete,
		&rec.Supplier,
		&reason,
		&rec.FromLocationID,
		&rec.ToLocationID,
	); err != nil {
		return nil, err
	}
	rec.Type = domain.MovementType(movementType)
	rec.Status = domain.MovementStatus(status)
	rec.Reason = domain.WriteOffReason(reason)
	rec.Date = rec.Date.UTC()
	if finishedAt.Valid {
		t := finishedAt.Time.UTC()
		rec.FinishedAt = &t
	}
	return &rec, nil
}

func (r *PgMovementJournal) loadLines(ctx context.Context, movementID string) ([]domain.MovementRecordLine, error) {
	lq := `
        select isbn, location_id, quantity
        from warehouse_movement_lines
        where movement_id = $1
        order by line_no
    `
	rows, err := r.db.QueryContext(ctx, lq, movementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.MovementRecordLine{}
	for rows.Next() {
		var l domain.MovementRecordLine
		if err := rows.Scan(&l.ISBN, &l.LocationID, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
