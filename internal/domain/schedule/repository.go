package schedule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classcheck/classcheck-api/internal/pkg/clock"
)

// Repository defines reservation data access interface. The guarded
// writes run the conflict check and the write in one transaction so
// two concurrent requests cannot both pass the check.
type Repository interface {
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]Reservation, error)
	ListByRoomAndDay(ctx context.Context, roomID uuid.UUID, day string) ([]Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	CreateGuarded(ctx context.Context, res *Reservation) error
	UpdateGuarded(ctx context.Context, res *Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new reservation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]Reservation, error) {
	query := `SELECT * FROM reservations WHERE room_id = $1 ORDER BY day, start_time`
	var out []Reservation
	err := r.db.SelectContext(ctx, &out, query, roomID)
	return out, err
}

func (r *repository) ListByRoomAndDay(ctx context.Context, roomID uuid.UUID, day string) ([]Reservation, error) {
	query := `SELECT * FROM reservations WHERE room_id = $1 AND day = $2 ORDER BY start_time`
	var out []Reservation
	err := r.db.SelectContext(ctx, &out, query, roomID, day)
	return out, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	query := `SELECT * FROM reservations WHERE id = $1`
	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) CreateGuarded(ctx context.Context, res *Reservation) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := checkConflicts(ctx, tx, res, uuid.Nil); err != nil {
			return err
		}
		query := `
			INSERT INTO reservations (id, room_id, day, subject, professor, start_time, end_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.ExecContext(ctx, query,
			res.ID, res.RoomID, res.Day, res.Subject, res.Professor,
			res.StartTime, res.EndTime, res.CreatedAt, res.UpdatedAt,
		)
		return err
	})
}

func (r *repository) UpdateGuarded(ctx context.Context, res *Reservation) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := checkConflicts(ctx, tx, res, res.ID); err != nil {
			return err
		}
		query := `
			UPDATE reservations
			SET day = $2, subject = $3, professor = $4, start_time = $5, end_time = $6, updated_at = $7
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			res.ID, res.Day, res.Subject, res.Professor,
			res.StartTime, res.EndTime, res.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrReservationNotFound
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// checkConflicts serializes writers on the room row, then rejects the
// candidate slot if it overlaps any reservation already on that day.
// Locking the existing reservation rows would not be enough: a row a
// concurrent transaction is about to insert is a phantom this
// transaction can neither see nor block on. excludeID skips the
// reservation being edited so it cannot conflict with itself.
func checkConflicts(ctx context.Context, tx *sqlx.Tx, res *Reservation, excludeID uuid.UUID) error {
	var roomID uuid.UUID
	err := tx.GetContext(ctx, &roomID, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, res.RoomID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomMissing
	}
	if err != nil {
		return err
	}

	query := `SELECT * FROM reservations WHERE room_id = $1 AND day = $2`
	var existing []Reservation
	if err := tx.SelectContext(ctx, &existing, query, res.RoomID, res.Day); err != nil {
		return err
	}

	start, err := clock.ParseClock(res.StartTime)
	if err != nil {
		return err
	}
	end, err := clock.ParseClock(res.EndTime)
	if err != nil {
		return err
	}

	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		otherStart, err := clock.ParseClock(existing[i].StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := clock.ParseClock(existing[i].EndTime)
		if err != nil {
			continue
		}
		if clock.Overlaps(start, end, otherStart, otherEnd) {
			return &ConflictError{Blocking: &existing[i]}
		}
	}
	return nil
}
