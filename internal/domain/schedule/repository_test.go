package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func setupMockRepo(t *testing.T) (sqlmock.Sqlmock, Repository, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	sdb := sqlx.NewDb(db, "sqlmock")
	return mock, NewRepository(sdb), func() { sdb.Close() }
}

func reservationColumns() []string {
	return []string{"id", "room_id", "day", "subject", "professor", "start_time", "end_time", "created_at", "updated_at"}
}

func testReservation(roomID uuid.UUID) *Reservation {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	return &Reservation{
		ID:        uuid.New(),
		RoomID:    roomID,
		Day:       "Monday",
		Subject:   "Calculus",
		Professor: "Dr. Chen",
		StartTime: "9:00 AM",
		EndTime:   "10:30 AM",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// The guard must take the room-row lock before reading the day's
// reservations: locking only the existing reservation rows cannot
// block a concurrent insert, so two writers for an empty day would
// both pass the check. The expectations here are ordered.
func TestCreateGuardedLocksRoomBeforeCheck(t *testing.T) {
	mock, repo, closeDB := setupMockRepo(t)
	defer closeDB()

	roomID := uuid.New()
	res := testReservation(roomID)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID.String()))
	mock.ExpectQuery(`SELECT \* FROM reservations WHERE room_id = \$1 AND day = \$2`).
		WithArgs(roomID, "Monday").
		WillReturnRows(sqlmock.NewRows(reservationColumns()))
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(res.ID, res.RoomID, res.Day, res.Subject, res.Professor,
			res.StartTime, res.EndTime, res.CreatedAt, res.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CreateGuarded(context.Background(), res); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("statement order: %v", err)
	}
}

func TestCreateGuardedConflictRollsBack(t *testing.T) {
	mock, repo, closeDB := setupMockRepo(t)
	defer closeDB()

	roomID := uuid.New()
	res := testReservation(roomID)
	res.StartTime, res.EndTime = "10:00 AM", "11:00 AM"

	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC)
	existing := sqlmock.NewRows(reservationColumns()).
		AddRow(uuid.NewString(), roomID.String(), "Monday", "Physics", "Dr. Patel",
			"9:00 AM", "10:30 AM", now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID.String()))
	mock.ExpectQuery(`SELECT \* FROM reservations WHERE room_id = \$1 AND day = \$2`).
		WithArgs(roomID, "Monday").
		WillReturnRows(existing)
	mock.ExpectRollback()

	err := repo.CreateGuarded(context.Background(), res)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Blocking.Subject != "Physics" {
		t.Errorf("blocking subject: got %s", conflict.Blocking.Subject)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no insert may run after a conflict: %v", err)
	}
}

func TestCreateGuardedUnknownRoom(t *testing.T) {
	mock, repo, closeDB := setupMockRepo(t)
	defer closeDB()

	roomID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.CreateGuarded(context.Background(), testReservation(roomID))
	if !errors.Is(err, ErrRoomMissing) {
		t.Fatalf("got %v, want ErrRoomMissing", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
