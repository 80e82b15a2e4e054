package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is one weekly recurring slot in a room's schedule
// (matches reservations table). Times are stored in the 12-hour
// "H:MM AM/PM" form they are entered and displayed in.
type Reservation struct {
	ID        uuid.UUID `db:"id"`
	RoomID    uuid.UUID `db:"room_id"`
	Day       string    `db:"day"`
	Subject   string    `db:"subject"`
	Professor string    `db:"professor"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
