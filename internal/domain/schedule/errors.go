package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTimeOrder           = errors.New("start time must be before end time")
)

// ConflictError reports a rejected write along with the reservation
// that blocks it, so callers can tell the user exactly what is in
// the way.
type ConflictError struct {
	Blocking *Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"time slot conflicts with %s (%s) from %s to %s",
		e.Blocking.Subject, e.Blocking.Professor,
		e.Blocking.StartTime, e.Blocking.EndTime,
	)
}
