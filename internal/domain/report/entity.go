package report

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks whether a maintenance report has been handled.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Report is a maintenance issue filed against a room (matches
// maintenance_reports table). The triage fields are filled in by the
// AI analysis when it is available and stay empty otherwise.
type Report struct {
	ID          uuid.UUID `db:"id"`
	RoomID      uuid.UUID `db:"room_id"`
	ReporterID  uuid.UUID `db:"reporter_id"`
	Description string    `db:"description"`

	Category        string `db:"category"`
	Urgency         string `db:"urgency"`
	Summary         string `db:"summary"`
	SuggestedAction string `db:"suggested_action"`

	Status     Status     `db:"status"`
	ResolvedAt *time.Time `db:"resolved_at"`
	CreatedAt  time.Time  `db:"created_at"`
}
