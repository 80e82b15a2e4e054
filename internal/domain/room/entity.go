package room

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the administrative status an operator sets on a room. It is
// independent of, and overrides, any schedule-derived occupancy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusReserved    Status = "Reserved"
)

// Room represents a campus classroom (matches rooms table).
// Equipment is persisted as a comma-joined string.
type Room struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Capacity  int       `db:"capacity"`
	Equipment string    `db:"equipment"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EquipmentList splits the stored comma-joined equipment string.
func (r *Room) EquipmentList() []string {
	if r.Equipment == "" {
		return nil
	}
	parts := strings.Split(r.Equipment, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinEquipment renders an equipment set to its stored form.
func JoinEquipment(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return strings.Join(cleaned, ",")
}

// ScheduleEntry is the slice of a reservation the status resolver needs.
// The schedule domain owns the full record; an adapter in main bridges the
// two.
type ScheduleEntry struct {
	ID        uuid.UUID
	Subject   string
	Professor string
	StartTime string
	EndTime   string
}
