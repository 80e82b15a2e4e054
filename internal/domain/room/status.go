package room

import (
	"time"

	"github.com/classcheck/classcheck-api/internal/pkg/clock"
)

// DerivedStatus is the authoritative status shown for a room at an instant.
// It is computed per query and never persisted.
type DerivedStatus string

const (
	DerivedAvailable   DerivedStatus = "Available"
	DerivedOccupied    DerivedStatus = "Occupied"
	DerivedMaintenance DerivedStatus = "Maintenance"
	DerivedReserved    DerivedStatus = "Reserved"
)

// ColorFor maps a derived status to its presentation color.
func ColorFor(s DerivedStatus) string {
	switch s {
	case DerivedOccupied:
		return "red"
	case DerivedMaintenance:
		return "orange"
	case DerivedReserved:
		return "blue"
	default:
		return "green"
	}
}

// ResolveStatus combines a room's administrative status with its schedule
// for the day. The precedence chain is deliberate and must hold:
// Maintenance/Reserved win outright, then schedule occupancy, then Available.
func ResolveStatus(adminStatus Status, entries []ScheduleEntry, now time.Time) (DerivedStatus, string) {
	switch adminStatus {
	case StatusMaintenance:
		return DerivedMaintenance, ColorFor(DerivedMaintenance)
	case StatusReserved:
		return DerivedReserved, ColorFor(DerivedReserved)
	}

	nowHours := clock.HoursSinceMidnight(now)
	for _, entry := range entries {
		start, err := clock.ParseClock(entry.StartTime)
		if err != nil {
			continue
		}
		end, err := clock.ParseClock(entry.EndTime)
		if err != nil {
			continue
		}
		if nowHours >= start && nowHours < end {
			return DerivedOccupied, ColorFor(DerivedOccupied)
		}
	}

	return DerivedAvailable, ColorFor(DerivedAvailable)
}
