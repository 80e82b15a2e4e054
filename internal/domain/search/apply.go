package search

import (
	"strings"

	"github.com/classcheck/classcheck-api/internal/domain/room"
	"github.com/classcheck/classcheck-api/internal/pkg/clock"
	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
)

// Candidate is one room offered to the filter chain, paired with its
// schedule entries for the day the query targets.
type Candidate struct {
	Room    *room.Response
	Entries []room.ScheduleEntry
}

// wildcard values mean "no constraint" and must not filter anything.
func isWildcard(v string) bool {
	return v == "" || strings.EqualFold(v, "All")
}

// Apply runs the filter chain over the candidates. A nil intent, or an
// intent whose fields are all zero, returns the input unchanged. Each
// filter narrows the set left by the previous one; the order is
// type, capacity, equipment, keyword, time window, status.
func Apply(candidates []Candidate, intent *gemini.SearchIntent) []Candidate {
	if intent == nil {
		return candidates
	}

	out := candidates
	out = filterType(out, intent.FilterType)
	out = filterCapacity(out, intent.MinCapacity)
	out = filterEquipment(out, intent.Equipment)
	out = filterKeyword(out, intent.SearchKeyword)
	out = filterTimeWindow(out, intent.TimeStart, intent.TimeEnd)
	out = filterStatus(out, intent.TargetStatus)
	return out
}

func filterType(in []Candidate, roomType string) []Candidate {
	if isWildcard(roomType) {
		return in
	}
	needle := strings.ToLower(roomType)
	out := in[:0:0]
	for _, c := range in {
		if strings.Contains(strings.ToLower(c.Room.Type), needle) {
			out = append(out, c)
		}
	}
	return out
}

func filterCapacity(in []Candidate, min *int) []Candidate {
	if min == nil || *min <= 0 {
		return in
	}
	out := in[:0:0]
	for _, c := range in {
		if c.Room.Capacity >= *min {
			out = append(out, c)
		}
	}
	return out
}

func filterEquipment(in []Candidate, wanted []string) []Candidate {
	if len(wanted) == 0 {
		return in
	}
	out := in[:0:0]
	for _, c := range in {
		if hasAllEquipment(c.Room.Equipment, wanted) {
			out = append(out, c)
		}
	}
	return out
}

func hasAllEquipment(have, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, h := range have {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(w)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// filterKeyword matches against the room's name and type. Equipment
// and schedule constraints have their own structured intent fields and
// stay out of the keyword match.
func filterKeyword(in []Candidate, keyword string) []Candidate {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return in
	}
	needle := strings.ToLower(keyword)

	out := in[:0:0]
	for _, c := range in {
		if strings.Contains(strings.ToLower(c.Room.Name), needle) ||
			strings.Contains(strings.ToLower(c.Room.Type), needle) {
			out = append(out, c)
		}
	}
	return out
}

// filterTimeWindow keeps rooms with no reservation overlapping
// [start, end). A missing end defaults to one hour after start. A room
// with an empty schedule always passes.
func filterTimeWindow(in []Candidate, start, end *float64) []Candidate {
	if start == nil {
		return in
	}
	windowStart := *start
	windowEnd := windowStart + 1
	if end != nil {
		windowEnd = *end
	}

	out := in[:0:0]
	for _, c := range in {
		if freeDuring(c.Entries, windowStart, windowEnd) {
			out = append(out, c)
		}
	}
	return out
}

func freeDuring(entries []room.ScheduleEntry, windowStart, windowEnd float64) bool {
	for _, e := range entries {
		entryStart, err := clock.ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		entryEnd, err := clock.ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		if clock.Overlaps(windowStart, windowEnd, entryStart, entryEnd) {
			return false
		}
	}
	return true
}

func filterStatus(in []Candidate, status string) []Candidate {
	if isWildcard(status) {
		return in
	}
	out := in[:0:0]
	for _, c := range in {
		if strings.EqualFold(c.Room.DerivedStatus, status) {
			out = append(out, c)
		}
	}
	return out
}
