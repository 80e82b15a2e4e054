package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/domain/room"
	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
)

// RoomLister supplies the rooms to search over, already stamped with
// their derived status.
type RoomLister interface {
	List(ctx context.Context) ([]*room.Response, error)
}

// ScheduleSource supplies the reservations of a room for one weekday.
type ScheduleSource interface {
	EntriesFor(ctx context.Context, roomID uuid.UUID, day string) ([]room.ScheduleEntry, error)
}

// Translator turns a natural-language query into a structured intent.
// *gemini.Client satisfies it.
type Translator interface {
	Enabled() bool
	TranslateSearch(ctx context.Context, query, today string) (*gemini.SearchIntent, error)
}

// Service implements room search
type Service struct {
	rooms    RoomLister
	schedule ScheduleSource
	ai       Translator
	now      func() time.Time
}

func NewService(rooms RoomLister, schedule ScheduleSource, ai Translator) *Service {
	return &Service{rooms: rooms, schedule: schedule, ai: ai, now: time.Now}
}

// Result is the search response: the matching rooms plus the intent
// the query was interpreted as, so clients can show the user what was
// actually searched for.
type Result struct {
	Query       string               `json:"query,omitempty"`
	Interpreted *gemini.SearchIntent `json:"interpreted,omitempty"`
	Rooms       []*room.Response     `json:"rooms"`
}

// Search filters the room list by a natural-language query, a manual
// intent, or both. When the query cannot be translated the full list
// comes back unfiltered rather than failing the request.
func (s *Service) Search(ctx context.Context, query string, manual *gemini.SearchIntent) (*Result, error) {
	intent := manual
	if query != "" && s.ai != nil && s.ai.Enabled() {
		translated, err := s.ai.TranslateSearch(ctx, query, s.now().Weekday().String())
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("search translation failed, returning unfiltered results")
		} else if translated != nil {
			intent = translated
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	day := s.now().Weekday().String()
	if intent != nil && intent.Day != "" {
		day = intent.Day
	}

	candidates := make([]Candidate, 0, len(rooms))
	for _, r := range rooms {
		entries, err := s.entriesFor(ctx, r, day)
		if err != nil {
			log.Warn().Err(err).Str("room_id", r.ID).Msg("failed to load schedule for search, treating as empty")
			entries = nil
		}
		candidates = append(candidates, Candidate{Room: r, Entries: entries})
	}

	matched := Apply(candidates, intent)
	out := make([]*room.Response, 0, len(matched))
	for _, c := range matched {
		out = append(out, c.Room)
	}

	return &Result{Query: query, Interpreted: intent, Rooms: out}, nil
}

func (s *Service) entriesFor(ctx context.Context, r *room.Response, day string) ([]room.ScheduleEntry, error) {
	if s.schedule == nil {
		return nil, nil
	}
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return s.schedule.EntriesFor(ctx, id, day)
}
