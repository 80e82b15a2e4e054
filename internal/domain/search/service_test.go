package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/classcheck/classcheck-api/internal/domain/room"
	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
)

type fakeRooms struct {
	rooms []*room.Response
}

func (f *fakeRooms) List(ctx context.Context) ([]*room.Response, error) {
	return f.rooms, nil
}

type fakeSchedule struct {
	entries map[string][]room.ScheduleEntry
	lastDay string
}

func (f *fakeSchedule) EntriesFor(ctx context.Context, roomID uuid.UUID, day string) ([]room.ScheduleEntry, error) {
	f.lastDay = day
	return f.entries[roomID.String()], nil
}

type fakeTranslator struct {
	intent *gemini.SearchIntent
	err    error
	called bool
}

func (f *fakeTranslator) Enabled() bool { return true }

func (f *fakeTranslator) TranslateSearch(ctx context.Context, query, today string) (*gemini.SearchIntent, error) {
	f.called = true
	return f.intent, f.err
}

func testRooms() []*room.Response {
	return []*room.Response{
		{ID: uuid.NewString(), Name: "Room 101", Type: "Lecture Hall", Capacity: 120, DerivedStatus: "Available"},
		{ID: uuid.NewString(), Name: "Lab A", Type: "Computer Lab", Capacity: 30, DerivedStatus: "Occupied"},
	}
}

func newSearchService(rooms []*room.Response, sched *fakeSchedule, ai Translator) *Service {
	svc := NewService(&fakeRooms{rooms: rooms}, sched, ai)
	// A Monday.
	svc.now = func() time.Time { return time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestSearchTranslatesQuery(t *testing.T) {
	ai := &fakeTranslator{intent: &gemini.SearchIntent{FilterType: "Computer Lab"}}
	svc := newSearchService(testRooms(), &fakeSchedule{}, ai)

	result, err := svc.Search(context.Background(), "a lab with computers", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ai.called {
		t.Error("translator not invoked")
	}
	if len(result.Rooms) != 1 || result.Rooms[0].Name != "Lab A" {
		t.Errorf("rooms: %+v", result.Rooms)
	}
	if result.Interpreted == nil || result.Interpreted.FilterType != "Computer Lab" {
		t.Errorf("interpreted: %+v", result.Interpreted)
	}
}

func TestSearchTranslationFailureReturnsEverything(t *testing.T) {
	ai := &fakeTranslator{err: errors.New("timeout")}
	svc := newSearchService(testRooms(), &fakeSchedule{}, ai)

	result, err := svc.Search(context.Background(), "gibberish query", nil)
	if err != nil {
		t.Fatalf("translation failure must not fail the search: %v", err)
	}
	if len(result.Rooms) != 2 {
		t.Errorf("got %d rooms, want unfiltered 2", len(result.Rooms))
	}
}

func TestSearchNilIntentReturnsEverything(t *testing.T) {
	ai := &fakeTranslator{}
	svc := newSearchService(testRooms(), &fakeSchedule{}, ai)

	result, err := svc.Search(context.Background(), "unintelligible", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rooms) != 2 {
		t.Errorf("got %d rooms, want 2", len(result.Rooms))
	}
}

func TestSearchManualIntentWithoutQuery(t *testing.T) {
	ai := &fakeTranslator{}
	min := 100
	svc := newSearchService(testRooms(), &fakeSchedule{}, ai)

	result, err := svc.Search(context.Background(), "", &gemini.SearchIntent{MinCapacity: &min})
	if err != nil {
		t.Fatal(err)
	}
	if ai.called {
		t.Error("translator should not run without a query")
	}
	if len(result.Rooms) != 1 || result.Rooms[0].Name != "Room 101" {
		t.Errorf("rooms: %+v", result.Rooms)
	}
}

func TestSearchUsesIntentDayForSchedules(t *testing.T) {
	sched := &fakeSchedule{}
	svc := newSearchService(testRooms(), sched, &fakeTranslator{intent: &gemini.SearchIntent{Day: "Friday"}})

	if _, err := svc.Search(context.Background(), "friday afternoon", nil); err != nil {
		t.Fatal(err)
	}
	if sched.lastDay != "Friday" {
		t.Errorf("schedule day: got %q, want Friday", sched.lastDay)
	}
}

func TestSearchDefaultsToTodayWeekday(t *testing.T) {
	sched := &fakeSchedule{}
	svc := newSearchService(testRooms(), sched, &fakeTranslator{})

	if _, err := svc.Search(context.Background(), "", nil); err != nil {
		t.Fatal(err)
	}
	if sched.lastDay != "Monday" {
		t.Errorf("schedule day: got %q, want Monday", sched.lastDay)
	}
}
