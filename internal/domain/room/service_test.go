package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	rooms map[uuid.UUID]*Room
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rooms: make(map[uuid.UUID]*Room)}
}

func (f *fakeRepo) List(ctx context.Context) ([]Room, error) {
	out := make([]Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) Create(ctx context.Context, room *Room) error {
	for _, r := range f.rooms {
		if r.Name == room.Name {
			return ErrNameTaken
		}
	}
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, room *Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return ErrRoomNotFound
	}
	for _, r := range f.rooms {
		if r.ID != room.ID && r.Name == room.Name {
			return ErrNameTaken
		}
	}
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	delete(f.rooms, id)
	return nil
}

type fakeSchedule struct {
	entries map[uuid.UUID][]ScheduleEntry
	err     error
}

func (f *fakeSchedule) EntriesFor(ctx context.Context, roomID uuid.UUID, day string) ([]ScheduleEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[roomID], nil
}

func newTestService(repo *fakeRepo, sched *fakeSchedule, now time.Time) *Service {
	svc := NewService(repo, sched, NewStatusCache(nil))
	svc.now = func() time.Time { return now }
	return svc
}

func TestServiceCreateDefaults(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSchedule{}, at(8, 0))

	resp, err := svc.Create(context.Background(), &CreateRequest{
		Name:      "  Room 101 ",
		Type:      "Lecture Hall",
		Capacity:  120,
		Equipment: []string{"Projector", "Microphone"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Name != "Room 101" {
		t.Errorf("name not trimmed: %q", resp.Name)
	}
	if resp.Status != string(StatusAvailable) {
		t.Errorf("default status: got %s", resp.Status)
	}
	if resp.DerivedStatus != string(DerivedAvailable) || resp.Color != "green" {
		t.Errorf("derived: got (%s, %s)", resp.DerivedStatus, resp.Color)
	}
	if len(resp.Equipment) != 2 {
		t.Errorf("equipment: got %v", resp.Equipment)
	}
}

func TestServiceCreateDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSchedule{}, at(8, 0))

	req := &CreateRequest{Name: "Room 101", Type: "Lecture Hall", Capacity: 50}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrNameTaken) {
		t.Errorf("got %v, want ErrNameTaken", err)
	}
}

func TestServiceListStampsStatus(t *testing.T) {
	repo := newFakeRepo()
	sched := &fakeSchedule{entries: make(map[uuid.UUID][]ScheduleEntry)}
	svc := newTestService(repo, sched, at(10, 0))

	busy, err := svc.Create(context.Background(), &CreateRequest{Name: "Busy", Type: "Laboratory", Capacity: 20})
	if err != nil {
		t.Fatal(err)
	}
	free, err := svc.Create(context.Background(), &CreateRequest{Name: "Free", Type: "Laboratory", Capacity: 20})
	if err != nil {
		t.Fatal(err)
	}

	busyID := uuid.MustParse(busy.ID)
	sched.entries[busyID] = []ScheduleEntry{{Subject: "Bio", StartTime: "9:00 AM", EndTime: "11:00 AM"}}

	rooms, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	byID := make(map[string]*Response, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	if got := byID[busy.ID].DerivedStatus; got != string(DerivedOccupied) {
		t.Errorf("busy room: got %s, want Occupied", got)
	}
	if got := byID[free.ID].DerivedStatus; got != string(DerivedAvailable) {
		t.Errorf("free room: got %s, want Available", got)
	}
}

func TestServiceScheduleErrorFallsBack(t *testing.T) {
	repo := newFakeRepo()
	sched := &fakeSchedule{err: errors.New("db down")}
	svc := newTestService(repo, sched, at(10, 0))

	resp, err := svc.Create(context.Background(), &CreateRequest{Name: "Room 1", Type: "Seminar Room", Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	// Schedule lookup failure degrades to no occupancy, not an error.
	if resp.DerivedStatus != string(DerivedAvailable) {
		t.Errorf("got %s, want Available", resp.DerivedStatus)
	}
}

func TestServicePartialUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSchedule{}, at(8, 0))

	created, err := svc.Create(context.Background(), &CreateRequest{
		Name: "Room 101", Type: "Lecture Hall", Capacity: 120,
		Equipment: []string{"Projector"},
	})
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.MustParse(created.ID)

	status := string(StatusMaintenance)
	updated, err := svc.Update(context.Background(), id, &UpdateRequest{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Room 101" || updated.Capacity != 120 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.Status != string(StatusMaintenance) {
		t.Errorf("status: got %s", updated.Status)
	}
	if updated.DerivedStatus != string(DerivedMaintenance) || updated.Color != "orange" {
		t.Errorf("derived: got (%s, %s)", updated.DerivedStatus, updated.Color)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSchedule{}, at(8, 0))

	name := "Ghost"
	_, err := svc.Update(context.Background(), uuid.New(), &UpdateRequest{Name: &name})
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("got %v, want ErrRoomNotFound", err)
	}
}

func TestServiceDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSchedule{}, at(8, 0))

	created, err := svc.Create(context.Background(), &CreateRequest{Name: "Temp", Type: "Study Hall", Capacity: 8})
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.MustParse(created.ID)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), id); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("second delete: got %v, want ErrRoomNotFound", err)
	}
}
