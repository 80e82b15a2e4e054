package room

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ScheduleSource supplies the reservations of a room for one weekday.
// The schedule domain owns the data; an adapter in main satisfies
// this interface to keep the two packages decoupled.
type ScheduleSource interface {
	EntriesFor(ctx context.Context, roomID uuid.UUID, day string) ([]ScheduleEntry, error)
}

// Service implements room business logic
type Service struct {
	repo     Repository
	schedule ScheduleSource
	cache    *StatusCache
	now      func() time.Time
}

func NewService(repo Repository, schedule ScheduleSource, cache *StatusCache) *Service {
	return &Service{
		repo:     repo,
		schedule: schedule,
		cache:    cache,
		now:      time.Now,
	}
}

// List returns all rooms with their derived status stamped on.
func (s *Service) List(ctx context.Context) ([]*Response, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Response, 0, len(rooms))
	for i := range rooms {
		derived, color := s.statusFor(ctx, &rooms[i])
		out = append(out, rooms[i].ToResponse(derived, color))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	derived, color := s.statusFor(ctx, room)
	return room.ToResponse(derived, color), nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	status := StatusAvailable
	if req.Status != "" {
		status = Status(req.Status)
	}

	now := s.now()
	room := &Room{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Type:      req.Type,
		Capacity:  req.Capacity,
		Equipment: JoinEquipment(req.Equipment),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	derived, color := s.statusFor(ctx, room)
	return room.ToResponse(derived, color), nil
}

// Update applies a partial update; nil fields keep their current value.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Response, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	if req.Name != nil {
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Equipment != nil {
		room.Equipment = JoinEquipment(*req.Equipment)
	}
	if req.Status != nil {
		room.Status = Status(*req.Status)
	}
	room.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	// Admin status changes take effect immediately, so drop the
	// stale snapshot instead of waiting out the poll interval.
	if err := s.cache.Delete(ctx, room.ID); err != nil {
		log.Warn().Err(err).Str("room_id", room.ID.String()).Msg("failed to invalidate status cache")
	}

	derived, color := s.statusFor(ctx, room)
	return room.ToResponse(derived, color), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("room_id", id.String()).Msg("failed to invalidate status cache")
	}
	return nil
}

// RefreshStatuses recomputes every room's derived status and writes
// the snapshots to the cache. Called by the poller.
func (s *Service) RefreshStatuses(ctx context.Context) error {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	for i := range rooms {
		derived, color := s.resolve(ctx, &rooms[i], now)
		snap := StatusSnapshot{Status: derived, Color: color, UpdatedAt: now}
		if err := s.cache.Set(ctx, rooms[i].ID, snap); err != nil {
			log.Warn().Err(err).Str("room_id", rooms[i].ID.String()).Msg("failed to cache room status")
		}
	}
	return nil
}

// statusFor returns the cached snapshot when fresh, otherwise
// resolves the status inline.
func (s *Service) statusFor(ctx context.Context, room *Room) (DerivedStatus, string) {
	if snap, err := s.cache.Get(ctx, room.ID); err == nil && snap != nil {
		return snap.Status, snap.Color
	}
	return s.resolve(ctx, room, s.now())
}

func (s *Service) resolve(ctx context.Context, room *Room, now time.Time) (DerivedStatus, string) {
	var entries []ScheduleEntry
	if s.schedule != nil {
		var err error
		entries, err = s.schedule.EntriesFor(ctx, room.ID, now.Weekday().String())
		if err != nil {
			log.Warn().Err(err).Str("room_id", room.ID.String()).Msg("failed to load schedule for status resolution")
			entries = nil
		}
	}
	return ResolveStatus(room.Status, entries, now)
}
