package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/classcheck/classcheck-api/internal/pkg/clock"
	"github.com/classcheck/classcheck-api/internal/pkg/validator"
)

// RoomChecker verifies that a room exists before reservations are
// attached to it. The room domain satisfies this via an adapter in
// main.
type RoomChecker interface {
	Exists(ctx context.Context, roomID uuid.UUID) (bool, error)
}

// ErrRoomMissing is returned when a reservation targets an unknown room.
var ErrRoomMissing = roomMissingError{}

type roomMissingError struct{}

func (roomMissingError) Error() string { return "room not found" }

// Service implements reservation business logic
type Service struct {
	repo  Repository
	rooms RoomChecker
	now   func() time.Time
}

func NewService(repo Repository, rooms RoomChecker) *Service {
	return &Service{repo: repo, rooms: rooms, now: time.Now}
}

// Week returns a room's full schedule grouped by weekday. Every
// weekday is present so clients can render an empty day without
// special-casing.
func (s *Service) Week(ctx context.Context, roomID uuid.UUID) (WeekResponse, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	week := make(WeekResponse, len(validator.Weekdays))
	for _, day := range validator.Weekdays {
		week[day] = []*Response{}
	}
	for i := range reservations {
		week[reservations[i].Day] = append(week[reservations[i].Day], reservations[i].ToResponse())
	}
	return week, nil
}

// Day returns a room's reservations for a single weekday, sorted by
// start time.
func (s *Service) Day(ctx context.Context, roomID uuid.UUID, day string) ([]*Response, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListByRoomAndDay(ctx, roomID, day)
	if err != nil {
		return nil, err
	}

	out := make([]*Response, 0, len(reservations))
	for i := range reservations {
		out = append(out, reservations[i].ToResponse())
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, roomID uuid.UUID, req *CreateRequest) (*Response, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}
	if err := checkOrder(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	now := s.now()
	res := &Reservation{
		ID:        uuid.New(),
		RoomID:    roomID,
		Day:       req.Day,
		Subject:   strings.TrimSpace(req.Subject),
		Professor: strings.TrimSpace(req.Professor),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateGuarded(ctx, res); err != nil {
		return nil, err
	}
	return res.ToResponse(), nil
}

// Update edits a reservation. The conflict check excludes the
// reservation itself, so shrinking or shifting a slot within its own
// window always passes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Response, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}

	if req.Day != nil {
		res.Day = *req.Day
	}
	if req.Subject != nil {
		res.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Professor != nil {
		res.Professor = strings.TrimSpace(*req.Professor)
	}
	if req.StartTime != nil {
		res.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		res.EndTime = *req.EndTime
	}
	if err := checkOrder(res.StartTime, res.EndTime); err != nil {
		return nil, err
	}
	res.UpdatedAt = s.now()

	if err := s.repo.UpdateGuarded(ctx, res); err != nil {
		return nil, err
	}
	return res.ToResponse(), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) requireRoom(ctx context.Context, roomID uuid.UUID) error {
	if s.rooms == nil {
		return nil
	}
	ok, err := s.rooms.Exists(ctx, roomID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoomMissing
	}
	return nil
}

func checkOrder(startTime, endTime string) error {
	start, err := clock.ParseClock(startTime)
	if err != nil {
		return err
	}
	end, err := clock.ParseClock(endTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrTimeOrder
	}
	return nil
}
