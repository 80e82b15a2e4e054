package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
)

// RoomChecker verifies the target room exists.
type RoomChecker interface {
	Exists(ctx context.Context, roomID uuid.UUID) (bool, error)
}

// ErrRoomMissing is returned when a report targets an unknown room.
var ErrRoomMissing = roomMissingError{}

type roomMissingError struct{}

func (roomMissingError) Error() string { return "room not found" }

// Analyzer triages a free-text issue description. *gemini.Client
// satisfies it.
type Analyzer interface {
	Enabled() bool
	AnalyzeIssue(ctx context.Context, description string) (*gemini.IssueAnalysis, error)
}

// Service implements maintenance report business logic
type Service struct {
	repo  Repository
	rooms RoomChecker
	ai    Analyzer
	now   func() time.Time
}

func NewService(repo Repository, rooms RoomChecker, ai Analyzer) *Service {
	return &Service{repo: repo, rooms: rooms, ai: ai, now: time.Now}
}

// Create files a report. The AI triage is best effort: when it fails
// or is disabled the report is stored with the raw description only.
func (s *Service) Create(ctx context.Context, roomID, reporterID uuid.UUID, req *CreateRequest) (*Response, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.New(),
		RoomID:      roomID,
		ReporterID:  reporterID,
		Description: strings.TrimSpace(req.Description),
		Status:      StatusOpen,
		CreatedAt:   s.now(),
	}

	if s.ai != nil && s.ai.Enabled() {
		analysis, err := s.ai.AnalyzeIssue(ctx, report.Description)
		if err != nil {
			log.Warn().Err(err).Str("room_id", roomID.String()).Msg("issue analysis failed, storing report without triage")
		} else if analysis != nil {
			report.Category = analysis.Category
			report.Urgency = analysis.Urgency
			report.Summary = analysis.Summary
			report.SuggestedAction = analysis.SuggestedAction
		}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report.ToResponse(), nil
}

func (s *Service) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*Response, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}

	reports, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return toResponses(reports), nil
}

func (s *Service) ListOpen(ctx context.Context) ([]*Response, error) {
	reports, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(reports), nil
}

// Resolve marks a report handled. Resolving twice is an error so two
// admins working the same queue notice the collision.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*Response, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}

	now := s.now()
	report.Status = StatusResolved
	report.ResolvedAt = &now

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report.ToResponse(), nil
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

func toResponses(reports []Report) []*Response {
	out := make([]*Response, 0, len(reports))
	for i := range reports {
		out = append(out, reports[i].ToResponse())
	}
	return out
}
