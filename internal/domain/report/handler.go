package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/middleware"
	"github.com/classcheck/classcheck-api/internal/pkg/response"
	"github.com/classcheck/classcheck-api/internal/pkg/validator"
)

// Handler handles maintenance report HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /rooms/{id}/reports
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	reporterID := middleware.GetUserID(r.Context())
	if reporterID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.Create(r.Context(), roomID, reporterID, &req)
	if err != nil {
		if errors.Is(err, ErrRoomMissing) {
			response.NotFound(w, "Room not found")
			return
		}
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to create report")
		response.InternalError(w, "Failed to create report")
		return
	}
	response.Created(w, report)
}

// ListByRoom handles GET /rooms/{id}/reports
func (h *Handler) ListByRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	reports, err := h.service.ListByRoom(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, ErrRoomMissing) {
			response.NotFound(w, "Room not found")
			return
		}
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to list reports")
		response.InternalError(w, "Failed to list reports")
		return
	}
	response.OK(w, reports)
}

// ListOpen handles GET /reports
func (h *Handler) ListOpen(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListOpen(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list open reports")
		response.InternalError(w, "Failed to list reports")
		return
	}
	response.OK(w, reports)
}

// Resolve handles POST /reports/{id}/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	report, err := h.service.Resolve(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		case errors.Is(err, ErrAlreadyResolved):
			response.Conflict(w, "Report is already resolved")
		default:
			log.Error().Err(err).Str("report_id", id.String()).Msg("failed to resolve report")
			response.InternalError(w, "Failed to resolve report")
		}
		return
	}
	response.OK(w, report)
}
