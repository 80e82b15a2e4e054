package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/pkg/response"
	"github.com/classcheck/classcheck-api/internal/pkg/validator"
)

// Handler handles reservation HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Week handles GET /rooms/{id}/reservations
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	// ?day=Monday narrows the result to a single weekday.
	if day := r.URL.Query().Get("day"); day != "" {
		if !validator.IsWeekday(day) {
			response.BadRequest(w, "Invalid weekday")
			return
		}
		entries, err := h.service.Day(r.Context(), roomID, day)
		if err != nil {
			h.writeListError(w, roomID, err)
			return
		}
		response.OK(w, entries)
		return
	}

	week, err := h.service.Week(r.Context(), roomID)
	if err != nil {
		h.writeListError(w, roomID, err)
		return
	}
	response.OK(w, week)
}

func (h *Handler) writeListError(w http.ResponseWriter, roomID uuid.UUID, err error) {
	if errors.Is(err, ErrRoomMissing) {
		response.NotFound(w, "Room not found")
		return
	}
	log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to list reservations")
	response.InternalError(w, "Failed to list reservations")
}

// Create handles POST /rooms/{id}/reservations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
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

	res, err := h.service.Create(r.Context(), roomID, &req)
	if err != nil {
		h.writeMutationError(w, err, "failed to create reservation")
		return
	}
	response.Created(w, res)
}

// Update handles PUT /reservations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid reservation ID")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	res, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeMutationError(w, err, "failed to update reservation")
		return
	}
	response.OK(w, res)
}

// Delete handles DELETE /reservations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid reservation ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			response.NotFound(w, "Reservation not found")
			return
		}
		log.Error().Err(err).Str("reservation_id", id.String()).Msg("failed to delete reservation")
		response.InternalError(w, "Failed to delete reservation")
		return
	}
	response.NoContent(w)
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error, logMsg string) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(w, http.StatusConflict, "CONFLICT", conflict.Error(), ConflictDetails{
			Subject:   conflict.Blocking.Subject,
			Professor: conflict.Blocking.Professor,
			StartTime: conflict.Blocking.StartTime,
			EndTime:   conflict.Blocking.EndTime,
		})
	case errors.Is(err, ErrTimeOrder):
		response.BadRequest(w, "Start time must be before end time")
	case errors.Is(err, ErrRoomMissing):
		response.NotFound(w, "Room not found")
	case errors.Is(err, ErrReservationNotFound):
		response.NotFound(w, "Reservation not found")
	default:
		log.Error().Err(err).Msg(logMsg)
		response.InternalError(w, "Failed to save reservation")
	}
}
