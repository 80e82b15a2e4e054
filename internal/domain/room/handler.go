package room

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

// Handler handles room HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /rooms
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")
		response.InternalError(w, "Failed to list rooms")
		return
	}
	response.OK(w, rooms)
}

// Get handles GET /rooms/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	room, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		log.Error().Err(err).Str("room_id", id.String()).Msg("failed to get room")
		response.InternalError(w, "Failed to get room")
		return
	}
	response.OK(w, room)
}

// Create handles POST /rooms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(w, "A room with this name already exists")
			return
		}
		log.Error().Err(err).Msg("failed to create room")
		response.InternalError(w, "Failed to create room")
		return
	}
	response.Created(w, room)
}

// Update handles PUT /rooms/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
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

	room, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomNotFound):
			response.NotFound(w, "Room not found")
		case errors.Is(err, ErrNameTaken):
			response.Conflict(w, "A room with this name already exists")
		default:
			log.Error().Err(err).Str("room_id", id.String()).Msg("failed to update room")
			response.InternalError(w, "Failed to update room")
		}
		return
	}
	response.OK(w, room)
}

// Delete handles DELETE /rooms/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.NotFound(w, "Room not found")
			return
		}
		log.Error().Err(err).Str("room_id", id.String()).Msg("failed to delete room")
		response.InternalError(w, "Failed to delete room")
		return
	}
	response.NoContent(w)
}
