package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classcheck/classcheck-api/internal/domain/user"
	"github.com/classcheck/classcheck-api/internal/pkg/response"
	"github.com/classcheck/classcheck-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to register")
		return
	}

	response.Created(w, tokenResponse(u, token, h.service.jwt.AccessTTL().Seconds()))
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to login")
		return
	}

	response.OK(w, tokenResponse(u, token, h.service.jwt.AccessTTL().Seconds()))
}

func tokenResponse(u *user.User, token string, ttlSeconds float64) *TokenResponse {
	resp := &TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(ttlSeconds),
	}
	resp.User.ID = u.ID.String()
	resp.User.Email = u.Email
	resp.User.Name = u.Name
	resp.User.Role = string(u.Role)
	return resp
}
