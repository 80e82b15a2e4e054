package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
	"github.com/classcheck/classcheck-api/internal/pkg/response"
	"github.com/classcheck/classcheck-api/internal/pkg/validator"
)

// BookingTranslator turns a free-text scheduling request into a draft
// reservation. *gemini.Client satisfies it.
type BookingTranslator interface {
	Enabled() bool
	TranslateBooking(ctx context.Context, query, today string) (*gemini.BookingIntent, error)
}

// ParseRequest is the payload for drafting a reservation from text.
type ParseRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}

// ParseHandler drafts reservations from natural language. The draft is
// returned to the client for review; nothing is written until the
// client submits it through the normal create endpoint.
type ParseHandler struct {
	ai  BookingTranslator
	now func() time.Time
}

func NewParseHandler(ai BookingTranslator) *ParseHandler {
	return &ParseHandler{ai: ai, now: time.Now}
}

// Parse handles POST /schedule/parse
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil || !h.ai.Enabled() {
		response.Error(w, http.StatusServiceUnavailable, "AI_DISABLED", "Natural-language scheduling is not configured")
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	intent, err := h.ai.TranslateBooking(r.Context(), req.Query, h.now().Weekday().String())
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("booking translation failed")
		response.InternalError(w, "Failed to parse the request")
		return
	}
	if intent == nil {
		response.BadRequest(w, "Could not extract a reservation from the query")
		return
	}
	response.OK(w, intent)
}
