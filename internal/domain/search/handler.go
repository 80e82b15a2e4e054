package search

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/classcheck/classcheck-api/internal/pkg/clock"
	"github.com/classcheck/classcheck-api/internal/pkg/gemini"
	"github.com/classcheck/classcheck-api/internal/pkg/response"
	"github.com/classcheck/classcheck-api/internal/pkg/validator"
)

// Handler handles search HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// QueryRequest is the natural-language search payload.
type QueryRequest struct {
	Query string `json:"query" validate:"required,min=1,max=500"`
}

// Query handles POST /search with a free-text query body.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Search(r.Context(), strings.TrimSpace(req.Query), nil)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Msg("search failed")
		response.InternalError(w, "Search failed")
		return
	}
	response.OK(w, result)
}

// Search handles GET /search. "q" carries a natural-language query;
// the remaining parameters form a manual filter used when q is absent
// or cannot be translated.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	manual, errMsg := manualIntent(r)
	if errMsg != "" {
		response.BadRequest(w, errMsg)
		return
	}

	result, err := h.service.Search(r.Context(), q, manual)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("search failed")
		response.InternalError(w, "Search failed")
		return
	}
	response.OK(w, result)
}

func manualIntent(r *http.Request) (*gemini.SearchIntent, string) {
	params := r.URL.Query()
	intent := &gemini.SearchIntent{
		FilterType:    params.Get("type"),
		SearchKeyword: params.Get("keyword"),
		TargetStatus:  params.Get("status"),
	}

	if day := params.Get("day"); day != "" {
		if !validator.IsWeekday(day) {
			return nil, "Invalid weekday"
		}
		intent.Day = day
	}

	if raw := params.Get("capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, "Invalid capacity"
		}
		intent.MinCapacity = &n
	}

	if raw := params.Get("equipment"); raw != "" {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				intent.Equipment = append(intent.Equipment, item)
			}
		}
	}

	if raw := params.Get("time_start"); raw != "" {
		start, err := clock.ParseClock(raw)
		if err != nil {
			return nil, "Invalid time_start. Use the form \"9:00 AM\""
		}
		intent.TimeStart = &start
	}
	if raw := params.Get("time_end"); raw != "" {
		end, err := clock.ParseClock(raw)
		if err != nil {
			return nil, "Invalid time_end. Use the form \"9:00 AM\""
		}
		intent.TimeEnd = &end
	}

	return intent, ""
}
