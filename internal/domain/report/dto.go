package report

import "time"

// CreateRequest is the payload for filing a maintenance report.
type CreateRequest struct {
	Description string `json:"description" validate:"required,min=10,max=2000"`
}

// Response is a report as returned to clients.
type Response struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	ReporterID  string `json:"reporter_id"`
	Description string `json:"description"`

	Category        string `json:"category,omitempty"`
	Urgency         string `json:"urgency,omitempty"`
	Summary         string `json:"summary,omitempty"`
	SuggestedAction string `json:"suggested_action,omitempty"`

	Status     string  `json:"status"`
	ResolvedAt *string `json:"resolved_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func (r *Report) ToResponse() *Response {
	resp := &Response{
		ID:              r.ID.String(),
		RoomID:          r.RoomID.String(),
		ReporterID:      r.ReporterID.String(),
		Description:     r.Description,
		Category:        r.Category,
		Urgency:         r.Urgency,
		Summary:         r.Summary,
		SuggestedAction: r.SuggestedAction,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		s := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &s
	}
	return resp
}
