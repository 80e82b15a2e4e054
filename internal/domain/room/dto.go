package room

import "time"

// CreateRequest is the admin payload for creating a room.
type CreateRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	Type      string   `json:"type" validate:"required,roomtype"`
	Capacity  int      `json:"capacity" validate:"required,gt=0"`
	Equipment []string `json:"equipment"`
	Status    string   `json:"status" validate:"omitempty,roomstatus"`
}

// UpdateRequest carries partial fields for editing a room. Nil pointers
// leave the stored value untouched.
type UpdateRequest struct {
	Name      *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Type      *string   `json:"type" validate:"omitempty,roomtype"`
	Capacity  *int      `json:"capacity" validate:"omitempty,gt=0"`
	Equipment *[]string `json:"equipment"`
	Status    *string   `json:"status" validate:"omitempty,roomstatus"`
}

// Response is a room as returned to clients, stamped with its derived
// status for "now".
type Response struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment"`
	Status    string   `json:"status"`

	DerivedStatus string `json:"derived_status"`
	Color         string `json:"color"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ToResponse converts a room plus its resolved status.
func (r *Room) ToResponse(derived DerivedStatus, color string) *Response {
	return &Response{
		ID:            r.ID.String(),
		Name:          r.Name,
		Type:          r.Type,
		Capacity:      r.Capacity,
		Equipment:     r.EquipmentList(),
		Status:        string(r.Status),
		DerivedStatus: string(derived),
		Color:         color,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}
