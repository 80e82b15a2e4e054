package schedule

import "time"

// CreateRequest is the admin payload for adding a reservation.
type CreateRequest struct {
	Day       string `json:"day" validate:"required,weekday"`
	Subject   string `json:"subject" validate:"required,min=1,max=200"`
	Professor string `json:"professor" validate:"required,min=1,max=100"`
	StartTime string `json:"start_time" validate:"required,clock12"`
	EndTime   string `json:"end_time" validate:"required,clock12"`
}

// UpdateRequest carries partial fields for editing a reservation.
type UpdateRequest struct {
	Day       *string `json:"day" validate:"omitempty,weekday"`
	Subject   *string `json:"subject" validate:"omitempty,min=1,max=200"`
	Professor *string `json:"professor" validate:"omitempty,min=1,max=100"`
	StartTime *string `json:"start_time" validate:"omitempty,clock12"`
	EndTime   *string `json:"end_time" validate:"omitempty,clock12"`
}

// Response is a reservation as returned to clients.
type Response struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Day       string `json:"day"`
	Subject   string `json:"subject"`
	Professor string `json:"professor"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ConflictDetails describes the blocking reservation in a 409 body.
type ConflictDetails struct {
	Subject   string `json:"subject"`
	Professor string `json:"professor"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// WeekResponse groups a room's reservations by weekday, every day
// present even when empty.
type WeekResponse map[string][]*Response

func (r *Reservation) ToResponse() *Response {
	return &Response{
		ID:        r.ID.String(),
		RoomID:    r.RoomID.String(),
		Day:       r.Day,
		Subject:   r.Subject,
		Professor: r.Professor,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}
