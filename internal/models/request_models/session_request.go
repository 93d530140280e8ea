package request_models

import "time"

type CreateSessionRequest struct {
	ClientID     uint      `json:"client_id" binding:"required"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	DurationMin  int       `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Type         string    `json:"type" binding:"omitempty,oneof=in_person video phone"`
	NotesPreview string    `json:"notes_preview" binding:"omitempty,max=500"`
}

// UpdateSessionRequest is a partial patch; nil fields are left unchanged.
// A starts_at value reschedules the session.
type UpdateSessionRequest struct {
	StartsAt     *time.Time `json:"starts_at"`
	DurationMin  *int       `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Status       *string    `json:"status" binding:"omitempty,oneof=scheduled completed canceled no_show"`
	Type         *string    `json:"type" binding:"omitempty,oneof=in_person video phone"`
	NotesPreview *string    `json:"notes_preview" binding:"omitempty,max=500"`
}

func (r UpdateSessionRequest) Empty() bool {
	return r.StartsAt == nil && r.DurationMin == nil && r.Status == nil && r.Type == nil && r.NotesPreview == nil
}

type ListSessionsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=scheduled completed canceled no_show"`
	ClientID uint   `form:"client_id"`
	From     string `form:"from"`
	To       string `form:"to"`
}

type ListClientSessionsQuery struct {
	Upcoming bool `form:"upcoming"`
}
