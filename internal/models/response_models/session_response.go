package response_models

import (
	"time"

	"carebridge/internal/models/db_models"
)

type SessionResponse struct {
	ID           uint       `json:"id"`
	TherapistID  uint       `json:"therapist_id"`
	ClientID     uint       `json:"client_id"`
	Client       *PersonRef `json:"client,omitempty"`
	Therapist    *PersonRef `json:"therapist,omitempty"`
	StartsAt     time.Time  `json:"starts_at"`
	DurationMin  int        `json:"duration_min"`
	Status       string     `json:"status"`
	Type         string     `json:"type"`
	NotesPreview string     `json:"notes_preview,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewSessionResponse(s *db_models.Session) SessionResponse {
	out := SessionResponse{
		ID:           s.ID,
		TherapistID:  s.TherapistID,
		ClientID:     s.ClientAccountID,
		StartsAt:     s.StartsAt.UTC(),
		DurationMin:  s.DurationMin,
		Status:       string(s.Status),
		Type:         string(s.Type),
		NotesPreview: s.NotesPreview,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.Client.ID != 0 {
		out.Client = &PersonRef{ID: s.Client.ID, Name: s.Client.Name}
	}
	if s.Therapist.ID != 0 {
		out.Therapist = &PersonRef{ID: s.Therapist.ID, Name: s.Therapist.Name}
	}
	return out
}

func NewSessionResponses(sessions []db_models.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, NewSessionResponse(&sessions[i]))
	}
	return out
}

type NoteResponse struct {
	ID        uint      `json:"id"`
	SessionID uint      `json:"session_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewNoteResponse(n *db_models.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		SessionID: n.SessionID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func NewNoteResponses(notes []db_models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, NewNoteResponse(&notes[i]))
	}
	return out
}
