package db_models

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCanceled  SessionStatus = "canceled"
	SessionNoShow    SessionStatus = "no_show"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCanceled, SessionNoShow:
		return true
	}
	return false
}

func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCanceled || s == SessionNoShow
}

type SessionType string

const (
	SessionInPerson SessionType = "in_person"
	SessionVideo    SessionType = "video"
	SessionPhone    SessionType = "phone"
)

type Session struct {
	BaseModel
	TherapistID     uint          `gorm:"not null;index:idx_sessions_therapist_starts"`
	ClientAccountID uint          `gorm:"not null;index"`
	StartsAt        time.Time     `gorm:"not null;index:idx_sessions_therapist_starts"`
	DurationMin     int           `gorm:"not null"`
	Status          SessionStatus `gorm:"type:varchar(16);not null;index"`
	Type            SessionType   `gorm:"type:varchar(16);not null"`
	NotesPreview    string

	Therapist Account `gorm:"foreignKey:TherapistID;constraint:OnDelete:CASCADE"`
	Client    Account `gorm:"foreignKey:ClientAccountID;constraint:OnDelete:CASCADE"`
	Notes     []Note  `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
