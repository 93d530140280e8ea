package db_models

// Note is a therapist's clinical note, always addressed by (SessionID, TherapistID).
type Note struct {
	BaseModel
	SessionID   uint   `gorm:"not null;index:idx_notes_session_therapist"`
	TherapistID uint   `gorm:"not null;index:idx_notes_session_therapist"`
	Content     string `gorm:"type:text;not null"`
}
