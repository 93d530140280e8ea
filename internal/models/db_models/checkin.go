package db_models

import "time"

type CheckinType string

const (
	CheckinDaily       CheckinType = "daily"
	CheckinPreSession  CheckinType = "pre_session"
	CheckinPostSession CheckinType = "post_session"
)

// CheckIn is append-only. TherapistID is a snapshot taken at creation.
type CheckIn struct {
	ID              uint        `gorm:"primaryKey"`
	ClientAccountID uint        `gorm:"not null;index:idx_checkins_client_created"`
	TherapistID     *uint       `gorm:"index"`
	SessionID       *uint       `gorm:"index"`
	Type            CheckinType `gorm:"type:varchar(16);not null;index"`
	Mood            int         `gorm:"not null"`
	Anxiety         *int
	Energy          *int
	SleepHours      *float64
	Note            *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null;index:idx_checkins_client_created"`

	Client  Account  `gorm:"foreignKey:ClientAccountID;constraint:OnDelete:CASCADE"`
	Session *Session `gorm:"foreignKey:SessionID;constraint:OnDelete:SET NULL"`
}

func (CheckIn) TableName() string {
	return "checkins"
}
