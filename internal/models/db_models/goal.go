package db_models

import "time"

type GoalStatus string

const (
	GoalActive GoalStatus = "active"
	GoalPaused GoalStatus = "paused"
	GoalDone   GoalStatus = "done"
)

type Goal struct {
	BaseModel
	ClientAccountID uint       `gorm:"not null;index:idx_goals_client_status"`
	TherapistID     *uint      `gorm:"index"`
	Title           string     `gorm:"not null"`
	Status          GoalStatus `gorm:"type:varchar(16);not null;index:idx_goals_client_status"`

	Client  Account      `gorm:"foreignKey:ClientAccountID;constraint:OnDelete:CASCADE"`
	Updates []GoalUpdate `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}

// GoalUpdate is an append-only progress entry on a goal.
type GoalUpdate struct {
	ID        uint `gorm:"primaryKey"`
	GoalID    uint `gorm:"not null;index"`
	Rating    *int
	Note      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}
