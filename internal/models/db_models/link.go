package db_models

import "time"

type LinkStatus string

const (
	LinkInvited LinkStatus = "invited"
	LinkActive  LinkStatus = "active"
	LinkPaused  LinkStatus = "paused"
)

// Link is the therapist↔client relationship row. A row with a nil
// ClientAccountID is a pending invite addressed by Email.
type Link struct {
	BaseModel
	TherapistID     uint       `gorm:"not null;uniqueIndex:idx_links_therapist_client"`
	ClientAccountID *uint      `gorm:"uniqueIndex:idx_links_therapist_client;index"`
	Email           string     `gorm:"not null;index"`
	Name            string
	Status          LinkStatus `gorm:"type:varchar(16);not null;index"`
	// LinkedAt is set once, when the client account is attached.
	LinkedAt *time.Time

	Therapist Account  `gorm:"foreignKey:TherapistID;constraint:OnDelete:CASCADE"`
	Client    *Account `gorm:"foreignKey:ClientAccountID;constraint:OnDelete:CASCADE"`
}

func (l *Link) IsInvite() bool {
	return l.ClientAccountID == nil && l.Status == LinkInvited
}
