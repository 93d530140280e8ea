package db_models

type Role string

const (
	RoleTherapist Role = "therapist"
	RoleClient    Role = "client"
)

func (r Role) Valid() bool {
	return r == RoleTherapist || r == RoleClient
}

type Account struct {
	BaseModel
	Role         Role   `gorm:"type:varchar(16);not null;index"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
}
