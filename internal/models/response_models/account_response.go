package response_models

import (
	"time"

	"carebridge/internal/models/db_models"
)

type AccountResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// SignUpResponse reports how many pending invites were linked to the new account.
type SignUpResponse struct {
	AuthResponse
	LinkedInvites int64 `json:"linked_invites"`
}

func NewAccountResponse(a *db_models.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

type PersonRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
