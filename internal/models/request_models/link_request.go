package request_models

type CreateClientRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"omitempty,max=80"`
}

type UpdateLinkStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused"`
}

type ListCheckinsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
