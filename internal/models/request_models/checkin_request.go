package request_models

type CreateCheckinRequest struct {
	Type       string   `json:"type" binding:"omitempty,oneof=daily pre_session post_session"`
	SessionID  *uint    `json:"session_id"`
	Mood       int      `json:"mood" binding:"required,min=1,max=10"`
	Anxiety    *int     `json:"anxiety" binding:"omitempty,min=1,max=10"`
	Energy     *int     `json:"energy" binding:"omitempty,min=1,max=10"`
	SleepHours *float64 `json:"sleep_hours" binding:"omitempty,min=0,max=24"`
	Note       *string  `json:"note" binding:"omitempty,max=4000"`
}

type CreateGoalRequest struct {
	Title string `json:"title" binding:"required,min=2,max=200"`
}

type UpdateGoalRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=2,max=200"`
	Status *string `json:"status" binding:"omitempty,oneof=active paused done"`
}

type CreateGoalUpdateRequest struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=10"`
	Note   *string `json:"note" binding:"omitempty,max=4000"`
}

type ListGoalsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active paused done"`
}
