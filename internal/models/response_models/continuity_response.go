package response_models

import (
	"time"

	"carebridge/internal/models/db_models"
)

type CheckinResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	SessionID   *uint     `json:"session_id,omitempty"`
	TherapistID *uint     `json:"therapist_id,omitempty"`
	Mood        int       `json:"mood"`
	Anxiety     *int      `json:"anxiety,omitempty"`
	Energy      *int      `json:"energy,omitempty"`
	SleepHours  *float64  `json:"sleep_hours,omitempty"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCheckinResponse(c *db_models.CheckIn) CheckinResponse {
	return CheckinResponse{
		ID:          c.ID,
		Type:        string(c.Type),
		SessionID:   c.SessionID,
		TherapistID: c.TherapistID,
		Mood:        c.Mood,
		Anxiety:     c.Anxiety,
		Energy:      c.Energy,
		SleepHours:  c.SleepHours,
		Note:        c.Note,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

func NewCheckinResponses(checkins []db_models.CheckIn) []CheckinResponse {
	out := make([]CheckinResponse, 0, len(checkins))
	for i := range checkins {
		out = append(out, NewCheckinResponse(&checkins[i]))
	}
	return out
}

type GoalUpdateResponse struct {
	ID        uint      `json:"id"`
	Rating    *int      `json:"rating,omitempty"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GoalResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	TherapistID *uint     `json:"therapist_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GoalSummary is a goal plus its latest update, if any.
type GoalSummary struct {
	GoalResponse
	LatestUpdate *GoalUpdateResponse `json:"latest_update,omitempty"`
}

func NewGoalResponse(g *db_models.Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Status:      string(g.Status),
		TherapistID: g.TherapistID,
		UpdatedAt:   g.UpdatedAt,
	}
}

func NewGoalResponses(goals []db_models.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, NewGoalResponse(&goals[i]))
	}
	return out
}

func NewGoalUpdateResponse(u *db_models.GoalUpdate) GoalUpdateResponse {
	return GoalUpdateResponse{
		ID:        u.ID,
		Rating:    u.Rating,
		Note:      u.Note,
		CreatedAt: u.CreatedAt,
	}
}

type TodayResponse struct {
	Date           string           `json:"date"`
	Prompt         string           `json:"prompt"`
	Streak         int              `json:"streak"`
	CheckedInToday bool             `json:"checked_in_today"`
	NextSession    *SessionResponse `json:"next_session,omitempty"`
	ActiveGoal     *GoalSummary     `json:"active_goal,omitempty"`
	Therapist      *PersonRef       `json:"therapist,omitempty"`
}
