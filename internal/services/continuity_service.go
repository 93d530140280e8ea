package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carebridge/internal/continuity"
	dbm "carebridge/internal/models/db_models"
	"carebridge/internal/models/request_models"
	"carebridge/internal/models/response_models"
	"carebridge/internal/repositories"
	"carebridge/pkg/utils"

	"go.uber.org/zap"
)

type ContinuityServiceInterface interface {
	Today(ctx context.Context, clientID uint) (*response_models.TodayResponse, error)
	RecordCheckin(ctx context.Context, clientID uint, request request_models.CreateCheckinRequest) (*response_models.CheckinResponse, error)
	ListCheckins(ctx context.Context, clientID uint, limit int) ([]response_models.CheckinResponse, error)

	CreateGoal(ctx context.Context, clientID uint, request request_models.CreateGoalRequest) (*response_models.GoalResponse, error)
	ListGoals(ctx context.Context, clientID uint, status string) ([]response_models.GoalResponse, error)
	UpdateGoal(ctx context.Context, clientID, goalID uint, request request_models.UpdateGoalRequest) (*response_models.GoalResponse, error)
	AddGoalUpdate(ctx context.Context, clientID, goalID uint, request request_models.CreateGoalUpdateRequest) (*response_models.GoalUpdateResponse, error)
}

type ContinuityService struct {
	checkinRepo repositories.CheckinRepository
	goalRepo    repositories.GoalRepository
	sessionRepo repositories.SessionRepository
	linkRepo    repositories.LinkRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewContinuityService(
	checkinRepo repositories.CheckinRepository,
	goalRepo repositories.GoalRepository,
	sessionRepo repositories.SessionRepository,
	linkRepo repositories.LinkRepository,
	log *zap.Logger,
) ContinuityServiceInterface {
	return &ContinuityService{
		checkinRepo: checkinRepo,
		goalRepo:    goalRepo,
		sessionRepo: sessionRepo,
		linkRepo:    linkRepo,
		log:         log,
		now:         time.Now,
	}
}

func (c *ContinuityService) Today(ctx context.Context, clientID uint) (*response_models.TodayResponse, error) {
	now := c.now().UTC()
	resp := &response_models.TodayResponse{
		Date:   utils.DayKey(now),
		Prompt: continuity.PromptFor(now),
	}

	daily, err := c.checkinRepo.RecentByType(ctx, clientID, dbm.CheckinDaily, continuity.StreakWindow)
	if err != nil {
		return nil, c.dbError("recent daily checkins", err)
	}
	times := make([]time.Time, 0, len(daily))
	for _, ci := range daily {
		times = append(times, ci.CreatedAt)
	}
	resp.Streak = continuity.Streak(times, now)

	latest, err := c.checkinRepo.Latest(ctx, clientID)
	if err != nil {
		return nil, c.dbError("latest checkin", err)
	}
	if latest != nil {
		resp.CheckedInToday = continuity.CheckedInToday(&latest.CreatedAt, now)
	}

	next, err := c.sessionRepo.NextScheduledForClient(ctx, clientID, now)
	if err != nil {
		return nil, c.dbError("next session", err)
	}
	if next != nil {
		s := response_models.NewSessionResponse(next)
		resp.NextSession = &s
	}

	goal, err := c.goalRepo.LatestActive(ctx, clientID)
	if err != nil {
		return nil, c.dbError("active goal", err)
	}
	if goal != nil {
		summary := &response_models.GoalSummary{GoalResponse: response_models.NewGoalResponse(goal)}
		update, err := c.goalRepo.LatestUpdate(ctx, goal.ID)
		if err != nil {
			return nil, c.dbError("latest goal update", err)
		}
		if update != nil {
			u := response_models.NewGoalUpdateResponse(update)
			summary.LatestUpdate = &u
		}
		resp.ActiveGoal = summary
	}

	link, err := c.linkRepo.FindLatestActiveForClient(ctx, clientID)
	if err != nil {
		return nil, c.dbError("active link", err)
	}
	if link != nil {
		resp.Therapist = &response_models.PersonRef{ID: link.TherapistID, Name: link.Therapist.Name}
	}

	return resp, nil
}

// RecordCheckin appends a check-in. The therapist id is snapshotted from the
// referenced session, or else from the client's most recent active link.
func (c *ContinuityService) RecordCheckin(ctx context.Context, clientID uint, request request_models.CreateCheckinRequest) (*response_models.CheckinResponse, error) {
	checkinType := dbm.CheckinType(request.Type)
	if checkinType == "" {
		checkinType = dbm.CheckinDaily
	}

	verr := &utils.ValidationError{}
	switch checkinType {
	case dbm.CheckinDaily, dbm.CheckinPreSession, dbm.CheckinPostSession:
	default:
		verr.Add("type", "must be one of: daily, pre_session, post_session")
	}
	checkScale(verr, "mood", &request.Mood)
	checkScale(verr, "anxiety", request.Anxiety)
	checkScale(verr, "energy", request.Energy)
	if request.SleepHours != nil && (*request.SleepHours < 0 || *request.SleepHours > 24) {
		verr.Add("sleep_hours", "must be between 0 and 24")
	}
	note := trimOptional(request.Note)
	if note != nil && len(*note) > 4000 {
		verr.Add("note", "must be at most 4000")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	checkin := &dbm.CheckIn{
		ClientAccountID: clientID,
		Type:            checkinType,
		Mood:            request.Mood,
		Anxiety:         request.Anxiety,
		Energy:          request.Energy,
		SleepHours:      request.SleepHours,
		Note:            note,
		CreatedAt:       c.now().UTC(),
	}

	if request.SessionID != nil {
		session, err := c.sessionRepo.FindForClient(ctx, clientID, *request.SessionID)
		if err != nil {
			return nil, c.dbError("find session", err)
		}
		if session == nil {
			return nil, utils.ErrNotFound
		}
		checkin.SessionID = &session.ID
		checkin.TherapistID = &session.TherapistID
	} else {
		therapistID, err := c.currentTherapist(ctx, clientID)
		if err != nil {
			return nil, err
		}
		checkin.TherapistID = therapistID
	}

	if err := c.checkinRepo.Create(ctx, checkin); err != nil {
		return nil, c.dbError("create checkin", err)
	}
	resp := response_models.NewCheckinResponse(checkin)
	return &resp, nil
}

func (c *ContinuityService) ListCheckins(ctx context.Context, clientID uint, limit int) ([]response_models.CheckinResponse, error) {
	checkins, err := c.checkinRepo.ListByClient(ctx, clientID, normalizeLimit(limit))
	if err != nil {
		return nil, c.dbError("list checkins", err)
	}
	return response_models.NewCheckinResponses(checkins), nil
}

func (c *ContinuityService) CreateGoal(ctx context.Context, clientID uint, request request_models.CreateGoalRequest) (*response_models.GoalResponse, error) {
	title, err := cleanGoalTitle(request.Title)
	if err != nil {
		return nil, err
	}
	therapistID, err := c.currentTherapist(ctx, clientID)
	if err != nil {
		return nil, err
	}

	goal := &dbm.Goal{
		ClientAccountID: clientID,
		TherapistID:     therapistID,
		Title:           title,
		Status:          dbm.GoalActive,
	}
	if err := c.goalRepo.Create(ctx, goal); err != nil {
		return nil, c.dbError("create goal", err)
	}
	resp := response_models.NewGoalResponse(goal)
	return &resp, nil
}

func (c *ContinuityService) ListGoals(ctx context.Context, clientID uint, status string) ([]response_models.GoalResponse, error) {
	var filter *dbm.GoalStatus
	if status != "" {
		st, ok := parseGoalStatus(status)
		if !ok {
			return nil, utils.NewValidationError("status", "must be one of: active, paused, done")
		}
		filter = &st
	}

	goals, err := c.goalRepo.ListByClient(ctx, clientID, filter)
	if err != nil {
		return nil, c.dbError("list goals", err)
	}
	return response_models.NewGoalResponses(goals), nil
}

func (c *ContinuityService) UpdateGoal(ctx context.Context, clientID, goalID uint, request request_models.UpdateGoalRequest) (*response_models.GoalResponse, error) {
	goal, err := c.goalRepo.FindOwned(ctx, clientID, goalID)
	if err != nil {
		return nil, c.dbError("find goal", err)
	}
	if goal == nil {
		return nil, utils.ErrNotFound
	}

	verr := &utils.ValidationError{}
	if request.Title != nil {
		title, err := cleanGoalTitle(*request.Title)
		if err != nil {
			verr.Add("title", "must be between 2 and 200 characters")
		}
		goal.Title = title
	}
	if request.Status != nil {
		st, ok := parseGoalStatus(*request.Status)
		if !ok {
			verr.Add("status", "must be one of: active, paused, done")
		}
		goal.Status = st
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := c.goalRepo.Save(ctx, goal); err != nil {
		return nil, c.dbError("save goal", err)
	}
	resp := response_models.NewGoalResponse(goal)
	return &resp, nil
}

func (c *ContinuityService) AddGoalUpdate(ctx context.Context, clientID, goalID uint, request request_models.CreateGoalUpdateRequest) (*response_models.GoalUpdateResponse, error) {
	verr := &utils.ValidationError{}
	checkScale(verr, "rating", request.Rating)
	note := trimOptional(request.Note)
	if note != nil && len(*note) > 4000 {
		verr.Add("note", "must be at most 4000")
	}
	if request.Rating == nil && note == nil {
		verr.Add("rating", "rating or note is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	goal, err := c.goalRepo.FindOwned(ctx, clientID, goalID)
	if err != nil {
		return nil, c.dbError("find goal", err)
	}
	if goal == nil {
		return nil, utils.ErrNotFound
	}

	update := &dbm.GoalUpdate{
		Rating:    request.Rating,
		Note:      note,
		CreatedAt: c.now().UTC(),
	}
	if err := c.goalRepo.AddUpdate(ctx, goal, update); err != nil {
		return nil, c.dbError("add goal update", err)
	}
	resp := response_models.NewGoalUpdateResponse(update)
	return &resp, nil
}

func (c *ContinuityService) currentTherapist(ctx context.Context, clientID uint) (*uint, error) {
	link, err := c.linkRepo.FindLatestActiveForClient(ctx, clientID)
	if err != nil {
		return nil, c.dbError("find active link", err)
	}
	if link == nil {
		return nil, nil
	}
	id := link.TherapistID
	return &id, nil
}

func (c *ContinuityService) dbError(op string, err error) error {
	c.log.Error("continuity storage failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, op, err)
}

// checkScale validates an optional 1..10 rating.
func checkScale(verr *utils.ValidationError, field string, v *int) {
	if v != nil && (*v < 1 || *v > 10) {
		verr.Add(field, "must be between 1 and 10")
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func cleanGoalTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := len([]rune(title)); n < 2 || n > 200 {
		return "", utils.NewValidationError("title", "must be between 2 and 200 characters")
	}
	return title, nil
}

func parseGoalStatus(raw string) (dbm.GoalStatus, bool) {
	switch st := dbm.GoalStatus(raw); st {
	case dbm.GoalActive, dbm.GoalPaused, dbm.GoalDone:
		return st, true
	default:
		return st, false
	}
}
