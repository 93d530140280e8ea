package controllers

import (
	"carebridge/internal/models/request_models"
	"carebridge/internal/services"
	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientPortalController serves the /client routes. The caller is always the
// client themself, so no path carries an account id.
type ClientPortalController struct {
	continuityService services.ContinuityServiceInterface
	sessionService    services.SessionServiceInterface
}

func NewClientPortalController(
	continuityService services.ContinuityServiceInterface,
	sessionService services.SessionServiceInterface,
) *ClientPortalController {
	return &ClientPortalController{
		continuityService: continuityService,
		sessionService:    sessionService,
	}
}

// Today godoc
// @Summary Today's continuity summary
// @Description Daily prompt, streak, whether the client checked in today, next session, active goal and current therapist
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.TodayResponse}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /client/today [get]
func (p *ClientPortalController) Today(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	today, err := p.continuityService.Today(c.Request.Context(), identity.AccountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, today, "")
}

// ListCheckins godoc
// @Summary The client's check-ins, newest first
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param limit query int false "1..100, default 30"
// @Success 200 {object} utils.APIResponse
// @Router /client/checkins [get]
func (p *ClientPortalController) ListCheckins(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var query request_models.ListCheckinsQuery
	if !utils.BindQuery(c, &query) {
		return
	}

	checkins, err := p.continuityService.ListCheckins(c.Request.Context(), identity.AccountID, query.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkins, "")
}

// CreateCheckin godoc
// @Summary Record a check-in
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateCheckinRequest true "Check-in payload"
// @Success 201 {object} utils.APIResponse{data=response_models.CheckinResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /client/checkins [post]
func (p *ClientPortalController) CreateCheckin(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.CreateCheckinRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	checkin, err := p.continuityService.RecordCheckin(c.Request.Context(), identity.AccountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, checkin, "Check-in recorded")
}

// ListSessions godoc
// @Summary The client's sessions
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param upcoming query bool false "Only scheduled sessions from now on"
// @Success 200 {object} utils.APIResponse
// @Router /client/sessions [get]
func (p *ClientPortalController) ListSessions(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var query request_models.ListClientSessionsQuery
	if !utils.BindQuery(c, &query) {
		return
	}

	sessions, err := p.sessionService.ListClientSessions(c.Request.Context(), identity.AccountID, query.Upcoming)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sessions, "")
}

// ListGoals godoc
// @Summary The client's goals
// @Tags Client
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, paused or done"
// @Success 200 {object} utils.APIResponse
// @Router /client/goals [get]
func (p *ClientPortalController) ListGoals(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var query request_models.ListGoalsQuery
	if !utils.BindQuery(c, &query) {
		return
	}

	goals, err := p.continuityService.ListGoals(c.Request.Context(), identity.AccountID, query.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goals, "")
}

// CreateGoal godoc
// @Summary Create a goal
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateGoalRequest true "Goal payload"
// @Success 201 {object} utils.APIResponse{data=response_models.GoalResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /client/goals [post]
func (p *ClientPortalController) CreateGoal(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.CreateGoalRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	goal, err := p.continuityService.CreateGoal(c.Request.Context(), identity.AccountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, goal, "Goal created")
}

// UpdateGoal godoc
// @Summary Rename a goal or change its status
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gid path int true "Goal id"
// @Param request body request_models.UpdateGoalRequest true "Partial patch"
// @Success 200 {object} utils.APIResponse{data=response_models.GoalResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /client/goals/{gid} [patch]
func (p *ClientPortalController) UpdateGoal(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "gid")
	if !ok {
		return
	}
	var req request_models.UpdateGoalRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	goal, err := p.continuityService.UpdateGoal(c.Request.Context(), identity.AccountID, goalID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, goal, "Goal updated")
}

// AddGoalUpdate godoc
// @Summary Log progress on a goal
// @Tags Client
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gid path int true "Goal id"
// @Param request body request_models.CreateGoalUpdateRequest true "Rating and/or note"
// @Success 201 {object} utils.APIResponse{data=response_models.GoalUpdateResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /client/goals/{gid}/updates [post]
func (p *ClientPortalController) AddGoalUpdate(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	goalID, ok := pathID(c, "gid")
	if !ok {
		return
	}
	var req request_models.CreateGoalUpdateRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	update, err := p.continuityService.AddGoalUpdate(c.Request.Context(), identity.AccountID, goalID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, update, "Goal update recorded")
}
