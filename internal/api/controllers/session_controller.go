package controllers

import (
	"carebridge/internal/models/request_models"
	"carebridge/internal/services"
	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
}

func NewSessionController(sessionService services.SessionServiceInterface) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// ListSessions godoc
// @Summary List the therapist's sessions
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param status query string false "scheduled, completed, canceled or no_show"
// @Param client_id query int false "Client account id"
// @Param from query string false "RFC3339 or YYYY-MM-DD, inclusive"
// @Param to query string false "RFC3339 or YYYY-MM-DD, exclusive"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /therapists/{id}/sessions [get]
func (s *SessionController) ListSessions(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var query request_models.ListSessionsQuery
	if !utils.BindQuery(c, &query) {
		return
	}

	sessions, err := s.sessionService.ListSessions(c.Request.Context(), identity.AccountID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sessions, "")
}

// CreateSession godoc
// @Summary Schedule a session with an actively linked client
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param request body request_models.CreateSessionRequest true "Session payload"
// @Success 201 {object} utils.APIResponse{data=response_models.SessionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /therapists/{id}/sessions [post]
func (s *SessionController) CreateSession(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.CreateSessionRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	session, err := s.sessionService.CreateSession(c.Request.Context(), identity.AccountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, session, "Session scheduled")
}

// GetSession godoc
// @Summary Get one session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Success 200 {object} utils.APIResponse{data=response_models.SessionResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid} [get]
func (s *SessionController) GetSession(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	sessionID, ok := pathID(c, "sid")
	if !ok {
		return
	}

	session, err := s.sessionService.GetSession(c.Request.Context(), identity.AccountID, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "")
}

// UpdateSession godoc
// @Summary Patch, complete, cancel or reschedule a session
// @Description A starts_at value reschedules the session back to scheduled
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Param request body request_models.UpdateSessionRequest true "Partial patch"
// @Success 200 {object} utils.APIResponse{data=response_models.SessionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid} [patch]
func (s *SessionController) UpdateSession(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	sessionID, ok := pathID(c, "sid")
	if !ok {
		return
	}
	var req request_models.UpdateSessionRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	session, err := s.sessionService.UpdateSession(c.Request.Context(), identity.AccountID, sessionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session updated")
}

// DeleteSession godoc
// @Summary Delete a session and its notes
// @Tags Sessions
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid} [delete]
func (s *SessionController) DeleteSession(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	sessionID, ok := pathID(c, "sid")
	if !ok {
		return
	}

	if err := s.sessionService.DeleteSession(c.Request.Context(), identity.AccountID, sessionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
