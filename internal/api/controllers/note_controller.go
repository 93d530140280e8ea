package controllers

import (
	"carebridge/internal/models/request_models"
	"carebridge/internal/services"
	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	noteService services.NoteServiceInterface
}

func NewNoteController(noteService services.NoteServiceInterface) *NoteController {
	return &NoteController{
		noteService: noteService,
	}
}

// sessionScope resolves the therapist and session of a notes route.
func sessionScope(c *gin.Context) (therapistID, sessionID uint, ok bool) {
	identity, ok := caller(c)
	if !ok {
		return 0, 0, false
	}
	sessionID, ok = pathID(c, "sid")
	return identity.AccountID, sessionID, ok
}

// ListNotes godoc
// @Summary List a session's notes, newest first
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid}/notes [get]
func (n *NoteController) ListNotes(c *gin.Context) {
	therapistID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}

	notes, err := n.noteService.ListNotes(c.Request.Context(), therapistID, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notes, "")
}

// CreateNote godoc
// @Summary Add a note to a session
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Param request body request_models.NoteRequest true "Note content"
// @Success 201 {object} utils.APIResponse{data=response_models.NoteResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid}/notes [post]
func (n *NoteController) CreateNote(c *gin.Context) {
	therapistID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	var req request_models.NoteRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	note, err := n.noteService.CreateNote(c.Request.Context(), therapistID, sessionID, req.Content)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, note, "Note created")
}

// GetNote godoc
// @Summary Get one note
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Param nid path int true "Note id"
// @Success 200 {object} utils.APIResponse{data=response_models.NoteResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid}/notes/{nid} [get]
func (n *NoteController) GetNote(c *gin.Context) {
	therapistID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	noteID, ok := pathID(c, "nid")
	if !ok {
		return
	}

	note, err := n.noteService.GetNote(c.Request.Context(), therapistID, sessionID, noteID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "")
}

// UpdateNote godoc
// @Summary Replace a note's content
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Param nid path int true "Note id"
// @Param request body request_models.NoteRequest true "Note content"
// @Success 200 {object} utils.APIResponse{data=response_models.NoteResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid}/notes/{nid} [patch]
func (n *NoteController) UpdateNote(c *gin.Context) {
	therapistID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	noteID, ok := pathID(c, "nid")
	if !ok {
		return
	}
	var req request_models.NoteRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	note, err := n.noteService.UpdateNote(c.Request.Context(), therapistID, sessionID, noteID, req.Content)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, note, "Note updated")
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags Notes
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param sid path int true "Session id"
// @Param nid path int true "Note id"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/sessions/{sid}/notes/{nid} [delete]
func (n *NoteController) DeleteNote(c *gin.Context) {
	therapistID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	noteID, ok := pathID(c, "nid")
	if !ok {
		return
	}

	if err := n.noteService.DeleteNote(c.Request.Context(), therapistID, sessionID, noteID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
