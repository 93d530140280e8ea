package controllers

import (
	"carebridge/internal/models/request_models"
	"carebridge/internal/services"
	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientController serves a therapist's client list: links and pending invites.
type ClientController struct {
	linkService services.LinkServiceInterface
}

func NewClientController(linkService services.LinkServiceInterface) *ClientController {
	return &ClientController{
		linkService: linkService,
	}
}

// ListClients godoc
// @Summary List clients and pending invites
// @Description Linked clients first (by name), then pending invites (newest first). Each entry carries a kind of "linked" or "invite".
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /therapists/{id}/clients [get]
func (cc *ClientController) ListClients(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	entries, err := cc.linkService.ListClients(c.Request.Context(), identity.AccountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "")
}

// CreateClient godoc
// @Summary Link a client or send an invite
// @Description Links an existing client account, otherwise records a pending invite for the email
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param request body request_models.CreateClientRequest true "Client email and optional display name"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /therapists/{id}/clients [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.CreateClientRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	entry, err := cc.linkService.CreateLinkOrInvite(c.Request.Context(), identity.AccountID, req.Email, req.Name)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Client linked"
	if entry.Ref().IsInvite() {
		message = "Invite created"
	}
	utils.RespondCreated(c, entry, message)
}

// UpdateClient godoc
// @Summary Pause or resume a link
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param clientId path string true "client_<id> or numeric account id"
// @Param request body request_models.UpdateLinkStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/clients/{clientId} [patch]
func (cc *ClientController) UpdateClient(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.UpdateLinkStatusRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	entry, err := cc.linkService.UpdateLinkStatus(c.Request.Context(), identity.AccountID, c.Param("clientId"), req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entry, "Link updated")
}

// RemoveClient godoc
// @Summary Unlink a client or cancel an invite
// @Tags Clients
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param clientId path string true "invite_<id>, client_<id> or numeric account id"
// @Success 204
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/clients/{clientId} [delete]
func (cc *ClientController) RemoveClient(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	if err := cc.linkService.RemoveLink(c.Request.Context(), identity.AccountID, c.Param("clientId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

// ListClientCheckins godoc
// @Summary A linked client's recent check-ins
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Therapist account id"
// @Param clientId path string true "client_<id> or numeric account id"
// @Param limit query int false "1..100, default 30"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /therapists/{id}/clients/{clientId}/checkins [get]
func (cc *ClientController) ListClientCheckins(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var query request_models.ListCheckinsQuery
	if !utils.BindQuery(c, &query) {
		return
	}

	checkins, err := cc.linkService.ListClientCheckins(c.Request.Context(), identity.AccountID, c.Param("clientId"), query.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkins, "")
}
