package controllers

import (
	"strconv"

	"carebridge/pkg/middleware"
	"carebridge/pkg/utils"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter, writing a 400 when it is not one.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.HandleServiceError(c, utils.NewValidationError(name, "must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated identity. Routes without Authenticate
// never reach a handler that calls it.
func caller(c *gin.Context) (utils.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrMissingOrMalformedToken)
	}
	return identity, ok
}
