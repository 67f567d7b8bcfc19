package handler

import (
	"log"
	"net/http"

	"budgetbook/internal/models"
	"budgetbook/internal/service"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user out of the gin context.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	return user, true
}

// fail maps a service error onto the HTTP boundary. Validation and
// not-found errors carry their message to the client; anything else is
// logged and replaced with a generic message.
func fail(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case service.IsNotFound(err):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}
