package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/registrar/internal/server/http/dto"
)

// UserHandler exposes the authenticated user.
type UserHandler struct{}

// NewUserHandler creates UserHandler instance.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /user.
func (h *UserHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
