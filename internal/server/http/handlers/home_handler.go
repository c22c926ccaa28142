package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/registrar/internal/server/http/dto"
)

// HomeHandler serves the root and health endpoints.
type HomeHandler struct {
	facade HealthFacade
}

// NewHomeHandler creates HomeHandler instance.
func NewHomeHandler(facade HealthFacade) *HomeHandler {
	return &HomeHandler{facade: facade}
}

// Index handles GET /.
func (h *HomeHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: helloMessage})
}

// Health handles GET /health.
func (h *HomeHandler) Health(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.MessageResponse{Message: unavailableMessage})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: healthyMessage})
}
