package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/pkg/validation"
	"github.com/polkiloo/registrar/internal/server/http/dto"
)

// AuthHandler processes registration.
type AuthHandler struct {
	facade RegistrationFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade RegistrationFacade) *AuthHandler {
	validation.Init()
	return &AuthHandler{facade: facade}
}

// Register handles POST /v1/auth/registrar.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: malformedBodyMessage})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validation.Struct(&req); err != nil {
		fieldErrors := validation.ToErrors(err)
		if fieldErrors == nil {
			abortInternal(c)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Message: invalidDataMessage, Errors: fieldErrors})
		return
	}

	ctx := c.Request.Context()
	taken, err := h.facade.EmailTaken(ctx, req.Email)
	if err != nil {
		abortInternal(c)
		return
	}
	if taken {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: invalidDataMessage,
			Errors:  map[string][]string{"email": {emailTakenMessage}},
		})
		return
	}

	result, err := h.facade.Register(ctx, model.RegistrationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortInternal(c)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRegistrationResponse(result))
}
