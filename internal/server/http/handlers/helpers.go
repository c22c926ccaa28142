package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/server/http/dto"
	"github.com/polkiloo/registrar/internal/server/http/middleware"
)

const (
	internalErrorMessage = "Ocorreu um erro interno no servidor. Por favor, tente novamente mais tarde"
	invalidDataMessage   = "Os dados fornecidos são inválidos."
	malformedBodyMessage = "O corpo da requisição não é um JSON válido."
	emailTakenMessage    = "O e-mail informado já está em uso."
	unavailableMessage   = "Serviço indisponível."
	healthyMessage       = "ok"
	helloMessage         = "Hello World"
)

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

// decodeJSON treats an empty body as an empty object so that required
// fields are reported by validation rather than as malformed input.
func decodeJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return nil
	}
	err := json.NewDecoder(c.Request.Body).Decode(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.MessageResponse{Message: internalErrorMessage})
}
