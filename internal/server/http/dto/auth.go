package dto

import (
	"time"

	"github.com/polkiloo/registrar/internal/domain/model"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,maxbytes=72"`
}

// UserResponse is the public view of a user. It never carries credentials.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegistrationResponse is returned with 201 after a successful registration.
type RegistrationResponse struct {
	Message     string       `json:"message"`
	Data        UserResponse `json:"data"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

// MessageResponse carries a single human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse lists messages per offending field.
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// NewUserResponse builds the public view of u.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewRegistrationResponse maps a completed registration to its response body.
func NewRegistrationResponse(r *model.Registration) RegistrationResponse {
	return RegistrationResponse{
		Message:     r.Message,
		Data:        NewUserResponse(r.User),
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
	}
}
