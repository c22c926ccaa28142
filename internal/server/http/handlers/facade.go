package handlers

import (
	"context"

	"github.com/polkiloo/registrar/internal/domain/model"
)

// RegistrationFacade describes registration capabilities required by handlers.
type RegistrationFacade interface {
	Register(ctx context.Context, input model.RegistrationInput) (*model.Registration, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// AuthFacade resolves bearer tokens for protected routes.
type AuthFacade interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// HealthFacade reports backend availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// RegistrarFacade aggregates the full set of operations used across handlers.
type RegistrarFacade interface {
	RegistrationFacade
	AuthFacade
	HealthFacade
}
