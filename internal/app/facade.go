package app

import (
	"context"

	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/domain/repository"
	"github.com/polkiloo/registrar/internal/usecase"
)

// RegistrarFacade exposes registration and authentication to the HTTP layer.
type RegistrarFacade struct {
	registration *usecase.RegistrationUseCase
	auth         *usecase.AuthUseCase
	health       repository.HealthChecker
}

// NewRegistrarFacade wires the use cases behind the HTTP handlers.
func NewRegistrarFacade(registration *usecase.RegistrationUseCase, auth *usecase.AuthUseCase, health repository.HealthChecker) *RegistrarFacade {
	return &RegistrarFacade{registration: registration, auth: auth, health: health}
}

// Register runs the registration workflow.
func (f *RegistrarFacade) Register(ctx context.Context, input model.RegistrationInput) (*model.Registration, error) {
	return f.registration.Register(ctx, input)
}

// Authenticate resolves the user owning a bearer token.
func (f *RegistrarFacade) Authenticate(ctx context.Context, token string) (*model.User, error) {
	return f.auth.Authenticate(ctx, token)
}

// EmailTaken reports whether email already belongs to a user.
func (f *RegistrarFacade) EmailTaken(ctx context.Context, email string) (bool, error) {
	return f.auth.EmailTaken(ctx, email)
}

// HealthCheck reports storage availability.
func (f *RegistrarFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
