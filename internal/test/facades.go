package test

import (
	"context"
	"time"

	"github.com/polkiloo/registrar/internal/domain/model"
)

// RegistrarFacadeStub simulates facade interactions for HTTP layer tests.
type RegistrarFacadeStub struct {
	RegisterFn     func(context.Context, model.RegistrationInput) (*model.Registration, error)
	AuthenticateFn func(context.Context, string) (*model.User, error)
	EmailTakenFn   func(context.Context, string) (bool, error)
	HealthFn       func(context.Context) error
}

// Register returns a successful registration unless overridden.
func (s RegistrarFacadeStub) Register(ctx context.Context, input model.RegistrationInput) (*model.Registration, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, input)
	}
	now := time.Unix(0, 0).UTC()
	return &model.Registration{
		Message:     model.RegistrationMessage,
		User:        &model.User{ID: 1, Name: input.Name, Email: input.Email, PasswordHash: "hash:" + input.Password, CreatedAt: now, UpdatedAt: now},
		AccessToken: "token",
		TokenType:   model.TokenType,
	}, nil
}

// Authenticate resolves any token to user 1 unless overridden.
func (s RegistrarFacadeStub) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	now := time.Unix(0, 0).UTC()
	return &model.User{ID: 1, Name: "Ana", Email: "ana@example.com", CreatedAt: now, UpdatedAt: now}, nil
}

// EmailTaken reports every address as free unless overridden.
func (s RegistrarFacadeStub) EmailTaken(ctx context.Context, email string) (bool, error) {
	if s.EmailTakenFn != nil {
		return s.EmailTakenFn(ctx, email)
	}
	return false, nil
}

// HealthCheck reports a healthy backend unless overridden.
func (s RegistrarFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
