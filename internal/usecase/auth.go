package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/polkiloo/registrar/internal/domain/errors"
	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/domain/repository"
	pkgAuth "github.com/polkiloo/registrar/internal/pkg/auth"
)

// AuthUseCase resolves bearer tokens back to their owners.
type AuthUseCase struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	strategy pkgAuth.Strategy
	now      func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, tokens repository.TokenRepository, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, strategy: strategy, now: time.Now}
}

// Authenticate accepts a token only when its signature verifies and its
// digest was persisted for the same user and has not expired.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}

	claims, err := u.strategy.ParseToken(token)
	if err != nil {
		return nil, pkgAuth.ErrInvalidToken
	}

	record, err := u.tokens.GetByDigest(ctx, pkgAuth.Digest(token))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, pkgAuth.ErrInvalidToken
		}
		return nil, err
	}
	if record.UserID != claims.UserID || record.ID != claims.ID || !record.ExpiresAt.After(u.now()) {
		return nil, pkgAuth.ErrInvalidToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, pkgAuth.ErrInvalidToken
		}
		return nil, err
	}
	return usr, nil
}

// EmailTaken reports whether a user already owns the address.
func (u *AuthUseCase) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domainErrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
