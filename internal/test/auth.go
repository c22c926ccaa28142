package test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polkiloo/registrar/internal/domain/model"
	pkgAuth "github.com/polkiloo/registrar/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (*pkgAuth.IssuedToken, error)
	ParseFn func(string) (*pkgAuth.TokenClaims, error)
	NameVal string
}

// IssueToken returns deterministic "token-<id>" tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (*pkgAuth.IssuedToken, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	now := time.Now()
	return &pkgAuth.IssuedToken{
		ID:        fmt.Sprintf("jti-%d", userID),
		Value:     fmt.Sprintf("token-%d", userID),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.TokenClaims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	var id int64
	if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.TokenClaims{ID: fmt.Sprintf("jti-%d", id), UserID: id}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AuthenticatorStub implements the middleware token check.
type AuthenticatorStub struct {
	User   *model.User
	Err    error
	AuthFn func(context.Context, string) (*model.User, error)
}

// Authenticate either delegates to override or returns predefined result.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if s.AuthFn != nil {
		return s.AuthFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.User, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
