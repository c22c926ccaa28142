package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// IssuedToken is a freshly minted bearer token. Value is handed to the
// client once; only its digest is meant to be stored.
type IssuedToken struct {
	ID        string
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenClaims are the verified contents of a bearer token.
type TokenClaims struct {
	ID     string
	UserID int64
}

type Strategy interface {
	IssueToken(userID int64) (*IssuedToken, error)
	ParseToken(token string) (*TokenClaims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
