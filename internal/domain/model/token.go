package model

import "time"

// TokenType is the fixed token_type label returned to clients.
const TokenType = "Bearer"

// DefaultTokenName labels tokens minted at registration.
const DefaultTokenName = "auth_token"

// AccessToken is the persisted record of an issued bearer token.
// Only the digest of the secret is stored.
type AccessToken struct {
	ID        string
	UserID    int64
	Name      string
	Digest    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
