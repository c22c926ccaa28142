package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex SHA-256 of a token value, the form tokens are stored in.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
