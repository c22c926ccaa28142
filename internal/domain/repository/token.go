package repository

import (
	"context"

	"github.com/polkiloo/registrar/internal/domain/model"
)

// TokenRepository stores issued access token digests.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AccessToken) error
	GetByDigest(ctx context.Context, digest string) (*model.AccessToken, error)
}
