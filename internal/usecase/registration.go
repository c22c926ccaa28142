package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/registrar/internal/domain/errors"
	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/domain/repository"
	pkgAuth "github.com/polkiloo/registrar/internal/pkg/auth"
)

// RegistrationUseCase creates a user and its first access token atomically.
type RegistrationUseCase struct {
	transactor repository.Transactor
	hasher     pkgAuth.PasswordHasher
	tokens     pkgAuth.Strategy
	logger     *slog.Logger
}

// NewRegistrationUseCase constructs RegistrationUseCase.
func NewRegistrationUseCase(transactor repository.Transactor, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, logger *slog.Logger) *RegistrationUseCase {
	return &RegistrationUseCase{transactor: transactor, hasher: hasher, tokens: strategy, logger: logger}
}

// Register expects already validated input. Any failure rolls the whole
// registration back and is reported as a *domainErrors.RegistrationError.
func (u *RegistrationUseCase) Register(ctx context.Context, input model.RegistrationInput) (*model.Registration, error) {
	var (
		user   *model.User
		issued *pkgAuth.IssuedToken
	)

	err := u.transactor.WithinTransaction(ctx, func(tx repository.Tx) error {
		hash, err := u.hasher.Hash(input.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		created, err := tx.Users().Create(ctx, input.Name, input.Email, hash)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		token, err := u.issueToken(ctx, tx, created.ID)
		if err != nil {
			return err
		}

		user, issued = created, token
		return nil
	})
	if err != nil {
		cause := domainErrors.Classify(err)
		u.logger.ErrorContext(ctx, fmt.Sprintf("Erro no registro de usuário: %v", err),
			slog.String("kind", cause.Error()),
		)
		return nil, &domainErrors.RegistrationError{Cause: cause}
	}

	return &model.Registration{
		Message:     model.RegistrationMessage,
		User:        user,
		AccessToken: issued.Value,
		TokenType:   model.TokenType,
	}, nil
}

func (u *RegistrationUseCase) issueToken(ctx context.Context, tx repository.Tx, userID int64) (*pkgAuth.IssuedToken, error) {
	issued, err := u.tokens.IssueToken(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrTokenIssuance, err)
	}

	record := &model.AccessToken{
		ID:        issued.ID,
		UserID:    userID,
		Name:      model.DefaultTokenName,
		Digest:    pkgAuth.Digest(issued.Value),
		CreatedAt: issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := tx.Tokens().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: store token: %w", domainErrors.ErrTokenIssuance, err)
	}

	return issued, nil
}
