package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/registrar/internal/domain/errors"
	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrDuplicateEmail
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now().UTC()
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) snapshot() UserRepositoryStub {
	snap := UserRepositoryStub{
		Users: make(map[string]*model.User, len(s.Users)),
		ByID:  make(map[int64]*model.User, len(s.ByID)),
		Next:  s.Next,
		Err:   s.Err,
	}
	for k, v := range s.Users {
		snap.Users[k] = v
	}
	for k, v := range s.ByID {
		snap.ByID[k] = v
	}
	return snap
}

// TokenRepositoryStub keeps access tokens keyed by digest.
type TokenRepositoryStub struct {
	Tokens map[string]*model.AccessToken
	Err    error
	GetErr error
}

// NewTokenRepositoryStub constructs an empty token store.
func NewTokenRepositoryStub() *TokenRepositoryStub {
	return &TokenRepositoryStub{Tokens: make(map[string]*model.AccessToken)}
}

// Create stores the token unless an error is configured.
func (s *TokenRepositoryStub) Create(ctx context.Context, token *model.AccessToken) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Tokens == nil {
		s.Tokens = make(map[string]*model.AccessToken)
	}
	if _, exists := s.Tokens[token.Digest]; exists {
		return fmt.Errorf("%w: duplicate token digest", domainErrors.ErrPersistence)
	}
	stored := *token
	s.Tokens[token.Digest] = &stored
	return nil
}

// GetByDigest returns the stored token or not found.
func (s *TokenRepositoryStub) GetByDigest(ctx context.Context, digest string) (*model.AccessToken, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if token, ok := s.Tokens[digest]; ok {
		return token, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *TokenRepositoryStub) snapshot() TokenRepositoryStub {
	snap := TokenRepositoryStub{
		Tokens: make(map[string]*model.AccessToken, len(s.Tokens)),
		Err:    s.Err,
		GetErr: s.GetErr,
	}
	for k, v := range s.Tokens {
		snap.Tokens[k] = v
	}
	return snap
}

// TransactorStub runs transactions against the in-memory stubs, restoring
// their contents when the callback fails or the commit is forced to fail.
type TransactorStub struct {
	UserRepo  *UserRepositoryStub
	TokenRepo *TokenRepositoryStub
	BeginErr  error
	CommitErr error

	Commits   int
	Rollbacks int
}

// NewTransactorStub wires a transactor over fresh repository stubs.
func NewTransactorStub() *TransactorStub {
	return &TransactorStub{UserRepo: NewUserRepositoryStub(), TokenRepo: NewTokenRepositoryStub()}
}

// WithinTransaction commits when fn succeeds and rolls back otherwise.
func (s *TransactorStub) WithinTransaction(ctx context.Context, fn func(repository.Tx) error) error {
	if s.BeginErr != nil {
		return fmt.Errorf("%w: begin transaction: %w", domainErrors.ErrPersistence, s.BeginErr)
	}

	users := s.UserRepo.snapshot()
	tokens := s.TokenRepo.snapshot()
	rollback := func() {
		*s.UserRepo = users
		*s.TokenRepo = tokens
		s.Rollbacks++
	}
	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(txStub{users: s.UserRepo, tokens: s.TokenRepo}); err != nil {
		rollback()
		return err
	}
	if s.CommitErr != nil {
		rollback()
		return fmt.Errorf("%w: commit transaction: %w", domainErrors.ErrPersistence, s.CommitErr)
	}
	s.Commits++
	return nil
}

type txStub struct {
	users  *UserRepositoryStub
	tokens *TokenRepositoryStub
}

func (t txStub) Users() repository.UserRepository   { return t.users }
func (t txStub) Tokens() repository.TokenRepository { return t.tokens }

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.TokenRepository = (*TokenRepositoryStub)(nil)
var _ repository.Transactor = (*TransactorStub)(nil)
