package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/polkiloo/registrar/internal/domain/errors"
	"github.com/polkiloo/registrar/internal/domain/model"
	pkgAuth "github.com/polkiloo/registrar/internal/pkg/auth"
	testhelpers "github.com/polkiloo/registrar/internal/test"
	"github.com/polkiloo/registrar/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade(health healthStub) (*RegistrarFacade, *testhelpers.TransactorStub) {
	tx := testhelpers.NewTransactorStub()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registration := usecase.NewRegistrationUseCase(tx, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, logger)
	auth := usecase.NewAuthUseCase(tx.UserRepo, tx.TokenRepo, testhelpers.StrategyStub{})
	return NewRegistrarFacade(registration, auth, health), tx
}

func TestRegistrarFacadeRegisterAndAuthenticate(t *testing.T) {
	facade, tx := newFacade(healthStub{})
	ctx := context.Background()

	result, err := facade.Register(ctx, model.RegistrationInput{Name: "Ana", Email: "ana@example.com", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if result.AccessToken == "" || result.TokenType != model.TokenType {
		t.Fatalf("unexpected result %+v", result)
	}
	if tx.Commits != 1 {
		t.Fatalf("expected commit, got %d", tx.Commits)
	}

	user, err := facade.Authenticate(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := facade.Authenticate(ctx, "token-404"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	taken, err := facade.EmailTaken(ctx, "ana@example.com")
	if err != nil || !taken {
		t.Fatalf("expected email taken, got %v err=%v", taken, err)
	}

	if _, err := facade.Register(ctx, model.RegistrationInput{Name: "Ana", Email: "ana@example.com", Password: "Secret123!"}); !errors.Is(err, domainErrors.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate cause, got %v", err)
	}
}

func TestRegistrarFacadeHealthCheck(t *testing.T) {
	facade, _ := newFacade(healthStub{})
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	down := errors.New("down")
	facade, _ = newFacade(healthStub{err: down})
	if err := facade.HealthCheck(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected down, got %v", err)
	}
}
