package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/registrar/internal/domain/errors"
	"github.com/polkiloo/registrar/internal/domain/model"
	"github.com/polkiloo/registrar/internal/server/http/dto"
	"github.com/polkiloo/registrar/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/registrar/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func registerBody(name, email, password string) []byte {
	body, _ := json.Marshal(map[string]string{"name": name, "email": email, "password": password})
	return body
}

func TestCurrentUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUser(c); got != nil {
		t.Fatalf("expected nil when not set, got %+v", got)
	}

	c.Set(middleware.UserContextKey, &model.User{ID: 42})
	if got := CurrentUser(c); got == nil || got.ID != 42 {
		t.Fatalf("expected user 42, got %+v", got)
	}
}

func TestAuthHandlerRegisterScenario(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	handler := NewAuthHandler(testhelpers.RegistrarFacadeStub{RegisterFn: func(_ context.Context, in model.RegistrationInput) (*model.Registration, error) {
		if in.Name != "Ana" || in.Email != "ana@example.com" || in.Password != "Secret123!" {
			t.Fatalf("unexpected input passed to facade: %+v", in)
		}
		return &model.Registration{
			Message:     model.RegistrationMessage,
			User:        &model.User{ID: 7, Name: in.Name, Email: in.Email, PasswordHash: "$2a$10$secret", CreatedAt: created, UpdatedAt: created},
			AccessToken: "session-token",
			TokenType:   model.TokenType,
		}, nil
	}})

	resp := performRequest(t, http.MethodPost, "/v1/auth/registrar", handler.Register, nil, registerBody("Ana", "ana@example.com", "Secret123!"), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var got dto.RegistrationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Message != "Usuário registrado com sucesso!" || got.TokenType != "Bearer" || got.AccessToken != "session-token" {
		t.Fatalf("unexpected response %+v", got)
	}
	if got.Data.Email != "ana@example.com" || got.Data.Name != "Ana" || got.Data.ID != 7 || !got.Data.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user view %+v", got.Data)
	}
	raw := resp.Body.String()
	if strings.Contains(raw, "password") || strings.Contains(raw, "secret") {
		t.Fatalf("credential material serialized: %s", raw)
	}
}

func TestAuthHandlerRegisterTrimsInput(t *testing.T) {
	var got model.RegistrationInput
	handler := NewAuthHandler(testhelpers.RegistrarFacadeStub{RegisterFn: func(ctx context.Context, in model.RegistrationInput) (*model.Registration, error) {
		got = in
		return testhelpers.RegistrarFacadeStub{}.Register(ctx, in)
	}})
	resp := performRequest(t, http.MethodPost, "/", handler.Register, nil, registerBody("  Ana ", " ana@example.com ", " Secret123! "), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if got.Name != "Ana" || got.Email != "ana@example.com" || got.Password != " Secret123! " {
		t.Fatalf("unexpected normalization: %+v", got)
	}
}

func TestAuthHandlerRegisterRandomPayload(t *testing.T) {
	name := testhelpers.RandomASCIIString(3, 40)
	password := testhelpers.RandomASCIIString(8, 72)
	email := testhelpers.RandomEmail()
	handler := NewAuthHandler(testhelpers.RegistrarFacadeStub{RegisterFn: func(ctx context.Context, in model.RegistrationInput) (*model.Registration, error) {
		if in.Name != name || in.Email != email || in.Password != password {
			t.Fatalf("unexpected input passed to facade: %+v", in)
		}
		return testhelpers.RegistrarFacadeStub{}.Register(ctx, in)
	}})
	resp := performRequest(t, http.MethodPost, "/", handler.Register, nil, registerBody(name, email, password), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		fields []string
	}{
		{name: "empty body", body: nil, fields: []string{"name", "email", "password"}},
		{name: "empty object", body: []byte(`{}`), fields: []string{"name", "email", "password"}},
		{name: "blank name", body: registerBody("   ", "ana@example.com", "Secret123!"), fields: []string{"name"}},
		{name: "bad email", body: registerBody("Ana", "not-an-email", "Secret123!"), fields: []string{"email"}},
		{name: "short password", body: registerBody("Ana", "ana@example.com", "short"), fields: []string{"password"}},
		{name: "long password", body: registerBody("Ana", "ana@example.com", strings.Repeat("a", 73)), fields: []string{"password"}},
		{name: "multibyte password over 72 bytes", body: registerBody("Ana", "ana@example.com", strings.Repeat("é", 40)), fields: []string{"password"}},
		{name: "long name", body: registerBody(strings.Repeat("a", 256), "ana@example.com", "Secret123!"), fields: []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := NewAuthHandler(testhelpers.RegistrarFacadeStub{RegisterFn: func(context.Context, model.RegistrationInput) (*model.Registration, error) {
				called = true
				return nil, nil
			}})
			resp := performRequest(t, http.MethodPost, "/", handler.Register, nil, tt.body, jsonHeaders)
			if resp.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
			}
			if called {
				t.Fatal("workflow invoked for invalid input")
			}
			var got dto.ValidationErrorResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if got.Message != invalidDataMessage || len(got.Errors) != len(tt.fields) {
				t.Fatalf("unexpected response %+v", got)
			}
			for _, f := range tt.fields {
				if len(got.Errors[f]) == 0 {
					t.Fatalf("expected error for %s, got %+v", f, got.Errors)
				}
			}
		})
	}
}

func TestAuthHandlerRegisterAcceptsMultibytePasswordAtLimit(t *testing.T) {
	password := strings.Repeat("é", 36)
	handler := NewAuthHandler(testhelpers.RegistrarFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/", handler.Register, nil, registerBody("Ana", "ana@example.com", password), jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a 72 byte password, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthHandlerRegisterEmailTaken(t *testing.T) {
	handler := NewAuthHandler(testhelpers.RegistrarFacadeStub{
		EmailTakenFn: func(_ context.Context, email string) (bool, error) { return email == "ana@example.com", nil },
		RegisterFn: func(context.Context, model.RegistrationInput) (*model.Registration, error) {
			t.Fatal("workflow invoked for taken email")
			return nil, nil
		},
	})
	resp := performRequest(t, http.MethodPost, "/", handler.Register, nil, registerBody("Ana", "ana@example.com", "Secret123!"), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	var got dto.ValidationErrorResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &got)
	if len(got.Errors["email"]) != 1 || got.Errors["email"][0] != emailTakenMessage {
		t.Fatalf("unexpected errors %+v", got.Errors)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.RegistrarFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed json",
			body:   []byte(`{"name":`),
			status: http.StatusBadRequest,
		},
		{
			name:   "wrong field type",
			body:   []byte(`{"name":1,"email":"ana@example.com","password":"Secret123!"}`),
			status: http.StatusBadRequest,
		},
		{
			name: "uniqueness lookup fails",
			facade: testhelpers.RegistrarFacadeStub{EmailTakenFn: func(context.Context, string) (bool, error) {
				return false, domainErrors.ErrPersistence
			}},
			body:   registerBody("Ana", "ana@example.com", "Secret123!"),
			status: http.StatusInternalServerError,
		},
		{
			name: "duplicate race",
			facade: testhelpers.RegistrarFacadeStub{RegisterFn: func(context.Context, model.RegistrationInput) (*model.Registration, error) {
				return nil, &domainErrors.RegistrationError{Cause: domainErrors.ErrDuplicateEmail}
			}},
			body:   registerBody("Ana", "ana@example.com", "Secret123!"),
			status: http.StatusInternalServerError,
		},
		{
			name: "token issuance",
			facade: testhelpers.RegistrarFacadeStub{RegisterFn: func(context.Context, model.RegistrationInput) (*model.Registration, error) {
				return nil, &domainErrors.RegistrationError{Cause: domainErrors.ErrTokenIssuance}
			}},
			body:   registerBody("Ana", "ana@example.com", "Secret123!"),
			status: http.StatusInternalServerError,
		},
		{
			name: "unexpected",
			facade: testhelpers.RegistrarFacadeStub{RegisterFn: func(context.Context, model.RegistrationInput) (*model.Registration, error) {
				return nil, errors.New("boom")
			}},
			body:   registerBody("Ana", "ana@example.com", "Secret123!"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status == http.StatusInternalServerError {
				var got dto.MessageResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if got.Message != "Ocorreu um erro interno no servidor. Por favor, tente novamente mais tarde" {
					t.Fatalf("unexpected message %q", got.Message)
				}
			}
		})
	}
}

func TestUserHandlerMe(t *testing.T) {
	handler := NewUserHandler()
	resp := performRequest(t, http.MethodGet, "/user", handler.Me, nil, nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", resp.Code)
	}

	setup := func(c *gin.Context) {
		c.Set(middleware.UserContextKey, &model.User{ID: 3, Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"})
	}
	resp = performRequest(t, http.MethodGet, "/user", handler.Me, setup, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 3 || got.Email != "ana@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}
	if strings.Contains(resp.Body.String(), "hash") {
		t.Fatalf("credential material serialized: %s", resp.Body.String())
	}
}

func TestHomeHandler(t *testing.T) {
	handler := NewHomeHandler(testhelpers.RegistrarFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/", handler.Index, nil, nil, nil)
	if resp.Code != http.StatusOK || resp.Body.String() != `{"message":"Hello World"}` {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/health", handler.Health, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	handler = NewHomeHandler(testhelpers.RegistrarFacadeStub{HealthFn: func(context.Context) error { return errors.New("down") }})
	resp = performRequest(t, http.MethodGet, "/health", handler.Health, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
