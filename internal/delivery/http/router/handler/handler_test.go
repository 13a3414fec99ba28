package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpmiddleware "passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecases implements the session, account and reset usecases with
// function fields, so each test controls exactly the behavior it needs.
type stubUsecases struct {
	loginFn        func(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error)
	authenticateFn func(ctx context.Context, token string) (*service.AuthInfo, error)
	registerFn     func(ctx context.Context, input usecase.RegisterInput) (*usecase.SessionOutput, error)
	getProfileFn   func(ctx context.Context, token string) (*entity.UserPublic, error)
	requestResetFn func(ctx context.Context, email string) error
	submitResetFn  func(ctx context.Context, input usecase.SubmitResetInput) error
}

func (s *stubUsecases) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubUsecases) Logout(context.Context, string) error { return nil }

func (s *stubUsecases) Authenticate(ctx context.Context, token string) (*service.AuthInfo, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubUsecases) CheckPassword(context.Context, string, string) error { return nil }

func (s *stubUsecases) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.SessionOutput, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUsecases) GetProfile(ctx context.Context, token string) (*entity.UserPublic, error) {
	return s.getProfileFn(ctx, token)
}

func (s *stubUsecases) GetUserByID(context.Context, entity.UserID) (*entity.UserPublic, error) {
	return nil, domainerrors.ErrUserNotFound
}

func (s *stubUsecases) GetUserByEmail(context.Context, string) (*entity.UserPublic, error) {
	return nil, domainerrors.ErrUserNotFound
}

func (s *stubUsecases) UpdateProfile(context.Context, string, usecase.UpdateProfileInput) (*usecase.SessionOutput, error) {
	return nil, domainerrors.ErrUnauthorized
}

func (s *stubUsecases) ChangePassword(context.Context, string, usecase.ChangePasswordInput) (*usecase.SessionOutput, error) {
	return nil, domainerrors.ErrUnauthorized
}

func (s *stubUsecases) VerifyEmail(context.Context, string) error { return nil }

func (s *stubUsecases) DeleteAccount(context.Context, string, string) error { return nil }

func (s *stubUsecases) SetSuspended(context.Context, string, entity.UserID, bool) error {
	return nil
}

func (s *stubUsecases) RequestReset(ctx context.Context, email string) error {
	return s.requestResetFn(ctx, email)
}

func (s *stubUsecases) SubmitReset(ctx context.Context, input usecase.SubmitResetInput) error {
	return s.submitResetFn(ctx, input)
}

// newTestServer wires a real echo instance with the production middlewares
// and a stub usecase behind every handler.
func newTestServer(stub *stubUsecases) *echo.Echo {
	logger := slog.New(slog.DiscardHandler)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Validator = validator.New()

	authMW := httpmiddleware.NewAuthMiddleware(stub)

	accountHandler := NewAccountHandler(stub, logger)
	sessionHandler := NewSessionHandler(stub, logger)
	resetHandler := NewResetHandler(stub, logger)

	e.GET("/health", HealthCheck)
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", sessionHandler.Login)
	e.POST("/auth/password/forgot", resetHandler.Request)
	e.POST("/auth/password/reset", resetHandler.Submit)

	userGroup := e.Group("/user")
	userGroup.Use(authMW.Authenticate)
	userGroup.GET("/profile", accountHandler.GetProfile)

	adminGroup := e.Group("/admin")
	adminGroup.Use(authMW.Authenticate)
	adminGroup.Use(authMW.RequireRole(entity.RolePlatformAdmin))
	adminGroup.PUT("/users/:id/suspend", accountHandler.Suspend)

	return e
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(&stubUsecases{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_Created(t *testing.T) {
	stub := &stubUsecases{
		registerFn: func(_ context.Context, input usecase.RegisterInput) (*usecase.SessionOutput, error) {
			return &usecase.SessionOutput{
				Token: "first-session-token",
				User:  &entity.UserPublic{ID: "u123456789abc", Email: input.Email},
			}, nil
		},
	}
	e := newTestServer(stub)

	body := `{"email":"alice@example.com","password":"open sesame","firstName":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Contains(t, rec.Body.String(), "u123456789abc")
	assert.Contains(t, rec.Body.String(), "first-session-token")
}

func TestRegister_ValidationFailure(t *testing.T) {
	e := newTestServer(&stubUsecases{})

	// Password below the minimum length never reaches the usecase.
	body := `{"email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	stub := &stubUsecases{
		loginFn: func(context.Context, usecase.LoginInput) (*usecase.SessionOutput, error) {
			return nil, domainerrors.ErrWrongPassword
		},
	}
	e := newTestServer(stub)

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "WRONG_PASSWORD", envelope.Error.Code)
}

func TestProfile_MissingAuthorization(t *testing.T) {
	e := newTestServer(&stubUsecases{})

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_Authenticated(t *testing.T) {
	stub := &stubUsecases{
		authenticateFn: func(_ context.Context, token string) (*service.AuthInfo, error) {
			if token != "valid-token" {
				return nil, domainerrors.ErrUnauthorized
			}

			return &service.AuthInfo{UserID: "u123456789abc", Email: "alice@example.com", Role: entity.RoleUser}, nil
		},
		getProfileFn: func(_ context.Context, token string) (*entity.UserPublic, error) {
			return &entity.UserPublic{ID: "u123456789abc", Email: "alice@example.com"}, nil
		},
	}
	e := newTestServer(stub)

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestAdminRoute_RequiresPlatformAdmin(t *testing.T) {
	stub := &stubUsecases{
		authenticateFn: func(context.Context, string) (*service.AuthInfo, error) {
			return &service.AuthInfo{UserID: "u123456789abc", Role: entity.RoleUser}, nil
		},
	}
	e := newTestServer(stub)

	req := httptest.NewRequest(http.MethodPut, "/admin/users/u999/suspend", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestResetSubmit_ExpiredForm(t *testing.T) {
	stub := &stubUsecases{
		submitResetFn: func(_ context.Context, input usecase.SubmitResetInput) error {
			if time.Now().After(input.ExpiresAt) {
				return domainerrors.ErrResetExpired
			}

			return nil
		},
	}
	e := newTestServer(stub)

	body := `{"resetId":"some-id","newPassword":"fresh password","expiresAt":"2020-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/password/reset", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "RESET_EXPIRED", envelope.Error.Code)
}
