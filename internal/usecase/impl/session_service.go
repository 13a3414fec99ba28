// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	users       repository.UserRepository
	revocations repository.RevocationStore
	credentials service.CredentialService
	tokens      service.TokenService
	logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	users repository.UserRepository,
	revocations repository.RevocationStore,
	credentials service.CredentialService,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		users:       users,
		revocations: revocations,
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies credentials and issues a session token.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Logging in", slog.String("email", input.Email))

	// 1. Resolve the account
	user, err := srv.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("login target not found")
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	// 2. Verify the password before any account-state disclosure
	if err := srv.credentials.Verify(user.ID, input.Password, user.PasswordHash); err != nil {
		return nil, err
	}

	// 3. A suspended or deleted account also burns whatever token the
	// client presented.
	if err := checkAccountState(ctx, srv.revocations, srv.log(ctx), user, input.PresentedToken); err != nil {
		return nil, err
	}

	// 4. Issue a fresh session token
	token, err := srv.tokens.Issue(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("User logged in", slog.String("user_id", user.ID))

	return &usecase.SessionOutput{Token: token, User: user.Public()}, nil
}

// Logout denylists the presented token. The revoke is best effort: a
// client logging out during a cache outage still succeeds, and the
// unrevoked token ages out on its own expiry.
func (srv *sessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := srv.revocations.RevokeToken(ctx, token); err != nil {
		srv.log(ctx).Warn("Failed to revoke token on logout", slog.Any("error", err))

		return nil
	}

	srv.log(ctx).Info("User logged out")

	return nil
}

// Authenticate resolves a presented token into the caller's identity.
func (srv *sessionService) Authenticate(ctx context.Context, token string) (*service.AuthInfo, error) {
	_, info, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return nil, err
	}

	return info, nil
}

// CheckPassword re-verifies the caller's password under an authenticated session.
func (srv *sessionService) CheckPassword(ctx context.Context, token, password string) error {
	user, _, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return err
	}

	return srv.credentials.Verify(user.ID, password, user.PasswordHash)
}

// authenticate is the shared token-to-identity resolution used by every
// authenticated operation. It decodes the token, consults the denylist,
// loads the account and enforces its current state.
func authenticate(
	ctx context.Context,
	users repository.UserRepository,
	revocations repository.RevocationStore,
	tokens service.TokenService,
	logger *slog.Logger,
	token string,
) (*entity.User, *service.AuthInfo, error) {
	// 1. Decode and validate the token itself
	info, err := tokens.Decode(token)
	if err != nil {
		return nil, nil, err
	}

	// 2. Consult the denylist. A cache fault fails open: a signed,
	// unexpired token stays usable when redis is unreachable.
	revoked, err := revocations.IsRevoked(ctx, token)
	if err != nil {
		logger.Warn("Revocation check unavailable, failing open", slog.Any("error", err))
	} else if revoked {
		return nil, nil, domainerrors.ErrUnauthorized.WrapMessage("token revoked")
	}

	// 3. The account behind the claims must still exist
	user, err := users.FindByID(ctx, info.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, domainerrors.ErrUnauthorized.WrapMessage("token subject not found")
		}

		return nil, nil, errors.Wrap(err, "failed to load token subject")
	}

	// 4. Enforce the live account state, burning the token if it changed
	if err := checkAccountState(ctx, revocations, logger, user, token); err != nil {
		return nil, nil, err
	}

	return user, info, nil
}

// checkAccountState rejects suspended and deleted accounts. The presented
// token is revoked so the client cannot keep replaying it against endpoints
// that have not checked yet.
func checkAccountState(
	ctx context.Context,
	revocations repository.RevocationStore,
	logger *slog.Logger,
	user *entity.User,
	token string,
) error {
	if !user.IsSuspended && !user.IsDeleted {
		return nil
	}

	if token != "" {
		if err := revocations.RevokeToken(ctx, token); err != nil {
			logger.Warn("Failed to revoke token of inactive account", slog.Any("error", err))
		}
	}

	if user.IsDeleted {
		return domainerrors.ErrAccountDeleted
	}

	return domainerrors.ErrAccountSuspended
}
