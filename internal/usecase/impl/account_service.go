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

// accountService implements the AccountUsecase interface.
type accountService struct {
	users       repository.UserRepository
	revocations repository.RevocationStore
	credentials service.CredentialService
	tokens      service.TokenService
	notifier    service.Notifier
	logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	users repository.UserRepository,
	revocations repository.RevocationStore,
	credentials service.CredentialService,
	tokens service.TokenService,
	notifier service.Notifier,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		users:       users,
		revocations: revocations,
		credentials: credentials,
		tokens:      tokens,
		notifier:    notifier,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new user account and opens its first session.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Registering user", slog.String("email", input.Email))

	// 1. Allocate the identifier first so it can salt the credential
	user := &entity.User{
		ID:        entity.NewUserID(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      entity.RoleUser,
	}
	user.PasswordHash = srv.credentials.Derive(user.ID, input.Password)

	// 2. Persist. A racing registration with the same email loses here.
	if err := srv.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, domainerrors.ErrDuplicateUser.WrapMessage("email taken")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	// 3. Announce the account. Delivery failures never fail registration.
	if err := srv.notifier.SendUserCreated(ctx, user.ID, user.Email); err != nil {
		srv.log(ctx).Warn("Failed to publish user created event",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	// 4. A fresh account starts logged in.
	token, err := srv.tokens.Issue(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue first token")
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID))

	return &usecase.SessionOutput{Token: token, User: user.Public()}, nil
}

// GetProfile returns the authenticated caller's own profile.
func (srv *accountService) GetProfile(ctx context.Context, token string) (*entity.UserPublic, error) {
	user, _, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return nil, err
	}

	return user.Public(), nil
}

// GetUserByID returns the public projection of any user.
func (srv *accountService) GetUserByID(ctx context.Context, id entity.UserID) (*entity.UserPublic, error) {
	user, err := srv.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("lookup by id")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Deleted accounts are invisible to public lookups.
	if user.IsDeleted {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("lookup by id")
	}

	return user.Public(), nil
}

// GetUserByEmail returns the public projection of any user.
func (srv *accountService) GetUserByEmail(ctx context.Context, email string) (*entity.UserPublic, error) {
	user, err := srv.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("lookup by email")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.IsDeleted {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("lookup by email")
	}

	return user.Public(), nil
}

// UpdateProfile mutates the caller's profile and rotates the session token.
func (srv *accountService) UpdateProfile(ctx context.Context, token string, input usecase.UpdateProfileInput) (*usecase.SessionOutput, error) {
	user, _, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName

	if err := srv.users.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.String("user_id", user.ID))

	return srv.rotateToken(ctx, user, token)
}

// ChangePassword rotates the caller's credential and session token.
func (srv *accountService) ChangePassword(ctx context.Context, token string, input usecase.ChangePasswordInput) (*usecase.SessionOutput, error) {
	user, _, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return nil, err
	}

	// The current password gates the rotation even under a valid session.
	if err := srv.credentials.Verify(user.ID, input.CurrentPassword, user.PasswordHash); err != nil {
		return nil, err
	}

	encoded := srv.credentials.Derive(user.ID, input.NewPassword)
	if err := srv.users.SetPasswordHash(ctx, user.ID, encoded); err != nil {
		return nil, errors.Wrap(err, "failed to store new credential")
	}

	srv.log(ctx).Info("Password changed", slog.String("user_id", user.ID))

	return srv.rotateToken(ctx, user, token)
}

// VerifyEmail marks the caller's login email as confirmed.
func (srv *accountService) VerifyEmail(ctx context.Context, token string) error {
	user, _, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return err
	}

	if err := srv.users.SetEmailVerified(ctx, user.ID, true); err != nil {
		return errors.Wrap(err, "failed to mark email verified")
	}

	srv.log(ctx).Info("Email verified", slog.String("user_id", user.ID))

	return nil
}

// DeleteAccount soft-deletes the caller's account and revokes the token.
// The current password gates the deletion even under a valid session.
func (srv *accountService) DeleteAccount(ctx context.Context, token string, password string) error {
	user, _, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return err
	}

	if err := srv.credentials.Verify(user.ID, password, user.PasswordHash); err != nil {
		return err
	}

	if err := srv.users.SetDeleted(ctx, user.ID, true); err != nil {
		return errors.Wrap(err, "failed to soft-delete account")
	}

	if err := srv.revocations.RevokeToken(ctx, token); err != nil {
		srv.log(ctx).Warn("Failed to revoke token of deleted account",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	srv.log(ctx).Info("Account deleted", slog.String("user_id", user.ID))

	return nil
}

// SetSuspended toggles suspension on a target account.
func (srv *accountService) SetSuspended(ctx context.Context, token string, target entity.UserID, suspended bool) error {
	_, info, err := authenticate(ctx, srv.users, srv.revocations, srv.tokens, srv.log(ctx), token)
	if err != nil {
		return err
	}

	if info.Role != entity.RolePlatformAdmin {
		return domainerrors.ErrForbidden.WrapMessage("suspension requires platform admin")
	}

	if err := srv.users.SetSuspended(ctx, target, suspended); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("suspension target not found")
		}

		return errors.Wrap(err, "failed to set suspension")
	}

	srv.log(ctx).Info("Suspension changed",
		slog.String("target_id", target),
		slog.Bool("suspended", suspended),
		slog.String("admin_id", info.UserID),
	)

	return nil
}

// rotateToken revokes the presented token and issues a replacement carrying
// the account's current claims.
func (srv *accountService) rotateToken(ctx context.Context, user *entity.User, oldToken string) (*usecase.SessionOutput, error) {
	if err := srv.revocations.RevokeToken(ctx, oldToken); err != nil {
		srv.log(ctx).Warn("Failed to revoke rotated token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	token, err := srv.tokens.Issue(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue replacement token")
	}

	return &usecase.SessionOutput{Token: token, User: user.Public()}, nil
}
