package impl

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/pkg/errors"
)

// resetService implements the ResetUsecase interface.
type resetService struct {
	users       repository.UserRepository
	revocations repository.RevocationStore
	credentials service.CredentialService
	notifier    service.Notifier
	formExpiry  time.Duration
	logger      *slog.Logger
}

// NewResetService is the constructor for resetService.
func NewResetService(
	users repository.UserRepository,
	revocations repository.RevocationStore,
	credentials service.CredentialService,
	notifier service.Notifier,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ResetUsecase {
	return &resetService{
		users:       users,
		revocations: revocations,
		credentials: credentials,
		notifier:    notifier,
		formExpiry:  cfg.Reset.FormExpiry,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *resetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequestReset opens a reset handshake for the submitted email. The
// account store is never consulted here, so the response shape cannot
// reveal whether the email is registered. A ticket for an unknown email
// simply fails verification when submitted.
func (srv *resetService) RequestReset(ctx context.Context, email string) error {
	srv.log(ctx).Debug("Password reset requested", slog.String("email", email))

	// 1. Mint and register the ticket before anything leaves the process
	ticket := entity.NewPasswordResetTicket(email, srv.formExpiry)
	if err := srv.revocations.RegisterResetTicket(ctx, ticket); err != nil {
		return domainerrors.NewDependencyError(err, "failed to register reset ticket")
	}

	// 2. Hand the ticket to the mail pipeline. If this fails the ticket
	// stays registered but unreachable, and simply ages out.
	notice := &service.PasswordResetNotice{
		Email:     ticket.Email,
		ResetID:   ticket.ResetID,
		ExpiresAt: ticket.ExpiresAt,
	}
	if err := srv.notifier.SendPasswordReset(ctx, notice); err != nil {
		return domainerrors.NewDependencyError(err, "failed to send reset notice")
	}

	srv.log(ctx).Info("Password reset ticket issued", slog.String("reset_id", ticket.ResetID))

	return nil
}

// SubmitReset consumes a ticket and installs the new password.
func (srv *resetService) SubmitReset(ctx context.Context, input usecase.SubmitResetInput) error {
	// 1. The form's own expiry is checked before any cache access
	form := entity.PasswordResetTicket{
		ResetID:     input.ResetID,
		NewPassword: input.NewPassword,
		ExpiresAt:   input.ExpiresAt,
	}
	if form.Expired(time.Now()) {
		return domainerrors.ErrResetExpired
	}

	// 2. The ticket binds the email server-side; the client never picks
	// the account a reset applies to.
	email, err := srv.revocations.LookupResetTicket(ctx, form.ResetID)
	if err != nil {
		if errors.Is(err, repository.ErrResetTicketNotFound) {
			return domainerrors.ErrResetVerification.WrapMessage("unknown or consumed ticket")
		}

		return domainerrors.NewDependencyError(err, "failed to look up reset ticket")
	}

	user, err := srv.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrResetVerification.WrapMessage("bound account missing")
		}

		return errors.Wrap(err, "failed to find bound account")
	}

	// 3. Install the new credential
	encoded := srv.credentials.Derive(user.ID, form.NewPassword)
	if err := srv.users.SetPasswordHash(ctx, user.ID, encoded); err != nil {
		return errors.Wrap(err, "failed to store reset credential")
	}

	// 4. Consume the ticket only after the credential is durable. Failure
	// here leaves the ticket to expire on its own.
	if err := srv.revocations.DeleteResetTicket(ctx, form.ResetID); err != nil {
		srv.log(ctx).Warn("Failed to delete consumed reset ticket",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	srv.log(ctx).Info("Password reset completed", slog.String("user_id", user.ID))

	return nil
}
