package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/errors"
)

const (
	// revokedValue is the marker stored under a denylisted token key.
	revokedValue = "REVOKED"

	// revokedTTL matches the maximum remaining lifetime of a session
	// token, so a denylist entry always outlives the token it blocks.
	revokedTTL = 30 * 24 * time.Hour
)

// revocationStore is a concrete implementation of the RevocationStore
// interface backed by redis. Keys are the raw values themselves, token
// strings and ticket ids, each with its own TTL.
type revocationStore struct {
	client    *redis.Client
	ticketTTL time.Duration
}

// NewRevocationStore is the constructor for revocationStore.
func NewRevocationStore(client *redis.Client, cfg *config.Config) repository.RevocationStore {
	return &revocationStore{
		client:    client,
		ticketTTL: cfg.Reset.TicketTTL,
	}
}

// RevokeToken denylists a session token string.
func (s *revocationStore) RevokeToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, token, revokedValue, revokedTTL).Err(); err != nil {
		return errors.Wrap(err, "revoke token")
	}
	return nil
}

// IsRevoked reports whether a token has been denylisted.
func (s *revocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if err := s.client.Get(ctx, token).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrap(err, "check token revocation")
	}
	return true, nil
}

// RegisterResetTicket stores a password-reset ticket under its id. The stored
// value is the ticket JSON so the consumer can rebind the email claim.
func (s *revocationStore) RegisterResetTicket(ctx context.Context, ticket *entity.PasswordResetTicket) error {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return errors.Wrap(err, "encode reset ticket")
	}
	if err := s.client.Set(ctx, ticket.ResetID, payload, s.ticketTTL).Err(); err != nil {
		return errors.Wrap(err, "register reset ticket")
	}
	return nil
}

// LookupResetTicket returns the email bound to a live ticket id.
func (s *revocationStore) LookupResetTicket(ctx context.Context, resetID string) (string, error) {
	raw, err := s.client.Get(ctx, resetID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrResetTicketNotFound
		}
		return "", errors.Wrap(err, "lookup reset ticket")
	}

	var ticket entity.PasswordResetTicket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return "", errors.Wrap(err, "decode reset ticket")
	}
	return ticket.Email, nil
}

// DeleteResetTicket removes a consumed ticket.
func (s *revocationStore) DeleteResetTicket(ctx context.Context, resetID string) error {
	if err := s.client.Del(ctx, resetID).Err(); err != nil {
		return errors.Wrap(err, "delete reset ticket")
	}
	return nil
}
