package notification

import (
	"context"
	"log/slog"
	"testing"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher records every envelope handed to it.
type capturePublisher struct {
	events []*event
}

func (p *capturePublisher) publish(_ context.Context, ev *event) error {
	p.events = append(p.events, ev)

	return nil
}

func (p *capturePublisher) close() error { return nil }

func TestNotifier_EventsCarryRequestID(t *testing.T) {
	pub := &capturePublisher{}
	n := &notifier{pub: pub}

	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	require.NoError(t, n.SendUserCreated(ctx, "u123456789abc", "alice@example.com"))

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, eventUserCreated, ev.Type)
	assert.Equal(t, "req-42", ev.RequestID)
	assert.False(t, ev.OccurredAt.IsZero())

	payload, ok := ev.Payload.(*userCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", payload.Email)
}

func TestNotifier_PasswordResetEnvelope(t *testing.T) {
	pub := &capturePublisher{}
	n := &notifier{pub: pub}

	notice := &service.PasswordResetNotice{
		Email:     "alice@example.com",
		ResetID:   "ticket-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, n.SendPasswordReset(context.Background(), notice))

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, eventPasswordReset, ev.Type)

	// No request in flight, no request id on the envelope.
	assert.Empty(t, ev.RequestID)
	assert.Equal(t, notice, ev.Payload)
}

func TestNoopPublisher(t *testing.T) {
	n := &notifier{pub: &noopPublisher{logger: slog.New(slog.DiscardHandler)}}

	assert.NoError(t, n.SendUserCreated(context.Background(), "u123456789abc", "alice@example.com"))
}
