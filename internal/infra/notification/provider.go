// Package notification implements the outbound Notifier collaborator. The
// service never sends mail itself; it hands events to a messaging pipeline
// that owns rendering and delivery.
package notification

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Provider names accepted in config.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Event type attribute values carried on every published message.
const (
	eventPasswordReset = "user.password_reset"
	eventUserCreated   = "user.created"
)

// event is the wire envelope published to the pipeline. RequestID ties
// the event back to the HTTP request that caused it.
type event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	RequestID  string    `json:"requestId,omitempty"`
	Payload    any       `json:"payload"`
}

func newEvent(ctx context.Context, eventType string, payload any) *event {
	return &event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		RequestID:  deliverycontext.RequestIDFrom(ctx),
		Payload:    payload,
	}
}

// userCreatedPayload announces a freshly registered account.
type userCreatedPayload struct {
	UserID entity.UserID `json:"userId"`
	Email  string        `json:"email"`
}

// publisher is the transport half of a notifier. Implementations publish one
// envelope and report whether the pipeline accepted it.
type publisher interface {
	publish(ctx context.Context, ev *event) error
	close() error
}

// notifier adapts a publisher to the domain Notifier interface.
type notifier struct {
	pub publisher
}

func (n *notifier) SendPasswordReset(ctx context.Context, notice *service.PasswordResetNotice) error {
	return n.pub.publish(ctx, newEvent(ctx, eventPasswordReset, notice))
}

func (n *notifier) SendUserCreated(ctx context.Context, userID entity.UserID, email string) error {
	return n.pub.publish(ctx, newEvent(ctx, eventUserCreated, &userCreatedPayload{UserID: userID, Email: email}))
}

// noopPublisher is a no-op implementation when notification is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) publish(_ context.Context, ev *event) error {
	p.logger.Debug("[NoopNotifier] Publishing disabled, skipping",
		slog.String("event_type", ev.Type),
	)

	return nil
}

func (p *noopPublisher) close() error {
	return nil
}

// Params holds dependencies for the Notifier, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration
func NewNotifier(params Params) (service.Notifier, error) {
	cfg := params.Config.Notify
	logger := params.Logger

	// If notification is not configured, return a no-op notifier
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Notification not configured, using no-op notifier")

		return &notifier{pub: &noopPublisher{logger: logger}}, nil
	}

	var pub publisher
	var err error

	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP notifier",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		pub = newLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case ProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub notifier",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		pub, err = newGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown notify provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close the publisher on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing Notifier")

			return pub.close()
		},
	})

	return &notifier{pub: pub}, nil
}
