package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher publishes events to Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client *pubsub.Client
	pub    *pubsub.Publisher
	logger *slog.Logger
}

// newGooglePubSubPublisher creates a new Google Pub/Sub publisher
func newGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (publisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Check if topic exists using TopicAdminClient
	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client: client,
		pub:    client.Publisher(topicID),
		logger: logger,
	}, nil
}

func (p *googlePubSubPublisher) publish(ctx context.Context, ev *event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type": ev.Type,
		},
	}

	result := p.pub.Publish(ctx, msg)

	// Wait for publish result
	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Info("[GoogleNotifier] Event published",
		slog.String("event_type", ev.Type),
		slog.String("server_id", serverID),
	)

	return nil
}

// close releases Pub/Sub client resources
func (p *googlePubSubPublisher) close() error {
	if p.pub != nil {
		p.pub.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
