package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/quizrank/scoring-service/internal/services"
)

// NotificationPayload is the wire shape of one outbound notification.
// Consumers (bot frontends, admin pages) deliver Text to Target verbatim.
type NotificationPayload struct {
	Target string    `json:"target"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// KafkaNotifier publishes engine notifications to a Kafka topic.
type KafkaNotifier struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafkaNotifier builds a notifier backed by a watermill Kafka publisher.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaNotifier{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}, nil
}

// Notify publishes one notification. Delivery is at-least-once; callers
// already treat notification failures as non-fatal.
func (n *KafkaNotifier) Notify(ctx context.Context, target, text string) error {
	payload, err := json.Marshal(NotificationPayload{
		Target: target,
		Text:   text,
		At:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("target", target)
	msg.SetContext(ctx)

	if err := n.publisher.Publish(n.topic, msg); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug("Published notification", "target", target, "topic", n.topic)
	return nil
}

// Close releases the underlying publisher.
func (n *KafkaNotifier) Close() error {
	return n.publisher.Close()
}

// NopNotifier drops every notification. Used when no broker is configured
// and in tests that do not assert on notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, target, text string) error { return nil }

var (
	_ services.Notifier = (*KafkaNotifier)(nil)
	_ services.Notifier = NopNotifier{}
)
