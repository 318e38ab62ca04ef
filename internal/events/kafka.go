package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// KafkaPublisher mirrors the domain event stream to a Kafka topic for
// external consumers (analytics, audit). Optional: the service runs
// fully without it.
type KafkaPublisher struct {
	publisher *kafka.Publisher
	topic     string
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}
	return &KafkaPublisher{publisher: pub, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}
	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish event %s to kafka: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}
