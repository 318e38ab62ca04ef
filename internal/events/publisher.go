package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultTopic is the in-process topic all domain events flow through.
const DefaultTopic = "scheduling.events"

// Publisher is what services emit events through. Emission is
// best-effort: callers log failures and never roll back store state.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Bus is the in-process event queue backed by watermill's gochannel
// pub/sub. It fans every event out to all subscribers.
type Bus struct {
	pubsub *gochannel.GoChannel
	topic  string
	logger *slog.Logger
}

var _ Publisher = (*Bus)(nil)

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NewSlogLogger(logger)),
		topic:  DefaultTopic,
		logger: logger,
	}
}

func (b *Bus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}
	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}

// Subscribe returns a channel of decoded events. The channel closes
// when ctx is cancelled or the bus shuts down.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	msgs, err := b.pubsub.Subscribe(ctx, b.topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", b.topic, err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for msg := range msgs {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Warn("dropping undecodable event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Fanout publishes each event to every wrapped publisher, typically
// the in-process bus plus an external Kafka publisher.
type Fanout struct {
	publishers []Publisher
}

var _ Publisher = (*Fanout)(nil)

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Publish(ctx context.Context, event Event) error {
	var firstErr error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *Fanout) Close() error {
	var firstErr error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
