// Package eventbus wraps a watermill in-process pub/sub behind a small
// publish interface. The engine is single-process by design, so the
// GoChannel transport replaces an external broker: handlers still run
// through the watermill router, but messages never leave the process.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus publishes JSON-encoded domain events and exposes the subscriber
// side to the router.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Subscriber() message.Subscriber
	Close() error
}

type eventBus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

// New creates an EventBus backed by an in-process GoChannel pub/sub.
func New(logger *slog.Logger) EventBus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &eventBus{pubSub: pubSub, logger: logger}
}

// Publish marshals payload to JSON and publishes it on topic with a fresh
// message ID and correlation ID.
func (b *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for topic %q: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if middleware.MessageCorrelationID(msg) == "" {
		middleware.SetCorrelationID(watermill.NewUUID(), msg)
	}

	b.logger.DebugContext(ctx, "publishing event",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)

	if err := b.pubSub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to topic %q: %w", topic, err)
	}
	return nil
}

// Subscriber returns the subscriber side for router handler registration.
func (b *eventBus) Subscriber() message.Subscriber {
	return b.pubSub
}

// Close shuts down the pub/sub and releases subscriber channels.
func (b *eventBus) Close() error {
	return b.pubSub.Close()
}
