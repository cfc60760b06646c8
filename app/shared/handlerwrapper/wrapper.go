// Package handlerwrapper adapts typed event handlers to watermill. Handler
// bodies stay domain-only: the wrapper owns JSON decoding, span creation,
// and failure logging. Follow-up events are published by the services the
// handlers call, so every handler registers as a no-publisher handler.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WrapTyped converts a typed handler into a watermill NoPublishHandlerFunc,
// unmarshaling the inbound payload into T.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(ctx context.Context, payload *T) error,
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx, span := tracer.Start(msg.Context(), handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			// Malformed payloads are dropped, not retried: replaying the
			// same bytes can never succeed.
			logger.ErrorContext(ctx, "dropping malformed event payload",
				slog.String("handler", handlerName),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
			return nil
		}

		if err := handler(ctx, payload); err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "handler failed",
				slog.String("handler", handlerName),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	}
}
