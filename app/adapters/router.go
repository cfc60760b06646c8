package adapters

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/app/eventbus"
	puzzleevents "github.com/hearthvale/house-ledger/app/modules/puzzle/domain/events"
	scoringevents "github.com/hearthvale/house-ledger/app/modules/scoring/domain/events"
	"github.com/hearthvale/house-ledger/app/shared/handlerwrapper"
	"go.opentelemetry.io/otel/trace"
)

// Configure registers the notifier's subscriptions on the router.
func Configure(
	router *message.Router,
	bus eventbus.EventBus,
	notifier *Notifier,
	logger *slog.Logger,
	tracer trace.Tracer,
) {
	router.AddNoPublisherHandler(
		"notifier.score_updated",
		scoringevents.ScoreUpdatedTopic,
		bus.Subscriber(),
		handlerwrapper.WrapTyped("notifier.score_updated", logger, tracer, notifier.HandleScoreUpdated),
	)

	router.AddNoPublisherHandler(
		"notifier.puzzle_house_expired",
		puzzleevents.HouseExpiredTopic,
		bus.Subscriber(),
		handlerwrapper.WrapTyped("notifier.puzzle_house_expired", logger, tracer, notifier.HandlePuzzleExpired),
	)
}
