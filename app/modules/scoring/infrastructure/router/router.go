package scoringrouter

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/app/eventbus"
	puzzleevents "github.com/hearthvale/house-ledger/app/modules/puzzle/domain/events"
	seasonevents "github.com/hearthvale/house-ledger/app/modules/season/domain/events"
	scoringhandlers "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/handlers"
	"github.com/hearthvale/house-ledger/app/shared/handlerwrapper"
	"go.opentelemetry.io/otel/trace"
)

// Configure registers the scoring module's subscriptions on the router.
func Configure(
	router *message.Router,
	bus eventbus.EventBus,
	handlers *scoringhandlers.Handlers,
	logger *slog.Logger,
	tracer trace.Tracer,
) {
	router.AddNoPublisherHandler(
		"scoring.stage_solved",
		seasonevents.StageSolvedTopic,
		bus.Subscriber(),
		handlerwrapper.WrapTyped("scoring.stage_solved", logger, tracer, handlers.HandleStageSolved),
	)

	router.AddNoPublisherHandler(
		"scoring.puzzle_house_solved",
		puzzleevents.HouseSolvedTopic,
		bus.Subscriber(),
		handlerwrapper.WrapTyped("scoring.puzzle_house_solved", logger, tracer, handlers.HandlePuzzleHouseSolved),
	)
}
