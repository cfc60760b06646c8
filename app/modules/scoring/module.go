// Package scoring wires the score ledger module together: repository,
// service, and the event subscriptions that turn solve events into
// ledger awards.
package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/app/eventbus"
	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	scoringservice "github.com/hearthvale/house-ledger/app/modules/scoring/application"
	scoringhandlers "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/handlers"
	scoringdb "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/repositories"
	scoringrouter "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/router"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"go.opentelemetry.io/otel/trace"
)

// Module is the assembled scoring module.
type Module struct {
	Service  scoringservice.Service
	Handlers *scoringhandlers.Handlers
}

// NewModule loads the scores document, builds the service, and registers
// the solve-event subscriptions on the router.
func NewModule(
	ctx context.Context,
	store docstore.Store,
	guild guildservice.Service,
	bus eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	tracer trace.Tracer,
) (*Module, error) {
	repo, err := scoringdb.NewScoreRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("init scoring module: %w", err)
	}

	service := scoringservice.NewScoreService(repo, guild, bus, logger, tracer)
	handlers := scoringhandlers.NewHandlers(service, logger)
	scoringrouter.Configure(router, bus, handlers, logger, tracer)

	return &Module{Service: service, Handlers: handlers}, nil
}
