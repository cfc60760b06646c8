// Package season wires the season/stage module together.
package season

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hearthvale/house-ledger/app/eventbus"
	seasonservice "github.com/hearthvale/house-ledger/app/modules/season/application"
	seasondb "github.com/hearthvale/house-ledger/app/modules/season/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"go.opentelemetry.io/otel/trace"
)

// Module is the assembled season module.
type Module struct {
	Service seasonservice.Service
}

// NewModule loads the season state document and builds the service.
func NewModule(ctx context.Context, store docstore.Store, bus eventbus.EventBus, logger *slog.Logger, tracer trace.Tracer) (*Module, error) {
	repo, err := seasondb.NewSeasonRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("init season module: %w", err)
	}
	return &Module{
		Service: seasonservice.NewSeasonService(repo, bus, logger, tracer),
	}, nil
}
