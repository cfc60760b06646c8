// Package puzzle wires the puzzle engine module together.
package puzzle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hearthvale/house-ledger/app/eventbus"
	puzzleservice "github.com/hearthvale/house-ledger/app/modules/puzzle/application"
	puzzledb "github.com/hearthvale/house-ledger/app/modules/puzzle/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"go.opentelemetry.io/otel/trace"
)

// Module is the assembled puzzle module.
type Module struct {
	Service puzzleservice.Service
}

// NewModule loads the puzzles document and builds the service.
func NewModule(ctx context.Context, store docstore.Store, bus eventbus.EventBus, logger *slog.Logger, tracer trace.Tracer) (*Module, error) {
	repo, err := puzzledb.NewPuzzleRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("init puzzle module: %w", err)
	}
	return &Module{
		Service: puzzleservice.NewPuzzleService(repo, bus, logger, tracer),
	}, nil
}
